package models

import "gorm.io/gorm"

type User struct {
	gorm.Model
	ID               uint   `gorm:"primaryKey"`
	DiscordID        string `gorm:"uniqueIndex:user_guild_idx; size:64"`
	GuildID          string `gorm:"uniqueIndex:user_guild_idx; size:64"`
	Username         *string
	LivesRemaining   int  `gorm:"default:2"`
	IsEliminated     bool `gorm:"default:false"`
	EliminatedWeek   *int
	CumulativeSpread float64 `gorm:"default:0"`
	Paid             bool    `gorm:"default:false"`
}
