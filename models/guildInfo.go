package models

import "gorm.io/gorm"

type Guild struct {
	gorm.Model
	ID                  uint `gorm:"primaryKey"`
	GuildID             string
	GuildName           string
	PoolChannelID       string
	ReminderChannelID   *string
	StartingLives       int    `gorm:"default:2"`
	MissedPickCostsLife bool   `gorm:"default:true"`
	Timezone            string `gorm:"size:64; default:'America/Chicago'"`
}
