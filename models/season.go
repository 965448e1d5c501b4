package models

import "gorm.io/gorm"

const (
	PhaseRegular = "regular"
	PhasePlayoff = "playoff"
)

// Season carries the one-time regular->playoff transition state. Eligibility
// reads Phase rather than inferring it from week numbers.
type Season struct {
	gorm.Model
	ID               uint   `gorm:"primaryKey"`
	GuildID          string `gorm:"uniqueIndex:guild_year_idx; size:64"`
	Year             int    `gorm:"uniqueIndex:guild_year_idx"`
	Phase            string `gorm:"size:16; default:regular"`
	PlayoffFieldSize int    `gorm:"default:0"`
}
