package models

import (
	"gorm.io/gorm"
)

// ErrorLog persists engine and job failures with enough context (guild, user,
// week) for an admin to decide remediation. The engine never retries.
type ErrorLog struct {
	gorm.Model
	ID      uint   `gorm:"primaryKey"`
	GuildID string `gorm:"size:64"`
	Message string
}
