package models

import (
	"gorm.io/gorm"
	"time"
)

// Migration marks one-time data migrations (team population, playoff column
// backfill) so startup can skip work that already ran.
type Migration struct {
	gorm.Model
	ID         uint      `gorm:"primaryKey"`
	Name       string    `gorm:"uniqueIndex; size:255"`
	ExecutedAt time.Time
}
