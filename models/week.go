package models

import (
	"gorm.io/gorm"
	"time"
)

type Week struct {
	gorm.Model
	ID             uint `gorm:"primaryKey"`
	SeasonID       uint   `gorm:"uniqueIndex:season_week_idx"`
	Season         Season `gorm:"foreignKey:SeasonID"`
	WeekNumber     int    `gorm:"uniqueIndex:season_week_idx"`
	GuildID        string `gorm:"index; size:64"`
	StartDate      time.Time
	Deadline       time.Time
	IsActive       bool `gorm:"default:false"`
	IsComplete     bool `gorm:"default:false"`
	IsPlayoff      bool `gorm:"default:false"`
	PlayoffRound   *int
	RoundName      *string `gorm:"size:100"`
	RevivalApplied bool    `gorm:"default:false"`
}
