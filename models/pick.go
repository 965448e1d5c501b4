package models

import (
	"gorm.io/gorm"
	"time"
)

const (
	PickPending = "pending"
	PickWin     = "win"
	PickLoss    = "loss"
)

type Pick struct {
	gorm.Model
	ID          uint `gorm:"primaryKey"`
	UserID      uint `gorm:"uniqueIndex:user_week_idx"`
	User        User `gorm:"foreignKey:UserID"`
	WeekID      uint `gorm:"uniqueIndex:user_week_idx"`
	Week        Week `gorm:"foreignKey:WeekID"`
	TeamID      uint
	Team        Team `gorm:"foreignKey:TeamID"`
	GameID      uint
	Game        Game `gorm:"foreignKey:GameID"`
	Spread      float64
	SubmittedAt time.Time
	Auto        bool   `gorm:"default:false"`
	Outcome     string `gorm:"size:16; default:pending"`
}
