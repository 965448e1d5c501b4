package models

import "gorm.io/gorm"

type Team struct {
	gorm.Model
	ID             uint   `gorm:"primaryKey"`
	Name           string `gorm:"uniqueIndex; size:100"`
	Conference     string `gorm:"size:50"`
	InPlayoffField bool   `gorm:"default:false"`
}
