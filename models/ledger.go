package models

import "gorm.io/gorm"

// UsedTeam and PlayoffElimination are the per-user, per-season team ledger.
// Rows are created by resultService only and are never deleted mid-season; a
// new season starts with an empty ledger because lookups are season-scoped.

type UsedTeam struct {
	gorm.Model
	ID       uint `gorm:"primaryKey"`
	UserID   uint `gorm:"uniqueIndex:used_user_team_idx"`
	TeamID   uint `gorm:"uniqueIndex:used_user_team_idx"`
	SeasonID uint `gorm:"uniqueIndex:used_user_team_idx"`
	WeekID   uint
}

type PlayoffElimination struct {
	gorm.Model
	ID       uint `gorm:"primaryKey"`
	UserID   uint `gorm:"uniqueIndex:elim_user_team_idx"`
	TeamID   uint `gorm:"uniqueIndex:elim_user_team_idx"`
	SeasonID uint `gorm:"uniqueIndex:elim_user_team_idx"`
	WeekID   uint
}
