package models

import (
	"gorm.io/gorm"
	"time"
)

const (
	GameScheduled = "scheduled"
	GameFinal     = "final"
)

// HomeSpread is signed with the favorite negative: -7 means the home team is
// favored by 7. The away side's spread is always the negation.
type Game struct {
	gorm.Model
	ID           uint `gorm:"primaryKey"`
	WeekID       uint
	Week         Week  `gorm:"foreignKey:WeekID"`
	HomeTeamID   *uint // nil when the home side is not a tracked team
	AwayTeamID   *uint
	HomeTeamName *string `gorm:"size:100"`
	AwayTeamName *string `gorm:"size:100"`
	HomeSpread   float64
	GameTime     *time.Time
	Status       string `gorm:"size:16; default:scheduled"`
	HomeTeamWon  *bool
	OddsAPIID    *string `gorm:"size:64"`
	CfbdID       *string `gorm:"size:64"`
}

// SpreadFor returns the signed spread as experienced by the given team side.
func (g *Game) SpreadFor(teamID uint) float64 {
	if g.HomeTeamID != nil && *g.HomeTeamID == teamID {
		return g.HomeSpread
	}
	return -g.HomeSpread
}
