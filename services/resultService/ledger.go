package resultService

import (
	"sync"
	"survivorPoolBot/models"

	"gorm.io/gorm"
)

// All team-ledger and spread-ledger mutation funnels through this file. Other
// packages read ledger state (pickService.LoadTeamLedger) but never write it.

var userLocks sync.Map

// lockUser serializes writes to a single user's lives/ledgers. Different
// users' updates may run concurrently.
func lockUser(userID uint) func() {
	muIface, _ := userLocks.LoadOrStore(userID, &sync.Mutex{})
	mu := muIface.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

// markTeamUsed consumes a team for the rest of the season's regular weeks.
// FirstOrCreate keeps reprocessing from inserting a second row.
func markTeamUsed(tx *gorm.DB, userID, teamID uint, week models.Week) error {
	row := models.UsedTeam{UserID: userID, TeamID: teamID, SeasonID: week.SeasonID}
	return tx.Where(models.UsedTeam{UserID: userID, TeamID: teamID, SeasonID: week.SeasonID}).
		Attrs(models.UsedTeam{WeekID: week.ID}).
		FirstOrCreate(&row).Error
}

// markPlayoffEliminated records a playoff loss; the team stays off the board
// for this user for the rest of that season's playoffs.
func markPlayoffEliminated(tx *gorm.DB, userID, teamID uint, week models.Week) error {
	row := models.PlayoffElimination{UserID: userID, TeamID: teamID, SeasonID: week.SeasonID}
	return tx.Where(models.PlayoffElimination{UserID: userID, TeamID: teamID, SeasonID: week.SeasonID}).
		Attrs(models.PlayoffElimination{WeekID: week.ID}).
		FirstOrCreate(&row).Error
}

// SpreadContribution converts a pick's spread into its tiebreaker delta.
// Picking a -7 favorite adds +7 to the running total; a +3 underdog subtracts
// 3. Lower cumulative totals rank better.
func SpreadContribution(pickSpread float64) float64 {
	return -pickSpread
}
