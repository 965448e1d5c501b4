package resultService

import (
	"fmt"
	"survivorPoolBot/models"
	"survivorPoolBot/services/common"
)

// resolvePickOutcome grades a single pick against its final game. Returns
// ErrAlreadyProcessed for picks graded in an earlier pass and
// ErrDataIntegrity when the pick's team is not a side of the game.
func resolvePickOutcome(pick models.Pick, game models.Game) (string, error) {
	if pick.Outcome != models.PickPending {
		return pick.Outcome, fmt.Errorf("%w: pick %d", common.ErrAlreadyProcessed, pick.ID)
	}
	if game.Status != models.GameFinal || game.HomeTeamWon == nil {
		return models.PickPending, nil
	}

	pickedHome := game.HomeTeamID != nil && *game.HomeTeamID == pick.TeamID
	pickedAway := game.AwayTeamID != nil && *game.AwayTeamID == pick.TeamID
	if !pickedHome && !pickedAway {
		return models.PickPending, fmt.Errorf("%w: pick %d references team %d which is not in game %d",
			common.ErrDataIntegrity, pick.ID, pick.TeamID, game.ID)
	}

	if pickedHome == *game.HomeTeamWon {
		return models.PickWin, nil
	}
	return models.PickLoss, nil
}

// revivalCohort reconstructs the group of users who sat at exactly one life
// before any of this week's losses were applied. Losses may already be
// reflected in LivesRemaining (the processor grades games as they finish), so
// a user who lost this week gets that life added back for the snapshot.
func revivalCohort(users []models.User, week models.Week, lostThisWeek map[uint]bool) []models.User {
	cohort := make([]models.User, 0)
	for _, user := range users {
		if user.IsEliminated && (user.EliminatedWeek == nil || *user.EliminatedWeek != week.WeekNumber) {
			continue // out before this week started
		}
		preWeekLives := user.LivesRemaining
		if lostThisWeek[user.ID] {
			preWeekLives++
		}
		if preWeekLives == 1 {
			cohort = append(cohort, user)
		}
	}
	return cohort
}

// shouldRevive fires only when the entire one-life cohort lost in the same
// week. A single survivor in the cohort means ordinary elimination stands.
func shouldRevive(cohort []models.User, lostThisWeek map[uint]bool) bool {
	if len(cohort) == 0 {
		return false
	}
	for _, user := range cohort {
		if !lostThisWeek[user.ID] {
			return false
		}
	}
	return true
}
