package pickService

import (
	"errors"
	"fmt"
	"survivorPoolBot/models"
	"survivorPoolBot/services/common"

	"gorm.io/gorm"
)

// RecordPick inserts a user's pick for a week. A second pick for the same
// (user, week) is rejected with ErrDuplicatePick and the existing row is left
// untouched; callers that want to change a pick go through UpdatePick.
func RecordPick(db *gorm.DB, user models.User, week models.Week, teamID uint) (*models.Pick, error) {
	if user.IsEliminated {
		return nil, fmt.Errorf("user %d is eliminated", user.ID)
	}
	if common.DeadlinePassed(week.Deadline) {
		return nil, fmt.Errorf("deadline for week %d has passed", week.WeekNumber)
	}

	entry, err := eligibleEntryFor(db, user, week, teamID)
	if err != nil {
		return nil, err
	}

	var existing models.Pick
	result := db.Where("user_id = ? AND week_id = ?", user.ID, week.ID).First(&existing)
	if result.Error == nil {
		return nil, fmt.Errorf("%w: user %d week %d", common.ErrDuplicatePick, user.ID, week.WeekNumber)
	}
	if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, result.Error
	}

	pick := models.Pick{
		UserID:      user.ID,
		WeekID:      week.ID,
		TeamID:      entry.Team.ID,
		GameID:      entry.Game.ID,
		Spread:      entry.Spread,
		SubmittedAt: common.Clock.Now(),
	}
	if err := db.Create(&pick).Error; err != nil {
		return nil, err
	}

	return &pick, nil
}

// UpdatePick swaps an existing pick to a new team. Allowed until the deadline,
// and never once the originally picked game has kicked off.
func UpdatePick(db *gorm.DB, user models.User, week models.Week, teamID uint) (*models.Pick, error) {
	if common.DeadlinePassed(week.Deadline) {
		return nil, fmt.Errorf("deadline for week %d has passed", week.WeekNumber)
	}

	var existing models.Pick
	if err := db.Where("user_id = ? AND week_id = ?", user.ID, week.ID).First(&existing).Error; err != nil {
		return nil, err
	}
	if existing.Outcome != models.PickPending {
		return nil, fmt.Errorf("%w: pick %d", common.ErrAlreadyProcessed, existing.ID)
	}

	var currentGame models.Game
	if err := db.First(&currentGame, existing.GameID).Error; err == nil {
		if currentGame.GameTime != nil && common.Clock.Now().After(*currentGame.GameTime) {
			return nil, fmt.Errorf("pick is locked - that game has already started")
		}
	}

	entry, err := eligibleEntryFor(db, user, week, teamID)
	if err != nil {
		return nil, err
	}

	existing.TeamID = entry.Team.ID
	existing.GameID = entry.Game.ID
	existing.Spread = entry.Spread
	existing.SubmittedAt = common.Clock.Now()
	existing.Auto = false
	if err := db.Save(&existing).Error; err != nil {
		return nil, err
	}

	return &existing, nil
}

func eligibleEntryFor(db *gorm.DB, user models.User, week models.Week, teamID uint) (*EligibleEntry, error) {
	entries, err := EligibleTeamsForUser(db, user, week)
	if err != nil {
		return nil, err
	}

	for idx := range entries {
		if entries[idx].Team.ID == teamID {
			return &entries[idx], nil
		}
	}
	return nil, fmt.Errorf("team %d is not an eligible pick for week %d", teamID, week.WeekNumber)
}
