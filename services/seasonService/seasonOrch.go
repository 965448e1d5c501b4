package seasonService

import (
	"errors"
	"fmt"
	"survivorPoolBot/models"
	"survivorPoolBot/services/common"
	"time"

	"gorm.io/gorm"
)

// MaxPlayoffFieldSize caps the bracket; the field is frozen at the transition
// and never expanded.
const MaxPlayoffFieldSize = 16

// GetOrCreateSeason finds the guild's season for a year, creating it in the
// regular phase if it does not exist yet. Creating a season starts every
// player fresh: lives back to the guild's starting count, spread total to
// zero, eliminations cleared. The team ledgers need no reset because their
// rows are season-scoped.
func GetOrCreateSeason(db *gorm.DB, guildID string, year int) (*models.Season, error) {
	var season models.Season
	result := db.Where("guild_id = ? AND year = ?", guildID, year).First(&season)
	if result.Error == nil {
		return &season, nil
	}
	if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, result.Error
	}

	startingLives := 2
	var guild models.Guild
	if err := db.Where("guild_id = ?", guildID).First(&guild).Error; err == nil {
		startingLives = guild.StartingLives
	}

	season = models.Season{GuildID: guildID, Year: year, Phase: models.PhaseRegular}
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&season).Error; err != nil {
			return err
		}
		return tx.Model(&models.User{}).Where("guild_id = ?", guildID).
			Updates(map[string]interface{}{
				"lives_remaining":   startingLives,
				"is_eliminated":     false,
				"eliminated_week":   nil,
				"cumulative_spread": 0,
			}).Error
	})
	if err != nil {
		return nil, err
	}
	return &season, nil
}

// CreateWeek appends a week to the season. Week numbers must strictly
// increase; playoff weeks are only creatable once the season has transitioned.
func CreateWeek(db *gorm.DB, season *models.Season, weekNumber int, startDate, deadline time.Time, playoffRound *int, roundName *string) (*models.Week, error) {
	var latest models.Week
	result := db.Where("season_id = ?", season.ID).Order("week_number desc").First(&latest)
	if result.Error == nil && weekNumber <= latest.WeekNumber {
		return nil, fmt.Errorf("week number %d must be greater than existing week %d", weekNumber, latest.WeekNumber)
	}
	if result.Error != nil && !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, result.Error
	}

	isPlayoff := playoffRound != nil
	if isPlayoff && season.Phase != models.PhasePlayoff {
		return nil, fmt.Errorf("season is still in the regular phase; run the playoff transition first")
	}

	week := models.Week{
		SeasonID:     season.ID,
		GuildID:      season.GuildID,
		WeekNumber:   weekNumber,
		StartDate:    startDate,
		Deadline:     deadline,
		IsPlayoff:    isPlayoff,
		PlayoffRound: playoffRound,
		RoundName:    roundName,
	}
	if err := db.Create(&week).Error; err != nil {
		return nil, err
	}
	return &week, nil
}

// ActivateWeek makes one week current, deactivating any other active week so
// the single-active invariant holds. An earlier week that took picks but was
// never processed blocks activation; advancing past it would leave it
// unreachable to the grading passes.
func ActivateWeek(db *gorm.DB, week *models.Week) error {
	var priorWeeks []models.Week
	if err := db.Where("guild_id = ? AND is_complete = ? AND id <> ?", week.GuildID, false, week.ID).
		Find(&priorWeeks).Error; err != nil {
		return err
	}
	for _, prior := range priorWeeks {
		if prior.WeekNumber >= week.WeekNumber {
			continue
		}
		var pickCount int64
		if err := db.Model(&models.Pick{}).Where("week_id = ?", prior.ID).Count(&pickCount).Error; err != nil {
			return err
		}
		if pickCount > 0 {
			return fmt.Errorf("week %d has %d unprocessed picks; process it before activating week %d",
				prior.WeekNumber, pickCount, week.WeekNumber)
		}
	}

	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Week{}).
			Where("guild_id = ? AND is_active = ?", week.GuildID, true).
			Update("is_active", false).Error; err != nil {
			return err
		}
		week.IsActive = true
		return tx.Save(week).Error
	})
}

// ActiveWeek returns the guild's current week, or nil when none is active.
func ActiveWeek(db *gorm.DB, guildID string) (*models.Week, error) {
	var week models.Week
	result := db.Where("guild_id = ? AND is_active = ?", guildID, true).First(&week)
	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if result.Error != nil {
		return nil, result.Error
	}
	return &week, nil
}

// BeginPlayoffs performs the one-time regular->playoff transition: freeze the
// playoff field and flip the season phase. From here on, eligibility for
// everyone is computed against the frozen field; teams outside it are
// unreachable in playoff weeks regardless of ledger state.
func BeginPlayoffs(db *gorm.DB, season *models.Season, fieldTeamNames []string) error {
	if season.Phase == models.PhasePlayoff {
		return fmt.Errorf("%w: season %d already transitioned to playoffs", common.ErrAlreadyProcessed, season.Year)
	}
	if len(fieldTeamNames) == 0 {
		return fmt.Errorf("playoff field cannot be empty")
	}
	if len(fieldTeamNames) > MaxPlayoffFieldSize {
		return fmt.Errorf("playoff field of %d exceeds the maximum of %d", len(fieldTeamNames), MaxPlayoffFieldSize)
	}

	return db.Transaction(func(tx *gorm.DB) error {
		field := make([]models.Team, 0, len(fieldTeamNames))
		for _, name := range fieldTeamNames {
			var team models.Team
			if err := tx.Where("name = ?", name).First(&team).Error; err != nil {
				return fmt.Errorf("%w: playoff field references unknown team %q", common.ErrDataIntegrity, name)
			}
			field = append(field, team)
		}

		for _, team := range field {
			if err := tx.Model(&models.Team{}).Where("id = ?", team.ID).
				Update("in_playoff_field", true).Error; err != nil {
				return err
			}
		}

		season.Phase = models.PhasePlayoff
		season.PlayoffFieldSize = len(field)
		return tx.Save(season).Error
	})
}
