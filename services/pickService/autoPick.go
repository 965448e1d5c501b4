package pickService

import (
	"fmt"
	"log"
	"survivorPoolBot/models"
	"survivorPoolBot/services/common"

	"github.com/bwmarrin/discordgo"
	"gorm.io/gorm"
)

// SelectAutoPick deterministically picks one entry for a user who missed the
// deadline: the biggest favorite no heavier than -16, falling back to the
// smallest underdog. Entries arrive name-ordered, so ties always resolve to
// the same team. Returns ErrNoEligibleTeam when nothing qualifies.
func SelectAutoPick(entries []EligibleEntry) (*EligibleEntry, error) {
	var best *EligibleEntry

	for idx := range entries {
		entry := &entries[idx]
		if entry.Spread < 0 && -entry.Spread <= AutoPickFavoriteMax {
			if best == nil || entry.Spread < best.Spread {
				best = entry
			}
		}
	}
	if best != nil {
		return best, nil
	}

	for idx := range entries {
		entry := &entries[idx]
		if entry.Spread > 0 {
			if best == nil || entry.Spread < best.Spread {
				best = entry
			}
		}
	}
	if best != nil {
		return best, nil
	}

	return nil, common.ErrNoEligibleTeam
}

// AutoPickResult reports one user's outcome from a batch pass.
type AutoPickResult struct {
	User models.User
	Team *models.Team
	Err  error
}

// ProcessAutoPicks fills a pick for every alive user in the guild who has none
// for the given week. Safe to re-run: users who already picked are skipped,
// and a concurrent insert loses to the unique (user, week) index. One user's
// failure never stops the rest of the batch.
func ProcessAutoPicks(db *gorm.DB, guild models.Guild, week models.Week) ([]AutoPickResult, error) {
	if !common.DeadlinePassed(week.Deadline) {
		return nil, nil
	}
	if week.IsComplete {
		return nil, nil
	}

	var users []models.User
	if err := db.Where("guild_id = ? AND is_eliminated = ?", guild.GuildID, false).Find(&users).Error; err != nil {
		return nil, err
	}

	var existing []models.Pick
	if err := db.Where("week_id = ?", week.ID).Find(&existing).Error; err != nil {
		return nil, err
	}
	hasPick := make(map[uint]bool, len(existing))
	for _, pick := range existing {
		hasPick[pick.UserID] = true
	}

	results := make([]AutoPickResult, 0)
	for _, user := range users {
		if hasPick[user.ID] {
			continue
		}

		entries, err := EligibleTeamsForUser(db, user, week)
		if err != nil {
			results = append(results, AutoPickResult{User: user, Err: err})
			continue
		}

		choice, err := SelectAutoPick(entries)
		if err != nil {
			results = append(results, AutoPickResult{User: user, Err: fmt.Errorf("%w: user %d week %d", err, user.ID, week.WeekNumber)})
			continue
		}

		pick := models.Pick{
			UserID:      user.ID,
			WeekID:      week.ID,
			TeamID:      choice.Team.ID,
			GameID:      choice.Game.ID,
			Spread:      choice.Spread,
			SubmittedAt: common.Clock.Now(),
			Auto:        true,
		}
		if err := db.Create(&pick).Error; err != nil {
			results = append(results, AutoPickResult{User: user, Err: err})
			continue
		}

		team := choice.Team
		results = append(results, AutoPickResult{User: user, Team: &team})
		log.Printf("Auto-pick: user %d -> %s (%s)", user.ID, team.Name, common.FormatSpread(choice.Spread))
	}

	return results, nil
}

// ReportAutoPickFailures persists per-user auto-pick failures so admins can
// decide remediation.
func ReportAutoPickFailures(s *discordgo.Session, db *gorm.DB, guild models.Guild, results []AutoPickResult) {
	for _, result := range results {
		if result.Err == nil {
			continue
		}
		common.SendError(s, nil, fmt.Errorf("auto-pick failed for user %d: %v", result.User.ID, result.Err), db)
	}
}
