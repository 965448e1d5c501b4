package resultService

import (
	"errors"
	"fmt"
	"log"
	"survivorPoolBot/models"
	"survivorPoolBot/services/common"

	"github.com/bwmarrin/discordgo"
	"gorm.io/gorm"
)

// UserFailure is one user's isolated failure inside a batch pass.
type UserFailure struct {
	UserID uint
	Err    error
}

// ProcessGamePicks grades every pick riding on a final game and applies the
// per-user consequences: outcome, life decrement on a loss, team-ledger rows,
// and the spread-ledger contribution. Each user's update runs under that
// user's lock in its own transaction; one user's failure never blocks the
// rest. Re-running on an already-graded game is a no-op per pick.
func ProcessGamePicks(db *gorm.DB, week models.Week, game models.Game) []UserFailure {
	if game.Status != models.GameFinal || game.HomeTeamWon == nil {
		return nil
	}

	var picks []models.Pick
	if err := db.Where("game_id = ? AND week_id = ?", game.ID, week.ID).Find(&picks).Error; err != nil {
		return []UserFailure{{Err: err}}
	}

	failures := make([]UserFailure, 0)
	for _, pick := range picks {
		outcome, err := resolvePickOutcome(pick, game)
		if err != nil {
			if errors.Is(err, common.ErrAlreadyProcessed) {
				log.Printf("Skipping pick %d: %v", pick.ID, err)
				continue
			}
			failures = append(failures, UserFailure{UserID: pick.UserID, Err: err})
			continue
		}
		if outcome == models.PickPending {
			continue
		}

		if err := applyPickOutcome(db, week, pick, outcome); err != nil {
			failures = append(failures, UserFailure{UserID: pick.UserID, Err: err})
		}
	}

	return failures
}

func applyPickOutcome(db *gorm.DB, week models.Week, pick models.Pick, outcome string) error {
	unlock := lockUser(pick.UserID)
	defer unlock()

	return db.Transaction(func(tx *gorm.DB) error {
		// Re-read under the lock so a concurrent pass can't double-apply.
		var current models.Pick
		if err := tx.First(&current, pick.ID).Error; err != nil {
			return err
		}
		if current.Outcome != models.PickPending {
			return nil
		}

		current.Outcome = outcome
		if err := tx.Save(&current).Error; err != nil {
			return err
		}

		var user models.User
		if err := tx.First(&user, current.UserID).Error; err != nil {
			return err
		}

		if outcome == models.PickLoss {
			dockLife(&user, week)
		}

		user.CumulativeSpread += SpreadContribution(current.Spread)
		if err := tx.Save(&user).Error; err != nil {
			return err
		}

		if week.IsPlayoff {
			if outcome == models.PickLoss {
				return markPlayoffEliminated(tx, user.ID, current.TeamID, week)
			}
			return nil
		}
		// Regular season consumes the team win or lose.
		return markTeamUsed(tx, user.ID, current.TeamID, week)
	})
}

func dockLife(user *models.User, week models.Week) {
	user.LivesRemaining--
	if user.LivesRemaining <= 0 {
		user.LivesRemaining = 0
		user.IsEliminated = true
		weekNum := week.WeekNumber
		user.EliminatedWeek = &weekNum
	}
}

// ProcessWeekResults is the batch pass for one week: grade every final game's
// picks, and once all games are final, apply the missed-pick policy, evaluate
// the revival rule, and mark the week complete. Re-running a completed week
// is a logged no-op.
func ProcessWeekResults(db *gorm.DB, guild models.Guild, week models.Week) ([]UserFailure, error) {
	if week.IsComplete {
		log.Printf("Week %d already processed, skipping", week.WeekNumber)
		return nil, nil
	}

	var games []models.Game
	if err := db.Where("week_id = ?", week.ID).Find(&games).Error; err != nil {
		return nil, err
	}
	if len(games) == 0 {
		return nil, fmt.Errorf("week %d has no games to process", week.WeekNumber)
	}

	failures := make([]UserFailure, 0)
	allFinal := true
	for _, game := range games {
		if game.Status != models.GameFinal || game.HomeTeamWon == nil {
			allFinal = false
			continue
		}
		failures = append(failures, ProcessGamePicks(db, week, game)...)
	}

	if !allFinal {
		return failures, nil
	}

	if err := finalizeWeek(db, guild, week); err != nil {
		return failures, err
	}
	return failures, nil
}

// finalizeWeek runs once per week, after every game is final, inside a single
// transaction: charge alive users who never got a pick (when the guild's
// policy says a missed pick costs a life), evaluate the revival rule against
// the cohort as it stood before any of this week's losses, and mark the week
// complete. The transaction makes a crashed finalize fully re-runnable.
func finalizeWeek(db *gorm.DB, guild models.Guild, week models.Week) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var users []models.User
		if err := tx.Where("guild_id = ?", guild.GuildID).Find(&users).Error; err != nil {
			return err
		}

		var picks []models.Pick
		if err := tx.Where("week_id = ?", week.ID).Find(&picks).Error; err != nil {
			return err
		}

		pickByUser := make(map[uint]models.Pick, len(picks))
		lostThisWeek := make(map[uint]bool)
		for _, pick := range picks {
			pickByUser[pick.UserID] = pick
			if pick.Outcome == models.PickLoss {
				lostThisWeek[pick.UserID] = true
			}
		}

		if guild.MissedPickCostsLife {
			for idx := range users {
				user := &users[idx]
				if user.IsEliminated {
					continue
				}
				if _, ok := pickByUser[user.ID]; ok {
					continue
				}
				dockLife(user, week)
				if err := tx.Save(user).Error; err != nil {
					return err
				}
				lostThisWeek[user.ID] = true
				log.Printf("Missed pick: user %d charged a life in week %d", user.ID, week.WeekNumber)
			}
		}

		cohort := revivalCohort(users, week, lostThisWeek)
		if !week.RevivalApplied && shouldRevive(cohort, lostThisWeek) {
			for _, member := range cohort {
				var user models.User
				if err := tx.First(&user, member.ID).Error; err != nil {
					return err
				}
				user.LivesRemaining = 1
				user.IsEliminated = false
				user.EliminatedWeek = nil
				if err := tx.Save(&user).Error; err != nil {
					return err
				}
				log.Printf("Revival rule: user %d restored to 1 life in week %d", member.ID, week.WeekNumber)
			}
			week.RevivalApplied = true
		}

		week.IsComplete = true
		week.IsActive = false
		return tx.Save(&week).Error
	})
}

// ReportFailures persists per-user failures from a batch pass.
func ReportFailures(s *discordgo.Session, db *gorm.DB, guild models.Guild, week models.Week, failures []UserFailure) {
	for _, failure := range failures {
		common.SendError(s, nil, fmt.Errorf("result processing failed for user %d in week %d: %v",
			failure.UserID, week.WeekNumber, failure.Err), db)
	}
}
