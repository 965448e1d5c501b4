package pickService

import (
	"fmt"
	"sort"
	"survivorPoolBot/models"
	"survivorPoolBot/services/common"

	"gorm.io/gorm"
)

const (
	// FavoriteSpreadLimit puts the favorite side of a game off the board for
	// everyone once the line reaches -16.5.
	FavoriteSpreadLimit = -16.5

	// AutoPickFavoriteMax caps how big a favorite the auto-pick will trust.
	// Deliberately half a point under the board limit: a -16.3 favorite is
	// pickable by hand but never auto-picked.
	AutoPickFavoriteMax = 16.0
)

// EligibleEntry is one legal pick: a tracked team, the game it resolves
// against, and the spread as experienced by that side.
type EligibleEntry struct {
	Team   models.Team
	Game   models.Game
	Spread float64
}

// TeamLedger is a read-only snapshot of a user's team usage. Mutation happens
// only in resultService.
type TeamLedger struct {
	UsedTeamIDs       map[uint]bool
	PlayoffEliminated map[uint]bool
}

// LoadTeamLedger reads one user's ledger for one season. A fresh season sees
// an empty ledger regardless of what earlier seasons recorded.
func LoadTeamLedger(db *gorm.DB, userID, seasonID uint) (TeamLedger, error) {
	ledger := TeamLedger{
		UsedTeamIDs:       make(map[uint]bool),
		PlayoffEliminated: make(map[uint]bool),
	}

	var used []models.UsedTeam
	if err := db.Where("user_id = ? AND season_id = ?", userID, seasonID).Find(&used).Error; err != nil {
		return ledger, err
	}
	for _, row := range used {
		ledger.UsedTeamIDs[row.TeamID] = true
	}

	var elims []models.PlayoffElimination
	if err := db.Where("user_id = ? AND season_id = ?", userID, seasonID).Find(&elims).Error; err != nil {
		return ledger, err
	}
	for _, row := range elims {
		ledger.PlayoffEliminated[row.TeamID] = true
	}

	return ledger, nil
}

// ComputeEligibility returns the teams a user may legally pick this week,
// ordered by team name so every caller sees the same sequence.
//
// Rules, in order: the favorite side of any game at or past the -16.5 limit is
// off the board for everyone; regular weeks exclude teams the user has already
// burned; playoff weeks lift that restriction but exclude teams knocked out of
// the user's playoff field, and only playoff-field teams are reachable at all.
// An empty result is valid - it means the user has no legal pick, which is a
// different condition from not having submitted one.
func ComputeEligibility(week models.Week, games []models.Game, teams map[uint]models.Team, ledger TeamLedger) ([]EligibleEntry, error) {
	seen := make(map[uint]uint) // teamID -> gameID already offering it
	entries := make([]EligibleEntry, 0)

	consider := func(game models.Game, teamID *uint) error {
		if teamID == nil {
			return nil
		}
		team, tracked := teams[*teamID]
		if !tracked {
			return fmt.Errorf("%w: game %d references unknown team %d", common.ErrDataIntegrity, game.ID, *teamID)
		}

		if priorGame, dup := seen[team.ID]; dup && priorGame != game.ID {
			return fmt.Errorf("%w: team %s appears in games %d and %d in week %d",
				common.ErrDataIntegrity, team.Name, priorGame, game.ID, week.WeekNumber)
		}
		seen[team.ID] = game.ID

		spread := game.SpreadFor(team.ID)
		if spread <= FavoriteSpreadLimit {
			return nil
		}

		if week.IsPlayoff {
			if !team.InPlayoffField {
				return nil
			}
			if ledger.PlayoffEliminated[team.ID] {
				return nil
			}
		} else if ledger.UsedTeamIDs[team.ID] {
			return nil
		}

		entries = append(entries, EligibleEntry{Team: team, Game: game, Spread: spread})
		return nil
	}

	for _, game := range games {
		if err := consider(game, game.HomeTeamID); err != nil {
			return nil, err
		}
		if err := consider(game, game.AwayTeamID); err != nil {
			return nil, err
		}
	}

	sort.Slice(entries, func(a, b int) bool {
		if entries[a].Team.Name != entries[b].Team.Name {
			return entries[a].Team.Name < entries[b].Team.Name
		}
		return entries[a].Team.ID < entries[b].Team.ID
	})

	return entries, nil
}

// EligibleTeamsForUser loads week games and the user's ledger and computes the
// legal pick set. Games that have already kicked off are excluded.
func EligibleTeamsForUser(db *gorm.DB, user models.User, week models.Week) ([]EligibleEntry, error) {
	var games []models.Game
	if err := db.Where("week_id = ?", week.ID).Find(&games).Error; err != nil {
		return nil, err
	}

	now := common.Clock.Now()
	upcoming := make([]models.Game, 0, len(games))
	for _, game := range games {
		if game.GameTime != nil && now.After(*game.GameTime) {
			continue
		}
		upcoming = append(upcoming, game)
	}

	teams, err := loadTeams(db)
	if err != nil {
		return nil, err
	}

	ledger, err := LoadTeamLedger(db, user.ID, week.SeasonID)
	if err != nil {
		return nil, err
	}

	return ComputeEligibility(week, upcoming, teams, ledger)
}

func loadTeams(db *gorm.DB) (map[uint]models.Team, error) {
	var teams []models.Team
	if err := db.Find(&teams).Error; err != nil {
		return nil, err
	}

	byID := make(map[uint]models.Team, len(teams))
	for _, team := range teams {
		byID[team.ID] = team
	}
	return byID, nil
}
