package resultService

import (
	"errors"
	"survivorPoolBot/models"
	"survivorPoolBot/services/common"
	"testing"
)

func uintPtr(v uint) *uint    { return &v }
func boolPtr(v bool) *bool    { return &v }
func intPtr(v int) *int       { return &v }
func strPtr(v string) *string { return &v }

func finalGame(id uint, homeID, awayID uint, homeWon bool) models.Game {
	return models.Game{
		ID:          id,
		HomeTeamID:  uintPtr(homeID),
		AwayTeamID:  uintPtr(awayID),
		Status:      models.GameFinal,
		HomeTeamWon: boolPtr(homeWon),
	}
}

func TestResolvePickOutcome(t *testing.T) {
	tests := []struct {
		name     string
		pick     models.Pick
		game     models.Game
		expected string
		wantErr  error
	}{
		{
			name:     "picked home team and home won",
			pick:     models.Pick{ID: 1, TeamID: 10, Outcome: models.PickPending},
			game:     finalGame(100, 10, 11, true),
			expected: models.PickWin,
		},
		{
			name:     "picked home team and home lost",
			pick:     models.Pick{ID: 1, TeamID: 10, Outcome: models.PickPending},
			game:     finalGame(100, 10, 11, false),
			expected: models.PickLoss,
		},
		{
			name:     "picked away team and home lost",
			pick:     models.Pick{ID: 1, TeamID: 11, Outcome: models.PickPending},
			game:     finalGame(100, 10, 11, false),
			expected: models.PickWin,
		},
		{
			name:     "unfinished game stays pending",
			pick:     models.Pick{ID: 1, TeamID: 10, Outcome: models.PickPending},
			game:     models.Game{ID: 100, HomeTeamID: uintPtr(10), AwayTeamID: uintPtr(11), Status: models.GameScheduled},
			expected: models.PickPending,
		},
		{
			name:    "already graded pick reports AlreadyProcessed",
			pick:    models.Pick{ID: 1, TeamID: 10, Outcome: models.PickWin},
			game:    finalGame(100, 10, 11, true),
			wantErr: common.ErrAlreadyProcessed,
		},
		{
			name:    "pick for a team not in the game is an integrity error",
			pick:    models.Pick{ID: 1, TeamID: 99, Outcome: models.PickPending},
			game:    finalGame(100, 10, 11, true),
			wantErr: common.ErrDataIntegrity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			outcome, err := resolvePickOutcome(tt.pick, tt.game)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if outcome != tt.expected {
				t.Errorf("expected %s, got %s", tt.expected, outcome)
			}
		})
	}
}

func TestSpreadContribution(t *testing.T) {
	tests := []struct {
		name     string
		spread   float64
		expected float64
	}{
		{"favorite at -7 adds 7", -7, 7},
		{"underdog at +3 subtracts 3", 3, -3},
		{"pick'em adds nothing", 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SpreadContribution(tt.spread); got != tt.expected {
				t.Errorf("expected %v, got %v", tt.expected, got)
			}
		})
	}

	t.Run("two-week accumulation keeps signs", func(t *testing.T) {
		total := SpreadContribution(-7) + SpreadContribution(3)
		if total != 4 {
			t.Errorf("expected +4, got %v", total)
		}
	})
}

func TestRevivalRule(t *testing.T) {
	week := models.Week{ID: 5, WeekNumber: 9}

	tests := []struct {
		name         string
		users        []models.User
		lostThisWeek map[uint]bool
		expectRevive bool
		cohortSize   int
	}{
		{
			name: "entire one-life cohort lost - rule fires",
			users: []models.User{
				// Both were at 1 life, both lost, both already docked to 0.
				{ID: 1, LivesRemaining: 0, IsEliminated: true, EliminatedWeek: intPtr(9)},
				{ID: 2, LivesRemaining: 0, IsEliminated: true, EliminatedWeek: intPtr(9)},
				{ID: 3, LivesRemaining: 2},
			},
			lostThisWeek: map[uint]bool{1: true, 2: true},
			expectRevive: true,
			cohortSize:   2,
		},
		{
			name: "one cohort member survived - rule does not fire",
			users: []models.User{
				{ID: 1, LivesRemaining: 0, IsEliminated: true, EliminatedWeek: intPtr(9)},
				{ID: 2, LivesRemaining: 1}, // won this week, still at 1
			},
			lostThisWeek: map[uint]bool{1: true},
			expectRevive: false,
			cohortSize:   2,
		},
		{
			name: "empty cohort - rule does not fire",
			users: []models.User{
				{ID: 1, LivesRemaining: 1}, // lost, but started the week at 2
				{ID: 2, LivesRemaining: 2},
			},
			lostThisWeek: map[uint]bool{1: true},
			expectRevive: false,
			cohortSize:   0,
		},
		{
			name: "previously eliminated users are not in the cohort",
			users: []models.User{
				{ID: 1, LivesRemaining: 0, IsEliminated: true, EliminatedWeek: intPtr(4)},
				{ID: 2, LivesRemaining: 0, IsEliminated: true, EliminatedWeek: intPtr(9)},
			},
			lostThisWeek: map[uint]bool{2: true},
			expectRevive: true,
			cohortSize:   1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cohort := revivalCohort(tt.users, week, tt.lostThisWeek)
			if len(cohort) != tt.cohortSize {
				t.Fatalf("expected cohort of %d, got %d", tt.cohortSize, len(cohort))
			}
			if got := shouldRevive(cohort, tt.lostThisWeek); got != tt.expectRevive {
				t.Errorf("expected shouldRevive=%v, got %v", tt.expectRevive, got)
			}
		})
	}
}

func TestRevivalCohort_SnapshotBeforeLosses(t *testing.T) {
	// Users 1 and 2 both entered the week at 1 life. User 1's loss was
	// already applied (lives 0), user 2's was not yet (lives 1). The cohort
	// reconstruction must treat them identically.
	week := models.Week{ID: 5, WeekNumber: 9}
	users := []models.User{
		{ID: 1, LivesRemaining: 0, IsEliminated: true, EliminatedWeek: intPtr(9)},
		{ID: 2, LivesRemaining: 1},
	}
	lost := map[uint]bool{1: true, 2: true}

	cohort := revivalCohort(users, week, lost)
	if len(cohort) != 2 {
		t.Fatalf("expected both users in the cohort, got %d", len(cohort))
	}
	if !shouldRevive(cohort, lost) {
		t.Errorf("expected revival to fire for a fully-lost cohort")
	}
}
