package pickService

import (
	"errors"
	"survivorPoolBot/models"
	"survivorPoolBot/services/common"
	"testing"
)

func uintPtr(v uint) *uint { return &v }

func emptyLedger() TeamLedger {
	return TeamLedger{
		UsedTeamIDs:       make(map[uint]bool),
		PlayoffEliminated: make(map[uint]bool),
	}
}

func testTeams() map[uint]models.Team {
	return map[uint]models.Team{
		1: {ID: 1, Name: "Alabama", Conference: "SEC", InPlayoffField: true},
		2: {ID: 2, Name: "Georgia", Conference: "SEC", InPlayoffField: true},
		3: {ID: 3, Name: "Ohio State", Conference: "Big Ten", InPlayoffField: true},
		4: {ID: 4, Name: "Purdue", Conference: "Big Ten", InPlayoffField: false},
	}
}

func teamNames(entries []EligibleEntry) []string {
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Team.Name)
	}
	return names
}

func TestComputeEligibility_RegularWeek(t *testing.T) {
	week := models.Week{ID: 10, WeekNumber: 3}
	games := []models.Game{
		{ID: 100, WeekID: 10, HomeTeamID: uintPtr(1), AwayTeamID: uintPtr(4), HomeSpread: -10},
		{ID: 101, WeekID: 10, HomeTeamID: uintPtr(2), AwayTeamID: uintPtr(3), HomeSpread: 3},
	}

	tests := []struct {
		name     string
		ledger   TeamLedger
		expected []string
	}{
		{
			name:     "nothing used - all four sides eligible",
			ledger:   emptyLedger(),
			expected: []string{"Alabama", "Georgia", "Ohio State", "Purdue"},
		},
		{
			name: "used teams excluded in regular weeks",
			ledger: TeamLedger{
				UsedTeamIDs:       map[uint]bool{1: true, 3: true},
				PlayoffEliminated: map[uint]bool{},
			},
			expected: []string{"Georgia", "Purdue"},
		},
		{
			name: "playoff eliminations ignored during regular season",
			ledger: TeamLedger{
				UsedTeamIDs:       map[uint]bool{},
				PlayoffEliminated: map[uint]bool{2: true},
			},
			expected: []string{"Alabama", "Georgia", "Ohio State", "Purdue"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries, err := ComputeEligibility(week, games, testTeams(), tt.ledger)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			got := teamNames(entries)
			if len(got) != len(tt.expected) {
				t.Fatalf("expected %v, got %v", tt.expected, got)
			}
			for idx := range got {
				if got[idx] != tt.expected[idx] {
					t.Errorf("position %d: expected %s, got %s", idx, tt.expected[idx], got[idx])
				}
			}
		})
	}
}

func TestComputeEligibility_FavoritismLimit(t *testing.T) {
	week := models.Week{ID: 10, WeekNumber: 5}

	tests := []struct {
		name       string
		homeSpread float64
		expected   []string
	}{
		{
			name:       "spread -17 excludes the favorite but keeps the underdog",
			homeSpread: -17,
			expected:   []string{"Purdue"},
		},
		{
			name:       "spread -16.5 is already over the limit",
			homeSpread: -16.5,
			expected:   []string{"Purdue"},
		},
		{
			name:       "spread -16.3 keeps both sides on the board",
			homeSpread: -16.3,
			expected:   []string{"Alabama", "Purdue"},
		},
		{
			name:       "away favorite over the limit excluded the same way",
			homeSpread: 17,
			expected:   []string{"Alabama"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			games := []models.Game{
				{ID: 100, WeekID: 10, HomeTeamID: uintPtr(1), AwayTeamID: uintPtr(4), HomeSpread: tt.homeSpread},
			}
			entries, err := ComputeEligibility(week, games, testTeams(), emptyLedger())
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			got := teamNames(entries)
			if len(got) != len(tt.expected) {
				t.Fatalf("expected %v, got %v", tt.expected, got)
			}
			for idx := range got {
				if got[idx] != tt.expected[idx] {
					t.Errorf("position %d: expected %s, got %s", idx, tt.expected[idx], got[idx])
				}
			}
		})
	}
}

func TestComputeEligibility_PlayoffWeek(t *testing.T) {
	week := models.Week{ID: 20, WeekNumber: 15, IsPlayoff: true}
	games := []models.Game{
		{ID: 200, WeekID: 20, HomeTeamID: uintPtr(1), AwayTeamID: uintPtr(2), HomeSpread: -3},
		{ID: 201, WeekID: 20, HomeTeamID: uintPtr(3), AwayTeamID: uintPtr(4), HomeSpread: -6},
	}

	t.Run("used teams become available again in the playoffs", func(t *testing.T) {
		ledger := emptyLedger()
		ledger.UsedTeamIDs[1] = true
		ledger.UsedTeamIDs[2] = true

		entries, err := ComputeEligibility(week, games, testTeams(), ledger)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		got := teamNames(entries)
		// Purdue is outside the playoff field, so three teams remain.
		expected := []string{"Alabama", "Georgia", "Ohio State"}
		if len(got) != len(expected) {
			t.Fatalf("expected %v, got %v", expected, got)
		}
		for idx := range got {
			if got[idx] != expected[idx] {
				t.Errorf("position %d: expected %s, got %s", idx, expected[idx], got[idx])
			}
		}
	})

	t.Run("playoff-eliminated teams stay unavailable", func(t *testing.T) {
		ledger := emptyLedger()
		ledger.PlayoffEliminated[2] = true

		entries, err := ComputeEligibility(week, games, testTeams(), ledger)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		for _, entry := range entries {
			if entry.Team.ID == 2 {
				t.Errorf("eliminated team %s should not be eligible", entry.Team.Name)
			}
		}
	})

	t.Run("empty set is valid, not an error", func(t *testing.T) {
		ledger := emptyLedger()
		ledger.PlayoffEliminated[1] = true
		ledger.PlayoffEliminated[2] = true
		ledger.PlayoffEliminated[3] = true

		entries, err := ComputeEligibility(week, games, testTeams(), ledger)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(entries) != 0 {
			t.Errorf("expected empty eligible set, got %v", teamNames(entries))
		}
	})
}

func TestComputeEligibility_DataIntegrity(t *testing.T) {
	week := models.Week{ID: 10, WeekNumber: 7}

	t.Run("team in two games is an integrity error", func(t *testing.T) {
		games := []models.Game{
			{ID: 100, WeekID: 10, HomeTeamID: uintPtr(1), AwayTeamID: uintPtr(2), HomeSpread: -3},
			{ID: 101, WeekID: 10, HomeTeamID: uintPtr(1), AwayTeamID: uintPtr(3), HomeSpread: -7},
		}
		_, err := ComputeEligibility(week, games, testTeams(), emptyLedger())
		if !errors.Is(err, common.ErrDataIntegrity) {
			t.Fatalf("expected ErrDataIntegrity, got %v", err)
		}
	})

	t.Run("unknown team reference is an integrity error", func(t *testing.T) {
		games := []models.Game{
			{ID: 100, WeekID: 10, HomeTeamID: uintPtr(99), AwayTeamID: uintPtr(2), HomeSpread: -3},
		}
		_, err := ComputeEligibility(week, games, testTeams(), emptyLedger())
		if !errors.Is(err, common.ErrDataIntegrity) {
			t.Fatalf("expected ErrDataIntegrity, got %v", err)
		}
	})
}
