package resultService

import (
	"survivorPoolBot/models"
	"testing"
)

func TestRankUsers(t *testing.T) {
	tests := []struct {
		name     string
		users    []models.User
		expected []uint // user IDs in rank order
	}{
		{
			name: "more lives ranks higher",
			users: []models.User{
				{ID: 1, LivesRemaining: 1},
				{ID: 2, LivesRemaining: 2},
			},
			expected: []uint{2, 1},
		},
		{
			name: "equal lives broken by lower cumulative spread",
			users: []models.User{
				{ID: 1, LivesRemaining: 2, CumulativeSpread: 2},
				{ID: 2, LivesRemaining: 2, CumulativeSpread: -3},
			},
			expected: []uint{2, 1},
		},
		{
			name: "eliminated players rank below all survivors",
			users: []models.User{
				{ID: 1, LivesRemaining: 0, IsEliminated: true, EliminatedWeek: intPtr(8)},
				{ID: 2, LivesRemaining: 1},
			},
			expected: []uint{2, 1},
		},
		{
			name: "later elimination ranks higher among the eliminated",
			users: []models.User{
				{ID: 1, LivesRemaining: 0, IsEliminated: true, EliminatedWeek: intPtr(3)},
				{ID: 2, LivesRemaining: 0, IsEliminated: true, EliminatedWeek: intPtr(7)},
				{ID: 3, LivesRemaining: 2},
			},
			expected: []uint{3, 2, 1},
		},
		{
			name: "eliminated same week broken by spread",
			users: []models.User{
				{ID: 1, LivesRemaining: 0, IsEliminated: true, EliminatedWeek: intPtr(5), CumulativeSpread: 10},
				{ID: 2, LivesRemaining: 0, IsEliminated: true, EliminatedWeek: intPtr(5), CumulativeSpread: -2},
			},
			expected: []uint{2, 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows := RankUsers(tt.users)
			if len(rows) != len(tt.expected) {
				t.Fatalf("expected %d rows, got %d", len(tt.expected), len(rows))
			}
			for idx, row := range rows {
				if row.User.ID != tt.expected[idx] {
					t.Errorf("rank %d: expected user %d, got %d", idx+1, tt.expected[idx], row.User.ID)
				}
				if row.Rank != idx+1 {
					t.Errorf("expected rank %d, got %d", idx+1, row.Rank)
				}
			}
		})
	}
}

func TestRankUsers_Deterministic(t *testing.T) {
	users := []models.User{
		{ID: 3, LivesRemaining: 2, Username: strPtr("carol")},
		{ID: 1, LivesRemaining: 2, Username: strPtr("alice")},
		{ID: 2, LivesRemaining: 2, Username: strPtr("bob")},
	}

	first := RankUsers(users)
	second := RankUsers(users)
	for idx := range first {
		if first[idx].User.ID != second[idx].User.ID {
			t.Fatalf("ranking not deterministic at position %d", idx)
		}
	}
	if first[0].User.ID != 1 || first[1].User.ID != 2 || first[2].User.ID != 3 {
		t.Errorf("expected alphabetical tie-break, got %v %v %v",
			first[0].User.ID, first[1].User.ID, first[2].User.ID)
	}
}
