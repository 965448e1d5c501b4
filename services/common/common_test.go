package common

import (
	"testing"

	"survivorPoolBot/models/external"
)

func TestFormatSpread(t *testing.T) {
	cases := []struct {
		spread float64
		want   string
	}{
		{0, "PK"},
		{-7, "-7"},
		{-16.5, "-16.5"},
		{3, "+3"},
		{3.5, "+3.5"},
	}

	for _, c := range cases {
		if got := FormatSpread(c.spread); got != c.want {
			t.Errorf("FormatSpread(%v) = %q, want %q", c.spread, got, c.want)
		}
	}
}

func TestPickBookmakerPrefersKnownBooks(t *testing.T) {
	point := -6.5
	spreads := func(key string) external.OddsAPI_Bookmaker {
		return external.OddsAPI_Bookmaker{
			Key: key,
			Markets: []external.OddsAPI_Market{
				{
					Key: "spreads",
					Outcomes: []external.OddsAPI_Outcome{
						{Name: "Home", Point: &point},
						{Name: "Away", Point: &point},
					},
				},
			},
		}
	}

	books := []external.OddsAPI_Bookmaker{spreads("unibet"), spreads("fanduel")}
	market, err := PickBookmaker(books)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(market.Outcomes) != 2 {
		t.Errorf("expected 2 outcomes, got %d", len(market.Outcomes))
	}

	// Unknown books are still usable when no preferred one carries a line.
	books = []external.OddsAPI_Bookmaker{spreads("unibet")}
	if _, err := PickBookmaker(books); err != nil {
		t.Errorf("expected fallback to unknown book, got error: %v", err)
	}

	if _, err := PickBookmaker(nil); err == nil {
		t.Error("expected error with no bookmakers")
	}
}
