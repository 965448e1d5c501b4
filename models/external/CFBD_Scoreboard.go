package external

import "time"

// CFBD /scoreboard payload. Points are null until the game has started, so
// both sides use pointers; Status is "completed" once the game is final.

type CFBD_ScoreboardGame struct {
	ID             int           `json:"id"`
	StartDate      time.Time     `json:"startDate"`
	StartTimeTBD   bool          `json:"startTimeTBD"`
	NeutralSite    bool          `json:"neutralSite"`
	ConferenceGame bool          `json:"conferenceGame"`
	Status         string        `json:"status"`
	Period         *int          `json:"period"`
	Clock          *string       `json:"clock"`
	HomeTeam       CFBD_SideInfo `json:"homeTeam"`
	AwayTeam       CFBD_SideInfo `json:"awayTeam"`
}

type CFBD_SideInfo struct {
	ID             int    `json:"id"`
	Name           string `json:"name"`
	Conference     string `json:"conference"`
	Classification string `json:"classification"`
	Points         *int   `json:"points"`
}

type CFBD_Scoreboard []CFBD_ScoreboardGame
