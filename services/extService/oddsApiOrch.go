package extService

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"runtime/debug"
	"survivorPoolBot/models"
	"survivorPoolBot/models/external"
	"survivorPoolBot/services/common"

	"gorm.io/gorm"
)

// teamNameMap translates The Odds API's full team names to the pool's school
// names.
var teamNameMap = map[string]string{
	"Texas Longhorns":              "Texas",
	"Penn State Nittany Lions":     "Penn State",
	"Ohio State Buckeyes":          "Ohio State",
	"Clemson Tigers":               "Clemson",
	"Georgia Bulldogs":             "Georgia",
	"Notre Dame Fighting Irish":    "Notre Dame",
	"Oregon Ducks":                 "Oregon",
	"Alabama Crimson Tide":         "Alabama",
	"LSU Tigers":                   "LSU",
	"Miami Hurricanes":             "Miami",
	"Arizona State Sun Devils":     "Arizona State",
	"Illinois Fighting Illini":     "Illinois",
	"South Carolina Gamecocks":     "South Carolina",
	"Michigan Wolverines":          "Michigan",
	"Florida Gators":               "Florida",
	"SMU Mustangs":                 "SMU",
	"Iowa State Cyclones":          "Iowa State",
	"Texas A&M Aggies":             "Texas A&M",
	"Tennessee Volunteers":         "Tennessee",
	"Indiana Hoosiers":             "Indiana",
	"Ole Miss Rebels":              "Ole Miss",
	"Kansas State Wildcats":        "Kansas State",
	"Colorado Buffaloes":           "Colorado",
	"Missouri Tigers":              "Missouri",
	"BYU Cougars":                  "BYU",
	"Boise State Broncos":          "Boise State",
	"Oklahoma Sooners":             "Oklahoma",
	"Nebraska Cornhuskers":         "Nebraska",
	"Auburn Tigers":                "Auburn",
	"Utah Utes":                    "Utah",
	"USC Trojans":                  "USC",
	"Wisconsin Badgers":            "Wisconsin",
	"Louisville Cardinals":         "Louisville",
	"Georgia Tech Yellow Jackets":  "Georgia Tech",
	"Baylor Bears":                 "Baylor",
	"TCU Horned Frogs":             "TCU",
	"Texas Tech Red Raiders":       "Texas Tech",
	"Arkansas Razorbacks":          "Arkansas",
	"Kentucky Wildcats":            "Kentucky",
	"Iowa Hawkeyes":                "Iowa",
	"Washington Huskies":           "Washington",
	"Michigan State Spartans":      "Michigan State",
	"Minnesota Golden Gophers":     "Minnesota",
	"Virginia Tech Hokies":         "Virginia Tech",
	"North Carolina Tar Heels":     "North Carolina",
	"Pittsburgh Panthers":          "Pittsburgh",
	"Duke Blue Devils":             "Duke",
	"Syracuse Orange":              "Syracuse",
	"California Golden Bears":      "California",
	"Vanderbilt Commodores":        "Vanderbilt",
	"Mississippi State Bulldogs":   "Mississippi State",
	"Oklahoma State Cowboys":       "Oklahoma State",
	"West Virginia Mountaineers":   "West Virginia",
	"Arizona Wildcats":             "Arizona",
	"UCLA Bruins":                  "UCLA",
	"Stanford Cardinal":            "Stanford",
	"Purdue Boilermakers":          "Purdue",
	"Northwestern Wildcats":        "Northwestern",
	"Rutgers Scarlet Knights":      "Rutgers",
	"Maryland Terrapins":           "Maryland",
	"Virginia Cavaliers":           "Virginia",
	"Wake Forest Demon Deacons":    "Wake Forest",
	"NC State Wolfpack":            "NC State",
	"Boston College Eagles":        "Boston College",
	"Florida State Seminoles":      "Florida State",
	"Cincinnati Bearcats":          "Cincinnati",
	"UCF Knights":                  "UCF",
	"Houston Cougars":              "Houston",
	"Kansas Jayhawks":              "Kansas",
	"Washington State Cougars":     "Washington State",
	"Oregon State Beavers":         "Oregon State",
}

// GetNCAAFOdds pulls the current NCAAF spread lines.
func GetNCAAFOdds() (_ []external.OddsAPI_Event, err error) {
	defer func() {
		if r := recover(); r != nil {
			log.Println("Recovered in GetNCAAFOdds", r)
			debug.PrintStack()
			err = fmt.Errorf("panic recovered in GetNCAAFOdds: %v", r)
		}
	}()

	oddsUrl := "https://api.the-odds-api.com/v4/sports/americanfootball_ncaaf/odds?regions=us&markets=spreads&oddsFormat=american"

	resp, err := common.OddsAPIWrapper(oddsUrl)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var events []external.OddsAPI_Event
	if err := json.NewDecoder(resp.Body).Decode(&events); err != nil {
		return nil, err
	}
	return events, nil
}

// ImportGames creates or refreshes a week's games from the odds feed. Events
// where neither side is a tracked team are skipped; a tracked team facing an
// untracked opponent keeps the opponent as a display name only, exactly as
// the pool tracks its fixed team list.
func ImportGames(db *gorm.DB, week models.Week) (int, error) {
	events, err := GetNCAAFOdds()
	if err != nil {
		return 0, err
	}

	var teams []models.Team
	if err := db.Find(&teams).Error; err != nil {
		return 0, err
	}
	teamByName := make(map[string]models.Team, len(teams))
	for _, team := range teams {
		teamByName[team.Name] = team
	}

	imported := 0
	for _, event := range events {
		homeName := translateTeamName(event.HomeTeam)
		awayName := translateTeamName(event.AwayTeam)

		homeTeam, homeTracked := teamByName[homeName]
		awayTeam, awayTracked := teamByName[awayName]
		if !homeTracked && !awayTracked {
			continue
		}

		homeSpread, err := homeSpreadFromEvent(event)
		if err != nil {
			log.Printf("No usable line for %s @ %s: %v", event.AwayTeam, event.HomeTeam, err)
			continue
		}

		game := models.Game{WeekID: week.ID}
		eventID := event.ID
		db.Where("odds_api_id = ? AND week_id = ?", event.ID, week.ID).FirstOrInit(&game)

		game.OddsAPIID = &eventID
		game.HomeSpread = homeSpread
		gameTime := event.CommenceTime
		game.GameTime = &gameTime
		game.HomeTeamName = &homeName
		game.AwayTeamName = &awayName
		if homeTracked {
			homeID := homeTeam.ID
			game.HomeTeamID = &homeID
		}
		if awayTracked {
			awayID := awayTeam.ID
			game.AwayTeamID = &awayID
		}

		if err := db.Save(&game).Error; err != nil {
			log.Printf("Error saving game %s @ %s: %v", awayName, homeName, err)
			continue
		}
		imported++
	}

	return imported, nil
}

func translateTeamName(apiName string) string {
	if name, ok := teamNameMap[apiName]; ok {
		return name
	}
	return apiName
}

// homeSpreadFromEvent extracts the home team's signed spread from the first
// usable bookmaker.
func homeSpreadFromEvent(event external.OddsAPI_Event) (float64, error) {
	market, err := common.PickBookmaker(event.Bookmakers)
	if err != nil {
		return 0, err
	}

	for _, outcome := range market.Outcomes {
		if outcome.Name == event.HomeTeam && outcome.Point != nil {
			return *outcome.Point, nil
		}
	}
	return 0, errors.New("no home-side point in spreads market")
}
