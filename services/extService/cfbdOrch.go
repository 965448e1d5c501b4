package extService

import (
	"encoding/json"
	"fmt"
	"log"
	"runtime/debug"
	"survivorPoolBot/models"
	"survivorPoolBot/models/external"
	"survivorPoolBot/services/common"

	"gorm.io/gorm"
)

// GetScoreboard pulls the live CFBD scoreboard for FBS games.
func GetScoreboard() (_ external.CFBD_Scoreboard, err error) {
	defer func() {
		if r := recover(); r != nil {
			log.Println("Recovered in GetScoreboard", r)
			debug.PrintStack()
			err = fmt.Errorf("panic recovered in GetScoreboard: %v", r)
		}
	}()

	scoreboardUrl := "https://api.collegefootballdata.com/scoreboard?classification=fbs"

	resp, err := common.CFBDWrapper(scoreboardUrl)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var scoreboard external.CFBD_Scoreboard
	if err := json.NewDecoder(resp.Body).Decode(&scoreboard); err != nil {
		return nil, err
	}
	return scoreboard, nil
}

// UpdateFinalScores marks a week's games final from the scoreboard, matching
// on the stored display names. Returns the games that newly went final so the
// caller can hand them to result processing.
func UpdateFinalScores(db *gorm.DB, week models.Week) ([]models.Game, error) {
	var games []models.Game
	if err := db.Where("week_id = ? AND status <> ?", week.ID, models.GameFinal).Find(&games).Error; err != nil {
		return nil, err
	}
	if len(games) == 0 {
		return nil, nil
	}

	scoreboard, err := GetScoreboard()
	if err != nil {
		return nil, err
	}

	type score struct {
		homePoints int
		awayPoints int
	}
	finals := make(map[string]score)
	for _, entry := range scoreboard {
		if entry.Status != "completed" {
			continue
		}
		if entry.HomeTeam.Points == nil || entry.AwayTeam.Points == nil {
			continue
		}
		key := entry.HomeTeam.Name + "|" + entry.AwayTeam.Name
		finals[key] = score{homePoints: *entry.HomeTeam.Points, awayPoints: *entry.AwayTeam.Points}
	}

	updated := make([]models.Game, 0)
	for _, game := range games {
		if game.HomeTeamName == nil || game.AwayTeamName == nil {
			continue
		}
		result, found := finals[*game.HomeTeamName+"|"+*game.AwayTeamName]
		if !found {
			continue
		}
		if result.homePoints == result.awayPoints {
			// College football has no regulation ties; a tied scoreboard
			// entry means overtime is still running.
			continue
		}

		homeWon := result.homePoints > result.awayPoints
		game.HomeTeamWon = &homeWon
		game.Status = models.GameFinal
		if err := db.Save(&game).Error; err != nil {
			log.Printf("Error finalizing game %d: %v", game.ID, err)
			continue
		}
		updated = append(updated, game)
	}

	return updated, nil
}
