package scheduler_jobs

import (
	"fmt"
	"log"
	"runtime/debug"
	"survivorPoolBot/models"
	"survivorPoolBot/services/common"
	"survivorPoolBot/services/extService"
	"survivorPoolBot/services/messageService"
	"survivorPoolBot/services/resultService"
	"survivorPoolBot/services/seasonService"

	"github.com/bwmarrin/discordgo"
	"gorm.io/gorm"
)

// weekNeedsGrading reports whether an open week has any final game to grade.
// The decision reads stored game status rather than what this run changed, so
// a pass that died between the score update and grading is picked up by the
// next run.
func weekNeedsGrading(week models.Week, games []models.Game) bool {
	if week.IsComplete {
		return false
	}
	for _, game := range games {
		if game.Status == models.GameFinal && game.HomeTeamWon != nil {
			return true
		}
	}
	return false
}

// CheckGameEnd pulls the scoreboard for each guild's active week, grades picks
// on games that went final, and posts the recap once the week wraps.
func CheckGameEnd(s *discordgo.Session, db *gorm.DB) (err error) {
	defer func() {
		if r := recover(); r != nil {
			log.Println("Recovered in CheckGameEnd", r)
			debug.PrintStack()
			err = fmt.Errorf("panic recovered in CheckGameEnd: %v", r)
		}
	}()

	var guilds []models.Guild
	if err := db.Find(&guilds).Error; err != nil {
		return err
	}

	for _, guild := range guilds {
		week, err := seasonService.ActiveWeek(db, guild.GuildID)
		if err != nil {
			common.SendError(s, nil, err, db)
			continue
		}
		if week == nil || week.IsComplete {
			continue
		}

		if _, err := extService.UpdateFinalScores(db, *week); err != nil {
			common.SendError(s, nil, err, db)
			continue
		}

		var games []models.Game
		if err := db.Where("week_id = ?", week.ID).Find(&games).Error; err != nil {
			common.SendError(s, nil, err, db)
			continue
		}
		if !weekNeedsGrading(*week, games) {
			continue
		}

		failures, err := resultService.ProcessWeekResults(db, guild, *week)
		if err != nil {
			common.SendError(s, nil, err, db)
			continue
		}
		resultService.ReportFailures(s, db, guild, *week, failures)

		var refreshed models.Week
		if err := db.First(&refreshed, week.ID).Error; err != nil {
			common.SendError(s, nil, err, db)
			continue
		}
		if refreshed.IsComplete {
			if err := messageService.SendWeekRecap(s, db, guild, refreshed); err != nil {
				common.SendError(s, nil, err, db)
			}
		}
	}

	return nil
}
