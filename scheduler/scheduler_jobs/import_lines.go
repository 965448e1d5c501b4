package scheduler_jobs

import (
	"fmt"
	"log"
	"runtime/debug"
	"survivorPoolBot/models"
	"survivorPoolBot/services/common"
	"survivorPoolBot/services/extService"
	"survivorPoolBot/services/seasonService"

	"github.com/bwmarrin/discordgo"
	"gorm.io/gorm"
)

// ImportLines refreshes games and spreads for every guild's active week, so
// lines stay current until the deadline locks them into picks.
func ImportLines(s *discordgo.Session, db *gorm.DB) (err error) {
	defer func() {
		if r := recover(); r != nil {
			log.Println("Recovered in ImportLines", r)
			debug.PrintStack()
			err = fmt.Errorf("panic recovered in ImportLines: %v", r)
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
		if week == nil || week.IsComplete || common.DeadlinePassed(week.Deadline) {
			continue
		}

		imported, err := extService.ImportGames(db, *week)
		if err != nil {
			common.SendError(s, nil, err, db)
			continue
		}
		log.Printf("Imported %d games for guild %s week %d", imported, guild.GuildID, week.WeekNumber)
	}

	return nil
}
