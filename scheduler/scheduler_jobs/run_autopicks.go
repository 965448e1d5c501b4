package scheduler_jobs

import (
	"fmt"
	"log"
	"runtime/debug"
	"survivorPoolBot/models"
	"survivorPoolBot/services/common"
	"survivorPoolBot/services/pickService"
	"survivorPoolBot/services/seasonService"

	"github.com/bwmarrin/discordgo"
	"gorm.io/gorm"
)

// RunAutoPicks sweeps every guild's active week and fills picks for users who
// missed a deadline that has just passed.
func RunAutoPicks(s *discordgo.Session, db *gorm.DB) (err error) {
	defer func() {
		if r := recover(); r != nil {
			log.Println("Recovered in RunAutoPicks", r)
			debug.PrintStack()
			err = fmt.Errorf("panic recovered in RunAutoPicks: %v", r)
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
		if week == nil || week.IsComplete || !common.DeadlinePassed(week.Deadline) {
			continue
		}

		results, err := pickService.ProcessAutoPicks(db, guild, *week)
		if err != nil {
			common.SendError(s, nil, err, db)
			continue
		}
		pickService.ReportAutoPickFailures(s, db, guild, results)
	}

	return nil
}
