package scheduler_jobs

import (
	"fmt"
	"log"
	"math"
	"runtime/debug"
	"survivorPoolBot/models"
	"survivorPoolBot/services/common"
	"survivorPoolBot/services/messageService"
	"survivorPoolBot/services/seasonService"
	"time"

	"github.com/bwmarrin/discordgo"
	"gorm.io/gorm"
)

// SendReminders nudges users who still owe a pick. The job fires once a day
// shortly before the typical Saturday slate: the day-before run lands the
// 25-hour warning, the day-of run the 1-hour warning.
func SendReminders(s *discordgo.Session, db *gorm.DB) (err error) {
	defer func() {
		if r := recover(); r != nil {
			log.Println("Recovered in SendReminders", r)
			debug.PrintStack()
			err = fmt.Errorf("panic recovered in SendReminders: %v", r)
		}
	}()

	var guilds []models.Guild
	if err := db.Find(&guilds).Error; err != nil {
		return err
	}

	now := common.Clock.Now()
	for _, guild := range guilds {
		week, err := seasonService.ActiveWeek(db, guild.GuildID)
		if err != nil {
			common.SendError(s, nil, err, db)
			continue
		}
		if week == nil || week.IsComplete {
			continue
		}

		until := week.Deadline.Sub(now)
		if until <= 0 || until > 26*time.Hour {
			continue
		}

		hoursLeft := int(math.Ceil(until.Hours()))
		if err := messageService.SendPickReminder(s, db, guild, *week, hoursLeft); err != nil {
			common.SendError(s, nil, err, db)
		}
	}

	return nil
}
