package scheduler

import (
	"fmt"
	"survivorPoolBot/models"
	"survivorPoolBot/scheduler/scheduler_jobs"

	"github.com/bwmarrin/discordgo"
	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

func SetupCron(s *discordgo.Session, db *gorm.DB) {
	cronService := cron.New(cron.WithSeconds())

	_, err := cronService.AddFunc("0 */5 * * 8-12 *", func() {
		// // Every 5 minutes, August through December
		err := scheduler_jobs.RunAutoPicks(s, db)
		if err != nil {
			fmt.Println(err)
		}
	})
	_, err = cronService.AddFunc("0 */5 * * 1 *", func() {
		// // Every 5 minutes through the January playoff rounds
		err := scheduler_jobs.RunAutoPicks(s, db)
		if err != nil {
			fmt.Println(err)
		}
	})

	_, err = cronService.AddFunc("0 0 */1 * 8-12 *", func() {
		// // Every hour, August through December
		err := scheduler_jobs.CheckGameEnd(s, db)
		if err != nil {
			fmt.Println(err)
		}
	})
	_, err = cronService.AddFunc("0 0 */1 * 1 *", func() {
		// // Every hour through the January playoff rounds
		err := scheduler_jobs.CheckGameEnd(s, db)
		if err != nil {
			fmt.Println(err)
		}
	})

	_, err = cronService.AddFunc("0 0 9 * 8-12 *", func() {
		// // At 9am every day, August through December
		err := scheduler_jobs.ImportLines(s, db)
		if err != nil {
			fmt.Println(err)
		}
	})
	_, err = cronService.AddFunc("0 0 9 * 1 *", func() {
		// // At 9am every day through the January playoff rounds
		err := scheduler_jobs.ImportLines(s, db)
		if err != nil {
			fmt.Println(err)
		}
	})

	_, err = cronService.AddFunc("0 59 9 * 8-12 *", func() {
		// // At 9:59am every day, August through December
		err := scheduler_jobs.SendReminders(s, db)
		if err != nil {
			fmt.Println(err)
		}
	})
	_, err = cronService.AddFunc("0 59 9 * 1 *", func() {
		// // At 9:59am every day through the January playoff rounds
		err := scheduler_jobs.SendReminders(s, db)
		if err != nil {
			fmt.Println(err)
		}
	})

	if err != nil {
		errLog := models.ErrorLog{
			GuildID: "CRON ERR",
			Message: fmt.Sprintf("%v", err),
		}
		db.Create(&errLog)
	}

	cronService.Start()
}
