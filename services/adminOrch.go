package services

import (
	"fmt"
	"strings"
	"survivorPoolBot/models"
	"survivorPoolBot/services/common"
	"survivorPoolBot/services/extService"
	"survivorPoolBot/services/guildService"
	"survivorPoolBot/services/messageService"
	"survivorPoolBot/services/pickService"
	"survivorPoolBot/services/resultService"
	"survivorPoolBot/services/seasonService"
	"time"

	"github.com/bwmarrin/discordgo"
	"gorm.io/gorm"
)

const deadlineLayout = "2006-01-02 15:04"

// seasonYear maps a date to its season's starting year, so January playoff
// rounds still belong to the fall season.
func seasonYear(t time.Time) int {
	if t.Month() < time.June {
		return t.Year() - 1
	}
	return t.Year()
}

// CreateWeekCommand opens a new week for the season. The deadline is read in
// the pool's timezone.
func CreateWeekCommand(s *discordgo.Session, i *discordgo.InteractionCreate, db *gorm.DB) {
	if !common.IsAdmin(s, i) {
		respondEphemeral(s, i, "You are not authorized to use this command.")
		return
	}

	guild, err := guildService.GetGuildInfo(s, db, i.GuildID, i.ChannelID)
	if err != nil {
		common.SendError(s, i, err, db)
		return
	}

	options := i.ApplicationCommandData().Options
	weekNumber := int(options[0].IntValue())
	deadlineStr := options[1].StringValue()

	var roundName *string
	var playoffRound *int
	for _, opt := range options[2:] {
		switch opt.Name {
		case "round-name":
			name := opt.StringValue()
			roundName = &name
		case "playoff-round":
			round := int(opt.IntValue())
			playoffRound = &round
		}
	}

	deadline, err := time.ParseInLocation(deadlineLayout, deadlineStr, common.PoolLocation())
	if err != nil {
		respondEphemeral(s, i, fmt.Sprintf("Deadline must look like `%s`.", deadlineLayout))
		return
	}
	startDate := deadline.AddDate(0, 0, -5)

	season, err := seasonService.GetOrCreateSeason(db, guild.GuildID, seasonYear(common.Clock.Now().In(common.PoolLocation())))
	if err != nil {
		common.SendError(s, i, err, db)
		return
	}

	week, err := seasonService.CreateWeek(db, season, weekNumber, startDate, deadline, playoffRound, roundName)
	if err != nil {
		respondEphemeral(s, i, fmt.Sprintf("Could not create the week: %v", err))
		return
	}

	respondEphemeral(s, i, fmt.Sprintf("Week %d created with a deadline of %s. Use /activate-week to open it for picks.",
		week.WeekNumber, deadline.Format("Mon Jan 2 3:04 PM")))
}

// ActivateWeekCommand makes a week the current one for picks.
func ActivateWeekCommand(s *discordgo.Session, i *discordgo.InteractionCreate, db *gorm.DB) {
	if !common.IsAdmin(s, i) {
		respondEphemeral(s, i, "You are not authorized to use this command.")
		return
	}

	options := i.ApplicationCommandData().Options
	weekNumber := int(options[0].IntValue())

	season, err := seasonService.GetOrCreateSeason(db, i.GuildID, seasonYear(common.Clock.Now().In(common.PoolLocation())))
	if err != nil {
		common.SendError(s, i, err, db)
		return
	}

	var week models.Week
	if err := db.Where("season_id = ? AND week_number = ?", season.ID, weekNumber).First(&week).Error; err != nil {
		respondEphemeral(s, i, fmt.Sprintf("Week %d does not exist yet. Use /create-week first.", weekNumber))
		return
	}
	if week.IsComplete {
		respondEphemeral(s, i, fmt.Sprintf("Week %d has already been processed.", weekNumber))
		return
	}

	if err := seasonService.ActivateWeek(db, &week); err != nil {
		common.SendError(s, i, err, db)
		return
	}

	respondEphemeral(s, i, fmt.Sprintf("Week %d is now open for picks.", week.WeekNumber))
}

// ImportGamesCommand refreshes the active week's games and lines from the odds
// feed.
func ImportGamesCommand(s *discordgo.Session, i *discordgo.InteractionCreate, db *gorm.DB) {
	if !common.IsAdmin(s, i) {
		respondEphemeral(s, i, "You are not authorized to use this command.")
		return
	}

	week, err := seasonService.ActiveWeek(db, i.GuildID)
	if err != nil {
		common.SendError(s, i, err, db)
		return
	}
	if week == nil {
		respondEphemeral(s, i, "No active week to import games for.")
		return
	}

	// The odds call can outlast Discord's 3 second response window.
	err = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{Flags: discordgo.MessageFlagsEphemeral},
	})
	if err != nil {
		common.SendError(s, i, err, db)
		return
	}

	imported, err := extService.ImportGames(db, *week)
	content := fmt.Sprintf("Imported %d games for week %d.", imported, week.WeekNumber)
	if err != nil {
		content = fmt.Sprintf("Import failed: %v", err)
	}
	_, followErr := s.FollowupMessageCreate(i.Interaction, true, &discordgo.WebhookParams{
		Content: content,
		Flags:   discordgo.MessageFlagsEphemeral,
	})
	if followErr != nil {
		common.SendError(s, nil, followErr, db)
	}
}

// ProcessWeekCommand pulls final scores and grades the active week on demand.
func ProcessWeekCommand(s *discordgo.Session, i *discordgo.InteractionCreate, db *gorm.DB) {
	if !common.IsAdmin(s, i) {
		respondEphemeral(s, i, "You are not authorized to use this command.")
		return
	}

	guild, err := guildService.GetGuildInfo(s, db, i.GuildID, i.ChannelID)
	if err != nil {
		common.SendError(s, i, err, db)
		return
	}

	week, err := seasonService.ActiveWeek(db, guild.GuildID)
	if err != nil {
		common.SendError(s, i, err, db)
		return
	}
	if week == nil {
		respondEphemeral(s, i, "No active week to process.")
		return
	}

	err = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{Flags: discordgo.MessageFlagsEphemeral},
	})
	if err != nil {
		common.SendError(s, i, err, db)
		return
	}

	if _, err := extService.UpdateFinalScores(db, *week); err != nil {
		common.SendError(s, nil, err, db)
	}

	failures, err := resultService.ProcessWeekResults(db, *guild, *week)
	if err != nil {
		_, _ = s.FollowupMessageCreate(i.Interaction, true, &discordgo.WebhookParams{
			Content: fmt.Sprintf("Processing failed: %v", err),
			Flags:   discordgo.MessageFlagsEphemeral,
		})
		return
	}
	resultService.ReportFailures(s, db, *guild, *week, failures)

	var refreshed models.Week
	if err := db.First(&refreshed, week.ID).Error; err == nil && refreshed.IsComplete {
		if err := messageService.SendWeekRecap(s, db, *guild, refreshed); err != nil {
			common.SendError(s, nil, err, db)
		}
	}

	content := fmt.Sprintf("Week %d processed (%d user failures).", week.WeekNumber, len(failures))
	_, followErr := s.FollowupMessageCreate(i.Interaction, true, &discordgo.WebhookParams{
		Content: content,
		Flags:   discordgo.MessageFlagsEphemeral,
	})
	if followErr != nil {
		common.SendError(s, nil, followErr, db)
	}
}

// RunAutoPicksCommand fills picks for everyone who missed the deadline.
func RunAutoPicksCommand(s *discordgo.Session, i *discordgo.InteractionCreate, db *gorm.DB) {
	if !common.IsAdmin(s, i) {
		respondEphemeral(s, i, "You are not authorized to use this command.")
		return
	}

	guild, err := guildService.GetGuildInfo(s, db, i.GuildID, i.ChannelID)
	if err != nil {
		common.SendError(s, i, err, db)
		return
	}

	week, err := seasonService.ActiveWeek(db, guild.GuildID)
	if err != nil {
		common.SendError(s, i, err, db)
		return
	}
	if week == nil {
		respondEphemeral(s, i, "No active week.")
		return
	}
	if !common.DeadlinePassed(week.Deadline) {
		respondEphemeral(s, i, "The pick deadline hasn't passed yet.")
		return
	}

	results, err := pickService.ProcessAutoPicks(db, *guild, *week)
	if err != nil {
		common.SendError(s, i, err, db)
		return
	}
	pickService.ReportAutoPickFailures(s, db, *guild, results)

	filled, failed := 0, 0
	for _, result := range results {
		if result.Err != nil {
			failed++
		} else {
			filled++
		}
	}
	respondEphemeral(s, i, fmt.Sprintf("Auto-picks complete: %d filled, %d had no eligible team.", filled, failed))
}

// BeginPlayoffsCommand freezes the playoff field and flips the season phase.
func BeginPlayoffsCommand(s *discordgo.Session, i *discordgo.InteractionCreate, db *gorm.DB) {
	if !common.IsAdmin(s, i) {
		respondEphemeral(s, i, "You are not authorized to use this command.")
		return
	}

	options := i.ApplicationCommandData().Options
	fieldInput := options[0].StringValue()

	fieldTeamNames := make([]string, 0)
	for _, name := range strings.Split(fieldInput, ",") {
		trimmed := strings.TrimSpace(name)
		if trimmed != "" {
			fieldTeamNames = append(fieldTeamNames, trimmed)
		}
	}

	season, err := seasonService.GetOrCreateSeason(db, i.GuildID, seasonYear(common.Clock.Now().In(common.PoolLocation())))
	if err != nil {
		common.SendError(s, i, err, db)
		return
	}

	if err := seasonService.BeginPlayoffs(db, season, fieldTeamNames); err != nil {
		respondEphemeral(s, i, fmt.Sprintf("Could not begin the playoffs: %v", err))
		return
	}

	respondEphemeral(s, i, fmt.Sprintf("Playoffs are on! The field is frozen at %d teams.", len(fieldTeamNames)))
}
