package messageService

import (
	"fmt"
	"survivorPoolBot/models"
	"survivorPoolBot/services/common"
	"survivorPoolBot/services/resultService"

	"github.com/bwmarrin/discordgo"
	"gorm.io/gorm"
)

// SendPickReminder pings the reminder channel with everyone who still owes a
// pick for the week.
func SendPickReminder(s *discordgo.Session, db *gorm.DB, guild models.Guild, week models.Week, hoursLeft int) error {
	channelID := guild.PoolChannelID
	if guild.ReminderChannelID != nil && *guild.ReminderChannelID != "" {
		channelID = *guild.ReminderChannelID
	}
	if channelID == "" {
		return fmt.Errorf("guild %s has no channel configured for reminders", guild.GuildID)
	}

	var users []models.User
	if err := db.Where("guild_id = ? AND is_eliminated = ?", guild.GuildID, false).Find(&users).Error; err != nil {
		return err
	}

	var picks []models.Pick
	if err := db.Where("week_id = ?", week.ID).Find(&picks).Error; err != nil {
		return err
	}
	hasPick := make(map[uint]bool, len(picks))
	for _, pick := range picks {
		hasPick[pick.UserID] = true
	}

	mentions := ""
	for _, user := range users {
		if hasPick[user.ID] {
			continue
		}
		mentions += fmt.Sprintf("<@%s> ", user.DiscordID)
	}
	if mentions == "" {
		return nil
	}

	content := fmt.Sprintf("⏰ %s%d hours until the week %d pick deadline! Use /make-pick to lock yours in.",
		mentions, hoursLeft, week.WeekNumber)
	_, err := s.ChannelMessageSend(channelID, content)
	return err
}

// SendWeekRecap posts the graded week to the pool channel: every pick with its
// outcome, then the updated standings.
func SendWeekRecap(s *discordgo.Session, db *gorm.DB, guild models.Guild, week models.Week) error {
	if guild.PoolChannelID == "" {
		return fmt.Errorf("guild %s has no pool channel configured", guild.GuildID)
	}

	var picks []models.Pick
	if err := db.Where("week_id = ?", week.ID).Find(&picks).Error; err != nil {
		return err
	}

	results := ""
	for _, pick := range picks {
		var team models.Team
		if err := db.First(&team, pick.TeamID).Error; err != nil {
			continue
		}

		marker := "⏳"
		switch pick.Outcome {
		case models.PickWin:
			marker = "✅"
		case models.PickLoss:
			marker = "❌"
		}

		username := common.GetUsernameWithDB(db, s, guild.GuildID, userDiscordID(db, pick.UserID))
		results += fmt.Sprintf("%s **%s** - %s (%s)\n", marker, username, team.Name, common.FormatSpread(pick.Spread))
	}
	if results == "" {
		results = "No picks were made this week."
	}

	var users []models.User
	if err := db.Where("guild_id = ?", guild.GuildID).Find(&users).Error; err != nil {
		return err
	}

	standings := ""
	for _, row := range resultService.RankUsers(users) {
		username := common.GetUsernameWithDB(db, s, guild.GuildID, row.User.DiscordID)
		if row.User.IsEliminated {
			standings += fmt.Sprintf("%d. %s ☠️\n", row.Rank, username)
		} else {
			standings += fmt.Sprintf("%d. %s ❤️ x%d (%+.1f)\n", row.Rank, username, row.LivesRemaining, row.CumulativeSpread)
		}
	}

	title := fmt.Sprintf("🏈 Week %d Results", week.WeekNumber)
	if week.RoundName != nil {
		title = fmt.Sprintf("🏈 %s Results", *week.RoundName)
	}

	embed := &discordgo.MessageEmbed{
		Title: title,
		Color: 0x2ecc71,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Picks", Value: results},
			{Name: "Standings", Value: standings},
		},
	}

	_, err := s.ChannelMessageSendEmbed(guild.PoolChannelID, embed)
	return err
}

func userDiscordID(db *gorm.DB, userID uint) string {
	var user models.User
	if err := db.First(&user, userID).Error; err != nil {
		return ""
	}
	return user.DiscordID
}
