package interactionService

import (
	"errors"
	"fmt"
	"survivorPoolBot/models"
	"survivorPoolBot/services/common"

	"github.com/bwmarrin/discordgo"
	"gorm.io/gorm"
)

// ShowMyPicks replies with the caller's full pick history for this guild.
func ShowMyPicks(s *discordgo.Session, i *discordgo.InteractionCreate, db *gorm.DB) {
	var user models.User
	result := db.Where("discord_id = ? AND guild_id = ?", i.Member.User.ID, i.GuildID).First(&user)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			respondEphemeral(s, i, "You haven't joined the pool yet. Use /join-pool first.")
			return
		}
		common.SendError(s, i, result.Error, db)
		return
	}

	var picks []models.Pick
	if err := db.Where("user_id = ?", user.ID).Order("week_id asc").Find(&picks).Error; err != nil {
		common.SendError(s, i, err, db)
		return
	}
	if len(picks) == 0 {
		respondEphemeral(s, i, "You haven't made any picks yet.")
		return
	}

	description := ""
	for _, pick := range picks {
		var week models.Week
		if err := db.First(&week, pick.WeekID).Error; err != nil {
			continue
		}
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

		weekLabel := fmt.Sprintf("Week %d", week.WeekNumber)
		if week.RoundName != nil {
			weekLabel = *week.RoundName
		}

		line := fmt.Sprintf("%s **%s** - %s (%s)", marker, weekLabel, team.Name, common.FormatSpread(pick.Spread))
		if pick.Auto {
			line += " _(auto)_"
		}
		description += line + "\n"
	}

	status := fmt.Sprintf("❤️ x%d", user.LivesRemaining)
	if user.IsEliminated {
		week := 0
		if user.EliminatedWeek != nil {
			week = *user.EliminatedWeek
		}
		status = fmt.Sprintf("☠️ eliminated week %d", week)
	}

	embed := &discordgo.MessageEmbed{
		Title:       "Your Picks",
		Description: description,
		Color:       0x3498db,
		Footer: &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("%s | spread %+.1f", status, user.CumulativeSpread),
		},
	}

	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{embed},
			Flags:  discordgo.MessageFlagsEphemeral,
		},
	})
	if err != nil {
		return
	}
}
