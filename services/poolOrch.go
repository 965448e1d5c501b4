package services

import (
	"errors"
	"fmt"
	"survivorPoolBot/models"
	"survivorPoolBot/services/common"
	"survivorPoolBot/services/guildService"

	"github.com/bwmarrin/discordgo"
	"gorm.io/gorm"
)

// JoinPool enrolls the caller with the guild's starting life count.
func JoinPool(s *discordgo.Session, i *discordgo.InteractionCreate, db *gorm.DB) {
	guild, err := guildService.GetGuildInfo(s, db, i.GuildID, i.ChannelID)
	if err != nil {
		common.SendError(s, i, err, db)
		return
	}

	discordUser := i.Member.User

	var user models.User
	result := db.Where("discord_id = ? AND guild_id = ?", discordUser.ID, i.GuildID).First(&user)
	if result.Error == nil {
		respondEphemeral(s, i, "You're already in the pool. Use /make-pick when a week opens.")
		return
	}
	if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		common.SendError(s, i, result.Error, db)
		return
	}

	username := common.GetUsernameFromUser(discordUser)
	user = models.User{
		DiscordID:      discordUser.ID,
		GuildID:        i.GuildID,
		Username:       &username,
		LivesRemaining: guild.StartingLives,
	}
	if err := db.Create(&user).Error; err != nil {
		common.SendError(s, i, err, db)
		return
	}

	respondEphemeral(s, i, fmt.Sprintf("Welcome to the survivor pool! You start with ❤️ x%d.", user.LivesRemaining))
}

// ShowPayments lists who has and hasn't paid their pool entry.
func ShowPayments(s *discordgo.Session, i *discordgo.InteractionCreate, db *gorm.DB) {
	if !common.IsAdmin(s, i) {
		respondEphemeral(s, i, "You are not authorized to use this command.")
		return
	}

	var users []models.User
	if err := db.Where("guild_id = ?", i.GuildID).Find(&users).Error; err != nil {
		common.SendError(s, i, err, db)
		return
	}
	if len(users) == 0 {
		respondEphemeral(s, i, "No players in the pool yet.")
		return
	}

	paid, unpaid := "", ""
	for _, user := range users {
		username := common.GetUsernameWithDB(db, s, i.GuildID, user.DiscordID)
		if user.Paid {
			paid += fmt.Sprintf("✅ %s\n", username)
		} else {
			unpaid += fmt.Sprintf("❌ %s\n", username)
		}
	}
	if paid == "" {
		paid = "Nobody yet."
	}
	if unpaid == "" {
		unpaid = "Everyone is paid up!"
	}

	embed := &discordgo.MessageEmbed{
		Title: "💵 Pool Payments",
		Color: 0xf1c40f,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Paid", Value: paid, Inline: true},
			{Name: "Unpaid", Value: unpaid, Inline: true},
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

// MarkPaid toggles a player's payment flag.
func MarkPaid(s *discordgo.Session, i *discordgo.InteractionCreate, db *gorm.DB) {
	if !common.IsAdmin(s, i) {
		respondEphemeral(s, i, "You are not authorized to use this command.")
		return
	}

	options := i.ApplicationCommandData().Options
	target := options[0].UserValue(s)
	if target == nil {
		respondEphemeral(s, i, "Could not resolve that user.")
		return
	}

	var user models.User
	if err := db.Where("discord_id = ? AND guild_id = ?", target.ID, i.GuildID).First(&user).Error; err != nil {
		respondEphemeral(s, i, "That user hasn't joined the pool.")
		return
	}

	user.Paid = !user.Paid
	if err := db.Save(&user).Error; err != nil {
		common.SendError(s, i, err, db)
		return
	}

	status := "paid"
	if !user.Paid {
		status = "unpaid"
	}
	respondEphemeral(s, i, fmt.Sprintf("Marked %s as %s.", common.GetUsernameFromUser(target), status))
}

func respondEphemeral(s *discordgo.Session, i *discordgo.InteractionCreate, content string) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: content,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
	if err != nil {
		return
	}
}
