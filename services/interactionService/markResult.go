package interactionService

import (
	"fmt"
	"strconv"
	"strings"
	"survivorPoolBot/models"
	"survivorPoolBot/services/common"
	"survivorPoolBot/services/guildService"
	"survivorPoolBot/services/resultService"
	"survivorPoolBot/services/seasonService"

	"github.com/bwmarrin/discordgo"
	"gorm.io/gorm"
)

// MarkResultMenu is the admin fallback for grading games by hand when the
// scoreboard feed misses one. It lists the active week's unfinished games.
func MarkResultMenu(s *discordgo.Session, i *discordgo.InteractionCreate, db *gorm.DB) {
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

	var games []models.Game
	if err := db.Where("week_id = ? AND status <> ?", week.ID, models.GameFinal).Find(&games).Error; err != nil {
		common.SendError(s, i, err, db)
		return
	}
	if len(games) == 0 {
		respondEphemeral(s, i, "Every game this week is already final.")
		return
	}
	if len(games) > 25 {
		games = games[:25]
	}

	menuOptions := make([]discordgo.SelectMenuOption, 0, len(games))
	for _, game := range games {
		menuOptions = append(menuOptions, discordgo.SelectMenuOption{
			Label: gameDescription(game),
			Value: strconv.Itoa(int(game.ID)),
		})
	}

	err = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: "Which game went final?",
			Flags:   discordgo.MessageFlagsEphemeral,
			Components: []discordgo.MessageComponent{
				discordgo.ActionsRow{
					Components: []discordgo.MessageComponent{
						discordgo.SelectMenu{
							CustomID:    fmt.Sprintf("result_%d", week.ID),
							Placeholder: "Pick a game",
							Options:     menuOptions,
						},
					},
				},
			},
		},
	})
	if err != nil {
		common.SendError(s, i, err, db)
		return
	}
}

// HandleResultSelection follows the game choice with a winner menu.
func HandleResultSelection(s *discordgo.Session, i *discordgo.InteractionCreate, db *gorm.DB, customID string) {
	if !common.IsAdmin(s, i) {
		respondEphemeral(s, i, "You are not authorized to use this command.")
		return
	}

	values := i.MessageComponentData().Values
	if len(values) != 1 {
		respondEphemeral(s, i, "Select exactly one game.")
		return
	}
	gameID, err := strconv.Atoi(values[0])
	if err != nil {
		common.SendError(s, i, err, db)
		return
	}

	var game models.Game
	if err := db.First(&game, gameID).Error; err != nil {
		common.SendError(s, i, err, db)
		return
	}

	home, away := "Home", "Away"
	if game.HomeTeamName != nil {
		home = *game.HomeTeamName
	}
	if game.AwayTeamName != nil {
		away = *game.AwayTeamName
	}

	err = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: fmt.Sprintf("Who won %s @ %s?", away, home),
			Flags:   discordgo.MessageFlagsEphemeral,
			Components: []discordgo.MessageComponent{
				discordgo.ActionsRow{
					Components: []discordgo.MessageComponent{
						discordgo.SelectMenu{
							CustomID:    fmt.Sprintf("winner_%d", game.ID),
							Placeholder: "Pick the winner",
							Options: []discordgo.SelectMenuOption{
								{Label: home, Value: "home"},
								{Label: away, Value: "away"},
							},
						},
					},
				},
			},
		},
	})
	if err != nil {
		common.SendError(s, i, err, db)
		return
	}
}

// HandleWinnerSelection finalizes the game and runs result processing for the
// week so picks grade immediately.
func HandleWinnerSelection(s *discordgo.Session, i *discordgo.InteractionCreate, db *gorm.DB, customID string) {
	if !common.IsAdmin(s, i) {
		respondEphemeral(s, i, "You are not authorized to use this command.")
		return
	}

	gameID, err := strconv.Atoi(strings.TrimPrefix(customID, "winner_"))
	if err != nil {
		common.SendError(s, i, err, db)
		return
	}

	values := i.MessageComponentData().Values
	if len(values) != 1 {
		respondEphemeral(s, i, "Select exactly one winner.")
		return
	}

	var game models.Game
	if err := db.First(&game, gameID).Error; err != nil {
		common.SendError(s, i, err, db)
		return
	}
	if game.Status == models.GameFinal {
		respondEphemeral(s, i, "That game is already final.")
		return
	}

	homeWon := values[0] == "home"
	game.HomeTeamWon = &homeWon
	game.Status = models.GameFinal
	if err := db.Save(&game).Error; err != nil {
		common.SendError(s, i, err, db)
		return
	}

	var week models.Week
	if err := db.First(&week, game.WeekID).Error; err != nil {
		common.SendError(s, i, err, db)
		return
	}
	guild, err := guildService.GetGuildInfo(s, db, i.GuildID, i.ChannelID)
	if err != nil {
		common.SendError(s, i, err, db)
		return
	}

	failures, err := resultService.ProcessWeekResults(db, *guild, week)
	if err != nil {
		common.SendError(s, i, err, db)
		return
	}
	resultService.ReportFailures(s, db, *guild, week, failures)

	winner := "home team"
	if game.HomeTeamName != nil && homeWon {
		winner = *game.HomeTeamName
	} else if game.AwayTeamName != nil && !homeWon {
		winner = *game.AwayTeamName
	}
	respondEphemeral(s, i, fmt.Sprintf("Marked **%s** as the winner and graded the week's picks.", winner))
}
