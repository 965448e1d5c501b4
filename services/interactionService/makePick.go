package interactionService

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"survivorPoolBot/models"
	"survivorPoolBot/services/common"
	"survivorPoolBot/services/guildService"
	"survivorPoolBot/services/pickService"
	"survivorPoolBot/services/seasonService"

	"github.com/bwmarrin/discordgo"
	"gorm.io/gorm"
)

// MakePickMenu responds to /make-pick with a select menu of the user's
// eligible teams for the active week.
func MakePickMenu(s *discordgo.Session, i *discordgo.InteractionCreate, db *gorm.DB) {
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
		respondEphemeral(s, i, "No week is open for picks right now.")
		return
	}
	if common.DeadlinePassed(week.Deadline) {
		respondEphemeral(s, i, fmt.Sprintf("The deadline for week %d has passed.", week.WeekNumber))
		return
	}

	user, err := getOrCreateUser(s, db, i, guild)
	if err != nil {
		common.SendError(s, i, err, db)
		return
	}
	if user.IsEliminated {
		respondEphemeral(s, i, "Sorry, you have been eliminated from the pool.")
		return
	}

	entries, err := pickService.EligibleTeamsForUser(db, *user, *week)
	if err != nil {
		common.SendError(s, i, err, db)
		return
	}
	if len(entries) == 0 {
		respondEphemeral(s, i, fmt.Sprintf("You have no eligible teams for week %d.", week.WeekNumber))
		return
	}

	// Discord caps a select menu at 25 options.
	if len(entries) > 25 {
		entries = entries[:25]
	}

	menuOptions := make([]discordgo.SelectMenuOption, 0, len(entries))
	for _, entry := range entries {
		menuOptions = append(menuOptions, discordgo.SelectMenuOption{
			Label:       fmt.Sprintf("%s (%s)", entry.Team.Name, common.FormatSpread(entry.Spread)),
			Value:       strconv.Itoa(int(entry.Team.ID)),
			Description: gameDescription(entry.Game),
		})
	}

	err = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: fmt.Sprintf("Week %d — choose your survivor pick:", week.WeekNumber),
			Flags:   discordgo.MessageFlagsEphemeral,
			Components: []discordgo.MessageComponent{
				discordgo.ActionsRow{
					Components: []discordgo.MessageComponent{
						discordgo.SelectMenu{
							CustomID:    fmt.Sprintf("pick_%d", week.ID),
							Placeholder: "Pick a team",
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

// HandlePickSelection records the team chosen from the pick menu, updating an
// existing pick when the user already has one this week.
func HandlePickSelection(s *discordgo.Session, i *discordgo.InteractionCreate, db *gorm.DB, customID string) {
	weekID, err := strconv.Atoi(strings.TrimPrefix(customID, "pick_"))
	if err != nil {
		common.SendError(s, i, err, db)
		return
	}

	values := i.MessageComponentData().Values
	if len(values) != 1 {
		respondEphemeral(s, i, "Select exactly one team.")
		return
	}
	teamID, err := strconv.Atoi(values[0])
	if err != nil {
		common.SendError(s, i, err, db)
		return
	}

	guild, err := guildService.GetGuildInfo(s, db, i.GuildID, i.ChannelID)
	if err != nil {
		common.SendError(s, i, err, db)
		return
	}

	var week models.Week
	if err := db.First(&week, weekID).Error; err != nil {
		common.SendError(s, i, err, db)
		return
	}

	user, err := getOrCreateUser(s, db, i, guild)
	if err != nil {
		common.SendError(s, i, err, db)
		return
	}

	pick, err := pickService.RecordPick(db, *user, week, uint(teamID))
	if errors.Is(err, common.ErrDuplicatePick) {
		pick, err = pickService.UpdatePick(db, *user, week, uint(teamID))
	}
	if err != nil {
		respondEphemeral(s, i, fmt.Sprintf("Could not record that pick: %v", err))
		return
	}

	var team models.Team
	if err := db.First(&team, pick.TeamID).Error; err != nil {
		common.SendError(s, i, err, db)
		return
	}

	respondEphemeral(s, i, fmt.Sprintf("✅ Week %d pick locked in: **%s** (%s)",
		week.WeekNumber, team.Name, common.FormatSpread(pick.Spread)))
}

func getOrCreateUser(s *discordgo.Session, db *gorm.DB, i *discordgo.InteractionCreate, guild *models.Guild) (*models.User, error) {
	discordUser := i.Member.User

	var user models.User
	result := db.Where("discord_id = ? AND guild_id = ?", discordUser.ID, i.GuildID).First(&user)
	if result.Error != nil {
		if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, result.Error
		}
		user = models.User{
			DiscordID:      discordUser.ID,
			GuildID:        i.GuildID,
			LivesRemaining: guild.StartingLives,
		}
		if err := db.Create(&user).Error; err != nil {
			return nil, err
		}
	}

	common.UpdateUserUsername(db, &user, common.GetUsernameFromUser(discordUser))
	return &user, nil
}

func gameDescription(game models.Game) string {
	home, away := "TBD", "TBD"
	if game.HomeTeamName != nil {
		home = *game.HomeTeamName
	}
	if game.AwayTeamName != nil {
		away = *game.AwayTeamName
	}
	return fmt.Sprintf("%s @ %s", away, home)
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
