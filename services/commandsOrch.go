package services

import (
	"fmt"
	"survivorPoolBot/services/guildService"
	"survivorPoolBot/services/interactionService"
	"survivorPoolBot/services/resultService"

	"github.com/bwmarrin/discordgo"
	"gorm.io/gorm"
)

func HandleSlashCommand(s *discordgo.Session, i *discordgo.InteractionCreate, db *gorm.DB) {
	switch i.ApplicationCommandData().Name {
	case "join-pool":
		JoinPool(s, i, db)
	case "make-pick":
		interactionService.MakePickMenu(s, i, db)
	case "my-picks":
		interactionService.ShowMyPicks(s, i, db)
	case "standings":
		resultService.ShowStandings(s, i, db)
	case "create-week":
		CreateWeekCommand(s, i, db)
	case "activate-week":
		ActivateWeekCommand(s, i, db)
	case "import-games":
		ImportGamesCommand(s, i, db)
	case "mark-result":
		interactionService.MarkResultMenu(s, i, db)
	case "process-week":
		ProcessWeekCommand(s, i, db)
	case "run-autopicks":
		RunAutoPicksCommand(s, i, db)
	case "begin-playoffs":
		BeginPlayoffsCommand(s, i, db)
	case "payments":
		ShowPayments(s, i, db)
	case "mark-paid":
		MarkPaid(s, i, db)
	case "set-pool-channel":
		guildService.SetPoolChannel(s, i, db)
	case "set-starting-lives":
		guildService.SetStartingLives(s, i, db)
	case "set-missed-pick-policy":
		guildService.SetMissedPickPolicy(s, i, db)
	}
}

func RegisterCommands(s *discordgo.Session) error {
	commands := []*discordgo.ApplicationCommand{
		{
			Name:        "join-pool",
			Description: "Join the survivor pool",
		},
		{
			Name:        "make-pick",
			Description: "Make or change your survivor pick for the current week",
		},
		{
			Name:        "my-picks",
			Description: "Show your pick history and remaining lives",
		},
		{
			Name:        "standings",
			Description: "Show the pool standings",
		},
		{
			Name:        "create-week",
			Description: "🛡 Create a new week - ADMIN ONLY",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Name:        "week-number",
					Description: "Week number (must be greater than the latest week)",
					Type:        discordgo.ApplicationCommandOptionInteger,
					Required:    true,
				},
				{
					Name:        "deadline",
					Description: "Pick deadline in pool time, e.g. 2026-09-05 11:00",
					Type:        discordgo.ApplicationCommandOptionString,
					Required:    true,
				},
				{
					Name:        "playoff-round",
					Description: "Playoff round number (playoff weeks only)",
					Type:        discordgo.ApplicationCommandOptionInteger,
					Required:    false,
				},
				{
					Name:        "round-name",
					Description: "Display name for a playoff round, e.g. Quarterfinals",
					Type:        discordgo.ApplicationCommandOptionString,
					Required:    false,
				},
			},
		},
		{
			Name:        "activate-week",
			Description: "🛡 Open a week for picks - ADMIN ONLY",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Name:        "week-number",
					Description: "Week number to activate",
					Type:        discordgo.ApplicationCommandOptionInteger,
					Required:    true,
				},
			},
		},
		{
			Name:        "import-games",
			Description: "🛡 Import the active week's games and lines - ADMIN ONLY",
		},
		{
			Name:        "mark-result",
			Description: "🛡 Manually mark a game's winner - ADMIN ONLY",
		},
		{
			Name:        "process-week",
			Description: "🛡 Pull final scores and grade the active week - ADMIN ONLY",
		},
		{
			Name:        "run-autopicks",
			Description: "🛡 Fill auto-picks for users who missed the deadline - ADMIN ONLY",
		},
		{
			Name:        "begin-playoffs",
			Description: "🛡 Freeze the playoff field and start the playoff phase - ADMIN ONLY",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Name:        "teams",
					Description: "Comma-separated playoff field, e.g. Georgia, Oregon, Texas",
					Type:        discordgo.ApplicationCommandOptionString,
					Required:    true,
				},
			},
		},
		{
			Name:        "payments",
			Description: "🛡 Show who has paid their pool entry - ADMIN ONLY",
		},
		{
			Name:        "mark-paid",
			Description: "🛡 Toggle a player's payment flag - ADMIN ONLY",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Name:        "user",
					Description: "Player to toggle",
					Type:        discordgo.ApplicationCommandOptionUser,
					Required:    true,
				},
			},
		},
		{
			Name:        "set-pool-channel",
			Description: "🛡 Sets the current channel as the pool's announcement channel - ADMIN ONLY",
		},
		{
			Name:        "set-starting-lives",
			Description: "🛡 Sets how many lives a new player starts with - ADMIN ONLY",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Name:        "lives",
					Description: "Starting life count (default 2)",
					Type:        discordgo.ApplicationCommandOptionString,
					Required:    true,
				},
			},
		},
		{
			Name:        "set-missed-pick-policy",
			Description: "🛡 Sets whether a missed pick with no auto-pick costs a life - ADMIN ONLY",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Name:        "costs-life",
					Description: "true = losing a life, false = a bye",
					Type:        discordgo.ApplicationCommandOptionBoolean,
					Required:    true,
				},
			},
		},
	}

	registeredCommands := make([]*discordgo.ApplicationCommand, len(commands))

	for i, cmd := range commands {
		rcmd, err := s.ApplicationCommandCreate(s.State.User.ID, "", cmd)
		if err != nil {
			return fmt.Errorf("cannot create '%v' command: %v", cmd.Name, err)
		}
		registeredCommands[i] = rcmd
	}

	return nil
}
