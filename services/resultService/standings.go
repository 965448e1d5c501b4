package resultService

import (
	"fmt"
	"sort"
	"survivorPoolBot/models"
	"survivorPoolBot/services/common"

	"github.com/bwmarrin/discordgo"
	"gorm.io/gorm"
)

// StandingsRow is one ranked line for the reporting layer.
type StandingsRow struct {
	Rank             int
	User             models.User
	LivesRemaining   int
	CumulativeSpread float64
}

// RankUsers orders players for display: alive users by lives descending, then
// cumulative spread ascending (lower is better); eliminated users below all
// alive ones, later eliminations ranking higher, spread breaking ties there
// too. A final name comparison keeps the order deterministic.
func RankUsers(users []models.User) []StandingsRow {
	ranked := make([]models.User, len(users))
	copy(ranked, users)

	sort.SliceStable(ranked, func(a, b int) bool {
		ua, ub := ranked[a], ranked[b]

		if ua.IsEliminated != ub.IsEliminated {
			return !ua.IsEliminated
		}

		if ua.IsEliminated {
			wa, wb := 0, 0
			if ua.EliminatedWeek != nil {
				wa = *ua.EliminatedWeek
			}
			if ub.EliminatedWeek != nil {
				wb = *ub.EliminatedWeek
			}
			if wa != wb {
				return wa > wb
			}
		} else if ua.LivesRemaining != ub.LivesRemaining {
			return ua.LivesRemaining > ub.LivesRemaining
		}

		if ua.CumulativeSpread != ub.CumulativeSpread {
			return ua.CumulativeSpread < ub.CumulativeSpread
		}

		na, nb := "", ""
		if ua.Username != nil {
			na = *ua.Username
		}
		if ub.Username != nil {
			nb = *ub.Username
		}
		if na != nb {
			return na < nb
		}
		return ua.ID < ub.ID
	})

	rows := make([]StandingsRow, len(ranked))
	for idx, user := range ranked {
		rows[idx] = StandingsRow{
			Rank:             idx + 1,
			User:             user,
			LivesRemaining:   user.LivesRemaining,
			CumulativeSpread: user.CumulativeSpread,
		}
	}
	return rows
}

// ShowStandings renders the pool standings as an embed.
func ShowStandings(s *discordgo.Session, i *discordgo.InteractionCreate, db *gorm.DB) {
	guildID := i.GuildID

	var users []models.User
	if err := db.Where("guild_id = ?", guildID).Find(&users).Error; err != nil {
		common.SendError(s, i, err, db)
		return
	}

	if len(users) == 0 {
		err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
			Type: discordgo.InteractionResponseChannelMessageWithSource,
			Data: &discordgo.InteractionResponseData{
				Content: "No players in the pool yet.",
			},
		})
		if err != nil {
			return
		}
		return
	}

	rows := RankUsers(users)

	description := ""
	for _, row := range rows {
		username := common.GetUsernameWithDB(db, s, guildID, row.User.DiscordID)
		line := fmt.Sprintf("**%d. %s** - ", row.Rank, username)
		if row.User.IsEliminated {
			week := 0
			if row.User.EliminatedWeek != nil {
				week = *row.User.EliminatedWeek
			}
			line += fmt.Sprintf("☠️ eliminated week %d", week)
		} else {
			lives := "❤️"
			if row.LivesRemaining > 1 {
				lives = fmt.Sprintf("❤️ x%d", row.LivesRemaining)
			}
			line += lives
		}
		line += fmt.Sprintf(" (spread %+.1f)\n", row.CumulativeSpread)
		description += line
	}

	embed := &discordgo.MessageEmbed{
		Title:       "🏈 Survivor Pool Standings",
		Description: description,
		Color:       0x3498db,
	}

	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{embed},
		},
	})
	if err != nil {
		return
	}
}
