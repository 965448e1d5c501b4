package common

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"
	"survivorPoolBot/models"
	"survivorPoolBot/models/external"

	"github.com/bwmarrin/discordgo"
	"gorm.io/gorm"
)

func IsAdmin(s *discordgo.Session, i *discordgo.InteractionCreate) bool {
	// Use member data from the interaction - no privileged intent needed
	if i.Member == nil {
		return false
	}

	for _, roleID := range i.Member.Roles {
		role, err := s.State.Role(i.GuildID, roleID)
		if err != nil || role == nil {
			roles, err := s.GuildRoles(i.GuildID)
			if err != nil {
				log.Printf("Error fetching roles from API: %v", err)
				continue
			}

			for _, r := range roles {
				if r.ID == roleID {
					role = r
					break
				}
			}

			if role == nil {
				log.Printf("Role %s not found in guild %s", roleID, i.GuildID)
				continue
			}
		}

		if role.Permissions&discordgo.PermissionAdministrator != 0 {
			return true
		}
	}

	return false
}

func SendError(s *discordgo.Session, i *discordgo.InteractionCreate, err error, db *gorm.DB) {
	fmt.Println(err)

	guildId := ""
	if i != nil {
		guildId = i.GuildID
		localErr := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
			Type: discordgo.InteractionResponseChannelMessageWithSource,
			Data: &discordgo.InteractionResponseData{
				Content: fmt.Sprintf("An error occured: %v", err),
				Flags:   discordgo.MessageFlagsEphemeral,
			},
		})
		if localErr != nil {
			log.Printf("Error sending interaction: %v", localErr)
		}
	}
	errLog := models.ErrorLog{
		GuildID: guildId,
		Message: fmt.Sprintf("%v", err),
	}
	db.Create(&errLog)
}

// FormatSpread renders a signed spread the way books print them: "-7", "+3.5",
// "PK" for a pick'em.
func FormatSpread(spread float64) string {
	if spread == 0 {
		return "PK"
	}

	response := ""
	if spread == float64(int(spread)) {
		response = strconv.Itoa(int(spread))
	} else {
		response = fmt.Sprintf("%.1f", spread)
	}

	if spread > 0 {
		return fmt.Sprintf("+%s", response)
	}
	return response
}

// GetUsernameFromUser extracts username from a discordgo.User object
func GetUsernameFromUser(user *discordgo.User) string {
	if user == nil {
		return "Unknown User"
	}
	username := user.GlobalName
	if username == "" {
		username = user.Username
	}
	if username == "" {
		return "Unknown User"
	}
	return username
}

// UpdateUserUsername updates the username field in the database if it's different
func UpdateUserUsername(db *gorm.DB, user *models.User, username string) {
	if user.Username == nil || *user.Username != username {
		user.Username = &username
		db.Save(user)
	}
}

// GetUsernameWithDB gets username from database first, then falls back to state cache
func GetUsernameWithDB(db *gorm.DB, s *discordgo.Session, guildId string, userId string) string {
	var user models.User
	if err := db.Where("discord_id = ? AND guild_id = ?", userId, guildId).First(&user).Error; err == nil {
		if user.Username != nil && *user.Username != "" {
			return *user.Username
		}
	}

	// Fallback to state cache (limited without members intent)
	if guild, err := s.State.Guild(guildId); err == nil && guild != nil {
		for _, member := range guild.Members {
			if member.User != nil && member.User.ID == userId {
				return GetUsernameFromUser(member.User)
			}
		}
	}

	return "Unknown User"
}

func CFBDWrapper(requestUrl string) (*http.Response, error) {
	cfbdKey := os.Getenv("CFBD_TOKEN")
	if cfbdKey == "" {
		return nil, fmt.Errorf("CFBD_TOKEN not set in environment variables")
	}

	client := &http.Client{}
	req, err := http.NewRequest("GET", requestUrl, nil)
	if err != nil {
		return nil, err
	}

	req.Header.Add("Authorization", fmt.Sprintf("Bearer %s", cfbdKey))
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != 200 {
		resp.Body.Close()
		return nil, fmt.Errorf("CFBD returned status %d", resp.StatusCode)
	}
	return resp, nil
}

// OddsAPIWrapper calls The Odds API; the key travels as a query parameter per
// their v4 scheme.
func OddsAPIWrapper(requestUrl string) (*http.Response, error) {
	apiKey := os.Getenv("ODDS_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("ODDS_API_KEY not set in environment variables")
	}

	client := &http.Client{}
	req, err := http.NewRequest("GET", requestUrl, nil)
	if err != nil {
		return nil, err
	}

	q := req.URL.Query()
	q.Set("apiKey", apiKey)
	req.URL.RawQuery = q.Encode()

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != 200 {
		resp.Body.Close()
		return nil, fmt.Errorf("odds API returned status %d", resp.StatusCode)
	}
	return resp, nil
}

func Contains[T comparable](s []T, e T) bool {
	for _, v := range s {
		if v == e {
			return true
		}
	}
	return false
}

// PickBookmaker selects the spreads market from the first preferred book that
// carries one.
func PickBookmaker(bookmakers []external.OddsAPI_Bookmaker) (*external.OddsAPI_Market, error) {
	preferredBooks := []string{"draftkings", "fanduel", "bovada", "betmgm"}

	for _, book := range preferredBooks {
		for _, bm := range bookmakers {
			if bm.Key != book {
				continue
			}
			for idx, market := range bm.Markets {
				if market.Key == "spreads" && len(market.Outcomes) == 2 {
					return &bm.Markets[idx], nil
				}
			}
		}
	}

	for _, bm := range bookmakers {
		for idx, market := range bm.Markets {
			if market.Key == "spreads" && len(market.Outcomes) == 2 {
				return &bm.Markets[idx], nil
			}
		}
	}

	return nil, errors.New("no spreads market available")
}
