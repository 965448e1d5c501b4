package services

import (
	"strings"
	"survivorPoolBot/services/interactionService"

	"github.com/bwmarrin/discordgo"
	"gorm.io/gorm"
)

func HandleComponentInteraction(s *discordgo.Session, i *discordgo.InteractionCreate, db *gorm.DB) {
	customID := i.MessageComponentData().CustomID

	switch {
	case strings.HasPrefix(customID, "pick_"):
		interactionService.HandlePickSelection(s, i, db, customID)
	case strings.HasPrefix(customID, "result_"):
		interactionService.HandleResultSelection(s, i, db, customID)
	case strings.HasPrefix(customID, "winner_"):
		interactionService.HandleWinnerSelection(s, i, db, customID)
	}
}
