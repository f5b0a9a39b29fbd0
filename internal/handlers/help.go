package handlers

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"
)

// HelpHandler handles the /help command
type HelpHandler struct {
	logger *logrus.Logger
}

func NewHelpHandler(logger *logrus.Logger) *HelpHandler {
	return &HelpHandler{logger: logger}
}

func (h *HelpHandler) Handle(bot *tgbotapi.BotAPI, message *tgbotapi.Message, args []string) error {
	helpText := `📚 *NutriboT Help*

*Foods:*
• /food <id> - Show a food
• /under [nutrient] <limit> - Foods at or below the limit
• /over [nutrient] <limit> - Foods above the limit

*Recipes:*
• /recipe <id> - Show a recipe with ingredients and totals

_Nutrients: calories (default), proteins, carbs. Values are per 100 g._`

	if err := reply(bot, message.Chat.ID, helpText); err != nil {
		return fmt.Errorf("failed to send help message: %w", err)
	}

	h.logger.WithField("chat_id", message.Chat.ID).Info("Sent help message")

	return nil
}
