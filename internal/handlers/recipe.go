package handlers

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"

	"github.com/Kerhoff/NutriboT/internal/service"
)

// RecipeHandler handles the /recipe command to show a recipe with its
// ingredients and totals.
type RecipeHandler struct {
	svc    *service.Service
	logger *logrus.Logger
}

// NewRecipeHandler creates a new RecipeHandler.
func NewRecipeHandler(svc *service.Service, logger *logrus.Logger) *RecipeHandler {
	return &RecipeHandler{svc: svc, logger: logger}
}

// Handle processes the /recipe command.
func (h *RecipeHandler) Handle(bot *tgbotapi.BotAPI, message *tgbotapi.Message, args []string) error {
	if len(args) != 1 {
		return reply(bot, message.Chat.ID, "❌ Please provide a recipe id.\nUsage: `/recipe 10`")
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return reply(bot, message.Chat.ID, "❌ Invalid recipe id. Usage: `/recipe 10`")
	}

	recipe, err := h.svc.GetRecipe(context.Background(), id)
	if errors.Is(err, service.ErrNotFound) {
		return reply(bot, message.Chat.ID, fmt.Sprintf("❌ Recipe #%d not found.", id))
	}
	if err != nil {
		return fmt.Errorf("get recipe: %w", err)
	}

	if err := reply(bot, message.Chat.ID, formatRecipe(recipe)); err != nil {
		return fmt.Errorf("failed to send recipe: %w", err)
	}

	h.logger.WithFields(logrus.Fields{
		"chat_id":     message.Chat.ID,
		"recipe_id":   id,
		"ingredients": len(recipe.Ingredients),
	}).Info("Recipe shown")

	return nil
}
