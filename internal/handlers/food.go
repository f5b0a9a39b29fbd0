package handlers

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"

	"github.com/Kerhoff/NutriboT/internal/models"
	"github.com/Kerhoff/NutriboT/internal/service"
)

// ---------------------------------------------------------------------------
// FoodHandler – /food <id>
// ---------------------------------------------------------------------------

// FoodHandler handles the /food command to show one catalog entry.
type FoodHandler struct {
	svc    *service.Service
	logger *logrus.Logger
}

// NewFoodHandler creates a new FoodHandler.
func NewFoodHandler(svc *service.Service, logger *logrus.Logger) *FoodHandler {
	return &FoodHandler{svc: svc, logger: logger}
}

// Handle processes the /food command.
func (h *FoodHandler) Handle(bot *tgbotapi.BotAPI, message *tgbotapi.Message, args []string) error {
	if len(args) != 1 {
		return reply(bot, message.Chat.ID, "❌ Please provide a food id.\nUsage: `/food 1`")
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return reply(bot, message.Chat.ID, "❌ Invalid food id. Usage: `/food 1`")
	}

	food, err := h.svc.GetFood(context.Background(), id)
	if errors.Is(err, service.ErrNotFound) {
		return reply(bot, message.Chat.ID, fmt.Sprintf("❌ Food #%d not found.", id))
	}
	if err != nil {
		return fmt.Errorf("get food: %w", err)
	}

	if err := reply(bot, message.Chat.ID, formatFood(food)); err != nil {
		return fmt.Errorf("failed to send food: %w", err)
	}

	h.logger.WithFields(logrus.Fields{
		"chat_id": message.Chat.ID,
		"food_id": id,
	}).Info("Food shown")

	return nil
}

// ---------------------------------------------------------------------------
// ThresholdHandler – /under and /over
// ---------------------------------------------------------------------------

// ThresholdHandler lists the foods on one side of a nutrient limit.
type ThresholdHandler struct {
	svc    *service.Service
	cmp    service.Comparison
	logger *logrus.Logger
}

// NewThresholdHandler creates a handler for /under or /over depending on cmp.
func NewThresholdHandler(svc *service.Service, cmp service.Comparison, logger *logrus.Logger) *ThresholdHandler {
	return &ThresholdHandler{svc: svc, cmp: cmp, logger: logger}
}

// Handle processes the /under and /over commands.
func (h *ThresholdHandler) Handle(bot *tgbotapi.BotAPI, message *tgbotapi.Message, args []string) error {
	nutrient, limit, err := parseThreshold(args)
	if err != nil {
		return reply(bot, message.Chat.ID,
			fmt.Sprintf("❌ %s\nUsage: `/%s [calories|proteins|carbs] <limit>`", escape(err.Error()), h.cmp))
	}

	foods, err := h.svc.FindFoods(context.Background(), nutrient, h.cmp, limit)
	if err != nil {
		return fmt.Errorf("find foods: %w", err)
	}

	title := fmt.Sprintf("📋 *Foods %s %g %s*", h.cmp, limit, nutrient)
	if err := reply(bot, message.Chat.ID, formatFoodList(title, foods)); err != nil {
		return fmt.Errorf("failed to send food list: %w", err)
	}

	h.logger.WithFields(logrus.Fields{
		"chat_id":  message.Chat.ID,
		"nutrient": nutrient,
		"cmp":      h.cmp,
		"limit":    limit,
		"results":  len(foods),
	}).Info("Threshold query answered")

	return nil
}

// parseThreshold accepts "<limit>" or "<nutrient> <limit>". Calories are
// assumed when no nutrient is named.
func parseThreshold(args []string) (models.Nutrient, float64, error) {
	nutrient := models.NutrientCalories
	switch len(args) {
	case 1:
	case 2:
		n, err := models.ParseNutrient(args[0])
		if err != nil {
			return "", 0, fmt.Errorf("unknown nutrient %q", args[0])
		}
		nutrient = n
	default:
		return "", 0, errors.New("please provide a limit")
	}

	limit, err := strconv.ParseFloat(args[len(args)-1], 64)
	if err != nil || math.IsNaN(limit) || math.IsInf(limit, 0) {
		return "", 0, fmt.Errorf("invalid limit %q", args[len(args)-1])
	}
	return nutrient, limit, nil
}
