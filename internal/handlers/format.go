package handlers

import (
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Kerhoff/NutriboT/internal/models"
)

// maxListed caps how many foods a single reply lists.
const maxListed = 30

// reply sends a Markdown message to the chat.
func reply(bot *tgbotapi.BotAPI, chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	_, err := bot.Send(msg)
	return err
}

func escape(s string) string {
	return tgbotapi.EscapeText(tgbotapi.ModeMarkdown, s)
}

func formatNutrition(n models.Nutrition) string {
	return fmt.Sprintf("🔥 %.2f kcal · 💪 %.2f g proteins · 🍞 %.2f g carbs",
		n.Calories, n.Proteins, n.Carbs)
}

func formatFood(f *models.Food) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "🍽 *#%d %s*\n", f.ID, escape(f.Brand))
	if f.Description != "" {
		sb.WriteString(escape(f.Description))
		sb.WriteString("\n")
	}
	sb.WriteString("\n")
	sb.WriteString(formatNutrition(f.Nutrition()))
	sb.WriteString("\n_per 100 g_")
	return sb.String()
}

func formatFoodList(title string, foods []*models.Food) string {
	if len(foods) == 0 {
		return fmt.Sprintf("%s\n\nNo foods found.", title)
	}

	var sb strings.Builder
	sb.WriteString(title)
	sb.WriteString("\n\n")
	for i, f := range foods {
		if i == maxListed {
			fmt.Fprintf(&sb, "…and %d more", len(foods)-maxListed)
			break
		}
		fmt.Fprintf(&sb, "• *#%d* %s: %.0f kcal, %.1f g proteins, %.1f g carbs\n",
			f.ID, escape(f.Brand), f.Calories, f.Proteins, f.Carbs)
	}
	return strings.TrimRight(sb.String(), "\n")
}

func formatRecipe(r *models.Recipe) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "📖 *#%d %s*\n", r.ID, escape(r.Name))
	if r.Description != "" {
		sb.WriteString(escape(r.Description))
		sb.WriteString("\n")
	}

	sb.WriteString("\n*Ingredients:*\n")
	if len(r.Ingredients) == 0 {
		sb.WriteString("none yet\n")
	}
	for _, ing := range r.Ingredients {
		fmt.Fprintf(&sb, "• %s, %.2f g (%.2f kcal)\n",
			escape(ing.Food.Brand), ing.Quantity, ing.Calories())
	}

	sb.WriteString("\n*Total:* ")
	sb.WriteString(formatNutrition(r.Nutrition()))
	return sb.String()
}
