package models

import (
	"fmt"
	"time"
)

// MealType represents the slot of the day a meal belongs to
type MealType string

const (
	MealTypeBreakfast MealType = "breakfast"
	MealTypeLunch     MealType = "lunch"
	MealTypeDinner    MealType = "dinner"
	MealTypeSnacks    MealType = "snacks"
)

// MealTypes lists the meals of a day in display order
var MealTypes = []MealType{MealTypeBreakfast, MealTypeLunch, MealTypeDinner, MealTypeSnacks}

// ParseMealType validates a meal type coming from user input
func ParseMealType(s string) (MealType, error) {
	for _, t := range MealTypes {
		if string(t) == s {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w: unknown meal type %q", ErrInvalidInput, s)
}

// Meal groups what was eaten in one slot of the day
type Meal struct {
	Type  MealType         `json:"type"`
	Items []NutrientSource `json:"-"`
}

// NewMeal creates an empty meal of the given type
func NewMeal(t MealType) *Meal {
	return &Meal{Type: t}
}

// Add appends an item to the meal.
func (m *Meal) Add(item NutrientSource) {
	m.Items = append(m.Items, item)
}

// Remove drops the first item equal to item. Pointer items such as *Recipe
// are matched by identity.
func (m *Meal) Remove(item NutrientSource) bool {
	for i, it := range m.Items {
		if it == item {
			m.Items = append(m.Items[:i], m.Items[i+1:]...)
			return true
		}
	}
	return false
}

// Nutrition sums every item of the meal.
func (m *Meal) Nutrition() Nutrition {
	return Sum(m.Items...)
}

// Day is a diary page: four meals on a given date
type Day struct {
	Date  time.Time
	meals map[MealType]*Meal
}

// NewDay creates a day with all meals empty
func NewDay(date time.Time) *Day {
	d := &Day{Date: date, meals: make(map[MealType]*Meal, len(MealTypes))}
	for _, t := range MealTypes {
		d.meals[t] = NewMeal(t)
	}
	return d
}

// Meal returns the meal of the given type, or nil for an unknown type.
func (d *Day) Meal(t MealType) *Meal {
	return d.meals[t]
}

// AddTo appends item to the meal of type t.
func (d *Day) AddTo(t MealType, item NutrientSource) error {
	meal := d.Meal(t)
	if meal == nil {
		return fmt.Errorf("%w: unknown meal type %q", ErrInvalidInput, t)
	}
	meal.Add(item)
	return nil
}

// RemoveFrom removes item from the meal of type t.
func (d *Day) RemoveFrom(t MealType, item NutrientSource) bool {
	meal := d.Meal(t)
	if meal == nil {
		return false
	}
	return meal.Remove(item)
}

// Nutrition sums all meals of the day
func (d *Day) Nutrition() Nutrition {
	var total Nutrition
	for _, t := range MealTypes {
		total = total.Add(d.meals[t].Nutrition())
	}
	return total
}
