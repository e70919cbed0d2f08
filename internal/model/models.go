package model

import (
	"time"
)

type Category string

const (
	CategoryGrocery   Category = "Grocery"
	CategoryInsurance Category = "Insurance"
	CategoryDining    Category = "Dining"
	CategoryTravel    Category = "Travel"
	CategoryUtilities Category = "Utilities"
	CategoryOther     Category = "Other"
	CategoryPetrol    Category = "Petrol"
	CategoryOnline    Category = "Online"
)

// Categories is the known taxonomy in display order. Any other string is still a
// valid category; it simply resolves through the Other fallback.
var Categories = []Category{
	CategoryGrocery,
	CategoryInsurance,
	CategoryDining,
	CategoryTravel,
	CategoryUtilities,
	CategoryOther,
	CategoryPetrol,
	CategoryOnline,
}

// Rates maps a category to a reward fraction (0.05 = 5%).
type Rates map[Category]float64

// Card is one credit card in the portfolio. Features and BestFor are display text
// only and never affect resolution.
type Card struct {
	ID           string                 `json:"id" yaml:"id"`
	Name         string                 `json:"name" yaml:"name"`
	Issuer       string                 `json:"issuer" yaml:"issuer"`
	Features     string                 `json:"features,omitempty" yaml:"features,omitempty"`
	BestFor      string                 `json:"best_for,omitempty" yaml:"best_for,omitempty"`
	BaseRates    Rates                  `json:"base_rates" yaml:"base_rates"`
	WeekendRates Rates                  `json:"weekend_rates,omitempty" yaml:"weekend_rates,omitempty"`
	DayRates     map[time.Weekday]Rates `json:"day_rates,omitempty" yaml:"day_rates,omitempty"`
}

type Currency struct {
	Code        string `json:"code" yaml:"code"`
	Symbol      string `json:"symbol" yaml:"symbol"`
	DisplayName string `json:"display_name" yaml:"display_name"`
}

type Transaction struct {
	ID              string    `json:"id"`
	Date            time.Time `json:"date"`
	Merchant        string    `json:"merchant"`
	Category        Category  `json:"category"`
	Amount          float64   `json:"amount"`
	CardID          string    `json:"card_id"`
	CardName        string    `json:"card_name"`
	RewardEarned    float64   `json:"reward_earned"`
	RewardPotential float64   `json:"reward_potential"`
	Notes           string    `json:"notes,omitempty"`
	RecordedAt      time.Time `json:"recorded_at"`
}

// ParsedTransaction is the structured purchase handed over by an extraction
// collaborator or a manual entry form. Amount, Date and Category are trusted.
type ParsedTransaction struct {
	Merchant       string
	Amount         float64
	Date           time.Time
	Category       Category
	CardUsedHint   string
	CurrencyCode   string
	CurrencySymbol string
	Notes          string
}

// Purchase is the part of a transaction that reward resolution depends on.
type Purchase struct {
	Category Category
	Amount   float64
	Date     time.Time
}

func (t Transaction) Purchase() Purchase {
	return Purchase{Category: t.Category, Amount: t.Amount, Date: t.Date}
}

func (p ParsedTransaction) Purchase() Purchase {
	return Purchase{Category: p.Category, Amount: p.Amount, Date: p.Date}
}
