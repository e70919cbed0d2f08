// Package rewards resolves card reward rates, picks the best card for a purchase and
// folds a ledger into portfolio statistics. Everything here is pure: no I/O, no
// shared state, and the inputs are never mutated.
package rewards

import (
	"math"
	"time"

	"github.com/anyulbade/card-reward-optimizer/internal/model"
)

// Tier is the precedence level a rate was resolved at.
type Tier int

const (
	TierNone Tier = iota
	TierDay
	TierWeekend
	TierBase
)

func (t Tier) String() string {
	switch t {
	case TierDay:
		return "day"
	case TierWeekend:
		return "weekend"
	case TierBase:
		return "base"
	default:
		return "none"
	}
}

// Resolution describes how a rate was found. Key is the map key that matched:
// the requested category or model.CategoryOther. It is empty when no key matched.
type Resolution struct {
	Rate float64
	Tier Tier
	Key  model.Category
}

// DayOfWeek returns Sunday=0 ... Saturday=6 for the calendar date carried by date.
func DayOfWeek(date time.Time) time.Weekday {
	y, m, d := date.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Weekday()
}

func isWeekend(day time.Weekday) bool {
	return day == time.Saturday || day == time.Sunday
}

// Resolve applies the three-tier precedence: day-specific, then weekend (Saturday
// and Sunday only), then base. Inside a tier the exact category is tried before
// Other. A day map that exists for the weekday is terminal even when it holds
// neither key; entry presence decides, not the value.
func Resolve(card model.Card, category model.Category, date time.Time) Resolution {
	day := DayOfWeek(date)

	if dayRates, ok := card.DayRates[day]; ok {
		if r, ok := lookup(dayRates, category, TierDay); ok {
			return r
		}
		return Resolution{Tier: TierDay}
	}

	if isWeekend(day) {
		if r, ok := lookup(card.WeekendRates, category, TierWeekend); ok {
			return r
		}
	}

	if r, ok := lookup(card.BaseRates, category, TierBase); ok {
		return r
	}
	return Resolution{Tier: TierNone}
}

func lookup(rates model.Rates, category model.Category, tier Tier) (Resolution, bool) {
	if rate, ok := rates[category]; ok {
		return Resolution{Rate: rate, Tier: tier, Key: category}, true
	}
	if rate, ok := rates[model.CategoryOther]; ok {
		return Resolution{Rate: rate, Tier: tier, Key: model.CategoryOther}, true
	}
	return Resolution{}, false
}

func ResolveRate(card model.Card, category model.Category, date time.Time) float64 {
	return Resolve(card, category, date).Rate
}

// ResolveReward returns amount * rate at full precision. Amounts that are not
// positive finite numbers earn nothing rather than failing.
func ResolveReward(card model.Card, p model.Purchase) float64 {
	if !(p.Amount > 0) || math.IsInf(p.Amount, 1) {
		return 0
	}
	return p.Amount * ResolveRate(card, p.Category, p.Date)
}
