package catalog

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"math"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/anyulbade/card-reward-optimizer/internal/model"
)

//go:embed cards.yaml
var defaultDocument []byte

var ErrUnknownCard = errors.New("unknown card")

type document struct {
	Cards      []model.Card     `yaml:"cards"`
	Currencies []model.Currency `yaml:"currencies"`
}

// Catalog is the immutable, ordered card portfolio. Card order is the order of the
// source document and is what recommendation tie-breaks rely on.
type Catalog struct {
	cards      []model.Card
	index      map[string]int
	currencies []model.Currency
}

// Default returns the catalog compiled into the binary.
func Default() (*Catalog, error) {
	return Parse(defaultDocument)
}

// Load reads a catalog file, or the embedded default when path is empty.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}
	cat, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	return cat, nil
}

func Parse(data []byte) (*Catalog, error) {
	var doc document
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	return New(doc.Cards, doc.Currencies)
}

// New validates cards and builds a catalog that keeps their order.
func New(cards []model.Card, currencies []model.Currency) (*Catalog, error) {
	c := &Catalog{
		cards:      make([]model.Card, len(cards)),
		index:      make(map[string]int, len(cards)),
		currencies: append([]model.Currency(nil), currencies...),
	}

	var problems []string
	for i, card := range cards {
		problems = append(problems, validateCard(i, card)...)
		if _, dup := c.index[card.ID]; dup && card.ID != "" {
			problems = append(problems, fmt.Sprintf("card %d: duplicate id %q", i, card.ID))
		}
		c.index[card.ID] = i
		c.cards[i] = card
	}

	seen := make(map[string]bool, len(currencies))
	for i, cur := range currencies {
		if cur.Code == "" {
			problems = append(problems, fmt.Sprintf("currency %d: missing code", i))
		} else if seen[cur.Code] {
			problems = append(problems, fmt.Sprintf("currency %d: duplicate code %q", i, cur.Code))
		}
		seen[cur.Code] = true
	}

	if len(problems) > 0 {
		return nil, fmt.Errorf("invalid catalog: %s", strings.Join(problems, "; "))
	}
	return c, nil
}

func validateCard(i int, card model.Card) []string {
	var problems []string
	if card.ID == "" {
		problems = append(problems, fmt.Sprintf("card %d: missing id", i))
	}
	if card.Name == "" {
		problems = append(problems, fmt.Sprintf("card %d (%s): missing name", i, card.ID))
	}

	check := func(tier string, rates model.Rates) {
		for cat, rate := range rates {
			if math.IsNaN(rate) || rate < 0 || rate > 1 {
				problems = append(problems, fmt.Sprintf("card %s: %s rate for %s must be within 0..1, got %v", card.ID, tier, cat, rate))
			}
		}
	}
	check("base", card.BaseRates)
	check("weekend", card.WeekendRates)
	for day, rates := range card.DayRates {
		if day < time.Sunday || day > time.Saturday {
			problems = append(problems, fmt.Sprintf("card %s: day %d out of range 0..6", card.ID, day))
			continue
		}
		check(day.String(), rates)
	}
	return problems
}

// Cards returns the portfolio in canonical order. The slice is a copy; the rate
// maps are shared and must be treated as read-only.
func (c *Catalog) Cards() []model.Card {
	return append([]model.Card(nil), c.cards...)
}

func (c *Catalog) Len() int {
	return len(c.cards)
}

func (c *Catalog) Card(id string) (model.Card, error) {
	i, ok := c.index[id]
	if !ok {
		return model.Card{}, fmt.Errorf("%w: %q", ErrUnknownCard, id)
	}
	return c.cards[i], nil
}

// Subset returns the named cards in catalog order, whatever order ids come in.
func (c *Catalog) Subset(ids []string) ([]model.Card, error) {
	want := make(map[string]bool, len(ids))
	for _, id := range ids {
		if _, ok := c.index[id]; !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownCard, id)
		}
		want[id] = true
	}

	out := make([]model.Card, 0, len(want))
	for _, card := range c.cards {
		if want[card.ID] {
			out = append(out, card)
		}
	}
	return out, nil
}

// MatchHint finds the card an extracted "card used" string refers to: first a card
// whose name appears in the hint, then one whose issuer does. Matching is
// case-insensitive and the first card in catalog order wins.
func (c *Catalog) MatchHint(hint string) (model.Card, bool) {
	h := strings.ToLower(strings.TrimSpace(hint))
	if h == "" {
		return model.Card{}, false
	}
	if i, ok := c.index[h]; ok {
		return c.cards[i], true
	}
	for _, card := range c.cards {
		if strings.Contains(h, strings.ToLower(card.Name)) {
			return card, true
		}
	}
	for _, card := range c.cards {
		if card.Issuer != "" && strings.Contains(h, strings.ToLower(card.Issuer)) {
			return card, true
		}
	}
	return model.Card{}, false
}

func (c *Catalog) Currencies() []model.Currency {
	return append([]model.Currency(nil), c.currencies...)
}

// DefaultCurrency is the first listed currency, or MYR when none are configured.
func (c *Catalog) DefaultCurrency() model.Currency {
	if len(c.currencies) == 0 {
		return model.Currency{Code: "MYR", Symbol: "RM", DisplayName: "Malaysian Ringgit"}
	}
	return c.currencies[0]
}

func (c *Catalog) Currency(code string) (model.Currency, bool) {
	for _, cur := range c.currencies {
		if strings.EqualFold(cur.Code, code) {
			return cur, true
		}
	}
	return model.Currency{}, false
}
