package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/anyulbade/card-reward-optimizer/internal/catalog"
	"github.com/anyulbade/card-reward-optimizer/internal/dto"
	"github.com/anyulbade/card-reward-optimizer/internal/metrics"
	"github.com/anyulbade/card-reward-optimizer/internal/model"
	"github.com/anyulbade/card-reward-optimizer/internal/rewards"
)

// TransactionStore is the caller-owned ledger. List returns newest-recorded first.
type TransactionStore interface {
	Insert(ctx context.Context, txn *model.Transaction) error
	InsertBatch(ctx context.Context, txns []*model.Transaction) error
	List(ctx context.Context) ([]model.Transaction, error)
	DeleteAll(ctx context.Context) (int64, error)
}

type SettingsStore interface {
	GetCurrency(ctx context.Context) (model.Currency, bool, error)
	SetCurrency(ctx context.Context, cur model.Currency) error
	ClearCurrency(ctx context.Context) error
}

type LedgerService struct {
	catalog  *catalog.Catalog
	txns     TransactionStore
	settings SettingsStore
	now      func() time.Time
	newID    func() string
}

func NewLedgerService(cat *catalog.Catalog, txns TransactionStore, settings SettingsStore) *LedgerService {
	return &LedgerService{
		catalog:  cat,
		txns:     txns,
		settings: settings,
		now:      time.Now,
		newID:    uuid.NewString,
	}
}

// CreateTransaction records one purchase. The reward earned comes from the card
// actually used; the potential is what the best card in the catalog would have
// earned for the same purchase.
func (s *LedgerService) CreateTransaction(ctx context.Context, req *dto.CreateTransactionRequest) (*model.Transaction, error) {
	parsed, card, err := s.prepare(req)
	if err != nil {
		return nil, err
	}

	txn := s.build(parsed, card)
	if err := s.txns.Insert(ctx, txn); err != nil {
		return nil, err
	}
	s.observe(txn)
	s.detectCurrency(ctx, parsed)

	return txn, nil
}

// CreateBatch validates every item before writing anything; one bad item rejects
// the whole batch.
func (s *LedgerService) CreateBatch(ctx context.Context, req *dto.BatchTransactionRequest) ([]*model.Transaction, []dto.ValidationError, error) {
	var validationErrors []dto.ValidationError
	parsed := make([]model.ParsedTransaction, len(req.Transactions))
	cards := make([]model.Card, len(req.Transactions))

	for i := range req.Transactions {
		p, card, err := s.prepare(&req.Transactions[i])
		if err != nil {
			var ve *validationErr
			if errors.As(err, &ve) {
				validationErrors = append(validationErrors, dto.ValidationError{
					Index:   i,
					Field:   ve.field,
					Message: ve.message,
				})
				continue
			}
			return nil, nil, err
		}
		parsed[i], cards[i] = p, card
	}

	if len(validationErrors) > 0 {
		return nil, validationErrors, nil
	}

	txns := make([]*model.Transaction, len(parsed))
	for i := range parsed {
		txns[i] = s.build(parsed[i], cards[i])
	}

	if err := s.txns.InsertBatch(ctx, txns); err != nil {
		return nil, nil, err
	}
	for _, txn := range txns {
		s.observe(txn)
	}

	for i := len(parsed) - 1; i >= 0; i-- {
		if parsed[i].CurrencyCode != "" {
			s.detectCurrency(ctx, parsed[i])
			break
		}
	}

	return txns, nil, nil
}

func (s *LedgerService) prepare(req *dto.CreateTransactionRequest) (model.ParsedTransaction, model.Card, error) {
	if req.Amount <= 0 {
		return model.ParsedTransaction{}, model.Card{}, &validationErr{field: "amount", message: "amount must be greater than zero"}
	}
	category := strings.TrimSpace(req.Category)
	if category == "" {
		return model.ParsedTransaction{}, model.Card{}, &validationErr{field: "category", message: "category is required"}
	}
	date, err := model.ParseDate(req.Date)
	if err != nil {
		return model.ParsedTransaction{}, model.Card{}, &validationErr{field: "date", message: err.Error()}
	}

	parsed := model.ParsedTransaction{
		Merchant:       strings.TrimSpace(req.Merchant),
		Amount:         req.Amount,
		Date:           date,
		Category:       model.Category(category),
		CardUsedHint:   req.CardUsedHint,
		CurrencyCode:   strings.ToUpper(req.CurrencyCode),
		CurrencySymbol: req.CurrencySymbol,
		Notes:          req.Notes,
	}

	card, err := s.resolveCard(req.CardID, req.CardUsedHint)
	if err != nil {
		return model.ParsedTransaction{}, model.Card{}, err
	}
	return parsed, card, nil
}

// resolveCard prefers an explicit card id and falls back to the extracted hint.
func (s *LedgerService) resolveCard(cardID, hint string) (model.Card, error) {
	if cardID != "" {
		card, err := s.catalog.Card(cardID)
		if errors.Is(err, catalog.ErrUnknownCard) {
			return model.Card{}, &validationErr{field: "card_id", message: fmt.Sprintf("card '%s' not found", cardID)}
		}
		return card, err
	}
	if hint != "" {
		if card, ok := s.catalog.MatchHint(hint); ok {
			return card, nil
		}
		return model.Card{}, &validationErr{field: "card_used_hint", message: fmt.Sprintf("no card in the portfolio matches '%s'", hint)}
	}
	return model.Card{}, &validationErr{field: "card_id", message: "card_id or card_used_hint is required"}
}

func (s *LedgerService) build(p model.ParsedTransaction, card model.Card) *model.Transaction {
	purchase := p.Purchase()
	return &model.Transaction{
		ID:              s.newID(),
		Date:            p.Date,
		Merchant:        p.Merchant,
		Category:        p.Category,
		Amount:          p.Amount,
		CardID:          card.ID,
		CardName:        card.Name,
		RewardEarned:    rewards.ResolveReward(card, purchase),
		RewardPotential: rewards.Potential(s.catalog.Cards(), purchase),
		Notes:           p.Notes,
		RecordedAt:      s.now().UTC(),
	}
}

func (s *LedgerService) observe(txn *model.Transaction) {
	metrics.ObserveTransaction(txn.CardID, txn.RewardEarned, txn.RewardPotential)
	log.Info().
		Str("id", txn.ID).
		Str("card_id", txn.CardID).
		Str("category", string(txn.Category)).
		Float64("amount", txn.Amount).
		Float64("earned", txn.RewardEarned).
		Float64("potential", txn.RewardPotential).
		Msg("transaction recorded")
}

// detectCurrency stores the currency an extracted document carried as the display
// currency. Unknown codes are kept with whatever symbol came with them. The
// purchase is already recorded by then, so a failure here is logged and the
// previous display currency stays.
func (s *LedgerService) detectCurrency(ctx context.Context, p model.ParsedTransaction) {
	if p.CurrencyCode == "" {
		return
	}
	cur, ok := s.catalog.Currency(p.CurrencyCode)
	if !ok {
		symbol := p.CurrencySymbol
		if symbol == "" {
			symbol = p.CurrencyCode
		}
		cur = model.Currency{Code: p.CurrencyCode, Symbol: symbol, DisplayName: p.CurrencyCode + " (Auto-detected)"}
	}
	if err := s.settings.SetCurrency(ctx, cur); err != nil {
		log.Error().Err(err).Str("currency", cur.Code).Msg("failed to store detected currency")
	}
}

// Snapshot returns the ledger newest-recorded first.
func (s *LedgerService) Snapshot(ctx context.Context) ([]model.Transaction, error) {
	txns, err := s.txns.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("load ledger: %w", err)
	}
	return txns, nil
}

func (s *LedgerService) Summary(ctx context.Context) (rewards.PortfolioStats, error) {
	txns, err := s.Snapshot(ctx)
	if err != nil {
		return rewards.PortfolioStats{}, err
	}
	return rewards.Summarize(txns), nil
}

// View filters and sorts the ledger, then cuts out one page. total counts the
// filtered entries before paging.
func (s *LedgerService) View(ctx context.Context, card, sort string, page dto.PaginationParams) ([]model.Transaction, int, error) {
	order, err := rewards.ParseSortOrder(sort)
	if err != nil {
		return nil, 0, &validationErr{field: "sort", message: err.Error()}
	}

	txns, err := s.Snapshot(ctx)
	if err != nil {
		return nil, 0, err
	}

	view := rewards.View(txns, rewards.Filter{Card: card}, order)
	start, end := page.Window(len(view))
	return view[start:end], len(view), nil
}

// Reset clears the display currency, then the ledger. A failed reset leaves the
// ledger untouched.
func (s *LedgerService) Reset(ctx context.Context) (int64, error) {
	if err := s.settings.ClearCurrency(ctx); err != nil {
		return 0, fmt.Errorf("reset currency: %w", err)
	}
	n, err := s.txns.DeleteAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("reset ledger: %w", err)
	}
	log.Warn().Int64("deleted", n).Msg("ledger reset")
	return n, nil
}

func (s *LedgerService) Currency(ctx context.Context) (model.Currency, error) {
	cur, ok, err := s.settings.GetCurrency(ctx)
	if err != nil {
		return model.Currency{}, fmt.Errorf("load currency: %w", err)
	}
	if !ok {
		return s.catalog.DefaultCurrency(), nil
	}
	return cur, nil
}

func (s *LedgerService) Currencies() []model.Currency {
	return s.catalog.Currencies()
}

// SetCurrency switches the display currency. Codes outside the supported list
// need an explicit symbol.
func (s *LedgerService) SetCurrency(ctx context.Context, req *dto.SetCurrencyRequest) (model.Currency, error) {
	code := strings.ToUpper(req.Code)
	cur, ok := s.catalog.Currency(code)
	if !ok {
		if req.Symbol == "" {
			return model.Currency{}, &validationErr{field: "symbol", message: fmt.Sprintf("symbol is required for unsupported currency '%s'", code)}
		}
		cur = model.Currency{Code: code, Symbol: req.Symbol, DisplayName: code}
	} else if req.Symbol != "" {
		cur.Symbol = req.Symbol
	}

	if err := s.settings.SetCurrency(ctx, cur); err != nil {
		return model.Currency{}, fmt.Errorf("store currency: %w", err)
	}
	return cur, nil
}
