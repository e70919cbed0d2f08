package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/anyulbade/card-reward-optimizer/internal/model"
)

const currencyKey = "display_currency"

type SettingsRepository struct {
	pool *pgxpool.Pool
}

func NewSettingsRepository(pool *pgxpool.Pool) *SettingsRepository {
	return &SettingsRepository{pool: pool}
}

// GetCurrency returns the stored display currency; ok is false when none is set.
func (r *SettingsRepository) GetCurrency(ctx context.Context) (model.Currency, bool, error) {
	var raw []byte
	err := r.pool.QueryRow(ctx, `SELECT value FROM app_settings WHERE key = $1`, currencyKey).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Currency{}, false, nil
	}
	if err != nil {
		return model.Currency{}, false, fmt.Errorf("get currency: %w", err)
	}

	var cur model.Currency
	if err := json.Unmarshal(raw, &cur); err != nil {
		return model.Currency{}, false, fmt.Errorf("decode currency: %w", err)
	}
	return cur, true, nil
}

func (r *SettingsRepository) SetCurrency(ctx context.Context, cur model.Currency) error {
	raw, err := json.Marshal(cur)
	if err != nil {
		return fmt.Errorf("encode currency: %w", err)
	}
	_, err = r.pool.Exec(ctx,
		`INSERT INTO app_settings (key, value, updated_at) VALUES ($1, $2, NOW())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()`,
		currencyKey, raw)
	if err != nil {
		return fmt.Errorf("set currency: %w", err)
	}
	return nil
}

func (r *SettingsRepository) ClearCurrency(ctx context.Context) error {
	if _, err := r.pool.Exec(ctx, `DELETE FROM app_settings WHERE key = $1`, currencyKey); err != nil {
		return fmt.Errorf("clear currency: %w", err)
	}
	return nil
}
