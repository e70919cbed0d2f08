package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/anyulbade/card-reward-optimizer/internal/model"
)

const insertTransactionSQL = `INSERT INTO transactions (id, txn_date, merchant, category, amount, card_id, card_name, reward_earned, reward_potential, notes, recorded_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

type TransactionRepository struct {
	pool *pgxpool.Pool
}

func NewTransactionRepository(pool *pgxpool.Pool) *TransactionRepository {
	return &TransactionRepository{pool: pool}
}

func insertArgs(txn *model.Transaction) []any {
	return []any{
		txn.ID, txn.Date, txn.Merchant, string(txn.Category), txn.Amount,
		txn.CardID, txn.CardName, txn.RewardEarned, txn.RewardPotential,
		txn.Notes, txn.RecordedAt,
	}
}

func (r *TransactionRepository) Insert(ctx context.Context, txn *model.Transaction) error {
	if _, err := r.pool.Exec(ctx, insertTransactionSQL, insertArgs(txn)...); err != nil {
		return fmt.Errorf("insert transaction: %w", err)
	}
	return nil
}

func (r *TransactionRepository) InsertBatch(ctx context.Context, txns []*model.Transaction) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin batch transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	batch := &pgx.Batch{}
	for _, txn := range txns {
		batch.Queue(insertTransactionSQL, insertArgs(txn)...)
	}

	br := tx.SendBatch(ctx, batch)
	for i := range txns {
		if _, err := br.Exec(); err != nil {
			br.Close()
			return fmt.Errorf("insert transaction %d: %w", i, err)
		}
	}
	if err := br.Close(); err != nil {
		return fmt.Errorf("close batch: %w", err)
	}

	return tx.Commit(ctx)
}

// List returns the whole ledger newest-recorded first.
func (r *TransactionRepository) List(ctx context.Context) ([]model.Transaction, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id::text, txn_date, merchant, category, amount, card_id, card_name,
			reward_earned, reward_potential, notes, recorded_at
		FROM transactions
		ORDER BY seq DESC`)
	if err != nil {
		return nil, fmt.Errorf("query transactions: %w", err)
	}
	defer rows.Close()

	var results []model.Transaction
	for rows.Next() {
		var t model.Transaction
		var category string
		err := rows.Scan(
			&t.ID, &t.Date, &t.Merchant, &category, &t.Amount, &t.CardID, &t.CardName,
			&t.RewardEarned, &t.RewardPotential, &t.Notes, &t.RecordedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan transaction row: %w", err)
		}
		t.Category = model.Category(category)
		t.Date = model.CalendarDate(t.Date)
		results = append(results, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transactions: %w", err)
	}

	return results, nil
}

func (r *TransactionRepository) DeleteAll(ctx context.Context) (int64, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM transactions`)
	if err != nil {
		return 0, fmt.Errorf("delete transactions: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (r *TransactionRepository) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}
