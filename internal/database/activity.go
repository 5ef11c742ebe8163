package database

import (
	"context"
	"database/sql"
	"errors"

	"wealthdesk/internal/models"
)

const (
	transactionCols = `id, user_id, date, type, symbol, description, quantity, price, amount, fee, status`
	holdingCols     = `user_id, symbol, name, shares, avg_price`
)

// RecordTransaction writes tx and the holding that update computes in
// one transaction. On Postgres the user row is locked first, so trades of one
// user are applied in turn; SQLite runs on a single connection. The
// holding row is replaced, or deleted once no shares are left.
func (r *Repo) RecordTransaction(ctx context.Context, t *models.Transaction, update models.HoldingUpdate) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if p := recover(); p != nil {
			tx.Rollback()
			panic(p)
		}
	}()

	lock := `SELECT 1 FROM users WHERE id = ?`
	if r.db.DriverName() == DriverPostgres {
		lock += ` FOR UPDATE`
	}
	var exists int
	if err := tx.GetContext(ctx, &exists, tx.Rebind(lock), t.UserID); err != nil {
		tx.Rollback()
		return mapErr(err, "user "+t.UserID)
	}

	var next *models.Holding
	if update != nil {
		var cur *models.Holding
		var h models.Holding
		err := tx.GetContext(ctx, &h, tx.Rebind(`SELECT `+holdingCols+` FROM holdings WHERE user_id = ? AND symbol = ?`), t.UserID, t.Symbol)
		switch {
		case err == nil:
			cur = &h
		case !errors.Is(err, sql.ErrNoRows):
			tx.Rollback()
			return mapErr(err, "holding "+t.UserID+"/"+t.Symbol)
		}
		if next, err = update(cur); err != nil {
			tx.Rollback()
			return err
		}
	}

	if _, err := tx.NamedExecContext(ctx, `INSERT INTO transactions (`+transactionCols+`) VALUES (`+named(transactionCols)+`)`, t); err != nil {
		tx.Rollback()
		return mapErr(err, "insert transaction "+t.ID)
	}

	if next != nil {
		if next.Shares == 0 {
			_, err = tx.ExecContext(ctx, tx.Rebind(`DELETE FROM holdings WHERE user_id = ? AND symbol = ?`), next.UserID, next.Symbol)
		} else {
			upsert := `INSERT INTO holdings (` + holdingCols + `) VALUES (` + named(holdingCols) + `)
				ON CONFLICT (user_id, symbol) DO UPDATE SET name = excluded.name, shares = excluded.shares, avg_price = excluded.avg_price`
			_, err = tx.NamedExecContext(ctx, upsert, next)
		}
		if err != nil {
			tx.Rollback()
			return mapErr(err, "write holding "+next.Symbol)
		}
	}

	return tx.Commit()
}

func (r *Repo) ListTransactions(ctx context.Context, userID string) ([]models.Transaction, error) {
	res := []models.Transaction{}
	err := r.db.SelectContext(ctx, &res, r.q(`SELECT `+transactionCols+` FROM transactions WHERE user_id = ? ORDER BY seq`), userID)
	return res, mapErr(err, "list transactions")
}

func (r *Repo) GetHolding(ctx context.Context, userID, symbol string) (*models.Holding, error) {
	var h models.Holding
	if err := r.db.GetContext(ctx, &h, r.q(`SELECT `+holdingCols+` FROM holdings WHERE user_id = ? AND symbol = ?`), userID, symbol); err != nil {
		return nil, mapErr(err, "holding "+userID+"/"+symbol)
	}
	return &h, nil
}

func (r *Repo) ListHoldings(ctx context.Context, userID string) ([]models.Holding, error) {
	rows, err := r.db.QueryxContext(ctx, r.q(`SELECT `+holdingCols+` FROM holdings WHERE user_id = ? ORDER BY seq`), userID)
	if err != nil {
		return nil, mapErr(err, "list holdings")
	}
	defer rows.Close()
	res := []models.Holding{}
	for rows.Next() {
		var h models.Holding
		if err := rows.StructScan(&h); err != nil {
			r.log.Warnf("scan holding failed: %v", err)
			continue
		}
		res = append(res, h)
	}
	return res, rows.Err()
}

/* ---- quotes ---- */

// UpsertQuote appends to the price history; LatestQuote reads its newest row.
func (r *Repo) UpsertQuote(ctx context.Context, q *models.Quote) error {
	_, err := r.db.NamedExecContext(ctx, `INSERT INTO price_history (symbol, price, change_pct, ts) VALUES (:symbol, :price, :change_pct, :ts)`, q)
	return mapErr(err, "insert quote "+q.Symbol)
}

func (r *Repo) LatestQuote(ctx context.Context, symbol string) (*models.Quote, error) {
	var q models.Quote
	err := r.db.GetContext(ctx, &q, r.q(`SELECT symbol, price, change_pct, ts FROM price_history WHERE symbol = ? ORDER BY ts DESC LIMIT 1`), symbol)
	if err != nil {
		return nil, mapErr(err, "quote "+symbol)
	}
	return &q, nil
}
