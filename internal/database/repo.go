package database

import (
	"context"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"

	"wealthdesk/internal/models"
)

// Repo is the SQL store. The same queries run on Postgres and SQLite:
// they are written with ? placeholders and rebound for the driver.
type Repo struct {
	db  *sqlx.DB
	log *logrus.Logger
}

func New(db *sqlx.DB, log *logrus.Logger) *Repo {
	return &Repo{db: db, log: log}
}

func (r *Repo) q(query string) string { return r.db.Rebind(query) }

const userCols = `id, name, email, phone, status, join_date, last_login, investment, total_withdrawn, street, city, state, zip, country`

func named(cols string) string {
	parts := strings.Split(cols, ", ")
	for i, p := range parts {
		parts[i] = ":" + p
	}
	return strings.Join(parts, ", ")
}

func assignments(cols string) string {
	parts := strings.Split(cols, ", ")[1:]
	for i, p := range parts {
		parts[i] = p + " = :" + p
	}
	return strings.Join(parts, ", ")
}

/* ---- users ---- */

var insertUser = `INSERT INTO users (` + userCols + `) VALUES (` + named(userCols) + `)`

func (r *Repo) CreateUser(ctx context.Context, u *models.User) error {
	_, err := r.db.NamedExecContext(ctx, insertUser, u)
	return mapErr(err, "create user "+u.ID)
}

// CreateAccount inserts the user with its KYC record, bank account and
// nominees in one transaction.
func (r *Repo) CreateAccount(ctx context.Context, a *models.NewAccount) error {
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

	if _, err := tx.NamedExecContext(ctx, insertUser, &a.User); err != nil {
		tx.Rollback()
		return mapErr(err, "create user "+a.User.ID)
	}
	if _, err := tx.NamedExecContext(ctx, upsertKYC, &a.KYC); err != nil {
		tx.Rollback()
		return mapErr(err, "save kyc "+a.User.ID)
	}
	if a.BankAccount != nil {
		if _, err := tx.NamedExecContext(ctx, upsertBankAccount, a.BankAccount); err != nil {
			tx.Rollback()
			return mapErr(err, "save bank account "+a.User.ID)
		}
	}
	for i := range a.Nominees {
		if _, err := tx.NamedExecContext(ctx, insertNominee, &a.Nominees[i]); err != nil {
			tx.Rollback()
			return mapErr(err, "create nominee "+a.Nominees[i].ID)
		}
	}
	return tx.Commit()
}

func (r *Repo) GetUser(ctx context.Context, id string) (*models.User, error) {
	var u models.User
	if err := r.db.GetContext(ctx, &u, r.q(`SELECT `+userCols+` FROM users WHERE id = ?`), id); err != nil {
		return nil, mapErr(err, "user "+id)
	}
	return &u, nil
}

func (r *Repo) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	if err := r.db.GetContext(ctx, &u, r.q(`SELECT `+userCols+` FROM users WHERE lower(email) = lower(?)`), email); err != nil {
		return nil, mapErr(err, "user with email "+email)
	}
	return &u, nil
}

func (r *Repo) ListUsers(ctx context.Context) ([]models.User, error) {
	res := []models.User{}
	err := r.db.SelectContext(ctx, &res, `SELECT `+userCols+` FROM users ORDER BY seq`)
	return res, mapErr(err, "list users")
}

func (r *Repo) UpdateUser(ctx context.Context, u *models.User) error {
	res, err := r.db.NamedExecContext(ctx, `UPDATE users SET `+assignments(userCols)+` WHERE id = :id`, u)
	if err != nil {
		return mapErr(err, "update user "+u.ID)
	}
	return affected(res, "user "+u.ID)
}

// DeleteUser removes the user and everything it owns in one transaction.
// SQLite does not enforce the cascades unless foreign keys are enabled,
// so the children are deleted explicitly.
func (r *Repo) DeleteUser(ctx context.Context, id string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, table := range []string{"transactions", "holdings", "kyc_documents", "bank_accounts", "nominees"} {
		if _, err := tx.ExecContext(ctx, tx.Rebind(`DELETE FROM `+table+` WHERE user_id = ?`), id); err != nil {
			return mapErr(err, "delete "+table+" of "+id)
		}
	}
	res, err := tx.ExecContext(ctx, tx.Rebind(`DELETE FROM users WHERE id = ?`), id)
	if err != nil {
		return mapErr(err, "delete user "+id)
	}
	if err := affected(res, "user "+id); err != nil {
		return err
	}
	return tx.Commit()
}

/* ---- investments ---- */

const investmentCols = `id, trade_id, script, segment, open_side, close_side, qty, usd_rate, inr_convert_rate, purchase_rate, leverage, sell_rate, sold_qty, dividend, time_open, close_time, purchase_value, invested_value, sold_value, remaining_qty, gross_pnl, brokerage, net_profit, income_tax, profit_after_tax, total_growth, growth_ratio`

func (r *Repo) CreateInvestment(ctx context.Context, rec *models.InvestmentRecord) error {
	_, err := r.db.NamedExecContext(ctx, `INSERT INTO investments (`+investmentCols+`) VALUES (`+named(investmentCols)+`)`, rec)
	return mapErr(err, "create investment "+rec.ID)
}

func (r *Repo) GetInvestment(ctx context.Context, id string) (*models.InvestmentRecord, error) {
	var rec models.InvestmentRecord
	if err := r.db.GetContext(ctx, &rec, r.q(`SELECT `+investmentCols+` FROM investments WHERE id = ?`), id); err != nil {
		return nil, mapErr(err, "investment "+id)
	}
	return &rec, nil
}

func (r *Repo) ListInvestments(ctx context.Context) ([]models.InvestmentRecord, error) {
	res := []models.InvestmentRecord{}
	err := r.db.SelectContext(ctx, &res, `SELECT `+investmentCols+` FROM investments ORDER BY seq`)
	return res, mapErr(err, "list investments")
}

func (r *Repo) UpdateInvestment(ctx context.Context, rec *models.InvestmentRecord) error {
	res, err := r.db.NamedExecContext(ctx, `UPDATE investments SET `+assignments(investmentCols)+` WHERE id = :id`, rec)
	if err != nil {
		return mapErr(err, "update investment "+rec.ID)
	}
	return affected(res, "investment "+rec.ID)
}

func (r *Repo) DeleteInvestment(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, r.q(`DELETE FROM investments WHERE id = ?`), id)
	if err != nil {
		return mapErr(err, "delete investment "+id)
	}
	return affected(res, "investment "+id)
}
