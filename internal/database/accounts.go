package database

import (
	"context"

	"wealthdesk/internal/models"
)

func (r *Repo) GetKYC(ctx context.Context, userID string) (*models.KYCDocument, error) {
	var k models.KYCDocument
	err := r.db.GetContext(ctx, &k, r.q(`SELECT user_id, status, document_name, submitted_at FROM kyc_documents WHERE user_id = ?`), userID)
	if err != nil {
		return nil, mapErr(err, "kyc "+userID)
	}
	return &k, nil
}

const upsertKYC = `INSERT INTO kyc_documents (user_id, status, document_name, submitted_at)
	VALUES (:user_id, :status, :document_name, :submitted_at)
	ON CONFLICT (user_id) DO UPDATE SET status = excluded.status, document_name = excluded.document_name, submitted_at = excluded.submitted_at`

func (r *Repo) SaveKYC(ctx context.Context, k *models.KYCDocument) error {
	_, err := r.db.NamedExecContext(ctx, upsertKYC, k)
	return mapErr(err, "save kyc "+k.UserID)
}

func (r *Repo) GetBankAccount(ctx context.Context, userID string) (*models.BankAccount, error) {
	var b models.BankAccount
	err := r.db.GetContext(ctx, &b, r.q(`SELECT user_id, bank_name, account_number, ifsc, status FROM bank_accounts WHERE user_id = ?`), userID)
	if err != nil {
		return nil, mapErr(err, "bank account "+userID)
	}
	return &b, nil
}

const upsertBankAccount = `INSERT INTO bank_accounts (user_id, bank_name, account_number, ifsc, status)
	VALUES (:user_id, :bank_name, :account_number, :ifsc, :status)
	ON CONFLICT (user_id) DO UPDATE SET bank_name = excluded.bank_name, account_number = excluded.account_number, ifsc = excluded.ifsc, status = excluded.status`

func (r *Repo) SaveBankAccount(ctx context.Context, b *models.BankAccount) error {
	_, err := r.db.NamedExecContext(ctx, upsertBankAccount, b)
	return mapErr(err, "save bank account "+b.UserID)
}

/* ---- nominees ---- */

const nomineeCols = `id, user_id, name, relationship, email, phone`

var insertNominee = `INSERT INTO nominees (` + nomineeCols + `) VALUES (` + named(nomineeCols) + `)`

func (r *Repo) ListNominees(ctx context.Context, userID string) ([]models.Nominee, error) {
	res := []models.Nominee{}
	err := r.db.SelectContext(ctx, &res, r.q(`SELECT `+nomineeCols+` FROM nominees WHERE user_id = ? ORDER BY seq`), userID)
	return res, mapErr(err, "list nominees")
}

func (r *Repo) CreateNominee(ctx context.Context, n *models.Nominee) error {
	_, err := r.db.NamedExecContext(ctx, insertNominee, n)
	return mapErr(err, "create nominee "+n.ID)
}

func (r *Repo) UpdateNominee(ctx context.Context, n *models.Nominee) error {
	res, err := r.db.NamedExecContext(ctx, `UPDATE nominees SET name = :name, relationship = :relationship, email = :email, phone = :phone
		WHERE id = :id AND user_id = :user_id`, n)
	if err != nil {
		return mapErr(err, "update nominee "+n.ID)
	}
	return affected(res, "nominee "+n.ID)
}

func (r *Repo) DeleteNominee(ctx context.Context, userID, id string) error {
	res, err := r.db.ExecContext(ctx, r.q(`DELETE FROM nominees WHERE id = ? AND user_id = ?`), id, userID)
	if err != nil {
		return mapErr(err, "delete nominee "+id)
	}
	return affected(res, "nominee "+id)
}

/* ---- mail ---- */

const emailCols = `id, kind, recipient, subject, body, sent_at`

func (r *Repo) SaveEmail(ctx context.Context, e *models.Email) error {
	_, err := r.db.NamedExecContext(ctx, `INSERT INTO emails (`+emailCols+`) VALUES (`+named(emailCols)+`)`, e)
	return mapErr(err, "save email "+e.ID)
}

func (r *Repo) ListEmails(ctx context.Context) ([]models.Email, error) {
	res := []models.Email{}
	err := r.db.SelectContext(ctx, &res, `SELECT `+emailCols+` FROM emails ORDER BY seq`)
	return res, mapErr(err, "list emails")
}
