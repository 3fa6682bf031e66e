package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mcoot/folio/internal/certlist"
	"github.com/mcoot/folio/internal/dbx"
	"github.com/mcoot/folio/internal/model"
)

const accountColumns = `id, username, email, password_hash, tagline, bio, course, faction,
	avatar_url, status, skills, public_email, linkedin, github, certifications_data, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAccount(row rowScanner) (*model.Account, error) {
	var (
		a     model.Account
		certs string
	)
	err := row.Scan(
		&a.ID, &a.Username, &a.Email, &a.PasswordHash, &a.Tagline, &a.Bio, &a.Course, &a.Faction,
		&a.AvatarURL, &a.Status, &a.Skills, &a.PublicEmail, &a.LinkedIn, &a.GitHub, &certs, &a.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrAccountNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	a.Certifications = certlist.Decode(certs)
	return &a, nil
}

func (s *Storage) CreateAccount(ctx context.Context, account *model.Account) error {
	query := s.q(`INSERT INTO accounts (username, email, password_hash, tagline, bio, course, faction,
		avatar_url, status, skills, public_email, linkedin, github, certifications_data, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING id`)

	err := s.db.QueryRowContext(ctx, query,
		account.Username, account.Email, account.PasswordHash, account.Tagline, account.Bio,
		account.Course, account.Faction, account.AvatarURL, account.Status, account.Skills,
		account.PublicEmail, account.LinkedIn, account.GitHub,
		certlist.Encode(account.Certifications), account.CreatedAt,
	).Scan(&account.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return model.ErrAccountExists
		}
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (s *Storage) GetAccount(ctx context.Context, id model.AccountID) (*model.Account, error) {
	row := s.db.QueryRowContext(ctx, s.q(`SELECT `+accountColumns+` FROM accounts WHERE id = ?`), id)
	return scanAccount(row)
}

func (s *Storage) GetAccountByEmail(ctx context.Context, email string) (*model.Account, error) {
	row := s.db.QueryRowContext(ctx, s.q(`SELECT `+accountColumns+` FROM accounts WHERE email = ?`), email)
	return scanAccount(row)
}

func (s *Storage) GetAccountByUsername(ctx context.Context, username string) (*model.Account, error) {
	row := s.db.QueryRowContext(ctx, s.q(`SELECT `+accountColumns+` FROM accounts WHERE username = ?`), username)
	return scanAccount(row)
}

func (s *Storage) AccountExists(ctx context.Context, username, email string) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx,
		s.q(`SELECT EXISTS (SELECT 1 FROM accounts WHERE username = ? OR email = ?)`),
		username, email,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return exists, nil
}

// UpdateAccount writes profile fields and the certification list together.
// A unique violation rolls the transaction back and returns ErrAccountExists.
func (s *Storage) UpdateAccount(ctx context.Context, account *model.Account) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		res, err := tx.ExecContext(ctx, s.q(`UPDATE accounts SET
			username = ?, email = ?, password_hash = ?, tagline = ?, bio = ?, course = ?, faction = ?,
			avatar_url = ?, status = ?, skills = ?, public_email = ?, linkedin = ?, github = ?,
			certifications_data = ?
			WHERE id = ?`),
			account.Username, account.Email, account.PasswordHash, account.Tagline, account.Bio,
			account.Course, account.Faction, account.AvatarURL, account.Status, account.Skills,
			account.PublicEmail, account.LinkedIn, account.GitHub,
			certlist.Encode(account.Certifications), account.ID,
		)
		if err != nil {
			if isUniqueViolation(err) {
				return model.ErrAccountExists
			}
			return fmt.Errorf("db error: %w", err)
		}

		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("db error: %w", err)
		}
		if n == 0 {
			return model.ErrAccountNotFound
		}
		return nil
	})
}
