package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/oakinvest/oak-backend/internal/models"
	"github.com/oakinvest/oak-backend/internal/storage"
)

// Ensure Store satisfies the storage.UserStore interface at compile time.
var _ storage.UserStore = (*Store)(nil)

const userColumns = `id, username, email, phone_for_withdrawal, password_hash,
	wallet_balance, bonuses, total_referrals, total_referral_bonuses,
	is_admin, created_at`

// Store provides Postgres-backed persistence for users.
type Store struct {
	pool *pgxpool.Pool
}

// NewUserStore creates a new Store and runs migrations.
func NewUserStore(ctx context.Context, databaseURL string) (*Store, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	s := &Store{pool: pool}
	if err := s.migrate(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return s, nil
}

// Close releases database resources.
func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

func (s *Store) migrate(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id BIGSERIAL PRIMARY KEY,
			username TEXT NOT NULL,
			email TEXT NOT NULL,
			phone_for_withdrawal TEXT NOT NULL,
			password_hash TEXT NOT NULL,
			wallet_balance NUMERIC(24,2) NOT NULL DEFAULT 0,
			bonuses NUMERIC(24,2) NOT NULL DEFAULT 0,
			total_referrals BIGINT NOT NULL DEFAULT 0,
			total_referral_bonuses NUMERIC(24,2) NOT NULL DEFAULT 0,
			is_admin BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);`,
		`CREATE UNIQUE INDEX IF NOT EXISTS users_username_key ON users (username);`,
		`CREATE UNIQUE INDEX IF NOT EXISTS users_email_key ON users (email);`,
		`CREATE UNIQUE INDEX IF NOT EXISTS users_phone_key ON users (phone_for_withdrawal);`,
	}
	for _, stmt := range stmts {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("apply migrations: %w", err)
		}
	}
	return nil
}

// CreateUser inserts a new user row. A unique-constraint violation is mapped
// to the conflicted field so a lost insert race still reports which value
// was taken.
func (s *Store) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	const query = `
		INSERT INTO users (username, email, phone_for_withdrawal, password_hash,
			wallet_balance, bonuses, total_referrals, total_referral_bonuses, is_admin)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + userColumns + `;`

	row := s.pool.QueryRow(ctx, query,
		user.Username, user.Email, user.PhoneForWithdrawal, user.PasswordHash,
		user.WalletBalance, user.Bonuses, user.TotalReferrals, user.TotalReferralBonuses,
		user.IsAdmin,
	)
	created, err := scanUser(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return models.User{}, duplicateError(pgErr.ConstraintName)
		}
		return models.User{}, err
	}
	return created, nil
}

// FindByEmail fetches a user by email address.
func (s *Store) FindByEmail(ctx context.Context, email string) (models.User, error) {
	return s.findBy(ctx, "email", email)
}

// FindByUsername fetches a user by username.
func (s *Store) FindByUsername(ctx context.Context, username string) (models.User, error) {
	return s.findBy(ctx, "username", username)
}

// FindByPhone fetches a user by withdrawal phone number.
func (s *Store) FindByPhone(ctx context.Context, phone string) (models.User, error) {
	return s.findBy(ctx, "phone_for_withdrawal", phone)
}

// FindByID fetches a user by primary key.
func (s *Store) FindByID(ctx context.Context, id int64) (models.User, error) {
	return s.findBy(ctx, "id", id)
}

func (s *Store) findBy(ctx context.Context, column string, value any) (models.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE %s = $1;`, userColumns, column)
	row := s.pool.QueryRow(ctx, query, value)
	return scanUser(row)
}

func duplicateError(constraint string) error {
	switch constraint {
	case "users_email_key":
		return storage.ErrEmailTaken
	case "users_username_key":
		return storage.ErrUsernameTaken
	case "users_phone_key":
		return storage.ErrPhoneTaken
	default:
		return storage.ErrAlreadyExists
	}
}

func scanUser(row pgx.Row) (models.User, error) {
	var user models.User
	if err := row.Scan(
		&user.ID, &user.Username, &user.Email, &user.PhoneForWithdrawal,
		&user.PasswordHash, &user.WalletBalance, &user.Bonuses,
		&user.TotalReferrals, &user.TotalReferralBonuses,
		&user.IsAdmin, &user.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.User{}, storage.ErrNotFound
		}
		return models.User{}, err
	}
	return user, nil
}
