package models

import (
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/oakinvest/oak-backend/internal/auth"
)

var emailPattern = regexp.MustCompile(`.+@.+\..+`)

var (
	// ErrMissingFields is returned when a required signup field is blank.
	ErrMissingFields = errors.New("username, email, phone, and password are required")
	// ErrInvalidEmail is returned for addresses failing the basic shape check.
	ErrInvalidEmail = errors.New("please use a valid email address")
	// ErrPasswordTooShort is returned for passwords under six characters.
	ErrPasswordTooShort = errors.New("password must be at least 6 characters long")
)

// User captures a stored account. PasswordHash always holds a bcrypt digest,
// never plaintext; the zero counters and admin flag are the signup defaults.
type User struct {
	ID                   int64     `json:"id"`
	Username             string    `json:"username"`
	Email                string    `json:"email"`
	PhoneForWithdrawal   string    `json:"phoneForWithdrawal"`
	PasswordHash         string    `json:"-"`
	WalletBalance        float64   `json:"walletBalance"`
	Bonuses              float64   `json:"bonuses"`
	TotalReferrals       int64     `json:"totalReferrals"`
	TotalReferralBonuses float64   `json:"totalReferralBonuses"`
	IsAdmin              bool      `json:"isAdmin"`
	CreatedAt            time.Time `json:"createdAt"`
}

// NewUser validates the signup fields and hashes the password before the
// record exists, so no User value ever carries plaintext. Username and phone
// are trimmed, email is trimmed and lowercased.
func NewUser(username, email, phone, password string) (User, error) {
	username = strings.TrimSpace(username)
	email = strings.ToLower(strings.TrimSpace(email))
	phone = strings.TrimSpace(phone)

	if username == "" || email == "" || phone == "" || password == "" {
		return User{}, ErrMissingFields
	}
	if !emailPattern.MatchString(email) {
		return User{}, ErrInvalidEmail
	}
	if len(password) < 6 {
		return User{}, ErrPasswordTooShort
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return User{}, err
	}

	return User{
		Username:           username,
		Email:              email,
		PhoneForWithdrawal: phone,
		PasswordHash:       hash,
	}, nil
}

// Sanitized returns a copy with the password hash blanked, safe to attach to
// a request as the authenticated principal.
func (u User) Sanitized() User {
	u.PasswordHash = ""
	return u
}
