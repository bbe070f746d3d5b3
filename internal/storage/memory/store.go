package memory

import (
	"context"
	"sync"
	"time"

	"github.com/oakinvest/oak-backend/internal/models"
	"github.com/oakinvest/oak-backend/internal/storage"
)

// Ensure Store satisfies the storage.UserStore interface at compile time.
var _ storage.UserStore = (*Store)(nil)

// Store is a mutex-guarded in-memory UserStore. It backs handler and
// middleware tests; uniqueness checks run under the same lock as the insert,
// matching the atomicity the database gives the real store.
type Store struct {
	mu     sync.Mutex
	nextID int64
	users  map[int64]models.User
}

// New returns an empty store.
func New() *Store {
	return &Store{users: make(map[int64]models.User)}
}

// CreateUser inserts a user, enforcing email/username/phone uniqueness.
func (s *Store) CreateUser(_ context.Context, user models.User) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.users {
		switch {
		case existing.Email == user.Email:
			return models.User{}, storage.ErrEmailTaken
		case existing.Username == user.Username:
			return models.User{}, storage.ErrUsernameTaken
		case existing.PhoneForWithdrawal == user.PhoneForWithdrawal:
			return models.User{}, storage.ErrPhoneTaken
		}
	}

	s.nextID++
	user.ID = s.nextID
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}
	s.users[user.ID] = user
	return user, nil
}

// FindByEmail fetches a user by email address.
func (s *Store) FindByEmail(_ context.Context, email string) (models.User, error) {
	return s.findBy(func(u models.User) bool { return u.Email == email })
}

// FindByUsername fetches a user by username.
func (s *Store) FindByUsername(_ context.Context, username string) (models.User, error) {
	return s.findBy(func(u models.User) bool { return u.Username == username })
}

// FindByPhone fetches a user by withdrawal phone number.
func (s *Store) FindByPhone(_ context.Context, phone string) (models.User, error) {
	return s.findBy(func(u models.User) bool { return u.PhoneForWithdrawal == phone })
}

// FindByID fetches a user by id.
func (s *Store) FindByID(_ context.Context, id int64) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[id]
	if !ok {
		return models.User{}, storage.ErrNotFound
	}
	return user, nil
}

// Delete removes a user; tests use it to simulate deleted accounts.
func (s *Store) Delete(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.users, id)
}

func (s *Store) findBy(match func(models.User) bool) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, user := range s.users {
		if match(user) {
			return user, nil
		}
	}
	return models.User{}, storage.ErrNotFound
}
