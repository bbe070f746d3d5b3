package memory

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/oakinvest/oak-backend/internal/models"
	"github.com/oakinvest/oak-backend/internal/storage"
)

func seedUser(t *testing.T, s *Store, username, email, phone string) models.User {
	t.Helper()
	user, err := models.NewUser(username, email, phone, "secret1")
	if err != nil {
		t.Fatalf("new user: %v", err)
	}
	created, err := s.CreateUser(context.Background(), user)
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	return created
}

func TestCreateAndFind(t *testing.T) {
	s := New()
	created := seedUser(t, s, "alice", "alice@example.com", "+15550001111")

	if created.ID == 0 {
		t.Fatal("id not assigned")
	}

	byEmail, err := s.FindByEmail(context.Background(), "alice@example.com")
	if err != nil || byEmail.ID != created.ID {
		t.Fatalf("find by email: %v (id=%d)", err, byEmail.ID)
	}
	byUsername, err := s.FindByUsername(context.Background(), "alice")
	if err != nil || byUsername.ID != created.ID {
		t.Fatalf("find by username: %v", err)
	}
	byPhone, err := s.FindByPhone(context.Background(), "+15550001111")
	if err != nil || byPhone.ID != created.ID {
		t.Fatalf("find by phone: %v", err)
	}
	byID, err := s.FindByID(context.Background(), created.ID)
	if err != nil || byID.Email != "alice@example.com" {
		t.Fatalf("find by id: %v", err)
	}
}

func TestFindMissing(t *testing.T) {
	s := New()
	if _, err := s.FindByEmail(context.Background(), "nobody@example.com"); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
	if _, err := s.FindByID(context.Background(), 99); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
}

func TestDuplicateFields(t *testing.T) {
	s := New()
	seedUser(t, s, "alice", "alice@example.com", "+15550001111")

	dup, err := models.NewUser("bob", "alice@example.com", "+15550002222", "secret1")
	if err != nil {
		t.Fatalf("new user: %v", err)
	}
	if _, err := s.CreateUser(context.Background(), dup); !errors.Is(err, storage.ErrEmailTaken) {
		t.Fatalf("duplicate email: got %v, want ErrEmailTaken", err)
	}

	dup, err = models.NewUser("alice", "bob@example.com", "+15550002222", "secret1")
	if err != nil {
		t.Fatalf("new user: %v", err)
	}
	if _, err := s.CreateUser(context.Background(), dup); !errors.Is(err, storage.ErrUsernameTaken) {
		t.Fatalf("duplicate username: got %v, want ErrUsernameTaken", err)
	}

	dup, err = models.NewUser("bob", "bob@example.com", "+15550001111", "secret1")
	if err != nil {
		t.Fatalf("new user: %v", err)
	}
	if _, err := s.CreateUser(context.Background(), dup); !errors.Is(err, storage.ErrPhoneTaken) {
		t.Fatalf("duplicate phone: got %v, want ErrPhoneTaken", err)
	}
}

func TestDuplicateUnwrapsToAlreadyExists(t *testing.T) {
	s := New()
	seedUser(t, s, "alice", "alice@example.com", "+15550001111")

	dup, err := models.NewUser("bob", "alice@example.com", "+15550002222", "secret1")
	if err != nil {
		t.Fatalf("new user: %v", err)
	}
	_, err = s.CreateUser(context.Background(), dup)
	if !errors.Is(err, storage.ErrAlreadyExists) {
		t.Fatalf("field conflict does not unwrap to ErrAlreadyExists: %v", err)
	}
}

// Two near-simultaneous signups with the same email must resolve to one row
// and one conflict, never two rows.
func TestConcurrentDuplicateSignup(t *testing.T) {
	s := New()

	user, err := models.NewUser("alice", "alice@example.com", "+15550001111", "secret1")
	if err != nil {
		t.Fatalf("new user: %v", err)
	}

	var wg sync.WaitGroup
	results := make(chan error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.CreateUser(context.Background(), user)
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	var successes, conflicts int
	for err := range results {
		switch {
		case err == nil:
			successes++
		case errors.Is(err, storage.ErrAlreadyExists):
			conflicts++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if successes != 1 || conflicts != 1 {
		t.Fatalf("got %d successes and %d conflicts, want 1 and 1", successes, conflicts)
	}
}
