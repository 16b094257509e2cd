package orders

import (
	"context"
	"errors"
	"testing"

	"github.com/m3rciful/shopbot/core/telegram/state"
)

func newTestSessions() *Sessions {
	return NewSessions(state.NewMemoryManager())
}

func TestSelectProductStartsFlow(t *testing.T) {
	s := newTestSessions()
	const userID = int64(101)

	if s.AwaitingPhone(userID) {
		t.Fatal("fresh user must not await a phone")
	}

	s.SelectProduct(context.Background(), userID, "-100123_1")
	if !s.AwaitingPhone(userID) {
		t.Fatal("selection must start the phone flow")
	}
	pid, ok := s.SelectedProduct(userID)
	if !ok || pid != "-100123_1" {
		t.Fatalf("selected product = %q, %v", pid, ok)
	}

	// A second pick overwrites the first.
	s.SelectProduct(context.Background(), userID, "-100123_2")
	if pid, _ := s.SelectedProduct(userID); pid != "-100123_2" {
		t.Fatalf("selected product = %q after re-pick", pid)
	}
}

func TestSubmitPhoneOutsideFlow(t *testing.T) {
	s := newTestSessions()
	_, _, err := s.SubmitPhone(context.Background(), 101, "+998901234567", false)
	if !errors.Is(err, ErrNoActiveOrder) {
		t.Fatalf("expected ErrNoActiveOrder, got %v", err)
	}
}

func TestSubmitPhoneFreeText(t *testing.T) {
	s := newTestSessions()
	const userID = int64(101)
	s.SelectProduct(context.Background(), userID, "-100123_1")

	if _, _, err := s.SubmitPhone(context.Background(), userID, "12345", false); !errors.Is(err, ErrInvalidPhone) {
		t.Fatalf("short input: expected ErrInvalidPhone, got %v", err)
	}
	// The flow survives a rejected attempt.
	if !s.AwaitingPhone(userID) {
		t.Fatal("rejected input must keep the flow active")
	}

	phone, pid, err := s.SubmitPhone(context.Background(), userID, "  +998901234567  ", false)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if phone != "+998901234567" {
		t.Fatalf("phone = %q", phone)
	}
	if pid != "-100123_1" {
		t.Fatalf("product = %q", pid)
	}
}

func TestSubmitPhoneViaContact(t *testing.T) {
	s := newTestSessions()
	const userID = int64(101)
	s.SelectProduct(context.Background(), userID, "-100123_1")

	if _, _, err := s.SubmitPhone(context.Background(), userID, "   ", true); !errors.Is(err, ErrInvalidPhone) {
		t.Fatalf("empty contact: expected ErrInvalidPhone, got %v", err)
	}

	// Contact-shared numbers are trusted even below the free-text bound.
	phone, _, err := s.SubmitPhone(context.Background(), userID, "12345", true)
	if err != nil {
		t.Fatalf("contact submit: %v", err)
	}
	if phone != "12345" {
		t.Fatalf("phone = %q", phone)
	}
}

func TestClearEndsFlow(t *testing.T) {
	s := newTestSessions()
	const userID = int64(101)
	s.SelectProduct(context.Background(), userID, "-100123_1")

	s.Clear(userID)
	if s.AwaitingPhone(userID) {
		t.Fatal("clear must end the flow")
	}
	if _, ok := s.SelectedProduct(userID); ok {
		t.Fatal("clear must drop the selection")
	}
	if _, _, err := s.SubmitPhone(context.Background(), userID, "+998901234567", false); !errors.Is(err, ErrNoActiveOrder) {
		t.Fatalf("expected ErrNoActiveOrder after clear, got %v", err)
	}
}
