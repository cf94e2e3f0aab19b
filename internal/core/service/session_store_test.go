package service

import (
	"testing"

	"github.com/99minutos/storefront/internal/core/domain"
)

func TestSessionStore_StartsSignedOut(t *testing.T) {
	if NewSessionStore().Current() != nil {
		t.Fatalf("new store must hold no identity")
	}
}

func TestSessionStore_SetReplacesWholeValue(t *testing.T) {
	s := NewSessionStore()
	s.set(identityFor("alice", domain.RoleCustomer))
	s.set(&domain.Identity{Username: "bob"})

	cur := s.Current()
	if cur == nil || cur.Username != "bob" || cur.Email != "" || cur.Role != domain.RoleNone {
		t.Fatalf("expected wholesale replacement, got %+v", cur)
	}

	s.set(nil)
	if s.Current() != nil {
		t.Fatalf("expected absence after set(nil)")
	}
}

func TestSessionStore_CurrentReturnsCopy(t *testing.T) {
	s := NewSessionStore()
	s.set(identityFor("alice", domain.RoleCustomer))

	cur := s.Current()
	cur.Role = domain.RoleAdmin

	if s.Current().Role != domain.RoleCustomer {
		t.Fatalf("caller mutation leaked into the store")
	}
}

func TestSessionStore_NotifiesSubscribers(t *testing.T) {
	s := NewSessionStore()

	var seen []*domain.Identity
	unsubscribe := s.Subscribe(func(id *domain.Identity) {
		seen = append(seen, id)
	})

	s.set(identityFor("alice", domain.RoleAdmin))
	s.set(nil)
	unsubscribe()
	s.set(identityFor("bob", domain.RoleCustomer))

	if len(seen) != 2 {
		t.Fatalf("expected 2 notifications, got %d", len(seen))
	}
	if seen[0] == nil || seen[0].Username != "alice" {
		t.Fatalf("unexpected first notification: %+v", seen[0])
	}
	if seen[1] != nil {
		t.Fatalf("expected absence notification, got %+v", seen[1])
	}
}
