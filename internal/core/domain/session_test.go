package domain

import (
	"strings"
	"testing"
	"time"
)

func TestNewSession(t *testing.T) {
	s, err := NewSession(42)
	if err != nil {
		t.Fatalf("NewSession failed: %v", err)
	}

	if !strings.HasPrefix(s.ID, "nlss-") {
		t.Errorf("session id %q missing prefix", s.ID)
	}
	if s.UserID != 42 {
		t.Errorf("UserID = %d, want 42", s.UserID)
	}
	if s.CreatedAt == 0 {
		t.Error("CreatedAt not set")
	}
}

func TestGenerateSessionID_Unique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id, err := GenerateSessionID()
		if err != nil {
			t.Fatalf("GenerateSessionID failed: %v", err)
		}
		if seen[id] {
			t.Fatalf("duplicate session id: %s", id)
		}
		seen[id] = true
	}
}

func TestSession_IsExpired(t *testing.T) {
	s, err := NewSession(1)
	if err != nil {
		t.Fatalf("NewSession failed: %v", err)
	}

	s.SetExpiration(time.Hour)
	if s.IsExpired() {
		t.Error("fresh session reported expired")
	}

	s.ExpiresAt = time.Now().Add(-time.Second).UnixMilli()
	if !s.IsExpired() {
		t.Error("past-deadline session reported live")
	}
}

func TestSession_SetExpiration(t *testing.T) {
	s, err := NewSession(1)
	if err != nil {
		t.Fatalf("NewSession failed: %v", err)
	}

	before := time.Now().Add(DefaultSessionTTL - time.Minute).UnixMilli()
	s.SetExpiration(DefaultSessionTTL)
	after := time.Now().Add(DefaultSessionTTL + time.Minute).UnixMilli()

	if s.ExpiresAt < before || s.ExpiresAt > after {
		t.Errorf("ExpiresAt = %d outside expected window [%d, %d]", s.ExpiresAt, before, after)
	}
}

func TestSession_Validate(t *testing.T) {
	s, err := NewSession(1)
	if err != nil {
		t.Fatalf("NewSession failed: %v", err)
	}
	s.TokenHash = "abc"
	s.SetExpiration(time.Hour)

	if err := s.Validate(); err != nil {
		t.Errorf("valid session rejected: %v", err)
	}

	noHash := s.Clone()
	noHash.TokenHash = ""
	if err := noHash.Validate(); err == nil {
		t.Error("session without token hash accepted")
	}

	noUser := s.Clone()
	noUser.UserID = 0
	if err := noUser.Validate(); err == nil {
		t.Error("session without user accepted")
	}
}

func TestSession_Clone(t *testing.T) {
	s, err := NewSession(7)
	if err != nil {
		t.Fatalf("NewSession failed: %v", err)
	}
	s.TokenHash = "h"

	c := s.Clone()
	c.TokenHash = "changed"

	if s.TokenHash != "h" {
		t.Error("mutating clone affected the original")
	}
}
