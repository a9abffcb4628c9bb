package model

import (
	"testing"
	"time"
)

func TestEffectiveStatus(t *testing.T) {
	now := time.Date(2025, 11, 3, 10, 0, 0, 0, time.UTC)
	sess := &Session{Status: SessionStatusLive, ExpiresAt: now.Add(time.Hour)}
	if got := sess.EffectiveStatus(now); got != SessionStatusLive {
		t.Errorf("status = %s, want live", got)
	}
	if got := sess.EffectiveStatus(now.Add(2 * time.Hour)); got != SessionStatusExpired {
		t.Errorf("status past expiry = %s, want expired", got)
	}

	// An explicitly ended session stays ended, never expired.
	sess.Status = SessionStatusEnded
	if got := sess.EffectiveStatus(now.Add(2 * time.Hour)); got != SessionStatusEnded {
		t.Errorf("ended status = %s, want ended", got)
	}
}

func TestKnownSessionStatus(t *testing.T) {
	for _, s := range []SessionStatus{SessionStatusDraft, SessionStatusLive, SessionStatusEnded} {
		if !KnownSessionStatus(s) {
			t.Errorf("KnownSessionStatus(%s) = false", s)
		}
	}
	// Expired is derived, callers cannot set it.
	if KnownSessionStatus(SessionStatusExpired) {
		t.Error("KnownSessionStatus(expired) = true")
	}
	if KnownSessionStatus("archived") {
		t.Error("KnownSessionStatus(archived) = true")
	}
}

func TestNormalizeCode(t *testing.T) {
	if got := NormalizeCode("  abc123 "); got != "ABC123" {
		t.Errorf("NormalizeCode = %q, want ABC123", got)
	}
}

func TestJoinFormField(t *testing.T) {
	schema := JoinFormSchema{Fields: []JoinFormField{{ID: "team"}, {ID: "site"}}}
	if f := schema.Field("site"); f == nil || f.ID != "site" {
		t.Errorf("Field(site) = %+v", f)
	}
	if f := schema.Field("ghost"); f != nil {
		t.Errorf("Field(ghost) = %+v, want nil", f)
	}
}
