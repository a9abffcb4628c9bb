package service

import (
	"strings"
	"testing"
	"time"

	"github.com/techwayfit/twf-pulse-sub000/internal/errs"
	"github.com/techwayfit/twf-pulse-sub000/internal/model"
)

func newParticipantService(st *stubStore) *ParticipantService {
	svc := NewParticipantService(st, nopLogger())
	svc.now = func() time.Time { return testNow }
	return svc
}

func TestJoin(t *testing.T) {
	st := newStubStore()
	seedSession(st, "s1", "CODE01")
	svc := newParticipantService(st)

	p, err := svc.Join("s1", model.JoinSessionRequest{
		DisplayName: "  Sam  ",
		Dimensions:  map[string]string{"department": "Engineering"},
	})
	if err != nil {
		t.Fatalf("Join: %v", err)
	}
	if p.DisplayName != "Sam" {
		t.Errorf("display name = %q, want trimmed %q", p.DisplayName, "Sam")
	}
	if !p.JoinedAt.Equal(testNow) {
		t.Errorf("joinedAt = %v, want %v", p.JoinedAt, testNow)
	}
	got, _ := st.GetParticipant(p.ID)
	if got == nil || got.Dimensions["department"] != "Engineering" {
		t.Errorf("stored participant = %+v", got)
	}
}

func TestJoinUnknownSession(t *testing.T) {
	svc := newParticipantService(newStubStore())
	if _, err := svc.Join("nope", model.JoinSessionRequest{DisplayName: "Sam"}); !errs.IsNotFound(err) {
		t.Fatalf("err = %v, want not found", err)
	}
}

func TestJoinAnonymousPolicy(t *testing.T) {
	st := newStubStore()
	sess := seedSession(st, "s1", "CODE01")
	sess.Settings.AllowAnonymous = false
	svc := newParticipantService(st)

	if _, err := svc.Join("s1", model.JoinSessionRequest{IsAnonymous: true}); !errs.IsConflict(err) {
		t.Fatalf("err = %v, want conflict", err)
	}

	sess.Settings.AllowAnonymous = true
	p, err := svc.Join("s1", model.JoinSessionRequest{IsAnonymous: true})
	if err != nil {
		t.Fatalf("anonymous join: %v", err)
	}
	if !p.IsAnonymous {
		t.Error("participant not marked anonymous")
	}
}

func TestJoinDimensionValidation(t *testing.T) {
	st := newStubStore()
	sess := seedSession(st, "s1", "CODE01")
	sess.JoinForm = model.JoinFormSchema{
		MaxFields: 2,
		Fields: []model.JoinFormField{
			{ID: "team", Label: "Team", Type: "text", Required: true},
			{ID: "site", Label: "Site", Type: "text"},
		},
	}
	svc := newParticipantService(st)

	cases := []struct {
		name string
		dims map[string]string
	}{
		{"unknown field", map[string]string{"team": "a", "color": "blue"}},
		{"missing required", map[string]string{"site": "remote"}},
		{"blank required", map[string]string{"team": "   "}},
		{"too many", map[string]string{"team": "a", "site": "b", "x": "c"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Join("s1", model.JoinSessionRequest{DisplayName: "Sam", Dimensions: tc.dims})
			if !errs.IsValidation(err) {
				t.Fatalf("err = %v, want validation", err)
			}
		})
	}

	if _, err := svc.Join("s1", model.JoinSessionRequest{
		DisplayName: "Sam",
		Dimensions:  map[string]string{"team": "platform", "site": "remote"},
	}); err != nil {
		t.Fatalf("valid dimensions rejected: %v", err)
	}
}

func TestJoinDisplayNameTooLong(t *testing.T) {
	st := newStubStore()
	seedSession(st, "s1", "CODE01")
	svc := newParticipantService(st)
	_, err := svc.Join("s1", model.JoinSessionRequest{DisplayName: strings.Repeat("n", 121)})
	if !errs.IsValidation(err) {
		t.Fatalf("err = %v, want validation", err)
	}
	// 120 multibyte runes exceed 120 bytes but not the character limit.
	if _, err := svc.Join("s1", model.JoinSessionRequest{DisplayName: strings.Repeat("ß", 120)}); err != nil {
		t.Fatalf("120-rune name rejected: %v", err)
	}
}

func TestGetBySession(t *testing.T) {
	st := newStubStore()
	seedSession(st, "s1", "CODE01")
	seedParticipant(st, "p1", "s1", nil)
	seedParticipant(st, "p2", "s1", map[string]string{"department": "Sales"})
	seedParticipant(st, "px", "other", nil)
	svc := newParticipantService(st)

	got, err := svc.GetBySession("s1")
	if err != nil {
		t.Fatalf("GetBySession: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d participants, want 2", len(got))
	}
	if _, err := svc.GetBySession("missing"); !errs.IsNotFound(err) {
		t.Fatalf("err = %v, want not found", err)
	}
}
