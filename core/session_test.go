package core

import "testing"

func TestSessionID_Composite(t *testing.T) {
	if got := SessionID("tg", 12345); got != "tg_12345" {
		t.Fatalf("unexpected session id: %s", got)
	}
	if got := SessionID("vk", 9); got != "vk_9" {
		t.Fatalf("unexpected session id: %s", got)
	}
}

func TestParseState_UnknownDefaultsToStart(t *testing.T) {
	cases := map[string]State{
		"QUESTION": StateQuestion,
		"ANSWER":   StateAnswer,
		"START":    StateStart,
		"":         StateStart,
		"bogus":    StateStart,
	}
	for raw, want := range cases {
		if got := ParseState(raw); got != want {
			t.Errorf("ParseState(%q) = %s, want %s", raw, got, want)
		}
	}
}

func TestNewSession_Zeroed(t *testing.T) {
	s := NewSession("tg_1")
	if s.State != StateStart || s.Score != 0 || s.AnsweredCount != 0 {
		t.Fatalf("fresh session not zeroed: %+v", s)
	}
	if err := s.Validate(); err != nil {
		t.Fatalf("fresh session invalid: %v", err)
	}
}

func TestSession_Validate(t *testing.T) {
	s := NewSession("tg_1")

	s.Score = 2
	s.AnsweredCount = 1
	if err := s.Validate(); err == nil {
		t.Error("score above answered count must be invalid")
	}

	s.Score = 1
	s.AnsweredCount = 1
	s.CurrentAnswer = "4"
	if err := s.Validate(); err == nil {
		t.Error("pending answer outside ANSWER state must be invalid")
	}

	s.State = StateAnswer
	if err := s.Validate(); err != nil {
		t.Errorf("valid ANSWER session rejected: %v", err)
	}

	s.CurrentAnswer = ""
	if err := s.Validate(); err == nil {
		t.Error("ANSWER state without pending answer must be invalid")
	}
}

func TestSession_CloneIsIndependent(t *testing.T) {
	s := NewSession("tg_1")
	clone := s.Clone()
	if clone == s {
		t.Fatal("Clone should be a different pointer")
	}
	clone.Score = 5
	if s.Score != 0 {
		t.Error("original should not see clone's mutation")
	}
}
