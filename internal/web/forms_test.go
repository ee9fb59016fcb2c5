package web

import (
	"testing"
	"time"
)

func TestSafeRedirect(t *testing.T) {
	t.Parallel()

	for in, want := range map[string]string{
		"":                     "/",
		"/create":              "/create",
		"/?page=2":             "/?page=2",
		"//evil.example":       "/",
		`/\evil.example`:       "/",
		"https://evil.example": "/",
		"relative":             "/",
	} {
		if got := safeRedirect(in); got != want {
			t.Errorf("safeRedirect(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestParseDueDate(t *testing.T) {
	t.Parallel()

	want := time.Date(2030, 5, 1, 9, 30, 0, 0, time.Local)
	for _, raw := range []string{"2030-05-01T09:30", "2030-05-01 09:30", "2030-05-01 09:30:00"} {
		got, err := parseDueDate(raw)
		if err != nil {
			t.Fatalf("parseDueDate(%q): %v", raw, err)
		}
		if !got.Equal(want) {
			t.Fatalf("parseDueDate(%q) = %v, want %v", raw, got, want)
		}
	}

	got, err := parseDueDate("")
	if err != nil || got != nil {
		t.Fatalf("empty due date = %v, %v; want nil, nil", got, err)
	}
	if _, err := parseDueDate("next week"); err == nil {
		t.Fatal("expected error for free text")
	}
}

func TestParseChatID(t *testing.T) {
	t.Parallel()

	id, err := parseChatID(" -100123 ")
	if err != nil || id == nil || *id != -100123 {
		t.Fatalf("parseChatID = %v, %v", id, err)
	}
	if id, err := parseChatID(""); err != nil || id != nil {
		t.Fatalf("empty chat id = %v, %v; want nil, nil", id, err)
	}
	if _, err := parseChatID("12ab"); err == nil {
		t.Fatal("expected error for non-numeric chat id")
	}
}

func TestValidatorUsesFormNames(t *testing.T) {
	t.Parallel()

	errs := FormErrors{}
	err := newValidator().Struct(registerForm{Username: "bad name!", Password1: "longenough", Password2: "different"})
	if err == nil || !collectErrors(err, errs) {
		t.Fatalf("expected validation errors, got %v", err)
	}
	if !errs.Has("username") || !errs.Has("password2") {
		t.Fatalf("errors keyed by form names expected, got %v", errs)
	}
	if errs.Has("password1") {
		t.Fatalf("password1 is valid, got %v", errs["password1"])
	}
}
