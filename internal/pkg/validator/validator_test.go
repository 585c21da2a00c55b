package validator

import (
	"errors"
	"testing"
)

func TestIsEmpty(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"", true},
		{"   ", true},
		{"\t\n", true},
		{"abc", false},
		{" abc ", false},
	}
	for _, c := range cases {
		got := IsEmpty(c.input)
		if got != c.want {
			t.Errorf("IsEmpty(%q) = %v, want %v", c.input, got, c.want)
		}
	}
}

func TestIsNumeric(t *testing.T) {
	valid := []string{"0", "2024", "07"}
	invalid := []string{"", "-1", "7a", " 7", "1.5"}
	for _, s := range valid {
		if !IsNumeric(s) {
			t.Errorf("IsNumeric(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		if IsNumeric(s) {
			t.Errorf("IsNumeric(%q) = true, want false", s)
		}
	}
}

func TestAtoi(t *testing.T) {
	cases := []struct {
		input  string
		want   int
		wantOK bool
	}{
		{"2024", 2024, true},
		{"07", 7, true},
		{" 7 ", 7, true},
		{"", 0, false},
		{"-3", 0, false},
		{"seven", 0, false},
	}
	for _, c := range cases {
		got, ok := Atoi(c.input)
		if got != c.want || ok != c.wantOK {
			t.Errorf("Atoi(%q) = (%d, %v), want (%d, %v)", c.input, got, ok, c.want, c.wantOK)
		}
	}
}

func TestValidationErrors(t *testing.T) {
	var errs ValidationErrors
	if errs.Err() != nil {
		t.Fatal("empty ValidationErrors.Err() should be nil")
	}

	errs.Required("uid", "")
	errs.Required("task", "  ")
	errs.Required("date", "2024-07-15")

	err := errs.Err()
	if err == nil {
		t.Fatal("expected error")
	}

	var target ValidationErrors
	if !errors.As(err, &target) {
		t.Fatalf("errors.As failed for %T", err)
	}
	if len(target) != 2 {
		t.Fatalf("len = %d, want 2", len(target))
	}

	m := target.ToMap()
	if m["uid"] != "uid is required" || m["task"] != "task is required" {
		t.Errorf("ToMap() = %v", m)
	}
	if _, ok := m["date"]; ok {
		t.Error("date should not be reported")
	}
	if got, want := err.Error(), "uid: uid is required; task: task is required"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}
