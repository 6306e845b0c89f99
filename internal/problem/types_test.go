package problem

import (
	"errors"
	"testing"
)

func TestParseDifficulty(t *testing.T) {
	tests := []struct {
		in      string
		want    Difficulty
		wantErr bool
	}{
		{"Easy", DifficultyEasy, false},
		{"medium", DifficultyMedium, false},
		{"  HARD ", DifficultyHard, false},
		{"extreme", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		got, err := ParseDifficulty(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseDifficulty(%q) expected error", tt.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseDifficulty(%q) unexpected error: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseDifficulty(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestDifficultyNextCycles(t *testing.T) {
	d := DifficultyEasy
	seen := []Difficulty{d}
	for i := 0; i < 3; i++ {
		d = d.Next()
		seen = append(seen, d)
	}
	want := []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard, DifficultyEasy}
	for i := range want {
		if seen[i] != want[i] {
			t.Errorf("cycle[%d] = %q, want %q", i, seen[i], want[i])
		}
	}
}

func TestComplexityHint(t *testing.T) {
	if got := DifficultyEasy.ComplexityHint(); got != "O(n) or O(n log n)" {
		t.Errorf("Easy hint = %q", got)
	}
	if got := Difficulty("Unknown").ComplexityHint(); got != "Variable" {
		t.Errorf("unknown hint = %q, want Variable", got)
	}
}

func TestNewTrimsAndValidates(t *testing.T) {
	p, err := New("  Two Sum ", "\nfind two numbers\n", DifficultyEasy)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if p.Title != "Two Sum" {
		t.Errorf("Title = %q, want trimmed", p.Title)
	}
	if p.Description != "find two numbers" {
		t.Errorf("Description = %q, want trimmed", p.Description)
	}
}

func TestValidateRejectsMissingFields(t *testing.T) {
	tests := []struct {
		name  string
		p     Problem
		field string
	}{
		{"no title", Problem{Description: "d", Difficulty: DifficultyEasy}, "title"},
		{"blank description", Problem{Title: "t", Description: "   ", Difficulty: DifficultyEasy}, "description"},
		{"bad difficulty", Problem{Title: "t", Description: "d", Difficulty: "Impossible"}, "difficulty"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.p.Validate()
			var vErr *ValidationError
			if !errors.As(err, &vErr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if vErr.Field != tt.field {
				t.Errorf("Field = %q, want %q", vErr.Field, tt.field)
			}
		})
	}
}

func TestSamplesAreValid(t *testing.T) {
	samples := Samples()
	if len(samples) != 3 {
		t.Fatalf("len(Samples) = %d, want 3", len(samples))
	}
	for _, s := range samples {
		if err := s.Validate(); err != nil {
			t.Errorf("sample %q invalid: %v", s.Title, err)
		}
	}
}
