package problem

import (
	"fmt"
	"strings"
)

// Difficulty is the published difficulty of a coding problem.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "Easy"
	DifficultyMedium Difficulty = "Medium"
	DifficultyHard   Difficulty = "Hard"
)

// Difficulties lists the valid difficulties in display order.
var Difficulties = []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard}

// ParseDifficulty parses a difficulty name, ignoring case and surrounding space.
func ParseDifficulty(s string) (Difficulty, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "easy":
		return DifficultyEasy, nil
	case "medium":
		return DifficultyMedium, nil
	case "hard":
		return DifficultyHard, nil
	}
	return "", fmt.Errorf("invalid difficulty %q: must be Easy, Medium or Hard", s)
}

// Next cycles to the following difficulty, wrapping from Hard to Easy.
func (d Difficulty) Next() Difficulty {
	switch d {
	case DifficultyEasy:
		return DifficultyMedium
	case DifficultyMedium:
		return DifficultyHard
	}
	return DifficultyEasy
}

// ComplexityHint returns the time complexity range usually expected at this difficulty.
func (d Difficulty) ComplexityHint() string {
	switch d {
	case DifficultyEasy:
		return "O(n) or O(n log n)"
	case DifficultyMedium:
		return "O(n) to O(n²)"
	case DifficultyHard:
		return "O(n log n) to O(n²)"
	}
	return "Variable"
}

// Problem is a coding exercise supplied by the learner. It is never mutated
// once handed to a guide session.
type Problem struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Difficulty  Difficulty `json:"difficulty"`
}

// New builds a Problem with trimmed fields and validates it.
func New(title, description string, difficulty Difficulty) (Problem, error) {
	p := Problem{
		Title:       strings.TrimSpace(title),
		Description: strings.TrimSpace(description),
		Difficulty:  difficulty,
	}
	if err := p.Validate(); err != nil {
		return Problem{}, err
	}
	return p, nil
}

// ValidationError reports a problem field that failed validation.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid problem %s: %s", e.Field, e.Reason)
}

// Validate checks that the problem has a title, description and known difficulty.
func (p Problem) Validate() error {
	if strings.TrimSpace(p.Title) == "" {
		return &ValidationError{Field: "title", Reason: "must not be empty"}
	}
	if strings.TrimSpace(p.Description) == "" {
		return &ValidationError{Field: "description", Reason: "must not be empty"}
	}
	if _, err := ParseDifficulty(string(p.Difficulty)); err != nil {
		return &ValidationError{Field: "difficulty", Reason: err.Error()}
	}
	return nil
}

// Samples are the built-in practice problems offered when the catalog is empty.
func Samples() []Problem {
	return []Problem{
		{
			Title:       "Two Sum",
			Description: "Given an array of integers nums and an integer target, return indices of the two numbers such that they add up to target.",
			Difficulty:  DifficultyEasy,
		},
		{
			Title:       "Add Two Numbers",
			Description: "You are given two non-empty linked lists representing two non-negative integers stored in reverse order.",
			Difficulty:  DifficultyMedium,
		},
		{
			Title:       "Median of Two Sorted Arrays",
			Description: "Given two sorted arrays nums1 and nums2 of size m and n respectively, return the median of the two arrays.",
			Difficulty:  DifficultyHard,
		},
	}
}
