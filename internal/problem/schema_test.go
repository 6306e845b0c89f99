package problem

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeValid(t *testing.T) {
	raw := []byte(`{"title":" Two Sum ","description":"add up to target","difficulty":"Easy"}`)

	p, err := Decode(raw)
	require.NoError(t, err)
	assert.Equal(t, "Two Sum", p.Title)
	assert.Equal(t, DifficultyEasy, p.Difficulty)
}

func TestDecodeRejects(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"not json", `{title:`},
		{"missing difficulty", `{"title":"a","description":"b"}`},
		{"unknown difficulty", `{"title":"a","description":"b","difficulty":"Insane"}`},
		{"lowercase difficulty", `{"title":"a","description":"b","difficulty":"easy"}`},
		{"empty title", `{"title":"","description":"b","difficulty":"Hard"}`},
		{"extra field", `{"title":"a","description":"b","difficulty":"Hard","url":"x"}`},
		{"whitespace title", `{"title":"   ","description":"b","difficulty":"Hard"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode([]byte(tt.raw))
			assert.Error(t, err)
		})
	}
}
