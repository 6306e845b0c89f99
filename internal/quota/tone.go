package quota

// Tone classifies a remaining count for display.
type Tone int

const (
	ToneEmpty  Tone = iota // no checks left
	ToneLow                // one or two left
	TonePlenty             // more than two left
)

// ToneFor returns the display tone for remaining checks.
func ToneFor(remaining int) Tone {
	switch {
	case remaining > 2:
		return TonePlenty
	case remaining > 0:
		return ToneLow
	}
	return ToneEmpty
}
