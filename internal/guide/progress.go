package guide

// Progress is the position within the step sequence.
type Progress struct {
	Index   int
	Count   int
	Percent float64
}

// Progress returns the current position. Percent counts the current step as
// reached, so the first step of six is about 16.7.
func (s *Session) Progress() Progress {
	p := Progress{Index: s.index, Count: s.stepCount}
	if s.stepCount > 0 {
		p.Percent = float64(s.index+1) / float64(s.stepCount) * 100
	}
	return p
}

// IsFirst reports whether the current step is the first.
func (p Progress) IsFirst() bool { return p.Index == 0 }

// IsLast reports whether the current step is the last.
func (p Progress) IsLast() bool { return p.Index == p.Count-1 }
