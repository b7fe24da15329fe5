package spiralkeys

import "strings"

// statusPrefix heads the human-readable active-key summary.
const statusPrefix = "Active Notes: "

// StatusLine is the order-independent projection of the active set into the
// summary text shown on the plot. It subscribes to the board's push interface
// and caches the formatted line, so rendering it each frame costs nothing
// when the set has not changed.
type StatusLine struct {
	text string
	b    strings.Builder
}

// NewStatusLine attaches a status line to the board and returns it primed
// with the current active set.
func NewStatusLine(board *Board) *StatusLine {
	s := &StatusLine{}
	board.OnActiveSetChanged(s.update)
	return s
}

// Text returns the cached summary, e.g. "Active Notes: C3, E3" or
// "Active Notes: None".
func (s *StatusLine) Text() string {
	return s.text
}

func (s *StatusLine) update(names []string) {
	if len(names) == 0 {
		s.text = statusPrefix + "None"
		return
	}
	s.b.Reset()
	s.b.WriteString(statusPrefix)
	for i, name := range names {
		if i > 0 {
			s.b.WriteString(", ")
		}
		s.b.WriteString(name)
	}
	s.text = s.b.String()
}
