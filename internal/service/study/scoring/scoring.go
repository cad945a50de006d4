package scoring

import "github.com/heartmarshall/myenglish-study/internal/domain"

// DefaultTable is the base point value for quality 0..7. The four-button
// mapping (1, 4, 5, 7) yields 1, 5, 10 and 15 points.
var DefaultTable = [8]int{1, 1, 3, 5, 5, 10, 12, 15}

// StreakContext describes the answer's surroundings. The table scorer does
// not read it: points depend on the quality alone, and no streak bonus is
// awarded anywhere.
type StreakContext struct {
	CorrectStreak int
	SessionID     string
	FirstExposure bool
}

// Scorer maps a quality rating to its base points.
type Scorer struct {
	table [8]int
}

// NewScorer creates a Scorer from an 8-entry table. The table must be
// non-decreasing; config validation enforces that.
func NewScorer(table [8]int) *Scorer {
	return &Scorer{table: table}
}

// Points returns the base points for one answer. Quality is clamped.
func (s *Scorer) Points(q domain.QualityRating, _ StreakContext) int {
	return s.table[q.Clamp()]
}

// Table returns a copy of the lookup table.
func (s *Scorer) Table() [8]int { return s.table }
