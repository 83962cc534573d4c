package discount

import "github.com/bits-and-blooms/bloom/v3"

// Screen is a bloom-filter negative cache over the known discount code
// set. A code the screen rejects is definitely unknown, so lookups can
// skip the database; a code the screen accepts still needs a repository
// lookup because of false positives.
//
// Add may not be called concurrently with MayContain. The screen is
// populated once at startup and treated as read-only afterwards.
type Screen struct {
	filter *bloom.BloomFilter
}

// NewScreen sizes a screen for the expected number of codes and the
// target false positive rate.
func NewScreen(capacity uint, fpr float64) *Screen {
	return &Screen{filter: bloom.NewWithEstimates(capacity, fpr)}
}

// Add records a known code.
func (s *Screen) Add(code string) {
	s.filter.AddString(code)
}

// MayContain reports whether the code could be in the known set.
func (s *Screen) MayContain(code string) bool {
	return s.filter.TestString(code)
}
