package order

import "fmt"

// FormatOrderNumber renders the human-readable order number from the
// creation year and a monotonic sequence value, e.g. ORD-2026-042.
// The sequence is zero-padded to three digits and grows beyond that
// as needed.
func FormatOrderNumber(year int, seq int64) string {
	return fmt.Sprintf("ORD-%d-%03d", year, seq)
}
