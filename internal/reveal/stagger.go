package reveal

import "time"

// DefaultStaggerStep is the per-index entrance delay used for card grids.
const DefaultStaggerStep = 150 * time.Millisecond

// Stagger returns the entrance delay for the index-th sibling.
func Stagger(index int, step time.Duration) time.Duration {
	if index < 0 || step < 0 {
		return 0
	}
	return time.Duration(index) * step
}
