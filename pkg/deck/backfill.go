package deck

// nextBackfillIndex returns the index into the candidate list of the card to
// inject behind the visible window after a swipe, given the swiped card's
// index in that list and the list's length after any removal. The list is
// presented back to front, so the cards behind the window sit at decreasing
// indices; once the front is reached the carousel wraps to the end, cycling
// passed-over cards around again. Returns -1 when the list is empty.
func nextBackfillIndex(swipedIndex, remaining int) int {
	switch {
	case remaining > 2:
		switch swipedIndex {
		case 1:
			// second-from-front swiped, the front card is already in the
			// window: wrap to the back
			return remaining - 1
		case 0:
			return remaining - 2
		default:
			return swipedIndex - 2
		}
	case remaining == 2:
		if swipedIndex == 1 {
			return 1
		}
		return 0
	case remaining == 1:
		return 0
	default:
		return -1
	}
}
