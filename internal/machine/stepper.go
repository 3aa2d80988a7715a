// Package machine holds the game counter logic: walking through a list of
// accounts one at a time and bumping the level every time the walk wraps
// around. The functions are pure so the same rules apply on the server and
// in tests, independent of where the state is stored.
package machine

// Normalize clamps a stored (index, level) pair against the current list
// length. The list may have shrunk since the state was written, so an
// out-of-range index folds back to 0. Level never drops below 1.
func Normalize(index, level, listLen int) (int, int) {
	if level < 1 {
		level = 1
	}
	if listLen <= 0 || index < 0 || index >= listLen {
		index = 0
	}
	return index, level
}

// Advance steps the counter to the next position. Stepping past the last
// element wraps the index to 0 and increments the level. An empty list resets
// the state to (0, level).
func Advance(index, level, listLen int) (int, int) {
	index, level = Normalize(index, level, listLen)
	if listLen <= 0 {
		return 0, level
	}

	next := index + 1
	if next >= listLen {
		return 0, level + 1
	}
	return next, level
}
