package stats

import "sort"

// WeakChar pairs a target character with its accumulated error count.
type WeakChar struct {
	Char   string
	Errors int
}

// TopWeakChars returns the n characters with the most recorded errors,
// ties broken by character for stable output.
func TopWeakChars(weak map[string]int, n int) []WeakChar {
	if n <= 0 || len(weak) == 0 {
		return nil
	}
	items := make([]WeakChar, 0, len(weak))
	for ch, errs := range weak {
		items = append(items, WeakChar{Char: ch, Errors: errs})
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].Errors == items[j].Errors {
			return items[i].Char < items[j].Char
		}
		return items[i].Errors > items[j].Errors
	})
	if n > len(items) {
		n = len(items)
	}
	return items[:n]
}
