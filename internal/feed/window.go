package feed

// WindowIndexes returns the feed indexes inside the preload window
// around center: every index whose wrap-aware distance from center is
// at most r. When the feed is short enough that the window covers it,
// every index is returned once.
func WindowIndexes(f Feed, center, r int) []int {
	n := f.Len()
	if n == 0 {
		return nil
	}
	if 2*r+1 >= n {
		out := make([]int, n)
		for i := range out {
			out[i] = i
		}
		return out
	}
	out := make([]int, 0, 2*r+1)
	for d := -r; d <= r; d++ {
		out = append(out, f.Wrap(center+d))
	}
	return out
}

// WindowIDs returns the post ids inside the preload window.
func WindowIDs(f Feed, center, r int) []string {
	idx := WindowIndexes(f, center, r)
	out := make([]string, len(idx))
	for i, j := range idx {
		out[i] = f.At(j).ID
	}
	return out
}

// InWindow reports whether index i falls inside the window around center.
func InWindow(f Feed, center, r, i int) bool {
	if f.Len() == 0 {
		return false
	}
	return f.Distance(center, i) <= r
}
