package core

// CheckTwins fails with RestoreTwins when two or more items share the same
// original path. The returned error carries a copy of the whole batch so
// the caller can decide which twin to restore.
func CheckTwins(items []Item) error {
	seen := make(map[string]struct{}, len(items))
	for _, item := range items {
		path := item.OriginalPath()
		if _, ok := seen[path]; ok {
			return KindOnly(RestoreTwins{
				Path:  path,
				Items: cloneItems(items),
			})
		}
		seen[path] = struct{}{}
	}
	return nil
}

// Remaining returns a copy of items starting at index i. It is used to
// build RestoreCollision errors.
func Remaining(items []Item, i int) []Item {
	if i >= len(items) {
		return []Item{}
	}
	return cloneItems(items[i:])
}
