package utils // package utils provides small helpers shared across packages

// NextFreeID returns the smallest positive integer that does not appear in
// used.  Ids of deleted rows are handed out again, so the result is not
// monotonic.  used may be in any order and may contain duplicates.
func NextFreeID(used []uint64) uint64 {
	taken := make(map[uint64]struct{}, len(used))
	for _, id := range used {
		taken[id] = struct{}{}
	}
	next := uint64(1)
	for {
		if _, ok := taken[next]; !ok {
			return next
		}
		next++
	}
}
