package survey

// Deduplicate groups records by exact token cell value and keeps only the
// first occurrence per token; every later record in a group is a duplicate.
// There is no secondary sort key: arrival order decides, the date column is
// deliberately ignored.
//
// Delete-mode removes duplicates from the table (applied after the scan
// completes). List-mode computes a mask over the table without mutating it
// and appends the masked records' identifiers to the deletion list in table
// order. Records with an empty token collapse into one duplicate group; this
// is intentional and the validator accounts for the overlap.
func Deduplicate(st *State) int {
	seen := make(map[string]bool, len(st.Table.Records))
	mask := make([]bool, len(st.Table.Records))
	count := 0

	for i, rec := range st.Table.Records {
		tok := st.Table.Token(rec)
		if seen[tok] {
			mask[i] = true
			count++
			continue
		}
		seen[tok] = true
	}

	if st.Mode == ModeList {
		st.DuplicateMask = mask
		for i, rec := range st.Table.Records {
			if mask[i] {
				st.Deletions.Append(st.Table.ID(rec))
			}
		}
	} else {
		remove := make(map[int]bool, count)
		for i, dup := range mask {
			if dup {
				remove[i] = true
			}
		}
		st.Table.Remove(remove)
	}

	st.Duplicates = count
	return count
}
