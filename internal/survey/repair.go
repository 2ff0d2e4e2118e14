package survey

import "strings"

// RepairTokenColumn copies tokens that respondents entered into the trailing
// unnamed column back into the token field. A cell qualifies when the token
// field is blank and the raw overflow value is exactly TokenLength characters;
// the copied value is trimmed, the overflow cell is left as-is.
//
// Runs once, before deduplication, so dedup and validation see the corrected
// token. Without a detected overflow column this is a no-op.
func RepairTokenColumn(st *State) int {
	if !st.Table.HasOverflowColumn() {
		return 0
	}

	repaired := 0
	for i := st.SkipLeadingRows; i < len(st.Table.Records); i++ {
		rec := st.Table.Records[i]
		if strings.TrimSpace(st.Table.Token(rec)) != "" {
			continue
		}
		overflow := st.Table.Overflow(rec)
		if len(overflow) != st.TokenLength {
			continue
		}
		st.Table.SetToken(i, strings.TrimSpace(overflow))
		repaired++
	}

	st.Repaired = repaired
	return repaired
}
