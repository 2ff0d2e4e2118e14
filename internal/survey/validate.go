package survey

import "strings"

// ValidateTokens checks every remaining record after the leading artifact
// rows: the token is trimmed and must be a member of the known-token set. A
// record fails when the trimmed token is empty or unknown. The empty check is
// explicit and first; the token file may contain an empty line, and an empty
// token must never pass through set membership.
//
// Delete-mode collects failing positions during the scan and removes them
// once the scan completes. List-mode appends failing identifiers to the
// deletion list and leaves the table untouched.
func ValidateTokens(st *State) int {
	log := st.logger()
	remove := make(map[int]bool)
	invalid := 0

	for i := st.SkipLeadingRows; i < len(st.Table.Records); i++ {
		rec := st.Table.Records[i]
		tok := strings.TrimSpace(st.Table.Token(rec))

		if tok == "" || !st.Tokens.Contains(tok) {
			invalid++
			if st.Mode == ModeDelete {
				log.Info("invalid token", "row", rec.RowIndex)
				log.Debug("record deleted", "row", rec.RowIndex)
				remove[i] = true
			} else {
				if tok != "" {
					log.Info("invalid token", "row", rec.RowIndex)
				}
				st.Deletions.Append(st.Table.ID(rec))
			}
			continue
		}

		log.Debug("token ok", "row", rec.RowIndex)
	}

	if st.Mode == ModeDelete {
		st.Table.Remove(remove)
	}

	st.Invalid = invalid
	return invalid
}
