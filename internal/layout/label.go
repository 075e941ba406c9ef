package layout

import (
	"fmt"
	"sort"
	"strings"
)

// RowLabel converts a zero-based row index to its letter form: A..Z, then
// AA, AB and so on. Indexes beyond Z produce multi-letter labels whose first
// character no longer addresses the row uniquely; that matches the unbounded
// row generation of the designer and is accepted.
func RowLabel(i int) string {
	if i < 0 {
		return ""
	}
	var res []rune
	for {
		res = append(res, rune('A'+i%26))
		i = i/26 - 1
		if i < 0 {
			break
		}
	}
	for j, k := 0, len(res)-1; j < k; j, k = j+1, k-1 {
		res[j], res[k] = res[k], res[j]
	}
	return string(res)
}

// RowIndex converts a row letter string like "A" or "AA" back to its
// zero-based index. Returns false for empty or non A-Z input.
func RowIndex(label string) (int, bool) {
	s := strings.ToUpper(strings.TrimSpace(label))
	if s == "" {
		return -1, false
	}
	n := 0
	for i := 0; i < len(s); i++ {
		ch := s[i]
		if ch < 'A' || ch > 'Z' {
			return -1, false
		}
		n = n*26 + int(ch-'A'+1)
	}
	return n - 1, true
}

// SortRowLetters orders row letters by their row index, falling back to a
// lexical comparison for letters that do not parse.
func SortRowLetters(letters []string) {
	sort.Slice(letters, func(i, j int) bool {
		ii, okI := RowIndex(letters[i])
		jj, okJ := RowIndex(letters[j])
		if !okI || !okJ {
			return letters[i] < letters[j]
		}
		return ii < jj
	})
}

// nextRowLetter computes the row letter one past the maximum single-letter
// row seen in the seats, starting at "A" for an empty collection.
func nextRowLetter(seats []Seat) string {
	maxIdx := -1
	for _, s := range seats {
		if idx, ok := RowIndex(s.Row()); ok && idx > maxIdx {
			maxIdx = idx
		}
	}
	return RowLabel(maxIdx + 1)
}

// nextTableLabel numbers tables T1, T2, ... from the current table count.
// Like seat labels, uniqueness is not guaranteed after deletions.
func nextTableLabel(tables []Table) string {
	return fmt.Sprintf("T%d", len(tables)+1)
}
