package differ

import "github.com/alansmodic/edit-ledger/internal/models"

// editScript aligns two token sequences through a longest common
// subsequence table and returns one operation per token, in order.
// On ties the backtrack prefers an insertion over a deletion.
func editScript(from, to []string) []models.ContentDiff {
	m, n := len(from), len(to)
	width := n + 1
	table := make([]int32, (m+1)*width)

	for i := 1; i <= m; i++ {
		row := i * width
		prev := (i - 1) * width
		for j := 1; j <= n; j++ {
			switch {
			case from[i-1] == to[j-1]:
				table[row+j] = table[prev+j-1] + 1
			case table[prev+j] >= table[row+j-1]:
				table[row+j] = table[prev+j]
			default:
				table[row+j] = table[row+j-1]
			}
		}
	}

	ops := make([]models.ContentDiff, 0, m+n)
	i, j := m, n
	for i > 0 || j > 0 {
		switch {
		case i > 0 && j > 0 && from[i-1] == to[j-1]:
			ops = append(ops, models.ContentDiff{Operation: models.DiffEqual, Text: from[i-1]})
			i--
			j--
		case j > 0 && (i == 0 || table[i*width+j-1] >= table[(i-1)*width+j]):
			ops = append(ops, models.ContentDiff{Operation: models.DiffInsert, Text: to[j-1]})
			j--
		default:
			ops = append(ops, models.ContentDiff{Operation: models.DiffDelete, Text: from[i-1]})
			i--
		}
	}

	for l, r := 0, len(ops)-1; l < r; l, r = l+1, r-1 {
		ops[l], ops[r] = ops[r], ops[l]
	}
	return ops
}

// TableCells is the number of cells the alignment table needs for m and n tokens.
func TableCells(m, n int) int64 {
	return int64(m+1) * int64(n+1)
}

// TableBytes estimates the memory held by the alignment table.
func TableBytes(m, n int) uint64 {
	return uint64(TableCells(m, n)) * 4
}
