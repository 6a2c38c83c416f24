package service

import (
	"strings"

	"contracheque-parser/utils"
)

// ColumnMap maps semantic column roles to indices into a table's rows.
// -1 means the role is absent from that table.
type ColumnMap struct {
	Code        int
	Description int
	Reference   int
	Earning     int
	Deduction   int
	Net         int
}

func newColumnMap() ColumnMap {
	return ColumnMap{Code: -1, Description: -1, Reference: -1, Earning: -1, Deduction: -1, Net: -1}
}

// headerKeywords marks a row as the column-label row. Matching is
// accent-insensitive; scanned documents lose accents unpredictably.
var headerKeywords = []string{"CODIGO", "RECEITAS", "DESPESAS"}

// NormalizeTable trims every cell and drops rows that are entirely blank.
func NormalizeTable(t Table) Table {
	cleaned := make(Table, 0, len(t))
	for _, row := range t {
		out := make([]string, len(row))
		blank := true
		for i, cell := range row {
			out[i] = strings.TrimSpace(cell)
			if out[i] != "" {
				blank = false
			}
		}
		if !blank {
			cleaned = append(cleaned, out)
		}
	}
	return cleaned
}

// ResolveColumns locates the header row and resolves which column index
// carries which role. Tables without a header row are not financial and
// are skipped by the caller (ok=false); that is expected, not an error.
func ResolveColumns(t Table) (cols ColumnMap, headerIdx int, ok bool) {
	headerIdx = -1
	for i, row := range t {
		for _, cell := range row {
			folded := utils.Fold(utils.LastLine(cell))
			for _, kw := range headerKeywords {
				if strings.Contains(folded, kw) {
					headerIdx = i
					break
				}
			}
			if headerIdx >= 0 {
				break
			}
		}
		if headerIdx >= 0 {
			break
		}
	}
	if headerIdx < 0 {
		return ColumnMap{}, -1, false
	}

	header := t[headerIdx]
	cols = newColumnMap()
	for i, cell := range header {
		folded := utils.Fold(utils.LastLine(cell))
		switch {
		case strings.Contains(folded, "CODIGO"):
			cols.Code = i
		case strings.Contains(folded, "DESCRI") || strings.Contains(folded, "DISCRIMIN"):
			cols.Description = i
		case strings.Contains(folded, "RECEITAS"):
			cols.Earning = i
		case strings.Contains(folded, "DESPESAS") || strings.Contains(folded, "DESCONTO"):
			cols.Deduction = i
		case strings.Contains(folded, "LIQUID"):
			cols.Net = i
		case strings.Contains(folded, "REF") || strings.Contains(folded, "INFORM") || strings.Contains(folded, "%"):
			cols.Reference = i
		}
	}

	// The source layouts always lead with the code column, and the
	// military statement has a fixed six-column shape whose amount
	// columns are sometimes printed without their labels.
	if cols.Code < 0 {
		cols.Code = 0
	}
	width := len(header)
	if cols.Description < 0 && cols.Code+1 < width {
		cols.Description = cols.Code + 1
	}
	if cols.Earning < 0 && cols.Deduction < 0 && width >= 6 {
		if cols.Reference < 0 {
			cols.Reference = 2
		}
		cols.Earning = 3
		cols.Deduction = 4
		cols.Net = 5
	}
	if cols.Earning < 0 && cols.Deduction < 0 {
		return ColumnMap{}, -1, false
	}
	return cols, headerIdx, true
}

// cellAt reads a cell by resolved role index, tolerating short rows.
func cellAt(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}
