package service

import (
	"regexp"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"
)

// Table is a raw extracted grid: rows of cell strings. Cells may be empty
// and may contain embedded newlines.
type Table [][]string

// Geometry tolerances for reconstructing lines and cells from positioned
// text runs. Values are in PDF points and were tuned against the payslip
// renderers' output.
const (
	lineTolerance = 2.5  // max Y drift within one visual line
	joinGap       = 2.0  // X gap glued without a space
	cellGap       = 12.0 // X gap that still belongs to the same cell
	columnSlack   = 10.0 // X drift allowed when aligning cells to columns
)

type fragment struct {
	x    float64
	text string
}

type line struct {
	y         float64
	fragments []fragment
}

// buildPage converts a page's positioned text runs into a plain text
// block (one string per visual line, page order preserved) and
// reconstructed table grids.
func buildPage(runs []pdf.Text) (string, []Table) {
	lines := clusterLines(runs)
	if len(lines) == 0 {
		return "", nil
	}

	var b strings.Builder
	for i, ln := range lines {
		if i > 0 {
			b.WriteByte('\n')
		}
		for j, f := range ln.fragments {
			if j > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(f.text)
		}
	}

	return b.String(), collectTables(lines)
}

// clusterLines groups runs by Y coordinate (PDF origin is bottom-left, so
// higher Y comes first) and splits each line into cell fragments on X
// gaps.
func clusterLines(runs []pdf.Text) []line {
	kept := make([]pdf.Text, 0, len(runs))
	for _, r := range runs {
		if strings.TrimSpace(r.S) != "" {
			kept = append(kept, r)
		}
	}
	if len(kept) == 0 {
		return nil
	}
	sort.SliceStable(kept, func(i, j int) bool {
		if kept[i].Y != kept[j].Y {
			return kept[i].Y > kept[j].Y
		}
		return kept[i].X < kept[j].X
	})

	var lines []line
	current := line{y: kept[0].Y}
	var row []pdf.Text
	flush := func() {
		if len(row) > 0 {
			current.fragments = splitFragments(row)
			lines = append(lines, current)
		}
	}
	for _, r := range kept {
		if len(row) > 0 && current.y-r.Y > lineTolerance {
			flush()
			current = line{y: r.Y}
			row = nil
		}
		row = append(row, r)
	}
	flush()
	return lines
}

func splitFragments(row []pdf.Text) []fragment {
	sort.SliceStable(row, func(i, j int) bool { return row[i].X < row[j].X })

	var frags []fragment
	var b strings.Builder
	start := row[0].X
	end := row[0].X
	for i, r := range row {
		if i > 0 {
			gap := r.X - end
			switch {
			case gap > cellGap:
				frags = append(frags, fragment{x: start, text: b.String()})
				b.Reset()
				start = r.X
			case gap > joinGap:
				b.WriteByte(' ')
			}
		}
		b.WriteString(r.S)
		if r.X+r.W > end {
			end = r.X + r.W
		}
	}
	frags = append(frags, fragment{x: start, text: b.String()})
	return frags
}

// collectTables finds maximal runs of consecutive multi-fragment lines
// and aligns their fragments into a column grid. Lines with a single
// fragment are prose, not table rows.
func collectTables(lines []line) []Table {
	var tables []Table
	var block []line
	flush := func() {
		if len(block) >= 2 {
			if t := alignColumns(block); len(t) > 0 {
				tables = append(tables, t)
			}
		}
		block = nil
	}
	for _, ln := range lines {
		if len(ln.fragments) >= 2 {
			block = append(block, ln)
			continue
		}
		flush()
	}
	flush()
	return tables
}

// alignColumns derives column anchors from the fragment start positions
// of every row in the block, then places each fragment into its nearest
// column. Missing cells become empty strings, so downstream code can rely
// on uniform row width.
func alignColumns(block []line) Table {
	var xs []float64
	for _, ln := range block {
		for _, f := range ln.fragments {
			xs = append(xs, f.x)
		}
	}
	sort.Float64s(xs)

	var anchors []float64
	for _, x := range xs {
		if len(anchors) == 0 || x-anchors[len(anchors)-1] > columnSlack {
			anchors = append(anchors, x)
		}
	}

	table := make(Table, 0, len(block))
	for _, ln := range block {
		row := make([]string, len(anchors))
		for _, f := range ln.fragments {
			col := nearestAnchor(anchors, f.x)
			if row[col] == "" {
				row[col] = f.text
			} else {
				row[col] += " " + f.text
			}
		}
		table = append(table, row)
	}
	return table
}

func nearestAnchor(anchors []float64, x float64) int {
	best := 0
	for i := range anchors {
		if abs(x-anchors[i]) < abs(x-anchors[best]) {
			best = i
		}
	}
	return best
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

var multiSpace = regexp.MustCompile(`\s{2,}`)

// tablesFromText rebuilds a coarse grid from plain text by splitting
// lines on runs of two or more spaces. Used for OCR output, which has no
// positional information.
func tablesFromText(text string) []Table {
	var rows Table
	for _, ln := range strings.Split(text, "\n") {
		cells := multiSpace.Split(strings.TrimSpace(ln), -1)
		if len(cells) >= 2 {
			rows = append(rows, cells)
		}
	}
	if len(rows) < 2 {
		return nil
	}
	return []Table{rows}
}
