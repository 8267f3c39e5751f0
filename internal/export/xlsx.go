// Package export renders a section result as an xlsx workbook.
package export

import (
	"bytes"
	"fmt"
	"strings"
	"unicode"

	"github.com/dustin/go-humanize"
	"github.com/xuri/excelize/v2"

	"github.com/Simplici0/cabinetry/internal/model"
	"github.com/Simplici0/cabinetry/internal/pricing"
	"github.com/Simplici0/cabinetry/internal/sheets"
)

const (
	summarySheet = "Summary"
	partsSheet   = "Parts"
	laborSheet   = "Labor"
	sheetsSheet  = "Sheets"
)

// Workbook builds a workbook with a summary of the category lines and totals,
// the box parts and face lines, the labor lines, and the sheet packing groups.
func Workbook(res pricing.Result) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), summarySheet); err != nil {
		return nil, fmt.Errorf("set sheet name: %w", err)
	}
	for _, name := range []string{partsSheet, laborSheet, sheetsSheet} {
		if _, err := f.NewSheet(name); err != nil {
			return nil, fmt.Errorf("add sheet %s: %w", name, err)
		}
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "#FFFFFF", Size: 11},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#333333"}, Pattern: 1},
	})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}
	boldStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("create bold style: %w", err)
	}

	w := writer{f: f, header: headerStyle, bold: boldStyle}
	w.summary(res)
	w.parts(res)
	w.labor(res)
	w.packing(res)
	if w.err != nil {
		return nil, w.err
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write excel: %w", err)
	}
	return buf.Bytes(), nil
}

// writer remembers the first error so the sheet builders stay linear.
type writer struct {
	f      *excelize.File
	header int
	bold   int
	err    error
}

func (w *writer) row(sheet string, row int, values ...any) {
	if w.err != nil {
		return
	}
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		w.err = err
		return
	}
	if err := w.f.SetSheetRow(sheet, cell, &values); err != nil {
		w.err = fmt.Errorf("write %s row %d: %w", sheet, row, err)
	}
}

func (w *writer) style(sheet string, row, cols, style int) {
	if w.err != nil {
		return
	}
	first, _ := excelize.CoordinatesToCellName(1, row)
	last, _ := excelize.CoordinatesToCellName(cols, row)
	if err := w.f.SetCellStyle(sheet, first, last, style); err != nil {
		w.err = fmt.Errorf("style %s row %d: %w", sheet, row, err)
	}
}

func (w *writer) widths(sheet string, widths ...float64) {
	for i, width := range widths {
		if w.err != nil {
			return
		}
		col, _ := excelize.ColumnNumberToName(i + 1)
		if err := w.f.SetColWidth(sheet, col, col, width); err != nil {
			w.err = fmt.Errorf("set %s width %s: %w", sheet, col, err)
		}
	}
}

func (w *writer) summary(res pricing.Result) {
	w.widths(summarySheet, 22, 10, 14, 10, 16)
	w.row(summarySheet, 1, "Category", "Count", "Price", "Included", "Display")
	w.style(summarySheet, 1, 5, w.header)

	row := 2
	for _, line := range res.Categories {
		w.row(summarySheet, row, CategoryLabel(line.Category), line.Count, line.Price, yesNo(line.Included), Money(line.Price))
		row++
	}

	row++
	t := res.Totals
	totals := []struct {
		label string
		value float64
	}{
		{"Parts", t.PartsTotal},
		{"Labor", t.LaborTotal},
		{"Subtotal", t.Subtotal},
		{"Profit", t.Profit},
		{"Commission", t.Commission},
		{"Discount", -t.Discount},
		{"Amount", t.Amount},
		{"Unit price", t.UnitPrice},
		{"Quantity", t.Quantity},
		{"Total price", t.TotalPrice},
	}
	for _, tt := range totals {
		display := Money(tt.value)
		if tt.label == "Quantity" {
			display = humanize.Ftoa(tt.value)
		}
		w.row(summarySheet, row, tt.label, nil, tt.value, nil, display)
		w.style(summarySheet, row, 1, w.bold)
		row++
	}
}

func (w *writer) parts(res pricing.Result) {
	w.widths(partsSheet, 12, 16, 18, 10, 10, 8, 12)
	w.row(partsSheet, 1, "Cabinet", "Part", "Category", "Width", "Height", "Qty", "Unit price")
	w.style(partsSheet, 1, 7, w.header)

	row := 2
	for _, p := range res.Breakdown.Boxes.Parts {
		w.row(partsSheet, row, nil, p.Label, CategoryLabel(p.Category), p.Width, p.Height, p.Quantity, nil)
		row++
	}
	for _, line := range res.Breakdown.Faces.Lines {
		w.row(partsSheet, row, line.CabinetID, string(line.Kind), CategoryLabel(line.Category),
			line.Width, line.Height, line.Quantity, line.UnitPrice)
		row++
	}
}

func (w *writer) labor(res pricing.Result) {
	w.widths(laborSheet, 22, 10, 10, 14, 10)
	w.row(laborSheet, 1, "Service", "Hours", "Rate", "Cost", "Included")
	w.style(laborSheet, 1, 5, w.header)

	row := 2
	for _, line := range res.Labor {
		name := line.Name
		if name == "" {
			name = fmt.Sprintf("Service %d", line.ServiceID)
		}
		w.row(laborSheet, row, name, line.Hours, line.Rate, line.Cost, yesNo(line.Included))
		row++
	}
}

func (w *writer) packing(res pricing.Result) {
	w.widths(sheetsSheet, 10, 10, 14, 8, 10, 12, 12)
	w.row(sheetsSheet, 1, "Role", "Oversize", "Sheet", "Pieces", "Billed", "Efficiency", "Total")
	w.style(sheetsSheet, 1, 7, w.header)

	row := 2
	boxes, faces := res.Breakdown.Boxes.Sheets.Groups, res.Breakdown.Faces.Sheets.Groups
	groups := make([]sheets.Group, 0, len(boxes)+len(faces))
	groups = append(groups, boxes...)
	groups = append(groups, faces...)
	for _, g := range groups {
		size := humanize.Ftoa(g.SheetWidth) + " x " + humanize.Ftoa(g.SheetLength)
		efficiency := fmt.Sprintf("%.0f%%", g.Efficiency*100)
		w.row(sheetsSheet, row, string(g.Role), yesNo(g.Oversize), size, g.Pieces, g.SheetsBilled, efficiency, g.Total)
		row++
	}
}

// Money formats a dollar amount with thousands separators and at most two
// decimals.
func Money(v float64) string {
	if v < 0 {
		return "-$" + humanize.CommafWithDigits(-v, 2)
	}
	return "$" + humanize.CommafWithDigits(v, 2)
}

// CategoryLabel turns a category key such as drawerFrontTotal into
// "Drawer front".
func CategoryLabel(c model.Category) string {
	key := strings.TrimSuffix(string(c), "Total")
	var b strings.Builder
	for i, r := range key {
		switch {
		case i == 0:
			b.WriteRune(unicode.ToUpper(r))
		case unicode.IsUpper(r):
			b.WriteByte(' ')
			b.WriteRune(unicode.ToLower(r))
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}
