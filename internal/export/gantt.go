// Package export writes a project's timeline to an Excel workbook: one row
// per visible ticket, one column per day and filled cells for each bar.
package export

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/gantry/internal/dates"
	"github.com/alexanderramin/gantry/internal/domain"
	"github.com/alexanderramin/gantry/internal/timeline"
	"github.com/alexanderramin/gantry/internal/tree"
	"github.com/natefinch/atomic"
	"github.com/xuri/excelize/v2"
)

const (
	// SheetName is the single worksheet of the export.
	SheetName = "Timeline"

	headerRows  = 2
	firstDayCol = 7 // G; A-F hold the ticket columns
	dayColWidth = 3.5
	indent      = "    "
)

var ticketHeaders = []string{"#", "Ticket", "Assignee", "Start", "End", "Days"}

// Fill colours shared with the terminal palette.
const (
	colorRootBar  = "#83A598"
	colorChildBar = "#8EC07C"
	colorWeekend  = "#EBDBB2"
	colorHoliday  = "#FABD2F"
	colorHeader   = "#FE8019"
)

// Input is what one export renders.
type Input struct {
	Project   *domain.Project
	Rows      []tree.Row
	Assignees map[string]string // id -> name
	Today     time.Time
	Holidays  timeline.HolidayCalendar
}

type styles struct {
	header, rootBar, childBar, weekend, holiday int
}

// Gantt builds the workbook. The caller owns the returned file and must
// Close it.
func Gantt(in Input) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		f.Close()
		return nil, fmt.Errorf("naming sheet: %w", err)
	}
	st, err := newStyles(f)
	if err != nil {
		f.Close()
		return nil, err
	}

	tickets := make([]*domain.Ticket, len(in.Rows))
	for i, r := range in.Rows {
		tickets[i] = r.Ticket
	}
	layout := timeline.NewLayout(tickets, in.Today, timeline.CellOptions(1, in.Holidays))

	if err := writeHeader(f, layout, st); err != nil {
		f.Close()
		return nil, err
	}
	for i, r := range in.Rows {
		if err := writeRow(f, layout, st, in, i, r); err != nil {
			f.Close()
			return nil, err
		}
	}

	lastDay, _ := excelize.ColumnNumberToName(firstDayCol + layout.TotalDays - 1)
	firstDay, _ := excelize.ColumnNumberToName(firstDayCol)
	if err := f.SetColWidth(SheetName, firstDay, lastDay, dayColWidth); err != nil {
		f.Close()
		return nil, fmt.Errorf("sizing day columns: %w", err)
	}
	if err := f.SetColWidth(SheetName, "B", "B", 36); err != nil {
		f.Close()
		return nil, fmt.Errorf("sizing name column: %w", err)
	}
	topLeft, _ := excelize.CoordinatesToCellName(firstDayCol, headerRows+1)
	if err := f.SetPanes(SheetName, &excelize.Panes{
		Freeze:      true,
		XSplit:      firstDayCol - 1,
		YSplit:      headerRows,
		TopLeftCell: topLeft,
		ActivePane:  "bottomRight",
	}); err != nil {
		f.Close()
		return nil, fmt.Errorf("freezing panes: %w", err)
	}
	return f, nil
}

func newStyles(f *excelize.File) (styles, error) {
	var st styles
	fill := func(color string) *excelize.Style {
		return &excelize.Style{Fill: excelize.Fill{Type: "pattern", Color: []string{color}, Pattern: 1}}
	}
	defs := []struct {
		dst   *int
		style *excelize.Style
	}{
		{&st.header, &excelize.Style{
			Font:      &excelize.Font{Bold: true, Color: colorHeader},
			Alignment: &excelize.Alignment{Horizontal: "center"},
		}},
		{&st.rootBar, fill(colorRootBar)},
		{&st.childBar, fill(colorChildBar)},
		{&st.weekend, fill(colorWeekend)},
		{&st.holiday, fill(colorHoliday)},
	}
	for _, d := range defs {
		id, err := f.NewStyle(d.style)
		if err != nil {
			return st, fmt.Errorf("creating style: %w", err)
		}
		*d.dst = id
	}
	return st, nil
}

func writeHeader(f *excelize.File, l *timeline.Layout, st styles) error {
	for i, h := range ticketHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, headerRows)
		if err := f.SetCellValue(SheetName, cell, h); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}
	for _, m := range l.Months() {
		from, _ := excelize.CoordinatesToCellName(firstDayCol+m.Offset, 1)
		to, _ := excelize.CoordinatesToCellName(firstDayCol+m.Offset+m.Days-1, 1)
		if err := f.SetCellValue(SheetName, from, fmt.Sprintf("%s %d", m.Month.String()[:3], m.Year)); err != nil {
			return fmt.Errorf("writing month: %w", err)
		}
		if m.Days > 1 {
			if err := f.MergeCell(SheetName, from, to); err != nil {
				return fmt.Errorf("merging month: %w", err)
			}
		}
	}
	for _, d := range l.Days() {
		cell, _ := excelize.CoordinatesToCellName(firstDayCol+d.Index, headerRows)
		if err := f.SetCellValue(SheetName, cell, d.DayOfMonth); err != nil {
			return fmt.Errorf("writing day: %w", err)
		}
		if d.HolidayName != "" {
			if err := f.AddComment(SheetName, excelize.Comment{
				Cell:      cell,
				Author:    "gantry",
				Paragraph: []excelize.RichTextRun{{Text: d.HolidayName}},
			}); err != nil {
				return fmt.Errorf("annotating holiday: %w", err)
			}
		}
	}
	lastCol, _ := excelize.CoordinatesToCellName(firstDayCol+l.TotalDays-1, headerRows)
	return f.SetCellStyle(SheetName, "A1", lastCol, st.header)
}

func writeRow(f *excelize.File, l *timeline.Layout, st styles, in Input, i int, r tree.Row) error {
	t := r.Ticket
	y := headerRows + 1 + i
	assignee := ""
	if t.AssigneeID != nil {
		assignee = in.Assignees[*t.AssigneeID]
	}
	values := []any{
		domain.ShortID(t.ID),
		strings.Repeat(indent, r.Level) + t.Name,
		assignee,
		dates.Format(t.StartDate),
		dates.Format(t.EndDate),
		dates.InclusiveDays(t.StartDate, t.EndDate),
	}
	for col, v := range values {
		cell, _ := excelize.CoordinatesToCellName(col+1, y)
		if err := f.SetCellValue(SheetName, cell, v); err != nil {
			return fmt.Errorf("writing ticket %s: %w", t.Name, err)
		}
	}

	bar := l.Bar(t, i)
	barStyle := st.childBar
	if t.IsRoot() {
		barStyle = st.rootBar
	}
	for _, d := range l.Days() {
		style := 0
		switch {
		case d.Index >= bar.Left && d.Index < bar.Left+bar.Width:
			style = barStyle
		case d.Holiday:
			style = st.holiday
		case d.Weekend:
			style = st.weekend
		}
		if style == 0 {
			continue
		}
		cell, _ := excelize.CoordinatesToCellName(firstDayCol+d.Index, y)
		if err := f.SetCellStyle(SheetName, cell, cell, style); err != nil {
			return fmt.Errorf("styling ticket %s: %w", t.Name, err)
		}
	}
	return nil
}

// WriteFile renders in and replaces path atomically, so a reader never
// sees a half-written workbook.
func WriteFile(path string, in Input) error {
	f, err := Gantt(in)
	if err != nil {
		return err
	}
	defer f.Close()

	buf, err := f.WriteToBuffer()
	if err != nil {
		return fmt.Errorf("encoding workbook: %w", err)
	}
	if err := atomic.WriteFile(path, bytes.NewReader(buf.Bytes())); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
