// Package export renders workout history for download.
package export

import (
	"alcyxob/gym-tracker/internal/domain"
	"encoding/json"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
)

// Sheet names in the history workbook.
const (
	SheetSessions = "Sessions"
	SheetSets     = "Sets"
)

// ContentTypeXLSX is the MIME type of the history workbook.
const ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

const dateLayout = "2006-01-02 15:04"

var (
	sessionHeaders = []interface{}{"Session", "Started", "Ended", "Duration", "Exercises", "Sets"}
	setHeaders     = []interface{}{"Session", "Date", "Exercise", "Set", "Weight", "Reps", "Notes"}
)

// HistoryWorkbook builds a workbook with one row per completed session on
// the Sessions sheet and one row per logged set on the Sets sheet. Exercise
// names come from the live library when the exercise still exists.
func HistoryWorkbook(history []domain.CompletedSession, exercises []domain.Exercise) (*excelize.File, error) {
	f := excelize.NewFile()

	sessionsIdx, err := f.NewSheet(SheetSessions)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create sheet %s: %w", SheetSessions, err)
	}
	if _, err := f.NewSheet(SheetSets); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create sheet %s: %w", SheetSets, err)
	}
	f.SetActiveSheet(sessionsIdx)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to drop default sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#2E75B6"}, Pattern: 1},
	})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	if err := writeSessions(f, history, headerStyle); err != nil {
		f.Close()
		return nil, err
	}
	if err := writeSets(f, history, domain.IndexExercises(exercises), headerStyle); err != nil {
		f.Close()
		return nil, err
	}
	return f, nil
}

func writeHeader(f *excelize.File, sheet string, headers []interface{}, style int) error {
	if err := f.SetSheetRow(sheet, "A1", &headers); err != nil {
		return fmt.Errorf("failed to write %s header: %w", sheet, err)
	}
	last, err := excelize.CoordinatesToCellName(len(headers), 1)
	if err != nil {
		return err
	}
	return f.SetCellStyle(sheet, "A1", last, style)
}

func writeSessions(f *excelize.File, history []domain.CompletedSession, headerStyle int) error {
	if err := writeHeader(f, SheetSessions, sessionHeaders, headerStyle); err != nil {
		return err
	}
	if err := f.SetColWidth(SheetSessions, "A", "A", 30); err != nil {
		return err
	}
	if err := f.SetColWidth(SheetSessions, "B", "C", 18); err != nil {
		return err
	}
	for i, h := range history {
		ended := h.EndedAt
		minutes := domain.SessionDuration(h.StartedAt, &ended, ended)
		row := []interface{}{
			h.Name,
			formatTime(h.StartedAt),
			formatTime(h.EndedAt),
			domain.FormatDuration(minutes),
			len(h.Entries),
			h.TotalSets(),
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(SheetSessions, cell, &row); err != nil {
			return fmt.Errorf("failed to write session %s: %w", h.ID, err)
		}
	}
	return nil
}

func writeSets(f *excelize.File, history []domain.CompletedSession, byID map[string]domain.Exercise, headerStyle int) error {
	if err := writeHeader(f, SheetSets, setHeaders, headerStyle); err != nil {
		return err
	}
	if err := f.SetColWidth(SheetSets, "A", "A", 30); err != nil {
		return err
	}
	if err := f.SetColWidth(SheetSets, "C", "C", 28); err != nil {
		return err
	}
	rowNum := 2
	for _, h := range history {
		for _, entry := range h.Entries {
			label := domain.ExerciseLabel(byID, entry.ExerciseID, entry.Name)
			for n, set := range entry.Sets {
				row := []interface{}{
					h.Name,
					formatTime(h.StartedAt),
					label,
					n + 1,
					optional(set.Weight),
					optional(set.Reps),
					set.Notes,
				}
				cell, err := excelize.CoordinatesToCellName(1, rowNum)
				if err != nil {
					return err
				}
				if err := f.SetSheetRow(SheetSets, cell, &row); err != nil {
					return fmt.Errorf("failed to write set %s: %w", set.ID, err)
				}
				rowNum++
			}
		}
	}
	return nil
}

// HistoryWorkbookBytes renders HistoryWorkbook into an xlsx byte slice.
func HistoryWorkbookBytes(history []domain.CompletedSession, exercises []domain.Exercise) ([]byte, error) {
	f, err := HistoryWorkbook(history, exercises)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to render workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// SnapshotJSON encodes a snapshot as indented JSON.
func SnapshotJSON(s domain.Snapshot) ([]byte, error) {
	return json.MarshalIndent(s, "", "  ")
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(dateLayout)
}

func optional[T int | float64](p *T) interface{} {
	if p == nil {
		return ""
	}
	return *p
}
