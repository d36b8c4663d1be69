package relay

import (
	"fmt"
	"os"
	"strconv"
	"sync"

	"github.com/xuri/excelize/v2"

	"github.com/example/maternal/pkg/models"
)

// SheetName is the sheet the tracking rows are appended to
const SheetName = "追蹤資料"

// header is the fixed column layout of the tracking sheet. New event fields
// must be appended at the end so existing spreadsheets stay readable.
var header = []string{
	"userId", "timestamp", "eventType", "page",
	"sectionId", "sectionTitle", "question",
	"duration", "scrollDepth", "progressPercentage", "metadata",
}

// Workbook appends tracking events to an .xlsx file. The file is reopened
// on every append so the spreadsheet can be copied away at any time; the
// mutex keeps concurrent requests from interleaving writes.
type Workbook struct {
	path string
	mu   sync.Mutex
}

// NewWorkbook opens the workbook at the given path, creating it with the
// tracking sheet and header row when it does not exist yet.
func NewWorkbook(path string) (*Workbook, error) {
	w := &Workbook{path: path}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := w.create(); err != nil {
			return nil, err
		}
	} else if err != nil {
		return nil, fmt.Errorf("failed to stat workbook: %w", err)
	}
	return w, nil
}

func (w *Workbook) create() error {
	f := excelize.NewFile()
	defer f.Close()

	if _, err := f.NewSheet(SheetName); err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("failed to remove default sheet: %w", err)
	}

	for i, title := range header {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(SheetName, cell, title); err != nil {
			return fmt.Errorf("failed to write header: %w", err)
		}
	}

	style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err == nil {
		last, _ := excelize.CoordinatesToCellName(len(header), 1)
		f.SetCellStyle(SheetName, "A1", last, style)
	}

	if err := f.SaveAs(w.path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

// Append writes one row per event to the tracking sheet
func (w *Workbook) Append(events []models.TrackingEvent) error {
	if len(events) == 0 {
		return nil
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	f, err := excelize.OpenFile(w.path)
	if err != nil {
		return fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(SheetName)
	if err != nil {
		return fmt.Errorf("failed to read sheet: %w", err)
	}

	next := len(rows) + 1
	for _, event := range events {
		for i, value := range rowValues(event) {
			cell, err := excelize.CoordinatesToCellName(i+1, next)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(SheetName, cell, value); err != nil {
				return fmt.Errorf("failed to write row %d: %w", next, err)
			}
		}
		next++
	}

	if err := f.Save(); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

// Rows returns the sheet contents including the header row
func (w *Workbook) Rows() ([][]string, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	f, err := excelize.OpenFile(w.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	return f.GetRows(SheetName)
}

// rowValues flattens an event into the fixed column layout. Absent fields
// become empty cells, including numeric zeroes, so a page-enter event shows
// a blank duration rather than a misleading 0.
func rowValues(event models.TrackingEvent) []string {
	return []string{
		event.UserID,
		event.Timestamp,
		string(event.EventType),
		event.Page,
		event.SectionID,
		event.SectionTitle,
		event.Question,
		emptyIfZero(event.Duration),
		emptyIfZero(event.ScrollDepth),
		emptyIfZero(event.ProgressPercentage),
		event.Metadata,
	}
}

func emptyIfZero(v int) string {
	if v == 0 {
		return ""
	}
	return strconv.Itoa(v)
}
