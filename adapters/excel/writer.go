package excel

import (
	"fmt"
	"io"

	"gosurvey/internal/analysis"

	"github.com/xuri/excelize/v2"
)

const StatusSheet = "Organizations"

var statusHeaders = []interface{}{"Organization", "Intake Date", "CEO Survey", "Tech Survey", "Staff Survey", "Overall Status"}

// WriteStatusWorkbook writes the organization status list as an xlsx workbook
func WriteStatusWorkbook(w io.Writer, statuses []analysis.OrganizationStatus) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", StatusSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	sw, err := f.NewStreamWriter(StatusSheet)
	if err != nil {
		return fmt.Errorf("open stream writer: %w", err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}
	if err := sw.SetColWidth(1, 1, 32); err != nil {
		return err
	}
	if err := sw.SetColWidth(2, len(statusHeaders), 16); err != nil {
		return err
	}

	header := make([]interface{}, len(statusHeaders))
	for i, h := range statusHeaders {
		header[i] = excelize.Cell{StyleID: bold, Value: h}
	}
	if err := sw.SetRow("A1", header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for i, s := range statuses {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		row := []interface{}{s.Organization, s.IntakeDate, s.CEOStatus, s.TechStatus, s.StaffStatus, s.OverallStatus}
		if err := sw.SetRow(cell, row); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}
	if err := sw.Flush(); err != nil {
		return fmt.Errorf("flush workbook: %w", err)
	}
	_, err = f.WriteTo(w)
	return err
}
