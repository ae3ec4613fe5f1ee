package pkg

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"sky-scheduling/logger"
	"sky-scheduling/models"
)

// Order sheet columns, in the order they are exported
var orderSheetHeader = []string{
	"Ship Date",
	"Job #",
	"Customer",
	"PO",
	"Company",
	"Product",
	"Detail",
	"Print Type",
	"Colors",
	"Quantity",
	"Total",
	"Done",
}

const exportSheetName = "Production"

// ImportJobs reads an order sheet with one row per line item and groups the
// rows into jobs by Job #. Columns are found by their header text, so extra
// or reordered columns are fine. Jobs come back in the order they first
// appear.
func ImportJobs(filePath string) ([]models.Job, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		logger.Error.Printf("Failed to open order sheet %s: %v", filePath, err)
		return nil, err
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	rows, err := f.GetRows(sheetName)
	if err != nil {
		logger.Error.Printf("Failed to read rows: %v", err)
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%s: sheet %q is empty", filePath, sheetName)
	}

	cols := map[string]int{}
	for i, cell := range rows[0] {
		cols[strings.ToLower(strings.TrimSpace(cell))] = i
	}
	for _, required := range []string{"ship date", "job #"} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("%s: missing %q column", filePath, required)
		}
	}

	cell := func(row []string, name string) string {
		idx, ok := cols[name]
		if !ok || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	var jobs []models.Job
	index := map[string]int{}

	for rowIdx, row := range rows[1:] {
		excelRow := rowIdx + 2
		jobID := cell(row, "job #")
		if jobID == "" {
			continue
		}

		i, seen := index[jobID]
		if !seen {
			job, err := jobFromRow(jobID, cell(row, "ship date"), cell(row, "customer"), cell(row, "po"), cell(row, "company"))
			if err != nil {
				return nil, fmt.Errorf("%s row %d: %w", filePath, excelRow, err)
			}
			jobs = append(jobs, job)
			i = len(jobs) - 1
			index[jobID] = i
		}

		product := cell(row, "product")
		if product == "" {
			continue
		}
		detail, err := detailFromRow(jobID, product, cell(row, "detail"), cell(row, "print type"), cell(row, "colors"), cell(row, "quantity"))
		if err != nil {
			return nil, fmt.Errorf("%s row %d: %w", filePath, excelRow, err)
		}
		jobs[i].OrderDetailList = append(jobs[i].OrderDetailList, detail)
	}

	logger.Info.Printf("Imported %d jobs from %s", len(jobs), filePath)
	return jobs, nil
}

func jobFromRow(jobID, shipDate, customer, po, company string) (models.Job, error) {
	job := models.Job{JobID: jobID, CustomerName: customer, CustomerPO: po}

	if shipDate != "" {
		d, err := parseSheetDate(shipDate)
		if err != nil {
			return job, err
		}
		job.ShipDate = &d
	}

	if company != "" {
		c, err := models.PrintingCompanyFromName(company)
		if err != nil {
			code, convErr := strconv.Atoi(company)
			if convErr != nil {
				return job, err
			}
			if c, err = models.PrintingCompanyFromCode(code); err != nil {
				return job, err
			}
		}
		job.PrintingCompany = c
	}
	return job, nil
}

func detailFromRow(jobID, product, detailText, printType, colors, quantity string) (models.OrderDetail, error) {
	detail := models.OrderDetail{OrderID: jobID, ProductID: product, ProductDetail: detailText}

	if printType != "" {
		p, err := models.PrintTypeFromName(printType)
		if err != nil {
			return detail, err
		}
		detail.PrintType = p
	}

	var err error
	if detail.NumColors, err = parseCount(colors); err != nil {
		return detail, fmt.Errorf("colors: %w", err)
	}
	if detail.Quantity, err = parseCount(quantity); err != nil {
		return detail, fmt.Errorf("quantity: %w", err)
	}
	return detail, nil
}

func parseCount(s string) (int64, error) {
	if s == "" {
		return 0, nil
	}
	return strconv.ParseInt(strings.ReplaceAll(s, ",", ""), 10, 64)
}

// parseSheetDate accepts the display format and sentinel labels, then the
// longer formats spreadsheets tend to produce
func parseSheetDate(s string) (time.Time, error) {
	if d, err := ParseDate(s); err == nil {
		return d, nil
	}

	formats := []string{
		"01/02/2006",
		"1/2/2006",
		"1/2/06",
		"2006-01-02",
		"01-02-06",
		"01-02-2006",
		"Jan 2, 2006",
		"January 2, 2006",
	}
	for _, format := range formats {
		if t, err := time.Parse(format, s); err == nil {
			return TruncateDate(t), nil
		}
	}
	return time.Time{}, &ParseError{Text: s}
}

// ExportWeek writes a production sheet with one row per line item, grouped
// by ship day. Jobs without line items still get a row.
func ExportWeek(filePath string, days []DaySchedule) error {
	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		logger.Error.Printf("Failed to create export directory: %v", err)
		return err
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), exportSheetName); err != nil {
		return err
	}

	for i, title := range orderSheetHeader {
		f.SetCellValue(exportSheetName, cellName(i, 1), title)
	}
	style, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#CCCCCC"}, Pattern: 1},
	})
	f.SetCellStyle(exportSheetName, "A1", cellName(len(orderSheetHeader)-1, 1), style)

	row := 2
	for _, day := range days {
		for _, job := range day.Jobs {
			if len(job.OrderDetailList) == 0 {
				writeJobCells(f, row, day.Date, job)
				if job.IsCompleted() {
					f.SetCellValue(exportSheetName, cellName(11, row), "x")
				}
				row++
				continue
			}
			for _, detail := range job.OrderDetailList {
				writeJobCells(f, row, day.Date, job)
				values := []interface{}{
					detail.ProductID,
					detail.ProductDetail,
					detail.PrintType.String(),
					detail.NumColors,
					detail.Quantity,
					detail.Total(),
				}
				for i, v := range values {
					f.SetCellValue(exportSheetName, cellName(5+i, row), v)
				}
				if detail.IsCompleted() {
					f.SetCellValue(exportSheetName, cellName(11, row), "x")
				}
				row++
			}
		}
	}

	if err := f.SaveAs(filePath); err != nil {
		logger.Error.Printf("Failed to save export %s: %v", filePath, err)
		return err
	}
	logger.Info.Printf("Exported %d rows to %s", row-2, filePath)
	return nil
}

func writeJobCells(f *excelize.File, row int, day time.Time, job models.Job) {
	values := []interface{}{
		DateLabel(day),
		job.JobID,
		job.CustomerName,
		job.CustomerPO,
		job.PrintingCompany.String(),
	}
	for i, v := range values {
		f.SetCellValue(exportSheetName, cellName(i, row), v)
	}
}

// cellName turns a 0-based column and 1-based row into a reference like "C4"
func cellName(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col+1, row)
	return name
}
