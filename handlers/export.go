package handlers

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/xuri/excelize/v2"
	"p9e.in/aquasure/archive"
	"p9e.in/aquasure/models"
)

const (
	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	headerRow       = 4
)

// Archiver keeps a copy of exported files.
type Archiver interface {
	Upload(ctx context.Context, object, contentType string, data []byte) (string, error)
}

type exporter struct {
	archiver Archiver
}

// send writes a download response. When an archiver is configured and the
// request asks for it, the file is archived first and its URI returned in
// the X-Archive-URI header.
func (e exporter) send(w http.ResponseWriter, r *http.Request, prefix, filename, contentType string, data []byte) {
	if e.archiver != nil && r.URL.Query().Get("archive") == "true" {
		object := archive.ObjectName(prefix, filename, time.Now())
		uri, err := e.archiver.Upload(r.Context(), object, contentType, data)
		if err != nil {
			log.Printf("⚠️  Export archive failed: %v", err)
		} else {
			w.Header().Set("X-Archive-URI", uri)
		}
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

type workbook struct {
	f           *excelize.File
	headerStyle int
	dataStyle   int
	titleStyle  int
}

func newWorkbook() *workbook {
	f := excelize.NewFile()
	titleStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 16},
		Alignment: &excelize.Alignment{Horizontal: "left", Vertical: "center"},
	})
	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})
	dataStyle, _ := f.NewStyle(&excelize.Style{
		Border: []excelize.Border{
			{Type: "left", Color: "CCCCCC", Style: 1},
			{Type: "right", Color: "CCCCCC", Style: 1},
			{Type: "top", Color: "CCCCCC", Style: 1},
			{Type: "bottom", Color: "CCCCCC", Style: 1},
		},
	})
	return &workbook{f: f, headerStyle: headerStyle, dataStyle: dataStyle, titleStyle: titleStyle}
}

// table writes a titled sheet with a header row and data rows.
func (wb *workbook) table(sheet, title string, headers []string, rows [][]interface{}) error {
	if _, err := wb.f.NewSheet(sheet); err != nil {
		return err
	}
	wb.f.SetCellValue(sheet, "A1", title)
	wb.f.SetCellStyle(sheet, "A1", "A1", wb.titleStyle)
	wb.f.SetRowHeight(sheet, 1, 30)
	wb.f.SetCellValue(sheet, "A2", fmt.Sprintf("Generated: %s", time.Now().Format("2006-01-02 15:04:05")))

	for col, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(col+1, headerRow)
		wb.f.SetCellValue(sheet, cell, h)
		wb.f.SetCellStyle(sheet, cell, cell, wb.headerStyle)
		name, _ := excelize.ColumnNumberToName(col + 1)
		wb.f.SetColWidth(sheet, name, name, 18)
	}
	for i, row := range rows {
		for col, v := range row {
			cell, _ := excelize.CoordinatesToCellName(col+1, headerRow+1+i)
			wb.f.SetCellValue(sheet, cell, v)
			wb.f.SetCellStyle(sheet, cell, cell, wb.dataStyle)
		}
	}
	return nil
}

func (wb *workbook) bytes(active string) ([]byte, error) {
	if idx, err := wb.f.GetSheetIndex(active); err == nil && idx >= 0 {
		wb.f.SetActiveSheet(idx)
	}
	wb.f.DeleteSheet("Sheet1")
	buf, err := wb.f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

var sampleHeaders = []string{
	"Timestamp", "Location", "pH", "TDS (mg/L)", "Turbidity (NTU)", "Chlorine (mg/L)", "Temperature (°C)",
	"Quality Index", "Status", "Compliant", "Non-compliant Parameters", "Verified", "Notes",
}

func sampleRow(s models.Sample) []interface{} {
	var temp interface{} = ""
	if s.Temperature != nil {
		temp = *s.Temperature
	}
	return []interface{}{
		s.Timestamp.UTC().Format("2006-01-02 15:04:05"), s.Location, s.PH, s.TDS, s.Turbidity, s.Chlorine, temp,
		s.QualityIndex, string(s.Status), s.IsCompliant, joinParams(s.NonCompliantParams), s.Verified, s.Notes,
	}
}

func joinParams(params []string) string {
	out := ""
	for i, p := range params {
		if i > 0 {
			out += ", "
		}
		out += p
	}
	return out
}

func createSamplesWorkbook(samples []models.Sample) ([]byte, error) {
	wb := newWorkbook()
	rows := make([][]interface{}, len(samples))
	for i, s := range samples {
		rows[i] = sampleRow(s)
	}
	if err := wb.table("Samples", "Water Quality Samples", sampleHeaders, rows); err != nil {
		return nil, err
	}
	return wb.bytes("Samples")
}

func createSamplesCSV(samples []models.Sample) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)
	if err := writer.Write(sampleHeaders); err != nil {
		return nil, err
	}
	for _, s := range samples {
		row := sampleRow(s)
		record := make([]string, len(row))
		for i, v := range row {
			record[i] = fmt.Sprint(v)
		}
		if err := writer.Write(record); err != nil {
			return nil, err
		}
	}
	writer.Flush()
	return buf.Bytes(), writer.Error()
}

// createChartWorkbook writes the limits, points, violations and capability of
// a stored chart, one sheet each.
func createChartWorkbook(c *models.ControlChart) ([]byte, error) {
	wb := newWorkbook()
	title := fmt.Sprintf("%s chart: %s @ %s", c.Type, c.Parameter, c.Location)
	limits := c.ControlLimits.Data()

	summary := [][]interface{}{
		{"Chart ID", c.Code},
		{"Status", c.Status},
		{"Subgroup Size", c.SampleSize},
		{"Center Line", limits.CenterLine},
		{"UCL", limits.UCL},
		{"LCL", limits.LCL},
	}
	if limits.USL != nil {
		summary = append(summary, []interface{}{"USL", *limits.USL})
	}
	if limits.LSL != nil {
		summary = append(summary, []interface{}{"LSL", *limits.LSL})
	}
	if err := wb.table("Summary", title, []string{"Field", "Value"}, summary); err != nil {
		return nil, err
	}

	points := make([][]interface{}, len(c.Points))
	for i, p := range c.Points {
		date := ""
		if p.Date != nil {
			date = p.Date.UTC().Format("2006-01-02 15:04:05")
		}
		points[i] = []interface{}{p.Subgroup, date, p.Average, p.Range, limits.UCL, limits.CenterLine, limits.LCL}
	}
	if err := wb.table("Data", title, []string{"Subgroup", "Date", "Average", "Range", "UCL", "CL", "LCL"}, points); err != nil {
		return nil, err
	}

	violations := make([][]interface{}, len(c.Violations))
	for i, v := range c.Violations {
		violations[i] = []interface{}{v.Index + 1, v.Rule, string(v.Severity), v.Value, v.Trend}
	}
	if err := wb.table("Violations", title, []string{"Subgroup", "Rule", "Severity", "Value", "Trend"}, violations); err != nil {
		return nil, err
	}

	if capab := c.ProcessCapability.Data(); capab != nil {
		rows := [][]interface{}{{"Mean", capab.Mean}, {"Std Dev", capab.StdDev}}
		for _, idx := range []struct {
			name string
			v    *float64
		}{{"Cp", capab.Cp}, {"Cpk", capab.Cpk}, {"Pp", capab.Pp}, {"Ppk", capab.Ppk}} {
			if idx.v != nil {
				rows = append(rows, []interface{}{idx.name, *idx.v})
			}
		}
		rows = append(rows, []interface{}{"Interpretation", capab.Interpretation()})
		if err := wb.table("Capability", title, []string{"Index", "Value"}, rows); err != nil {
			return nil, err
		}
	}
	return wb.bytes("Summary")
}

func sanitizeFilename(filename string) string {
	result := []rune{}
	for _, char := range filename {
		switch char {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|', ' ':
			result = append(result, '_')
		default:
			result = append(result, char)
		}
	}
	return string(result)
}
