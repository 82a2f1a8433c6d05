package service

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"

	"github.com/yourusername/hr-api/internal/domain/entity"
)

// ReportService renders contract reports. It is stateless: callers load
// the data through the other services and choose the output format.
type ReportService struct{}

func NewReportService() *ReportService {
	return &ReportService{}
}

// WriteContractsPDF renders a contract table, optionally headed by an
// employee card for per-employee reports.
func (s *ReportService) WriteContractsPDF(w io.Writer, title string, employee *entity.Employee, contracts []entity.Contract) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetAutoPageBreak(true, 20)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.SetTextColor(17, 24, 39)
	pdf.CellFormat(0, 10, tr(title), "", 1, "C", false, 0, "")

	pdf.SetDrawColor(22, 163, 74)
	pdf.SetLineWidth(0.8)
	pdf.Line(10, pdf.GetY()+2, 200, pdf.GetY()+2)
	pdf.Ln(8)

	if employee != nil {
		pdf.SetFont("Helvetica", "", 11)
		card := [][2]string{
			{"Empleado:", employee.FullName()},
			{"Documento:", employee.DocumentNumber},
			{"Cargo:", employee.Position},
			{"Estado:", employee.Status},
		}
		for _, row := range card {
			pdf.SetFont("Helvetica", "B", 11)
			pdf.CellFormat(30, 7, tr(row[0]), "", 0, "L", false, 0, "")
			pdf.SetFont("Helvetica", "", 11)
			pdf.CellFormat(0, 7, tr(row[1]), "", 1, "L", false, 0, "")
		}
		pdf.Ln(4)
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(0, 7, tr(fmt.Sprintf("Total de contratos: %d", len(contracts))), "", 1, "L", false, 0, "")
		pdf.Ln(2)
	}

	colWidths := []float64{15, 65, 45, 45}
	headers := []string{"#", "Empleado", "Inicio / Fin", "Valor"}

	drawHeader := func() {
		pdf.SetFillColor(11, 18, 32)
		pdf.SetTextColor(229, 231, 235)
		pdf.SetFont("Helvetica", "B", 10)
		for i, h := range headers {
			pdf.CellFormat(colWidths[i], 8, tr(h), "1", 0, "L", true, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetTextColor(17, 24, 39)
		pdf.SetFont("Helvetica", "", 10)
	}
	drawHeader()

	for idx, c := range contracts {
		if pdf.GetY() > 260 {
			pdf.AddPage()
			drawHeader()
		}
		fill := idx%2 == 0
		pdf.SetFillColor(243, 244, 246)
		pdf.CellFormat(colWidths[0], 7, fmt.Sprintf("%d", idx+1), "1", 0, "L", fill, 0, "")
		pdf.CellFormat(colWidths[1], 7, tr(c.EmployeeName), "1", 0, "L", fill, 0, "")
		pdf.CellFormat(colWidths[2], 7, tr(c.StartDate+" / "+c.EndDate), "1", 0, "L", fill, 0, "")
		pdf.CellFormat(colWidths[3], 7, formatCurrency(c.Value), "1", 0, "R", fill, 0, "")
		pdf.Ln(-1)
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(107, 114, 128)
	pdf.CellFormat(0, 5, tr("Generado: "+time.Now().Format("2006-01-02 15:04:05")), "", 1, "R", false, 0, "")

	return pdf.Output(w)
}

// WriteContractsXLSX streams the contracts into a single-sheet workbook.
func (s *ReportService) WriteContractsXLSX(w io.Writer, contracts []entity.Contract) error {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Contratos"
	f.SetSheetName("Sheet1", sheetName)

	sw, err := f.NewStreamWriter(sheetName)
	if err != nil {
		return fmt.Errorf("failed to create stream writer: %w", err)
	}

	headers := []interface{}{"ID", "Empleado", "Fecha inicio", "Fecha fin", "Valor"}
	if err := sw.SetRow("A1", headers); err != nil {
		return fmt.Errorf("failed to write header row: %w", err)
	}

	for i, c := range contracts {
		cell := fmt.Sprintf("A%d", i+2)
		row := []interface{}{c.ID, sanitizeForExcel(c.EmployeeName), c.StartDate, c.EndDate, c.Value}
		if err := sw.SetRow(cell, row); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	if err := sw.Flush(); err != nil {
		return fmt.Errorf("failed to flush stream writer: %w", err)
	}
	return f.Write(w)
}

// WriteContractsCSV writes the same table as CSV.
func (s *ReportService) WriteContractsCSV(w io.Writer, contracts []entity.Contract) error {
	writer := csv.NewWriter(w)
	defer writer.Flush()

	if err := writer.Write([]string{"ID", "Empleado", "Fecha inicio", "Fecha fin", "Valor"}); err != nil {
		return err
	}
	for _, c := range contracts {
		record := []string{
			c.ID,
			sanitizeForExcel(c.EmployeeName),
			c.StartDate,
			c.EndDate,
			fmt.Sprintf("%.2f", c.Value),
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

func formatCurrency(v float64) string {
	return fmt.Sprintf("$%.0f", v)
}

// sanitizeForExcel guards against formula injection in Excel/LibreOffice.
func sanitizeForExcel(s string) string {
	if len(s) == 0 {
		return s
	}
	if s[0] == '=' || s[0] == '+' || s[0] == '-' || s[0] == '@' || s[0] == '\t' || s[0] == '\r' {
		return "'" + s
	}
	return s
}
