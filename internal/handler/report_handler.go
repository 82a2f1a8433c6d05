package handler

import (
	"bytes"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/hr-api/internal/domain/entity"
	apperrors "github.com/yourusername/hr-api/internal/pkg/errors"
	"github.com/yourusername/hr-api/internal/service"
)

// ReportHandler serves the contract report downloads in PDF, XLSX and CSV.
type ReportHandler struct {
	reportService   *service.ReportService
	employeeService *service.EmployeeService
	contractService *service.ContractService
}

func NewReportHandler(
	reportService *service.ReportService,
	employeeService *service.EmployeeService,
	contractService *service.ContractService,
) *ReportHandler {
	return &ReportHandler{
		reportService:   reportService,
		employeeService: employeeService,
		contractService: contractService,
	}
}

// GlobalPDF handles GET /api/reports/contracts.pdf.
func (h *ReportHandler) GlobalPDF(c *gin.Context) {
	contracts, err := h.contractService.List(c.Request.Context(), "")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error generando el reporte"})
		return
	}

	var buf bytes.Buffer
	if err := h.reportService.WriteContractsPDF(&buf, "Reporte general de contratos", nil, contracts); err != nil {
		log.Printf("[ReportHandler] pdf render failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error generando el reporte"})
		return
	}

	sendAttachment(c, "application/pdf", "contratos_todos.pdf", buf.Bytes())
}

// GlobalXLSX handles GET /api/reports/contracts.xlsx.
func (h *ReportHandler) GlobalXLSX(c *gin.Context) {
	contracts, err := h.contractService.List(c.Request.Context(), "")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error generando el reporte"})
		return
	}

	var buf bytes.Buffer
	if err := h.reportService.WriteContractsXLSX(&buf, contracts); err != nil {
		log.Printf("[ReportHandler] xlsx render failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error generando el reporte"})
		return
	}

	sendAttachment(c,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		"contratos_todos.xlsx", buf.Bytes())
}

// GlobalCSV handles GET /api/reports/contracts.csv.
func (h *ReportHandler) GlobalCSV(c *gin.Context) {
	contracts, err := h.contractService.List(c.Request.Context(), "")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error generando el reporte"})
		return
	}

	var buf bytes.Buffer
	if err := h.reportService.WriteContractsCSV(&buf, contracts); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error generando el reporte"})
		return
	}

	sendAttachment(c, "text/csv; charset=utf-8", "contratos_todos.csv", buf.Bytes())
}

// EmployeePDF handles GET /api/reports/employees/:id/contracts.pdf.
func (h *ReportHandler) EmployeePDF(c *gin.Context) {
	employee, contracts, ok := h.loadEmployeeContracts(c)
	if !ok {
		return
	}

	var buf bytes.Buffer
	title := "Contratos de " + employee.FullName()
	if err := h.reportService.WriteContractsPDF(&buf, title, employee, contracts); err != nil {
		log.Printf("[ReportHandler] pdf render failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error generando el reporte"})
		return
	}

	filename := fmt.Sprintf("contratos_%s.pdf", employee.DocumentNumber)
	sendAttachment(c, "application/pdf", filename, buf.Bytes())
}

// EmployeeXLSX handles GET /api/reports/employees/:id/contracts.xlsx.
func (h *ReportHandler) EmployeeXLSX(c *gin.Context) {
	employee, contracts, ok := h.loadEmployeeContracts(c)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := h.reportService.WriteContractsXLSX(&buf, contracts); err != nil {
		log.Printf("[ReportHandler] xlsx render failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error generando el reporte"})
		return
	}

	filename := fmt.Sprintf("contratos_%s.xlsx", employee.DocumentNumber)
	sendAttachment(c,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		filename, buf.Bytes())
}

// EmployeeCSV handles GET /api/reports/employees/:id/contracts.csv.
func (h *ReportHandler) EmployeeCSV(c *gin.Context) {
	employee, contracts, ok := h.loadEmployeeContracts(c)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := h.reportService.WriteContractsCSV(&buf, contracts); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error generando el reporte"})
		return
	}

	filename := fmt.Sprintf("contratos_%s.csv", employee.DocumentNumber)
	sendAttachment(c, "text/csv; charset=utf-8", filename, buf.Bytes())
}

func (h *ReportHandler) loadEmployeeContracts(c *gin.Context) (*entity.Employee, []entity.Contract, bool) {
	id := c.Param("id")

	employee, err := h.employeeService.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Empleado no encontrado"})
			return nil, nil, false
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error generando el reporte"})
		return nil, nil, false
	}

	contracts, err := h.contractService.List(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error generando el reporte"})
		return nil, nil, false
	}
	return employee, contracts, true
}

func sendAttachment(c *gin.Context, contentType, filename string, body []byte) {
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, contentType, body)
}
