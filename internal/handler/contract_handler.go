package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/hr-api/internal/domain/entity"
	"github.com/yourusername/hr-api/internal/handler/dto"
	apperrors "github.com/yourusername/hr-api/internal/pkg/errors"
	"github.com/yourusername/hr-api/internal/service"
)

// ContractHandler serves the labor contract endpoints.
type ContractHandler struct {
	contractService *service.ContractService
}

func NewContractHandler(contractService *service.ContractService) *ContractHandler {
	return &ContractHandler{contractService: contractService}
}

// Create handles POST /api/contracts.
func (h *ContractHandler) Create(c *gin.Context) {
	var req dto.CreateContractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Datos de contrato incompletos"})
		return
	}

	contract := &entity.Contract{
		StartDate:    req.StartDate,
		EndDate:      req.EndDate,
		Value:        req.Value,
		EmployeeID:   req.EmployeeID,
		EmployeeName: req.EmployeeName,
	}

	if err := h.contractService.Create(c.Request.Context(), contract); err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Empleado no encontrado"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error creando contrato"})
		}
		return
	}

	c.JSON(http.StatusCreated, contract)
}

// List handles GET /api/contracts, optionally filtered by ?employeeId=.
func (h *ContractHandler) List(c *gin.Context) {
	contracts, err := h.contractService.List(c.Request.Context(), c.Query("employeeId"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error listando contratos"})
		return
	}
	c.JSON(http.StatusOK, contracts)
}

// Get handles GET /api/contracts/:id.
func (h *ContractHandler) Get(c *gin.Context) {
	contract, err := h.contractService.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Contrato no encontrado"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error obteniendo contrato"})
		return
	}
	c.JSON(http.StatusOK, contract)
}

// Update handles PUT /api/contracts/:id with a partial body.
func (h *ContractHandler) Update(c *gin.Context) {
	var req dto.UpdateContractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Datos de contrato inválidos"})
		return
	}

	updates := req.Updates()
	if len(updates) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Nada que actualizar"})
		return
	}

	contract, err := h.contractService.Update(c.Request.Context(), c.Param("id"), updates)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Contrato no encontrado"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error actualizando contrato"})
		return
	}
	c.JSON(http.StatusOK, contract)
}

// Delete handles DELETE /api/contracts/:id.
func (h *ContractHandler) Delete(c *gin.Context) {
	if err := h.contractService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Contrato no encontrado"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error eliminando contrato"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
