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

// EmployeeHandler serves the personnel records endpoints.
type EmployeeHandler struct {
	employeeService *service.EmployeeService
}

func NewEmployeeHandler(employeeService *service.EmployeeService) *EmployeeHandler {
	return &EmployeeHandler{employeeService: employeeService}
}

// Create handles POST /api/employees.
func (h *EmployeeHandler) Create(c *gin.Context) {
	var req dto.CreateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Datos de empleado incompletos"})
		return
	}

	employee := &entity.Employee{
		DocumentNumber: req.DocumentNumber,
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Age:            req.Age,
		Gender:         req.Gender,
		Position:       req.Position,
		Email:          req.Email,
		PhotoURL:       req.PhotoURL,
		ContactNumber:  req.ContactNumber,
		Status:         req.Status,
		Observations:   req.Observations,
	}

	if err := h.employeeService.Create(c.Request.Context(), employee); err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error creando empleado"})
		return
	}

	c.JSON(http.StatusCreated, employee)
}

// List handles GET /api/employees.
func (h *EmployeeHandler) List(c *gin.Context) {
	employees, err := h.employeeService.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error listando empleados"})
		return
	}
	c.JSON(http.StatusOK, employees)
}

// Get handles GET /api/employees/:id.
func (h *EmployeeHandler) Get(c *gin.Context) {
	employee, err := h.employeeService.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Empleado no encontrado"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error obteniendo empleado"})
		return
	}
	c.JSON(http.StatusOK, employee)
}

// Update handles PUT /api/employees/:id with a partial body.
func (h *EmployeeHandler) Update(c *gin.Context) {
	var req dto.UpdateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Datos de empleado inválidos"})
		return
	}

	updates := req.Updates()
	if len(updates) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Nada que actualizar"})
		return
	}

	employee, err := h.employeeService.Update(c.Request.Context(), c.Param("id"), updates)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Empleado no encontrado"})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error actualizando empleado"})
		}
		return
	}
	c.JSON(http.StatusOK, employee)
}

// Delete handles DELETE /api/employees/:id.
func (h *EmployeeHandler) Delete(c *gin.Context) {
	if err := h.employeeService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Empleado no encontrado"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error eliminando empleado"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// Search handles GET /api/search?q=..., matching document number first and
// first name second.
func (h *EmployeeHandler) Search(c *gin.Context) {
	result, err := h.employeeService.Search(c.Request.Context(), c.Query("q"))
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Parámetro q requerido"})
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Empleado no encontrado"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error en la búsqueda"})
		}
		return
	}
	c.JSON(http.StatusOK, result)
}
