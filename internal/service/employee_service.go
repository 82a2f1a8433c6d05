package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/yourusername/hr-api/internal/domain/entity"
	"github.com/yourusername/hr-api/internal/domain/repository"
	apperrors "github.com/yourusername/hr-api/internal/pkg/errors"
)

const (
	rosterCacheKey = "employees:roster"
	rosterCacheTTL = 60 * time.Second
)

// SearchResult bundles an employee with their contracts, the shape the
// search tab of the dashboard renders.
type SearchResult struct {
	Employee       *entity.Employee  `json:"employee"`
	TotalContracts int               `json:"totalContratos"`
	Contracts      []entity.Contract `json:"contratos"`
}

// EmployeeService handles personnel records and the document/name search.
type EmployeeService struct {
	employeeRepo repository.EmployeeRepository
	contractRepo repository.ContractRepository
	cacheRepo    repository.CacheRepository
}

func NewEmployeeService(
	employeeRepo repository.EmployeeRepository,
	contractRepo repository.ContractRepository,
	cacheRepo repository.CacheRepository,
) *EmployeeService {
	return &EmployeeService{
		employeeRepo: employeeRepo,
		contractRepo: contractRepo,
		cacheRepo:    cacheRepo,
	}
}

// Create validates and stores a new personnel record.
func (s *EmployeeService) Create(ctx context.Context, employee *entity.Employee) error {
	if err := validateEmployee(employee); err != nil {
		return err
	}
	if err := s.employeeRepo.Create(employee); err != nil {
		return fmt.Errorf("failed to create employee: %w", err)
	}
	s.invalidateRoster()
	return nil
}

func (s *EmployeeService) GetByID(ctx context.Context, id string) (*entity.Employee, error) {
	return s.employeeRepo.GetByID(id)
}

// List returns the roster ordered by first name, served from cache when
// fresh. Cache failures degrade to a direct read.
func (s *EmployeeService) List(ctx context.Context) ([]entity.Employee, error) {
	if s.cacheRepo != nil {
		var cached []entity.Employee
		if err := s.cacheRepo.GetJSON(rosterCacheKey, &cached); err == nil {
			return cached, nil
		}
	}

	employees, err := s.employeeRepo.List()
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}

	if s.cacheRepo != nil {
		if err := s.cacheRepo.SetJSON(rosterCacheKey, employees, rosterCacheTTL); err != nil {
			log.Printf("[EmployeeService] roster cache write failed: %v", err)
		}
	}
	return employees, nil
}

func (s *EmployeeService) Update(ctx context.Context, id string, updates map[string]interface{}) (*entity.Employee, error) {
	if status, ok := updates["status"].(string); ok {
		probe := entity.Employee{Status: status}
		if !probe.HasValidStatus() {
			return nil, fmt.Errorf("%w: estado inválido %q", apperrors.ErrValidation, status)
		}
	}
	if err := s.employeeRepo.Update(id, updates); err != nil {
		return nil, err
	}
	s.invalidateRoster()
	return s.employeeRepo.GetByID(id)
}

func (s *EmployeeService) Delete(ctx context.Context, id string) error {
	if err := s.employeeRepo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete employee: %w", err)
	}
	s.invalidateRoster()
	return nil
}

// Search resolves q against the document number first and the first name
// second, then attaches the employee's contracts.
func (s *EmployeeService) Search(ctx context.Context, q string) (*SearchResult, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return nil, fmt.Errorf("%w: parámetro q requerido", apperrors.ErrValidation)
	}

	employee, err := s.employeeRepo.GetByDocumentNumber(q)
	if errors.Is(err, apperrors.ErrNotFound) {
		employee, err = s.employeeRepo.GetByFirstName(q)
	}
	if err != nil {
		return nil, err
	}

	contracts, err := s.contractRepo.ListByEmployeeID(employee.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load contracts: %w", err)
	}

	return &SearchResult{
		Employee:       employee,
		TotalContracts: len(contracts),
		Contracts:      contracts,
	}, nil
}

func (s *EmployeeService) invalidateRoster() {
	if s.cacheRepo == nil {
		return
	}
	if err := s.cacheRepo.Delete(rosterCacheKey); err != nil {
		log.Printf("[EmployeeService] roster cache invalidation failed: %v", err)
	}
}

func validateEmployee(e *entity.Employee) error {
	missing := func(field string) error {
		return fmt.Errorf("%w: falta el campo %s", apperrors.ErrValidation, field)
	}
	switch {
	case strings.TrimSpace(e.DocumentNumber) == "":
		return missing("NRO_DOCUMENTO")
	case strings.TrimSpace(e.FirstName) == "":
		return missing("NOMBRE")
	case strings.TrimSpace(e.LastName) == "":
		return missing("APELLIDO")
	case e.Age <= 0:
		return fmt.Errorf("%w: EDAD debe ser positiva", apperrors.ErrValidation)
	case strings.TrimSpace(e.Gender) == "":
		return missing("GENERO")
	case strings.TrimSpace(e.Position) == "":
		return missing("CARGO")
	case strings.TrimSpace(e.Email) == "":
		return missing("CORREO")
	case strings.TrimSpace(e.ContactNumber) == "":
		return missing("NRO_CONTACTO")
	case !e.HasValidStatus():
		return fmt.Errorf("%w: ESTADO debe ser %q o %q", apperrors.ErrValidation,
			entity.EmployeeStatusActive, entity.EmployeeStatusRetired)
	}
	return nil
}
