package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/yourusername/hr-api/internal/domain/entity"
	"github.com/yourusername/hr-api/internal/domain/repository"
	apperrors "github.com/yourusername/hr-api/internal/pkg/errors"
)

// ContractService handles labor contracts.
type ContractService struct {
	contractRepo repository.ContractRepository
	employeeRepo repository.EmployeeRepository
}

func NewContractService(contractRepo repository.ContractRepository, employeeRepo repository.EmployeeRepository) *ContractService {
	return &ContractService{
		contractRepo: contractRepo,
		employeeRepo: employeeRepo,
	}
}

// Create validates the contract and checks the referenced employee exists.
func (s *ContractService) Create(ctx context.Context, contract *entity.Contract) error {
	if err := validateContract(contract); err != nil {
		return err
	}
	if _, err := s.employeeRepo.GetByID(contract.EmployeeID); err != nil {
		return err
	}
	if err := s.contractRepo.Create(contract); err != nil {
		return fmt.Errorf("failed to create contract: %w", err)
	}
	return nil
}

func (s *ContractService) GetByID(ctx context.Context, id string) (*entity.Contract, error) {
	return s.contractRepo.GetByID(id)
}

// List returns every contract ordered by start date, or only the given
// employee's contracts when employeeID is set.
func (s *ContractService) List(ctx context.Context, employeeID string) ([]entity.Contract, error) {
	if employeeID != "" {
		return s.contractRepo.ListByEmployeeID(employeeID)
	}
	return s.contractRepo.List()
}

func (s *ContractService) Update(ctx context.Context, id string, updates map[string]interface{}) (*entity.Contract, error) {
	if err := s.contractRepo.Update(id, updates); err != nil {
		return nil, err
	}
	return s.contractRepo.GetByID(id)
}

func (s *ContractService) Delete(ctx context.Context, id string) error {
	return s.contractRepo.Delete(id)
}

func validateContract(c *entity.Contract) error {
	missing := func(field string) error {
		return fmt.Errorf("%w: falta el campo %s", apperrors.ErrValidation, field)
	}
	switch {
	case strings.TrimSpace(c.StartDate) == "":
		return missing("Fecha_inicio")
	case strings.TrimSpace(c.EndDate) == "":
		return missing("Fecha_fin")
	case c.Value <= 0:
		return fmt.Errorf("%w: Valor debe ser positivo", apperrors.ErrValidation)
	case strings.TrimSpace(c.EmployeeID) == "":
		return missing("employeeId")
	case strings.TrimSpace(c.EmployeeName) == "":
		return missing("Empleado")
	}
	return nil
}
