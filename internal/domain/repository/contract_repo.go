package repository

import "github.com/yourusername/hr-api/internal/domain/entity"

// ContractRepository persists labor contracts.
type ContractRepository interface {
	Create(contract *entity.Contract) error
	GetByID(id string) (*entity.Contract, error)
	// List returns all contracts ordered by start date.
	List() ([]entity.Contract, error)
	ListByEmployeeID(employeeID string) ([]entity.Contract, error)
	Update(id string, updates map[string]interface{}) error
	Delete(id string) error
}
