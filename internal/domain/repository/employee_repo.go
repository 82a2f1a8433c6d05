package repository

import "github.com/yourusername/hr-api/internal/domain/entity"

// EmployeeRepository persists personnel records.
type EmployeeRepository interface {
	Create(employee *entity.Employee) error
	GetByID(id string) (*entity.Employee, error)
	GetByDocumentNumber(document string) (*entity.Employee, error)
	GetByFirstName(name string) (*entity.Employee, error)
	List() ([]entity.Employee, error)
	Update(id string, updates map[string]interface{}) error
	Delete(id string) error
}
