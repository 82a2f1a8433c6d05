package postgres

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/yourusername/hr-api/internal/domain/entity"
	apperrors "github.com/yourusername/hr-api/internal/pkg/errors"
)

// EmployeeRepo implements repository.EmployeeRepository.
type EmployeeRepo struct {
	db *gorm.DB
}

func NewEmployeeRepo(db *gorm.DB) *EmployeeRepo {
	return &EmployeeRepo{db: db}
}

func (r *EmployeeRepo) Create(employee *entity.Employee) error {
	return r.db.Create(employee).Error
}

func (r *EmployeeRepo) GetByID(id string) (*entity.Employee, error) {
	var employee entity.Employee
	err := r.db.Where("id = ?", id).First(&employee).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &employee, nil
}

func (r *EmployeeRepo) GetByDocumentNumber(document string) (*entity.Employee, error) {
	var employee entity.Employee
	err := r.db.Where("document_number = ?", document).First(&employee).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &employee, nil
}

func (r *EmployeeRepo) GetByFirstName(name string) (*entity.Employee, error) {
	var employee entity.Employee
	err := r.db.Where("first_name = ?", name).First(&employee).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &employee, nil
}

// List returns the full roster ordered by first name, matching the order
// the dashboard table expects.
func (r *EmployeeRepo) List() ([]entity.Employee, error) {
	var employees []entity.Employee
	err := r.db.Order("first_name ASC").Find(&employees).Error
	if err != nil {
		return nil, err
	}
	return employees, nil
}

func (r *EmployeeRepo) Update(id string, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now()
	result := r.db.Model(&entity.Employee{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *EmployeeRepo) Delete(id string) error {
	return r.db.Where("id = ?", id).Delete(&entity.Employee{}).Error
}
