package postgres

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/yourusername/hr-api/internal/domain/entity"
	apperrors "github.com/yourusername/hr-api/internal/pkg/errors"
)

// ContractRepo implements repository.ContractRepository.
type ContractRepo struct {
	db *gorm.DB
}

func NewContractRepo(db *gorm.DB) *ContractRepo {
	return &ContractRepo{db: db}
}

func (r *ContractRepo) Create(contract *entity.Contract) error {
	return r.db.Create(contract).Error
}

func (r *ContractRepo) GetByID(id string) (*entity.Contract, error) {
	var contract entity.Contract
	err := r.db.Where("id = ?", id).First(&contract).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &contract, nil
}

func (r *ContractRepo) List() ([]entity.Contract, error) {
	var contracts []entity.Contract
	err := r.db.Order("start_date ASC").Find(&contracts).Error
	if err != nil {
		return nil, err
	}
	return contracts, nil
}

func (r *ContractRepo) ListByEmployeeID(employeeID string) ([]entity.Contract, error) {
	var contracts []entity.Contract
	err := r.db.Where("employee_id = ?", employeeID).Find(&contracts).Error
	if err != nil {
		return nil, err
	}
	return contracts, nil
}

func (r *ContractRepo) Update(id string, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now()
	result := r.db.Model(&entity.Contract{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *ContractRepo) Delete(id string) error {
	return r.db.Where("id = ?", id).Delete(&entity.Contract{}).Error
}
