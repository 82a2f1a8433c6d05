package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Contract is a labor contract of an employee. EmployeeName is denormalized
// so reports stay readable even after the employee record changes.
type Contract struct {
	ID           string    `gorm:"type:uuid;primaryKey" json:"id"`
	StartDate    string    `gorm:"size:10;not null;index" json:"Fecha_inicio"`
	EndDate      string    `gorm:"size:10;not null" json:"Fecha_fin"`
	Value        float64   `gorm:"not null" json:"Valor"`
	EmployeeID   string    `gorm:"type:uuid;not null;index" json:"employeeId"`
	EmployeeName string    `gorm:"size:200;not null" json:"Empleado"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (Contract) TableName() string {
	return "contracts"
}

func (c *Contract) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}
