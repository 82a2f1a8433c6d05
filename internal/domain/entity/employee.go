package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Employee states as kept by the payroll office.
const (
	EmployeeStatusActive  = "activo"
	EmployeeStatusRetired = "retirado"
)

// Employee is a personnel record of the rice mill. JSON field names follow
// the document layout the HR office already uses.
type Employee struct {
	ID             string    `gorm:"type:uuid;primaryKey" json:"id"`
	DocumentNumber string    `gorm:"size:30;not null;index" json:"NRO_DOCUMENTO"`
	FirstName      string    `gorm:"size:100;not null;index" json:"NOMBRE"`
	LastName       string    `gorm:"size:100;not null" json:"APELLIDO"`
	Age            int       `gorm:"not null" json:"EDAD"`
	Gender         string    `gorm:"size:20;not null" json:"GENERO"`
	Position       string    `gorm:"size:100;not null" json:"CARGO"`
	Email          string    `gorm:"size:100;not null" json:"CORREO"`
	PhotoURL       string    `gorm:"size:255;not null;default:''" json:"FOTO_URL"`
	ContactNumber  string    `gorm:"size:30;not null" json:"NRO_CONTACTO"`
	Status         string    `gorm:"size:20;not null" json:"ESTADO"`
	Observations   string    `gorm:"type:text;not null;default:''" json:"OBSERVACIONES"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func (Employee) TableName() string {
	return "employees"
}

func (e *Employee) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	return nil
}

func (e *Employee) FullName() string {
	return strings.TrimSpace(e.FirstName + " " + e.LastName)
}

// HasValidStatus reports whether the status is one of the two values the
// payroll office recognizes.
func (e *Employee) HasValidStatus() bool {
	return e.Status == EmployeeStatusActive || e.Status == EmployeeStatusRetired
}
