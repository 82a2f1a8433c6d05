package dto

// CreateEmployeeRequest mirrors the document layout used by the HR office.
type CreateEmployeeRequest struct {
	DocumentNumber string `json:"NRO_DOCUMENTO" binding:"required"`
	FirstName      string `json:"NOMBRE" binding:"required"`
	LastName       string `json:"APELLIDO" binding:"required"`
	Age            int    `json:"EDAD" binding:"required"`
	Gender         string `json:"GENERO" binding:"required"`
	Position       string `json:"CARGO" binding:"required"`
	Email          string `json:"CORREO" binding:"required"`
	PhotoURL       string `json:"FOTO_URL"`
	ContactNumber  string `json:"NRO_CONTACTO" binding:"required"`
	Status         string `json:"ESTADO" binding:"required"`
	Observations   string `json:"OBSERVACIONES"`
}

// UpdateEmployeeRequest carries a partial update; only present fields are
// written.
type UpdateEmployeeRequest struct {
	DocumentNumber *string `json:"NRO_DOCUMENTO"`
	FirstName      *string `json:"NOMBRE"`
	LastName       *string `json:"APELLIDO"`
	Age            *int    `json:"EDAD"`
	Gender         *string `json:"GENERO"`
	Position       *string `json:"CARGO"`
	Email          *string `json:"CORREO"`
	PhotoURL       *string `json:"FOTO_URL"`
	ContactNumber  *string `json:"NRO_CONTACTO"`
	Status         *string `json:"ESTADO"`
	Observations   *string `json:"OBSERVACIONES"`
}

// Updates converts the request into a column update map.
func (r *UpdateEmployeeRequest) Updates() map[string]interface{} {
	updates := map[string]interface{}{}
	if r.DocumentNumber != nil {
		updates["document_number"] = *r.DocumentNumber
	}
	if r.FirstName != nil {
		updates["first_name"] = *r.FirstName
	}
	if r.LastName != nil {
		updates["last_name"] = *r.LastName
	}
	if r.Age != nil {
		updates["age"] = *r.Age
	}
	if r.Gender != nil {
		updates["gender"] = *r.Gender
	}
	if r.Position != nil {
		updates["position"] = *r.Position
	}
	if r.Email != nil {
		updates["email"] = *r.Email
	}
	if r.PhotoURL != nil {
		updates["photo_url"] = *r.PhotoURL
	}
	if r.ContactNumber != nil {
		updates["contact_number"] = *r.ContactNumber
	}
	if r.Status != nil {
		updates["status"] = *r.Status
	}
	if r.Observations != nil {
		updates["observations"] = *r.Observations
	}
	return updates
}

// CreateContractRequest mirrors the contract sheet fields.
type CreateContractRequest struct {
	StartDate    string  `json:"Fecha_inicio" binding:"required"`
	EndDate      string  `json:"Fecha_fin" binding:"required"`
	Value        float64 `json:"Valor" binding:"required"`
	EmployeeID   string  `json:"employeeId" binding:"required"`
	EmployeeName string  `json:"Empleado" binding:"required"`
}

// UpdateContractRequest carries a partial contract update.
type UpdateContractRequest struct {
	StartDate    *string  `json:"Fecha_inicio"`
	EndDate      *string  `json:"Fecha_fin"`
	Value        *float64 `json:"Valor"`
	EmployeeID   *string  `json:"employeeId"`
	EmployeeName *string  `json:"Empleado"`
}

// Updates converts the request into a column update map.
func (r *UpdateContractRequest) Updates() map[string]interface{} {
	updates := map[string]interface{}{}
	if r.StartDate != nil {
		updates["start_date"] = *r.StartDate
	}
	if r.EndDate != nil {
		updates["end_date"] = *r.EndDate
	}
	if r.Value != nil {
		updates["value"] = *r.Value
	}
	if r.EmployeeID != nil {
		updates["employee_id"] = *r.EmployeeID
	}
	if r.EmployeeName != nil {
		updates["employee_name"] = *r.EmployeeName
	}
	return updates
}
