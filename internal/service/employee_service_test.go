package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/hr-api/internal/domain/entity"
	apperrors "github.com/yourusername/hr-api/internal/pkg/errors"
)

// MockEmployeeRepository implements repository.EmployeeRepository.
type MockEmployeeRepository struct {
	mock.Mock
}

func (m *MockEmployeeRepository) Create(employee *entity.Employee) error {
	args := m.Called(employee)
	return args.Error(0)
}

func (m *MockEmployeeRepository) GetByID(id string) (*entity.Employee, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Employee), args.Error(1)
}

func (m *MockEmployeeRepository) GetByDocumentNumber(document string) (*entity.Employee, error) {
	args := m.Called(document)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Employee), args.Error(1)
}

func (m *MockEmployeeRepository) GetByFirstName(name string) (*entity.Employee, error) {
	args := m.Called(name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Employee), args.Error(1)
}

func (m *MockEmployeeRepository) List() ([]entity.Employee, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Employee), args.Error(1)
}

func (m *MockEmployeeRepository) Update(id string, updates map[string]interface{}) error {
	args := m.Called(id, updates)
	return args.Error(0)
}

func (m *MockEmployeeRepository) Delete(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

// MockContractRepository implements repository.ContractRepository.
type MockContractRepository struct {
	mock.Mock
}

func (m *MockContractRepository) Create(contract *entity.Contract) error {
	args := m.Called(contract)
	return args.Error(0)
}

func (m *MockContractRepository) GetByID(id string) (*entity.Contract, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Contract), args.Error(1)
}

func (m *MockContractRepository) List() ([]entity.Contract, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Contract), args.Error(1)
}

func (m *MockContractRepository) ListByEmployeeID(employeeID string) ([]entity.Contract, error) {
	args := m.Called(employeeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Contract), args.Error(1)
}

func (m *MockContractRepository) Update(id string, updates map[string]interface{}) error {
	args := m.Called(id, updates)
	return args.Error(0)
}

func (m *MockContractRepository) Delete(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

// fakeCache is an in-memory repository.CacheRepository without expiry.
type fakeCache struct {
	data map[string][]byte
}

func newFakeCache() *fakeCache {
	return &fakeCache{data: map[string][]byte{}}
}

func (f *fakeCache) Get(key string) (string, error) {
	v, ok := f.data[key]
	if !ok {
		return "", apperrors.ErrNotFound
	}
	return string(v), nil
}

func (f *fakeCache) Set(key string, value interface{}, expiration time.Duration) error {
	f.data[key] = []byte(value.(string))
	return nil
}

func (f *fakeCache) Delete(key string) error {
	delete(f.data, key)
	return nil
}

func (f *fakeCache) SetJSON(key string, value interface{}, expiration time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	f.data[key] = data
	return nil
}

func (f *fakeCache) GetJSON(key string, dest interface{}) error {
	v, ok := f.data[key]
	if !ok {
		return apperrors.ErrNotFound
	}
	return json.Unmarshal(v, dest)
}

func (f *fakeCache) Exists(key string) (bool, error) {
	_, ok := f.data[key]
	return ok, nil
}

func validEmployee() *entity.Employee {
	return &entity.Employee{
		DocumentNumber: "10203040",
		FirstName:      "Ana",
		LastName:       "Pérez",
		Age:            34,
		Gender:         "femenino",
		Position:       "Operaria de molino",
		Email:          "ana@molino.com",
		ContactNumber:  "3001234567",
		Status:         entity.EmployeeStatusActive,
	}
}

func TestEmployeeService_Create_Valid(t *testing.T) {
	empRepo := new(MockEmployeeRepository)
	empRepo.On("Create", mock.AnythingOfType("*entity.Employee")).Return(nil)

	svc := NewEmployeeService(empRepo, new(MockContractRepository), newFakeCache())
	err := svc.Create(context.Background(), validEmployee())

	assert.NoError(t, err)
	empRepo.AssertExpectations(t)
}

func TestEmployeeService_Create_Validation(t *testing.T) {
	svc := NewEmployeeService(new(MockEmployeeRepository), new(MockContractRepository), nil)
	ctx := context.Background()

	tests := []struct {
		name   string
		mutate func(*entity.Employee)
	}{
		{"missing document", func(e *entity.Employee) { e.DocumentNumber = "" }},
		{"missing first name", func(e *entity.Employee) { e.FirstName = " " }},
		{"missing last name", func(e *entity.Employee) { e.LastName = "" }},
		{"non-positive age", func(e *entity.Employee) { e.Age = 0 }},
		{"missing position", func(e *entity.Employee) { e.Position = "" }},
		{"missing email", func(e *entity.Employee) { e.Email = "" }},
		{"missing contact", func(e *entity.Employee) { e.ContactNumber = "" }},
		{"bad status", func(e *entity.Employee) { e.Status = "suspendido" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := validEmployee()
			tt.mutate(e)
			err := svc.Create(ctx, e)
			assert.ErrorIs(t, err, apperrors.ErrValidation)
		})
	}
}

func TestEmployeeService_List_UsesCache(t *testing.T) {
	empRepo := new(MockEmployeeRepository)
	roster := []entity.Employee{*validEmployee()}
	empRepo.On("List").Return(roster, nil).Once()

	cache := newFakeCache()
	svc := NewEmployeeService(empRepo, new(MockContractRepository), cache)
	ctx := context.Background()

	first, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, first, 1)

	// Second call is served from cache; the repo expectation is Once().
	second, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, first[0].DocumentNumber, second[0].DocumentNumber)
	empRepo.AssertExpectations(t)
}

func TestEmployeeService_Create_InvalidatesRosterCache(t *testing.T) {
	empRepo := new(MockEmployeeRepository)
	empRepo.On("Create", mock.Anything).Return(nil)

	cache := newFakeCache()
	require.NoError(t, cache.SetJSON(rosterCacheKey, []entity.Employee{}, time.Minute))

	svc := NewEmployeeService(empRepo, new(MockContractRepository), cache)
	require.NoError(t, svc.Create(context.Background(), validEmployee()))

	exists, _ := cache.Exists(rosterCacheKey)
	assert.False(t, exists)
}

func TestEmployeeService_Search_ByDocument(t *testing.T) {
	empRepo := new(MockEmployeeRepository)
	conRepo := new(MockContractRepository)
	emp := validEmployee()
	emp.ID = "emp-1"
	empRepo.On("GetByDocumentNumber", "10203040").Return(emp, nil)
	conRepo.On("ListByEmployeeID", "emp-1").Return([]entity.Contract{{ID: "c-1"}}, nil)

	svc := NewEmployeeService(empRepo, conRepo, nil)
	result, err := svc.Search(context.Background(), "10203040")

	require.NoError(t, err)
	assert.Equal(t, "emp-1", result.Employee.ID)
	assert.Equal(t, 1, result.TotalContracts)
	empRepo.AssertNotCalled(t, "GetByFirstName", mock.Anything)
}

func TestEmployeeService_Search_FallsBackToName(t *testing.T) {
	empRepo := new(MockEmployeeRepository)
	conRepo := new(MockContractRepository)
	emp := validEmployee()
	emp.ID = "emp-2"
	empRepo.On("GetByDocumentNumber", "Ana").Return(nil, apperrors.ErrNotFound)
	empRepo.On("GetByFirstName", "Ana").Return(emp, nil)
	conRepo.On("ListByEmployeeID", "emp-2").Return([]entity.Contract{}, nil)

	svc := NewEmployeeService(empRepo, conRepo, nil)
	result, err := svc.Search(context.Background(), "Ana")

	require.NoError(t, err)
	assert.Equal(t, "emp-2", result.Employee.ID)
	assert.Equal(t, 0, result.TotalContracts)
}

func TestEmployeeService_Search_NotFound(t *testing.T) {
	empRepo := new(MockEmployeeRepository)
	empRepo.On("GetByDocumentNumber", "zzz").Return(nil, apperrors.ErrNotFound)
	empRepo.On("GetByFirstName", "zzz").Return(nil, apperrors.ErrNotFound)

	svc := NewEmployeeService(empRepo, new(MockContractRepository), nil)
	_, err := svc.Search(context.Background(), "zzz")

	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestEmployeeService_Search_EmptyQuery(t *testing.T) {
	svc := NewEmployeeService(new(MockEmployeeRepository), new(MockContractRepository), nil)
	_, err := svc.Search(context.Background(), "  ")
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}
