package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/hr-api/internal/domain/entity"
	apperrors "github.com/yourusername/hr-api/internal/pkg/errors"
)

// ============================================================================
// Mocks and fakes
// ============================================================================

// MockOtpRepository implements repository.OtpRepository for error-path tests.
type MockOtpRepository struct {
	mock.Mock
}

func (m *MockOtpRepository) Create(code *entity.OtpCode) error {
	args := m.Called(code)
	return args.Error(0)
}

func (m *MockOtpRepository) GetRecentByEmail(email string, limit int) ([]entity.OtpCode, error) {
	args := m.Called(email, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.OtpCode), args.Error(1)
}

func (m *MockOtpRepository) Consume(id string, usedAt time.Time) error {
	args := m.Called(id, usedAt)
	return args.Error(0)
}

// fakeOtpStore is an in-memory store implementing the same append/query/
// update contract, for lifecycle tests spanning several operations.
type fakeOtpStore struct {
	records []entity.OtpCode
	nextID  int
}

func (f *fakeOtpStore) Create(code *entity.OtpCode) error {
	f.nextID++
	code.ID = "otp-" + strconv.Itoa(f.nextID)
	f.records = append(f.records, *code)
	return nil
}

func (f *fakeOtpStore) GetRecentByEmail(email string, limit int) ([]entity.OtpCode, error) {
	var out []entity.OtpCode
	// Newest first, like the real repository.
	for i := len(f.records) - 1; i >= 0 && len(out) < limit; i-- {
		if f.records[i].Email == email {
			out = append(out, f.records[i])
		}
	}
	return out, nil
}

func (f *fakeOtpStore) Consume(id string, usedAt time.Time) error {
	for i := range f.records {
		if f.records[i].ID == id {
			if f.records[i].Used {
				return apperrors.ErrConflict
			}
			f.records[i].Used = true
			at := usedAt
			f.records[i].UsedAt = &at
			return nil
		}
	}
	return apperrors.ErrNotFound
}

func newOtpService(t *testing.T, store *fakeOtpStore) *OtpService {
	t.Helper()
	svc, err := NewOtpService(store, 10*time.Minute, 20)
	require.NoError(t, err)
	return svc
}

// ============================================================================
// Issue
// ============================================================================

func TestOtpService_Issue_GeneratesSixDigitCode(t *testing.T) {
	store := &fakeOtpStore{}
	svc := newOtpService(t, store)

	record, err := svc.Issue(context.Background(), "a@x.com")
	require.NoError(t, err)

	assert.Len(t, record.Code, 6)
	n, convErr := strconv.Atoi(record.Code)
	require.NoError(t, convErr)
	assert.GreaterOrEqual(t, n, 100000)
	assert.LessOrEqual(t, n, 999999)
	assert.False(t, record.Used)
	assert.NotEmpty(t, record.ID)
}

func TestOtpService_Issue_NormalizesEmail(t *testing.T) {
	store := &fakeOtpStore{}
	svc := newOtpService(t, store)

	record, err := svc.Issue(context.Background(), "  Ana.Perez@Molino.COM ")
	require.NoError(t, err)
	assert.Equal(t, "ana.perez@molino.com", record.Email)

	// Verification against any casing of the same address must match.
	id, err := svc.Verify(context.Background(), "ANA.PEREZ@molino.com", record.Code)
	require.NoError(t, err)
	assert.Equal(t, record.ID, id)
}

func TestOtpService_Issue_SetsTTL(t *testing.T) {
	store := &fakeOtpStore{}
	svc := newOtpService(t, store)

	before := time.Now()
	record, err := svc.Issue(context.Background(), "a@x.com")
	require.NoError(t, err)
	after := time.Now()

	assert.False(t, record.ExpiresAt.Before(before.Add(10*time.Minute)))
	assert.False(t, record.ExpiresAt.After(after.Add(10*time.Minute)))
}

func TestOtpService_Issue_EmptyEmail(t *testing.T) {
	svc := newOtpService(t, &fakeOtpStore{})

	_, err := svc.Issue(context.Background(), "   ")
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestOtpService_Issue_StoreFailurePropagates(t *testing.T) {
	repo := new(MockOtpRepository)
	repo.On("Create", mock.AnythingOfType("*entity.OtpCode")).Return(errors.New("connection refused"))

	svc, err := NewOtpService(repo, 10*time.Minute, 20)
	require.NoError(t, err)

	_, err = svc.Issue(context.Background(), "a@x.com")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
	repo.AssertExpectations(t)
}

func TestOtpService_Issue_DoesNotInvalidatePriorCodes(t *testing.T) {
	store := &fakeOtpStore{}
	svc := newOtpService(t, store)
	ctx := context.Background()

	first, err := svc.Issue(ctx, "a@x.com")
	require.NoError(t, err)
	second, err := svc.Issue(ctx, "a@x.com")
	require.NoError(t, err)

	// Both codes remain independently verifiable.
	id1, err := svc.Verify(ctx, "a@x.com", first.Code)
	require.NoError(t, err)
	assert.Equal(t, first.ID, id1)

	id2, err := svc.Verify(ctx, "a@x.com", second.Code)
	require.NoError(t, err)
	assert.Equal(t, second.ID, id2)

	// Consuming one leaves the other usable.
	require.NoError(t, svc.Consume(ctx, id1))

	_, err = svc.Verify(ctx, "a@x.com", first.Code)
	assert.ErrorIs(t, err, ErrInvalidOtpCode)

	_, err = svc.Verify(ctx, "a@x.com", second.Code)
	assert.NoError(t, err)
}

// ============================================================================
// Verify
// ============================================================================

func TestOtpService_Verify_FullLifecycle(t *testing.T) {
	store := &fakeOtpStore{}
	svc := newOtpService(t, store)
	ctx := context.Background()

	record, err := svc.Issue(ctx, "a@x.com")
	require.NoError(t, err)

	matchID, err := svc.Verify(ctx, "a@x.com", record.Code)
	require.NoError(t, err)
	assert.Equal(t, record.ID, matchID)

	require.NoError(t, svc.Consume(ctx, matchID))

	_, err = svc.Verify(ctx, "a@x.com", record.Code)
	assert.ErrorIs(t, err, ErrInvalidOtpCode)
}

func TestOtpService_Verify_IsReadOnly(t *testing.T) {
	store := &fakeOtpStore{}
	svc := newOtpService(t, store)
	ctx := context.Background()

	record, err := svc.Issue(ctx, "a@x.com")
	require.NoError(t, err)

	// N verifications do not change the outcome of the N+1th.
	for i := 0; i < 5; i++ {
		id, err := svc.Verify(ctx, "a@x.com", record.Code)
		require.NoError(t, err, "verification %d", i+1)
		assert.Equal(t, record.ID, id)
	}
	assert.False(t, store.records[0].Used)
}

func TestOtpService_Verify_WrongCode(t *testing.T) {
	store := &fakeOtpStore{}
	svc := newOtpService(t, store)
	ctx := context.Background()

	_, err := svc.Issue(ctx, "a@x.com")
	require.NoError(t, err)

	_, err = svc.Verify(ctx, "a@x.com", "000000")
	assert.ErrorIs(t, err, ErrInvalidOtpCode)
}

func TestOtpService_Verify_UnknownEmailNoSideEffects(t *testing.T) {
	store := &fakeOtpStore{}
	svc := newOtpService(t, store)

	_, err := svc.Verify(context.Background(), "nobody@x.com", "000000")
	assert.ErrorIs(t, err, ErrInvalidOtpCode)
	assert.Empty(t, store.records)
}

func TestOtpService_Verify_IsolationByEmail(t *testing.T) {
	store := &fakeOtpStore{}
	svc := newOtpService(t, store)
	ctx := context.Background()

	recordB, err := svc.Issue(ctx, "b@x.com")
	require.NoError(t, err)

	// A code issued for b@x.com never matches for a@x.com, even inside the
	// TTL window.
	_, err = svc.Verify(ctx, "a@x.com", recordB.Code)
	assert.ErrorIs(t, err, ErrInvalidOtpCode)
}

func TestOtpService_Verify_ExpiredCode(t *testing.T) {
	repo := new(MockOtpRepository)
	expired := entity.OtpCode{
		ID:        "otp-1",
		Email:     "a@x.com",
		Code:      "123456",
		ExpiresAt: time.Now().Add(-1 * time.Minute), // issued 11 min ago with a 10 min TTL
		Used:      false,
	}
	repo.On("GetRecentByEmail", "a@x.com", 20).Return([]entity.OtpCode{expired}, nil)

	svc, err := NewOtpService(repo, 10*time.Minute, 20)
	require.NoError(t, err)

	_, err = svc.Verify(context.Background(), "a@x.com", "123456")
	assert.ErrorIs(t, err, ErrInvalidOtpCode)
}

func TestOtpService_Verify_SkipsUsedAndExpired(t *testing.T) {
	now := time.Now()
	usedAt := now.Add(-2 * time.Minute)
	repo := new(MockOtpRepository)
	repo.On("GetRecentByEmail", "a@x.com", 20).Return([]entity.OtpCode{
		{ID: "otp-3", Email: "a@x.com", Code: "111111", ExpiresAt: now.Add(5 * time.Minute), Used: true, UsedAt: &usedAt},
		{ID: "otp-2", Email: "a@x.com", Code: "111111", ExpiresAt: now.Add(-5 * time.Minute), Used: false},
		{ID: "otp-1", Email: "a@x.com", Code: "111111", ExpiresAt: now.Add(5 * time.Minute), Used: false},
	}, nil)

	svc, err := NewOtpService(repo, 10*time.Minute, 20)
	require.NoError(t, err)

	// The consumed and expired records are skipped; the remaining valid one
	// matches.
	id, err := svc.Verify(context.Background(), "a@x.com", "111111")
	require.NoError(t, err)
	assert.Equal(t, "otp-1", id)
}

func TestOtpService_Verify_NewestValidRecordWins(t *testing.T) {
	store := &fakeOtpStore{}
	svc := newOtpService(t, store)
	ctx := context.Background()

	// Force identical codes on two live records.
	require.NoError(t, store.Create(&entity.OtpCode{Email: "a@x.com", Code: "222222", ExpiresAt: time.Now().Add(10 * time.Minute)}))
	require.NoError(t, store.Create(&entity.OtpCode{Email: "a@x.com", Code: "222222", ExpiresAt: time.Now().Add(10 * time.Minute)}))

	id, err := svc.Verify(ctx, "a@x.com", "222222")
	require.NoError(t, err)
	assert.Equal(t, "otp-2", id)
}

func TestOtpService_Verify_MissingInput(t *testing.T) {
	svc := newOtpService(t, &fakeOtpStore{})

	_, err := svc.Verify(context.Background(), "", "123456")
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = svc.Verify(context.Background(), "a@x.com", " ")
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestOtpService_Verify_StoreFailurePropagates(t *testing.T) {
	repo := new(MockOtpRepository)
	repo.On("GetRecentByEmail", "a@x.com", 20).Return(nil, errors.New("timeout"))

	svc, err := NewOtpService(repo, 10*time.Minute, 20)
	require.NoError(t, err)

	_, err = svc.Verify(context.Background(), "a@x.com", "123456")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidOtpCode)
}

func TestOtpService_Verify_RespectsScanLimit(t *testing.T) {
	store := &fakeOtpStore{}
	svc, err := NewOtpService(store, 10*time.Minute, 3)
	require.NoError(t, err)
	ctx := context.Background()

	oldest, err := svc.Issue(ctx, "a@x.com")
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		_, err := svc.Issue(ctx, "a@x.com")
		require.NoError(t, err)
	}

	// The oldest record fell outside the bounded scan window.
	_, err = svc.Verify(ctx, "a@x.com", oldest.Code)
	assert.ErrorIs(t, err, ErrInvalidOtpCode)
}

// ============================================================================
// Consume
// ============================================================================

func TestOtpService_Consume_AtMostOnce(t *testing.T) {
	store := &fakeOtpStore{}
	svc := newOtpService(t, store)
	ctx := context.Background()

	record, err := svc.Issue(ctx, "a@x.com")
	require.NoError(t, err)
	id, err := svc.Verify(ctx, "a@x.com", record.Code)
	require.NoError(t, err)

	require.NoError(t, svc.Consume(ctx, id))
	require.NotNil(t, store.records[0].UsedAt)

	err = svc.Consume(ctx, id)
	assert.ErrorIs(t, err, ErrOtpAlreadyConsumed)
}

func TestOtpService_Consume_EmptyID(t *testing.T) {
	svc := newOtpService(t, &fakeOtpStore{})

	err := svc.Consume(context.Background(), "")
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestOtpService_Consume_UnknownID(t *testing.T) {
	svc := newOtpService(t, &fakeOtpStore{})

	err := svc.Consume(context.Background(), "otp-404")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

// ============================================================================
// Code generation
// ============================================================================

func TestGenerateOtpCode_Range(t *testing.T) {
	for i := 0; i < 200; i++ {
		code, err := generateOtpCode()
		require.NoError(t, err)
		require.Len(t, code, 6)
		n, err := strconv.Atoi(code)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, n, 100000, "codes never carry a leading zero")
		assert.LessOrEqual(t, n, 999999)
	}
}

func TestGenerateOtpCode_NotConstant(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		code, err := generateOtpCode()
		require.NoError(t, err)
		seen[code] = true
	}
	// 50 draws over 900000 values colliding down to one would mean the
	// generator is broken.
	assert.Greater(t, len(seen), 1, fmt.Sprintf("expected varied codes, got %v", seen))
}
