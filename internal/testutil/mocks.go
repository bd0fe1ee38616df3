package testutil

import (
	"context"
	"testing"

	"hostel-management/internal/access"
	"hostel-management/internal/data/entity"
	"hostel-management/internal/data/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// value returns argument i as T, or T's zero value when it was set to nil.
func value[T any](args mock.Arguments, i int) T {
	var zero T
	v, ok := args.Get(i).(T)
	if !ok {
		return zero
	}
	return v
}

// MockUserRepository is a mock implementation of repository.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func NewMockUserRepository(t *testing.T) *MockUserRepository {
	m := &MockUserRepository{}
	m.Test(t)
	return m
}

func (m *MockUserRepository) Create(ctx context.Context, user *entity.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	args := m.Called(ctx, id)
	return value[*entity.User](args, 0), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	args := m.Called(ctx, email)
	return value[*entity.User](args, 0), args.Error(1)
}

func (m *MockUserRepository) FindAll(ctx context.Context, limit, offset int, roles []access.Role) ([]*entity.User, error) {
	args := m.Called(ctx, limit, offset, roles)
	return value[[]*entity.User](args, 0), args.Error(1)
}

func (m *MockUserRepository) CountAll(ctx context.Context, roles []access.Role) (int64, error) {
	args := m.Called(ctx, roles)
	return value[int64](args, 0), args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, user *entity.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepository) UpdateRole(ctx context.Context, id uuid.UUID, role access.Role) error {
	return m.Called(ctx, id, role).Error(0)
}

func (m *MockUserRepository) UpdateStatus(ctx context.Context, id uuid.UUID, isActive bool) error {
	return m.Called(ctx, id, isActive).Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

// MockSessionRepository is a mock implementation of repository.SessionRepository
type MockSessionRepository struct {
	mock.Mock
}

func NewMockSessionRepository(t *testing.T) *MockSessionRepository {
	m := &MockSessionRepository{}
	m.Test(t)
	return m
}

func (m *MockSessionRepository) Create(ctx context.Context, session *entity.Session) error {
	return m.Called(ctx, session).Error(0)
}

func (m *MockSessionRepository) FindValidSession(ctx context.Context, token uuid.UUID) (*entity.Session, error) {
	args := m.Called(ctx, token)
	return value[*entity.Session](args, 0), args.Error(1)
}

func (m *MockSessionRepository) Revoke(ctx context.Context, token uuid.UUID) error {
	return m.Called(ctx, token).Error(0)
}

func (m *MockSessionRepository) RevokeAllUserSessions(ctx context.Context, userID uuid.UUID) error {
	return m.Called(ctx, userID).Error(0)
}

func (m *MockSessionRepository) CleanExpiredSessions(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return value[int64](args, 0), args.Error(1)
}

// MockHostelRepository is a mock implementation of repository.HostelRepository
type MockHostelRepository struct {
	mock.Mock
}

func NewMockHostelRepository(t *testing.T) *MockHostelRepository {
	m := &MockHostelRepository{}
	m.Test(t)
	return m
}

func (m *MockHostelRepository) Create(ctx context.Context, hostel *entity.Hostel) error {
	return m.Called(ctx, hostel).Error(0)
}

func (m *MockHostelRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Hostel, error) {
	args := m.Called(ctx, id)
	return value[*entity.Hostel](args, 0), args.Error(1)
}

func (m *MockHostelRepository) FindAll(ctx context.Context, limit, offset int, filter repository.HostelFilter) ([]*entity.Hostel, error) {
	args := m.Called(ctx, limit, offset, filter)
	return value[[]*entity.Hostel](args, 0), args.Error(1)
}

func (m *MockHostelRepository) CountAll(ctx context.Context, filter repository.HostelFilter) (int64, error) {
	args := m.Called(ctx, filter)
	return value[int64](args, 0), args.Error(1)
}

func (m *MockHostelRepository) Update(ctx context.Context, hostel *entity.Hostel) error {
	return m.Called(ctx, hostel).Error(0)
}

func (m *MockHostelRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

// MockRoomRepository is a mock implementation of repository.RoomRepository
type MockRoomRepository struct {
	mock.Mock
}

func NewMockRoomRepository(t *testing.T) *MockRoomRepository {
	m := &MockRoomRepository{}
	m.Test(t)
	return m
}

func (m *MockRoomRepository) Create(ctx context.Context, room *entity.Room, beds []*entity.Bed) error {
	return m.Called(ctx, room, beds).Error(0)
}

func (m *MockRoomRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Room, error) {
	args := m.Called(ctx, id)
	return value[*entity.Room](args, 0), args.Error(1)
}

func (m *MockRoomRepository) FindByHostelID(ctx context.Context, hostelID uuid.UUID) ([]*entity.Room, error) {
	args := m.Called(ctx, hostelID)
	return value[[]*entity.Room](args, 0), args.Error(1)
}

func (m *MockRoomRepository) Update(ctx context.Context, room *entity.Room) error {
	return m.Called(ctx, room).Error(0)
}

func (m *MockRoomRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

// MockBedRepository is a mock implementation of repository.BedRepository
type MockBedRepository struct {
	mock.Mock
}

func NewMockBedRepository(t *testing.T) *MockBedRepository {
	m := &MockBedRepository{}
	m.Test(t)
	return m
}

func (m *MockBedRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Bed, error) {
	args := m.Called(ctx, id)
	return value[*entity.Bed](args, 0), args.Error(1)
}

func (m *MockBedRepository) FindByRoomID(ctx context.Context, roomID uuid.UUID) ([]*entity.Bed, error) {
	args := m.Called(ctx, roomID)
	return value[[]*entity.Bed](args, 0), args.Error(1)
}

func (m *MockBedRepository) FindAvailable(ctx context.Context, roomID uuid.UUID) ([]*entity.Bed, error) {
	args := m.Called(ctx, roomID)
	return value[[]*entity.Bed](args, 0), args.Error(1)
}

func (m *MockBedRepository) UpdateAvailability(ctx context.Context, bedID uuid.UUID, isAvailable bool) error {
	return m.Called(ctx, bedID, isAvailable).Error(0)
}

// MockBookingRepository is a mock implementation of repository.BookingRepository
type MockBookingRepository struct {
	mock.Mock
}

func NewMockBookingRepository(t *testing.T) *MockBookingRepository {
	m := &MockBookingRepository{}
	m.Test(t)
	return m
}

func (m *MockBookingRepository) Create(ctx context.Context, booking *entity.Booking) error {
	return m.Called(ctx, booking).Error(0)
}

func (m *MockBookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	args := m.Called(ctx, id)
	return value[*entity.Booking](args, 0), args.Error(1)
}

func (m *MockBookingRepository) FindAll(ctx context.Context, limit, offset int, filter repository.BookingFilter) ([]*entity.Booking, error) {
	args := m.Called(ctx, limit, offset, filter)
	return value[[]*entity.Booking](args, 0), args.Error(1)
}

func (m *MockBookingRepository) CountAll(ctx context.Context, filter repository.BookingFilter) (int64, error) {
	args := m.Called(ctx, filter)
	return value[int64](args, 0), args.Error(1)
}

// Mutate returns the configured booking after running fn on it, like the real
// repository does inside its transaction. fn errors are returned unchanged.
func (m *MockBookingRepository) Mutate(ctx context.Context, id uuid.UUID, fn func(b *entity.Booking) error) (*entity.Booking, error) {
	args := m.Called(ctx, id)
	booking, err := value[*entity.Booking](args, 0), args.Error(1)
	if err != nil {
		return nil, err
	}
	if err := fn(booking); err != nil {
		return nil, err
	}
	return booking, nil
}

// MockPaymentRepository is a mock implementation of repository.PaymentRepository
type MockPaymentRepository struct {
	mock.Mock
}

func NewMockPaymentRepository(t *testing.T) *MockPaymentRepository {
	m := &MockPaymentRepository{}
	m.Test(t)
	return m
}

func (m *MockPaymentRepository) FindByBookingID(ctx context.Context, bookingID uuid.UUID) ([]entity.PaymentRecord, error) {
	args := m.Called(ctx, bookingID)
	return value[[]entity.PaymentRecord](args, 0), args.Error(1)
}

func (m *MockPaymentRepository) FindAll(ctx context.Context, limit, offset int, filter repository.PaymentFilter) ([]entity.PaymentRecord, error) {
	args := m.Called(ctx, limit, offset, filter)
	return value[[]entity.PaymentRecord](args, 0), args.Error(1)
}

func (m *MockPaymentRepository) CountAll(ctx context.Context, filter repository.PaymentFilter) (int64, error) {
	args := m.Called(ctx, filter)
	return value[int64](args, 0), args.Error(1)
}

// Repositories bundles one mock per repository.
type Repositories struct {
	User    *MockUserRepository
	Session *MockSessionRepository
	Hostel  *MockHostelRepository
	Room    *MockRoomRepository
	Bed     *MockBedRepository
	Booking *MockBookingRepository
	Payment *MockPaymentRepository
}

func NewRepositories(t *testing.T) *Repositories {
	return &Repositories{
		User:    NewMockUserRepository(t),
		Session: NewMockSessionRepository(t),
		Hostel:  NewMockHostelRepository(t),
		Room:    NewMockRoomRepository(t),
		Bed:     NewMockBedRepository(t),
		Booking: NewMockBookingRepository(t),
		Payment: NewMockPaymentRepository(t),
	}
}

// Repository exposes the mocks as a *repository.Repository.
func (r *Repositories) Repository() *repository.Repository {
	return &repository.Repository{
		User:    r.User,
		Session: r.Session,
		Hostel:  r.Hostel,
		Room:    r.Room,
		Bed:     r.Bed,
		Booking: r.Booking,
		Payment: r.Payment,
	}
}

// AssertExpectations checks every mock in the bundle.
func (r *Repositories) AssertExpectations(t *testing.T) {
	t.Helper()
	mock.AssertExpectationsForObjects(t, r.User, r.Session, r.Hostel, r.Room, r.Bed, r.Booking, r.Payment)
}
