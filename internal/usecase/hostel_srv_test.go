package usecase

import (
	"context"
	"fmt"
	"testing"

	"hostel-management/internal/data/entity"
	"hostel-management/internal/data/repository"
	"hostel-management/internal/dto/request"
	"hostel-management/internal/testutil"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestHostelService(t *testing.T) (HostelService, *testutil.Repositories) {
	repos := testutil.NewRepositories(t)
	return NewHostelService(repos.Repository(), testutil.Clock, zap.NewNop()), repos
}

func TestCreateRoom_CreatesOneBedPerPlace(t *testing.T) {
	svc, repos := newTestHostelService(t)
	hostel := testutil.NewHostel()

	repos.Hostel.On("FindByID", mock.Anything, hostel.ID).Return(hostel, nil)
	repos.Room.On("Create", mock.Anything,
		mock.MatchedBy(func(r *entity.Room) bool { return r.HostelID == hostel.ID && r.RoomNumber == "B12" }),
		mock.MatchedBy(func(beds []*entity.Bed) bool { return len(beds) == 3 }),
	).Return(nil)

	room, err := svc.CreateRoom(context.Background(), hostel.ID.String(), &request.RoomRequest{
		RoomNumber:  " B12 ",
		Floor:       1,
		Capacity:    3,
		MonthlyRate: decimal.NewFromInt(4500),
	})

	require.NoError(t, err)
	require.Len(t, room.Beds, 3)
	assert.Equal(t, []string{"A", "B", "C"}, []string{room.Beds[0].Label, room.Beds[1].Label, room.Beds[2].Label})
	assert.True(t, room.Beds[0].IsAvailable)
	repos.AssertExpectations(t)
}

func TestCreateRoom_UnknownHostel(t *testing.T) {
	svc, repos := newTestHostelService(t)
	id := uuid.New()
	repos.Hostel.On("FindByID", mock.Anything, id).Return(nil, nil)

	_, err := svc.CreateRoom(context.Background(), id.String(), &request.RoomRequest{
		RoomNumber: "1", Capacity: 1, MonthlyRate: decimal.NewFromInt(100),
	})

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteHostel(t *testing.T) {
	t.Run("refused while bookings exist", func(t *testing.T) {
		svc, repos := newTestHostelService(t)
		id := uuid.New()
		repos.Booking.On("CountAll", mock.Anything, repository.BookingFilter{HostelID: &id}).Return(int64(2), nil)

		err := svc.DeleteHostel(context.Background(), id.String())

		assert.ErrorIs(t, err, ErrConflict)
		repos.Hostel.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("deleted when unused", func(t *testing.T) {
		svc, repos := newTestHostelService(t)
		id := uuid.New()
		repos.Booking.On("CountAll", mock.Anything, mock.Anything).Return(int64(0), nil)
		repos.Hostel.On("Delete", mock.Anything, id).Return(nil)

		require.NoError(t, svc.DeleteHostel(context.Background(), id.String()))
		repos.AssertExpectations(t)
	})

	t.Run("missing hostel", func(t *testing.T) {
		svc, repos := newTestHostelService(t)
		id := uuid.New()
		repos.Booking.On("CountAll", mock.Anything, mock.Anything).Return(int64(0), nil)
		repos.Hostel.On("Delete", mock.Anything, id).Return(fmt.Errorf("delete hostel: %w", repository.ErrNotFound))

		assert.ErrorIs(t, svc.DeleteHostel(context.Background(), id.String()), ErrNotFound)
	})

	t.Run("bad id", func(t *testing.T) {
		svc, _ := newTestHostelService(t)
		assert.ErrorIs(t, svc.DeleteHostel(context.Background(), "nope"), ErrValidation)
	})
}

func TestUpdateHostel_AppliesOnlyGivenFields(t *testing.T) {
	svc, repos := newTestHostelService(t)
	hostel := testutil.NewHostel()
	originalCity := hostel.City
	inactive := false
	name := "  Riverside Annex "

	repos.Hostel.On("FindByID", mock.Anything, hostel.ID).Return(hostel, nil)
	repos.Hostel.On("Update", mock.Anything, hostel).Return(nil)

	resp, err := svc.UpdateHostel(context.Background(), hostel.ID.String(), &request.HostelUpdateRequest{
		Name:     &name,
		IsActive: &inactive,
	})

	require.NoError(t, err)
	assert.Equal(t, "Riverside Annex", resp.Name)
	assert.Equal(t, originalCity, hostel.City)
	assert.False(t, hostel.IsActive)
	assert.Equal(t, testutil.Now, hostel.UpdatedAt)
}

func TestCreateRoom_RejectsUnbillableRates(t *testing.T) {
	tests := []struct {
		name string
		rate string
	}{
		{"free room", "0"},
		{"negative", "-100"},
		{"sub-cent", "4500.505"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repos := newTestHostelService(t)

			_, err := svc.CreateRoom(context.Background(), uuid.NewString(), &request.RoomRequest{
				RoomNumber: "7", Capacity: 2, MonthlyRate: decimal.RequireFromString(tt.rate),
			})

			assert.ErrorIs(t, err, ErrValidation)
			repos.Hostel.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
			repos.Room.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestUpdateRoom_RejectsSubCentRate(t *testing.T) {
	svc, repos := newTestHostelService(t)
	rate := decimal.RequireFromString("3999.999")

	_, err := svc.UpdateRoom(context.Background(), uuid.NewString(), &request.RoomUpdateRequest{MonthlyRate: &rate})

	assert.ErrorIs(t, err, ErrValidation)
	assert.ErrorIs(t, err, entity.ErrAmountPrecision)
	repos.Room.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
}
