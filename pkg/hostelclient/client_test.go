package hostelclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"hostel-management/internal/access"
	"hostel-management/internal/data/entity"
	"hostel-management/internal/dto/request"
	"hostel-management/internal/dto/response"
	"hostel-management/pkg/utils"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

// fakeServer serves a single booking and counts requests per path.
type fakeServer struct {
	mu      sync.Mutex
	booking *entity.Booking
	hits    map[string]int
	tokens  []string
	failure int
}

func newFakeServer(t *testing.T, b *entity.Booking) (*fakeServer, *Client) {
	t.Helper()
	fs := &fakeServer{booking: b, hits: map[string]int{}}
	srv := httptest.NewServer(fs)
	t.Cleanup(srv.Close)
	return fs, New(srv.URL, WithToken("tok-1"))
}

func (fs *fakeServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	fs.hits[r.Method+" "+r.URL.Path]++
	fs.tokens = append(fs.tokens, r.Header.Get("Authorization"))

	if fs.failure != 0 {
		utils.ResponseJSON(w, fs.failure, false, "booking cannot move to that status", nil, nil)
		return
	}

	base := "/api/bookings/" + fs.booking.ID.String()
	switch r.Method + " " + r.URL.Path {
	case "GET " + base:
		utils.ResponseSuccess(w, "success", response.BookingToResponse(fs.booking, testNow))
	case "POST " + base + "/payments":
		var req request.AddPaymentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			utils.ResponseBadRequest(w, "Invalid request body", nil)
			return
		}
		if err := fs.booking.AddPayment(entity.PaymentRecord{
			Amount: req.Amount,
			Method: entity.PaymentMethod(req.Method),
			Status: entity.PaymentRecordStatus(req.Status),
			PaidAt: testNow,
		}); err != nil {
			utils.ResponseUnprocessable(w, err.Error(), nil)
			return
		}
		utils.ResponseSuccess(w, "Payment recorded", response.BookingToResponse(fs.booking, testNow))
	case "POST " + base + "/approve":
		if err := fs.booking.Approve(); err != nil {
			utils.ResponseUnprocessable(w, err.Error(), nil)
			return
		}
		utils.ResponseSuccess(w, "Booking approved", response.BookingToResponse(fs.booking, testNow))
	case "GET /api/me/permissions":
		utils.ResponseSuccess(w, "success", response.PermissionsResponse{
			Role:        access.RoleStudent,
			Permissions: access.DefaultTable().Permissions(access.RoleStudent),
		})
	default:
		utils.ResponseNotFound(w, "Route not found")
	}
}

func (fs *fakeServer) count(key string) int {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	return fs.hits[key]
}

func newBooking(total int64) *entity.Booking {
	return entity.NewBooking(entity.NewBookingParams{
		BookingCode: "HST-CLIENT",
		StudentID:   uuid.New(),
		HostelID:    uuid.New(),
		RoomID:      uuid.New(),
		Currency:    "KES",
		TotalAmount: decimal.NewFromInt(total),
		StartDate:   testNow.AddDate(0, 0, 3),
		EndDate:     testNow.AddDate(0, 4, 3),
		DueDate:     testNow.AddDate(0, 0, 7),
	}, testNow)
}

func payment(amount int64) request.AddPaymentRequest {
	return request.AddPaymentRequest{Amount: decimal.NewFromInt(amount), Method: "CASH"}
}

func TestGetBooking_IsCached(t *testing.T) {
	b := newBooking(1000)
	fs, client := newFakeServer(t, b)
	ctx := context.Background()

	first, err := client.GetBooking(ctx, b.ID.String())
	require.NoError(t, err)
	second, err := client.GetBooking(ctx, b.ID.String())
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, entity.BookingStatusHold, first.Status)
	assert.True(t, first.Actions.CanAddPayment)
	assert.Equal(t, 1, fs.count("GET /api/bookings/"+b.ID.String()))
	assert.Equal(t, "Bearer tok-1", fs.tokens[0])
}

func TestAddPayment_RefetchesAfterSuccess(t *testing.T) {
	b := newBooking(1000)
	fs, client := newFakeServer(t, b)
	ctx := context.Background()

	_, err := client.GetBooking(ctx, b.ID.String())
	require.NoError(t, err)

	got, err := client.AddPayment(ctx, b.ID.String(), payment(400))
	require.NoError(t, err)

	assert.Equal(t, entity.BookingStatusPendingPayment, got.Status)
	assert.True(t, got.AmountDue.Equal(decimal.NewFromInt(600)))
	assert.Equal(t, 2, fs.count("GET /api/bookings/"+b.ID.String()))
	assert.Equal(t, 1, fs.count("POST /api/bookings/"+b.ID.String()+"/payments"))
}

func TestAddPayment_LocalGates(t *testing.T) {
	b := newBooking(1000)
	fs, client := newFakeServer(t, b)
	ctx := context.Background()

	_, err := client.AddPayment(ctx, b.ID.String(), payment(0))
	assert.ErrorIs(t, err, entity.ErrInvalidAmount)

	_, err = client.AddPayment(ctx, b.ID.String(), payment(1001))
	assert.ErrorIs(t, err, entity.ErrOverpayment)

	assert.Zero(t, fs.count("POST /api/bookings/"+b.ID.String()+"/payments"))
}

func TestCheckIn_NotOfferedSendsNothing(t *testing.T) {
	b := newBooking(1000)
	fs, client := newFakeServer(t, b)

	_, err := client.CheckIn(context.Background(), b.ID.String(), request.CheckInRequest{RoomCondition: "GOOD"})

	assert.ErrorIs(t, err, ErrActionNotOffered)
	assert.Zero(t, fs.count("POST /api/bookings/"+b.ID.String()+"/check-in"))
}

func TestCancel_ValidatesBeforeSending(t *testing.T) {
	b := newBooking(1000)
	_, client := newFakeServer(t, b)

	_, err := client.CancelBooking(context.Background(), b.ID.String(), request.CancelBookingRequest{})

	assert.ErrorIs(t, err, ErrInvalidRequest)
}

func TestFailedMutation_LeavesCacheUntouched(t *testing.T) {
	b := newBooking(1000)
	fs, client := newFakeServer(t, b)
	ctx := context.Background()

	before, err := client.GetBooking(ctx, b.ID.String())
	require.NoError(t, err)

	fs.mu.Lock()
	fs.failure = http.StatusUnprocessableEntity
	fs.mu.Unlock()

	_, err = client.ApproveBooking(ctx, b.ID.String())
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnprocessableEntity, apiErr.StatusCode)
	assert.Equal(t, "booking cannot move to that status", apiErr.Message)

	after, err := client.GetBooking(ctx, b.ID.String())
	require.NoError(t, err)
	assert.Equal(t, before, after)
	assert.NotSame(t, before, after)
}

func TestGetBooking_CallerEditsDoNotReachCache(t *testing.T) {
	b := newBooking(1000)
	fs, client := newFakeServer(t, b)
	ctx := context.Background()

	first, err := client.GetBooking(ctx, b.ID.String())
	require.NoError(t, err)
	first.Status = entity.BookingStatusConfirmed
	first.PaymentStatus = entity.PaymentStatusCompleted
	first.AmountDue = decimal.Zero
	first.Actions.CanAddPayment = false

	second, err := client.GetBooking(ctx, b.ID.String())
	require.NoError(t, err)
	assert.Equal(t, entity.BookingStatusHold, second.Status)
	assert.Equal(t, entity.PaymentStatusPending, second.PaymentStatus)
	assert.True(t, second.AmountDue.Equal(decimal.NewFromInt(1000)))
	assert.True(t, second.Actions.CanAddPayment)
	assert.Equal(t, 1, fs.count("GET /api/bookings/"+b.ID.String()))

	got, err := client.AddPayment(ctx, b.ID.String(), payment(500))
	require.NoError(t, err)
	assert.True(t, got.AmountDue.Equal(decimal.NewFromInt(500)))
}

func TestAddPayment_SubCentAmountSendsNothing(t *testing.T) {
	b := newBooking(1000)
	fs, client := newFakeServer(t, b)

	_, err := client.AddPayment(context.Background(), b.ID.String(), request.AddPaymentRequest{
		Amount: decimal.RequireFromString("33.335"),
		Method: "CASH",
	})

	assert.ErrorIs(t, err, entity.ErrAmountPrecision)
	assert.Zero(t, fs.count("POST /api/bookings/"+b.ID.String()+"/payments"))
}

func TestAddPayment_FailedAttemptOnSettledBooking(t *testing.T) {
	b := newBooking(1000)
	require.NoError(t, b.AddPayment(entity.PaymentRecord{Amount: decimal.NewFromInt(1000), Method: entity.PaymentMethodCash, PaidAt: testNow}))
	fs, client := newFakeServer(t, b)

	got, err := client.AddPayment(context.Background(), b.ID.String(), request.AddPaymentRequest{
		Amount: decimal.NewFromInt(1000),
		Method: "CARD",
		Status: "FAILED",
	})

	require.NoError(t, err)
	assert.Equal(t, 1, fs.count("POST /api/bookings/"+b.ID.String()+"/payments"))
	require.Len(t, got.PaymentHistory, 2)
	assert.Equal(t, entity.PaymentRecordFailed, got.PaymentHistory[1].Status)
	assert.Equal(t, entity.PaymentStatusCompleted, got.PaymentStatus)
}

func TestAPIError_Unauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		utils.ResponseUnauthorized(w, "Invalid or expired session")
	}))
	defer srv.Close()
	client := New(srv.URL)

	_, err := client.GetBooking(context.Background(), uuid.NewString())

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.True(t, apiErr.IsUnauthorized())
	assert.Equal(t, "Invalid or expired session", apiErr.Message)
}

func TestAPIError_GenericFallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("<html>bad gateway</html>"))
	}))
	defer srv.Close()

	_, err := New(srv.URL).GetBooking(context.Background(), uuid.NewString())

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, genericErrorMessage, apiErr.Message)
}

func TestCan_UsesServerPermissions(t *testing.T) {
	_, client := newFakeServer(t, newBooking(1000))
	ctx := context.Background()

	assert.True(t, client.Can(ctx, access.PermBookingsCreate))
	assert.False(t, client.Can(ctx, access.PermBookingsApprove))
}

func TestSetToken_FlushesCache(t *testing.T) {
	b := newBooking(1000)
	fs, client := newFakeServer(t, b)
	ctx := context.Background()

	_, err := client.GetBooking(ctx, b.ID.String())
	require.NoError(t, err)
	client.SetToken("tok-2")
	_, err = client.GetBooking(ctx, b.ID.String())
	require.NoError(t, err)

	assert.Equal(t, 2, fs.count("GET /api/bookings/"+b.ID.String()))
	assert.Equal(t, "Bearer tok-2", fs.tokens[1])
}
