package hostelclient

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"hostel-management/internal/data/entity"
	"hostel-management/internal/dto/request"
	"hostel-management/internal/dto/response"
	"hostel-management/pkg/utils"

	"go.uber.org/zap"
)

// ErrInvalidRequest wraps field errors found before a request is sent.
var ErrInvalidRequest = errors.New("invalid request")

func validationError(errs map[string]string) error {
	return fmt.Errorf("%w: %s", ErrInvalidRequest, utils.FormatValidationErrors(errs))
}

type ListOptions struct {
	Page   int
	Limit  int
	Status string
}

func (o ListOptions) query() string {
	q := url.Values{}
	if o.Page > 0 {
		q.Set("page", strconv.Itoa(o.Page))
	}
	if o.Limit > 0 {
		q.Set("limit", strconv.Itoa(o.Limit))
	}
	if o.Status != "" {
		q.Set("status", o.Status)
	}
	if len(q) == 0 {
		return ""
	}
	return "?" + q.Encode()
}

func bookingKey(id string) string { return "booking:" + id }

func bookingPath(id string) string { return "/api/bookings/" + url.PathEscape(id) }

// GetBooking returns the booking, from cache when present.
func (c *Client) GetBooking(ctx context.Context, id string) (*response.BookingResponse, error) {
	return cached[response.BookingResponse](ctx, c, bookingKey(id), bookingPath(id))
}

// ListBookings is never cached.
func (c *Client) ListBookings(ctx context.Context, opts ListOptions) (*response.PaginatedResponse[response.BookingResponse], error) {
	var out response.PaginatedResponse[response.BookingResponse]
	if err := do(ctx, c, http.MethodGet, "/api/bookings"+opts.query(), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ListPayments(ctx context.Context, opts ListOptions) (*response.PaginatedResponse[entity.PaymentRecord], error) {
	var out response.PaginatedResponse[entity.PaymentRecord]
	if err := do(ctx, c, http.MethodGet, "/api/payments"+opts.query(), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateBooking(ctx context.Context, req request.CreateBookingRequest) (*response.BookingResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, validationError(errs)
	}

	var out response.BookingResponse
	if err := do(ctx, c, http.MethodPost, "/api/bookings", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateBooking(ctx context.Context, id string, req request.UpdateBookingRequest) (*response.BookingResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, validationError(errs)
	}
	return c.mutate(ctx, http.MethodPut, id, "", req)
}

func (c *Client) ApproveBooking(ctx context.Context, id string) (*response.BookingResponse, error) {
	return c.mutate(ctx, http.MethodPost, id, "/approve", nil)
}

func (c *Client) CancelBooking(ctx context.Context, id string, req request.CancelBookingRequest) (*response.BookingResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, validationError(errs)
	}
	if err := c.offered(ctx, id, (*entity.Booking).CanCancel); err != nil {
		return nil, err
	}
	return c.mutate(ctx, http.MethodPost, id, "/cancel", req)
}

func (c *Client) CheckIn(ctx context.Context, id string, req request.CheckInRequest) (*response.BookingResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, validationError(errs)
	}
	if err := c.offered(ctx, id, (*entity.Booking).CanCheckIn); err != nil {
		return nil, err
	}
	return c.mutate(ctx, http.MethodPost, id, "/check-in", req)
}

func (c *Client) CheckOut(ctx context.Context, id string, req request.CheckOutRequest) (*response.BookingResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, validationError(errs)
	}
	if err := c.offered(ctx, id, (*entity.Booking).CanCheckOut); err != nil {
		return nil, err
	}
	return c.mutate(ctx, http.MethodPost, id, "/check-out", req)
}

// AddPayment refuses non-positive amounts, sub-cent amounts and, for settled
// payments, amounts above what is due without contacting the server. Failed
// attempts are recorded whatever is due.
func (c *Client) AddPayment(ctx context.Context, id string, req request.AddPaymentRequest) (*response.BookingResponse, error) {
	if !req.Amount.IsPositive() {
		return nil, entity.ErrInvalidAmount
	}
	if !entity.ValidMoney(req.Amount) {
		return nil, entity.ErrAmountPrecision
	}
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, validationError(errs)
	}
	if req.Status == string(entity.PaymentRecordFailed) {
		return c.mutate(ctx, http.MethodPost, id, "/payments", req)
	}

	current, err := c.GetBooking(ctx, id)
	if err != nil {
		return nil, err
	}
	if current.Booking == nil || !current.CanAddPayment() {
		return nil, ErrActionNotOffered
	}
	if req.Amount.GreaterThan(current.AmountDue) {
		return nil, entity.ErrOverpayment
	}

	return c.mutate(ctx, http.MethodPost, id, "/payments", req)
}

func (c *Client) CompleteRefund(ctx context.Context, id string) (*response.BookingResponse, error) {
	return c.mutate(ctx, http.MethodPost, id, "/refund", nil)
}

func (c *Client) AddSpecialRequest(ctx context.Context, id string, req request.SpecialRequestRequest) (*response.BookingResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, validationError(errs)
	}
	return c.mutate(ctx, http.MethodPost, id, "/special-requests", req)
}

func (c *Client) AcceptTerms(ctx context.Context, id string, version string) (*response.BookingResponse, error) {
	return c.mutate(ctx, http.MethodPost, id, "/terms", request.AcceptTermsRequest{Version: version})
}

// ==================== HELPER METHODS ====================

func (c *Client) offered(ctx context.Context, id string, predicate func(*entity.Booking) bool) error {
	current, err := c.GetBooking(ctx, id)
	if err != nil {
		return err
	}
	if current.Booking == nil || !predicate(current.Booking) {
		return ErrActionNotOffered
	}
	return nil
}

// mutate sends the mutation, then drops the cached booking and refetches it.
// When the refetch fails the mutation's own response is returned uncached.
func (c *Client) mutate(ctx context.Context, method, id, action string, body any) (*response.BookingResponse, error) {
	var out response.BookingResponse
	if err := do(ctx, c, method, bookingPath(id)+action, body, &out); err != nil {
		return nil, err
	}

	c.cache.Delete(bookingKey(id))
	fresh, err := c.GetBooking(ctx, id)
	if err != nil {
		c.log.Warn("Refetch after mutation failed",
			zap.String("booking_id", id),
			zap.String("action", action),
			zap.Error(err),
		)
		return &out, nil
	}
	return fresh, nil
}
