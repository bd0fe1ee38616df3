package repository

import (
	"context"
	"errors"
	"fmt"

	"hostel-management/internal/data/entity"
	"hostel-management/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

// BookingFilter narrows booking lists. Nil fields are not filtered on.
type BookingFilter struct {
	StudentID *uuid.UUID
	HostelID  *uuid.UUID
	Status    *entity.BookingStatus
}

type BookingRepository interface {
	// Create inserts a new booking after checking, under row locks, that the
	// student holds no other booking and the bed is free.
	Create(ctx context.Context, booking *entity.Booking) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error)
	FindAll(ctx context.Context, limit, offset int, filter BookingFilter) ([]*entity.Booking, error)
	CountAll(ctx context.Context, filter BookingFilter) (int64, error)

	// Mutate loads the booking FOR UPDATE, applies fn and persists the result
	// in the same transaction. Nothing is written when fn returns an error.
	Mutate(ctx context.Context, id uuid.UUID, fn func(b *entity.Booking) error) (*entity.Booking, error)
}

type bookingRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewBookingRepository(db database.PgxIface, log *zap.Logger) BookingRepository {
	return &bookingRepository{
		db:  db,
		log: log.With(zap.String("repository", "booking")),
	}
}

const bookingColumns = `
	id, booking_code, student_id, hostel_id, room_id, bed_id, status, payment_status,
	currency, total_amount, amount_paid, amount_due, start_date, end_date, due_date,
	notes, cancellation, check_in, check_out, terms, created_at, updated_at
`

// statuses that no longer hold a room
const terminalStatuses = `('CANCELLED', 'CHECKED_OUT')`

func scanBooking(row scanner) (*entity.Booking, error) {
	var b entity.Booking
	err := row.Scan(
		&b.ID,
		&b.BookingCode,
		&b.StudentID,
		&b.HostelID,
		&b.RoomID,
		&b.BedID,
		&b.Status,
		&b.PaymentStatus,
		&b.Currency,
		&b.TotalAmount,
		&b.AmountPaid,
		&b.AmountDue,
		&b.StartDate,
		&b.EndDate,
		&b.DueDate,
		&b.Notes,
		&b.Cancellation,
		&b.CheckIn,
		&b.CheckOut,
		&b.Terms,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	b.PaymentHistory = []entity.PaymentRecord{}
	b.SpecialRequests = []entity.SpecialRequest{}
	return &b, nil
}

// attachHistory fills the payment and special-request histories in two queries.
func attachHistory(ctx context.Context, q database.Querier, bookings ...*entity.Booking) error {
	if len(bookings) == 0 {
		return nil
	}

	ids := make([]uuid.UUID, 0, len(bookings))
	for _, b := range bookings {
		ids = append(ids, b.ID)
	}

	payments, err := loadPayments(ctx, q, ids)
	if err != nil {
		return err
	}
	requests, err := loadSpecialRequests(ctx, q, ids)
	if err != nil {
		return err
	}

	for _, b := range bookings {
		if recs, ok := payments[b.ID]; ok {
			b.PaymentHistory = recs
		}
		if reqs, ok := requests[b.ID]; ok {
			b.SpecialRequests = reqs
		}
	}
	return nil
}

func (r *bookingRepository) Create(ctx context.Context, booking *entity.Booking) error {
	err := database.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		// serialize concurrent bookings by the same student
		if _, err := tx.Exec(ctx, `SELECT id FROM users WHERE id = $1 FOR UPDATE`, booking.StudentID); err != nil {
			return fmt.Errorf("lock student: %w", err)
		}

		var active int
		err := tx.QueryRow(ctx,
			`SELECT COUNT(*) FROM bookings WHERE student_id = $1 AND deleted_at IS NULL AND status NOT IN `+terminalStatuses,
			booking.StudentID).Scan(&active)
		if err != nil {
			return fmt.Errorf("count active bookings: %w", err)
		}
		if active > 0 {
			return ErrActiveBookingExists
		}

		if booking.BedID != nil {
			if err := claimBed(ctx, tx, *booking.BedID, booking.ID); err != nil {
				return err
			}
		}

		query := `
			INSERT INTO bookings (id, booking_code, student_id, hostel_id, room_id, bed_id, status, payment_status,
			                      currency, total_amount, amount_paid, amount_due, start_date, end_date, due_date,
			                      notes, cancellation, check_in, check_out, terms, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22)
		`
		_, err = tx.Exec(ctx, query,
			booking.ID,
			booking.BookingCode,
			booking.StudentID,
			booking.HostelID,
			booking.RoomID,
			booking.BedID,
			booking.Status,
			booking.PaymentStatus,
			booking.Currency,
			booking.TotalAmount,
			booking.AmountPaid,
			booking.AmountDue,
			booking.StartDate,
			booking.EndDate,
			booking.DueDate,
			booking.Notes,
			booking.Cancellation,
			booking.CheckIn,
			booking.CheckOut,
			booking.Terms,
			booking.CreatedAt,
			booking.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("insert booking: %w", err)
		}

		if err := insertPayments(ctx, tx, booking.PaymentHistory); err != nil {
			return err
		}
		return insertSpecialRequests(ctx, tx, booking.SpecialRequests)
	})

	if errors.Is(err, ErrActiveBookingExists) || errors.Is(err, ErrBedUnavailable) {
		return err
	}
	if err != nil {
		r.log.Error("Failed to create booking",
			zap.Error(err),
			zap.String("booking_code", booking.BookingCode),
			zap.String("student_id", booking.StudentID.String()),
		)
		return fmt.Errorf("create booking %s: %w", booking.BookingCode, err)
	}

	return nil
}

// claimBed locks the bed row and marks it taken. It fails when the bed is
// missing, flagged unavailable, or held by another non-terminal booking.
func claimBed(ctx context.Context, tx pgx.Tx, bedID, bookingID uuid.UUID) error {
	var available bool
	err := tx.QueryRow(ctx,
		`SELECT is_available FROM beds WHERE id = $1 AND deleted_at IS NULL FOR UPDATE`, bedID).Scan(&available)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrBedUnavailable
	}
	if err != nil {
		return fmt.Errorf("lock bed %s: %w", bedID, err)
	}

	var holders int
	err = tx.QueryRow(ctx,
		`SELECT COUNT(*) FROM bookings WHERE bed_id = $1 AND id <> $2 AND deleted_at IS NULL AND status NOT IN `+terminalStatuses,
		bedID, bookingID).Scan(&holders)
	if err != nil {
		return fmt.Errorf("count bed holders: %w", err)
	}
	if !available || holders > 0 {
		return ErrBedUnavailable
	}

	if _, err := setBedAvailability(ctx, tx, bedID, false); err != nil {
		return fmt.Errorf("claim bed %s: %w", bedID, err)
	}
	return nil
}

func (r *bookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1 AND deleted_at IS NULL`

	booking, err := scanBooking(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err == nil {
		err = attachHistory(ctx, r.db, booking)
	}
	if err != nil {
		r.log.Error("Failed to find booking by ID",
			zap.Error(err),
			zap.String("booking_id", id.String()),
		)
		return nil, fmt.Errorf("find booking by ID %s: %w", id, err)
	}

	return booking, nil
}

func (f BookingFilter) args() (*uuid.UUID, *uuid.UUID, *string) {
	var status *string
	if f.Status != nil {
		s := string(*f.Status)
		status = &s
	}
	return f.StudentID, f.HostelID, status
}

func (r *bookingRepository) FindAll(ctx context.Context, limit, offset int, filter BookingFilter) ([]*entity.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE deleted_at IS NULL
		  AND ($3::uuid IS NULL OR student_id = $3)
		  AND ($4::uuid IS NULL OR hostel_id = $4)
		  AND ($5::text IS NULL OR status = $5)
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`

	studentID, hostelID, status := filter.args()
	rows, err := r.db.Query(ctx, query, limit, offset, studentID, hostelID, status)
	if err != nil {
		r.log.Error("Failed to list bookings",
			zap.Error(err),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
		)
		return nil, fmt.Errorf("find all bookings limit %d offset %d: %w", limit, offset, err)
	}

	bookings := []*entity.Booking{}
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			rows.Close()
			r.log.Error("Failed to scan booking row", zap.Error(err))
			return nil, fmt.Errorf("scan booking row: %w", err)
		}
		bookings = append(bookings, booking)
	}
	rows.Close()

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate booking rows: %w", err)
	}

	if err := attachHistory(ctx, r.db, bookings...); err != nil {
		r.log.Error("Failed to load booking history", zap.Error(err))
		return nil, fmt.Errorf("load booking history: %w", err)
	}

	return bookings, nil
}

func (r *bookingRepository) CountAll(ctx context.Context, filter BookingFilter) (int64, error) {
	query := `
		SELECT COUNT(*)
		FROM bookings
		WHERE deleted_at IS NULL
		  AND ($1::uuid IS NULL OR student_id = $1)
		  AND ($2::uuid IS NULL OR hostel_id = $2)
		  AND ($3::text IS NULL OR status = $3)
	`

	studentID, hostelID, status := filter.args()
	var total int64
	if err := r.db.QueryRow(ctx, query, studentID, hostelID, status).Scan(&total); err != nil {
		r.log.Error("Failed to count bookings", zap.Error(err))
		return 0, fmt.Errorf("count all bookings: %w", err)
	}

	return total, nil
}

func (r *bookingRepository) Mutate(ctx context.Context, id uuid.UUID, fn func(b *entity.Booking) error) (*entity.Booking, error) {
	var updated *entity.Booking

	err := database.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1 AND deleted_at IS NULL FOR UPDATE`

		booking, err := scanBooking(tx.QueryRow(ctx, query, id))
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("lock booking: %w", err)
		}
		if err := attachHistory(ctx, tx, booking); err != nil {
			return err
		}

		heldBefore := booking.HoldsRoom()
		bedBefore := booking.BedID
		paymentsBefore := len(booking.PaymentHistory)
		requestsBefore := len(booking.SpecialRequests)

		if err := fn(booking); err != nil {
			return err
		}

		if err := syncBed(ctx, tx, booking, heldBefore, bedBefore); err != nil {
			return err
		}

		update := `
			UPDATE bookings
			SET room_id = $2, bed_id = $3, status = $4, payment_status = $5, amount_paid = $6,
			    amount_due = $7, start_date = $8, end_date = $9, due_date = $10, notes = $11,
			    cancellation = $12, check_in = $13, check_out = $14, terms = $15, updated_at = $16
			WHERE id = $1
		`
		_, err = tx.Exec(ctx, update,
			booking.ID,
			booking.RoomID,
			booking.BedID,
			booking.Status,
			booking.PaymentStatus,
			booking.AmountPaid,
			booking.AmountDue,
			booking.StartDate,
			booking.EndDate,
			booking.DueDate,
			booking.Notes,
			booking.Cancellation,
			booking.CheckIn,
			booking.CheckOut,
			booking.Terms,
			booking.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("update booking: %w", err)
		}

		// histories are append-only
		if err := insertPayments(ctx, tx, booking.PaymentHistory[paymentsBefore:]); err != nil {
			return err
		}
		if err := insertSpecialRequests(ctx, tx, booking.SpecialRequests[requestsBefore:]); err != nil {
			return err
		}

		updated = booking
		return nil
	})

	if errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("booking %s: %w", id, err)
	}
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			r.log.Error("Failed to mutate booking",
				zap.Error(err),
				zap.String("booking_id", id.String()),
			)
		}
		return nil, err
	}

	return updated, nil
}

// syncBed keeps beds.is_available in step with the booking after a mutation.
func syncBed(ctx context.Context, tx pgx.Tx, b *entity.Booking, heldBefore bool, bedBefore *uuid.UUID) error {
	sameBed := bedBefore != nil && b.BedID != nil && *bedBefore == *b.BedID

	if heldBefore && bedBefore != nil && (!b.HoldsRoom() || !sameBed) {
		if _, err := setBedAvailability(ctx, tx, *bedBefore, true); err != nil {
			return fmt.Errorf("release bed %s: %w", *bedBefore, err)
		}
	}
	if b.HoldsRoom() && b.BedID != nil && !sameBed {
		return claimBed(ctx, tx, *b.BedID, b.ID)
	}
	return nil
}
