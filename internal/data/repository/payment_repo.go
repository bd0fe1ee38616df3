package repository

import (
	"context"
	"fmt"

	"hostel-management/internal/data/entity"
	"hostel-management/pkg/database"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// PaymentFilter narrows the payment ledger. A nil StudentID lists every student.
type PaymentFilter struct {
	StudentID *uuid.UUID
	Status    *entity.PaymentRecordStatus
}

type PaymentRepository interface {
	FindByBookingID(ctx context.Context, bookingID uuid.UUID) ([]entity.PaymentRecord, error)
	FindAll(ctx context.Context, limit, offset int, filter PaymentFilter) ([]entity.PaymentRecord, error)
	CountAll(ctx context.Context, filter PaymentFilter) (int64, error)
}

type paymentRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewPaymentRepository(db database.PgxIface, log *zap.Logger) PaymentRepository {
	return &paymentRepository{
		db:  db,
		log: log.With(zap.String("repository", "payment")),
	}
}

const paymentColumns = `p.id, p.booking_id, p.amount, p.method, p.status, p.transaction_id, p.recorded_by, p.paid_at`

func scanPayment(row scanner) (entity.PaymentRecord, error) {
	var rec entity.PaymentRecord
	err := row.Scan(
		&rec.ID,
		&rec.BookingID,
		&rec.Amount,
		&rec.Method,
		&rec.Status,
		&rec.TransactionID,
		&rec.RecordedBy,
		&rec.PaidAt,
	)
	return rec, err
}

func insertPayments(ctx context.Context, q database.Querier, recs []entity.PaymentRecord) error {
	query := `
		INSERT INTO booking_payments (id, booking_id, amount, method, status, transaction_id, recorded_by, paid_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	for _, rec := range recs {
		_, err := q.Exec(ctx, query,
			rec.ID,
			rec.BookingID,
			rec.Amount,
			rec.Method,
			rec.Status,
			rec.TransactionID,
			rec.RecordedBy,
			rec.PaidAt,
		)
		if err != nil {
			return fmt.Errorf("insert payment %s: %w", rec.ID, err)
		}
	}
	return nil
}

// loadPayments returns the payment history of each booking, oldest first.
func loadPayments(ctx context.Context, q database.Querier, bookingIDs []uuid.UUID) (map[uuid.UUID][]entity.PaymentRecord, error) {
	out := make(map[uuid.UUID][]entity.PaymentRecord, len(bookingIDs))
	if len(bookingIDs) == 0 {
		return out, nil
	}

	rows, err := q.Query(ctx,
		`SELECT `+paymentColumns+` FROM booking_payments p WHERE p.booking_id = ANY($1) ORDER BY p.paid_at, p.id`,
		bookingIDs)
	if err != nil {
		return nil, fmt.Errorf("load payments: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		rec, err := scanPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan payment row: %w", err)
		}
		out[rec.BookingID] = append(out[rec.BookingID], rec)
	}
	return out, rows.Err()
}

func (r *paymentRepository) FindByBookingID(ctx context.Context, bookingID uuid.UUID) ([]entity.PaymentRecord, error) {
	byBooking, err := loadPayments(ctx, r.db, []uuid.UUID{bookingID})
	if err != nil {
		r.log.Error("Failed to find payments by booking ID",
			zap.Error(err),
			zap.String("booking_id", bookingID.String()),
		)
		return nil, fmt.Errorf("find payments of booking %s: %w", bookingID, err)
	}

	recs := byBooking[bookingID]
	if recs == nil {
		recs = []entity.PaymentRecord{}
	}
	return recs, nil
}

func (f PaymentFilter) args() (*uuid.UUID, *string) {
	var status *string
	if f.Status != nil {
		s := string(*f.Status)
		status = &s
	}
	return f.StudentID, status
}

func (r *paymentRepository) FindAll(ctx context.Context, limit, offset int, filter PaymentFilter) ([]entity.PaymentRecord, error) {
	query := `
		SELECT ` + paymentColumns + `
		FROM booking_payments p
		JOIN bookings b ON b.id = p.booking_id
		WHERE ($3::uuid IS NULL OR b.student_id = $3)
		  AND ($4::text IS NULL OR p.status = $4)
		ORDER BY p.paid_at DESC
		LIMIT $1 OFFSET $2
	`

	studentID, status := filter.args()
	rows, err := r.db.Query(ctx, query, limit, offset, studentID, status)
	if err != nil {
		r.log.Error("Failed to list payments",
			zap.Error(err),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
		)
		return nil, fmt.Errorf("find all payments limit %d offset %d: %w", limit, offset, err)
	}
	defer rows.Close()

	recs := []entity.PaymentRecord{}
	for rows.Next() {
		rec, err := scanPayment(rows)
		if err != nil {
			r.log.Error("Failed to scan payment row", zap.Error(err))
			return nil, fmt.Errorf("scan payment row: %w", err)
		}
		recs = append(recs, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate payment rows: %w", err)
	}

	return recs, nil
}

func (r *paymentRepository) CountAll(ctx context.Context, filter PaymentFilter) (int64, error) {
	query := `
		SELECT COUNT(*)
		FROM booking_payments p
		JOIN bookings b ON b.id = p.booking_id
		WHERE ($1::uuid IS NULL OR b.student_id = $1)
		  AND ($2::text IS NULL OR p.status = $2)
	`

	studentID, status := filter.args()
	var total int64
	if err := r.db.QueryRow(ctx, query, studentID, status).Scan(&total); err != nil {
		r.log.Error("Failed to count payments", zap.Error(err))
		return 0, fmt.Errorf("count all payments: %w", err)
	}

	return total, nil
}
