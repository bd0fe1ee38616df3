package repository

import (
	"context"
	"fmt"

	"hostel-management/internal/data/entity"
	"hostel-management/pkg/database"

	"github.com/google/uuid"
)

func insertSpecialRequests(ctx context.Context, q database.Querier, reqs []entity.SpecialRequest) error {
	query := `
		INSERT INTO booking_special_requests (id, booking_id, type, description, status, requested_by, requested_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	for _, req := range reqs {
		_, err := q.Exec(ctx, query,
			req.ID,
			req.BookingID,
			req.Type,
			req.Description,
			req.Status,
			req.RequestedBy,
			req.RequestedAt,
		)
		if err != nil {
			return fmt.Errorf("insert special request %s: %w", req.ID, err)
		}
	}
	return nil
}

func loadSpecialRequests(ctx context.Context, q database.Querier, bookingIDs []uuid.UUID) (map[uuid.UUID][]entity.SpecialRequest, error) {
	out := make(map[uuid.UUID][]entity.SpecialRequest, len(bookingIDs))
	if len(bookingIDs) == 0 {
		return out, nil
	}

	query := `
		SELECT id, booking_id, type, description, status, requested_by, requested_at
		FROM booking_special_requests
		WHERE booking_id = ANY($1)
		ORDER BY requested_at, id
	`
	rows, err := q.Query(ctx, query, bookingIDs)
	if err != nil {
		return nil, fmt.Errorf("load special requests: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var req entity.SpecialRequest
		err := rows.Scan(
			&req.ID,
			&req.BookingID,
			&req.Type,
			&req.Description,
			&req.Status,
			&req.RequestedBy,
			&req.RequestedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan special request row: %w", err)
		}
		out[req.BookingID] = append(out[req.BookingID], req)
	}
	return out, rows.Err()
}
