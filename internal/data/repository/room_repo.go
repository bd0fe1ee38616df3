package repository

import (
	"context"
	"errors"
	"fmt"

	"hostel-management/internal/data/entity"
	"hostel-management/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type RoomRepository interface {
	// Create inserts the room together with its beds in one transaction.
	Create(ctx context.Context, room *entity.Room, beds []*entity.Bed) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Room, error)
	FindByHostelID(ctx context.Context, hostelID uuid.UUID) ([]*entity.Room, error)
	Update(ctx context.Context, room *entity.Room) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type roomRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewRoomRepository(db database.PgxIface, log *zap.Logger) RoomRepository {
	return &roomRepository{
		db:  db,
		log: log.With(zap.String("repository", "room")),
	}
}

func (r *roomRepository) Create(ctx context.Context, room *entity.Room, beds []*entity.Bed) error {
	err := database.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		query := `
			INSERT INTO rooms (id, hostel_id, room_number, floor, capacity, monthly_rate, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		`
		_, err := tx.Exec(ctx, query,
			room.ID,
			room.HostelID,
			room.RoomNumber,
			room.Floor,
			room.Capacity,
			room.MonthlyRate,
			room.CreatedAt,
			room.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("insert room: %w", err)
		}
		return insertBeds(ctx, tx, beds)
	})
	if err != nil {
		r.log.Error("Failed to create room",
			zap.Error(err),
			zap.String("hostel_id", room.HostelID.String()),
			zap.String("room_number", room.RoomNumber),
		)
		return fmt.Errorf("create room %s in hostel %s: %w", room.RoomNumber, room.HostelID, err)
	}

	return nil
}

func (r *roomRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Room, error) {
	query := `
		SELECT id, hostel_id, room_number, floor, capacity, monthly_rate, created_at, updated_at, deleted_at
		FROM rooms
		WHERE id = $1 AND deleted_at IS NULL
	`

	var room entity.Room
	err := r.db.QueryRow(ctx, query, id).Scan(
		&room.ID,
		&room.HostelID,
		&room.RoomNumber,
		&room.Floor,
		&room.Capacity,
		&room.MonthlyRate,
		&room.CreatedAt,
		&room.UpdatedAt,
		&room.DeletedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find room by ID",
			zap.Error(err),
			zap.String("room_id", id.String()),
		)
		return nil, fmt.Errorf("find room by ID %s: %w", id, err)
	}

	return &room, nil
}

func (r *roomRepository) FindByHostelID(ctx context.Context, hostelID uuid.UUID) ([]*entity.Room, error) {
	query := `
		SELECT id, hostel_id, room_number, floor, capacity, monthly_rate, created_at, updated_at
		FROM rooms
		WHERE hostel_id = $1 AND deleted_at IS NULL
		ORDER BY floor, room_number
	`

	rows, err := r.db.Query(ctx, query, hostelID)
	if err != nil {
		r.log.Error("Failed to find rooms by hostel ID",
			zap.Error(err),
			zap.String("hostel_id", hostelID.String()),
		)
		return nil, fmt.Errorf("find rooms by hostel ID %s: %w", hostelID, err)
	}
	defer rows.Close()

	rooms := []*entity.Room{}
	for rows.Next() {
		var room entity.Room
		err := rows.Scan(
			&room.ID,
			&room.HostelID,
			&room.RoomNumber,
			&room.Floor,
			&room.Capacity,
			&room.MonthlyRate,
			&room.CreatedAt,
			&room.UpdatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan room row", zap.Error(err))
			return nil, fmt.Errorf("scan room row: %w", err)
		}
		rooms = append(rooms, &room)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate room rows: %w", err)
	}

	return rooms, nil
}

func (r *roomRepository) Update(ctx context.Context, room *entity.Room) error {
	query := `
		UPDATE rooms
		SET room_number = $2, floor = $3, monthly_rate = $4, updated_at = $5
		WHERE id = $1 AND deleted_at IS NULL
	`

	result, err := r.db.Exec(ctx, query,
		room.ID,
		room.RoomNumber,
		room.Floor,
		room.MonthlyRate,
		room.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to update room",
			zap.Error(err),
			zap.String("room_id", room.ID.String()),
		)
		return fmt.Errorf("update room %s: %w", room.ID, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("update room %s: %w", room.ID, ErrNotFound)
	}

	return nil
}

func (r *roomRepository) Delete(ctx context.Context, id uuid.UUID) error {
	err := database.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		result, err := tx.Exec(ctx, `UPDATE rooms SET deleted_at = NOW() WHERE id = $1 AND deleted_at IS NULL`, id)
		if err != nil {
			return err
		}
		if result.RowsAffected() == 0 {
			return ErrNotFound
		}
		_, err = tx.Exec(ctx, `UPDATE beds SET deleted_at = NOW() WHERE room_id = $1 AND deleted_at IS NULL`, id)
		return err
	})
	if errors.Is(err, ErrNotFound) {
		return fmt.Errorf("delete room %s: %w", id, err)
	}
	if err != nil {
		r.log.Error("Failed to delete room",
			zap.Error(err),
			zap.String("room_id", id.String()),
		)
		return fmt.Errorf("delete room %s: %w", id, err)
	}

	r.log.Info("Room deleted", zap.String("room_id", id.String()))
	return nil
}
