package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"hostel-management/internal/data/entity"
	"hostel-management/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type BedRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Bed, error)
	FindByRoomID(ctx context.Context, roomID uuid.UUID) ([]*entity.Bed, error)
	FindAvailable(ctx context.Context, roomID uuid.UUID) ([]*entity.Bed, error)
	UpdateAvailability(ctx context.Context, bedID uuid.UUID, isAvailable bool) error
}

type bedRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewBedRepository(db database.PgxIface, log *zap.Logger) BedRepository {
	return &bedRepository{
		db:  db,
		log: log.With(zap.String("repository", "bed")),
	}
}

// insertBeds writes all beds with a single multi-row INSERT.
func insertBeds(ctx context.Context, q database.Querier, beds []*entity.Bed) error {
	if len(beds) == 0 {
		return nil
	}

	var sb strings.Builder
	sb.WriteString(`INSERT INTO beds (id, room_id, label, is_available, created_at, updated_at) VALUES `)
	args := make([]any, 0, len(beds)*6)

	for i, bed := range beds {
		if i > 0 {
			sb.WriteString(", ")
		}
		n := i * 6
		fmt.Fprintf(&sb, "($%d, $%d, $%d, $%d, $%d, $%d)", n+1, n+2, n+3, n+4, n+5, n+6)
		args = append(args, bed.ID, bed.RoomID, bed.Label, bed.IsAvailable, bed.CreatedAt, bed.UpdatedAt)
	}

	if _, err := q.Exec(ctx, sb.String(), args...); err != nil {
		return fmt.Errorf("insert %d beds: %w", len(beds), err)
	}
	return nil
}

func setBedAvailability(ctx context.Context, q database.Querier, bedID uuid.UUID, isAvailable bool) (int64, error) {
	result, err := q.Exec(ctx,
		`UPDATE beds SET is_available = $2, updated_at = NOW() WHERE id = $1 AND deleted_at IS NULL`,
		bedID, isAvailable)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

func (r *bedRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Bed, error) {
	query := `
		SELECT id, room_id, label, is_available, created_at, updated_at, deleted_at
		FROM beds
		WHERE id = $1 AND deleted_at IS NULL
	`

	var bed entity.Bed
	err := r.db.QueryRow(ctx, query, id).Scan(
		&bed.ID,
		&bed.RoomID,
		&bed.Label,
		&bed.IsAvailable,
		&bed.CreatedAt,
		&bed.UpdatedAt,
		&bed.DeletedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find bed by ID",
			zap.Error(err),
			zap.String("bed_id", id.String()),
		)
		return nil, fmt.Errorf("find bed by ID %s: %w", id, err)
	}

	return &bed, nil
}

func (r *bedRepository) FindByRoomID(ctx context.Context, roomID uuid.UUID) ([]*entity.Bed, error) {
	return r.findByRoom(ctx, roomID, false)
}

func (r *bedRepository) FindAvailable(ctx context.Context, roomID uuid.UUID) ([]*entity.Bed, error) {
	return r.findByRoom(ctx, roomID, true)
}

func (r *bedRepository) findByRoom(ctx context.Context, roomID uuid.UUID, availableOnly bool) ([]*entity.Bed, error) {
	query := `
		SELECT id, room_id, label, is_available, created_at, updated_at
		FROM beds
		WHERE room_id = $1 AND deleted_at IS NULL AND ($2 = FALSE OR is_available = TRUE)
		ORDER BY label
	`

	rows, err := r.db.Query(ctx, query, roomID, availableOnly)
	if err != nil {
		r.log.Error("Failed to find beds by room ID",
			zap.Error(err),
			zap.String("room_id", roomID.String()),
			zap.Bool("available_only", availableOnly),
		)
		return nil, fmt.Errorf("find beds by room ID %s: %w", roomID, err)
	}
	defer rows.Close()

	beds := []*entity.Bed{}
	for rows.Next() {
		var bed entity.Bed
		err := rows.Scan(
			&bed.ID,
			&bed.RoomID,
			&bed.Label,
			&bed.IsAvailable,
			&bed.CreatedAt,
			&bed.UpdatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan bed row", zap.Error(err))
			return nil, fmt.Errorf("scan bed row: %w", err)
		}
		beds = append(beds, &bed)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate bed rows: %w", err)
	}

	return beds, nil
}

func (r *bedRepository) UpdateAvailability(ctx context.Context, bedID uuid.UUID, isAvailable bool) error {
	affected, err := setBedAvailability(ctx, r.db, bedID, isAvailable)
	if err != nil {
		r.log.Error("Failed to update bed availability",
			zap.Error(err),
			zap.String("bed_id", bedID.String()),
			zap.Bool("is_available", isAvailable),
		)
		return fmt.Errorf("update availability of bed %s: %w", bedID, err)
	}

	if affected == 0 {
		return fmt.Errorf("update availability of bed %s: %w", bedID, ErrNotFound)
	}

	return nil
}
