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

type HostelFilter struct {
	City       *string
	ActiveOnly bool
}

type HostelRepository interface {
	Create(ctx context.Context, hostel *entity.Hostel) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Hostel, error)
	FindAll(ctx context.Context, limit, offset int, filter HostelFilter) ([]*entity.Hostel, error)
	CountAll(ctx context.Context, filter HostelFilter) (int64, error)
	Update(ctx context.Context, hostel *entity.Hostel) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type hostelRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewHostelRepository(db database.PgxIface, log *zap.Logger) HostelRepository {
	return &hostelRepository{
		db:  db,
		log: log.With(zap.String("repository", "hostel")),
	}
}

func (r *hostelRepository) Create(ctx context.Context, hostel *entity.Hostel) error {
	query := `
		INSERT INTO hostels (id, name, address, city, gender, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.Exec(ctx, query,
		hostel.ID,
		hostel.Name,
		hostel.Address,
		hostel.City,
		hostel.Gender,
		hostel.IsActive,
		hostel.CreatedAt,
		hostel.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to create hostel",
			zap.Error(err),
			zap.String("name", hostel.Name),
		)
		return fmt.Errorf("create hostel %s: %w", hostel.Name, err)
	}

	return nil
}

func (r *hostelRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Hostel, error) {
	query := `
		SELECT id, name, address, city, gender, is_active, created_at, updated_at, deleted_at
		FROM hostels
		WHERE id = $1 AND deleted_at IS NULL
	`

	var hostel entity.Hostel
	err := r.db.QueryRow(ctx, query, id).Scan(
		&hostel.ID,
		&hostel.Name,
		&hostel.Address,
		&hostel.City,
		&hostel.Gender,
		&hostel.IsActive,
		&hostel.CreatedAt,
		&hostel.UpdatedAt,
		&hostel.DeletedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find hostel by ID",
			zap.Error(err),
			zap.String("hostel_id", id.String()),
		)
		return nil, fmt.Errorf("find hostel by ID %s: %w", id, err)
	}

	return &hostel, nil
}

// where builds the shared WHERE clause for list and count, numbering
// placeholders from 1.
func (f HostelFilter) where() (string, []any) {
	var sb strings.Builder
	sb.WriteString(" WHERE deleted_at IS NULL")
	args := []any{}

	if f.City != nil && *f.City != "" {
		args = append(args, "%"+*f.City+"%")
		fmt.Fprintf(&sb, " AND city ILIKE $%d", len(args))
	}
	if f.ActiveOnly {
		sb.WriteString(" AND is_active = TRUE")
	}
	return sb.String(), args
}

func (r *hostelRepository) FindAll(ctx context.Context, limit, offset int, filter HostelFilter) ([]*entity.Hostel, error) {
	where, args := filter.where()
	query := `SELECT id, name, address, city, gender, is_active, created_at, updated_at FROM hostels` + where +
		fmt.Sprintf(" ORDER BY city, name LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to list hostels",
			zap.Error(err),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
			zap.Stringp("city_filter", filter.City),
		)
		return nil, fmt.Errorf("find all hostels limit %d offset %d: %w", limit, offset, err)
	}
	defer rows.Close()

	hostels := []*entity.Hostel{}
	for rows.Next() {
		var hostel entity.Hostel
		err := rows.Scan(
			&hostel.ID,
			&hostel.Name,
			&hostel.Address,
			&hostel.City,
			&hostel.Gender,
			&hostel.IsActive,
			&hostel.CreatedAt,
			&hostel.UpdatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan hostel row", zap.Error(err))
			return nil, fmt.Errorf("scan hostel row: %w", err)
		}
		hostels = append(hostels, &hostel)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate hostel rows: %w", err)
	}

	return hostels, nil
}

func (r *hostelRepository) CountAll(ctx context.Context, filter HostelFilter) (int64, error) {
	where, args := filter.where()

	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM hostels`+where, args...).Scan(&total); err != nil {
		r.log.Error("Failed to count hostels", zap.Error(err))
		return 0, fmt.Errorf("count all hostels: %w", err)
	}

	return total, nil
}

func (r *hostelRepository) Update(ctx context.Context, hostel *entity.Hostel) error {
	query := `
		UPDATE hostels
		SET name = $2, address = $3, city = $4, gender = $5, is_active = $6, updated_at = $7
		WHERE id = $1 AND deleted_at IS NULL
	`

	result, err := r.db.Exec(ctx, query,
		hostel.ID,
		hostel.Name,
		hostel.Address,
		hostel.City,
		hostel.Gender,
		hostel.IsActive,
		hostel.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to update hostel",
			zap.Error(err),
			zap.String("hostel_id", hostel.ID.String()),
		)
		return fmt.Errorf("update hostel %s: %w", hostel.ID, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("update hostel %s: %w", hostel.ID, ErrNotFound)
	}

	return nil
}

func (r *hostelRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE hostels SET deleted_at = NOW() WHERE id = $1 AND deleted_at IS NULL`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete hostel",
			zap.Error(err),
			zap.String("hostel_id", id.String()),
		)
		return fmt.Errorf("delete hostel %s: %w", id, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("delete hostel %s: %w", id, ErrNotFound)
	}

	r.log.Info("Hostel deleted", zap.String("hostel_id", id.String()))
	return nil
}
