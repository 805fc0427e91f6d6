package labs

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"LabLend-backend/internal/platform/apierr"
	"LabLend-backend/internal/platform/db"
	"LabLend-backend/internal/platform/paging"
)

type Repository interface {
	Insert(ctx context.Context, l *Lab) error
	GetByID(ctx context.Context, id string) (*Lab, int64, error)
	List(ctx context.Context, q string, p paging.Page) ([]labRow, int64, error)
	Update(ctx context.Context, l *Lab) error
	Delete(ctx context.Context, id string) error
}

// 一覧用：機器数を集計して返す
type labRow struct {
	Lab
	EquipmentCount int64
}

type Store struct{ db *sql.DB }

func NewStore(db *sql.DB) *Store { return &Store{db: db} }

const labSelect = `
	SELECT l.lab_id, l.name, l.location, l.capacity, l.created_at, l.updated_at,
	       (SELECT COUNT(*) FROM equipment e WHERE e.lab_id = l.lab_id) AS equipment_count
	FROM labs l`

func (s *Store) Insert(ctx context.Context, l *Lab) error {
	const q = `INSERT INTO labs (lab_id, name, location, capacity, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)`
	_, err := s.db.ExecContext(ctx, q, l.LabID, l.Name, l.Location, l.Capacity, l.CreatedAt, l.UpdatedAt)
	if db.IsDuplicateKey(err) {
		return apierr.Conflict("lab name already exists")
	}
	return err
}

func (s *Store) GetByID(ctx context.Context, id string) (*Lab, int64, error) {
	var r labRow
	err := s.db.QueryRowContext(ctx, labSelect+` WHERE l.lab_id = ?`, id).Scan(
		&r.LabID, &r.Name, &r.Location, &r.Capacity, &r.CreatedAt, &r.UpdatedAt, &r.EquipmentCount)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, 0, apierr.NotFound("lab not found")
	}
	if err != nil {
		return nil, 0, err
	}
	return &r.Lab, r.EquipmentCount, nil
}

func (s *Store) List(ctx context.Context, q string, p paging.Page) ([]labRow, int64, error) {
	p = p.Normalize()
	where := ""
	var args []any
	if q = strings.TrimSpace(q); q != "" {
		where = ` WHERE l.name LIKE ? OR l.location LIKE ?`
		args = append(args, "%"+q+"%", "%"+q+"%")
	}

	var total int64
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM labs l`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := s.db.QueryContext(ctx, labSelect+where+` ORDER BY l.name `+p.Order+` LIMIT ? OFFSET ?`, append(args, p.Limit, p.Offset)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []labRow
	for rows.Next() {
		var r labRow
		if err := rows.Scan(&r.LabID, &r.Name, &r.Location, &r.Capacity, &r.CreatedAt, &r.UpdatedAt, &r.EquipmentCount); err != nil {
			return nil, 0, err
		}
		out = append(out, r)
	}
	return out, total, rows.Err()
}

func (s *Store) Update(ctx context.Context, l *Lab) error {
	const q = `UPDATE labs SET name = ?, location = ?, capacity = ?, updated_at = ? WHERE lab_id = ?`
	_, err := s.db.ExecContext(ctx, q, l.Name, l.Location, l.Capacity, l.UpdatedAt, l.LabID)
	if db.IsDuplicateKey(err) {
		return apierr.Conflict("lab name already exists")
	}
	return err
}

func (s *Store) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM labs WHERE lab_id = ?`, id)
	if db.IsRowReferenced(err) {
		return apierr.Conflict("lab still has equipment assigned")
	}
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apierr.NotFound("lab not found")
	}
	return nil
}
