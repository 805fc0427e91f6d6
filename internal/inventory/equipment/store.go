package equipment

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
	Insert(ctx context.Context, e *Equipment) error
	GetByID(ctx context.Context, id string) (*Equipment, error)
	List(ctx context.Context, f Filter, p paging.Page) ([]Equipment, int64, error)
	// Modify は行ロックを取って fn を適用し、成功したら書き戻す
	Modify(ctx context.Context, id string, fn func(e *Equipment, h Holds) error) (*Equipment, error)
	Delete(ctx context.Context, id string) error
	Availability(ctx context.Context, id string) (*Equipment, Holds, error)
}

type Store struct{ db *sql.DB }

func NewStore(db *sql.DB) *Store { return &Store{db: db} }

const equipmentColumns = `equipment_id, name, serial_number, type, status, location, lab_id,
	purchase_date, purchase_price, manufacturer, model, created_at, updated_at`

// 未終了の貸出・修理。loans / repairs パッケージと同じ定義を使う
const (
	openLoanSQL = `SELECT loan_id FROM loans
		WHERE equipment_id = ? AND status IN ('PENDING','APPROVED','ACTIVE','OVERDUE') LIMIT 1`
	openRepairSQL = `SELECT repair_id FROM repairs
		WHERE equipment_id = ? AND (status IN ('PENDING','IN_PROGRESS') OR (status = 'UNREPAIRABLE' AND admin_confirmed IS NULL)) LIMIT 1`
	retiredSQL = `SELECT EXISTS (SELECT 1 FROM repairs
		WHERE equipment_id = ? AND status = 'UNREPAIRABLE' AND admin_confirmed = 1)`
)

type scanner interface{ Scan(dest ...any) error }

func scanEquipment(row scanner) (*Equipment, error) {
	var e Equipment
	if err := row.Scan(
		&e.EquipmentID, &e.Name, &e.SerialNumber, &e.Type, &e.Status, &e.Location, &e.LabID,
		&e.PurchaseDate, &e.PurchasePrice, &e.Manufacturer, &e.Model, &e.CreatedAt, &e.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &e, nil
}

func translateWriteErr(err error) error {
	switch {
	case err == nil:
		return nil
	case db.IsDuplicateKey(err):
		return apierr.Conflict("serial_number already exists")
	case db.IsMissingReference(err):
		return apierr.InvalidField("lab_id", "lab does not exist")
	}
	return err
}

func (s *Store) Insert(ctx context.Context, e *Equipment) error {
	const q = `INSERT INTO equipment (` + equipmentColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := s.db.ExecContext(ctx, q,
		e.EquipmentID, e.Name, e.SerialNumber, e.Type, e.Status, e.Location, e.LabID,
		e.PurchaseDate, e.PurchasePrice, e.Manufacturer, e.Model, e.CreatedAt, e.UpdatedAt)
	return translateWriteErr(err)
}

func (s *Store) GetByID(ctx context.Context, id string) (*Equipment, error) {
	return getEquipment(ctx, s.db, id, false)
}

func getEquipment(ctx context.Context, q db.DBTX, id string, forUpdate bool) (*Equipment, error) {
	query := `SELECT ` + equipmentColumns + ` FROM equipment WHERE equipment_id = ?`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	e, err := scanEquipment(q.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apierr.NotFound("equipment not found")
	}
	return e, err
}

func (s *Store) List(ctx context.Context, f Filter, p paging.Page) ([]Equipment, int64, error) {
	p = p.Normalize()

	var where strings.Builder
	args := []any{}
	where.WriteString(` WHERE 1=1`)
	if f.Status != nil {
		where.WriteString(` AND status = ?`)
		args = append(args, *f.Status)
	}
	if f.LabID != nil {
		where.WriteString(` AND lab_id = ?`)
		args = append(args, *f.LabID)
	}
	if f.Type != nil {
		where.WriteString(` AND type = ?`)
		args = append(args, *f.Type)
	}
	if q := strings.TrimSpace(f.Q); q != "" {
		where.WriteString(` AND (name LIKE ? OR serial_number LIKE ? OR model LIKE ?)`)
		like := "%" + q + "%"
		args = append(args, like, like, like)
	}

	var total int64
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM equipment`+where.String(), args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + equipmentColumns + ` FROM equipment` + where.String() +
		` ORDER BY created_at ` + p.Order + `, equipment_id ` + p.Order + ` LIMIT ? OFFSET ?`
	rows, err := s.db.QueryContext(ctx, query, append(args, p.Limit, p.Offset)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	list := []Equipment{}
	for rows.Next() {
		e, err := scanEquipment(rows)
		if err != nil {
			return nil, 0, err
		}
		list = append(list, *e)
	}
	return list, total, rows.Err()
}

func (s *Store) Modify(ctx context.Context, id string, fn func(e *Equipment, h Holds) error) (*Equipment, error) {
	var out *Equipment
	err := db.RunInTx(ctx, s.db, nil, func(ctx context.Context, tx db.DBTX) error {
		e, err := getEquipment(ctx, tx, id, true)
		if err != nil {
			return err
		}
		h, err := loadHolds(ctx, tx, id)
		if err != nil {
			return err
		}
		if err := fn(e, h); err != nil {
			return err
		}
		const q = `UPDATE equipment SET name = ?, serial_number = ?, type = ?, status = ?, location = ?, lab_id = ?,
			purchase_date = ?, purchase_price = ?, manufacturer = ?, model = ?, updated_at = ?
			WHERE equipment_id = ?`
		if _, err := tx.ExecContext(ctx, q,
			e.Name, e.SerialNumber, e.Type, e.Status, e.Location, e.LabID,
			e.PurchaseDate, e.PurchasePrice, e.Manufacturer, e.Model, e.UpdatedAt, e.EquipmentID,
		); err != nil {
			return translateWriteErr(err)
		}
		out = e
		return nil
	})
	return out, err
}

func (s *Store) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM equipment WHERE equipment_id = ?`, id)
	if db.IsRowReferenced(err) {
		return apierr.Conflict("equipment is referenced by loans or repairs")
	}
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apierr.NotFound("equipment not found")
	}
	return nil
}

func (s *Store) Availability(ctx context.Context, id string) (*Equipment, Holds, error) {
	var (
		e *Equipment
		h Holds
	)
	err := db.ReadOnly(ctx, s.db, func(ctx context.Context, tx db.DBTX) error {
		var err error
		if e, err = getEquipment(ctx, tx, id, false); err != nil {
			return err
		}
		h, err = loadHolds(ctx, tx, id)
		return err
	})
	return e, h, err
}

func loadHolds(ctx context.Context, q db.DBTX, id string) (Holds, error) {
	var h Holds
	if err := q.QueryRowContext(ctx, openLoanSQL, id).Scan(&h.OpenLoanID); err != nil && !errors.Is(err, sql.ErrNoRows) {
		return Holds{}, err
	}
	if err := q.QueryRowContext(ctx, openRepairSQL, id).Scan(&h.OpenRepairID); err != nil && !errors.Is(err, sql.ErrNoRows) {
		return Holds{}, err
	}
	if err := q.QueryRowContext(ctx, retiredSQL, id).Scan(&h.Retired); err != nil {
		return Holds{}, err
	}
	return h, nil
}
