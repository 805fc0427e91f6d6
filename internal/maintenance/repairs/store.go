package repairs

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"LabLend-backend/internal/inventory/equipment"
	"LabLend-backend/internal/platform/apierr"
	"LabLend-backend/internal/platform/db"
	"LabLend-backend/internal/platform/paging"
)

type Repository interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context, tx TxStore) error) error
	Get(ctx context.Context, id string) (*Repair, error)
	List(ctx context.Context, f Filter, p paging.Page) ([]Repair, int64, error)
}

// TxStore: ロック順は 機器 → 修理（貸出側と同じく機器を先に取る）
type TxStore interface {
	EquipmentOf(ctx context.Context, repairID string) (string, error)
	LockEquipment(ctx context.Context, equipmentID string) (equipment.Status, error)
	LockRepair(ctx context.Context, repairID string) (*Repair, error)
	OpenRepairID(ctx context.Context, equipmentID string) (string, error)
	// HoldingLoanID は機器を IN_USE にしている貸出（APPROVED/ACTIVE/OVERDUE）
	HoldingLoanID(ctx context.Context, equipmentID string) (string, error)
	InsertRepair(ctx context.Context, r *Repair) error
	UpdateRepair(ctx context.Context, r *Repair) error
	DeleteRepair(ctx context.Context, repairID string) error
	SetEquipmentStatus(ctx context.Context, equipmentID string, st equipment.Status, now time.Time) error
}

type Store struct{ db *sql.DB }

func NewStore(db *sql.DB) *Store { return &Store{db: db} }

const repairColumns = `repair_id, equipment_id, user_id, technician_id, description, status, notes,
	admin_confirmed, reported_date, completed_at, created_at, updated_at`

type scanner interface{ Scan(dest ...any) error }

func scanRepair(row scanner) (*Repair, error) {
	var r Repair
	if err := row.Scan(
		&r.RepairID, &r.EquipmentID, &r.UserID, &r.TechnicianID, &r.Description, &r.Status, &r.Notes,
		&r.AdminConfirmed, &r.ReportedDate, &r.CompletedAt, &r.CreatedAt, &r.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &r, nil
}

func (s *Store) RunInTx(ctx context.Context, fn func(ctx context.Context, tx TxStore) error) error {
	return db.RunInTx(ctx, s.db, nil, func(ctx context.Context, tx db.DBTX) error {
		return fn(ctx, &txStore{q: tx})
	})
}

func (s *Store) Get(ctx context.Context, id string) (*Repair, error) {
	r, err := scanRepair(s.db.QueryRowContext(ctx, `SELECT `+repairColumns+` FROM repairs WHERE repair_id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apierr.NotFound("repair not found")
	}
	return r, err
}

func (s *Store) List(ctx context.Context, f Filter, p paging.Page) ([]Repair, int64, error) {
	p = p.Normalize()

	var sb strings.Builder
	args := []any{}
	sb.WriteString(` WHERE 1=1`)
	if f.Status != nil {
		sb.WriteString(` AND status = ?`)
		args = append(args, *f.Status)
	}
	if f.EquipmentID != nil {
		sb.WriteString(` AND equipment_id = ?`)
		args = append(args, *f.EquipmentID)
	}
	if f.TechnicianID != nil {
		sb.WriteString(` AND technician_id = ?`)
		args = append(args, *f.TechnicianID)
	}
	if f.ReportedBy != nil {
		sb.WriteString(` AND user_id = ?`)
		args = append(args, *f.ReportedBy)
	}
	if f.AwaitingConfirmation {
		sb.WriteString(` AND status = 'UNREPAIRABLE' AND admin_confirmed IS NULL`)
	}
	where := sb.String()

	var total int64
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM repairs`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	q := `SELECT ` + repairColumns + ` FROM repairs` + where +
		` ORDER BY created_at ` + p.Order + `, repair_id ` + p.Order + ` LIMIT ? OFFSET ?`
	rows, err := s.db.QueryContext(ctx, q, append(args, p.Limit, p.Offset)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	list := []Repair{}
	for rows.Next() {
		r, err := scanRepair(rows)
		if err != nil {
			return nil, 0, err
		}
		list = append(list, *r)
	}
	return list, total, rows.Err()
}

// ===== tx =====

type txStore struct{ q db.DBTX }

func (t *txStore) EquipmentOf(ctx context.Context, repairID string) (string, error) {
	var id string
	err := t.q.QueryRowContext(ctx, `SELECT equipment_id FROM repairs WHERE repair_id = ?`, repairID).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return "", apierr.NotFound("repair not found")
	}
	return id, err
}

func (t *txStore) LockEquipment(ctx context.Context, equipmentID string) (equipment.Status, error) {
	var st equipment.Status
	err := t.q.QueryRowContext(ctx, `SELECT status FROM equipment WHERE equipment_id = ? FOR UPDATE`, equipmentID).Scan(&st)
	if errors.Is(err, sql.ErrNoRows) {
		return "", apierr.NotFound("equipment not found")
	}
	return st, err
}

func (t *txStore) LockRepair(ctx context.Context, repairID string) (*Repair, error) {
	r, err := scanRepair(t.q.QueryRowContext(ctx, `SELECT `+repairColumns+` FROM repairs WHERE repair_id = ? FOR UPDATE`, repairID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apierr.NotFound("repair not found")
	}
	return r, err
}

func (t *txStore) OpenRepairID(ctx context.Context, equipmentID string) (string, error) {
	const q = `SELECT repair_id FROM repairs
		WHERE equipment_id = ? AND (status IN ('PENDING','IN_PROGRESS') OR (status = 'UNREPAIRABLE' AND admin_confirmed IS NULL))
		LIMIT 1`
	return t.optionalID(ctx, q, equipmentID)
}

func (t *txStore) HoldingLoanID(ctx context.Context, equipmentID string) (string, error) {
	const q = `SELECT loan_id FROM loans WHERE equipment_id = ? AND status IN ('APPROVED','ACTIVE','OVERDUE') LIMIT 1`
	return t.optionalID(ctx, q, equipmentID)
}

func (t *txStore) optionalID(ctx context.Context, q, arg string) (string, error) {
	var id string
	err := t.q.QueryRowContext(ctx, q, arg).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	return id, err
}

func (t *txStore) InsertRepair(ctx context.Context, r *Repair) error {
	const q = `INSERT INTO repairs (` + repairColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := t.q.ExecContext(ctx, q,
		r.RepairID, r.EquipmentID, r.UserID, r.TechnicianID, r.Description, r.Status, r.Notes,
		r.AdminConfirmed, r.ReportedDate, r.CompletedAt, r.CreatedAt, r.UpdatedAt)
	if db.IsMissingReference(err) {
		return apierr.InvalidField("user_id", "reporter does not exist")
	}
	return err
}

func (t *txStore) UpdateRepair(ctx context.Context, r *Repair) error {
	const q = `
	UPDATE repairs SET technician_id = ?, status = ?, notes = ?, admin_confirmed = ?, completed_at = ?, updated_at = ?
	WHERE repair_id = ?`
	res, err := t.q.ExecContext(ctx, q,
		r.TechnicianID, r.Status, r.Notes, r.AdminConfirmed, r.CompletedAt, r.UpdatedAt, r.RepairID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n != 1 {
		return apierr.Internal("failed to update repair")
	}
	return nil
}

func (t *txStore) DeleteRepair(ctx context.Context, repairID string) error {
	res, err := t.q.ExecContext(ctx, `DELETE FROM repairs WHERE repair_id = ?`, repairID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apierr.NotFound("repair not found")
	}
	return nil
}

func (t *txStore) SetEquipmentStatus(ctx context.Context, equipmentID string, st equipment.Status, now time.Time) error {
	const q = `UPDATE equipment SET status = ?, updated_at = ? WHERE equipment_id = ?`
	_, err := t.q.ExecContext(ctx, q, st, now, equipmentID)
	return err
}
