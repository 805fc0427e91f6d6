package loans

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

// Repository は貸出の永続化。状態遷移はすべて RunInTx の中で TxStore 経由で行う
type Repository interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context, tx TxStore) error) error
	Get(ctx context.Context, id string) (*Loan, error)
	List(ctx context.Context, f Filter, p paging.Page) ([]Loan, int64, error)
	// ListDue はスイープ対象（開始日到来の APPROVED / 終了日超過の ACTIVE）
	ListDue(ctx context.Context, today time.Time) ([]string, error)
}

// TxStore: ロック順は 機器 → 貸出 で固定
type TxStore interface {
	EquipmentOf(ctx context.Context, loanID string) (string, error)
	LockEquipment(ctx context.Context, equipmentID string) (equipment.Status, error)
	LockLoan(ctx context.Context, loanID string) (*Loan, error)
	OpenLoanID(ctx context.Context, equipmentID string) (string, error)
	// OpenRepairStatus は未終了の修理の状態。無ければ ""
	OpenRepairStatus(ctx context.Context, equipmentID string) (string, error)
	InsertLoan(ctx context.Context, l *Loan) error
	UpdateLoan(ctx context.Context, l *Loan) error
	DeleteLoan(ctx context.Context, loanID string) error
	SetEquipmentStatus(ctx context.Context, equipmentID string, st equipment.Status, now time.Time) error
}

type Store struct{ db *sql.DB }

func NewStore(db *sql.DB) *Store { return &Store{db: db} }

const loanColumns = `loan_id, equipment_id, user_id, status, start_date, end_date, pending_change,
	requested_start_date, requested_end_date, change_reason, notes, rejection_reason,
	decided_by, decided_at, returned_at, created_at, updated_at`

type scanner interface{ Scan(dest ...any) error }

func scanLoan(row scanner) (*Loan, error) {
	var (
		l  Loan
		pc sql.NullString
	)
	if err := row.Scan(
		&l.LoanID, &l.EquipmentID, &l.UserID, &l.Status, &l.StartDate, &l.EndDate, &pc,
		&l.RequestedStartDate, &l.RequestedEndDate, &l.ChangeReason, &l.Notes, &l.RejectionReason,
		&l.DecidedBy, &l.DecidedAt, &l.ReturnedAt, &l.CreatedAt, &l.UpdatedAt,
	); err != nil {
		return nil, err
	}
	l.PendingChange = PendingChange(pc.String)
	return &l, nil
}

func pendingArg(pc PendingChange) sql.NullString {
	return sql.NullString{String: string(pc), Valid: pc != ChangeNone}
}

func (s *Store) RunInTx(ctx context.Context, fn func(ctx context.Context, tx TxStore) error) error {
	return db.RunInTx(ctx, s.db, nil, func(ctx context.Context, tx db.DBTX) error {
		return fn(ctx, &txStore{q: tx})
	})
}

func (s *Store) Get(ctx context.Context, id string) (*Loan, error) {
	l, err := scanLoan(s.db.QueryRowContext(ctx, `SELECT `+loanColumns+` FROM loans WHERE loan_id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apierr.NotFound("loan not found")
	}
	return l, err
}

func buildWhere(f Filter) (string, []any) {
	var sb strings.Builder
	args := []any{}
	sb.WriteString(` WHERE 1=1`)
	if f.Status != nil {
		sb.WriteString(` AND status = ?`)
		args = append(args, *f.Status)
	}
	if f.UserID != nil {
		sb.WriteString(` AND user_id = ?`)
		args = append(args, *f.UserID)
	}
	if f.EquipmentID != nil {
		sb.WriteString(` AND equipment_id = ?`)
		args = append(args, *f.EquipmentID)
	}
	if f.PendingChange != nil {
		sb.WriteString(` AND pending_change = ?`)
		args = append(args, string(*f.PendingChange))
	}
	if f.From != nil {
		sb.WriteString(` AND start_date >= ?`)
		args = append(args, *f.From)
	}
	if f.To != nil {
		sb.WriteString(` AND start_date <= ?`)
		args = append(args, *f.To)
	}
	return sb.String(), args
}

func (s *Store) List(ctx context.Context, f Filter, p paging.Page) ([]Loan, int64, error) {
	p = p.Normalize()
	where, args := buildWhere(f)

	var total int64
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM loans`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	q := `SELECT ` + loanColumns + ` FROM loans` + where +
		` ORDER BY created_at ` + p.Order + `, loan_id ` + p.Order + ` LIMIT ? OFFSET ?`
	rows, err := s.db.QueryContext(ctx, q, append(args, p.Limit, p.Offset)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	list := []Loan{}
	for rows.Next() {
		l, err := scanLoan(rows)
		if err != nil {
			return nil, 0, err
		}
		list = append(list, *l)
	}
	return list, total, rows.Err()
}

func (s *Store) ListDue(ctx context.Context, today time.Time) ([]string, error) {
	const q = `
	SELECT loan_id FROM loans
	WHERE (status = 'APPROVED' AND start_date <= ?)
	   OR (status = 'ACTIVE' AND end_date < ?)
	ORDER BY start_date, loan_id`
	rows, err := s.db.QueryContext(ctx, q, today, today)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// ===== tx =====

type txStore struct{ q db.DBTX }

func (t *txStore) EquipmentOf(ctx context.Context, loanID string) (string, error) {
	var id string
	err := t.q.QueryRowContext(ctx, `SELECT equipment_id FROM loans WHERE loan_id = ?`, loanID).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return "", apierr.NotFound("loan not found")
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

func (t *txStore) LockLoan(ctx context.Context, loanID string) (*Loan, error) {
	l, err := scanLoan(t.q.QueryRowContext(ctx, `SELECT `+loanColumns+` FROM loans WHERE loan_id = ? FOR UPDATE`, loanID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apierr.NotFound("loan not found")
	}
	return l, err
}

func (t *txStore) OpenLoanID(ctx context.Context, equipmentID string) (string, error) {
	const q = `SELECT loan_id FROM loans WHERE equipment_id = ? AND status IN ('PENDING','APPROVED','ACTIVE','OVERDUE') LIMIT 1`
	var id string
	err := t.q.QueryRowContext(ctx, q, equipmentID).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	return id, err
}

func (t *txStore) OpenRepairStatus(ctx context.Context, equipmentID string) (string, error) {
	const q = `SELECT status FROM repairs
		WHERE equipment_id = ? AND (status IN ('PENDING','IN_PROGRESS') OR (status = 'UNREPAIRABLE' AND admin_confirmed IS NULL))
		LIMIT 1`
	var st string
	err := t.q.QueryRowContext(ctx, q, equipmentID).Scan(&st)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	return st, err
}

func (t *txStore) InsertLoan(ctx context.Context, l *Loan) error {
	const q = `INSERT INTO loans (` + loanColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := t.q.ExecContext(ctx, q,
		l.LoanID, l.EquipmentID, l.UserID, l.Status, l.StartDate, l.EndDate, pendingArg(l.PendingChange),
		l.RequestedStartDate, l.RequestedEndDate, l.ChangeReason, l.Notes, l.RejectionReason,
		l.DecidedBy, l.DecidedAt, l.ReturnedAt, l.CreatedAt, l.UpdatedAt)
	switch {
	case db.IsDuplicateKey(err):
		// uq_loans_open_equipment
		return apierr.Conflict("equipment already has an open loan")
	case db.IsMissingReference(err):
		return apierr.InvalidField("user_id", "user does not exist")
	}
	return err
}

func (t *txStore) UpdateLoan(ctx context.Context, l *Loan) error {
	const q = `
	UPDATE loans SET status = ?, start_date = ?, end_date = ?, pending_change = ?,
		requested_start_date = ?, requested_end_date = ?, change_reason = ?, rejection_reason = ?,
		decided_by = ?, decided_at = ?, returned_at = ?, updated_at = ?
	WHERE loan_id = ?`
	res, err := t.q.ExecContext(ctx, q,
		l.Status, l.StartDate, l.EndDate, pendingArg(l.PendingChange),
		l.RequestedStartDate, l.RequestedEndDate, l.ChangeReason, l.RejectionReason,
		l.DecidedBy, l.DecidedAt, l.ReturnedAt, l.UpdatedAt, l.LoanID)
	if db.IsDuplicateKey(err) {
		return apierr.Conflict("equipment already has an open loan")
	}
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n != 1 {
		return apierr.Internal("failed to update loan")
	}
	return nil
}

func (t *txStore) DeleteLoan(ctx context.Context, loanID string) error {
	res, err := t.q.ExecContext(ctx, `DELETE FROM loans WHERE loan_id = ?`, loanID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apierr.NotFound("loan not found")
	}
	return nil
}

func (t *txStore) SetEquipmentStatus(ctx context.Context, equipmentID string, st equipment.Status, now time.Time) error {
	const q = `UPDATE equipment SET status = ?, updated_at = ? WHERE equipment_id = ?`
	_, err := t.q.ExecContext(ctx, q, st, now, equipmentID)
	return err
}
