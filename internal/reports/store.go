package reports

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"LabLend-backend/internal/platform/db"
)

type Repository interface {
	MostBorrowed(ctx context.Context, r Range, limit int) ([]EquipmentCount, error)
	MostRepaired(ctx context.Context, r Range, limit int) ([]EquipmentCount, error)
	LoansByLab(ctx context.Context, r Range) ([]LabCount, error)
	RepairsByTechnician(ctx context.Context, r Range) ([]TechnicianCount, error)
	LoansByMonth(ctx context.Context, year int) (map[int]int64, error)
	LoansByYear(ctx context.Context) ([]PeriodCount, error)
	Summary(ctx context.Context) (Summary, error)
}

type Store struct{ db *sql.DB }

func NewStore(db *sql.DB) *Store { return &Store{db: db} }

// 承認されなかった貸出は「借りられた」に数えない
const countedLoan = `l.status IN ('APPROVED','ACTIVE','OVERDUE','RETURNED')`

// rangeWhere は日付列 col に期間条件を付ける
func rangeWhere(sb *strings.Builder, args []any, col string, r Range) []any {
	if r.From != nil {
		sb.WriteString(" AND " + col + " >= ?")
		args = append(args, *r.From)
	}
	if r.To != nil {
		sb.WriteString(" AND " + col + " <= ?")
		args = append(args, *r.To)
	}
	return args
}

func (s *Store) MostBorrowed(ctx context.Context, r Range, limit int) ([]EquipmentCount, error) {
	var sb strings.Builder
	sb.WriteString(`
		SELECT e.equipment_id, e.name, e.serial_number, COUNT(*) AS cnt
		FROM loans l
		JOIN equipment e ON e.equipment_id = l.equipment_id
		WHERE ` + countedLoan)
	args := rangeWhere(&sb, nil, "l.start_date", r)
	sb.WriteString(` GROUP BY e.equipment_id, e.name, e.serial_number ORDER BY cnt DESC, e.equipment_id LIMIT ?`)
	args = append(args, limit)
	return s.equipmentCounts(ctx, sb.String(), args)
}

func (s *Store) MostRepaired(ctx context.Context, r Range, limit int) ([]EquipmentCount, error) {
	var sb strings.Builder
	sb.WriteString(`
		SELECT e.equipment_id, e.name, e.serial_number, COUNT(*) AS cnt
		FROM repairs rp
		JOIN equipment e ON e.equipment_id = rp.equipment_id
		WHERE 1=1`)
	args := rangeWhere(&sb, nil, "rp.reported_date", r)
	sb.WriteString(` GROUP BY e.equipment_id, e.name, e.serial_number ORDER BY cnt DESC, e.equipment_id LIMIT ?`)
	args = append(args, limit)
	return s.equipmentCounts(ctx, sb.String(), args)
}

func (s *Store) equipmentCounts(ctx context.Context, q string, args []any) ([]EquipmentCount, error) {
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]EquipmentCount, 0)
	for rows.Next() {
		var c EquipmentCount
		if err := rows.Scan(&c.EquipmentID, &c.Name, &c.SerialNumber, &c.Count); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (s *Store) LoansByLab(ctx context.Context, r Range) ([]LabCount, error) {
	var sb strings.Builder
	sb.WriteString(`
		SELECT COALESCE(lb.lab_id, ''), COALESCE(lb.name, ''), COUNT(*) AS cnt
		FROM loans l
		JOIN equipment e ON e.equipment_id = l.equipment_id
		LEFT JOIN labs lb ON lb.lab_id = e.lab_id
		WHERE ` + countedLoan)
	args := rangeWhere(&sb, nil, "l.start_date", r)
	sb.WriteString(` GROUP BY lb.lab_id, lb.name ORDER BY cnt DESC, lb.name`)

	rows, err := s.db.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]LabCount, 0)
	for rows.Next() {
		var c LabCount
		if err := rows.Scan(&c.LabID, &c.LabName, &c.Count); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (s *Store) RepairsByTechnician(ctx context.Context, r Range) ([]TechnicianCount, error) {
	var sb strings.Builder
	sb.WriteString(`
		SELECT u.user_id, u.username, COUNT(*) AS cnt,
		       SUM(CASE WHEN rp.status = 'COMPLETED' THEN 1 ELSE 0 END) AS completed
		FROM repairs rp
		JOIN users u ON u.user_id = rp.technician_id
		WHERE 1=1`)
	args := rangeWhere(&sb, nil, "rp.reported_date", r)
	sb.WriteString(` GROUP BY u.user_id, u.username ORDER BY cnt DESC, u.username`)

	rows, err := s.db.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]TechnicianCount, 0)
	for rows.Next() {
		var c TechnicianCount
		if err := rows.Scan(&c.TechnicianID, &c.Username, &c.Count, &c.Completed); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (s *Store) LoansByMonth(ctx context.Context, year int) (map[int]int64, error) {
	from := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	const q = `
		SELECT MONTH(l.start_date) AS m, COUNT(*)
		FROM loans l
		WHERE ` + countedLoan + ` AND l.start_date >= ? AND l.start_date < ?
		GROUP BY m`
	rows, err := s.db.QueryContext(ctx, q, from, from.AddDate(1, 0, 0))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[int]int64, 12)
	for rows.Next() {
		var (
			m int
			n int64
		)
		if err := rows.Scan(&m, &n); err != nil {
			return nil, err
		}
		out[m] = n
	}
	return out, rows.Err()
}

func (s *Store) LoansByYear(ctx context.Context) ([]PeriodCount, error) {
	const q = `
		SELECT CAST(YEAR(l.start_date) AS CHAR) AS y, COUNT(*)
		FROM loans l
		WHERE ` + countedLoan + `
		GROUP BY y ORDER BY y`
	rows, err := s.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]PeriodCount, 0)
	for rows.Next() {
		var c PeriodCount
		if err := rows.Scan(&c.Period, &c.Count); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// Summary は一つの読み取り専用 Tx で集計して数字の食い違いを避ける
func (s *Store) Summary(ctx context.Context) (Summary, error) {
	var sum Summary
	err := db.ReadOnly(ctx, s.db, func(ctx context.Context, tx db.DBTX) error {
		var err error
		if sum.EquipmentByStatus, err = statusCounts(ctx, tx, `SELECT status, COUNT(*) FROM equipment GROUP BY status ORDER BY status`); err != nil {
			return err
		}
		if sum.LoansByStatus, err = statusCounts(ctx, tx, `SELECT status, COUNT(*) FROM loans GROUP BY status ORDER BY status`); err != nil {
			return err
		}
		const q = `
			SELECT
			  COALESCE(SUM(CASE WHEN status IN ('PENDING','IN_PROGRESS')
			                     OR (status = 'UNREPAIRABLE' AND admin_confirmed IS NULL) THEN 1 ELSE 0 END), 0),
			  COALESCE(SUM(CASE WHEN status = 'UNREPAIRABLE' AND admin_confirmed IS NULL THEN 1 ELSE 0 END), 0)
			FROM repairs`
		return tx.QueryRowContext(ctx, q).Scan(&sum.OpenRepairs, &sum.AwaitingConfirmation)
	})
	return sum, err
}

func statusCounts(ctx context.Context, tx db.DBTX, q string) ([]StatusCount, error) {
	rows, err := tx.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]StatusCount, 0)
	for rows.Next() {
		var c StatusCount
		if err := rows.Scan(&c.Status, &c.Count); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
