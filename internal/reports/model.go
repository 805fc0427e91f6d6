package reports

import (
	"time"

	"LabLend-backend/internal/platform/clock"
)

// Range は集計期間（両端を含む日付）。nil は無制限
type Range struct {
	From *time.Time
	To   *time.Time
}

func (r Range) key() string {
	f, t := "-", "-"
	if r.From != nil {
		f = clock.FormatDate(*r.From)
	}
	if r.To != nil {
		t = clock.FormatDate(*r.To)
	}
	return f + ":" + t
}

type EquipmentCount struct {
	EquipmentID  string `json:"equipment_id"`
	Name         string `json:"name"`
	SerialNumber string `json:"serial_number"`
	Count        int64  `json:"count"`
}

type LabCount struct {
	LabID   string `json:"lab_id"` // 研究室未設定は空文字
	LabName string `json:"lab_name"`
	Count   int64  `json:"count"`
}

type TechnicianCount struct {
	TechnicianID string `json:"technician_id"`
	Username     string `json:"username"`
	Count        int64  `json:"count"`
	Completed    int64  `json:"completed"`
}

type PeriodCount struct {
	Period string `json:"period"` // YYYY-MM or YYYY
	Count  int64  `json:"count"`
}

type StatusCount struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

type Summary struct {
	EquipmentByStatus    []StatusCount `json:"equipment_by_status"`
	LoansByStatus        []StatusCount `json:"loans_by_status"`
	OpenRepairs          int64         `json:"open_repairs"`
	AwaitingConfirmation int64         `json:"awaiting_confirmation"`
}

// ===== export 用の表形式 =====

type Table struct {
	Name    string
	Headers []string
	Rows    [][]any // string / int64
}

func equipmentTable(name string, rows []EquipmentCount) Table {
	t := Table{Name: name, Headers: []string{"equipment_id", "name", "serial_number", "count"}}
	for _, r := range rows {
		t.Rows = append(t.Rows, []any{r.EquipmentID, r.Name, r.SerialNumber, r.Count})
	}
	return t
}

func labTable(rows []LabCount) Table {
	t := Table{Name: "loans-by-lab", Headers: []string{"lab_id", "lab_name", "count"}}
	for _, r := range rows {
		t.Rows = append(t.Rows, []any{r.LabID, r.LabName, r.Count})
	}
	return t
}

func technicianTable(rows []TechnicianCount) Table {
	t := Table{Name: "repairs-by-technician", Headers: []string{"technician_id", "username", "count", "completed"}}
	for _, r := range rows {
		t.Rows = append(t.Rows, []any{r.TechnicianID, r.Username, r.Count, r.Completed})
	}
	return t
}

func periodTable(name string, rows []PeriodCount) Table {
	t := Table{Name: name, Headers: []string{"period", "count"}}
	for _, r := range rows {
		t.Rows = append(t.Rows, []any{r.Period, r.Count})
	}
	return t
}

func summaryTable(s Summary) Table {
	t := Table{Name: "summary", Headers: []string{"section", "key", "count"}}
	for _, r := range s.EquipmentByStatus {
		t.Rows = append(t.Rows, []any{"equipment", r.Status, r.Count})
	}
	for _, r := range s.LoansByStatus {
		t.Rows = append(t.Rows, []any{"loans", r.Status, r.Count})
	}
	t.Rows = append(t.Rows,
		[]any{"repairs", "open", s.OpenRepairs},
		[]any{"repairs", "awaiting_confirmation", s.AwaitingConfirmation},
	)
	return t
}
