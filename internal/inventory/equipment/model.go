package equipment

import (
	"database/sql"
	"strings"
	"time"

	"LabLend-backend/internal/platform/clock"
)

type Status string

const (
	StatusAvailable        Status = "AVAILABLE"
	StatusInUse            Status = "IN_USE"
	StatusUnderMaintenance Status = "UNDER_MAINTENANCE"
	StatusUnderRepair      Status = "UNDER_REPAIR"
	StatusInactive         Status = "INACTIVE"
)

func ParseStatus(s string) (Status, bool) {
	switch st := Status(strings.ToUpper(strings.TrimSpace(s))); st {
	case StatusAvailable, StatusInUse, StatusUnderMaintenance, StatusUnderRepair, StatusInactive:
		return st, true
	}
	return "", false
}

// ManuallySettable: 手動で設定できるのは AVAILABLE / INACTIVE だけ。他はワークフローが動かす
func (s Status) ManuallySettable() bool {
	return s == StatusAvailable || s == StatusInactive
}

type Equipment struct {
	EquipmentID   string
	Name          string
	SerialNumber  string
	Type          string
	Status        Status
	Location      sql.NullString
	LabID         sql.NullString
	PurchaseDate  sql.NullTime
	PurchasePrice sql.NullFloat64
	Manufacturer  sql.NullString
	Model         sql.NullString
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Holds は機器を掴んでいる未終了の貸出・修理
type Holds struct {
	OpenLoanID   string
	OpenRepairID string
	Retired      bool // 修理不能が確定済み。INACTIVE から戻せない
}

func (h Holds) Any() bool { return h.OpenLoanID != "" || h.OpenRepairID != "" }

type Filter struct {
	Status *Status
	LabID  *string
	Type   *string
	Q      string
}

func (e *Equipment) toDTO() EquipmentResponse {
	res := EquipmentResponse{
		EquipmentID:  e.EquipmentID,
		Name:         e.Name,
		SerialNumber: e.SerialNumber,
		Type:         e.Type,
		Status:       e.Status,
		Location:     nullStr(e.Location),
		LabID:        nullStr(e.LabID),
		Manufacturer: nullStr(e.Manufacturer),
		Model:        nullStr(e.Model),
		CreatedAt:    e.CreatedAt,
		UpdatedAt:    e.UpdatedAt,
	}
	if e.PurchaseDate.Valid {
		d := clock.FormatDate(e.PurchaseDate.Time)
		res.PurchaseDate = &d
	}
	if e.PurchasePrice.Valid {
		p := e.PurchasePrice.Float64
		res.PurchasePrice = &p
	}
	return res
}

func nullStr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	v := ns.String
	return &v
}

func toNullString(s *string) (ns sql.NullString) {
	if s != nil && strings.TrimSpace(*s) != "" {
		ns.Valid, ns.String = true, strings.TrimSpace(*s)
	}
	return
}
