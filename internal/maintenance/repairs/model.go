package repairs

import (
	"database/sql"
	"strings"
	"time"

	"LabLend-backend/internal/platform/clock"
)

type Status string

const (
	StatusPending      Status = "PENDING"
	StatusInProgress   Status = "IN_PROGRESS"
	StatusCompleted    Status = "COMPLETED"
	StatusCancelled    Status = "CANCELLED"
	StatusUnrepairable Status = "UNREPAIRABLE"
)

// 技術者が PUT で進められる遷移。UNREPAIRABLE の差し戻しは管理者操作のみ
var transitions = map[Status][]Status{
	StatusPending:    {StatusInProgress, StatusCancelled},
	StatusInProgress: {StatusCompleted, StatusCancelled, StatusUnrepairable},
}

func ParseStatus(s string) (Status, bool) {
	switch st := Status(strings.ToUpper(strings.TrimSpace(s))); st {
	case StatusPending, StatusInProgress, StatusCompleted, StatusCancelled, StatusUnrepairable:
		return st, true
	}
	return "", false
}

func (s Status) CanTransitionTo(next Status) bool {
	for _, t := range transitions[s] {
		if t == next {
			return true
		}
	}
	return false
}

type Repair struct {
	RepairID       string
	EquipmentID    string
	UserID         string // 報告者
	TechnicianID   sql.NullString
	Description    string
	Status         Status
	Notes          sql.NullString
	AdminConfirmed sql.NullBool // UNREPAIRABLE のときだけ意味を持つ。NULL=管理者判断待ち
	ReportedDate   time.Time
	CompletedAt    sql.NullTime
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Open: 機器を押さえている修理
func (r *Repair) Open() bool {
	switch r.Status {
	case StatusPending, StatusInProgress:
		return true
	case StatusUnrepairable:
		return !r.AdminConfirmed.Valid
	}
	return false
}

func (r *Repair) AwaitingConfirmation() bool {
	return r.Status == StatusUnrepairable && !r.AdminConfirmed.Valid
}

type Filter struct {
	Status               *Status
	EquipmentID          *string
	TechnicianID         *string
	ReportedBy           *string
	AwaitingConfirmation bool
}

func (r *Repair) toDTO() RepairResponse {
	res := RepairResponse{
		RepairID:     r.RepairID,
		EquipmentID:  r.EquipmentID,
		UserID:       r.UserID,
		Description:  r.Description,
		Status:       r.Status,
		ReportedDate: clock.FormatDate(r.ReportedDate),
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
	if r.TechnicianID.Valid {
		v := r.TechnicianID.String
		res.TechnicianID = &v
	}
	if r.Notes.Valid {
		v := r.Notes.String
		res.Notes = &v
	}
	if r.AdminConfirmed.Valid {
		v := r.AdminConfirmed.Bool
		res.AdminConfirmed = &v
	}
	if r.CompletedAt.Valid {
		v := r.CompletedAt.Time
		res.CompletedAt = &v
	}
	return res
}
