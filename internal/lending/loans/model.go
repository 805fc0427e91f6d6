package loans

import (
	"database/sql"
	"strings"
	"time"

	"LabLend-backend/internal/platform/clock"
)

type Status string

const (
	StatusPending  Status = "PENDING"
	StatusApproved Status = "APPROVED"
	StatusActive   Status = "ACTIVE"
	StatusOverdue  Status = "OVERDUE"
	StatusReturned Status = "RETURNED"
	StatusRejected Status = "REJECTED"
)

// 許可される遷移。RETURNED / REJECTED は終端
var transitions = map[Status][]Status{
	StatusPending:  {StatusApproved, StatusRejected},
	StatusApproved: {StatusActive, StatusRejected},
	StatusActive:   {StatusOverdue, StatusReturned, StatusApproved},
	StatusOverdue:  {StatusReturned},
}

func ParseStatus(s string) (Status, bool) {
	switch st := Status(strings.ToUpper(strings.TrimSpace(s))); st {
	case StatusPending, StatusApproved, StatusActive, StatusOverdue, StatusReturned, StatusRejected:
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

// Open: 機器につき同時に1件まで
func (s Status) Open() bool {
	return s == StatusPending || s == StatusApproved || s == StatusActive || s == StatusOverdue
}

// Holding: 機器を IN_USE にしている状態
func (s Status) Holding() bool {
	return s == StatusApproved || s == StatusActive || s == StatusOverdue
}

func (s Status) Terminal() bool { return s == StatusReturned || s == StatusRejected }

// Changeable: 延長・日程変更を申請できる状態
func (s Status) Changeable() bool { return s == StatusApproved || s == StatusActive }

type PendingChange string

const (
	ChangeNone       PendingChange = ""
	ChangeExtend     PendingChange = "EXTEND"
	ChangeReschedule PendingChange = "RESCHEDULE"
)

func ParsePendingChange(s string) (PendingChange, bool) {
	switch c := PendingChange(strings.ToUpper(strings.TrimSpace(s))); c {
	case ChangeExtend, ChangeReschedule:
		return c, true
	}
	return "", false
}

type Decision string

const (
	DecisionApprove Decision = "APPROVE"
	DecisionReject  Decision = "REJECT"
)

func ParseDecision(s string) (Decision, bool) {
	switch d := Decision(strings.ToUpper(strings.TrimSpace(s))); d {
	case DecisionApprove, DecisionReject:
		return d, true
	}
	return "", false
}

type Loan struct {
	LoanID             string
	EquipmentID        string
	UserID             string
	Status             Status
	StartDate          time.Time
	EndDate            time.Time
	PendingChange      PendingChange
	RequestedStartDate sql.NullTime
	RequestedEndDate   sql.NullTime
	ChangeReason       sql.NullString
	Notes              sql.NullString
	RejectionReason    sql.NullString
	DecidedBy          sql.NullString
	DecidedAt          sql.NullTime
	ReturnedAt         sql.NullTime
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// clearChange は保留中の延長・日程変更を取り消す
func (l *Loan) clearChange() {
	l.PendingChange = ChangeNone
	l.RequestedStartDate = sql.NullTime{}
	l.RequestedEndDate = sql.NullTime{}
	l.ChangeReason = sql.NullString{}
}

type Filter struct {
	Status        *Status
	UserID        *string
	EquipmentID   *string
	PendingChange *PendingChange
	From          *time.Time // start_date >= From
	To            *time.Time // start_date <= To
}

func (l *Loan) toDTO() LoanResponse {
	res := LoanResponse{
		LoanID:          l.LoanID,
		EquipmentID:     l.EquipmentID,
		UserID:          l.UserID,
		Status:          l.Status,
		StartDate:       clock.FormatDate(l.StartDate),
		EndDate:         clock.FormatDate(l.EndDate),
		Notes:           nullStr(l.Notes),
		RejectionReason: nullStr(l.RejectionReason),
		ChangeReason:    nullStr(l.ChangeReason),
		DecidedBy:       nullStr(l.DecidedBy),
		DecidedAt:       nullTime(l.DecidedAt),
		ReturnedAt:      nullTime(l.ReturnedAt),
		CreatedAt:       l.CreatedAt,
		UpdatedAt:       l.UpdatedAt,
	}
	if l.PendingChange != ChangeNone {
		pc := l.PendingChange
		res.PendingChange = &pc
	}
	if l.RequestedStartDate.Valid {
		d := clock.FormatDate(l.RequestedStartDate.Time)
		res.RequestedStartDate = &d
	}
	if l.RequestedEndDate.Valid {
		d := clock.FormatDate(l.RequestedEndDate.Time)
		res.RequestedEndDate = &d
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

func nullTime(nt sql.NullTime) *time.Time {
	if !nt.Valid {
		return nil
	}
	t := nt.Time
	return &t
}

func toNullString(s *string) (ns sql.NullString) {
	if s != nil && strings.TrimSpace(*s) != "" {
		ns.Valid, ns.String = true, strings.TrimSpace(*s)
	}
	return
}
