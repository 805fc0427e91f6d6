package loans

import "time"

// ===== Requests =====
// 操作ごとに型を分ける。日付はすべて YYYY-MM-DD

type CreateLoanRequest struct {
	EquipmentID string  `json:"equipment_id" binding:"required"`
	UserID      string  `json:"user_id,omitempty"` // 省略時は呼び出し元
	StartDate   string  `json:"start_date" binding:"required"`
	EndDate     string  `json:"end_date" binding:"required"`
	Notes       *string `json:"notes,omitempty"`
}

type DecideLoanRequest struct {
	Decision string  `json:"decision" binding:"required"` // APPROVE or REJECT
	Reason   *string `json:"reason,omitempty"`
}

type ExtendRequest struct {
	NewEndDate string  `json:"new_end_date" binding:"required"`
	Notes      *string `json:"notes,omitempty"`
}

type RescheduleRequest struct {
	NewStartDate string  `json:"new_start_date" binding:"required"`
	NewEndDate   string  `json:"new_end_date" binding:"required"`
	Reason       *string `json:"reason,omitempty"`
}

// ChangeDecisionRequest は延長・日程変更の承認/却下
type ChangeDecisionRequest struct {
	Decision string `json:"decision" binding:"required"`
}

// ===== Responses =====

type LoanResponse struct {
	LoanID             string         `json:"id"`
	EquipmentID        string         `json:"equipment_id"`
	UserID             string         `json:"user_id"`
	Status             Status         `json:"status"`
	StartDate          string         `json:"start_date"`
	EndDate            string         `json:"end_date"`
	PendingChange      *PendingChange `json:"pending_change,omitempty"`
	RequestedStartDate *string        `json:"requested_start_date,omitempty"`
	RequestedEndDate   *string        `json:"requested_end_date,omitempty"`
	ChangeReason       *string        `json:"change_reason,omitempty"`
	Notes              *string        `json:"notes,omitempty"`
	RejectionReason    *string        `json:"rejection_reason,omitempty"`
	DecidedBy          *string        `json:"decided_by,omitempty"`
	DecidedAt          *time.Time     `json:"decided_at,omitempty"`
	ReturnedAt         *time.Time     `json:"returned_at,omitempty"`
	CreatedAt          time.Time      `json:"created_at"`
	UpdatedAt          time.Time      `json:"updated_at"`
}

type SweepResult struct {
	Activated int `json:"activated"`
	Overdue   int `json:"overdue"`
}
