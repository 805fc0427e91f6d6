package repairs

import "time"

type CreateRepairRequest struct {
	EquipmentID string `json:"equipment_id" binding:"required"`
	Description string `json:"description" binding:"required"`
}

type UpdateRepairRequest struct {
	Status *string `json:"status,omitempty"`
	Notes  *string `json:"notes,omitempty"`
}

type AdminRejectRequest struct {
	Notes *string `json:"notes,omitempty"`
}

type RepairResponse struct {
	RepairID       string     `json:"id"`
	EquipmentID    string     `json:"equipment_id"`
	UserID         string     `json:"user_id"`
	TechnicianID   *string    `json:"technician_id,omitempty"`
	Description    string     `json:"description"`
	Status         Status     `json:"status"`
	Notes          *string    `json:"notes,omitempty"`
	AdminConfirmed *bool      `json:"admin_confirmed"`
	ReportedDate   string     `json:"reported_date"`
	CompletedAt    *time.Time `json:"completed_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}
