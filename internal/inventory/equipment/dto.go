package equipment

import "time"

// ===== Requests =====

type CreateEquipmentRequest struct {
	Name          string   `json:"name" binding:"required"`
	SerialNumber  string   `json:"serial_number" binding:"required"`
	Type          string   `json:"type" binding:"required"`
	Status        *string  `json:"status,omitempty"` // AVAILABLE or INACTIVE
	Location      *string  `json:"location,omitempty"`
	LabID         *string  `json:"lab_id,omitempty"`
	PurchaseDate  *string  `json:"purchase_date,omitempty"` // YYYY-MM-DD
	PurchasePrice *float64 `json:"purchase_price,omitempty"`
	Manufacturer  *string  `json:"manufacturer,omitempty"`
	Model         *string  `json:"model,omitempty"`
}

// UpdateEquipmentRequest: 空文字は NULL クリア
type UpdateEquipmentRequest struct {
	Name          *string  `json:"name,omitempty"`
	SerialNumber  *string  `json:"serial_number,omitempty"`
	Type          *string  `json:"type,omitempty"`
	Status        *string  `json:"status,omitempty"`
	Location      *string  `json:"location,omitempty"`
	LabID         *string  `json:"lab_id,omitempty"`
	PurchaseDate  *string  `json:"purchase_date,omitempty"`
	PurchasePrice *float64 `json:"purchase_price,omitempty"`
	Manufacturer  *string  `json:"manufacturer,omitempty"`
	Model         *string  `json:"model,omitempty"`
}

// ===== Responses =====

type EquipmentResponse struct {
	EquipmentID   string    `json:"id"`
	Name          string    `json:"name"`
	SerialNumber  string    `json:"serial_number"`
	Type          string    `json:"type"`
	Status        Status    `json:"status"`
	Location      *string   `json:"location,omitempty"`
	LabID         *string   `json:"lab_id,omitempty"`
	PurchaseDate  *string   `json:"purchase_date,omitempty"`
	PurchasePrice *float64  `json:"purchase_price,omitempty"`
	Manufacturer  *string   `json:"manufacturer,omitempty"`
	Model         *string   `json:"model,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type AvailabilityResponse struct {
	EquipmentID  string  `json:"equipment_id"`
	Status       Status  `json:"status"`
	OpenLoanID   *string `json:"open_loan_id,omitempty"`
	OpenRepairID *string `json:"open_repair_id,omitempty"`
	Available    bool    `json:"available"`
}
