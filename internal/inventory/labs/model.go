package labs

import (
	"database/sql"
	"time"
)

type Lab struct {
	LabID     string
	Name      string
	Location  sql.NullString
	Capacity  uint
	CreatedAt time.Time
	UpdatedAt time.Time
}

type CreateLabRequest struct {
	Name     string  `json:"name" binding:"required"`
	Location *string `json:"location,omitempty"`
	Capacity *int    `json:"capacity,omitempty"`
}

type UpdateLabRequest struct {
	Name     *string `json:"name,omitempty"`
	Location *string `json:"location,omitempty"`
	Capacity *int    `json:"capacity,omitempty"`
}

type LabResponse struct {
	LabID          string    `json:"id"`
	Name           string    `json:"name"`
	Location       *string   `json:"location,omitempty"`
	Capacity       uint      `json:"capacity"`
	EquipmentCount int64     `json:"equipment_count"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func (l *Lab) toDTO(equipmentCount int64) LabResponse {
	res := LabResponse{
		LabID:          l.LabID,
		Name:           l.Name,
		Capacity:       l.Capacity,
		EquipmentCount: equipmentCount,
		CreatedAt:      l.CreatedAt,
		UpdatedAt:      l.UpdatedAt,
	}
	if l.Location.Valid {
		v := l.Location.String
		res.Location = &v
	}
	return res
}
