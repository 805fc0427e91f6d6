package equipment

import (
	"context"
	"database/sql"
	"strings"

	"LabLend-backend/internal/platform/apierr"
	"LabLend-backend/internal/platform/clock"
	"LabLend-backend/internal/platform/idgen"
	"LabLend-backend/internal/platform/paging"
)

type Service struct {
	store Repository
	clock clock.Clock
	id    idgen.IDGen
}

func NewService(store Repository) *Service {
	return &Service{store: store, clock: clock.System(), id: idgen.ULID()}
}

func (s *Service) Create(ctx context.Context, in CreateEquipmentRequest) (EquipmentResponse, error) {
	e := &Equipment{Status: StatusAvailable}
	if err := applyRequired(e, &in.Name, &in.SerialNumber, &in.Type); err != nil {
		return EquipmentResponse{}, err
	}
	if in.Status != nil {
		st, err := parseManualStatus(*in.Status)
		if err != nil {
			return EquipmentResponse{}, err
		}
		e.Status = st
	}
	if err := applyOptional(e, in.Location, in.LabID, in.PurchaseDate, in.PurchasePrice, in.Manufacturer, in.Model); err != nil {
		return EquipmentResponse{}, err
	}

	now := s.clock.Now()
	e.EquipmentID = s.id.NewULID(now)
	e.CreatedAt, e.UpdatedAt = now, now
	if err := s.store.Insert(ctx, e); err != nil {
		return EquipmentResponse{}, err
	}
	return e.toDTO(), nil
}

func (s *Service) Get(ctx context.Context, id string) (EquipmentResponse, error) {
	e, err := s.store.GetByID(ctx, id)
	if err != nil {
		return EquipmentResponse{}, err
	}
	return e.toDTO(), nil
}

func (s *Service) List(ctx context.Context, f Filter, p paging.Page) (paging.Result[EquipmentResponse], error) {
	rows, total, err := s.store.List(ctx, f, p)
	if err != nil {
		return paging.Result[EquipmentResponse]{}, err
	}
	items := make([]EquipmentResponse, 0, len(rows))
	for i := range rows {
		items = append(items, rows[i].toDTO())
	}
	return paging.NewResult(items, total, p), nil
}

// PUT /equipment/:id
func (s *Service) Update(ctx context.Context, id string, in UpdateEquipmentRequest) (EquipmentResponse, error) {
	e, err := s.store.Modify(ctx, id, func(e *Equipment, h Holds) error {
		if err := applyRequired(e, in.Name, in.SerialNumber, in.Type); err != nil {
			return err
		}
		if err := applyOptional(e, in.Location, in.LabID, in.PurchaseDate, in.PurchasePrice, in.Manufacturer, in.Model); err != nil {
			return err
		}
		if in.Status != nil {
			st, err := parseManualStatus(*in.Status)
			if err != nil {
				return err
			}
			if st != e.Status {
				// 貸出・修理が掴んでいる間はワークフロー側が状態を持つ
				if !e.Status.ManuallySettable() || h.Any() {
					return apierr.ConflictState("equipment status is managed by an open loan or repair", string(e.Status))
				}
				if h.Retired {
					return apierr.ConflictState("equipment was retired as unrepairable", string(e.Status))
				}
				e.Status = st
			}
		}
		e.UpdatedAt = s.clock.Now()
		return nil
	})
	if err != nil {
		return EquipmentResponse{}, err
	}
	return e.toDTO(), nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.store.Delete(ctx, id)
}

// GET /equipment/:id/availability
func (s *Service) Availability(ctx context.Context, id string) (AvailabilityResponse, error) {
	e, h, err := s.store.Availability(ctx, id)
	if err != nil {
		return AvailabilityResponse{}, err
	}
	res := AvailabilityResponse{
		EquipmentID: e.EquipmentID,
		Status:      e.Status,
		Available:   e.Status == StatusAvailable && !h.Any() && !h.Retired,
	}
	if h.OpenLoanID != "" {
		res.OpenLoanID = &h.OpenLoanID
	}
	if h.OpenRepairID != "" {
		res.OpenRepairID = &h.OpenRepairID
	}
	return res, nil
}

func parseManualStatus(v string) (Status, error) {
	st, ok := ParseStatus(v)
	if !ok || !st.ManuallySettable() {
		return "", apierr.InvalidField("status", "status can only be set to AVAILABLE or INACTIVE")
	}
	return st, nil
}

func applyRequired(e *Equipment, name, serial, typ *string) error {
	set := func(dst *string, v *string, field string) error {
		if v == nil {
			return nil
		}
		t := strings.TrimSpace(*v)
		if t == "" {
			return apierr.InvalidField(field, field+" must not be empty")
		}
		*dst = t
		return nil
	}
	if err := set(&e.Name, name, "name"); err != nil {
		return err
	}
	if err := set(&e.SerialNumber, serial, "serial_number"); err != nil {
		return err
	}
	return set(&e.Type, typ, "type")
}

func applyOptional(e *Equipment, location, labID, purchaseDate *string, price *float64, manufacturer, model *string) error {
	if location != nil {
		e.Location = toNullString(location)
	}
	if labID != nil {
		e.LabID = toNullString(labID)
	}
	if manufacturer != nil {
		e.Manufacturer = toNullString(manufacturer)
	}
	if model != nil {
		e.Model = toNullString(model)
	}
	if purchaseDate != nil {
		if strings.TrimSpace(*purchaseDate) == "" {
			e.PurchaseDate = sql.NullTime{}
		} else {
			d, err := clock.ParseDate(*purchaseDate)
			if err != nil {
				return apierr.InvalidField("purchase_date", "purchase_date must be YYYY-MM-DD")
			}
			e.PurchaseDate = sql.NullTime{Time: d, Valid: true}
		}
	}
	if price != nil {
		if *price < 0 {
			return apierr.InvalidField("purchase_price", "purchase_price must be >= 0")
		}
		e.PurchasePrice = sql.NullFloat64{Float64: *price, Valid: true}
	}
	return nil
}
