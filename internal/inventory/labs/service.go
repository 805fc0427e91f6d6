package labs

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

func (s *Service) Create(ctx context.Context, in CreateLabRequest) (LabResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return LabResponse{}, apierr.InvalidField("name", "name is required")
	}
	capacity, err := normalizeCapacity(in.Capacity)
	if err != nil {
		return LabResponse{}, err
	}

	now := s.clock.Now()
	l := &Lab{
		LabID:     s.id.NewULID(now),
		Name:      name,
		Location:  toNullString(in.Location),
		Capacity:  capacity,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.store.Insert(ctx, l); err != nil {
		return LabResponse{}, err
	}
	return l.toDTO(0), nil
}

func (s *Service) Get(ctx context.Context, id string) (LabResponse, error) {
	l, n, err := s.store.GetByID(ctx, id)
	if err != nil {
		return LabResponse{}, err
	}
	return l.toDTO(n), nil
}

func (s *Service) List(ctx context.Context, q string, p paging.Page) (paging.Result[LabResponse], error) {
	rows, total, err := s.store.List(ctx, q, p)
	if err != nil {
		return paging.Result[LabResponse]{}, err
	}
	items := make([]LabResponse, 0, len(rows))
	for i := range rows {
		items = append(items, rows[i].Lab.toDTO(rows[i].EquipmentCount))
	}
	return paging.NewResult(items, total, p), nil
}

func (s *Service) Update(ctx context.Context, id string, in UpdateLabRequest) (LabResponse, error) {
	l, n, err := s.store.GetByID(ctx, id)
	if err != nil {
		return LabResponse{}, err
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return LabResponse{}, apierr.InvalidField("name", "name must not be empty")
		}
		l.Name = name
	}
	if in.Location != nil {
		l.Location = toNullString(in.Location)
	}
	if in.Capacity != nil {
		capacity, err := normalizeCapacity(in.Capacity)
		if err != nil {
			return LabResponse{}, err
		}
		l.Capacity = capacity
	}
	l.UpdatedAt = s.clock.Now()
	if err := s.store.Update(ctx, l); err != nil {
		return LabResponse{}, err
	}
	return l.toDTO(n), nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.store.Delete(ctx, id)
}

func normalizeCapacity(v *int) (uint, error) {
	if v == nil {
		return 0, nil
	}
	if *v < 0 {
		return 0, apierr.InvalidField("capacity", "capacity must be >= 0")
	}
	return uint(*v), nil
}

func toNullString(s *string) (ns sql.NullString) {
	if s != nil && strings.TrimSpace(*s) != "" {
		ns.Valid, ns.String = true, strings.TrimSpace(*s)
	}
	return
}
