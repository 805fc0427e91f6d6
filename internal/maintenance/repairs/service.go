package repairs

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"LabLend-backend/internal/inventory/equipment"
	"LabLend-backend/internal/platform/apierr"
	"LabLend-backend/internal/platform/auth"
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

func (s *Service) withRepair(ctx context.Context, id string, fn func(ctx context.Context, tx TxStore, r *Repair) error) error {
	return s.store.RunInTx(ctx, func(ctx context.Context, tx TxStore) error {
		eqID, err := tx.EquipmentOf(ctx, id)
		if err != nil {
			return err
		}
		if _, err := tx.LockEquipment(ctx, eqID); err != nil {
			return err
		}
		r, err := tx.LockRepair(ctx, id)
		if err != nil {
			return err
		}
		return fn(ctx, tx, r)
	})
}

// release: 修理が機器を手放す。貸出が掴んでいれば IN_USE のまま
func release(ctx context.Context, tx TxStore, equipmentID string, now time.Time) error {
	loanID, err := tx.HoldingLoanID(ctx, equipmentID)
	if err != nil {
		return err
	}
	st := equipment.StatusAvailable
	if loanID != "" {
		st = equipment.StatusInUse
	}
	return tx.SetEquipmentStatus(ctx, equipmentID, st, now)
}

// POST /repairs
func (s *Service) Create(ctx context.Context, p auth.Principal, in CreateRepairRequest) (RepairResponse, error) {
	equipmentID := strings.TrimSpace(in.EquipmentID)
	if equipmentID == "" {
		return RepairResponse{}, apierr.InvalidField("equipment_id", "equipment_id is required")
	}
	desc := strings.TrimSpace(in.Description)
	if desc == "" {
		return RepairResponse{}, apierr.InvalidField("description", "description is required")
	}

	now := s.clock.Now()
	r := &Repair{
		RepairID:     s.id.NewULID(now),
		EquipmentID:  equipmentID,
		UserID:       p.UserID,
		Description:  desc,
		Status:       StatusPending,
		ReportedDate: clock.TruncateDay(now),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	err := s.store.RunInTx(ctx, func(ctx context.Context, tx TxStore) error {
		eq, err := tx.LockEquipment(ctx, equipmentID)
		if err != nil {
			return err
		}
		if eq == equipment.StatusInactive {
			return apierr.ConflictState("equipment is retired", string(eq))
		}
		open, err := tx.OpenRepairID(ctx, equipmentID)
		if err != nil {
			return err
		}
		if open != "" {
			return apierr.Conflict("equipment already has an open repair")
		}
		if err := tx.InsertRepair(ctx, r); err != nil {
			return err
		}
		// 貸出中の機器は返却まで IN_USE のまま。返却時に UNDER_MAINTENANCE へ
		if eq == equipment.StatusAvailable {
			return tx.SetEquipmentStatus(ctx, equipmentID, equipment.StatusUnderMaintenance, now)
		}
		return nil
	})
	if err != nil {
		return RepairResponse{}, err
	}
	return r.toDTO(), nil
}

// PUT /repairs/:id
func (s *Service) Update(ctx context.Context, p auth.Principal, id string, in UpdateRepairRequest) (RepairResponse, error) {
	if !p.HasRole(auth.RoleTechnician, auth.RoleAdmin) {
		return RepairResponse{}, apierr.Forbidden("only technicians or admins can update repairs")
	}
	var next Status
	if in.Status != nil {
		st, ok := ParseStatus(*in.Status)
		if !ok {
			return RepairResponse{}, apierr.InvalidField("status", "unknown repair status")
		}
		next = st
	}

	var out *Repair
	err := s.withRepair(ctx, id, func(ctx context.Context, tx TxStore, r *Repair) error {
		now := s.clock.Now()
		if in.Notes != nil {
			r.Notes = toNullString(in.Notes)
		}
		if next != "" && next != r.Status {
			if !r.Status.CanTransitionTo(next) {
				return apierr.ConflictState("repair cannot move to "+string(next), string(r.Status))
			}
			if err := s.apply(ctx, tx, p, r, next, now); err != nil {
				return err
			}
		}
		r.UpdatedAt = now
		out = r
		return tx.UpdateRepair(ctx, r)
	})
	if err != nil {
		return RepairResponse{}, err
	}
	return out.toDTO(), nil
}

// apply は状態ごとの副作用（機器状態・技術者・完了日時）
func (s *Service) apply(ctx context.Context, tx TxStore, p auth.Principal, r *Repair, next Status, now time.Time) error {
	switch next {
	case StatusInProgress:
		loanID, err := tx.HoldingLoanID(ctx, r.EquipmentID)
		if err != nil {
			return err
		}
		if loanID != "" {
			return apierr.ConflictState("equipment is still on loan", string(equipment.StatusInUse))
		}
		r.TechnicianID = sql.NullString{String: p.UserID, Valid: true}
		if err := tx.SetEquipmentStatus(ctx, r.EquipmentID, equipment.StatusUnderRepair, now); err != nil {
			return err
		}
	case StatusCompleted:
		r.CompletedAt = sql.NullTime{Time: now, Valid: true}
		if err := release(ctx, tx, r.EquipmentID, now); err != nil {
			return err
		}
	case StatusCancelled:
		if err := release(ctx, tx, r.EquipmentID, now); err != nil {
			return err
		}
	case StatusUnrepairable:
		r.AdminConfirmed = sql.NullBool{}
	}
	r.Status = next
	return nil
}

// POST /repairs/:id/admin-confirm
func (s *Service) ConfirmUnrepairable(ctx context.Context, p auth.Principal, id string) (RepairResponse, error) {
	if !p.IsAdmin() {
		return RepairResponse{}, apierr.Forbidden("only admins can confirm unrepairable equipment")
	}
	var out *Repair
	err := s.withRepair(ctx, id, func(ctx context.Context, tx TxStore, r *Repair) error {
		if !r.AwaitingConfirmation() {
			return apierr.ConflictState("repair is not awaiting confirmation", string(r.Status))
		}
		now := s.clock.Now()
		r.AdminConfirmed = sql.NullBool{Bool: true, Valid: true}
		r.UpdatedAt = now
		if err := tx.SetEquipmentStatus(ctx, r.EquipmentID, equipment.StatusInactive, now); err != nil {
			return err
		}
		out = r
		return tx.UpdateRepair(ctx, r)
	})
	if err != nil {
		return RepairResponse{}, err
	}
	return out.toDTO(), nil
}

// POST /repairs/:id/admin-reject は修理を IN_PROGRESS に差し戻す
func (s *Service) RejectUnrepairable(ctx context.Context, p auth.Principal, id string, in AdminRejectRequest) (RepairResponse, error) {
	if !p.IsAdmin() {
		return RepairResponse{}, apierr.Forbidden("only admins can reject unrepairable reports")
	}
	var out *Repair
	err := s.withRepair(ctx, id, func(ctx context.Context, tx TxStore, r *Repair) error {
		if !r.AwaitingConfirmation() {
			return apierr.ConflictState("repair is not awaiting confirmation", string(r.Status))
		}
		now := s.clock.Now()
		r.AdminConfirmed = sql.NullBool{Bool: false, Valid: true}
		r.Status = StatusInProgress
		if in.Notes != nil {
			r.Notes = toNullString(in.Notes)
		}
		r.UpdatedAt = now
		if err := tx.SetEquipmentStatus(ctx, r.EquipmentID, equipment.StatusUnderRepair, now); err != nil {
			return err
		}
		out = r
		return tx.UpdateRepair(ctx, r)
	})
	if err != nil {
		return RepairResponse{}, err
	}
	return out.toDTO(), nil
}

// DELETE /repairs/:id
func (s *Service) Delete(ctx context.Context, p auth.Principal, id string) error {
	if !p.IsAdmin() {
		return apierr.Forbidden("only admins can delete repairs")
	}
	return s.withRepair(ctx, id, func(ctx context.Context, tx TxStore, r *Repair) error {
		if err := tx.DeleteRepair(ctx, r.RepairID); err != nil {
			return err
		}
		if r.Open() {
			return release(ctx, tx, r.EquipmentID, s.clock.Now())
		}
		return nil
	})
}

// Get: USER は自分が報告したものだけ
func (s *Service) Get(ctx context.Context, p auth.Principal, id string) (RepairResponse, error) {
	r, err := s.store.Get(ctx, id)
	if err != nil {
		return RepairResponse{}, err
	}
	if !p.HasRole(auth.RoleTechnician, auth.RoleAdmin) && r.UserID != p.UserID {
		return RepairResponse{}, apierr.Forbidden("not your report")
	}
	return r.toDTO(), nil
}

func (s *Service) List(ctx context.Context, p auth.Principal, f Filter, pg paging.Page) (paging.Result[RepairResponse], error) {
	if !p.HasRole(auth.RoleTechnician, auth.RoleAdmin) {
		uid := p.UserID
		f.ReportedBy = &uid
	}
	rows, total, err := s.store.List(ctx, f, pg)
	if err != nil {
		return paging.Result[RepairResponse]{}, err
	}
	items := make([]RepairResponse, 0, len(rows))
	for i := range rows {
		items = append(items, rows[i].toDTO())
	}
	return paging.NewResult(items, total, pg), nil
}

func toNullString(s *string) (ns sql.NullString) {
	if s != nil && strings.TrimSpace(*s) != "" {
		ns.Valid, ns.String = true, strings.TrimSpace(*s)
	}
	return
}
