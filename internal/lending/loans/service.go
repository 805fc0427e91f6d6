package loans

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

// withLoan は 機器 → 貸出 の順に行ロックを取って fn を実行する
func (s *Service) withLoan(ctx context.Context, loanID string, fn func(ctx context.Context, tx TxStore, l *Loan, eq equipment.Status) error) error {
	return s.store.RunInTx(ctx, func(ctx context.Context, tx TxStore) error {
		eqID, err := tx.EquipmentOf(ctx, loanID)
		if err != nil {
			return err
		}
		eq, err := tx.LockEquipment(ctx, eqID)
		if err != nil {
			return err
		}
		l, err := tx.LockLoan(ctx, loanID)
		if err != nil {
			return err
		}
		return fn(ctx, tx, l, eq)
	})
}

// release は貸出が手放した機器の状態を決める。修理が残っていればそちらに渡す
func release(ctx context.Context, tx TxStore, equipmentID string, now time.Time) error {
	rs, err := tx.OpenRepairStatus(ctx, equipmentID)
	if err != nil {
		return err
	}
	st := equipment.StatusAvailable
	switch rs {
	case "":
	case "PENDING":
		st = equipment.StatusUnderMaintenance
	default:
		st = equipment.StatusUnderRepair
	}
	return tx.SetEquipmentStatus(ctx, equipmentID, st, now)
}

// POST /loans
func (s *Service) Create(ctx context.Context, p auth.Principal, in CreateLoanRequest) (LoanResponse, error) {
	userID := strings.TrimSpace(in.UserID)
	if userID == "" {
		userID = p.UserID
	}
	if !p.CanActFor(userID) {
		return LoanResponse{}, apierr.Forbidden("loans can only be requested for yourself")
	}
	equipmentID := strings.TrimSpace(in.EquipmentID)
	if equipmentID == "" {
		return LoanResponse{}, apierr.InvalidField("equipment_id", "equipment_id is required")
	}
	start, err := parseDateField("start_date", in.StartDate)
	if err != nil {
		return LoanResponse{}, err
	}
	end, err := parseDateField("end_date", in.EndDate)
	if err != nil {
		return LoanResponse{}, err
	}
	if start.Before(clock.Today(s.clock)) {
		return LoanResponse{}, apierr.InvalidField("start_date", "start_date must be today or later")
	}
	if !end.After(start) {
		return LoanResponse{}, apierr.InvalidField("end_date", "end_date must be after start_date")
	}

	now := s.clock.Now()
	l := &Loan{
		LoanID:      s.id.NewULID(now),
		EquipmentID: equipmentID,
		UserID:      userID,
		Status:      StatusPending,
		StartDate:   start,
		EndDate:     end,
		Notes:       toNullString(in.Notes),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	err = s.store.RunInTx(ctx, func(ctx context.Context, tx TxStore) error {
		eq, err := tx.LockEquipment(ctx, equipmentID)
		if err != nil {
			return err
		}
		if eq != equipment.StatusAvailable {
			return apierr.ConflictState("equipment is not available", string(eq))
		}
		open, err := tx.OpenLoanID(ctx, equipmentID)
		if err != nil {
			return err
		}
		if open != "" {
			return apierr.Conflict("equipment already has an open loan")
		}
		return tx.InsertLoan(ctx, l)
	})
	if err != nil {
		return LoanResponse{}, err
	}
	return l.toDTO(), nil
}

// PATCH /loans/:id/status
func (s *Service) Decide(ctx context.Context, p auth.Principal, id string, in DecideLoanRequest) (LoanResponse, error) {
	if !p.IsAdmin() {
		return LoanResponse{}, apierr.Forbidden("only admins can decide loans")
	}
	d, ok := ParseDecision(in.Decision)
	if !ok {
		return LoanResponse{}, apierr.InvalidField("decision", "decision must be APPROVE or REJECT")
	}

	var out *Loan
	err := s.withLoan(ctx, id, func(ctx context.Context, tx TxStore, l *Loan, eq equipment.Status) error {
		now := s.clock.Now()
		switch d {
		case DecisionApprove:
			if l.Status != StatusPending {
				return apierr.ConflictState("only pending loans can be approved", string(l.Status))
			}
			if eq != equipment.StatusAvailable {
				return apierr.ConflictState("equipment is not available", string(eq))
			}
			rs, err := tx.OpenRepairStatus(ctx, l.EquipmentID)
			if err != nil {
				return err
			}
			if rs != "" {
				return apierr.ConflictState("equipment has an open repair", rs)
			}
			if l.EndDate.Before(clock.Today(s.clock)) {
				return apierr.ConflictState("loan period has already ended", string(l.Status))
			}
			l.Status = StatusApproved
			if err := tx.SetEquipmentStatus(ctx, l.EquipmentID, equipment.StatusInUse, now); err != nil {
				return err
			}
		case DecisionReject:
			if !l.Status.CanTransitionTo(StatusRejected) {
				return apierr.ConflictState("loan can no longer be rejected", string(l.Status))
			}
			holding := l.Status.Holding()
			l.Status = StatusRejected
			l.RejectionReason = toNullString(in.Reason)
			l.clearChange()
			if holding {
				if err := release(ctx, tx, l.EquipmentID, now); err != nil {
					return err
				}
			}
		}
		l.DecidedBy = sql.NullString{String: p.UserID, Valid: true}
		l.DecidedAt = sql.NullTime{Time: now, Valid: true}
		l.UpdatedAt = now
		out = l
		return tx.UpdateLoan(ctx, l)
	})
	if err != nil {
		return LoanResponse{}, err
	}
	return out.toDTO(), nil
}

// POST /loans/:id/return
func (s *Service) Return(ctx context.Context, p auth.Principal, id string) (LoanResponse, error) {
	var out *Loan
	err := s.withLoan(ctx, id, func(ctx context.Context, tx TxStore, l *Loan, _ equipment.Status) error {
		if !p.CanActFor(l.UserID) {
			return apierr.Forbidden("not your loan")
		}
		if !l.Status.CanTransitionTo(StatusReturned) {
			return apierr.ConflictState("only active or overdue loans can be returned", string(l.Status))
		}
		if l.PendingChange != ChangeNone {
			return apierr.ConflictState("loan has a pending "+strings.ToLower(string(l.PendingChange))+" request", string(l.Status))
		}
		now := s.clock.Now()
		l.Status = StatusReturned
		l.ReturnedAt = sql.NullTime{Time: now, Valid: true}
		l.UpdatedAt = now
		if err := tx.UpdateLoan(ctx, l); err != nil {
			return err
		}
		out = l
		return release(ctx, tx, l.EquipmentID, now)
	})
	if err != nil {
		return LoanResponse{}, err
	}
	return out.toDTO(), nil
}

// POST /loans/:id/extend
func (s *Service) RequestExtend(ctx context.Context, p auth.Principal, id string, in ExtendRequest) (LoanResponse, error) {
	newEnd, err := parseDateField("new_end_date", in.NewEndDate)
	if err != nil {
		return LoanResponse{}, err
	}

	var out *Loan
	err = s.withLoan(ctx, id, func(ctx context.Context, tx TxStore, l *Loan, _ equipment.Status) error {
		if err := s.checkChangeable(p, l); err != nil {
			return err
		}
		if !newEnd.After(l.EndDate) {
			return apierr.InvalidField("new_end_date", "new_end_date must be after the current end_date")
		}
		l.PendingChange = ChangeExtend
		l.RequestedEndDate = sql.NullTime{Time: newEnd, Valid: true}
		l.ChangeReason = toNullString(in.Notes)
		l.UpdatedAt = s.clock.Now()
		out = l
		return tx.UpdateLoan(ctx, l)
	})
	if err != nil {
		return LoanResponse{}, err
	}
	return out.toDTO(), nil
}

// POST /loans/:id/reschedule
func (s *Service) RequestReschedule(ctx context.Context, p auth.Principal, id string, in RescheduleRequest) (LoanResponse, error) {
	newStart, err := parseDateField("new_start_date", in.NewStartDate)
	if err != nil {
		return LoanResponse{}, err
	}
	newEnd, err := parseDateField("new_end_date", in.NewEndDate)
	if err != nil {
		return LoanResponse{}, err
	}
	if !newEnd.After(newStart) {
		return LoanResponse{}, apierr.InvalidField("new_end_date", "new_end_date must be after new_start_date")
	}
	today := clock.Today(s.clock)
	if newEnd.Before(today) {
		return LoanResponse{}, apierr.InvalidField("new_end_date", "new_end_date must not be in the past")
	}

	var out *Loan
	err = s.withLoan(ctx, id, func(ctx context.Context, tx TxStore, l *Loan, _ equipment.Status) error {
		if err := s.checkChangeable(p, l); err != nil {
			return err
		}
		// 貸出開始前の予約は過去日に動かせない
		if l.Status == StatusApproved && newStart.Before(today) {
			return apierr.InvalidField("new_start_date", "new_start_date must be today or later")
		}
		l.PendingChange = ChangeReschedule
		l.RequestedStartDate = sql.NullTime{Time: newStart, Valid: true}
		l.RequestedEndDate = sql.NullTime{Time: newEnd, Valid: true}
		l.ChangeReason = toNullString(in.Reason)
		l.UpdatedAt = s.clock.Now()
		out = l
		return tx.UpdateLoan(ctx, l)
	})
	if err != nil {
		return LoanResponse{}, err
	}
	return out.toDTO(), nil
}

func (s *Service) checkChangeable(p auth.Principal, l *Loan) error {
	if !p.CanActFor(l.UserID) {
		return apierr.Forbidden("not your loan")
	}
	if !l.Status.Changeable() {
		return apierr.ConflictState("only approved or active loans can be changed", string(l.Status))
	}
	if l.PendingChange != ChangeNone {
		return apierr.ConflictState("loan already has a pending "+strings.ToLower(string(l.PendingChange))+" request", string(l.Status))
	}
	return nil
}

// POST /loans/:id/extend/decision
func (s *Service) DecideExtend(ctx context.Context, p auth.Principal, id string, in ChangeDecisionRequest) (LoanResponse, error) {
	return s.decideChange(ctx, p, id, ChangeExtend, in)
}

// POST /loans/:id/reschedule/decision
func (s *Service) DecideReschedule(ctx context.Context, p auth.Principal, id string, in ChangeDecisionRequest) (LoanResponse, error) {
	return s.decideChange(ctx, p, id, ChangeReschedule, in)
}

func (s *Service) decideChange(ctx context.Context, p auth.Principal, id string, kind PendingChange, in ChangeDecisionRequest) (LoanResponse, error) {
	if !p.IsAdmin() {
		return LoanResponse{}, apierr.Forbidden("only admins can decide change requests")
	}
	d, ok := ParseDecision(in.Decision)
	if !ok {
		return LoanResponse{}, apierr.InvalidField("decision", "decision must be APPROVE or REJECT")
	}

	var out *Loan
	err := s.withLoan(ctx, id, func(ctx context.Context, tx TxStore, l *Loan, _ equipment.Status) error {
		if l.PendingChange != kind || !l.RequestedEndDate.Valid {
			return apierr.ConflictState("loan has no pending "+strings.ToLower(string(kind))+" request", string(l.Status))
		}
		if d == DecisionApprove {
			l.EndDate = l.RequestedEndDate.Time
			if kind == ChangeReschedule {
				l.StartDate = l.RequestedStartDate.Time
				// 開始日が先に延びたら貸出前に戻す
				if l.Status == StatusActive && l.StartDate.After(clock.Today(s.clock)) {
					l.Status = StatusApproved
				}
			}
		}
		l.clearChange()
		l.UpdatedAt = s.clock.Now()
		out = l
		return tx.UpdateLoan(ctx, l)
	})
	if err != nil {
		return LoanResponse{}, err
	}
	return out.toDTO(), nil
}

// DELETE /loans/:id
func (s *Service) Delete(ctx context.Context, p auth.Principal, id string) error {
	if !p.IsAdmin() {
		return apierr.Forbidden("only admins can delete loans")
	}
	return s.withLoan(ctx, id, func(ctx context.Context, tx TxStore, l *Loan, _ equipment.Status) error {
		if err := tx.DeleteLoan(ctx, l.LoanID); err != nil {
			return err
		}
		if l.Status.Holding() {
			return release(ctx, tx, l.EquipmentID, s.clock.Now())
		}
		return nil
	})
}

func (s *Service) Get(ctx context.Context, p auth.Principal, id string) (LoanResponse, error) {
	l, err := s.store.Get(ctx, id)
	if err != nil {
		return LoanResponse{}, err
	}
	if !p.CanActFor(l.UserID) {
		return LoanResponse{}, apierr.Forbidden("not your loan")
	}
	return l.toDTO(), nil
}

// List: ADMIN 以外は自分の貸出だけ
func (s *Service) List(ctx context.Context, p auth.Principal, f Filter, pg paging.Page) (paging.Result[LoanResponse], error) {
	if !p.IsAdmin() {
		uid := p.UserID
		f.UserID = &uid
	}
	rows, total, err := s.store.List(ctx, f, pg)
	if err != nil {
		return paging.Result[LoanResponse]{}, err
	}
	items := make([]LoanResponse, 0, len(rows))
	for i := range rows {
		items = append(items, rows[i].toDTO())
	}
	return paging.NewResult(items, total, pg), nil
}

func parseDateField(field, v string) (time.Time, error) {
	d, err := clock.ParseDate(v)
	if err != nil {
		return time.Time{}, apierr.InvalidField(field, field+" must be YYYY-MM-DD")
	}
	return d, nil
}
