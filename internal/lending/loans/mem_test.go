package loans

import (
	"context"
	"sort"
	"sync"
	"time"

	"LabLend-backend/internal/inventory/equipment"
	"LabLend-backend/internal/platform/apierr"
	"LabLend-backend/internal/platform/paging"
)

// memStore は Repository のインメモリ実装。RunInTx は直列化し、失敗時は巻き戻す
type memStore struct {
	mu        sync.Mutex
	loans     map[string]*Loan
	equipment map[string]equipment.Status
	repairs   map[string]string // equipment_id -> 未終了の修理状態
}

func newMemStore() *memStore {
	return &memStore{
		loans:     map[string]*Loan{},
		equipment: map[string]equipment.Status{},
		repairs:   map[string]string{},
	}
}

func (m *memStore) RunInTx(ctx context.Context, fn func(ctx context.Context, tx TxStore) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	loans := make(map[string]*Loan, len(m.loans))
	for k, v := range m.loans {
		cp := *v
		loans[k] = &cp
	}
	eq := make(map[string]equipment.Status, len(m.equipment))
	for k, v := range m.equipment {
		eq[k] = v
	}
	if err := fn(ctx, &memTx{m: m}); err != nil {
		m.loans, m.equipment = loans, eq
		return err
	}
	return nil
}

func (m *memStore) Get(_ context.Context, id string) (*Loan, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	l, ok := m.loans[id]
	if !ok {
		return nil, apierr.NotFound("loan not found")
	}
	cp := *l
	return &cp, nil
}

func (m *memStore) List(_ context.Context, f Filter, _ paging.Page) ([]Loan, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []Loan
	for _, l := range m.loans {
		if f.Status != nil && l.Status != *f.Status {
			continue
		}
		if f.UserID != nil && l.UserID != *f.UserID {
			continue
		}
		if f.EquipmentID != nil && l.EquipmentID != *f.EquipmentID {
			continue
		}
		if f.PendingChange != nil && l.PendingChange != *f.PendingChange {
			continue
		}
		out = append(out, *l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].LoanID < out[j].LoanID })
	return out, int64(len(out)), nil
}

func (m *memStore) ListDue(_ context.Context, today time.Time) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var ids []string
	for id, l := range m.loans {
		if (l.Status == StatusApproved && !l.StartDate.After(today)) || (l.Status == StatusActive && l.EndDate.Before(today)) {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids, nil
}

type memTx struct{ m *memStore }

func (t *memTx) EquipmentOf(_ context.Context, loanID string) (string, error) {
	l, ok := t.m.loans[loanID]
	if !ok {
		return "", apierr.NotFound("loan not found")
	}
	return l.EquipmentID, nil
}

func (t *memTx) LockEquipment(_ context.Context, id string) (equipment.Status, error) {
	st, ok := t.m.equipment[id]
	if !ok {
		return "", apierr.NotFound("equipment not found")
	}
	return st, nil
}

func (t *memTx) LockLoan(_ context.Context, id string) (*Loan, error) {
	l, ok := t.m.loans[id]
	if !ok {
		return nil, apierr.NotFound("loan not found")
	}
	cp := *l
	return &cp, nil
}

func (t *memTx) OpenLoanID(_ context.Context, equipmentID string) (string, error) {
	for id, l := range t.m.loans {
		if l.EquipmentID == equipmentID && l.Status.Open() {
			return id, nil
		}
	}
	return "", nil
}

func (t *memTx) OpenRepairStatus(_ context.Context, equipmentID string) (string, error) {
	return t.m.repairs[equipmentID], nil
}

func (t *memTx) InsertLoan(ctx context.Context, l *Loan) error {
	if open, _ := t.OpenLoanID(ctx, l.EquipmentID); open != "" {
		return apierr.Conflict("equipment already has an open loan")
	}
	cp := *l
	t.m.loans[l.LoanID] = &cp
	return nil
}

func (t *memTx) UpdateLoan(_ context.Context, l *Loan) error {
	if _, ok := t.m.loans[l.LoanID]; !ok {
		return apierr.Internal("failed to update loan")
	}
	cp := *l
	t.m.loans[l.LoanID] = &cp
	return nil
}

func (t *memTx) DeleteLoan(_ context.Context, id string) error {
	if _, ok := t.m.loans[id]; !ok {
		return apierr.NotFound("loan not found")
	}
	delete(t.m.loans, id)
	return nil
}

func (t *memTx) SetEquipmentStatus(_ context.Context, id string, st equipment.Status, _ time.Time) error {
	t.m.equipment[id] = st
	return nil
}
