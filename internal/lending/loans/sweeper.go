package loans

import (
	"context"
	"errors"
	"log"
	"time"

	"LabLend-backend/internal/inventory/equipment"
	"LabLend-backend/internal/platform/apierr"
	"LabLend-backend/internal/platform/clock"
)

// Sweep は日付で決まる遷移をまとめて進める。
// APPROVED で開始日到来 → ACTIVE、ACTIVE で終了日超過 → OVERDUE（保留中の変更申請は自動却下）
func (s *Service) Sweep(ctx context.Context) (SweepResult, error) {
	var res SweepResult
	today := clock.Today(s.clock)

	ids, err := s.store.ListDue(ctx, today)
	if err != nil {
		return res, err
	}
	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		activated, overdue, err := s.sweepOne(ctx, id, today)
		if err != nil {
			// 一覧取得後に削除されたものは飛ばす
			if !apierr.Is(err, apierr.CodeNotFound) {
				log.Printf("[WARN] sweeper: loan %s: %v", id, err)
			}
			continue
		}
		if activated {
			res.Activated++
		}
		if overdue {
			res.Overdue++
		}
	}
	return res, nil
}

// sweepOne: ロックを取った後に状態を見直すので、同時に返却・却下されたものは何もしない
func (s *Service) sweepOne(ctx context.Context, id string, today time.Time) (activated, overdue bool, err error) {
	err = s.withLoan(ctx, id, func(ctx context.Context, tx TxStore, l *Loan, _ equipment.Status) error {
		if l.Status == StatusApproved && !l.StartDate.After(today) {
			l.Status = StatusActive
			activated = true
		}
		if l.Status == StatusActive && l.EndDate.Before(today) {
			l.Status = StatusOverdue
			l.clearChange()
			overdue = true
		}
		if !activated && !overdue {
			return nil
		}
		l.UpdatedAt = s.clock.Now()
		return tx.UpdateLoan(ctx, l)
	})
	if err != nil {
		return false, false, err
	}
	return activated, overdue, nil
}

// Sweeper は Sweep を一定間隔で回すワーカー
type Sweeper struct {
	svc      *Service
	interval time.Duration
}

func NewSweeper(svc *Service, interval time.Duration) *Sweeper {
	if interval <= 0 {
		interval = time.Minute
	}
	return &Sweeper{svc: svc, interval: interval}
}

// Run は起動直後に1回、以後 interval ごとに回す。ctx がキャンセルされたら戻る
func (w *Sweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.RunOnce(ctx)
	for {
		select {
		case <-ctx.Done():
			log.Println("[INFO] sweeper stopped")
			return
		case <-ticker.C:
			w.RunOnce(ctx)
		}
	}
}

func (w *Sweeper) RunOnce(ctx context.Context) SweepResult {
	res, err := w.svc.Sweep(ctx)
	if err != nil && !errors.Is(err, context.Canceled) {
		log.Printf("[ERROR] sweeper: %v", err)
	}
	if res.Activated > 0 || res.Overdue > 0 {
		log.Printf("[INFO] sweeper: activated=%d overdue=%d", res.Activated, res.Overdue)
	}
	return res
}
