package reports

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"LabLend-backend/internal/platform/apierr"
	"LabLend-backend/internal/platform/clock"
)

const (
	DefaultLimit = 10
	MaxLimit     = 100
)

type Service struct {
	store Repository
	cache *Cache
	clock clock.Clock
}

func NewService(store Repository, cache *Cache) *Service {
	return &Service{store: store, cache: cache, clock: clock.System()}
}

// ParseRange は from/to（YYYY-MM-DD、任意）を読む
func ParseRange(from, to string) (Range, error) {
	var r Range
	if strings.TrimSpace(from) != "" {
		t, err := clock.ParseDate(from)
		if err != nil {
			return r, apierr.InvalidField("from", "from must be YYYY-MM-DD")
		}
		r.From = &t
	}
	if strings.TrimSpace(to) != "" {
		t, err := clock.ParseDate(to)
		if err != nil {
			return r, apierr.InvalidField("to", "to must be YYYY-MM-DD")
		}
		r.To = &t
	}
	if r.From != nil && r.To != nil && r.To.Before(*r.From) {
		return r, apierr.InvalidField("to", "to must not be before from")
	}
	return r, nil
}

func ParseLimit(s string) (int, error) {
	if strings.TrimSpace(s) == "" {
		return DefaultLimit, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 || n > MaxLimit {
		return 0, apierr.InvalidField("limit", fmt.Sprintf("limit must be between 1 and %d", MaxLimit))
	}
	return n, nil
}

// ParseYear: 空なら今年
func (s *Service) ParseYear(v string) (int, error) {
	if strings.TrimSpace(v) == "" {
		return s.clock.Now().Year(), nil
	}
	y, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || y < 1970 || y > 9999 {
		return 0, apierr.InvalidField("year", "year must be a four digit year")
	}
	return y, nil
}

func (s *Service) MostBorrowed(ctx context.Context, r Range, limit int) ([]EquipmentCount, error) {
	key := cacheKey("most-borrowed", fmt.Sprintf("%s:%d", r.key(), limit))
	return cached(ctx, s.cache, key, func() ([]EquipmentCount, error) {
		return s.store.MostBorrowed(ctx, r, limit)
	})
}

func (s *Service) MostRepaired(ctx context.Context, r Range, limit int) ([]EquipmentCount, error) {
	key := cacheKey("most-repaired", fmt.Sprintf("%s:%d", r.key(), limit))
	return cached(ctx, s.cache, key, func() ([]EquipmentCount, error) {
		return s.store.MostRepaired(ctx, r, limit)
	})
}

func (s *Service) LoansByLab(ctx context.Context, r Range) ([]LabCount, error) {
	return cached(ctx, s.cache, cacheKey("loans-by-lab", r.key()), func() ([]LabCount, error) {
		return s.store.LoansByLab(ctx, r)
	})
}

func (s *Service) RepairsByTechnician(ctx context.Context, r Range) ([]TechnicianCount, error) {
	return cached(ctx, s.cache, cacheKey("repairs-by-technician", r.key()), func() ([]TechnicianCount, error) {
		return s.store.RepairsByTechnician(ctx, r)
	})
}

// LoansMonthly は貸出のない月も 0 で埋めて 12 行返す
func (s *Service) LoansMonthly(ctx context.Context, year int) ([]PeriodCount, error) {
	return cached(ctx, s.cache, cacheKey("loans-monthly", strconv.Itoa(year)), func() ([]PeriodCount, error) {
		byMonth, err := s.store.LoansByMonth(ctx, year)
		if err != nil {
			return nil, err
		}
		out := make([]PeriodCount, 0, 12)
		for m := time.January; m <= time.December; m++ {
			out = append(out, PeriodCount{
				Period: fmt.Sprintf("%04d-%02d", year, int(m)),
				Count:  byMonth[int(m)],
			})
		}
		return out, nil
	})
}

func (s *Service) LoansYearly(ctx context.Context) ([]PeriodCount, error) {
	return cached(ctx, s.cache, cacheKey("loans-yearly", "all"), func() ([]PeriodCount, error) {
		return s.store.LoansByYear(ctx)
	})
}

func (s *Service) Summary(ctx context.Context) (Summary, error) {
	return cached(ctx, s.cache, cacheKey("summary", "all"), func() (Summary, error) {
		return s.store.Summary(ctx)
	})
}
