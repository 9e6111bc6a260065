package availability

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/agendahub/agenda-api/internal/cache"
	avail "github.com/agendahub/agenda-api/internal/domain/availability"
	domain "github.com/agendahub/agenda-api/internal/domain/appointment"
	"github.com/agendahub/agenda-api/internal/httperr"
	"github.com/agendahub/agenda-api/internal/timezone"
)

var ErrRangeTooLarge = httperr.ErrBusiness("range_too_large")

// ======================================================
// USE CASE — ComputeSlots
// ======================================================

type ComputeSlots struct {
	repo  domain.Repository
	cache *cache.Cache
	log   *zap.Logger

	workers        int
	maxHorizonDays int
}

func NewComputeSlots(
	repo domain.Repository,
	slotCache *cache.Cache,
	log *zap.Logger,
	workers int,
	maxHorizonDays int,
) *ComputeSlots {
	if workers < 1 {
		workers = 1
	}
	return &ComputeSlots{
		repo:           repo,
		cache:          slotCache,
		log:            log,
		workers:        workers,
		maxHorizonDays: maxHorizonDays,
	}
}

type ComputeSlotsInput struct {
	ProviderID uint
	From       time.Time // primeira data, fuso do prestador
	Days       int       // quantos dias a partir de From
	SkipCache  bool
}

type DaySlots struct {
	Date  time.Time
	Slots []avail.Slot
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *ComputeSlots) Execute(
	ctx context.Context,
	in ComputeSlotsInput,
) ([]DaySlots, error) {

	// --------------------------------------------------
	// 1. Política de horizonte (falha antes de qualquer query)
	// --------------------------------------------------
	if in.Days < 1 {
		return nil, httperr.ErrBusiness("invalid_range")
	}
	if in.Days > uc.maxHorizonDays {
		return nil, ErrRangeTooLarge
	}

	// --------------------------------------------------
	// 2. Prestador + fuso
	// --------------------------------------------------
	provider, err := uc.repo.GetProviderByID(ctx, in.ProviderID)
	if err != nil {
		return nil, httperr.ErrBusiness("provider_not_found")
	}

	loc := timezone.Location(provider.Timezone)

	from := in.From.In(loc)
	days := make([]time.Time, in.Days)
	for i := range days {
		days[i] = time.Date(from.Year(), from.Month(), from.Day()+i, 0, 0, 0, 0, loc)
	}

	out := make([]DaySlots, in.Days)
	for i, d := range days {
		out[i] = DaySlots{Date: d, Slots: []avail.Slot{}}
	}

	if !provider.Active {
		return out, nil
	}

	// --------------------------------------------------
	// 3. Snapshot único para o período inteiro
	// --------------------------------------------------
	periodStart := days[0]
	periodEnd := days[len(days)-1].AddDate(0, 0, 1)

	snap, ok, err := loadSnapshot(ctx, uc.repo, in.ProviderID, periodStart, periodEnd)
	if err != nil {
		return nil, err
	}
	if !ok || !snap.Rule.Active {
		return out, nil
	}

	if err := snap.Rule.Validate(); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 4. Um dia por worker, limite configurável
	// --------------------------------------------------
	today := timezone.NowIn(provider.Timezone)
	todayStart := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, loc)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(uc.workers)

	for i, d := range days {
		i, d := i, d
		g.Go(func() error {
			if gctx.Err() != nil {
				return gctx.Err()
			}

			// data passada: resultado vazio, não erro
			if d.Before(todayStart) {
				return nil
			}

			dateKey := d.Format("2006-01-02")

			if !in.SkipCache {
				var cached []avail.Slot
				if uc.cache.GetSlots(gctx, in.ProviderID, dateKey, &cached) {
					out[i].Slots = cached
					return nil
				}
			}

			open := avail.OpenIntervals(d, snap.Rule, snap.Blocks, snap.Holidays, loc, uc.log)
			slots := avail.GenerateSlots(open, snap.Rule, snap.Bookings)
			if slots == nil {
				slots = []avail.Slot{}
			}

			out[i].Slots = slots
			uc.cache.SetSlots(gctx, in.ProviderID, dateKey, slots)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return out, nil
}
