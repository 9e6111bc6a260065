package warming

import (
	"context"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/agendahub/agenda-api/internal/models"
	ucAvailability "github.com/agendahub/agenda-api/internal/usecase/availability"
)

// ===============================
// Cache warming
// ===============================
//
// Pré-aquece os slots dos próximos dias para prestadores ativos,
// em loop de fundo. Erro de um prestador não interrompe os demais.

type Service struct {
	db      *gorm.DB
	compute *ucAvailability.ComputeSlots
	log     *zap.Logger

	interval  time.Duration
	aheadDays int
}

func New(
	db *gorm.DB,
	compute *ucAvailability.ComputeSlots,
	log *zap.Logger,
	interval time.Duration,
	aheadDays int,
) *Service {
	if aheadDays < 1 {
		aheadDays = 1
	}
	return &Service{
		db:        db,
		compute:   compute,
		log:       log,
		interval:  interval,
		aheadDays: aheadDays,
	}
}

// Start roda o loop até o contexto morrer
func (s *Service) Start(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.log.Info("cache warming iniciado",
		zap.Duration("interval", s.interval),
		zap.Int("ahead_days", s.aheadDays),
	)

	for {
		select {
		case <-ctx.Done():
			s.log.Info("cache warming encerrado")
			return
		case <-ticker.C:
			s.warmOnce(ctx)
		}
	}
}

func (s *Service) warmOnce(ctx context.Context) {
	providers, err := s.activeProviders(ctx)
	if err != nil {
		s.log.Error("warming: falha ao listar prestadores", zap.Error(err))
		return
	}

	warmed := 0
	for _, p := range providers {
		if ctx.Err() != nil {
			return
		}

		_, err := s.compute.Execute(ctx, ucAvailability.ComputeSlotsInput{
			ProviderID: p.ID,
			From:       time.Now(),
			Days:       s.aheadDays,
			SkipCache:  true, // recalcula e renova o TTL
		})
		if err != nil {
			s.log.Warn("warming: falha ao aquecer prestador",
				zap.Uint("provider_id", p.ID),
				zap.Error(err),
			)
			continue
		}
		warmed++
	}

	s.log.Debug("warming: ciclo completo",
		zap.Int("providers", len(providers)),
		zap.Int("warmed", warmed),
	)
}

// activeProviders: prestadores ativos com movimento recente ou
// agendamentos futuros
func (s *Service) activeProviders(ctx context.Context) ([]models.Provider, error) {
	cutoff := time.Now().AddDate(0, 0, -7)

	sub := s.db.Model(&models.Appointment{}).
		Select("provider_id").
		Where("start_time > ?", cutoff)

	var providers []models.Provider
	err := s.db.WithContext(ctx).
		Where("active = true AND id IN (?)", sub).
		Find(&providers).Error

	return providers, err
}
