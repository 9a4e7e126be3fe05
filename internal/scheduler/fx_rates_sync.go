package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/media-plan-api/infrastructure/integrator/fx"
	"github.com/vfg2006/media-plan-api/internal/config"
	"github.com/vfg2006/media-plan-api/internal/usecases/converting"
)

// FxRatesSyncConfig representa a configuração do agendador de câmbio
type FxRatesSyncConfig struct {
	CronSchedule string
	TTL          time.Duration
	SyncEnabled  bool
}

// FxRatesSyncService gerencia o agendamento e execução da atualização das
// taxas de câmbio ao vivo
type FxRatesSyncService struct {
	scheduler           *gocron.Scheduler
	config              FxRatesSyncConfig
	converter           converting.Converter
	fxClient            fx.Client
	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
}

// NewFxRatesSyncService cria uma nova instância do serviço de sincronização de câmbio
func NewFxRatesSyncService(
	converter converting.Converter,
	fxClient fx.Client,
	appConfig *config.Config,
) *FxRatesSyncService {
	syncConfig := FxRatesSyncConfig{
		CronSchedule: appConfig.FxRatesSync.CronSchedule,
		TTL:          time.Duration(appConfig.FxRatesSync.TTLHours) * time.Hour,
		SyncEnabled:  appConfig.FxRatesSync.Enabled,
	}

	scheduler := gocron.NewScheduler(time.Local)

	logrus.WithFields(logrus.Fields{
		"cron_schedule": syncConfig.CronSchedule,
		"ttl_hours":     appConfig.FxRatesSync.TTLHours,
		"sync_enabled":  syncConfig.SyncEnabled,
	}).Info("Configuração do agendador de câmbio carregada")

	return &FxRatesSyncService{
		scheduler:   scheduler,
		config:      syncConfig,
		converter:   converter,
		fxClient:    fxClient,
		syncRunning: false,
	}
}

// Start inicia o agendador
func (s *FxRatesSyncService) Start(ctx context.Context) error {
	if !s.config.SyncEnabled {
		logrus.Info("Sincronização de câmbio desabilitada por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando agendador de sincronização de câmbio")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.syncRates(ctx)
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar sincronização de câmbio: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador de sincronização de câmbio")
		s.scheduler.Stop()
	}()

	return nil
}

// syncRates atualiza a tabela de câmbio respeitando o TTL do cache
func (s *FxRatesSyncService) syncRates(ctx context.Context) {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Sincronização de câmbio já em andamento, ignorando")
		return
	}
	s.syncRunning = true
	s.syncMutex.Unlock()

	startTime := time.Now()
	s.lastSyncStartedAt = startTime

	defer func() {
		s.syncMutex.Lock()
		s.syncRunning = false
		s.syncMutex.Unlock()
	}()

	table, err := s.converter.Refresh(ctx, s.fxClient.LatestRates, s.config.TTL)
	if err != nil {
		// A última tabela boa segue valendo; o erro fica só no log
		logrus.WithError(err).Error("Erro ao atualizar taxas de câmbio ao vivo")
		return
	}

	logrus.WithFields(logrus.Fields{
		"duration":     time.Since(startTime).String(),
		"refreshed_at": table.RefreshedAt,
	}).Info("Sincronização de câmbio concluída")

	s.lastSyncCompletedAt = time.Now()
}

// TriggerManualSync inicia manualmente uma sincronização de câmbio
func (s *FxRatesSyncService) TriggerManualSync(ctx context.Context) {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Sincronização de câmbio já em andamento, ignorando solicitação manual")
		return
	}
	s.syncMutex.Unlock()

	logrus.Info("Iniciando sincronização manual de câmbio")
	go s.syncRates(ctx)
}

// GetStatus retorna o status atual do agendador
func (s *FxRatesSyncService) GetStatus() map[string]any {
	return map[string]any{
		"sync_enabled":           s.config.SyncEnabled,
		"sync_cron":              s.config.CronSchedule,
		"sync_ttl":               s.config.TTL.String(),
		"last_sync_started_at":   s.lastSyncStartedAt,
		"last_sync_completed_at": s.lastSyncCompletedAt,
	}
}
