package main

import (
	"context"
	"os"
	"path"
	"runtime"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/media-plan-api/infrastructure/database/postgres"
	"github.com/vfg2006/media-plan-api/infrastructure/integrator/fx"
	"github.com/vfg2006/media-plan-api/infrastructure/repository"
	"github.com/vfg2006/media-plan-api/internal/api"
	"github.com/vfg2006/media-plan-api/internal/config"
	"github.com/vfg2006/media-plan-api/internal/scheduler"
	"github.com/vfg2006/media-plan-api/internal/usecases/authenticating"
	"github.com/vfg2006/media-plan-api/internal/usecases/converting"
	"github.com/vfg2006/media-plan-api/internal/usecases/planning"
	"github.com/vfg2006/media-plan-api/internal/usecases/recommending"
)

func main() {
	// Inicializa configuração de logs
	configureLogger()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	// Define o nível de log com base na configuração
	logLevel, err := logrus.ParseLevel(cfg.App.LogLevel)
	if err != nil {
		logrus.Warnf("Nível de log inválido: %s, usando 'info'", cfg.App.LogLevel)
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)
	logrus.Infof("Nível de log configurado para: %s", logLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pgConn := pgconn(ctx, cfg.Database)
	defer pgConn.Close()

	userRepo := repository.NewUserRepository(pgConn)
	rateRepo := repository.NewRateRepository(pgConn)

	authenticator := authenticating.NewService(userRepo, cfg)

	planner := planning.NewService()
	recommender := recommending.NewService()

	converter, err := converting.NewService(rateRepo)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao carregar a tabela de câmbio")
	}

	fxClient := fx.NewClient(cfg)

	// Agendador de atualização das taxas de câmbio ao vivo
	fxRatesSyncService := scheduler.NewFxRatesSyncService(converter, fxClient, cfg)
	if err := fxRatesSyncService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de sincronização de câmbio")
	} else {
		logrus.Info("Agendador de sincronização de câmbio iniciado com sucesso")
	}

	server, err := api.New(
		cfg,
		planner,
		recommender,
		converter,
		fxClient.LatestRates,
		authenticator,
	)
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// configureLogger configura o formato e comportamento dos logs
func configureLogger() {
	_, file, _, _ := runtime.Caller(0)
	dir := path.Dir(file)
	os.Chdir(dir)

	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
}

// pgconn cria uma conexão com o banco de dados
func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}

	err = conn.Ping(ctx)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao testar conexão com PostgreSQL")
	}

	logrus.Info("Conexão com PostgreSQL estabelecida com sucesso")
	return conn
}
