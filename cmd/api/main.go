package main

import (
	"context"
	"os"
	"path"
	"runtime"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/adsight/ads-sync-engine/infrastructure/database/postgres"
	"github.com/adsight/ads-sync-engine/infrastructure/integrator/meta/metaclient"
	"github.com/adsight/ads-sync-engine/infrastructure/repository"
	"github.com/adsight/ads-sync-engine/internal/api"
	"github.com/adsight/ads-sync-engine/internal/config"
	"github.com/adsight/ads-sync-engine/internal/ratelimit"
	"github.com/adsight/ads-sync-engine/internal/scheduler"
	"github.com/adsight/ads-sync-engine/internal/usecases/account"
	"github.com/adsight/ads-sync-engine/internal/usecases/insighting"
	"github.com/adsight/ads-sync-engine/internal/usecases/syncing"
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

	accountRepo := repository.NewAccountRepository(pgConn)
	campaignRepo := repository.NewCampaignRepository(pgConn)
	adRepo := repository.NewAdRepository(pgConn)
	metricsCacheRepo := repository.NewMetricsCacheRepository(pgConn)

	// O limiter é compartilhado entre o cliente da plataforma e o engine de
	// reconciliação: o estado de backoff por conta vive num lugar só.
	limiter := ratelimit.NewManager()
	metaClient := metaclient.NewClient(cfg, limiter)

	insightService := insighting.NewService(cfg, metricsCacheRepo, adRepo, accountRepo, metaClient)

	syncEngine := syncing.NewService(
		cfg,
		limiter,
		metaClient,
		accountRepo,
		campaignRepo,
		adRepo,
		metricsCacheRepo,
		insightService,
	)

	accountService := account.NewService(accountRepo, cfg)

	// Agendador da reconciliação noturna
	adSyncService := scheduler.NewAdSyncService(accountRepo, syncEngine, cfg)

	if err := adSyncService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de reconciliação de contas")
	} else {
		logrus.Info("Agendador de reconciliação de contas iniciado com sucesso")
	}

	server, err := api.New(
		cfg,
		accountService,
		insightService,
		syncEngine,
		adSyncService,
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
