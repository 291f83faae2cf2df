package main

import (
	"context"
	"time"

	"github.com/dazos/cfo-copilot-api/infrastructure/database/postgres"
	"github.com/dazos/cfo-copilot-api/infrastructure/integrator/quickbooks"
	"github.com/dazos/cfo-copilot-api/infrastructure/integrator/salesforce"
	"github.com/dazos/cfo-copilot-api/infrastructure/integrator/salesforce/sfclient"
	"github.com/dazos/cfo-copilot-api/infrastructure/migration"
	"github.com/dazos/cfo-copilot-api/infrastructure/repository"
	"github.com/dazos/cfo-copilot-api/internal/api"
	"github.com/dazos/cfo-copilot-api/internal/config"
	"github.com/dazos/cfo-copilot-api/internal/domain"
	"github.com/dazos/cfo-copilot-api/internal/scheduler"
	"github.com/dazos/cfo-copilot-api/internal/usecases/aggregating"
	"github.com/dazos/cfo-copilot-api/internal/usecases/answering"
	"github.com/dazos/cfo-copilot-api/internal/usecases/classifying"
	"github.com/dazos/cfo-copilot-api/internal/usecases/reporting"
	"github.com/dazos/cfo-copilot-api/internal/usecases/snapshotting"
	"github.com/dazos/cfo-copilot-api/internal/usecases/syncing"
	"github.com/sirupsen/logrus"
)

func main() {
	configureLogger()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	logLevel, err := logrus.ParseLevel(cfg.App.LogLevel)
	if err != nil {
		logrus.Warnf("Nível de log inválido: %s, usando 'info'", cfg.App.LogLevel)
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)
	logrus.Infof("Nível de log configurado para: %s", logLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := migration.Run(cfg.Database.DSN); err != nil {
		logrus.WithError(err).Fatal("Erro ao aplicar migrações")
	}

	pgConn := pgconn(ctx, cfg.Database)
	defer pgConn.Close()

	accountRepo := repository.NewAccountRepository(pgConn)
	opportunityRepo := repository.NewOpportunityRepository(pgConn)
	lineItemRepo := repository.NewLineItemRepository(pgConn)
	snapshotRepo := repository.NewSnapshotRepository(pgConn)
	reportSnapshotRepo := repository.NewReportSnapshotRepository(pgConn)

	classifier := classifying.New()
	catalog := domain.DefaultProductCatalog()

	salesforceClient := sfclient.NewClient(cfg)
	salesforceIntegrator := salesforce.New(cfg, salesforceClient)

	quickbooksIntegrator := quickbooks.New(cfg)

	aggregatingService := aggregating.NewService(
		accountRepo,
		opportunityRepo,
		lineItemRepo,
		classifier,
		catalog,
		cfg,
	)

	snapshotService := snapshotting.NewService(
		snapshotRepo,
		accountRepo,
		opportunityRepo,
		lineItemRepo,
		classifier,
		catalog,
		cfg,
	)

	syncService := syncing.NewService(
		salesforceIntegrator,
		accountRepo,
		opportunityRepo,
		lineItemRepo,
		classifier,
		snapshotService,
	)

	answeringService := answering.NewService(aggregatingService, snapshotService, cfg)
	reportingService := reporting.NewService(quickbooksIntegrator, reportSnapshotRepo)

	// Agendadores: sincronização horária e snapshot de fim de dia
	salesforceSyncScheduler := scheduler.NewSalesforceSyncService(syncService, cfg)
	eodSnapshotScheduler := scheduler.NewEODSnapshotService(snapshotService, cfg)

	if err := salesforceSyncScheduler.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de sincronização do Salesforce")
	} else {
		logrus.Info("Agendador de sincronização do Salesforce iniciado com sucesso")
	}

	if err := eodSnapshotScheduler.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de snapshot de fim de dia")
	} else {
		logrus.Info("Agendador de snapshot de fim de dia iniciado com sucesso")
	}

	server, err := api.New(
		cfg,
		syncService,
		aggregatingService,
		answeringService,
		snapshotService,
		reportingService,
		accountRepo,
		opportunityRepo,
		salesforceSyncScheduler,
		eodSnapshotScheduler,
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
