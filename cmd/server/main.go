// Command server runs the carebase admin API: tenant-scoped clinical-data
// domains behind a uniform envelope and audit trail.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	decisionhandler "carebase/internal/decision/handler"
	decisionmetrics "carebase/internal/decision/metrics"
	decisionmemory "carebase/internal/decision/store/memory"
	integrationhandler "carebase/internal/integration/handler"
	integrationmemory "carebase/internal/integration/store/memory"
	knowledgehandler "carebase/internal/knowledge/handler"
	knowledgememory "carebase/internal/knowledge/store/memory"
	patienthandler "carebase/internal/patient/handler"
	patientmetrics "carebase/internal/patient/metrics"
	patientmemory "carebase/internal/patient/store/memory"
	patientpostgres "carebase/internal/patient/store/postgres"
	"carebase/internal/platform/config"
	"carebase/internal/platform/httpserver"
	"carebase/internal/platform/logger"
	"carebase/internal/platform/metrics"
	"carebase/internal/platform/postgres"
	platformredis "carebase/internal/platform/redis"
	httptransport "carebase/internal/transport/http"
	workflowhandler "carebase/internal/workflow/handler"
	workflowmemory "carebase/internal/workflow/store/memory"
	audit "carebase/pkg/platform/audit"
	auditpublisher "carebase/pkg/platform/audit/publisher"
	auditkafka "carebase/pkg/platform/audit/sink/kafka"
	auditmemory "carebase/pkg/platform/audit/store/memory"
	auditpostgres "carebase/pkg/platform/audit/store/postgres"
	"carebase/pkg/platform/token"
)

func main() {
	cfg := config.FromEnv()
	log := logger.New()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := postgres.NewPool(ctx, cfg.Postgres)
	if err != nil {
		log.Error("postgres connection failed", "error", err)
		os.Exit(1)
	}
	if pool != nil {
		defer pool.Close()
		log.Info("postgres connected")
	} else {
		log.Info("no postgres configured, using in-memory stores")
	}

	redisClient, err := platformredis.New(cfg.Redis)
	if err != nil {
		log.Error("redis connection failed", "error", err)
		os.Exit(1)
	}
	if redisClient != nil {
		defer redisClient.Close()
		log.Info("redis connected")
	}

	// Audit trail: local store plus an optional Kafka sink for the
	// compliance pipeline.
	var auditStore audit.Store
	if cfg.Postgres.URL != "" {
		db, err := auditpostgres.Open(cfg.Postgres.URL)
		if err != nil {
			log.Error("audit store connection failed", "error", err)
			os.Exit(1)
		}
		defer db.Close()
		auditStore = auditpostgres.New(db)
	} else {
		auditStore = auditmemory.NewStore()
	}

	publisherOpts := []auditpublisher.Option{
		auditpublisher.WithLogger(log),
		auditpublisher.WithAsyncBuffer(1024),
	}
	if len(cfg.Kafka.Brokers) > 0 {
		sink, err := auditkafka.New(cfg.Kafka.Brokers, cfg.Kafka.AuditTopic)
		if err != nil {
			log.Error("kafka sink connection failed", "error", err)
			os.Exit(1)
		}
		defer sink.Close()
		publisherOpts = append(publisherOpts, auditpublisher.WithSink(sink))
		log.Info("kafka audit sink connected", "topic", cfg.Kafka.AuditTopic)
	}
	auditor := auditpublisher.NewPublisher(auditStore, publisherOpts...)
	defer auditor.Close()

	var patientRepo patienthandler.PatientRepository
	if pool != nil {
		patientRepo = patientpostgres.NewStore(pool)
	} else {
		patientRepo = patientmemory.NewStore()
	}

	deps := httptransport.Dependencies{
		Config:  cfg,
		Logger:  log,
		Metrics: metrics.New(),
		Redis:   redisClient,
		Tokens:  token.NewService(cfg.Server.JWTSigningKey, "carebase", "carebase-api"),

		Patient:     patienthandler.New(patientRepo, auditor, log, patientmetrics.New()),
		Workflow:    workflowhandler.New(workflowmemory.NewStore(), auditor, log),
		Decision:    decisionhandler.New(decisionmemory.NewStore(), auditor, log, decisionmetrics.New()),
		Knowledge:   knowledgehandler.New(knowledgememory.NewStore(), auditor, log),
		Integration: integrationhandler.New(integrationmemory.NewStore(), auditor, log),
	}

	srv := httpserver.New(cfg.Server.Addr, httptransport.NewRouter(deps))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("server listening", "addr", cfg.Server.Addr, "auth_disabled", cfg.Server.AuthDisabled)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error("server exited with error", "error", err)
		os.Exit(1)
	}
	log.Info("server stopped")
}
