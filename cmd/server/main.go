package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"golang.org/x/sync/errgroup"

	"rescueops/internal/audit"
	"rescueops/internal/catalog"
	cataloghandler "rescueops/internal/catalog/handler"
	"rescueops/internal/certification"
	certificationhandler "rescueops/internal/certification/handler"
	"rescueops/internal/compliance"
	compliancehandler "rescueops/internal/compliance/handler"
	"rescueops/internal/documents"
	"rescueops/internal/notify"
	"rescueops/internal/platform/config"
	"rescueops/internal/platform/httpserver"
	"rescueops/internal/platform/logger"
	"rescueops/internal/platform/metrics"
	"rescueops/internal/platform/postgres"
	platformredis "rescueops/internal/platform/redis"
	"rescueops/internal/reminder"
	"rescueops/internal/roster"
	rosterhandler "rescueops/internal/roster/handler"
	"rescueops/internal/scheduler"
	"rescueops/internal/snapshot"
	snapshothandler "rescueops/internal/snapshot/handler"
	httptransport "rescueops/internal/transport/http"
)

// stores groups the entity stores so backend selection stays in one place.
// An empty DATABASE_URL wires the in-memory flavors for local development.
type stores struct {
	users     roster.Store
	roles     catalog.RoleStore
	tracks    catalog.TrackStore
	certTypes catalog.CertificationTypeStore
	certs     certification.Store
	reminders reminder.Store
	snapshots snapshot.Store
	audits    audit.Store
}

// main wires dependencies and owns the process lifecycle. Business logic
// lives in the internal services.
func main() {
	cfg := config.FromEnv()
	log := logger.New()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := metrics.New()

	var db *sql.DB
	if cfg.DatabaseURL != "" {
		var err error
		db, err = postgres.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Error("postgres connect failed", "error", err.Error())
			os.Exit(1)
		}
		defer db.Close()
		if err := postgres.RunMigrations(ctx, db); err != nil {
			log.Error("migrations failed", "error", err.Error())
			os.Exit(1)
		}
	}
	st := buildStores(db)

	redisClient, err := platformredis.New(cfg.Redis)
	if err != nil {
		log.Error("redis connect failed", "error", err.Error())
		os.Exit(1)
	}
	if redisClient != nil {
		defer redisClient.Close()
	} else {
		log.Warn("redis not configured, cycle locking and snapshot caching disabled")
	}

	docs, dispatcher := buildAWS(ctx, cfg, log)

	publisher, err := audit.NewKafkaPublisher(cfg.Kafka)
	if err != nil {
		log.Error("kafka connect failed", "error", err.Error())
		os.Exit(1)
	}
	var auditSink audit.Publisher
	if publisher != nil {
		auditSink = publisher
		defer publisher.Close()
	}

	recorder := audit.NewRecorder(log, 256)
	auditWorker := audit.NewWorker(st.audits, auditSink, recorder.Inbox(), log)

	certService := certification.NewService(st.certs, st.certTypes, st.users, docs, recorder, log)

	checker := compliance.NewChecker(compliance.CheckerConfig{
		Users:       st.users,
		Roles:       st.roles,
		Tracks:      st.tracks,
		CertTypes:   st.certTypes,
		Certs:       st.certs,
		Reminders:   st.reminders,
		Dispatcher:  dispatcher,
		Recorder:    recorder,
		Metrics:     m,
		Logger:      log,
		UserTimeout: cfg.UserCheckTimeout,
	})

	aggregator := snapshot.NewAggregator(snapshot.AggregatorConfig{
		Users:     st.users,
		Roles:     st.roles,
		Tracks:    st.tracks,
		CertTypes: st.certTypes,
		Certs:     st.certs,
		Reminders: st.reminders,
		Store:     st.snapshots,
		Recorder:  recorder,
		Metrics:   m,
		Logger:    log,
	})
	snapshotCache := snapshot.NewCache(redisClient, st.snapshots)

	sched := scheduler.New(platformredis.NewRunLock(redisClient), log, cfg.RunOnStart,
		scheduler.Job{
			Name:     "certification-check",
			Interval: cfg.CheckInterval,
			Run:      checker.CheckAllUserCertifications,
		},
		scheduler.Job{
			Name:     "compliance-snapshot",
			Interval: cfg.SnapshotInterval,
			Run: func(ctx context.Context) error {
				if _, err := aggregator.GenerateAndSave(ctx); err != nil {
					return err
				}
				snapshotCache.Invalidate(ctx)
				return nil
			},
		},
	)

	router := httptransport.NewRouter(httptransport.Handlers{
		Roster:        rosterhandler.New(st.users, log),
		Catalog:       cataloghandler.New(st.roles, st.tracks, st.certTypes, log),
		Certification: certificationhandler.New(st.certs, certService, log),
		Compliance:    compliancehandler.New(checker, st.users, st.roles, st.tracks, st.certTypes, st.certs, log),
		Snapshot:      snapshothandler.New(aggregator, snapshotCache, st.snapshots, log),
	}, m, log)

	srv := httpserver.New(cfg.Addr, router)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := auditWorker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		return sched.Start(ctx)
	})
	g.Go(func() error {
		log.Info("starting rescueops", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error("server error", "error", err.Error())
		os.Exit(1)
	}
	log.Info("shutdown complete")
}

func buildStores(db *sql.DB) stores {
	if db == nil {
		return stores{
			users:     roster.NewInMemoryStore(),
			roles:     catalog.NewInMemoryRoleStore(),
			tracks:    catalog.NewInMemoryTrackStore(),
			certTypes: catalog.NewInMemoryCertificationTypeStore(),
			certs:     certification.NewInMemoryStore(),
			reminders: reminder.NewInMemoryStore(),
			snapshots: snapshot.NewInMemoryStore(),
			audits:    audit.NewInMemoryStore(),
		}
	}
	return stores{
		users:     roster.NewPostgresStore(db),
		roles:     catalog.NewPostgresRoleStore(db),
		tracks:    catalog.NewPostgresTrackStore(db),
		certTypes: catalog.NewPostgresCertificationTypeStore(db),
		certs:     certification.NewPostgresStore(db),
		reminders: reminder.NewPostgresStore(db),
		snapshots: snapshot.NewPostgresStore(db),
		audits:    audit.NewPostgresStore(db),
	}
}

// buildAWS prepares the S3 document store and the SES dispatcher, falling
// back to the in-memory store and the log dispatcher when either is not
// configured. The fallbacks keep local development free of AWS credentials.
func buildAWS(ctx context.Context, cfg config.Config, log *slog.Logger) (documents.Store, notify.Dispatcher) {
	var docs documents.Store = documents.NewInMemoryStore()
	var dispatcher notify.Dispatcher = notify.NewLogDispatcher(log)

	if cfg.Documents.Bucket == "" && cfg.Email.Sender == "" {
		return docs, dispatcher
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Documents.Region))
	if err != nil {
		log.Warn("aws config load failed, using local fallbacks", "error", err.Error())
		return docs, dispatcher
	}
	if cfg.Documents.Bucket != "" {
		docs = documents.NewS3Store(s3.NewFromConfig(awsCfg), cfg.Documents.Bucket)
	}
	if cfg.Email.Sender != "" {
		dispatcher = notify.NewSESDispatcher(sesv2.NewFromConfig(awsCfg), cfg.Email.Sender)
	}
	return docs, dispatcher
}
