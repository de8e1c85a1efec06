package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/OfriRose/cosmic-canvas/pkg/apod"
	"github.com/OfriRose/cosmic-canvas/pkg/cache"
	"github.com/OfriRose/cosmic-canvas/pkg/config"
	"github.com/OfriRose/cosmic-canvas/pkg/handler"
	"github.com/OfriRose/cosmic-canvas/pkg/mast"
	"github.com/OfriRose/cosmic-canvas/pkg/metrics"
	repo "github.com/OfriRose/cosmic-canvas/pkg/repository"
	srvc "github.com/OfriRose/cosmic-canvas/pkg/service"

	"github.com/adampresley/adamgokit/retrier"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
)

var version = "dev"

func main() {
	logrus.SetFormatter(new(logrus.JSONFormatter))

	cnf := config.LoadConfig()

	level, err := logrus.ParseLevel(cnf.LogLevel)
	if err != nil {
		logrus.Warnf("unknown log level %q, using info", cnf.LogLevel)
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)

	logrus.Infof("using NASA api key %s", config.MaskKey(cnf.NasaApiKey))

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// без DB_HOST кэш живет в памяти процесса
	var store cache.Cache = cache.NewMemory()
	backend := "memory"

	var db *sqlx.DB
	if cnf.UsePostgresCache() {
		db = connectPostgres(ctx, cnf)

		repos := repo.NewRepository(db)
		if err := repos.EnsureSchema(ctx); err != nil {
			logrus.Fatalf("failed to create cache table: %s", err.Error())
		}

		if _, err := repos.DeleteExpired(ctx); err != nil {
			logrus.Warnf("failed to clean expired cache entries: %q", err)
		}

		store = repos
		backend = "postgres"
	}

	metrics.Init(version, backend)

	apodClient := apod.NewClient(apod.Config{
		BaseURL:    cnf.APODURL,
		HTTPClient: &http.Client{Timeout: cnf.HTTPTimeout()},
		Cache:      store,
		TTL:        cnf.CacheTTL(),
	})

	mastClient := mast.NewClient(mast.Config{
		BaseURL:        cnf.MASTURL,
		HTTPClient:     &http.Client{Timeout: cnf.HTTPTimeout()},
		Cache:          store,
		TTL:            cnf.CacheTTL(),
		PreviewWorkers: cnf.PreviewWorkers,
	})

	handlers := handler.NewHandler(srvc.NewService(apodClient, mastClient, cnf.NasaApiKey))

	srv := new(server)
	go func() {
		if err := srv.Run(cnf.Port, handlers.InitRoutes()); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("error occured while running http server: %s", err.Error())
		}
	}()

	logrus.Infof("cosmic canvas listening on :%s (cache: %s)", cnf.Port, backend)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)
	<-quit

	logrus.Info("cosmic canvas shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logrus.Errorf("error occured on server shutting down: %s", err.Error())
	}

	if db != nil {
		if err := db.Close(); err != nil {
			logrus.Errorf("error occured on db connection close: %s", err.Error())
		}
	}
}

// база может подниматься дольше сервиса, поэтому подключение повторяется
func connectPostgres(ctx context.Context, cnf config.Config) *sqlx.DB {
	var (
		db  *sqlx.DB
		err error
	)

	dbConfig := repo.Config{
		Host:     cnf.DBHost,
		Port:     cnf.DBPort,
		Username: cnf.DBUsername,
		Password: cnf.DBPassword,
		DBName:   cnf.DBName,
		SSLMode:  cnf.DBSSLMode,
	}

	retrier.Retry(func() error {
		if db, err = repo.NewPostgresDB(ctx, dbConfig); err != nil {
			logrus.Warnf("failed to connect to postgres, trying again: %q", err)
			return err
		}

		return nil
	})

	if err != nil {
		logrus.Fatalf("failed to initialize db: %s", err.Error())
	}

	return db
}

type server struct {
	httpSrv *http.Server
}

func (s *server) Run(port string, h http.Handler) error {
	s.httpSrv = &http.Server{
		Addr:           ":" + port,
		Handler:        h,
		MaxHeaderBytes: 1 << 20,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   40 * time.Second,
		IdleTimeout:    60 * time.Second,
	}

	return s.httpSrv.ListenAndServe()
}

func (s *server) Shutdown(ctx context.Context) error {
	return s.httpSrv.Shutdown(ctx)
}
