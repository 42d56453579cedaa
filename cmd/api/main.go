package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dfmejia/fraude-incapacidades/internal/application"
	appanalysis "github.com/dfmejia/fraude-incapacidades/internal/application/analysis"
	"github.com/dfmejia/fraude-incapacidades/internal/config"
	domain "github.com/dfmejia/fraude-incapacidades/internal/domain/analysis"
	aiopenai "github.com/dfmejia/fraude-incapacidades/internal/infra/ai/openai"
	mysqlp "github.com/dfmejia/fraude-incapacidades/internal/infra/db/mysql"
	postgresp "github.com/dfmejia/fraude-incapacidades/internal/infra/db/postgres"
	"github.com/dfmejia/fraude-incapacidades/internal/infra/httpserver"
	"github.com/dfmejia/fraude-incapacidades/internal/infra/registry/adres"
	"github.com/dfmejia/fraude-incapacidades/internal/infra/registry/rethus"
	"github.com/dfmejia/fraude-incapacidades/internal/infra/search/ddg"
	minioStore "github.com/dfmejia/fraude-incapacidades/internal/infra/storage"
	"github.com/dfmejia/fraude-incapacidades/internal/middleware"
)

func main() {
	// path config.yaml
	path := "config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		path = v
	}

	// load config
	cfg, err := config.Load(path)
	if err != nil {
		log.Fatalf("config load error: %v", err)
	}

	// reference tables and scoring policy fail fast
	weights, err := cfg.Weights()
	if err != nil {
		log.Fatalf("scoring config error: %v", err)
	}
	cieTable, err := cfg.CIE10Table()
	if err != nil {
		log.Fatalf("cie10 table error: %v", err)
	}
	epsRegistry, err := cfg.EPSRegistry()
	if err != nil {
		log.Fatalf("eps registry error: %v", err)
	}

	ctx := context.Background()

	// connect database
	var (
		db   *sql.DB
		repo domain.Repository
	)
	switch cfg.Database.Driver {
	case "postgres":
		db, err = postgresp.Connect(ctx, cfg.PostgresDSN())
		if err != nil {
			log.Fatalf("postgres connect error: %v", err)
		}
		repo = postgresp.NewAnalysisRepository(db)
	case "mysql", "":
		db, err = mysqlp.Connect(ctx, cfg.MySQLDSN())
		if err != nil {
			log.Fatalf("mysql connect error: %v", err)
		}
		repo = mysqlp.NewAnalysisRepository(db)
	default:
		log.Fatalf("unknown database driver: %s", cfg.Database.Driver)
	}
	defer db.Close()

	// init minio
	store, err := minioStore.New(ctx,
		cfg.Minio.Endpoint,
		cfg.Minio.Region,
		cfg.Minio.BucketName,
		cfg.Minio.AccessKey,
		cfg.Minio.SecretKey,
		cfg.Minio.UseSSL,
	)
	if err != nil {
		log.Fatalf("minio init error: %v", err)
	}

	// init extraction and narrative client
	aiClient := aiopenai.NewClient(
		cfg.OpenAI.APIKey,
		cfg.OpenAI.ExtractionModel,
		cfg.OpenAI.NarrativeModel,
	)

	// init registry clients
	professional := rethus.New(
		cfg.Registries.Rethus.Endpoint,
		cfg.Registries.Rethus.ConsultURL,
		time.Duration(cfg.Registries.Rethus.TimeoutSeconds)*time.Second,
	)
	var adresEndpoints []adres.Endpoint
	for _, ep := range cfg.Registries.Adres.Endpoints {
		adresEndpoints = append(adresEndpoints, adres.Endpoint{
			Kind:           ep.Kind,
			URL:            ep.URL,
			DocTypeParam:   ep.DocTypeParam,
			DocNumberParam: ep.DocNumberParam,
		})
	}
	affiliation := adres.New(
		adresEndpoints,
		cfg.Registries.Adres.ConsultURL,
		time.Duration(cfg.Registries.Adres.TimeoutSeconds)*time.Second,
	)

	// init open-web searcher
	searcher := ddg.New(cfg.Search.Endpoint, 10*time.Second)

	// init service
	svc := &appanalysis.Service{
		CIE10:        cieTable,
		EPS:          epsRegistry,
		Professional: professional,
		Affiliation:  affiliation,
		Search:       searcher,
		Extractor:    aiClient,
		Narrator:     aiClient,
		Repo:         repo,
		Artifacts:    store,
		Clock:        application.SystemClock{},
		Weights:      weights,
		CheckTimeout: time.Duration(cfg.CheckTimeoutSeconds) * time.Second,
	}

	// init router
	handler := httpserver.NewRouter(svc, httpserver.Options{
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		APIKeys:        cfg.Auth.APIKeys,
		HealthCheckers: map[string]middleware.HealthChecker{
			"database": &middleware.DatabaseHealthChecker{DB: db},
			"professional_registry": &middleware.RegistryHealthChecker{
				Endpoint: professional.ConsultURL(),
			},
		},
	})

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// run server
	go func() {
		log.Printf("server listening on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	// graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
	log.Println("shutting down server...")

	ctx2, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx2); err != nil {
		log.Printf("shutdown error: %v", err)
	}
}
