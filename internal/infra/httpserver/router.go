package httpserver

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	appanalysis "github.com/dfmejia/fraude-incapacidades/internal/application/analysis"
	domain "github.com/dfmejia/fraude-incapacidades/internal/domain/analysis"
	domai "github.com/dfmejia/fraude-incapacidades/internal/domain/ai"
	"github.com/dfmejia/fraude-incapacidades/internal/domain/certificate"
	"github.com/dfmejia/fraude-incapacidades/internal/middleware"
)

const maxUploadBytes = 20 << 20 // 20 MiB

type Router struct {
	svc *appanalysis.Service
}

// Options carries the cross-cutting pieces the router mounts around the
// analysis endpoints.
type Options struct {
	AllowedOrigins []string
	APIKeys        map[string]string
	HealthCheckers map[string]middleware.HealthChecker
}

func NewRouter(svc *appanalysis.Service, opts Options) http.Handler {
	r := &Router{svc: svc}
	mux := chi.NewRouter()

	mux.Use(middleware.LoggingMiddleware)
	mux.Use(middleware.MetricsMiddleware)
	if len(opts.AllowedOrigins) > 0 {
		mux.Use(cors.Handler(cors.Options{
			AllowedOrigins:   opts.AllowedOrigins,
			AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Content-Type", "X-API-Key"},
			AllowCredentials: false,
			MaxAge:           300,
		}))
	}

	mux.Get("/health", middleware.HealthHandler(opts.HealthCheckers))
	mux.Get("/health/ready", middleware.ReadinessHandler)
	mux.Get("/health/live", middleware.LivenessHandler)
	mux.Get("/metrics", middleware.MetricsHandler)

	mux.Route("/v1/{tenant}", func(rt chi.Router) {
		rt.Use(middleware.APIKeyAuth(opts.APIKeys, func(req *http.Request) string {
			return chi.URLParam(req, "tenant")
		}))
		rt.Use(middleware.RateLimitMiddleware(20, 5))

		rt.Post("/analyses", r.wrap(r.handleAnalyzeUpload))
		rt.Post("/analyses/report", r.wrap(r.handleAnalyzeExtraction))
		rt.Get("/analyses/latest", r.wrap(r.handleLatest))
		rt.Get("/analyses/{id}", r.wrap(r.handleGet))
		rt.Get("/analyses", r.wrap(r.handleList))
		rt.Get("/summary", r.wrap(r.handleSummary))
	})

	return mux
}

type handlerFunc func(http.ResponseWriter, *http.Request) error

// badRequest marks client errors so wrap can answer 400 instead of 500.
type badRequest struct{ err error }

func (b badRequest) Error() string { return b.err.Error() }
func (b badRequest) Unwrap() error { return b.err }

func (r *Router) wrap(h handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		if err := h(w, req); err != nil {
			var br badRequest
			if errors.As(err, &br) {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			if errors.Is(err, sql.ErrNoRows) {
				http.Error(w, "not found", http.StatusNotFound)
				return
			}
			if errors.Is(err, domai.ErrQuotaExceeded) {
				http.Error(w, "ai quota exceeded", http.StatusTooManyRequests)
				return
			}
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	}
}

// POST /v1/{tenant}/analyses
// Multipart body with a "file" field holding the certificate. The analysis
// runs inline on the request context so an abandoned request cancels the
// registry lookups too.
func (r *Router) handleAnalyzeUpload(w http.ResponseWriter, req *http.Request) error {
	tenant := chi.URLParam(req, "tenant")
	if err := middleware.ValidateTenantID(tenant); err != nil {
		return badRequest{err}
	}

	req.Body = http.MaxBytesReader(w, req.Body, maxUploadBytes)
	if err := req.ParseMultipartForm(maxUploadBytes); err != nil {
		return badRequest{fmt.Errorf("parse upload: %w", err)}
	}

	file, header, err := req.FormFile("file")
	if err != nil {
		return badRequest{fmt.Errorf("missing file field: %w", err)}
	}
	defer file.Close()

	if err := middleware.ValidateUploadFilename(header.Filename); err != nil {
		return badRequest{err}
	}

	tmp, err := os.CreateTemp("", "certificate-*"+filepath.Ext(header.Filename))
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	if _, err := io.Copy(tmp, file); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("save upload: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("save upload: %w", err)
	}

	withNarrative := req.URL.Query().Get("narrative") == "true"

	middleware.IncrementAnalyses()
	middleware.IncrementAnalysesRunning()
	defer middleware.DecrementAnalysesRunning()

	result, err := r.svc.AnalyzeUpload(req.Context(), tenant, tmpPath, withNarrative)
	if err != nil {
		middleware.IncrementAnalysesFailed()
		return err
	}

	w.Header().Set("Content-Type", "application/json")
	return json.NewEncoder(w).Encode(result)
}

// POST /v1/{tenant}/analyses/report
// Body: {"fileUrl": "...", "extraction": {...}, "withNarrative": bool}
// Accepts an already-extracted certificate, useful when the document was
// processed elsewhere or the caller wants to re-score edited claims.
func (r *Router) handleAnalyzeExtraction(w http.ResponseWriter, req *http.Request) error {
	tenant := chi.URLParam(req, "tenant")
	if err := middleware.ValidateTenantID(tenant); err != nil {
		return badRequest{err}
	}

	var body struct {
		FileURL       string                 `json:"fileUrl"`
		Extraction    certificate.Extraction `json:"extraction"`
		WithNarrative bool                   `json:"withNarrative"`
	}
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		return badRequest{fmt.Errorf("decode body: %w", err)}
	}

	claims := body.Extraction.Claims
	if err := middleware.ValidateDocumentType(string(claims.PatientDocType)); err != nil {
		return badRequest{err}
	}
	if err := middleware.ValidateDocumentType(string(claims.PhysicianDocType)); err != nil {
		return badRequest{err}
	}
	if err := middleware.ValidateDocumentNumber(claims.PatientDocNumber); err != nil {
		return badRequest{err}
	}
	if err := middleware.ValidateDocumentNumber(claims.PhysicianDocNumber); err != nil {
		return badRequest{err}
	}
	body.Extraction.Claims = sanitizeClaims(body.Extraction.Claims)

	middleware.IncrementAnalyses()
	middleware.IncrementAnalysesRunning()
	defer middleware.DecrementAnalysesRunning()

	result, err := r.svc.Analyze(req.Context(), appanalysis.AnalyzeCommand{
		TenantID:      tenant,
		FileURL:       body.FileURL,
		Extraction:    body.Extraction,
		WithNarrative: body.WithNarrative,
	})
	if err != nil {
		middleware.IncrementAnalysesFailed()
		return err
	}

	w.Header().Set("Content-Type", "application/json")
	return json.NewEncoder(w).Encode(result)
}

// sanitizeClaims strips control characters from the free-text fields of an
// extraction before they reach the report and the database. Document numbers
// are already shape-checked by the validators above.
func sanitizeClaims(c certificate.Claims) certificate.Claims {
	c.PatientName = middleware.SanitizeString(c.PatientName)
	c.PhysicianName = middleware.SanitizeString(c.PhysicianName)
	c.PayerName = middleware.SanitizeString(c.PayerName)
	c.DiagnosisText = middleware.SanitizeString(c.DiagnosisText)
	return c
}

// GET /v1/{tenant}/analyses/latest?limit=20
func (r *Router) handleLatest(w http.ResponseWriter, req *http.Request) error {
	tenant := chi.URLParam(req, "tenant")
	limit, _ := strconv.Atoi(req.URL.Query().Get("limit"))

	list, err := r.svc.Latest(req.Context(), tenant, middleware.ValidateLimit(limit))
	if err != nil {
		return err
	}

	w.Header().Set("Content-Type", "application/json")
	return json.NewEncoder(w).Encode(list)
}

// GET /v1/{tenant}/analyses/{id}
func (r *Router) handleGet(w http.ResponseWriter, req *http.Request) error {
	tenant := chi.URLParam(req, "tenant")
	id := chi.URLParam(req, "id")
	if err := middleware.ValidateAnalysisID(id); err != nil {
		return badRequest{err}
	}

	a, err := r.svc.Get(req.Context(), tenant, domain.AnalysisID(id))
	if err != nil {
		return err
	}
	if a == nil {
		return sql.ErrNoRows
	}

	w.Header().Set("Content-Type", "application/json")
	return json.NewEncoder(w).Encode(a)
}

// GET /v1/{tenant}/analyses?page=&page_size=
func (r *Router) handleList(w http.ResponseWriter, req *http.Request) error {
	tenant := chi.URLParam(req, "tenant")
	page, _ := strconv.Atoi(req.URL.Query().Get("page"))
	size, _ := strconv.Atoi(req.URL.Query().Get("page_size"))

	list, err := r.svc.Paginate(req.Context(), tenant, page, middleware.ValidateLimit(size))
	if err != nil {
		return err
	}

	w.Header().Set("Content-Type", "application/json")
	return json.NewEncoder(w).Encode(list)
}

// GET /v1/{tenant}/summary?days=7
func (r *Router) handleSummary(w http.ResponseWriter, req *http.Request) error {
	tenant := chi.URLParam(req, "tenant")
	days, _ := strconv.Atoi(req.URL.Query().Get("days"))

	summary, err := r.svc.Summary(req.Context(), tenant, middleware.ValidateDays(days))
	if err != nil {
		return err
	}

	w.Header().Set("Content-Type", "application/json")
	return json.NewEncoder(w).Encode(summary)
}
