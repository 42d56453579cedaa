package httpserver

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dfmejia/fraude-incapacidades/internal/application"
	appanalysis "github.com/dfmejia/fraude-incapacidades/internal/application/analysis"
	domain "github.com/dfmejia/fraude-incapacidades/internal/domain/analysis"
	"github.com/dfmejia/fraude-incapacidades/internal/domain/certificate"
	"github.com/dfmejia/fraude-incapacidades/internal/domain/cie10"
	"github.com/dfmejia/fraude-incapacidades/internal/domain/eps"
	"github.com/dfmejia/fraude-incapacidades/internal/domain/osint"
	"github.com/dfmejia/fraude-incapacidades/internal/domain/registry"
	"github.com/dfmejia/fraude-incapacidades/internal/domain/verification"
)

type stubRegistry struct{ outcome registry.Outcome }

func (s *stubRegistry) Name() string { return "stub" }
func (s *stubRegistry) Lookup(context.Context, certificate.DocumentType, string) registry.Outcome {
	return s.outcome
}

type stubSearcher struct{}

func (stubSearcher) Search(context.Context, string, int) ([]osint.Result, error) {
	return nil, nil
}

type stubRepo struct {
	byID map[domain.AnalysisID]*domain.Analysis
}

func (r *stubRepo) Save(_ context.Context, a *domain.Analysis) error {
	if r.byID == nil {
		r.byID = map[domain.AnalysisID]*domain.Analysis{}
	}
	r.byID[a.ID] = a
	return nil
}

func (r *stubRepo) Get(_ context.Context, _ string, id domain.AnalysisID) (*domain.Analysis, error) {
	return r.byID[id], nil
}

func (r *stubRepo) Latest(context.Context, string, int) ([]*domain.Analysis, error) {
	return nil, nil
}

func (r *stubRepo) Paginate(context.Context, string, int, int) ([]*domain.Analysis, error) {
	return nil, nil
}

func (r *stubRepo) Summary(context.Context, string, int) (domain.VerdictSummary, error) {
	return domain.VerdictSummary{}, nil
}

func newTestHandler(t *testing.T, apiKeys map[string]string) (http.Handler, *stubRepo) {
	t.Helper()
	table, err := cie10.NewTable(cie10.DefaultEntries())
	require.NoError(t, err)
	reg, err := eps.NewRegistry(eps.DefaultEntities())
	require.NoError(t, err)

	repo := &stubRepo{}
	svc := &appanalysis.Service{
		CIE10:        table,
		EPS:          reg,
		Professional: &stubRegistry{outcome: registry.Outcome{Kind: registry.OutcomeActive}},
		Affiliation:  &stubRegistry{outcome: registry.Outcome{Kind: registry.OutcomeActive}},
		Search:       stubSearcher{},
		Repo:         repo,
		Clock:        application.SystemClock{},
		Weights:      verification.DefaultWeights(),
	}
	return NewRouter(svc, Options{APIKeys: apiKeys}), repo
}

const reportBody = `{
	"fileUrl": "https://store/cert.pdf",
	"extraction": {
		"claims": {
			"patient_doc_type": "CC",
			"patient_doc_number": "1020304050",
			"physician_doc_type": "CC",
			"physician_doc_number": "52123456",
			"payer_name": "EPS Sanitas",
			"diagnosis_code": "M54",
			"leave_days": "10"
		},
		"forensic": {}
	}
}`

func TestAnalyzeExtractionEndpoint(t *testing.T) {
	handler, repo := newTestHandler(t, nil)

	req := httptest.NewRequest(http.MethodPost, "/v1/acme/analyses/report", strings.NewReader(reportBody))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"verdict":"clean"`)
	assert.Len(t, repo.byID, 1)
}

func TestAnalyzeExtractionSanitizesFreeText(t *testing.T) {
	handler, repo := newTestHandler(t, nil)

	body := strings.Replace(reportBody, `"EPS Sanitas"`, `"\u0000EPS Sanitas\u0007"`, 1)
	req := httptest.NewRequest(http.MethodPost, "/v1/acme/analyses/report", strings.NewReader(body))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, repo.byID, 1)
	for _, a := range repo.byID {
		assert.NotContains(t, a.ReportJSON, "\\u0000")
		assert.NotContains(t, a.ReportJSON, "\\u0007")
	}
}

func TestSanitizeClaims(t *testing.T) {
	in := certificate.Claims{
		PatientName:   "JUAN\x00 PEREZ",
		PhysicianName: "  ANA RIOS\x07",
		PayerName:     "EPS\tSANITAS",
		DiagnosisText: "lumbago\nno especificado",
	}
	out := sanitizeClaims(in)

	assert.Equal(t, "JUAN PEREZ", out.PatientName)
	assert.Equal(t, "ANA RIOS", out.PhysicianName)
	assert.Equal(t, "EPS\tSANITAS", out.PayerName)
	assert.Equal(t, "lumbago\nno especificado", out.DiagnosisText)
}

func TestAnalyzeExtractionRejectsBadInput(t *testing.T) {
	handler, _ := newTestHandler(t, nil)

	t.Run("invalid document type", func(t *testing.T) {
	body := strings.Replace(reportBody, `"EPS Sanitas"`, `"\u0000EPS Sanitas\u0007"`, 1)
		req := httptest.NewRequest(http.MethodPost, "/v1/acme/analyses/report", strings.NewReader(body))
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("malformed json", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/v1/acme/analyses/report", strings.NewReader("{"))
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestGetAnalysis(t *testing.T) {
	handler, repo := newTestHandler(t, nil)
	require.NoError(t, repo.Save(context.Background(), &domain.Analysis{
		ID:       "c56a4180-65aa-42ec-a945-5fd21dec0538",
		TenantID: "acme",
		Verdict:  verification.VerdictClean,
	}))

	t.Run("found", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/v1/acme/analyses/c56a4180-65aa-42ec-a945-5fd21dec0538", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("unknown id is 404", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/v1/acme/analyses/11111111-2222-4333-8444-555555555555", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("malformed id is 400", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/v1/acme/analyses/latest-ish", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestAPIKeyAuthOnTenantRoutes(t *testing.T) {
	handler, _ := newTestHandler(t, map[string]string{"acme": "secret-key"})

	t.Run("missing key", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/v1/acme/analyses/latest", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("wrong tenant key", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/v1/other/analyses/latest", nil)
		req.Header.Set("X-API-Key", "secret-key")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("valid key", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/v1/acme/analyses/latest", nil)
		req.Header.Set("X-API-Key", "secret-key")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("health is open", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/health/live", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}
