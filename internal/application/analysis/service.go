package analysis

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/dfmejia/fraude-incapacidades/internal/application"
	domain "github.com/dfmejia/fraude-incapacidades/internal/domain/analysis"
	"github.com/dfmejia/fraude-incapacidades/internal/domain/ai"
	"github.com/dfmejia/fraude-incapacidades/internal/domain/certificate"
	"github.com/dfmejia/fraude-incapacidades/internal/domain/cie10"
	"github.com/dfmejia/fraude-incapacidades/internal/domain/eps"
	"github.com/dfmejia/fraude-incapacidades/internal/domain/forensic"
	"github.com/dfmejia/fraude-incapacidades/internal/domain/osint"
	"github.com/dfmejia/fraude-incapacidades/internal/domain/registry"
	"github.com/dfmejia/fraude-incapacidades/internal/domain/verification"
)

// Service implements the certificate verification use-cases. It owns no
// mutable state across requests: the reference tables are read-only after
// startup and every report is built fresh, so it is safe for concurrent use.
type Service struct {
	CIE10        *cie10.Table
	EPS          *eps.Registry
	Professional registry.Client
	Affiliation  registry.Client
	Search       osint.Searcher
	Extractor    ai.Extractor
	Narrator     ai.Narrator
	Repo         domain.Repository
	Artifacts    domain.ArtifactStore
	Clock        application.Clock

	Weights verification.Weights
	// CheckTimeout bounds each individual check; one stalled registry never
	// holds the aggregation beyond its own budget.
	CheckTimeout time.Duration
}

const defaultCheckTimeout = 20 * time.Second

func (s *Service) checkTimeout() time.Duration {
	if s.CheckTimeout > 0 {
		return s.CheckTimeout
	}
	return defaultCheckTimeout
}

// AnalyzeCommand carries one extraction into the engine.
type AnalyzeCommand struct {
	TenantID      string
	FileURL       string
	Extraction    certificate.Extraction
	WithNarrative bool
}

// Result pairs the persisted record with the full report.
type Result struct {
	Analysis *domain.Analysis     `json:"analysis"`
	Report   *verification.Report `json:"report"`
}

// fixed slots for the concurrent checks; distinct indices, no lock needed
const (
	slotDiagnostic = iota
	slotEntity
	slotProfessional
	slotAffiliation
	slotEvidence
	slotCount
)

// Analyze runs the five checks concurrently, folds their signals into the
// risk report, persists the analysis, and optionally asks the narrator for a
// dictamen. Check failures degrade to signals; only persistence failures and
// request cancellation surface as errors.
func (s *Service) Analyze(ctx context.Context, cmd AnalyzeCommand) (*Result, error) {
	started := s.Clock.Now()
	claims := cmd.Extraction.Claims

	var slots [slotCount]verification.Signal
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		slots[slotDiagnostic] = s.CIE10.Validate(claims.DiagnosisCode, claims.LeaveDays)
		return gctx.Err()
	})
	g.Go(func() error {
		slots[slotEntity] = s.EPS.Match(claims.PayerName)
		return gctx.Err()
	})
	g.Go(func() error {
		slots[slotProfessional] = s.registryCheck(gctx, s.Professional,
			verification.SourceProfessionalRegistry, claims.PhysicianDocType, claims.PhysicianDocNumber,
			"no physician document was extracted; professional registry not consulted")
		return gctx.Err()
	})
	g.Go(func() error {
		slots[slotAffiliation] = s.registryCheck(gctx, s.Affiliation,
			verification.SourceInsuranceRegistry, claims.PatientDocType, claims.PatientDocNumber,
			"no patient document was extracted; affiliation registry not consulted")
		return gctx.Err()
	})
	g.Go(func() error {
		slots[slotEvidence] = s.gatherEvidence(gctx, evidenceSubject(claims))
		return gctx.Err()
	})

	// Cancellation discards partial results; a complete report is only ever
	// built from a full signal set.
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("analysis cancelled: %w", err)
	}

	signals := append([]verification.Signal{forensic.Signal(cmd.Extraction.Forensic)}, slots[:]...)
	report := verification.BuildReport(signals, len(cmd.Extraction.Forensic.Alerts), s.Weights)

	reportJSON, err := json.Marshal(report)
	if err != nil {
		return nil, fmt.Errorf("encode report: %w", err)
	}

	record := &domain.Analysis{
		ID:          domain.AnalysisID(uuid.New().String()),
		TenantID:    cmd.TenantID,
		FileURL:     cmd.FileURL,
		Score:       report.Score,
		Verdict:     report.Verdict,
		ReportJSON:  string(reportJSON),
		SubmittedAt: started,
		DurationMS:  s.Clock.Now().Sub(started).Milliseconds(),
	}

	if cmd.WithNarrative && s.Narrator != nil {
		// The verdict is already final; a narrator failure costs only prose.
		narrative, nerr := s.Narrator.Narrate(ctx, record.ReportJSON)
		if nerr == nil {
			record.Narrative = narrative
		} else {
			record.Narrative = ""
		}
	}

	if s.Repo != nil {
		if err := s.Repo.Save(ctx, record); err != nil {
			return nil, fmt.Errorf("save analysis: %w", err)
		}
	}

	return &Result{Analysis: record, Report: report}, nil
}

// AnalyzeUpload stores the uploaded certificate, runs the extraction
// collaborator on it, fills in forensic alerts when the extractor supplied
// none, and hands off to Analyze.
func (s *Service) AnalyzeUpload(ctx context.Context, tenant, localPath string, withNarrative bool) (*Result, error) {
	key := fmt.Sprintf("%s/certificates/%s-%s", tenant, uuid.New().String(), filepath.Base(localPath))
	fileURL, err := s.Artifacts.UploadAndCleanup(ctx, localPath, key)
	if err != nil {
		return nil, fmt.Errorf("store certificate: %w", err)
	}

	extraction, err := s.Extractor.Extract(ctx, fileURL)
	if err != nil {
		return nil, fmt.Errorf("extract certificate fields: %w", err)
	}
	if len(extraction.Forensic.Alerts) == 0 {
		extraction.Forensic.Alerts = forensic.DeriveAlerts(extraction.Forensic)
	}

	return s.Analyze(ctx, AnalyzeCommand{
		TenantID:      tenant,
		FileURL:       fileURL,
		Extraction:    extraction,
		WithNarrative: withNarrative,
	})
}

// registryCheck performs one bounded registry lookup and normalizes its
// outcome. An absent document degrades to a not-applicable signal without
// dialing out.
func (s *Service) registryCheck(ctx context.Context, client registry.Client, src verification.Source,
	docType certificate.DocumentType, docNumber, absentNote string) verification.Signal {

	if docNumber == "" {
		return verification.NotApplicable(src, absentNote)
	}
	lctx, cancel := context.WithTimeout(ctx, s.checkTimeout())
	defer cancel()

	outcome := client.Lookup(lctx, docType, docNumber)
	return outcome.Signal(src, client.Name())
}

// Latest returns the last N analyses for a tenant.
func (s *Service) Latest(ctx context.Context, tenant string, limit int) ([]*domain.Analysis, error) {
	return s.Repo.Latest(ctx, tenant, limit)
}

// Get returns one analysis by id.
func (s *Service) Get(ctx context.Context, tenant string, id domain.AnalysisID) (*domain.Analysis, error) {
	return s.Repo.Get(ctx, tenant, id)
}

// Paginate returns one page of analyses.
func (s *Service) Paginate(ctx context.Context, tenant string, page, pageSize int) ([]*domain.Analysis, error) {
	return s.Repo.Paginate(ctx, tenant, page, pageSize)
}

// Summary aggregates verdicts over the last N days.
func (s *Service) Summary(ctx context.Context, tenant string, sinceDays int) (domain.VerdictSummary, error) {
	return s.Repo.Summary(ctx, tenant, sinceDays)
}

// evidenceSubject picks the entity the open-web search corroborates: the
// payer as printed, falling back to the physician.
func evidenceSubject(claims certificate.Claims) string {
	if claims.PayerName != "" {
		return claims.PayerName
	}
	return claims.PhysicianName
}
