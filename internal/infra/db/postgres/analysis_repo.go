package postgres

import (
	"context"
	"database/sql"
	"strings"
	"time"

	_ "github.com/lib/pq"

	domain "github.com/dfmejia/fraude-incapacidades/internal/domain/analysis"
	"github.com/dfmejia/fraude-incapacidades/internal/domain/verification"
)

func Connect(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(30 * time.Minute)

	ctx2, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx2); err != nil {
		return nil, err
	}
	return db, nil
}

type AnalysisRepository struct {
	db *sql.DB
}

func NewAnalysisRepository(db *sql.DB) *AnalysisRepository {
	return &AnalysisRepository{db: db}
}

// Save inserts or updates an analysis record
func (r *AnalysisRepository) Save(ctx context.Context, a *domain.Analysis) error {
	const q = `
INSERT INTO certificate_analysis
  (id, tenant_id, file_url, score, verdict, report_json, narrative, submitted_at, duration_ms)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
ON CONFLICT (id) DO UPDATE SET
  tenant_id=EXCLUDED.tenant_id,
  file_url=EXCLUDED.file_url,
  score=EXCLUDED.score,
  verdict=EXCLUDED.verdict,
  report_json=EXCLUDED.report_json,
  narrative=EXCLUDED.narrative,
  duration_ms=EXCLUDED.duration_ms;
`
	tenant := stringOrDash(a.TenantID)
	fileURL := stringOrDash(a.FileURL)
	report := a.ReportJSON
	if strings.TrimSpace(report) == "" {
		report = "{}"
	}
	submittedAt := a.SubmittedAt
	if submittedAt.IsZero() {
		submittedAt = time.Now()
	}

	_, err := r.db.ExecContext(ctx, q,
		a.ID, tenant, fileURL, a.Score, string(a.Verdict), report, a.Narrative, submittedAt, a.DurationMS)
	return err
}

// Get reads one analysis by id
func (r *AnalysisRepository) Get(ctx context.Context, tenant string, id domain.AnalysisID) (*domain.Analysis, error) {
	const q = `
SELECT id, tenant_id, file_url, score, verdict, report_json, narrative, submitted_at, duration_ms
FROM certificate_analysis
WHERE tenant_id=$1 AND id=$2;
`
	return scanRow(r.db.QueryRowContext(ctx, q, tenant, id))
}

// Latest returns the last N analyses ordered by submission time
func (r *AnalysisRepository) Latest(ctx context.Context, tenant string, limit int) ([]*domain.Analysis, error) {
	if limit <= 0 {
		limit = 20
	}
	const q = `
SELECT id, tenant_id, file_url, score, verdict, report_json, narrative, submitted_at, duration_ms
FROM certificate_analysis
WHERE tenant_id=$1
ORDER BY submitted_at DESC, id DESC
LIMIT $2;
`
	return r.queryMany(ctx, q, tenant, limit)
}

// Paginate returns a page of analyses ordered by submission time desc
func (r *AnalysisRepository) Paginate(ctx context.Context, tenant string, page, pageSize int) ([]*domain.Analysis, error) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}
	offset := (page - 1) * pageSize

	const q = `
SELECT id, tenant_id, file_url, score, verdict, report_json, narrative, submitted_at, duration_ms
FROM certificate_analysis
WHERE tenant_id=$1
ORDER BY submitted_at DESC, id DESC
LIMIT $2 OFFSET $3;
`
	return r.queryMany(ctx, q, tenant, pageSize, offset)
}

// Summary aggregates verdicts over the trailing window
func (r *AnalysisRepository) Summary(ctx context.Context, tenant string, sinceDays int) (domain.VerdictSummary, error) {
	if sinceDays <= 0 {
		sinceDays = 7
	}
	const q = `
SELECT verdict, COUNT(*)
FROM certificate_analysis
WHERE tenant_id=$1 AND submitted_at >= NOW() - ($2 || ' days')::interval
GROUP BY verdict;
`
	rows, err := r.db.QueryContext(ctx, q, tenant, sinceDays)
	if err != nil {
		return domain.VerdictSummary{}, err
	}
	defer rows.Close()

	var out domain.VerdictSummary
	for rows.Next() {
		var verdict string
		var count int
		if err := rows.Scan(&verdict, &count); err != nil {
			return domain.VerdictSummary{}, err
		}
		out.Total += count
		switch verification.Verdict(verdict) {
		case verification.VerdictHighRisk:
			out.HighRisk = count
		case verification.VerdictSuspicious:
			out.Suspicious = count
		case verification.VerdictClean:
			out.Clean = count
		case verification.VerdictIndeterminate:
			out.Indeterminate = count
		}
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *AnalysisRepository) queryMany(ctx context.Context, q string, args ...any) ([]*domain.Analysis, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.Analysis
	for rows.Next() {
		a, err := scanRow(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func scanRow(row rowScanner) (*domain.Analysis, error) {
	var a domain.Analysis
	var verdict string
	var submitted time.Time
	if err := row.Scan(&a.ID, &a.TenantID, &a.FileURL, &a.Score, &verdict,
		&a.ReportJSON, &a.Narrative, &submitted, &a.DurationMS); err != nil {
		return nil, err
	}
	a.Verdict = verification.Verdict(verdict)
	a.SubmittedAt = submitted
	return &a, nil
}

// stringOrDash returns "-" when the input is empty/whitespace
func stringOrDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}
