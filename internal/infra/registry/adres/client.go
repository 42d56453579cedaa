// Package adres checks insurance affiliation against the ADRES BDUA base.
// The public consultation sits behind Google reCAPTCHA Enterprise, so the
// client walks a fixed priority list of transports and treats a blocked or
// ambiguous answer as an Unreachable outcome, never as evidence.
package adres

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dfmejia/fraude-incapacidades/internal/domain/certificate"
	"github.com/dfmejia/fraude-incapacidades/internal/domain/registry"
)

const (
	DefaultConsultURL = "https://servicios.adres.gov.co/BDUA/Consulta-Afiliados-BDUA"

	userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

	// responses are sniffed on a bounded prefix, like the consultation page
	// itself is small
	maxBodyBytes = 1 << 20
)

// Endpoint is one transport to the registry. Kind "http" issues a plain GET;
// kind "browser" drives a headless Chrome through the page.
type Endpoint struct {
	Kind string
	URL  string
	// DocTypeParam and DocNumberParam name the query keys this route
	// expects; empty means tipoDocumento / numero.
	DocTypeParam   string
	DocNumberParam string
}

func (ep Endpoint) queryKeys() (docType, docNumber string) {
	docType, docNumber = ep.DocTypeParam, ep.DocNumberParam
	if docType == "" {
		docType = "tipoDocumento"
	}
	if docNumber == "" {
		docNumber = "numero"
	}
	return docType, docNumber
}

// DefaultEndpoints mirrors the known consultation routes in priority order:
// cheap HTTP first, the browser as last resort. The BDUA_Internet legacy page
// takes its own parameter names.
func DefaultEndpoints() []Endpoint {
	return []Endpoint{
		{
			Kind:           "http",
			URL:            "https://aplicaciones.adres.gov.co/BDUA_Internet/Pages/RespuestaConsulta.aspx",
			DocTypeParam:   "tipoId",
			DocNumberParam: "txtNumero",
		},
		{Kind: "http", URL: DefaultConsultURL},
		{Kind: "browser", URL: DefaultConsultURL},
	}
}

type Client struct {
	endpoints  []Endpoint
	consultURL string
	timeout    time.Duration
	http       *http.Client
	// browse is swappable for tests; defaults to the chromedp transport.
	browse func(ctx context.Context, pageURL string) (string, error)
}

func New(endpoints []Endpoint, consultURL string, timeout time.Duration) *Client {
	if len(endpoints) == 0 {
		endpoints = DefaultEndpoints()
	}
	if consultURL == "" {
		consultURL = DefaultConsultURL
	}
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	return &Client{
		endpoints:  endpoints,
		consultURL: consultURL,
		timeout:    timeout,
		http:       &http.Client{Timeout: timeout},
		browse:     fetchRendered,
	}
}

func (c *Client) Name() string { return "insurance-affiliation-registry" }

// Lookup walks the endpoint list in order and stops at the first transport
// that produced a classifiable answer. Only when every endpoint failed does
// the lookup come back Unreachable.
func (c *Client) Lookup(ctx context.Context, docType certificate.DocumentType, docNumber string) registry.Outcome {
	lastReason := "no endpoints configured"
	for _, ep := range c.endpoints {
		var outcome registry.Outcome
		switch ep.Kind {
		case "browser":
			outcome = c.tryBrowser(ctx, ep, docType, docNumber)
		default:
			outcome = c.tryHTTP(ctx, ep, docType, docNumber)
		}
		if outcome.Kind != registry.OutcomeUnreachable {
			return outcome
		}
		lastReason = outcome.Reason
		if ctx.Err() != nil {
			break
		}
	}
	return registry.Unreachable(lastReason, c.consultURL)
}

func (c *Client) tryHTTP(ctx context.Context, ep Endpoint, docType certificate.DocumentType, docNumber string) registry.Outcome {
	u, err := url.Parse(ep.URL)
	if err != nil {
		return registry.Unreachable(fmt.Sprintf("bad endpoint %q: %v", ep.URL, err), c.consultURL)
	}
	typeKey, numberKey := ep.queryKeys()
	q := u.Query()
	q.Set(typeKey, string(docType))
	q.Set(numberKey, docNumber)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return registry.Unreachable(fmt.Sprintf("build request: %v", err), c.consultURL)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,application/json;q=0.8")

	resp, err := c.http.Do(req)
	if err != nil {
		return registry.Unreachable(fmt.Sprintf("registry request failed: %v", err), c.consultURL)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return registry.Unreachable(fmt.Sprintf("registry responded with status %d", resp.StatusCode), c.consultURL)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return registry.Unreachable(fmt.Sprintf("read response: %v", err), c.consultURL)
	}

	if strings.Contains(resp.Header.Get("Content-Type"), "json") {
		if outcome, ok := c.classifyJSON(body); ok {
			return outcome
		}
		return registry.Unreachable("json response missing an affiliation status", c.consultURL)
	}
	return c.classifyHTML(string(body))
}

func (c *Client) tryBrowser(ctx context.Context, ep Endpoint, docType certificate.DocumentType, docNumber string) registry.Outcome {
	bctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	u, err := url.Parse(ep.URL)
	if err != nil {
		return registry.Unreachable(fmt.Sprintf("bad endpoint %q: %v", ep.URL, err), c.consultURL)
	}
	typeKey, numberKey := ep.queryKeys()
	q := u.Query()
	q.Set(typeKey, string(docType))
	q.Set(numberKey, docNumber)
	u.RawQuery = q.Encode()

	html, err := c.browse(bctx, u.String())
	if err != nil {
		return registry.Unreachable(fmt.Sprintf("headless browser failed: %v", err), c.consultURL)
	}
	return c.classifyHTML(html)
}

// classifyJSON handles the structured variant some ADRES mirrors return.
func (c *Client) classifyJSON(body []byte) (registry.Outcome, bool) {
	var payload map[string]any
	if err := json.Unmarshal(body, &payload); err != nil {
		return registry.Outcome{}, false
	}
	pick := func(keys ...string) string {
		for _, k := range keys {
			if v, ok := payload[k].(string); ok && v != "" {
				return v
			}
		}
		return ""
	}
	status := pick("estado", "Estado")
	if status == "" {
		// a body without an explicit status cannot be classified either
		// way; the caller falls through to the next transport
		return registry.Outcome{}, false
	}
	payer := pick("eps", "EPS", "entidad")
	regime := pick("regimen", "Regimen")

	fields := map[string]string{"affiliation_status": status}
	if payer != "" {
		fields["payer"] = payer
	}
	if regime != "" {
		fields["regime"] = regime
	}
	kind := registry.OutcomeInactive
	if strings.EqualFold(strings.TrimSpace(status), "ACTIVO") {
		kind = registry.OutcomeActive
	}
	return registry.Outcome{Kind: kind, Fields: fields, ConsultURL: c.consultURL}, true
}
