// Package rethus queries the RETHUS register of health professionals through
// the public SISPRO consultation API.
package rethus

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/dfmejia/fraude-incapacidades/internal/domain/certificate"
	"github.com/dfmejia/fraude-incapacidades/internal/domain/registry"
)

const (
	DefaultEndpoint   = "https://web.sispro.gov.co/THS/Api/ConsultaPublica/BuscarTHSxIdentificacion"
	DefaultConsultURL = "https://web.sispro.gov.co/THS/Cliente/ConsultasPublicas/ConsultaPublicaDeTHxIdentificacion.aspx"

	userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"
)

// docTypeCodes maps document types to the numeric codes the SISPRO API expects.
var docTypeCodes = map[certificate.DocumentType]string{
	certificate.DocTypeCC: "1",
	certificate.DocTypeCE: "2",
	certificate.DocTypePA: "3",
	certificate.DocTypeTI: "4",
	certificate.DocTypeRC: "5",
}

type Client struct {
	endpoint   string
	consultURL string
	http       *http.Client
}

func New(endpoint, consultURL string, timeout time.Duration) *Client {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	if consultURL == "" {
		consultURL = DefaultConsultURL
	}
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		endpoint:   endpoint,
		consultURL: consultURL,
		http:       &http.Client{Timeout: timeout},
	}
}

func (c *Client) Name() string { return "professional-license-registry" }

// ConsultURL exposes the public consultation page, used for health probes.
func (c *Client) ConsultURL() string { return c.consultURL }

// professionalRecord mirrors the SISPRO response fields of interest.
type professionalRecord struct {
	FullName     string `json:"NombreCompleto"`
	Profession   string `json:"Profesion"`
	RecordStatus string `json:"EstadoRegistro"`
	RecordNumber string `json:"NumeroRegistro"`
}

// Lookup issues one consultation and classifies the response. Transport
// failures and unclassifiable answers come back as an Unreachable outcome;
// they are never errors.
func (c *Client) Lookup(ctx context.Context, docType certificate.DocumentType, docNumber string) registry.Outcome {
	typeCode, ok := docTypeCodes[docType]
	if !ok {
		typeCode = docTypeCodes[certificate.DocTypeCC]
	}

	payload, err := json.Marshal(map[string]string{
		"TipoIdentificacion":   typeCode,
		"NumeroIdentificacion": docNumber,
	})
	if err != nil {
		return registry.Unreachable(fmt.Sprintf("encode request: %v", err), c.consultURL)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return registry.Unreachable(fmt.Sprintf("build request: %v", err), c.consultURL)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Referer", c.consultURL)

	resp, err := c.http.Do(req)
	if err != nil {
		return registry.Unreachable(fmt.Sprintf("registry request failed: %v", err), c.consultURL)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return registry.Unreachable(fmt.Sprintf("registry responded with status %d", resp.StatusCode), c.consultURL)
	}

	var records []professionalRecord
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		return registry.Unreachable(fmt.Sprintf("unparseable registry response: %v", err), c.consultURL)
	}

	if len(records) == 0 {
		return registry.Outcome{Kind: registry.OutcomeNotFound, ConsultURL: c.consultURL}
	}

	rec := records[0]
	fields := map[string]string{
		"holder_name":   rec.FullName,
		"profession":    rec.Profession,
		"record_status": rec.RecordStatus,
		"record_number": rec.RecordNumber,
	}
	kind := registry.OutcomeInactive
	if strings.EqualFold(strings.TrimSpace(rec.RecordStatus), "ACTIVO") {
		kind = registry.OutcomeActive
	}
	return registry.Outcome{Kind: kind, Fields: fields, ConsultURL: c.consultURL}
}
