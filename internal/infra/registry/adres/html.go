package adres

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/dfmejia/fraude-incapacidades/internal/domain/registry"
)

// captchaMarkers flag a consultation page that is challenging the client
// instead of answering it.
var captchaMarkers = []string{
	"recaptcha",
	"g-recaptcha",
	"verificación captcha",
	"no soy un robot",
}

// notFoundMarkers are the phrasings the BDUA pages use for an explicit
// "no record" answer.
var notFoundMarkers = []string{
	"no se encuentra afiliado",
	"no se encontró información",
	"no existe información",
	"sin información de afiliación",
}

// word-level status markers; a plain substring check cannot tell ACTIVO
// apart from INACTIVO
var (
	reActivo     = regexp.MustCompile(`\bactivo\b`)
	reInactivo   = regexp.MustCompile(`\binactivo\b`)
	reSuspendido = regexp.MustCompile(`\bsuspendido\b`)
	reRetirado   = regexp.MustCompile(`\bretirado\b`)
)

// classifyHTML reads a rendered consultation page. The rules preserve a hard
// distinction: an explicit negative answer classifies as NotFound, while a
// page we cannot read with confidence classifies as Unreachable.
func (c *Client) classifyHTML(html string) registry.Outcome {
	lower := strings.ToLower(html)

	for _, marker := range captchaMarkers {
		if strings.Contains(lower, marker) {
			return registry.Unreachable("anti-automation challenge (reCAPTCHA) blocked the consultation", c.consultURL)
		}
	}
	for _, marker := range notFoundMarkers {
		if strings.Contains(lower, marker) {
			return registry.Outcome{Kind: registry.OutcomeNotFound, ConsultURL: c.consultURL}
		}
	}

	fields := extractFields(html)
	if strings.Contains(lower, "contributivo") {
		fields["regime"] = "contributivo"
	} else if strings.Contains(lower, "subsidiado") {
		fields["regime"] = "subsidiado"
	}

	// The status cell on the result panel is authoritative when present.
	if status := strings.TrimSpace(fields["affiliation_status"]); status != "" {
		kind := registry.OutcomeInactive
		if strings.EqualFold(status, "ACTIVO") {
			kind = registry.OutcomeActive
		}
		return registry.Outcome{Kind: kind, Fields: fields, ConsultURL: c.consultURL}
	}

	// No status cell; fall back to whole-word markers in the page text.
	switch {
	case reInactivo.MatchString(lower), strings.Contains(lower, "no activo"),
		reSuspendido.MatchString(lower), reRetirado.MatchString(lower):
		fields["affiliation_status"] = "NO ACTIVO"
		return registry.Outcome{Kind: registry.OutcomeInactive, Fields: fields, ConsultURL: c.consultURL}
	case reActivo.MatchString(lower):
		fields["affiliation_status"] = "ACTIVO"
		return registry.Outcome{Kind: registry.OutcomeActive, Fields: fields, ConsultURL: c.consultURL}
	}
	return registry.Unreachable("page did not contain a recognizable affiliation answer", c.consultURL)
}

// labelFields maps the labels shown on the result panel to report detail keys.
var labelFields = map[string]string{
	"estado":   "affiliation_status",
	"eps":      "payer",
	"entidad":  "payer",
	"régimen":  "regime",
	"regimen":  "regime",
	"afiliado": "holder_name",
}

// extractFields walks label/value cell pairs on the result table.
func extractFields(html string) map[string]string {
	fields := map[string]string{}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return fields
	}
	doc.Find("tr").Each(func(_ int, row *goquery.Selection) {
		cells := row.Find("td, th")
		if cells.Length() < 2 {
			return
		}
		label := strings.ToLower(strings.TrimSpace(cells.Eq(0).Text()))
		value := strings.TrimSpace(cells.Eq(1).Text())
		if value == "" {
			return
		}
		for marker, key := range labelFields {
			if strings.Contains(label, marker) && fields[key] == "" {
				fields[key] = value
			}
		}
	})
	return fields
}
