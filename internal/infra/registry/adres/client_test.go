package adres

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dfmejia/fraude-incapacidades/internal/domain/certificate"
	"github.com/dfmejia/fraude-incapacidades/internal/domain/registry"
	"github.com/dfmejia/fraude-incapacidades/internal/domain/verification"
)

const activeAffiliationPage = `
<html><body>
<table>
  <tr><td>Afiliado</td><td>JUAN PEREZ</td></tr>
  <tr><td>EPS</td><td>SANITAS</td></tr>
  <tr><td>Estado</td><td>ACTIVO</td></tr>
  <tr><td>Régimen</td><td>Contributivo</td></tr>
</table>
</body></html>`

const captchaPage = `
<html><body>
<div class="g-recaptcha" data-sitekey="x"></div>
<p>Confirme que no soy un robot para continuar</p>
</body></html>`

const noRecordPage = `
<html><body><p>El documento consultado no se encuentra afiliado al sistema</p></body></html>`

const inactiveAffiliationPage = `
<html><body>
<table>
  <tr><td>Afiliado</td><td>JUAN PEREZ</td></tr>
  <tr><td>EPS</td><td>COOMEVA</td></tr>
  <tr><td>Estado</td><td>INACTIVO</td></tr>
</table>
</body></html>`

func TestLookupClassifiesRenderedPage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "CC", r.URL.Query().Get("tipoDocumento"))
		assert.Equal(t, "1020304050", r.URL.Query().Get("numero"))
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(activeAffiliationPage))
	}))
	defer srv.Close()

	c := New([]Endpoint{{Kind: "http", URL: srv.URL}}, "", 5*time.Second)
	out := c.Lookup(context.Background(), certificate.DocTypeCC, "1020304050")

	assert.Equal(t, registry.OutcomeActive, out.Kind)
	assert.Equal(t, "JUAN PEREZ", out.Fields["holder_name"])
	assert.Equal(t, "SANITAS", out.Fields["payer"])
	assert.Equal(t, "contributivo", out.Fields["regime"])
}

func TestLookupInactiveAffiliationIsHighRiskNotClean(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(inactiveAffiliationPage))
	}))
	defer srv.Close()

	c := New([]Endpoint{{Kind: "http", URL: srv.URL}}, "", 5*time.Second)
	out := c.Lookup(context.Background(), certificate.DocTypeCC, "1020304050")

	require.Equal(t, registry.OutcomeInactive, out.Kind)
	assert.Equal(t, "INACTIVO", out.Fields["affiliation_status"])

	sig := out.Signal(verification.SourceInsuranceRegistry, c.Name())
	assert.Equal(t, verification.StatusConfirmed, sig.Status)
	assert.Equal(t, verification.RiskHigh, sig.RiskLevel)
}

func TestLookupJSONMirror(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"estado":"ACTIVO","eps":"NUEVA EPS","regimen":"subsidiado"}`))
	}))
	defer srv.Close()

	c := New([]Endpoint{{Kind: "http", URL: srv.URL}}, "", 5*time.Second)
	out := c.Lookup(context.Background(), certificate.DocTypeCC, "1020304050")

	assert.Equal(t, registry.OutcomeActive, out.Kind)
	assert.Equal(t, "NUEVA EPS", out.Fields["payer"])
	assert.Equal(t, "subsidiado", out.Fields["regime"])
}

func TestLookupSendsEndpointQueryKeys(t *testing.T) {
	t.Run("overridden keys", func(t *testing.T) {
		var got map[string]string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got = map[string]string{
				"tipoId":    r.URL.Query().Get("tipoId"),
				"txtNumero": r.URL.Query().Get("txtNumero"),
			}
			w.Write([]byte(activeAffiliationPage))
		}))
		defer srv.Close()

		c := New([]Endpoint{{
			Kind:           "http",
			URL:            srv.URL,
			DocTypeParam:   "tipoId",
			DocNumberParam: "txtNumero",
		}}, "", 5*time.Second)
		out := c.Lookup(context.Background(), certificate.DocTypeCC, "1020304050")

		require.Equal(t, registry.OutcomeActive, out.Kind)
		assert.Equal(t, "CC", got["tipoId"])
		assert.Equal(t, "1020304050", got["txtNumero"])
	})

	t.Run("default keys when none configured", func(t *testing.T) {
		var got map[string]string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got = map[string]string{
				"tipoDocumento": r.URL.Query().Get("tipoDocumento"),
				"numero":        r.URL.Query().Get("numero"),
			}
			w.Write([]byte(activeAffiliationPage))
		}))
		defer srv.Close()

		c := New([]Endpoint{{Kind: "http", URL: srv.URL}}, "", 5*time.Second)
		out := c.Lookup(context.Background(), certificate.DocTypeCC, "1020304050")

		require.Equal(t, registry.OutcomeActive, out.Kind)
		assert.Equal(t, "CC", got["tipoDocumento"])
		assert.Equal(t, "1020304050", got["numero"])
	})
}

func TestLookupJSONWithoutStatusFallsThrough(t *testing.T) {
	partial := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"eps":"SANITAS"}`))
	}))
	defer partial.Close()

	t.Run("single endpoint is unreachable, never inactive", func(t *testing.T) {
		c := New([]Endpoint{{Kind: "http", URL: partial.URL}}, "", 5*time.Second)
		out := c.Lookup(context.Background(), certificate.DocTypeCC, "1020304050")

		require.Equal(t, registry.OutcomeUnreachable, out.Kind)
		sig := out.Signal(verification.SourceInsuranceRegistry, c.Name())
		assert.Equal(t, verification.RiskIndeterminate, sig.RiskLevel)
	})

	t.Run("next transport still gets its chance", func(t *testing.T) {
		answering := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(activeAffiliationPage))
		}))
		defer answering.Close()

		c := New([]Endpoint{
			{Kind: "http", URL: partial.URL},
			{Kind: "http", URL: answering.URL},
		}, "", 5*time.Second)

		out := c.Lookup(context.Background(), certificate.DocTypeCC, "1020304050")
		assert.Equal(t, registry.OutcomeActive, out.Kind)
	})
}

func TestLookupFallsThroughBlockedEndpoints(t *testing.T) {
	blocked := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(captchaPage))
	}))
	defer blocked.Close()
	answering := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(activeAffiliationPage))
	}))
	defer answering.Close()

	c := New([]Endpoint{
		{Kind: "http", URL: blocked.URL},
		{Kind: "http", URL: answering.URL},
	}, "", 5*time.Second)

	out := c.Lookup(context.Background(), certificate.DocTypeCC, "1020304050")
	assert.Equal(t, registry.OutcomeActive, out.Kind)
}

func TestLookupBrowserFallback(t *testing.T) {
	blocked := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(captchaPage))
	}))
	defer blocked.Close()

	c := New([]Endpoint{
		{Kind: "http", URL: blocked.URL},
		{Kind: "browser", URL: "https://registry.example/consulta"},
	}, "", 5*time.Second)
	c.browse = func(_ context.Context, pageURL string) (string, error) {
		assert.Contains(t, pageURL, "numero=1020304050")
		return activeAffiliationPage, nil
	}

	out := c.Lookup(context.Background(), certificate.DocTypeCC, "1020304050")
	assert.Equal(t, registry.OutcomeActive, out.Kind)
}

func TestLookupAllEndpointsBlockedIsUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(captchaPage))
	}))
	defer srv.Close()

	c := New([]Endpoint{{Kind: "http", URL: srv.URL}}, "https://consult.example", 5*time.Second)
	out := c.Lookup(context.Background(), certificate.DocTypeCC, "1020304050")

	require.Equal(t, registry.OutcomeUnreachable, out.Kind)
	assert.Contains(t, out.Reason, "reCAPTCHA")
	assert.Equal(t, "https://consult.example", out.ConsultURL)
}

func TestClassifyHTML(t *testing.T) {
	c := New(nil, "https://consult.example", time.Second)

	t.Run("explicit no-record answer is not found", func(t *testing.T) {
		out := c.classifyHTML(noRecordPage)
		assert.Equal(t, registry.OutcomeNotFound, out.Kind)
	})

	t.Run("suspended affiliation is inactive", func(t *testing.T) {
		out := c.classifyHTML(`<html><table><tr><td>Estado</td><td>SUSPENDIDO</td></tr></table></html>`)
		assert.Equal(t, registry.OutcomeInactive, out.Kind)
		assert.Equal(t, "SUSPENDIDO", out.Fields["affiliation_status"])
	})

	t.Run("explicit INACTIVO status cell is inactive", func(t *testing.T) {
		out := c.classifyHTML(`<html><table><tr><td>Estado</td><td>INACTIVO</td></tr></table></html>`)
		assert.Equal(t, registry.OutcomeInactive, out.Kind)
	})

	t.Run("inactivo in page text never reads as active", func(t *testing.T) {
		out := c.classifyHTML(`<html><body>El afiliado se encuentra INACTIVO en el regimen contributivo</body></html>`)
		assert.Equal(t, registry.OutcomeInactive, out.Kind)
	})

	t.Run("no activo phrasing is inactive", func(t *testing.T) {
		out := c.classifyHTML(`<html><body>Estado de afiliacion: NO ACTIVO</body></html>`)
		assert.Equal(t, registry.OutcomeInactive, out.Kind)
	})

	t.Run("standalone activo without a status cell is active", func(t *testing.T) {
		out := c.classifyHTML(`<html><body>El afiliado se encuentra ACTIVO en el regimen subsidiado</body></html>`)
		assert.Equal(t, registry.OutcomeActive, out.Kind)
		assert.Equal(t, "subsidiado", out.Fields["regime"])
	})

	t.Run("unrecognizable page is unreachable", func(t *testing.T) {
		out := c.classifyHTML(`<html><body>Bienvenido al portal</body></html>`)
		assert.Equal(t, registry.OutcomeUnreachable, out.Kind)
	})
}
