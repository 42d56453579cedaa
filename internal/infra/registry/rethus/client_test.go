package rethus

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dfmejia/fraude-incapacidades/internal/domain/certificate"
	"github.com/dfmejia/fraude-incapacidades/internal/domain/registry"
)

func TestLookupActiveProfessional(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "1", body["TipoIdentificacion"])
		assert.Equal(t, "52123456", body["NumeroIdentificacion"])

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"NombreCompleto":"ANA RUIZ","Profesion":"MEDICINA","EstadoRegistro":"ACTIVO","NumeroRegistro":"RM-1234"}]`))
	}))
	defer srv.Close()

	c := New(srv.URL, "https://consult.example", 5*time.Second)
	out := c.Lookup(context.Background(), certificate.DocTypeCC, "52123456")

	assert.Equal(t, registry.OutcomeActive, out.Kind)
	assert.Equal(t, "ANA RUIZ", out.Fields["holder_name"])
	assert.Equal(t, "MEDICINA", out.Fields["profession"])
	assert.Equal(t, "https://consult.example", out.ConsultURL)
}

func TestLookupSuspendedProfessional(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"NombreCompleto":"X","EstadoRegistro":"SUSPENDIDO"}]`))
	}))
	defer srv.Close()

	c := New(srv.URL, "", 5*time.Second)
	out := c.Lookup(context.Background(), certificate.DocTypeCC, "123456")
	assert.Equal(t, registry.OutcomeInactive, out.Kind)
}

func TestLookupNoRecord(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := New(srv.URL, "", 5*time.Second)
	out := c.Lookup(context.Background(), certificate.DocTypeCE, "999999")
	assert.Equal(t, registry.OutcomeNotFound, out.Kind)
}

func TestLookupFailuresAreUnreachableNotErrors(t *testing.T) {
	t.Run("upstream 500", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer srv.Close()

		c := New(srv.URL, "", 5*time.Second)
		out := c.Lookup(context.Background(), certificate.DocTypeCC, "123456")
		assert.Equal(t, registry.OutcomeUnreachable, out.Kind)
		assert.NotEmpty(t, out.Reason)
	})

	t.Run("garbage body", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`<html>maintenance</html>`))
		}))
		defer srv.Close()

		c := New(srv.URL, "", 5*time.Second)
		out := c.Lookup(context.Background(), certificate.DocTypeCC, "123456")
		assert.Equal(t, registry.OutcomeUnreachable, out.Kind)
	})

	t.Run("connection refused", func(t *testing.T) {
		c := New("http://127.0.0.1:1", "", time.Second)
		out := c.Lookup(context.Background(), certificate.DocTypeCC, "123456")
		assert.Equal(t, registry.OutcomeUnreachable, out.Kind)
	})
}

func TestLookupUnknownDocTypeDefaultsToCC(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "1", body["TipoIdentificacion"])
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := New(srv.URL, "", 5*time.Second)
	c.Lookup(context.Background(), certificate.DocumentType("XX"), "123456")
}
