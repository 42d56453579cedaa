package ddg

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const resultsPage = `
<html><body>
<div class="result">
  <a class="result__a" href="//duckduckgo.com/l/?uddg=https%3A%2F%2Fclinica.example%2Fsedes&amp;rut=1">Clinica El Prado - Sedes</a>
  <a class="result__snippet">Red de atención en Barranquilla</a>
</div>
<div class="result">
  <a class="result__a" href="https://news.example/articulo">Noticia local</a>
  <a class="result__snippet">Mención de la clínica</a>
</div>
<div class="result">
  <a class="result__a" href="https://blog.example/post">Tercer resultado</a>
</div>
</body></html>`

func TestSearchParsesResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "clinica el prado", r.URL.Query().Get("q"))
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(resultsPage))
	}))
	defer srv.Close()

	c := New(srv.URL, 5*time.Second)
	results, err := c.Search(context.Background(), "clinica el prado", 5)
	require.NoError(t, err)
	require.Len(t, results, 3)

	// the uddg indirection is unwrapped to the real URL
	assert.Equal(t, "https://clinica.example/sedes", results[0].URL)
	assert.Equal(t, "Clinica El Prado - Sedes", results[0].Title)
	assert.Equal(t, "Red de atención en Barranquilla", results[0].Snippet)

	assert.Equal(t, "https://news.example/articulo", results[1].URL)
}

func TestSearchHonorsMaxResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(resultsPage))
	}))
	defer srv.Close()

	c := New(srv.URL, 5*time.Second)
	results, err := c.Search(context.Background(), "x", 2)
	require.NoError(t, err)
	assert.Len(t, results, 2)
}

func TestSearchEmptyPageIsNotAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><body><div class="no-results">Sin resultados</div></body></html>`))
	}))
	defer srv.Close()

	c := New(srv.URL, 5*time.Second)
	results, err := c.Search(context.Background(), "x", 3)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestSearchUpstreamFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	c := New(srv.URL, 5*time.Second)
	_, err := c.Search(context.Background(), "x", 3)
	require.Error(t, err)
}

func TestResolveRedirect(t *testing.T) {
	assert.Equal(t, "https://clinica.example/sedes",
		resolveRedirect("//duckduckgo.com/l/?uddg=https%3A%2F%2Fclinica.example%2Fsedes"))
	assert.Equal(t, "https://direct.example/page",
		resolveRedirect("https://direct.example/page"))
}
