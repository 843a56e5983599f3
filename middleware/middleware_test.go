package middleware

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/ariebrainware/patient-data-api/store"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newFileStore(t *testing.T) *store.Store {
	t.Helper()
	return store.New(store.NewFileBackend(filepath.Join(t.TempDir(), "patients.json")), 0)
}

func TestCORSMiddleware_SetsHeaders(t *testing.T) {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(CORSMiddleware())
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest("GET", "/ping", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	assert.Equal(t, "*", rr.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, rr.Header().Get("Access-Control-Allow-Methods"), "PUT")
	assert.Contains(t, rr.Header().Get("Access-Control-Allow-Methods"), "DELETE")
}

func TestCORSMiddleware_PreflightShortCircuits(t *testing.T) {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(CORSMiddleware())
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest("OPTIONS", "/ping", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNoContent, rr.Code)
}

func TestStoreMiddleware_InjectsStore(t *testing.T) {
	gin.SetMode(gin.ReleaseMode)
	s := newFileStore(t)

	var got *store.Store
	r := gin.New()
	r.Use(StoreMiddleware(s))
	r.GET("/ping", func(c *gin.Context) {
		got = GetStore(c)
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest("GET", "/ping", nil)
	r.ServeHTTP(httptest.NewRecorder(), req)

	assert.Same(t, s, got)
}

func TestGetStore_MissingReturnsNil(t *testing.T) {
	gin.SetMode(gin.ReleaseMode)

	got := newFileStore(t) // non-nil so the handler observably clears it
	r := gin.New()
	r.GET("/ping", func(c *gin.Context) {
		got = GetStore(c)
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest("GET", "/ping", nil)
	r.ServeHTTP(httptest.NewRecorder(), req)

	assert.Nil(t, got)
}
