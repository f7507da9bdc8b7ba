package middleware

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestCacheRepiteLaRespuestaDentroDelTTL(t *testing.T) {
	PurgeCache()
	gin.SetMode(gin.TestMode)

	llamadas := 0
	r := gin.New()
	r.GET("/datos", Cache(CacheConfig{Expiration: time.Minute}), func(c *gin.Context) {
		llamadas++
		c.JSON(http.StatusOK, gin.H{"llamada": llamadas})
	})

	w1 := httptest.NewRecorder()
	r.ServeHTTP(w1, httptest.NewRequest(http.MethodGet, "/datos", nil))
	w2 := httptest.NewRecorder()
	r.ServeHTTP(w2, httptest.NewRequest(http.MethodGet, "/datos", nil))

	assert.Equal(t, 1, llamadas)
	assert.Equal(t, w1.Body.String(), w2.Body.String())
}

func TestCacheDistingueParametrosDeConsulta(t *testing.T) {
	PurgeCache()
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.GET("/datos", Cache(CacheConfig{Expiration: time.Minute}), func(c *gin.Context) {
		c.String(http.StatusOK, "pagina="+c.Query("page"))
	})

	w1 := httptest.NewRecorder()
	r.ServeHTTP(w1, httptest.NewRequest(http.MethodGet, "/datos?page=1", nil))
	w2 := httptest.NewRecorder()
	r.ServeHTTP(w2, httptest.NewRequest(http.MethodGet, "/datos?page=2", nil))

	assert.Equal(t, "pagina=1", w1.Body.String())
	assert.Equal(t, "pagina=2", w2.Body.String())
}

func TestCacheIgnoraEscrituras(t *testing.T) {
	PurgeCache()
	gin.SetMode(gin.TestMode)

	llamadas := 0
	r := gin.New()
	r.POST("/datos", Cache(CacheConfig{Expiration: time.Minute}), func(c *gin.Context) {
		llamadas++
		c.String(http.StatusOK, strconv.Itoa(llamadas))
	})

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/datos", nil))
	}
	assert.Equal(t, 3, llamadas)
}

func TestCacheNoGuardaErrores(t *testing.T) {
	PurgeCache()
	gin.SetMode(gin.TestMode)

	llamadas := 0
	r := gin.New()
	r.GET("/falla", Cache(CacheConfig{Expiration: time.Minute}), func(c *gin.Context) {
		llamadas++
		c.String(http.StatusInternalServerError, "error")
	})

	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/falla", nil))
	}
	assert.Equal(t, 2, llamadas)
}
