package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	testingclock "k8s.io/utils/clock/testing"
)

func newRouter(clk *testingclock.FakeClock, status int) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID(), Logging(clk))
	r.GET("/things/:id", func(c *gin.Context) {
		clk.Step(250 * time.Millisecond)
		c.Status(status)
	})
	return r
}

func TestRequestID_GeneratesWhenMissing(t *testing.T) {
	r := newRouter(testingclock.NewFakeClock(time.Now()), http.StatusOK)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/things/1", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, w.Header().Get(HeaderRequestID), 36)
}

func TestRequestID_KeepsIncoming(t *testing.T) {
	r := newRouter(testingclock.NewFakeClock(time.Now()), http.StatusOK)

	req := httptest.NewRequest(http.MethodGet, "/things/1", nil)
	req.Header.Set(HeaderRequestID, "req-123")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, "req-123", w.Header().Get(HeaderRequestID))
}

func TestRequestID_ReplacesUnsafeIncoming(t *testing.T) {
	r := newRouter(testingclock.NewFakeClock(time.Now()), http.StatusOK)

	for _, id := range []string{"bad id\twith tabs", "line\nbreak", strings.Repeat("a", 65)} {
		req := httptest.NewRequest(http.MethodGet, "/things/1", nil)
		req.Header.Set(HeaderRequestID, id)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		got := w.Header().Get(HeaderRequestID)
		assert.NotEqual(t, id, got)
		assert.Len(t, got, 36)
	}
}

func TestLogging_Fields(t *testing.T) {
	hook := test.NewGlobal()
	defer hook.Reset()

	r := newRouter(testingclock.NewFakeClock(time.Now()), http.StatusNotFound)

	req := httptest.NewRequest(http.MethodGet, "/things/42", nil)
	req.Header.Set(HeaderRequestID, "req-9")
	req.Header.Set("Project-ID", "p-1")
	r.ServeHTTP(httptest.NewRecorder(), req)

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, log.WarnLevel, entry.Level)
	assert.Equal(t, "request completed", entry.Message)
	assert.Equal(t, 404, entry.Data["status"])
	assert.Equal(t, "/things/42", entry.Data["path"])
	assert.Equal(t, "/things/:id", entry.Data["route"])
	assert.Equal(t, int64(250), entry.Data["latency_ms"])
	assert.Equal(t, "req-9", entry.Data["request_id"])
	assert.Equal(t, "p-1", entry.Data["project_id"])
}

func TestLogging_ServerErrorLevel(t *testing.T) {
	hook := test.NewGlobal()
	defer hook.Reset()

	r := newRouter(testingclock.NewFakeClock(time.Now()), http.StatusInternalServerError)
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/things/1", nil))

	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, log.ErrorLevel, hook.LastEntry().Level)
}
