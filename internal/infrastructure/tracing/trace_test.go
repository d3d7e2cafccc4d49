package tracing

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/GriffinCanCode/PackStudio/internal/infrastructure/logging"
	"github.com/GriffinCanCode/PackStudio/internal/shared/id"
)

func observed() (*logging.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return logging.Wrap(zap.New(core)), logs
}

func TestStartSpanContinuesTrace(t *testing.T) {
	tracer := New("test", logging.Nop())
	defer tracer.Close()

	parent, ctx := tracer.StartSpan(context.Background(), "parent")
	child, ctx := tracer.StartSpan(ctx, "child")

	assert.Equal(t, parent.TraceID, child.TraceID)
	assert.Equal(t, parent.SpanID, child.ParentID)
	assert.Equal(t, child.SpanID, SpanIDFrom(ctx))
	assert.True(t, strings.HasPrefix(parent.TraceID.String(), "trace_"))
}

func TestCloseDrainsSpans(t *testing.T) {
	logger, logs := observed()
	tracer := New("test", logger)

	span, _ := tracer.StartSpan(context.Background(), "op")
	span.SetError(errors.New("boom"))
	span.Finish()
	tracer.Submit(span)
	tracer.Close()

	entries := logs.FilterMessage("span completed with error").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "op", entries[0].ContextMap()["operation"])

	assert.NotPanics(t, func() { tracer.Submit(span) })
}

func TestHTTPMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	logger, logs := observed()
	tracer := New("test", logger)

	var seen id.TraceID
	router := gin.New()
	router.Use(HTTPMiddleware(tracer))
	router.GET("/api/v1/projects/:name", func(c *gin.Context) {
		seen = TraceIDFrom(c.Request.Context())
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/projects/demo", nil)
	req.Header.Set(TraceHeader, "trace_incoming")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	tracer.Close()

	assert.Equal(t, id.TraceID("trace_incoming"), seen)
	assert.Equal(t, "trace_incoming", w.Header().Get(TraceHeader))
	assert.NotEmpty(t, w.Header().Get(SpanHeader))

	entries := logs.FilterMessage("span completed").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "GET /api/v1/projects/:name", fields["operation"])
	assert.Equal(t, "demo", fields["project"])
}

func TestHeaderIDRejectsJunk(t *testing.T) {
	assert.Equal(t, "abc", headerID(" abc "))
	assert.Empty(t, headerID("has space"))
	assert.Empty(t, headerID(strings.Repeat("x", maxHeaderID+1)))
}

func TestWithTrace(t *testing.T) {
	logger, logs := observed()

	ctx := WithTraceID(context.Background(), "trace_x")
	WithTrace(ctx, logger).Info("hello")
	WithTrace(context.Background(), logger).Info("plain")

	all := logs.All()
	require.Len(t, all, 2)
	assert.Equal(t, "trace_x", all[0].ContextMap()["trace_id"])
	assert.NotContains(t, all[1].ContextMap(), "trace_id")
}
