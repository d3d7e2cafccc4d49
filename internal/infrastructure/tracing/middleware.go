package tracing

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/GriffinCanCode/PackStudio/internal/shared/id"
)

// maxHeaderID bounds ids accepted from clients
const maxHeaderID = 64

// HTTPMiddleware creates Gin middleware for HTTP tracing
func HTTPMiddleware(tracer *Tracer) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		if traceID := headerID(c.GetHeader(TraceHeader)); traceID != "" {
			ctx = WithTraceID(ctx, id.TraceID(traceID))
		}
		if parentID := headerID(c.GetHeader(SpanHeader)); parentID != "" {
			ctx = WithSpanID(ctx, id.SpanID(parentID))
		}

		name := c.FullPath()
		if name == "" {
			name = "unmatched"
		}
		span, ctx := tracer.StartSpan(ctx, c.Request.Method+" "+name)
		span.SetTag("http.method", c.Request.Method)
		span.SetTag("http.path", c.Request.URL.Path)
		if project := c.Param("name"); project != "" {
			span.SetTag("project", project)
		}

		c.Request = c.Request.WithContext(ctx)
		c.Header(TraceHeader, span.TraceID.String())
		c.Header(SpanHeader, span.SpanID.String())

		c.Next()

		span.SetStatus(c.Writer.Status())
		if len(c.Errors) > 0 {
			span.SetError(c.Errors.Last())
		}

		span.Finish()
		tracer.Submit(span)
	}
}

// headerID accepts short printable ids only
func headerID(v string) string {
	v = strings.TrimSpace(v)
	if len(v) > maxHeaderID {
		return ""
	}
	for _, r := range v {
		if r < 0x21 || r > 0x7e {
			return ""
		}
	}
	return v
}
