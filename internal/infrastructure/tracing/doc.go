/*
Package tracing provides request-scoped spans for debugging.

Each HTTP request gets a span with a ULID based id. A caller can continue
an existing trace by sending X-Trace-ID; the response always carries the
trace and span ids. Finished spans are logged through zap by a background
collector.

	tracer := tracing.New("packstudio", logger)
	defer tracer.Close()
	router.Use(tracing.HTTPMiddleware(tracer))

Handlers attach the trace id to their own log lines with WithTrace.
*/
package tracing
