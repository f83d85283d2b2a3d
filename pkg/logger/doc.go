// Package logger builds slog loggers that pick request-scoped attributes out of the context.
//
// A ContextExtractor pulls one attribute from ctx. Extractors run on every log call:
//
//	requestID := func(ctx context.Context) (slog.Attr, bool) {
//		if id := middlewares.GetRequestID(ctx); id != "" {
//			return slog.String("request_id", id), true
//		}
//		return slog.Attr{}, false
//	}
//
//	log := logger.New(logger.ParseLevel(cfg.LogLevel), requestID)
//	log.InfoContext(ctx, "post saved", slog.String("slug", p.Slug))
//	// {"level":"INFO","msg":"post saved","slug":"hello-world","request_id":"..."}
//
// LogHandlerDecorator can wrap any slog.Handler the same way. NewNope returns a
// logger that discards everything; it is the default wherever a logger is optional.
package logger
