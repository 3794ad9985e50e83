// Package httpserver wraps net/http with graceful shutdown and sane
// timeout defaults. Run blocks until the context is cancelled, an
// interrupt or TERM signal arrives, or the listener fails; shutdown
// then drains in-flight requests within a configurable deadline.
//
//	srv := httpserver.New(
//		httpserver.WithAddr(":8000"),
//		httpserver.WithLogger(log),
//	)
//	if err := srv.Run(ctx, router); err != nil {
//		log.Error("server stopped", logger.Error(err))
//	}
//
// Errors from Run are wrapped with ErrStart, shutdown failures with
// ErrShutdown, so callers can distinguish them with errors.Is.
package httpserver
