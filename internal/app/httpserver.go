package app

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/Spok95/university-assistant-bot/internal/metrics"
)

type HTTPServer struct {
	srv  *http.Server
	done chan struct{}
}

// Wait блокируется до завершения Shutdown после отмены контекста.
func (h *HTTPServer) Wait() { <-h.done }

// NewHTTPHandler: служебные /healthz, /metrics и /debug/loglevel, остальное уходит в api.
// api и logLevel могут быть nil.
func NewHTTPHandler(db *sql.DB, api, logLevel http.Handler) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if db == nil {
			_, _ = w.Write([]byte("ok"))
			return
		}
		ctx, cancel := context.WithTimeout(r.Context(), 800*time.Millisecond)
		defer cancel()
		t0 := time.Now()
		if err := db.PingContext(ctx); err != nil {
			http.Error(w, "db not ok: "+err.Error(), http.StatusServiceUnavailable)
			return
		}
		metrics.ObserveDBPing(time.Since(t0))
		_, _ = w.Write([]byte("ok"))
	})

	mux.Handle("/metrics", metrics.Handler())
	if logLevel != nil {
		mux.Handle("/debug/loglevel", logLevel)
	}

	if api != nil {
		mux.Handle("/", api)
	}
	return mux
}

func StartHTTP(ctx context.Context, addr string, db *sql.DB, api, logLevel http.Handler, log *zap.Logger) *HTTPServer {
	srv := &http.Server{
		Addr:              addr,
		Handler:           NewHTTPHandler(db, api, logLevel),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("http server", zap.String("addr", addr), zap.Error(err))
		}
	}()

	h := &HTTPServer{srv: srv, done: make(chan struct{})}
	go func() {
		defer close(h.done)
		<-ctx.Done()
		shCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		_ = srv.Shutdown(shCtx)
	}()

	return h
}
