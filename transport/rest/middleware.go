package rest

import (
	"log/slog"
	"net/http"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
)

const (
	actionVersion = "2.1.3"
	// devnet genesis hash in CAIP-2 form
	blockchainIDs = "solana:EtWTRABZaYq6iMfeYKouRu166VU2xqa1"
)

// actionsCORS sets the permissive headers wallets and blink clients expect on every response.
func actionsCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := w.Header()
		header.Set("Access-Control-Allow-Origin", "*")
		header.Set("Access-Control-Allow-Methods", "GET,POST,PUT,OPTIONS")
		header.Set("Access-Control-Allow-Headers",
			"Content-Type, Authorization, Content-Encoding, Accept-Encoding, X-Accept-Action-Version, X-Accept-Blockchain-Ids")
		header.Set("Access-Control-Expose-Headers", "X-Action-Version, X-Blockchain-Ids")
		header.Set("X-Action-Version", actionVersion)
		header.Set("X-Blockchain-Ids", blockchainIDs)

		next.ServeHTTP(w, r)
	})
}

func requestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	log := logger.With("component", "http")

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			log.Info("request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"request_id", chimw.GetReqID(r.Context()),
			)
		})
	}
}
