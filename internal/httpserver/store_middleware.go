package httpserver

import (
	"database/sql"
	"fmt"
	"net/http"

	"github.com/rs/zerolog/log"

	"collegeconnect/internal/domain"
)

// StoreCheck rejects requests with 503 while the backing store is
// unreachable, before any handler logic runs.
func StoreCheck(db *sql.DB) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if err := db.PingContext(r.Context()); err != nil {
				log.Warn().Err(err).Msg("store unreachable")
				writeError(w, r, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
