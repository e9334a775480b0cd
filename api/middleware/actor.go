package middleware

import (
	"net/http"
	"strings"

	"github.com/jiaotianpharma/warehouse-backend/pkg/logger"
)

const actorHeader = "X-Operator-Name"

// Actor resolves the opaque operator identity from the request header and
// attaches it to the context. The identity is not authenticated; audit
// attribution falls back to the system actor when the header is absent.
func Actor(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			actor := strings.TrimSpace(r.Header.Get(actorHeader))

			ctx := r.Context()
			if actor != "" {
				ctx = WithActor(ctx, actor)
				if logg != nil {
					ctx = logg.WithActor(ctx, actor)
				}
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
