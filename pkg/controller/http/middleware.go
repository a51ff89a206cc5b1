package http

import (
	"context"
	"net/http"

	"github.com/secmon-lab/dossier/pkg/domain/types"
	"github.com/secmon-lab/dossier/pkg/utils/logging"
)

// ActorHeader carries the authenticated principal. Authentication itself
// happens in front of this server.
const ActorHeader = "X-Actor-ID"

type actorCtxKey struct{}

func actorFromContext(ctx context.Context) types.ActorID {
	if actor, ok := ctx.Value(actorCtxKey{}).(types.ActorID); ok {
		return actor
	}
	return ""
}

// actorMiddleware requires a valid actor header on every request
func actorMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actor := types.ActorID(r.Header.Get(ActorHeader))
		if actor == "" || actor.Validate() != nil {
			writeJSON(w, r, http.StatusUnauthorized, &errorResponse{
				Error:   "unauthenticated",
				Message: ActorHeader + " header is required",
			})
			return
		}

		ctx := context.WithValue(r.Context(), actorCtxKey{}, actor)
		ctx = logging.With(ctx, logging.From(ctx).With("actor", actor))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
