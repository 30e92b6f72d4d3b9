package controllers

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/shahzada-shah/flow-studios/api/responses"
	"github.com/shahzada-shah/flow-studios/pkg/auth"
	"github.com/shahzada-shah/flow-studios/pkg/config"
	pkgerrors "github.com/shahzada-shah/flow-studios/pkg/errors"
	"github.com/shahzada-shah/flow-studios/pkg/logger"
)

// SessionCreate issues a token for a brand new anonymous shopper session.
func SessionCreate(cfg config.SessionConfig, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		issued, err := auth.MintSessionToken(cfg, time.Now().UTC(), uuid.New())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint session token"))
			return
		}

		if logg != nil {
			ctx := logg.WithSessionID(r.Context(), issued.SessionID.String())
			logg.Info(ctx, "session.created")
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, issued)
	}
}
