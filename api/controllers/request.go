package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/shahzada-shah/flow-studios/api/middleware"
	"github.com/shahzada-shah/flow-studios/pkg/enums"
	pkgerrors "github.com/shahzada-shah/flow-studios/pkg/errors"
)

func sessionIDFromContext(r *http.Request) (string, error) {
	sessionID := middleware.SessionIDFromContext(r.Context())
	if sessionID == "" {
		return "", pkgerrors.New(pkgerrors.CodeUnauthorized, "session context missing")
	}
	return sessionID, nil
}

func pathParam(r *http.Request, name string) (string, error) {
	value := strings.TrimSpace(chi.URLParam(r, name))
	if value == "" {
		return "", pkgerrors.New(pkgerrors.CodeValidation, name+" is required")
	}
	return value, nil
}

func sizeParam(r *http.Request) (enums.Size, error) {
	raw, err := pathParam(r, "size")
	if err != nil {
		return "", err
	}
	size, err := enums.ParseSize(raw)
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid size")
	}
	return size, nil
}
