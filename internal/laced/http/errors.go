package http

import (
	"errors"
	"net/http"

	"github.com/aussiebroadwan/laced/internal/laced/service"
	"github.com/aussiebroadwan/laced/pkg/lacedsdk"
	"github.com/aussiebroadwan/laced/pkg/slogx"
)

// writeServiceError maps service errors onto API errors. Store internals are
// logged here and never reach the client.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	log := slogx.FromContext(r.Context())

	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		lacedsdk.ErrValidation.WithFields(verr.Fields).WriteError(w)
	case errors.Is(err, service.ErrDuplicateEmail):
		lacedsdk.ErrDuplicateEmail.WriteError(w)
	case errors.Is(err, service.ErrInvalidCredentials):
		lacedsdk.ErrInvalidCredentials.WriteError(w)
	case errors.Is(err, service.ErrProductNotFound):
		lacedsdk.ErrNotFound.WriteError(w)
	case errors.Is(err, service.ErrInvalidFilter):
		lacedsdk.ErrInvalidRequest.WriteError(w)
	case errors.Is(err, service.ErrStoreUnavailable):
		log.Error("store unavailable", "error", err)
		lacedsdk.ErrServiceUnavailable.WriteError(w)
	default:
		log.Error("unhandled service error", "error", err)
		lacedsdk.ErrServerError.WriteError(w)
	}
}
