package httpx

import (
	"errors"
	"net/http"

	"github.com/lotus-studio/lotus/internal/shared"
)

// RespondError maps domain errors to HTTP status codes. Bodies stay empty
// except where the wire format promises one; internal details never leak.
func RespondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, shared.ErrNotFound):
		w.WriteHeader(http.StatusNotFound)
	case errors.Is(err, shared.ErrAlreadyParticipating),
		errors.Is(err, shared.ErrNotParticipating):
		w.WriteHeader(http.StatusBadRequest)
	case errors.Is(err, shared.ErrEmailTaken):
		Message(w, http.StatusBadRequest, "Error: Email is already taken!")
	default:
		w.WriteHeader(http.StatusInternalServerError)
	}
}
