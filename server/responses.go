package server

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/jrsteele09/safisaude-console/guard"
	"github.com/jrsteele09/safisaude-console/internal/errors"
	"github.com/jrsteele09/safisaude-console/validation"
)

const (
	msgInternal    = "Ocorreu um erro inesperado."
	msgInvalidBody = "Requisição inválida."
)

// envelope is the shape of every console response.
type envelope struct {
	Notification *Notification     `json:"notification,omitempty"`
	Errors       validation.Errors `json:"errors,omitempty"` // Field errors of a rejected form
	Data         any               `json:"data,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Err(err).Msg("failed to encode response")
	}
}

// render writes data together with any pending notification of the console.
func render(w http.ResponseWriter, r *http.Request, status int, data any) {
	env := envelope{Data: data}
	if c := consoleFrom(r); c != nil {
		env.Notification = c.TakeFlash(r.Context())
	}
	writeJSON(w, status, env)
}

// redirect answers with 303 so the client follows with a GET.
func redirect(w http.ResponseWriter, r *http.Request, path string) {
	http.Redirect(w, r, path, http.StatusSeeOther)
}

func decodeBody(r *http.Request, v any) error {
	defer r.Body.Close()
	if err := json.NewDecoder(io.LimitReader(r.Body, 1<<20)).Decode(v); err != nil {
		return errors.Wrap(err, "decode body")
	}
	return nil
}

func writeBadBody(w http.ResponseWriter, err error) {
	log.Debug().Err(err).Msg("rejected request body")
	writeJSON(w, http.StatusBadRequest, envelope{
		Notification: &Notification{Severity: SeverityError, Message: msgInvalidBody},
	})
}

func writeValidation(w http.ResponseWriter, errs validation.Errors) {
	writeJSON(w, http.StatusBadRequest, envelope{
		Notification: &Notification{Severity: SeverityError, Message: errs.UserMessage()},
		Errors:       errs,
	})
}

// statusForKind is the console status a failed remote call is answered with.
func statusForKind(kind errors.Kind) int {
	switch kind {
	case errors.KindValidation:
		return http.StatusBadRequest
	case errors.KindAuthExpired:
		return http.StatusUnauthorized
	case errors.KindForbidden:
		return http.StatusForbidden
	case errors.KindNotFound:
		return http.StatusNotFound
	case errors.KindConflict:
		return http.StatusConflict
	case errors.KindNetwork, errors.KindServer:
		return http.StatusBadGateway
	default:
		return http.StatusBadRequest
	}
}

// handleError turns a failure into a response. An expired session sends the
// user to the login page and remembers where they were; form errors come back
// per field; anything else becomes an error notification.
func handleError(w http.ResponseWriter, r *http.Request, err error) {
	c := consoleFrom(r)

	var errs validation.Errors
	if errors.As(err, &errs) {
		writeValidation(w, errs)
		return
	}

	kind := errors.KindOf(err)
	if c != nil && (kind == errors.KindAuthExpired || errors.Is(err, errors.ErrNoSession)) {
		if r.Method == http.MethodGet {
			if rerr := c.Session.RememberRedirect(r.Context(), r.URL.RequestURI()); rerr != nil {
				log.Err(rerr).Str("console", c.ID).Msg("failed to remember redirect")
			}
		}
		c.Flash(r.Context(), SeverityWarning, errors.MsgAuthExpired)
		redirect(w, r, guard.LoginPath)
		return
	}

	status := statusForKind(kind)
	event := log.Warn()
	if status >= http.StatusInternalServerError {
		event = log.Error()
	}
	event.Err(err).Str("path", r.URL.Path).Str("kind", string(kind)).Msg("request failed")

	writeJSON(w, status, envelope{
		Notification: &Notification{Severity: SeverityError, Message: errors.UserMessage(err)},
	})
}
