package errors

import (
	"errors"
	"fmt"

	pkgerrors "github.com/pkg/errors"
)

// Kind classifies a failure surfaced by the console.
type Kind string

const (
	KindValidation  Kind = "validation"
	KindNetwork     Kind = "network"
	KindAuthExpired Kind = "auth_expired"
	KindForbidden   Kind = "forbidden"
	KindNotFound    Kind = "not_found"
	KindConflict    Kind = "conflict"
	KindServer      Kind = "server"
	KindUnknown     Kind = "unknown"
)

// Sentinel errors, one per Kind. APIError unwraps to the matching sentinel so
// callers can use errors.Is.
var (
	ErrValidation  = errors.New("validation error")
	ErrNetwork     = errors.New("network error")
	ErrAuthExpired = errors.New("authentication expired")
	ErrForbidden   = errors.New("forbidden")
	ErrNotFound    = errors.New("not found")
	ErrConflict    = errors.New("conflict")
	ErrServer      = errors.New("server error")
	ErrUnknown     = errors.New("unknown error")

	// Session errors
	ErrNoSession          = errors.New("no authenticated session")
	ErrNotUnauthenticated = errors.New("session already established")
	ErrSessionExpired     = errors.New("session expired")
)

// User-facing messages for each failure category.
const (
	MsgBadRequest    = "Dados inválidos. Verifique as informações."
	MsgAuthExpired   = "Sessão expirada. Faça login novamente."
	MsgForbidden     = "Acesso negado. Você não tem permissão."
	MsgNotFound      = "Recurso não encontrado."
	MsgConflict      = "Conflito de dados. Este registro já existe."
	MsgUnprocessable = "Dados inválidos. Verifique o formulário."
	MsgServer        = "Erro interno do servidor. Tente novamente mais tarde."
	MsgNetwork       = "Erro de conexão. Verifique sua internet."
	MsgUnknown       = "Ocorreu um erro inesperado."
)

var kindSentinels = map[Kind]error{
	KindValidation:  ErrValidation,
	KindNetwork:     ErrNetwork,
	KindAuthExpired: ErrAuthExpired,
	KindForbidden:   ErrForbidden,
	KindNotFound:    ErrNotFound,
	KindConflict:    ErrConflict,
	KindServer:      ErrServer,
	KindUnknown:     ErrUnknown,
}

// APIError is the normalized form of every failure of a remote call.
// Message is always safe to show to a user.
type APIError struct {
	Kind    Kind
	Status  int // 0 when no response was received
	Message string
	Cause   error
}

func (e *APIError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s (%d): %s", e.Kind, e.Status, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap exposes both the kind sentinel and the underlying cause.
func (e *APIError) Unwrap() []error {
	errs := []error{kindSentinels[e.Kind]}
	if e.Cause != nil {
		errs = append(errs, e.Cause)
	}
	return errs
}

// KindForStatus maps an HTTP status code onto the error taxonomy.
func KindForStatus(status int) Kind {
	switch {
	case status == 401:
		return KindAuthExpired
	case status == 403:
		return KindForbidden
	case status == 404:
		return KindNotFound
	case status == 409:
		return KindConflict
	case status >= 500:
		return KindServer
	default:
		return KindUnknown
	}
}

// DefaultMessage returns the fallback message for a status when the remote
// did not supply one.
func DefaultMessage(status int) string {
	switch status {
	case 400:
		return MsgBadRequest
	case 401:
		return MsgAuthExpired
	case 403:
		return MsgForbidden
	case 404:
		return MsgNotFound
	case 409:
		return MsgConflict
	case 422:
		return MsgUnprocessable
	case 500:
		return MsgServer
	default:
		return MsgUnknown
	}
}

// UserMessage reduces any error to the single string shown in a notification.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	var msg interface{ UserMessage() string }
	if errors.As(err, &msg) {
		return msg.UserMessage()
	}
	if errors.Is(err, ErrSessionExpired) || errors.Is(err, ErrNoSession) {
		return MsgAuthExpired
	}
	return err.Error()
}

// KindOf returns the taxonomy kind of err, or KindUnknown.
func KindOf(err error) Kind {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Kind
	}
	for kind, sentinel := range kindSentinels {
		if errors.Is(err, sentinel) {
			return kind
		}
	}
	return KindUnknown
}

// Wrap annotates err with a message and a stack trace. A nil err stays nil.
func Wrap(err error, message string) error {
	return pkgerrors.Wrap(err, message)
}

// Wrapf is Wrap with a format string.
func Wrapf(err error, format string, args ...interface{}) error {
	return pkgerrors.Wrapf(err, format, args...)
}

// Is reports whether any error in err's chain matches target
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// New is errors.New, re-exported so callers need a single errors import.
func New(text string) error {
	return errors.New(text)
}
