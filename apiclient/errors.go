package apiclient

import (
	"encoding/json"
	"strings"

	"github.com/jrsteele09/safisaude-console/internal/errors"
)

// errorBody is the error envelope returned by the API. message is either a
// string or a list of strings.
type errorBody struct {
	Message    json.RawMessage `json:"message"`
	StatusCode int             `json:"statusCode"`
	Error      string          `json:"error"`
}

func statusError(status int, payload []byte) *errors.APIError {
	msg := backendMessage(payload)
	if msg == "" {
		msg = errors.DefaultMessage(status)
	}
	return &errors.APIError{
		Kind:    errors.KindForStatus(status),
		Status:  status,
		Message: msg,
	}
}

func backendMessage(payload []byte) string {
	var body errorBody
	if err := json.Unmarshal(payload, &body); err != nil || len(body.Message) == 0 {
		return ""
	}
	var single string
	if err := json.Unmarshal(body.Message, &single); err == nil {
		return strings.TrimSpace(single)
	}
	var many []string
	if err := json.Unmarshal(body.Message, &many); err == nil {
		return strings.TrimSpace(strings.Join(many, ", "))
	}
	return ""
}

func networkError(cause error) *errors.APIError {
	return &errors.APIError{
		Kind:    errors.KindNetwork,
		Message: errors.MsgNetwork,
		Cause:   cause,
	}
}
