package server

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/jrsteele09/safisaude-console/kvstore"
)

// NotificationKey holds the pending flash notification of a console.
const NotificationKey = kvstore.DefaultPrefix + "notification"

type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Notification is a toast shown to the user.
type Notification struct {
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
}

// Flash saves n to be shown with the next response of this console. A newer
// flash replaces an older one.
func (c *Console) Flash(ctx context.Context, severity Severity, message string) {
	n := Notification{Severity: severity, Message: message}
	if err := kvstore.SetJSON(ctx, c.store, NotificationKey, n); err != nil {
		log.Err(err).Str("console", c.ID).Msg("failed to save notification")
	}
}

// TakeFlash returns and forgets the pending notification.
func (c *Console) TakeFlash(ctx context.Context) *Notification {
	var n Notification
	ok, err := kvstore.GetJSON(ctx, c.store, NotificationKey, &n)
	if err != nil {
		log.Err(err).Str("console", c.ID).Msg("failed to read notification")
	}
	if !ok {
		return nil
	}
	if err := c.store.Delete(ctx, NotificationKey); err != nil {
		log.Err(err).Str("console", c.ID).Msg("failed to clear notification")
	}
	return &n
}
