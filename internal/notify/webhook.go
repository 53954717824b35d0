package notify

import (
	"os"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// Notifier posts JSON events to the configured webhook. Delivery is
// best-effort and fire-and-forget; a missing WEBHOOK_URL disables it.
type Notifier struct {
	client *resty.Client
	url    string
	log    *zap.Logger
}

func New(log *zap.Logger) *Notifier {
	if log == nil {
		log = zap.NewNop()
	}
	return &Notifier{
		client: resty.New().SetTimeout(10 * time.Second),
		url:    os.Getenv("WEBHOOK_URL"),
		log:    log,
	}
}

// Enabled reports whether a webhook endpoint is configured.
func (n *Notifier) Enabled() bool {
	return n.url != ""
}

func (n *Notifier) post(payload map[string]string) {
	if !n.Enabled() {
		return
	}
	go func() {
		resp, err := n.client.R().
			SetHeader("Content-Type", "application/json").
			SetBody(payload).
			Post(n.url)
		if err != nil {
			n.log.Warn("webhook delivery failed", zap.Error(err))
			return
		}
		if resp.IsError() {
			n.log.Warn("webhook rejected", zap.Int("status", resp.StatusCode()))
		}
	}()
}

// PasswordReset delivers a password-reset token for out-of-band email sending.
func (n *Notifier) PasswordReset(email, token string) {
	n.post(map[string]string{
		"event": "password_reset",
		"email": email,
		"token": token,
	})
}

// DuplicateCompanyAlert reports a registration against an already known
// company name.
func (n *Notifier) DuplicateCompanyAlert(name string) {
	n.post(map[string]string{
		"event":   "duplicate_company",
		"message": "alert: new registration for an already existing company",
		"company": name,
	})
}
