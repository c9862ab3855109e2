package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"
)

const defaultEndpoint = "https://zeptomail.zoho.com/v1.1/email"

// Mailer sends transactional email through the ZeptoMail HTTP API.
type Mailer struct {
	Token    string
	Endpoint string
	Client   *http.Client
}

func New(token string) *Mailer {
	return &Mailer{
		Token:    token,
		Endpoint: defaultEndpoint,
		Client:   &http.Client{Timeout: 10 * time.Second},
	}
}

type message struct {
	From     address     `json:"from"`
	To       []recipient `json:"to"`
	Subject  string      `json:"subject"`
	HTMLBody string      `json:"htmlbody"`
}

type recipient struct {
	EmailAddress address `json:"email_address"`
}

type address struct {
	Address string `json:"address"`
	Name    string `json:"name,omitempty"`
}

// SendPasswordReset emails the vendor a reset link carrying their ID and
// current single-use token.
func (m *Mailer) SendPasswordReset(ctx context.Context, toEmail, toName, vendorID, token string) error {
	msg := message{
		From:     address{Address: "support@inletsites.dev"},
		To:       []recipient{{EmailAddress: address{Address: toEmail, Name: toName}}},
		Subject:  "Reset Password for Inlet.Shop",
		HTMLBody: resetPasswordHTML(toName, vendorID, token),
	}
	return m.send(ctx, msg)
}

func (m *Mailer) send(ctx context.Context, msg message) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("encode email: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.Endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build email request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", m.Token)

	resp, err := m.Client.Do(req)
	if err != nil {
		return fmt.Errorf("send email: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		zap.L().Error("Email provider rejected message",
			zap.Int("status", resp.StatusCode),
			zap.String("subject", msg.Subject),
		)
		return fmt.Errorf("email provider returned status %d", resp.StatusCode)
	}
	return nil
}

func resetPasswordHTML(name, id, token string) string {
	return fmt.Sprintf(`
<p>Hello %s,</p>

<p>We have received a request to reset your password. To do this, simply use the link below and enter your email address.</p>

<p>If you did not make this request, then you can safely ignore this email.</p>

<a href="https://vendor.inlet.shop/password/%s/%s">
    vendor.inlet.shop/password/%s/%s
</a>

<p>-Inlet Sites</p>
`, name, id, token, id, token)
}
