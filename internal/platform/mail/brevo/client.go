package brevo

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"net/url"

	"account_backend/internal/feature/accounts/usecase"
)

// verifyEmailTemplate is the HTML body of the verification email.
// The link is the only dynamic part.
var verifyEmailTemplate = template.Must(template.New("verify").Parse(`<html>
<body style="font-family: Arial, sans-serif; color: #333;">
  <h2>Welcome!</h2>
  <p>Thank you for creating an account. To complete your registration, please
  verify your email address by clicking the link below:</p>
  <p><a href="{{.Link}}">Verify my email</a></p>
  <p>Or copy and paste this link into your browser:</p>
  <p>{{.Link}}</p>
  <p style="color: #666; font-size: 13px;">This verification link expires after
  a limited time. If you didn't create an account, please ignore this email.</p>
</body>
</html>`))

// sendRequest is the request body for Brevo's transactional email endpoint.
type sendRequest struct {
	Sender      party   `json:"sender"`
	To          []party `json:"to"`
	Subject     string  `json:"subject"`
	HTMLContent string  `json:"htmlContent"`
}

type party struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email"`
}

// errorResponse is Brevo's error body shape.
type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Notifier はBrevoのHTTP API経由で検証リンクを配信するVerificationNotifier実装です。
// SMTPではなくHTTP APIを使用するのは、SMTPポートを塞ぐホスティング環境があるためです。
type Notifier struct {
	cfg    Config
	client *http.Client
}

// NotifierがVerificationNotifierを実装していることをコンパイル時に検証します。
var _ usecase.VerificationNotifier = (*Notifier)(nil)

// NewNotifier は指定された設定とHTTPクライアントでNotifierの新しいインスタンスを生成します。
func NewNotifier(cfg Config, client *http.Client) *Notifier {
	return &Notifier{cfg: cfg, client: client}
}

// SendVerificationLink は検証リンクを含むメールを配信します。
// トランスポートやプロバイダの失敗はすべてエラーとして返され、呼び出し元で
// 警告に降格されます。この呼び出しがアカウント作成を失敗させることはありません。
func (n *Notifier) SendVerificationLink(ctx context.Context, email, token string) error {
	link := fmt.Sprintf("%s/verify/%s", n.cfg.AppURL, url.PathEscape(token))

	var htmlBody bytes.Buffer
	if err := verifyEmailTemplate.Execute(&htmlBody, map[string]string{"Link": link}); err != nil {
		return fmt.Errorf("failed to render email template: %w", err)
	}

	payload := sendRequest{
		Sender:      party{Name: n.cfg.SenderName, Email: n.cfg.SenderEmail},
		To:          []party{{Email: email}},
		Subject:     "Verify your email address",
		HTMLContent: htmlBody.String(),
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	u := fmt.Sprintf("%s/v3/smtp/email", n.cfg.BaseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("api-key", n.cfg.APIKey)

	res, err := n.client.Do(req)
	if err != nil {
		return err
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			slog.Warn("failed to close response body", "error", err)
		}
	}()

	if res.StatusCode >= 400 {
		var apiErr errorResponse
		if err := json.NewDecoder(res.Body).Decode(&apiErr); err == nil && apiErr.Message != "" {
			return fmt.Errorf("brevo http %d: %s", res.StatusCode, apiErr.Message)
		}
		return fmt.Errorf("brevo http %d", res.StatusCode)
	}

	slog.Info("verification email sent", "to", email)
	return nil
}
