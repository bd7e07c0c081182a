package authgateway

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"skillup_backend/internal/config"
	"skillup_backend/pkg/logger"

	"github.com/resend/resend-go/v2"
	"go.uber.org/zap"
)

type Email struct {
	To      string
	Subject string
	HTML    string
	Text    string
}

// EmailProvider 邮件发送渠道
type EmailProvider interface {
	Send(ctx context.Context, email *Email) error
}

func NewEmailProvider(cfg config.EmailConfig) EmailProvider {
	switch cfg.Provider {
	case "resend":
		return NewResendProvider(cfg.ResendAPIKey, cfg.FromName, cfg.FromAddress)
	default:
		return NewConsoleProvider()
	}
}

type ResendProvider struct {
	client *resend.Client
	from   string
}

func NewResendProvider(apiKey, fromName, fromAddress string) *ResendProvider {
	return &ResendProvider{
		client: resend.NewClient(apiKey),
		from:   fmt.Sprintf("%s <%s>", fromName, fromAddress),
	}
}

func (p *ResendProvider) Send(ctx context.Context, email *Email) error {
	params := &resend.SendEmailRequest{
		From:    p.from,
		To:      []string{email.To},
		Subject: email.Subject,
		Html:    email.HTML,
		Text:    email.Text,
	}

	if _, err := p.client.Emails.Send(params); err != nil {
		return fmt.Errorf("sending email via Resend: %w", err)
	}

	logger.Log.Info("Email sent via Resend", zap.String("to", email.To), zap.String("subject", email.Subject))
	return nil
}

// ConsoleProvider 开发环境使用，只写日志
type ConsoleProvider struct{}

func NewConsoleProvider() *ConsoleProvider {
	return &ConsoleProvider{}
}

func (p *ConsoleProvider) Send(ctx context.Context, email *Email) error {
	logger.Log.Info("EMAIL (console provider)",
		zap.String("to", email.To),
		zap.String("subject", email.Subject),
		zap.String("text", email.Text))
	return nil
}

// GenerateToken 生成随机 token，只保存其哈希
func GenerateToken() (token string, hash string, err error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", "", fmt.Errorf("generating random bytes: %w", err)
	}
	token = hex.EncodeToString(buf)
	return token, HashToken(token), nil
}

func HashToken(token string) string {
	h := sha256.Sum256([]byte(token))
	return hex.EncodeToString(h[:])
}

func renderPasswordResetEmail(resetURL string) (html, text string) {
	html = fmt.Sprintf(`<p>We received a request to reset your SkillUp password.</p>
<p><a href="%s">Reset your password</a></p>
<p>This link expires in 1 hour. If you did not request it, you can ignore this email.</p>`, resetURL)
	text = fmt.Sprintf("We received a request to reset your SkillUp password.\n\n"+
		"Reset your password: %s\n\n"+
		"This link expires in 1 hour. If you did not request it, you can ignore this email.", resetURL)
	return html, text
}
