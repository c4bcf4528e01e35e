package mail

import (
	"context"
	"fmt"
	"net/smtp"

	"app/internal/config"

	"github.com/labstack/gommon/log"
)

// 再設定コードの配送を約束。失敗は必ずerrorで返す（握りつぶさない）
type Sender interface {
	SendResetCode(ctx context.Context, to string, code string) error
}

// SMTP未設定の環境ではコードをログに出すだけのSenderを返す
func NewSender(cfg config.Config) Sender {
	if cfg.SMTPHost == "" {
		return &LogSender{}
	}
	return &SMTPSender{
		addr:     fmt.Sprintf("%s:%d", cfg.SMTPHost, cfg.SMTPPort),
		host:     cfg.SMTPHost,
		username: cfg.SMTPUser,
		password: cfg.SMTPPassword,
		from:     cfg.SMTPFrom,
	}
}

// SMTPで再設定コードを送る
type SMTPSender struct {
	addr     string
	host     string
	username string
	password string
	from     string
}

func (s *SMTPSender) SendResetCode(ctx context.Context, to string, code string) error {
	msg := []byte(
		"From: " + s.from + "\r\n" +
			"To: " + to + "\r\n" +
			"Subject: Password Reset Code\r\n" +
			"\r\n" +
			"Your password reset code is: " + code + "\r\n" +
			"This code expires in 15 minutes.\r\n",
	)

	var auth smtp.Auth
	if s.username != "" {
		auth = smtp.PlainAuth("", s.username, s.password, s.host)
	}

	if err := smtp.SendMail(s.addr, auth, s.from, []string{to}, msg); err != nil {
		return fmt.Errorf("send reset code: %w", err)
	}
	return nil
}

// 開発用。宛先とコードをログに出すだけ
type LogSender struct{}

func (s *LogSender) SendResetCode(ctx context.Context, to string, code string) error {
	log.Infof("reset code for %s: %s", to, code)
	return nil
}
