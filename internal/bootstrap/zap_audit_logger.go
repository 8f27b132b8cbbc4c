package bootstrap

import (
	"context"

	"go.uber.org/zap"
)

// ZapAuditLogger writes lifecycle audit entries to the process log.
// Request-level auditing lives in the activity log; this covers only
// events that happen outside any request, such as shutdown.
type ZapAuditLogger struct {
	logger *zap.Logger
}

func NewZapAuditLogger() *ZapAuditLogger {
	return &ZapAuditLogger{logger: zap.L().Named("audit")}
}

func (l *ZapAuditLogger) Log(ctx context.Context, entry AuditLog) {
	l.logger.Info(entry.Message,
		zap.String("action", entry.Action),
		zap.Any("meta", entry.Meta),
	)
}
