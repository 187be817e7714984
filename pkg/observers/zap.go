package observers

import (
	"go.uber.org/zap"
)

// ZapLogger writes every snapshot it receives as one structured log entry.
type ZapLogger[T any] struct {
	subject string
	logger  *zap.Logger
}

func NewZapLogger[T any](subject string, logger *zap.Logger) *ZapLogger[T] {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ZapLogger[T]{
		subject: subject,
		logger:  logger.Named("snapshot"),
	}
}

func (z *ZapLogger[T]) Name() string {
	return "ZapLogger(" + z.subject + ")"
}

func (z *ZapLogger[T]) Update(state T) error {
	z.logger.Info("state changed", zap.String("subject", z.subject), zap.Any("state", state))
	return nil
}
