package get_rules

import (
	"context"

	"github.com/m04kA/KH-BookingService/internal/service/rules/models"
)

type RuleService interface {
	List(ctx context.Context) (*models.RulesResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
