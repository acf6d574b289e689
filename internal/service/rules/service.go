package rules

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/KH-BookingService/internal/domain"
	ruleRepo "github.com/m04kA/KH-BookingService/internal/infra/storage/rule"
	"github.com/m04kA/KH-BookingService/internal/service/rules/models"
)

// Service сервис для работы с календарными правилами
// Правила задают цену и доступность отдельных дат поверх значений по умолчанию
type Service struct {
	ruleRepo  RuleRepository
	txManager TransactionManager
	logger    Logger
}

// NewService создает новый экземпляр сервиса правил
func NewService(
	ruleRepo RuleRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		ruleRepo:  ruleRepo,
		txManager: txManager,
		logger:    logger,
	}
}

// Update пакетно применяет правила к датам
// Последнее правило для одной и той же даты выигрывает
// Пустое правило удаляет запись - дата возвращается к дефолтной цене
func (s *Service) Update(ctx context.Context, req *models.UpdateRulesRequest) (*models.RulesResponse, error) {
	s.logger.Info("Update: applying %d calendar rules", len(req.Rules))

	if len(req.Rules) == 0 {
		return nil, fmt.Errorf("%w: empty rules list", ErrInvalidInput)
	}

	parsed, err := s.validateRules(req.Rules)
	if err != nil {
		s.logger.Warn("Update: validation failed: %v", err)
		return nil, err
	}

	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		for _, rule := range parsed {
			if rule.Price == nil && rule.Status == domain.RuleStatusAvailable {
				// Пустое правило - сбрасываем дату к значениям по умолчанию.
				// Сброс идемпотентен: отсутствие правила на дату не ошибка
				if err := s.ruleRepo.DeleteByDate(ctx, rule.Date); err != nil && !errors.Is(err, ruleRepo.ErrRuleNotFound) {
					return fmt.Errorf("%w: Update - delete rule: %v", ErrInternal, err)
				}
				continue
			}
			if _, err := s.ruleRepo.Upsert(ctx, rule); err != nil {
				return fmt.Errorf("%w: Update - upsert rule: %v", ErrInternal, err)
			}
		}
		return nil
	})
	if err != nil {
		s.logger.Error("Update: transaction error: %v", err)
		return nil, err
	}

	s.logger.Info("Update: successfully applied %d rules", len(parsed))
	return s.List(ctx)
}

// List возвращает все календарные правила
func (s *Service) List(ctx context.Context) (*models.RulesResponse, error) {
	rules, err := s.ruleRepo.ListAll(ctx)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainRules(rules), nil
}

// validateRules проверяет и конвертирует входные правила в domain модели
// При дублировании даты берётся последнее правило из списка
func (s *Service) validateRules(inputs []models.RuleInput) ([]*domain.CalendarRule, error) {
	byDate := make(map[string]*domain.CalendarRule, len(inputs))
	order := make([]string, 0, len(inputs))

	for _, input := range inputs {
		date, err := time.Parse(domain.DateFormat, input.Date)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidDate, input.Date)
		}

		if input.Price != nil && *input.Price < 0 {
			return nil, fmt.Errorf("%w: date %s price %d", ErrInvalidPrice, input.Date, *input.Price)
		}

		status := domain.RuleStatusAvailable
		switch input.Status {
		case "", string(domain.RuleStatusAvailable):
		case string(domain.RuleStatusBlocked):
			status = domain.RuleStatusBlocked
		default:
			return nil, fmt.Errorf("%w: date %s status %q", ErrInvalidStatus, input.Date, input.Status)
		}

		if _, seen := byDate[input.Date]; !seen {
			order = append(order, input.Date)
		}
		byDate[input.Date] = &domain.CalendarRule{
			Date:   date,
			Price:  input.Price,
			Status: status,
		}
	}

	result := make([]*domain.CalendarRule, 0, len(order))
	for _, key := range order {
		result = append(result, byDate[key])
	}
	return result, nil
}
