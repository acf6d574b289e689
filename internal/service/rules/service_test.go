package rules

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/KH-BookingService/internal/domain"
	ruleRepo "github.com/m04kA/KH-BookingService/internal/infra/storage/rule"
	"github.com/m04kA/KH-BookingService/internal/service/rules/models"
	"github.com/m04kA/KH-BookingService/pkg/ptr"
)

// fakeRuleRepo in-memory репозиторий правил с ключом по дате
type fakeRuleRepo struct {
	rules map[string]*domain.CalendarRule
}

func newFakeRuleRepo() *fakeRuleRepo {
	return &fakeRuleRepo{rules: make(map[string]*domain.CalendarRule)}
}

func (f *fakeRuleRepo) Upsert(_ context.Context, rule *domain.CalendarRule) (*domain.CalendarRule, error) {
	copied := *rule
	f.rules[rule.Date.Format(domain.DateFormat)] = &copied
	return &copied, nil
}

func (f *fakeRuleRepo) ListAll(_ context.Context) ([]*domain.CalendarRule, error) {
	result := make([]*domain.CalendarRule, 0, len(f.rules))
	for _, r := range f.rules {
		result = append(result, r)
	}
	return result, nil
}

func (f *fakeRuleRepo) DeleteByDate(_ context.Context, date time.Time) error {
	key := date.Format(domain.DateFormat)
	if _, ok := f.rules[key]; !ok {
		return ruleRepo.ErrRuleNotFound
	}
	delete(f.rules, key)
	return nil
}

// fakeTxManager выполняет функцию без настоящей транзакции
type fakeTxManager struct{}

func (fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (fakeTxManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

func newTestService(repo *fakeRuleRepo) *Service {
	return NewService(repo, fakeTxManager{}, noopLogger{})
}

// TestUpdate_UpsertAndBlock тестирует установку цены и блокировку дат
func TestUpdate_UpsertAndBlock(t *testing.T) {
	repo := newFakeRuleRepo()
	svc := newTestService(repo)

	resp, err := svc.Update(context.Background(), &models.UpdateRulesRequest{
		Rules: []models.RuleInput{
			{Date: "2024-06-10", Price: ptr.Ptr(int64(9000))},
			{Date: "2024-06-11", Status: "blocked"},
		},
	})
	require.NoError(t, err)
	require.Len(t, resp.Rules, 2)

	assert.Equal(t, int64(9000), *resp.Rules["2024-06-10"].Price)
	assert.Equal(t, string(domain.RuleStatusAvailable), resp.Rules["2024-06-10"].Status)
	assert.Equal(t, string(domain.RuleStatusBlocked), resp.Rules["2024-06-11"].Status)
}

// TestUpdate_LastRuleWins тестирует дублирование даты в одном запросе
func TestUpdate_LastRuleWins(t *testing.T) {
	repo := newFakeRuleRepo()
	svc := newTestService(repo)

	resp, err := svc.Update(context.Background(), &models.UpdateRulesRequest{
		Rules: []models.RuleInput{
			{Date: "2024-06-10", Price: ptr.Ptr(int64(9000))},
			{Date: "2024-06-10", Price: ptr.Ptr(int64(12000))},
		},
	})
	require.NoError(t, err)
	require.Len(t, resp.Rules, 1)
	assert.Equal(t, int64(12000), *resp.Rules["2024-06-10"].Price)
}

// TestUpdate_EmptyRuleResetsDate тестирует сброс даты пустым правилом
func TestUpdate_EmptyRuleResetsDate(t *testing.T) {
	repo := newFakeRuleRepo()
	svc := newTestService(repo)

	_, err := svc.Update(context.Background(), &models.UpdateRulesRequest{
		Rules: []models.RuleInput{{Date: "2024-06-10", Status: "blocked"}},
	})
	require.NoError(t, err)

	resp, err := svc.Update(context.Background(), &models.UpdateRulesRequest{
		Rules: []models.RuleInput{{Date: "2024-06-10"}},
	})
	require.NoError(t, err)
	assert.Empty(t, resp.Rules)
}

// TestUpdate_ResetMissingDateIsNoop тестирует сброс даты, для которой
// правило никогда не задавалось - это не ошибка
func TestUpdate_ResetMissingDateIsNoop(t *testing.T) {
	repo := newFakeRuleRepo()
	svc := newTestService(repo)

	resp, err := svc.Update(context.Background(), &models.UpdateRulesRequest{
		Rules: []models.RuleInput{{Date: "2024-06-10"}},
	})
	require.NoError(t, err)
	assert.Empty(t, resp.Rules)
}

// TestUpdate_Validation тестирует отказ при некорректных правилах
func TestUpdate_Validation(t *testing.T) {
	svc := newTestService(newFakeRuleRepo())

	tests := []struct {
		name    string
		req     *models.UpdateRulesRequest
		wantErr error
	}{
		{
			name:    "empty rules list",
			req:     &models.UpdateRulesRequest{},
			wantErr: ErrInvalidInput,
		},
		{
			name: "malformed date",
			req: &models.UpdateRulesRequest{
				Rules: []models.RuleInput{{Date: "10-06-2024"}},
			},
			wantErr: ErrInvalidDate,
		},
		{
			name: "negative price",
			req: &models.UpdateRulesRequest{
				Rules: []models.RuleInput{{Date: "2024-06-10", Price: ptr.Ptr(int64(-100))}},
			},
			wantErr: ErrInvalidPrice,
		},
		{
			name: "unknown status",
			req: &models.UpdateRulesRequest{
				Rules: []models.RuleInput{{Date: "2024-06-10", Status: "closed"}},
			},
			wantErr: ErrInvalidStatus,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Update(context.Background(), tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
