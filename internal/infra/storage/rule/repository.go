package rule

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/KH-BookingService/internal/domain"
	"github.com/m04kA/KH-BookingService/pkg/dbmetrics"
	"github.com/m04kA/KH-BookingService/pkg/psqlbuilder"
)

var ruleColumns = []string{
	"id",
	"rule_date",
	"price",
	"status",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с правилами календаря
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория правил календаря
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Upsert создает или обновляет правило для даты (last-write-wins)
// На дату существует не больше одного правила - уникальный индекс по rule_date
func (r *Repository) Upsert(ctx context.Context, rule *domain.CalendarRule) (*domain.CalendarRule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("calendar_rules").
		Columns("rule_date", "price", "status").
		Values(rule.Date, rule.Price, rule.Status).
		Suffix(`ON CONFLICT (rule_date) DO UPDATE
			SET price = EXCLUDED.price, status = EXCLUDED.status, updated_at = NOW()
			RETURNING id, created_at, updated_at`).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&rule.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - execute insert: %v", ErrExecQuery, err)
	}

	rule.CreatedAt = createdAt.Time
	rule.UpdatedAt = updatedAt.Time

	return rule, nil
}

// ListAll получает все правила календаря
func (r *Repository) ListAll(ctx context.Context) ([]*domain.CalendarRule, error) {
	return r.list(ctx, nil)
}

// ListRange получает правила для дат в [from, to)
func (r *Repository) ListRange(ctx context.Context, from, to time.Time) ([]*domain.CalendarRule, error) {
	filter := func(b squirrel.SelectBuilder) squirrel.SelectBuilder {
		return b.Where(squirrel.GtOrEq{"rule_date": from}).Where(squirrel.Lt{"rule_date": to})
	}
	return r.list(ctx, filter)
}

func (r *Repository) list(ctx context.Context, filter func(squirrel.SelectBuilder) squirrel.SelectBuilder) ([]*domain.CalendarRule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(ruleColumns...).
		From("calendar_rules").
		OrderBy("rule_date ASC")

	if filter != nil {
		selectBuilder = filter(selectBuilder)
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: list - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: list - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	rules := make([]*domain.CalendarRule, 0)
	for rows.Next() {
		rule, err := scanRule(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: list - scan row: %v", ErrScanRow, err)
		}
		rules = append(rules, rule)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: list - rows error: %v", ErrScanRow, err)
	}

	return rules, nil
}

// DeleteByDate удаляет правило для даты
// Отсутствие правила означает доступность по базовой ставке
func (r *Repository) DeleteByDate(ctx context.Context, date time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("calendar_rules").
		Where(squirrel.Eq{"rule_date": date}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: DeleteByDate - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: DeleteByDate - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: DeleteByDate - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrRuleNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanRule(row rowScanner) (*domain.CalendarRule, error) {
	var rule domain.CalendarRule
	var price sql.NullInt64
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&rule.ID,
		&rule.Date,
		&price,
		&rule.Status,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if price.Valid {
		rule.Price = &price.Int64
	}
	rule.CreatedAt = createdAt.Time
	rule.UpdatedAt = updatedAt.Time

	return &rule, nil
}
