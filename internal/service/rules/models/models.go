package models

import (
	"github.com/m04kA/KH-BookingService/internal/domain"
)

// Request модели

// RuleInput правило для одной даты
// Пустое правило (без цены и блокировки) сбрасывает дату к значениям по умолчанию
type RuleInput struct {
	Date   string `json:"date"`             // "2025-10-15"
	Price  *int64 `json:"price,omitempty"`  // В рупиях
	Status string `json:"status,omitempty"` // "available" | "blocked", пустой статус = available
}

// UpdateRulesRequest запрос на пакетное обновление правил
type UpdateRulesRequest struct {
	Rules []RuleInput `json:"rules"`
}

// Response модели

// RuleResponse правило для одной даты в ответе
type RuleResponse struct {
	Price  *int64 `json:"price,omitempty"`
	Status string `json:"status"`
}

// RulesResponse ответ с правилами, ключ - дата "2025-10-15"
type RulesResponse struct {
	Rules map[string]RuleResponse `json:"rules"`
}

// FromDomainRules конвертирует список domain правил в response
func FromDomainRules(rules []*domain.CalendarRule) *RulesResponse {
	result := make(map[string]RuleResponse, len(rules))
	for _, r := range rules {
		result[r.Date.Format(domain.DateFormat)] = RuleResponse{
			Price:  r.Price,
			Status: string(r.Status),
		}
	}
	return &RulesResponse{Rules: result}
}
