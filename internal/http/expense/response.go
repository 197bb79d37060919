package expense

import (
	"time"

	"github.com/google/uuid"

	"github.com/Jamessshhh/Expense-Odyssey/internal/expense"
)

type expenseResponse struct {
	ID        uuid.UUID        `json:"id"`
	Amount    int64            `json:"amount"` // cents
	Category  expense.Category `json:"category"`
	Date      string           `json:"date"` // YYYY-MM-DD
	Note      string           `json:"note,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
}

func toResponse(e *expense.Expense) expenseResponse {
	return expenseResponse{
		ID:        e.ID,
		Amount:    e.Amount,
		Category:  e.Category,
		Date:      e.Date.Format(time.DateOnly),
		Note:      e.Note,
		CreatedAt: e.CreatedAt,
	}
}

func toResponseList(expenses []*expense.Expense) []expenseResponse {
	resp := make([]expenseResponse, len(expenses))
	for i, e := range expenses {
		resp[i] = toResponse(e)
	}

	return resp
}

type summaryResponse struct {
	Total      int64                      `json:"total"` // cents
	ByCategory map[expense.Category]int64 `json:"by_category"`
}

func toSummaryResponse(s expense.Summary) summaryResponse {
	return summaryResponse{
		Total:      s.Total,
		ByCategory: s.ByCategory,
	}
}
