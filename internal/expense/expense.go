package expense

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("expense not found")

// Category labels an expense. The default set below is what the UI offers,
// but any string value is accepted and round-trips through persistence.
type Category string

const (
	CategoryFood          Category = "Food"
	CategoryTransport     Category = "Transport"
	CategoryHousing       Category = "Housing"
	CategoryUtilities     Category = "Utilities"
	CategoryEntertainment Category = "Entertainment"
	CategoryHealth        Category = "Health"
	CategoryShopping      Category = "Shopping"
	CategoryOther         Category = "Other"

	// CategoryAll is the filter sentinel meaning "no category restriction".
	// It is never stored on a record.
	CategoryAll Category = ""
)

// Categories lists the default categories in display order.
func Categories() []Category {
	return []Category{
		CategoryFood,
		CategoryTransport,
		CategoryHousing,
		CategoryUtilities,
		CategoryEntertainment,
		CategoryHealth,
		CategoryShopping,
		CategoryOther,
	}
}

// Expense is one logged expense entry.
type Expense struct {
	ID        uuid.UUID
	Amount    int64 // Amount in cents
	Category  Category
	Date      time.Time // Calendar date; time-of-day is not meaningful
	Note      string
	CreatedAt time.Time
}
