package view

import (
	"context"
	"fmt"
	"time"
)

const storeTimeout = 5 * time.Second

// FormatAmount formats cents as a two-decimal amount for display.
func FormatAmount(cents int64) string {
	return fmt.Sprintf("%.2f", float64(cents)/100.0)
}

// FormatDate formats a time.Time into YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(time.DateOnly)
}

// StoreCtx returns a context with the standard timeout for persistence.
func StoreCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), storeTimeout)
}
