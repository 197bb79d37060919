// Package store persists the expense collection as one JSON blob under a
// fixed key in the preference store.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Jamessshhh/Expense-Odyssey/internal/expense"
	"github.com/Jamessshhh/Expense-Odyssey/internal/prefs"
)

const (
	// prefKey is the single key the whole collection lives under.
	prefKey = "expenses"

	// envelopeVersion tags the blob layout so a future format change can
	// tell old data apart instead of mis-decoding it.
	envelopeVersion = 1
)

type Store struct {
	prefs *prefs.Store
}

func New(p *prefs.Store) *Store {
	return &Store{prefs: p}
}

type envelope struct {
	Version  int      `json:"version"`
	Expenses []record `json:"expenses"`
}

type record struct {
	ID        uuid.UUID `json:"id"`
	Amount    int64     `json:"amount"` // cents
	Category  string    `json:"category"`
	Date      string    `json:"date"` // YYYY-MM-DD
	Note      string    `json:"note"`
	CreatedAt time.Time `json:"created_at"`
}

// Load reads and decodes the collection. A missing key, an undecodable
// blob, or an unknown envelope version all yield an empty collection and a
// nil error: there is nothing useful to distinguish between "never saved"
// and "corrupt", and the application starts empty either way. Only a
// failure to reach the store itself is reported.
func (s *Store) Load(ctx context.Context) ([]*expense.Expense, error) {
	blob, ok, err := s.prefs.Get(ctx, prefKey)
	if err != nil {
		return nil, fmt.Errorf("loading expenses: %w", err)
	}

	if !ok {
		return nil, nil
	}

	var env envelope
	if err := json.Unmarshal(blob, &env); err != nil {
		return nil, nil
	}

	if env.Version != envelopeVersion {
		return nil, nil
	}

	expenses := make([]*expense.Expense, 0, len(env.Expenses))

	for _, r := range env.Expenses {
		date, err := time.Parse(time.DateOnly, r.Date)
		if err != nil {
			return nil, nil
		}

		expenses = append(expenses, &expense.Expense{
			ID:        r.ID,
			Amount:    r.Amount,
			Category:  expense.Category(r.Category),
			Date:      date,
			Note:      r.Note,
			CreatedAt: r.CreatedAt,
		})
	}

	return expenses, nil
}

// Save encodes the full collection and overwrites the stored blob.
func (s *Store) Save(ctx context.Context, expenses []*expense.Expense) error {
	env := envelope{
		Version:  envelopeVersion,
		Expenses: make([]record, len(expenses)),
	}

	for i, e := range expenses {
		env.Expenses[i] = record{
			ID:        e.ID,
			Amount:    e.Amount,
			Category:  string(e.Category),
			Date:      e.Date.Format(time.DateOnly),
			Note:      e.Note,
			CreatedAt: e.CreatedAt,
		}
	}

	blob, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("encoding expenses: %w", err)
	}

	if err := s.prefs.Put(ctx, prefKey, blob); err != nil {
		return fmt.Errorf("saving expenses: %w", err)
	}

	return nil
}
