package expense

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=expense

// Repository persists the whole collection as one unit. Load returns an
// empty slice when nothing has ever been saved.
type Repository interface {
	Load(ctx context.Context) ([]*Expense, error)
	Save(ctx context.Context, expenses []*Expense) error
}

// Service is the single owner of the expense collection and the active
// category filter. Every successful mutation re-persists the full
// collection before returning. The filter is session state only; it always
// starts at CategoryAll and is never persisted.
//
// When Save fails the in-memory mutation still stands — callers get the
// error, log it, and carry on with a stale durable copy until the next
// successful save.
type Service struct {
	repo Repository

	mu       sync.Mutex
	expenses []*Expense
	filter   Category
}

// NewService loads the persisted collection and returns a ready store.
func NewService(ctx context.Context, repo Repository) (*Service, error) {
	expenses, err := repo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading expenses: %w", err)
	}

	return &Service{
		repo:     repo,
		expenses: expenses,
		filter:   CategoryAll,
	}, nil
}

type CreateParams struct {
	Amount   int64
	Category Category
	Date     time.Time
	Note     string
}

// UpdateParams carries a partial update; nil fields are left untouched.
type UpdateParams struct {
	Amount   *int64
	Category *Category
	Date     *time.Time
	Note     *string
}

// Summary aggregates a view of the collection.
type Summary struct {
	Total      int64
	ByCategory map[Category]int64
}

func (s *Service) Add(ctx context.Context, params CreateParams) (*Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e := &Expense{
		ID:        uuid.New(),
		Amount:    params.Amount,
		Category:  params.Category,
		Date:      params.Date,
		Note:      params.Note,
		CreatedAt: time.Now(),
	}

	s.expenses = append(s.expenses, e)

	return e, s.persist(ctx)
}

// AddBatch appends all records in order and persists once at the end.
func (s *Service) AddBatch(ctx context.Context, params []CreateParams) ([]*Expense, error) {
	if len(params) == 0 {
		return nil, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	added := make([]*Expense, len(params))

	for i, p := range params {
		added[i] = &Expense{
			ID:        uuid.New(),
			Amount:    p.Amount,
			Category:  p.Category,
			Date:      p.Date,
			Note:      p.Note,
			CreatedAt: time.Now(),
		}
	}

	s.expenses = append(s.expenses, added...)

	return added, s.persist(ctx)
}

// Update applies the non-nil fields of params to the record with the given
// id, preserving its position. Returns ErrNotFound and leaves the
// collection untouched when no record has that id.
func (s *Service) Update(ctx context.Context, id uuid.UUID, params UpdateParams) (*Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e := s.findLocked(id)
	if e == nil {
		return nil, ErrNotFound
	}

	if params.Amount != nil {
		e.Amount = *params.Amount
	}

	if params.Category != nil {
		e.Category = *params.Category
	}

	if params.Date != nil {
		e.Date = *params.Date
	}

	if params.Note != nil {
		e.Note = *params.Note
	}

	return e, s.persist(ctx)
}

// Delete removes the records at the given positions. Positions index into
// the currently filtered view, so they are resolved to record ids first and
// the ids removed from the underlying collection; deleting row 0 under a
// "Food" filter removes the first Food record, not the first record
// overall. Out-of-range positions are ignored.
func (s *Service) Delete(ctx context.Context, positions []int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	view := s.listLocked(s.filter)

	doomed := make(map[uuid.UUID]struct{}, len(positions))

	for _, pos := range positions {
		if pos < 0 || pos >= len(view) {
			continue
		}

		doomed[view[pos].ID] = struct{}{}
	}

	if len(doomed) == 0 {
		return nil
	}

	kept := s.expenses[:0]

	for _, e := range s.expenses {
		if _, gone := doomed[e.ID]; !gone {
			kept = append(kept, e)
		}
	}

	s.expenses = kept

	return s.persist(ctx)
}

// DeleteByID removes a single record by id. Returns ErrNotFound when the
// id is unknown.
func (s *Service) DeleteByID(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, e := range s.expenses {
		if e.ID == id {
			s.expenses = append(s.expenses[:i], s.expenses[i+1:]...)
			return s.persist(ctx)
		}
	}

	return ErrNotFound
}

func (s *Service) SetFilter(c Category) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.filter = c
}

func (s *Service) Filter() Category {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.filter
}

// Filtered returns the records matching the active filter, in insertion
// order. Recomputed on every call.
func (s *Service) Filtered() []*Expense {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.listLocked(s.filter)
}

// List returns the records matching c in insertion order; CategoryAll
// returns the full collection.
func (s *Service) List(c Category) []*Expense {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.listLocked(c)
}

// Total sums the amounts of the actively filtered view.
func (s *Service) Total() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	return total(s.listLocked(s.filter))
}

// ByCategory groups the actively filtered view by category and sums each
// group. Map iteration order is unspecified; callers sort for display.
func (s *Service) ByCategory() map[Category]int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	return byCategory(s.listLocked(s.filter))
}

// Summary computes the total and per-category sums for c in one pass under
// the lock, independent of the active filter.
func (s *Service) Summary(c Category) Summary {
	s.mu.Lock()
	defer s.mu.Unlock()

	view := s.listLocked(c)

	return Summary{
		Total:      total(view),
		ByCategory: byCategory(view),
	}
}

func (s *Service) findLocked(id uuid.UUID) *Expense {
	for _, e := range s.expenses {
		if e.ID == id {
			return e
		}
	}

	return nil
}

func (s *Service) listLocked(c Category) []*Expense {
	if c == CategoryAll {
		out := make([]*Expense, len(s.expenses))
		copy(out, s.expenses)

		return out
	}

	var out []*Expense

	for _, e := range s.expenses {
		if e.Category == c {
			out = append(out, e)
		}
	}

	return out
}

func (s *Service) persist(ctx context.Context) error {
	if err := s.repo.Save(ctx, s.expenses); err != nil {
		return fmt.Errorf("saving expenses: %w", err)
	}

	return nil
}

func total(expenses []*Expense) int64 {
	var sum int64

	for _, e := range expenses {
		sum += e.Amount
	}

	return sum
}

func byCategory(expenses []*Expense) map[Category]int64 {
	sums := make(map[Category]int64)

	for _, e := range expenses {
		sums[e.Category] += e.Amount
	}

	return sums
}
