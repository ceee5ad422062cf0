package memory

import (
	"context"
	"database/sql"
	"sync"
	"time"

	"github.com/carson-networks/expense-tracker/internal/storage"
	"github.com/carson-networks/expense-tracker/internal/storage/account"
	"github.com/carson-networks/expense-tracker/internal/storage/budget"
	"github.com/carson-networks/expense-tracker/internal/storage/category"
	"github.com/carson-networks/expense-tracker/internal/storage/transaction"
)

// Store is an in-memory storage.Storage. A unit of work holds the write lock
// until it commits or rolls back, so units of work are serialized. Rollback
// restores the snapshot taken when the unit of work began.
type Store struct {
	mu    sync.RWMutex
	state *state
	now   func() time.Time
}

type state struct {
	accounts     map[int64]account.Account
	transactions map[int64]transaction.Transaction
	categories   map[int64]category.Category
	budgets      map[int64]budget.Allocation

	lastAccountID     int64
	lastTransactionID int64
	lastCategoryID    int64
	lastBudgetID      int64
}

func newState() *state {
	return &state{
		accounts:     make(map[int64]account.Account),
		transactions: make(map[int64]transaction.Transaction),
		categories:   make(map[int64]category.Category),
		budgets:      make(map[int64]budget.Allocation),
	}
}

func (s *state) clone() *state {
	c := *s
	c.accounts = make(map[int64]account.Account, len(s.accounts))
	for id, a := range s.accounts {
		c.accounts[id] = a
	}
	c.transactions = make(map[int64]transaction.Transaction, len(s.transactions))
	for id, t := range s.transactions {
		c.transactions[id] = t
	}
	c.categories = make(map[int64]category.Category, len(s.categories))
	for id, cat := range s.categories {
		c.categories[id] = cat
	}
	c.budgets = make(map[int64]budget.Allocation, len(s.budgets))
	for id, b := range s.budgets {
		c.budgets[id] = b
	}
	return &c
}

func New() *Store {
	return &Store{
		state: newState(),
		now:   time.Now,
	}
}

// lock takes the read lock unless the caller is inside a unit of work,
// which already holds the write lock.
func (s *Store) lock(inTx bool) func() {
	if inTx {
		return func() {}
	}
	s.mu.RLock()
	return s.mu.RUnlock
}

func (s *Store) Read() *storage.Reader {
	return &storage.Reader{
		Accounts:     &accountTable{store: s},
		Transactions: &transactionTable{store: s},
		Categories:   &categoryTable{store: s},
		Budgets:      &budgetTable{store: s},
	}
}

func (s *Store) Write(ctx context.Context) (*storage.Writer, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()

	uow := &unitOfWork{store: s, snapshot: s.state.clone()}
	return storage.NewWriter(
		uow,
		&accountTable{store: s, inTx: true},
		&transactionTable{store: s, inTx: true},
		&categoryTable{store: s, inTx: true},
		&budgetTable{store: s, inTx: true},
	), nil
}

func (s *Store) Ping(ctx context.Context) error {
	return ctx.Err()
}

func (s *Store) Close() error {
	return nil
}

type unitOfWork struct {
	store    *Store
	snapshot *state
	done     bool
}

func (u *unitOfWork) Commit(_ context.Context) error {
	if u.done {
		return sql.ErrTxDone
	}
	u.done = true
	u.store.mu.Unlock()
	return nil
}

func (u *unitOfWork) Rollback(_ context.Context) error {
	if u.done {
		return sql.ErrTxDone
	}
	u.done = true
	u.store.state = u.snapshot
	u.store.mu.Unlock()
	return nil
}

func page[T any](items []T, limit, offset int) ([]T, bool) {
	if limit <= 0 {
		return items, false
	}
	if offset >= len(items) {
		return nil, false
	}
	items = items[offset:]
	if len(items) > limit {
		return items[:limit], true
	}
	return items, false
}
