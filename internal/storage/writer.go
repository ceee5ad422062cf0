package storage

import (
	"context"

	"github.com/stephenafamo/bob"

	"github.com/carson-networks/expense-tracker/internal/storage/account"
	"github.com/carson-networks/expense-tracker/internal/storage/budget"
	"github.com/carson-networks/expense-tracker/internal/storage/category"
	"github.com/carson-networks/expense-tracker/internal/storage/transaction"
)

// Tx is the commit/rollback half of a unit of work. bob.Tx satisfies it.
type Tx interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// Writer is a unit of work. Every store on it sees the same transaction.
type Writer struct {
	tx          Tx
	Account     account.IWriter
	Transaction transaction.IWriter
	Category    category.IWriter
	Budget      budget.IWriter
}

func NewWriter(
	tx Tx,
	accounts account.IWriter,
	transactions transaction.IWriter,
	categories category.IWriter,
	budgets budget.IWriter,
) *Writer {
	return &Writer{
		tx:          tx,
		Account:     accounts,
		Transaction: transactions,
		Category:    categories,
		Budget:      budgets,
	}
}

func NewBobWriter(tx bob.Tx) *Writer {
	return NewWriter(
		tx,
		account.NewWriter(tx),
		transaction.NewWriter(tx),
		category.NewWriter(tx),
		budget.NewWriter(tx),
	)
}

func (w *Writer) Commit() error {
	return w.tx.Commit(context.Background())
}

func (w *Writer) Rollback() error {
	return w.tx.Rollback(context.Background())
}
