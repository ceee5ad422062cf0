package storage

import (
	"github.com/stephenafamo/bob"

	"github.com/carson-networks/expense-tracker/internal/storage/account"
	"github.com/carson-networks/expense-tracker/internal/storage/budget"
	"github.com/carson-networks/expense-tracker/internal/storage/category"
	"github.com/carson-networks/expense-tracker/internal/storage/transaction"
)

type Reader struct {
	Accounts     account.IReader
	Transactions transaction.IReader
	Categories   category.IReader
	Budgets      budget.IReader
}

func NewReader(exec bob.Executor) *Reader {
	return &Reader{
		Accounts:     account.NewReader(exec),
		Transactions: transaction.NewReader(exec),
		Categories:   category.NewReader(exec),
		Budgets:      budget.NewReader(exec),
	}
}
