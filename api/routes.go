package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/expense-tracker/internal/handlers/v1/account"
	"github.com/carson-networks/expense-tracker/internal/handlers/v1/budget"
	"github.com/carson-networks/expense-tracker/internal/handlers/v1/category"
	"github.com/carson-networks/expense-tracker/internal/handlers/v1/report"
	"github.com/carson-networks/expense-tracker/internal/handlers/v1/status"
	"github.com/carson-networks/expense-tracker/internal/handlers/v1/transaction"
	"github.com/carson-networks/expense-tracker/internal/logging"
	"github.com/carson-networks/expense-tracker/internal/operator"
	"github.com/carson-networks/expense-tracker/internal/service"
	"github.com/carson-networks/expense-tracker/internal/storage"
)

const shutdownTimeout = 15 * time.Second

type Rest struct {
	Logger   *logrus.Logger
	Port     string
	Storage  storage.Storage
	Operator *operator.OperatorDelegator
	Service  *service.Service
}

type registrar interface {
	Register(api huma.API)
}

// Handler builds the router with every v1 endpoint mounted.
func (r *Rest) Handler() http.Handler {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Recoverer)

	statusHandler := status.NewHandler(r.Storage)
	router.Get("/status", logging.LoggingWrapper("Status", r.Logger, statusHandler.Handler))

	api := humachi.New(router, huma.DefaultConfig("Expense Tracker", "1.0.0"))
	api.UseMiddleware(logging.HumaMiddleware(r.Logger))

	svc := r.Service
	handlers := []registrar{
		account.NewCreateAccountHandler(r.Operator),
		account.NewListAccountsHandler(svc.Account),
		account.NewGetAccountHandler(svc.Account),
		account.NewUpdateAccountHandler(r.Operator),
		account.NewDeactivateAccountHandler(r.Operator),
		account.NewDeleteAccountHandler(r.Operator),
		account.NewTotalBalanceHandler(svc.Account),
		account.NewVerifyBalanceHandler(svc.Account),
		account.NewRecomputeBalanceHandler(r.Operator),
		transaction.NewCreateTransactionHandler(r.Operator),
		transaction.NewListTransactionsHandler(svc.Transaction),
		transaction.NewGetTransactionHandler(svc.Transaction),
		transaction.NewUpdateTransactionHandler(r.Operator),
		transaction.NewDeleteTransactionHandler(r.Operator),
		transaction.NewCreateTransferHandler(r.Operator),
		transaction.NewGetTransferHandler(svc.Transaction),
		category.NewHandlers(r.Operator, svc.Category),
		budget.NewHandlers(r.Operator, svc.Budget),
		report.NewSpendingHandler(svc.Spending),
	}
	for _, h := range handlers {
		h.Register(api)
	}

	return router
}

// Serve listens until ctx is cancelled, then shuts down gracefully.
func (r *Rest) Serve(ctx context.Context) error {
	server := http.Server{
		Addr:              ":" + r.Port,
		Handler:           r.Handler(),
		ReadTimeout:       time.Duration(30) * time.Second,
		WriteTimeout:      time.Duration(30) * time.Second,
		IdleTimeout:       time.Duration(10) * time.Second,
		ReadHeaderTimeout: time.Duration(10) * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		r.Logger.WithField("port", r.Port).Info("HttpServer.Serve.listening")
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		r.Logger.WithError(err).Error("HttpServer.Serve.listen error")
		return err
	case <-ctx.Done():
	}

	r.Logger.Info("HttpServer.Serve.shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
