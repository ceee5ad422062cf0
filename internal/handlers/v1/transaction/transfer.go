package transaction

import (
	"context"
	"fmt"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/expense-tracker/internal/handlers/v1/apierror"
	"github.com/carson-networks/expense-tracker/internal/operator/actions"
	"github.com/carson-networks/expense-tracker/internal/storage/transaction"
)

// Transfer is the API response model for both legs of a transfer.
type Transfer struct {
	ReferenceID string      `json:"referenceId" doc:"Reference id shared by both legs"`
	Outgoing    Transaction `json:"outgoing" doc:"Leg recorded on the source account"`
	Incoming    Transaction `json:"incoming" doc:"Leg recorded on the destination account"`
}

type CreateTransferBody struct {
	FromAccountID int64  `json:"fromAccountId" minimum:"1" doc:"Source account id"`
	ToAccountID   int64  `json:"toAccountId" minimum:"1" doc:"Destination account id"`
	CategoryID    int64  `json:"categoryId" minimum:"1" doc:"Category recorded on both legs"`
	Amount        string `json:"amount" minLength:"1" doc:"Positive decimal amount"`
	Date          string `json:"date,omitempty" format:"date" doc:"Calendar date (YYYY-MM-DD), defaults to today"`
	Description   string `json:"description,omitempty" maxLength:"255" doc:"Description; each leg gets a direction suffix"`
	Notes         string `json:"notes,omitempty" doc:"Free-form notes"`
}

type CreateTransferInput struct {
	Body CreateTransferBody
}

type CreateTransferOutput struct {
	Status int
	Body   Transfer
}

// CreateTransferHandler handles POST /v1/transfer.
type CreateTransferHandler struct {
	Operator operatorProcessor
}

func NewCreateTransferHandler(op operatorProcessor) *CreateTransferHandler {
	return &CreateTransferHandler{Operator: op}
}

func (h *CreateTransferHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "create-transfer",
		Method:      http.MethodPost,
		Path:        "/v1/transfer",
		Summary:     "Transfer between accounts",
		Description: "Moves money from one account to another. Fails when the source balance is below the amount.",
		Tags:        []string{"Transfers"},
	}, h.handle)
}

func (h *CreateTransferHandler) handle(ctx context.Context, input *CreateTransferInput) (*CreateTransferOutput, error) {
	amount, err := parseAmount(input.Body.Amount)
	if err != nil {
		return nil, err
	}
	date, err := parseDate("date", input.Body.Date)
	if err != nil {
		return nil, err
	}

	action := &actions.CreateTransfer{
		FromAccountID: input.Body.FromAccountID,
		ToAccountID:   input.Body.ToAccountID,
		CategoryID:    input.Body.CategoryID,
		Amount:        amount,
		Date:          date,
		Description:   input.Body.Description,
		Notes:         input.Body.Notes,
	}
	err = apierror.Timed(ctx, "createTransferMs", func() error {
		return h.Operator.Process(ctx, action)
	})
	if err != nil {
		return nil, apierror.Respond(ctx, err, "failed to create transfer")
	}

	apierror.AddData(ctx, "transferReferenceID", action.Outgoing.TransferReferenceID)
	return &CreateTransferOutput{
		Status: http.StatusCreated,
		Body:   toTransfer(action.Outgoing, action.Incoming),
	}, nil
}

type GetTransferInput struct {
	ReferenceID string `path:"referenceId" format:"uuid" doc:"Transfer reference id"`
}

type GetTransferOutput struct {
	Body Transfer
}

type transferGetter interface {
	GetTransfer(ctx context.Context, referenceID string) ([]*transaction.Transaction, error)
}

// GetTransferHandler handles GET /v1/transfer/{referenceId}.
type GetTransferHandler struct {
	TransactionService transferGetter
}

func NewGetTransferHandler(svc transferGetter) *GetTransferHandler {
	return &GetTransferHandler{TransactionService: svc}
}

func (h *GetTransferHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "get-transfer",
		Method:      http.MethodGet,
		Path:        "/v1/transfer/{referenceId}",
		Summary:     "Get transfer",
		Tags:        []string{"Transfers"},
	}, h.handle)
}

func (h *GetTransferHandler) handle(ctx context.Context, input *GetTransferInput) (*GetTransferOutput, error) {
	legs, err := h.TransactionService.GetTransfer(ctx, input.ReferenceID)
	if err != nil {
		return nil, apierror.Respond(ctx, err, "failed to get transfer")
	}

	var outgoing, incoming *transaction.Transaction
	for _, leg := range legs {
		switch leg.TransferDirection {
		case transaction.TransferDirectionOut:
			outgoing = leg
		case transaction.TransferDirectionIn:
			incoming = leg
		}
	}
	if outgoing == nil || incoming == nil {
		return nil, apierror.Respond(ctx, fmt.Errorf("transfer %s is missing a leg", input.ReferenceID), "failed to get transfer")
	}
	return &GetTransferOutput{Body: toTransfer(outgoing, incoming)}, nil
}

func toTransfer(outgoing, incoming *transaction.Transaction) Transfer {
	return Transfer{
		ReferenceID: outgoing.TransferReferenceID,
		Outgoing:    toTransaction(outgoing),
		Incoming:    toTransaction(incoming),
	}
}
