package operator

import (
	"context"
	"fmt"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/expense-tracker/internal/operator/actions"
	"github.com/carson-networks/expense-tracker/internal/storage"
)

// Operator is the worker that processes items from the queue.
type Operator struct {
	storage storage.Storage
	queue   chan ActionItem
	logger  *logrus.Logger
}

func NewOperator(s storage.Storage, queue chan ActionItem, logger *logrus.Logger) *Operator {
	return &Operator{
		storage: s,
		queue:   queue,
		logger:  logger,
	}
}

// Run listens to the queue and processes items. Exits when the queue is closed.
func (o *Operator) Run() {
	for item := range o.queue {
		o.processItem(item)
	}
}

func (o *Operator) processItem(item ActionItem) {
	start := time.Now()
	err := o.perform(item.ctx, item.action)
	if err != nil {
		entry := o.logger.WithError(err).WithFields(logrus.Fields{
			"action":     fmt.Sprintf("%T", item.action),
			"durationMs": time.Since(start).Milliseconds(),
		})
		entry.Warn("Operator.processItem.actionFailed")
		if o.logger.IsLevelEnabled(logrus.DebugLevel) {
			entry.Debug(spew.Sdump(item.action))
		}
	}
	item.response <- ActionItemResponse{err: err}
}

// perform runs the action inside one unit of work. The unit of work is rolled
// back on every path that does not reach Commit, panics included.
func (o *Operator) perform(ctx context.Context, action actions.IAction) (err error) {
	writer, err := o.storage.Write(ctx)
	if err != nil {
		return err
	}

	finished := false
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("operator: action panicked: %v", r)
		}
		if finished {
			return
		}
		if rbErr := writer.Rollback(); rbErr != nil {
			o.logger.WithError(rbErr).Error("Operator.perform.rollbackFailed")
		}
	}()

	if err = action.Perform(ctx, writer); err != nil {
		return err
	}
	if err = ctx.Err(); err != nil {
		return err
	}

	// A failed commit leaves nothing to roll back.
	finished = true
	return writer.Commit()
}

type ActionItem struct {
	ctx      context.Context
	action   actions.IAction
	response chan ActionItemResponse
}

type ActionItemResponse struct {
	err error
}
