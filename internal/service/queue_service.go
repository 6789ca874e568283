package service

import (
	"context"

	"github.com/yakoovad/buoy-notify/internal/db"
	"github.com/yakoovad/buoy-notify/internal/metrics"
	"github.com/yakoovad/buoy-notify/internal/repository"
	"github.com/yakoovad/buoy-notify/pkg/logger"
	"go.uber.org/zap"
)

// QueueService is the durable queue of pending team invitations. Every
// operation holds the team's queue lock, so enqueue and drain on the same
// team never interleave.
type QueueService struct {
	tx db.Transactor

	notifications repository.NotificationRepository
}

func NewQueueService(tx db.Transactor) *QueueService {
	return &QueueService{tx: tx}
}

// Enqueue records that recipient should be notified about teamID.
// Duplicates are allowed.
func (q *QueueService) Enqueue(ctx context.Context, teamID, recipient string) *Error {
	l := logger.FromContext(ctx)
	l.Debug("enqueueing notification", zap.String("team_id", teamID), zap.String("recipient", recipient))

	err := q.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		if err := q.notifications.LockTeam(txCtx, teamID); err != nil {
			return err
		}
		return q.notifications.Add(txCtx, teamID, recipient)
	})
	if err != nil {
		l.Error("failed to enqueue notification", zap.String("team_id", teamID), zap.Error(err))
		return NewError(ErrorCodeUnspecified, "failed to enqueue notification")
	}
	return nil
}

// Cancel removes every queued occurrence of recipient for teamID.
func (q *QueueService) Cancel(ctx context.Context, teamID, recipient string) *Error {
	l := logger.FromContext(ctx)

	var removed int64
	err := q.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		if err := q.notifications.LockTeam(txCtx, teamID); err != nil {
			return err
		}
		var err error
		removed, err = q.notifications.Delete(txCtx, teamID, recipient)
		return err
	})
	if err != nil {
		l.Error("failed to cancel notification", zap.String("team_id", teamID), zap.Error(err))
		return NewError(ErrorCodeUnspecified, "failed to cancel notification")
	}

	l.Debug("notification cancelled",
		zap.String("team_id", teamID),
		zap.String("recipient", recipient),
		zap.Int64("removed", removed))
	return nil
}

// ListUniqueAndDrain returns the de-duplicated recipients queued for teamID
// in first-queued order and removes the rows that were read.
func (q *QueueService) ListUniqueAndDrain(ctx context.Context, teamID string) ([]string, *Error) {
	l := logger.FromContext(ctx)

	var recipients []string
	err := q.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		if err := q.notifications.LockTeam(txCtx, teamID); err != nil {
			return err
		}

		rows, err := q.notifications.List(txCtx, teamID)
		if err != nil {
			return err
		}
		if len(rows) == 0 {
			return nil
		}

		seen := make(map[string]struct{}, len(rows))
		var maxID int64
		for _, row := range rows {
			maxID = max(maxID, row.ID)
			if _, ok := seen[row.Recipient]; ok {
				continue
			}
			seen[row.Recipient] = struct{}{}
			recipients = append(recipients, row.Recipient)
		}

		_, err = q.notifications.DeleteUpTo(txCtx, teamID, recipients, maxID)
		return err
	})
	if err != nil {
		l.Error("failed to drain notification queue", zap.String("team_id", teamID), zap.Error(err))
		return nil, NewError(ErrorCodeUnspecified, "failed to drain notification queue")
	}

	metrics.AddQueueDrained(len(recipients))
	l.Debug("notification queue drained", zap.String("team_id", teamID), zap.Int("recipients", len(recipients)))

	return recipients, nil
}

func (q *QueueService) WithNotificationRepo(r repository.NotificationRepository) *QueueService {
	q.notifications = r
	return q
}
