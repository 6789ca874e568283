package service

import (
	"context"

	"github.com/yakoovad/buoy-notify/internal/event"
)

// RegisterHandlers binds the four notification events to their services.
func RegisterHandlers(d *event.Dispatcher, invites *InviteService, alerts *AlertService) {
	d.OnTeamMadeVisible(func(ctx context.Context, e event.TeamMadeVisible) error {
		return asError(invites.ProcessTeamInvites(ctx, e.TeamID))
	})
	d.OnMemberAdded(func(ctx context.Context, e event.MemberAdded) error {
		return asError(invites.MemberAdded(ctx, e))
	})
	d.OnMemberRemoved(func(ctx context.Context, e event.MemberRemoved) error {
		return asError(invites.MemberRemoved(ctx, e))
	})
	d.OnAlertPublished(func(ctx context.Context, e event.AlertPublished) error {
		return asError(alerts.OnAlertPublished(ctx, e.AlertID))
	})
}
