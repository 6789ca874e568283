// Package event binds team and alert lifecycle events to their handlers.
//
// A Dispatcher is built once at startup and handed to whatever raises
// events. Raising an event runs every bound handler synchronously, in
// registration order, before the call returns.
package event

import (
	"context"

	"go.uber.org/multierr"
)

type Kind string

const (
	KindTeamMadeVisible Kind = "team_made_visible"
	KindMemberAdded     Kind = "member_added"
	KindMemberRemoved   Kind = "member_removed"
	KindAlertPublished  Kind = "alert_published"
)

// TeamMadeVisible fires when a team becomes published or restricted-visible.
type TeamMadeVisible struct {
	TeamID string
}

type MemberAdded struct {
	TeamID    string
	Recipient string
	Notify    bool
}

type MemberRemoved struct {
	TeamID    string
	Recipient string
}

type AlertPublished struct {
	AlertID string
}

type Handler[E any] func(ctx context.Context, e E) error

type binding[E any] struct {
	handlers []Handler[E]
}

func (b *binding[E]) add(h Handler[E]) {
	if h != nil {
		b.handlers = append(b.handlers, h)
	}
}

// raise runs all handlers even if one fails and returns the combined error.
// Handlers see ctx's values but not its cancellation: once raised, an event
// is handled to completion.
func (b *binding[E]) raise(ctx context.Context, e E) error {
	ctx = context.WithoutCancel(ctx)
	var err error
	for _, h := range b.handlers {
		err = multierr.Append(err, h(ctx, e))
	}
	return err
}

type Dispatcher struct {
	teamMadeVisible binding[TeamMadeVisible]
	memberAdded     binding[MemberAdded]
	memberRemoved   binding[MemberRemoved]
	alertPublished  binding[AlertPublished]
}

func NewDispatcher() *Dispatcher {
	return &Dispatcher{}
}

func (d *Dispatcher) OnTeamMadeVisible(h Handler[TeamMadeVisible]) { d.teamMadeVisible.add(h) }
func (d *Dispatcher) OnMemberAdded(h Handler[MemberAdded])         { d.memberAdded.add(h) }
func (d *Dispatcher) OnMemberRemoved(h Handler[MemberRemoved])     { d.memberRemoved.add(h) }
func (d *Dispatcher) OnAlertPublished(h Handler[AlertPublished])   { d.alertPublished.add(h) }

func (d *Dispatcher) RaiseTeamMadeVisible(ctx context.Context, e TeamMadeVisible) error {
	return d.teamMadeVisible.raise(ctx, e)
}

func (d *Dispatcher) RaiseMemberAdded(ctx context.Context, e MemberAdded) error {
	return d.memberAdded.raise(ctx, e)
}

func (d *Dispatcher) RaiseMemberRemoved(ctx context.Context, e MemberRemoved) error {
	return d.memberRemoved.raise(ctx, e)
}

func (d *Dispatcher) RaiseAlertPublished(ctx context.Context, e AlertPublished) error {
	return d.alertPublished.raise(ctx, e)
}
