package event

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDispatcher_RunsHandlersInOrder(t *testing.T) {
	d := NewDispatcher()

	var calls []string
	d.OnMemberAdded(func(_ context.Context, e MemberAdded) error {
		calls = append(calls, "first:"+e.Recipient)
		return nil
	})
	d.OnMemberAdded(func(_ context.Context, e MemberAdded) error {
		calls = append(calls, "second:"+e.Recipient)
		return nil
	})

	err := d.RaiseMemberAdded(context.Background(), MemberAdded{TeamID: "t1", Recipient: "42", Notify: true})

	require.NoError(t, err)
	assert.Equal(t, []string{"first:42", "second:42"}, calls)
}

func TestDispatcher_KeepsBindingsSeparate(t *testing.T) {
	d := NewDispatcher()

	var visible, removed, published int
	d.OnTeamMadeVisible(func(context.Context, TeamMadeVisible) error { visible++; return nil })
	d.OnMemberRemoved(func(context.Context, MemberRemoved) error { removed++; return nil })
	d.OnAlertPublished(func(context.Context, AlertPublished) error { published++; return nil })

	ctx := context.Background()
	require.NoError(t, d.RaiseTeamMadeVisible(ctx, TeamMadeVisible{TeamID: "t1"}))
	require.NoError(t, d.RaiseAlertPublished(ctx, AlertPublished{AlertID: "a1"}))
	require.NoError(t, d.RaiseAlertPublished(ctx, AlertPublished{AlertID: "a2"}))
	require.NoError(t, d.RaiseMemberAdded(ctx, MemberAdded{TeamID: "t1"}))

	assert.Equal(t, 1, visible)
	assert.Equal(t, 0, removed)
	assert.Equal(t, 2, published)
}

func TestDispatcher_CombinesHandlerErrors(t *testing.T) {
	d := NewDispatcher()

	errA := errors.New("a failed")
	errB := errors.New("b failed")
	ran := 0
	d.OnMemberRemoved(func(context.Context, MemberRemoved) error { ran++; return errA })
	d.OnMemberRemoved(func(context.Context, MemberRemoved) error { ran++; return errB })
	d.OnMemberRemoved(nil)

	err := d.RaiseMemberRemoved(context.Background(), MemberRemoved{TeamID: "t1", Recipient: "42"})

	assert.Equal(t, 2, ran)
	assert.ErrorIs(t, err, errA)
	assert.ErrorIs(t, err, errB)
}

type ctxKey struct{}

func TestDispatcher_HandlersIgnoreCallerCancellation(t *testing.T) {
	d := NewDispatcher()

	var seenErr []error
	var seenValue any
	d.OnTeamMadeVisible(func(ctx context.Context, _ TeamMadeVisible) error {
		seenErr = append(seenErr, ctx.Err())
		seenValue = ctx.Value(ctxKey{})
		return nil
	})

	ctx, cancel := context.WithCancel(context.WithValue(context.Background(), ctxKey{}, "request-1"))
	cancel()

	require.NoError(t, d.RaiseTeamMadeVisible(ctx, TeamMadeVisible{TeamID: "t1"}))
	assert.Equal(t, []error{nil}, seenErr)
	assert.Equal(t, "request-1", seenValue)
}
