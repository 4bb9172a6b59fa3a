// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package lifecycle

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/rfq-console/internal/api"
)

// =============================================================================
// REDUCE TESTS
// =============================================================================

func TestReduce_SubmitFromIdle(t *testing.T) {
	s := Reduce(State[string]{Phase: Idle}, SubmitStarted{Token: "t1"})

	assert.Equal(t, Submitting, s.Phase)
	assert.Equal(t, "t1", s.Token)
	assert.True(t, s.Loading())
}

func TestReduce_SubmitWhileSubmittingIsRejected(t *testing.T) {
	s := Reduce(State[string]{Phase: Idle}, SubmitStarted{Token: "t1"})
	s2 := Reduce(s, SubmitStarted{Token: "t2"})

	assert.Equal(t, s, s2, "second submit must leave state unchanged")
}

func TestReduce_SuccessIsTerminal(t *testing.T) {
	s := Reduce(State[string]{Phase: Idle}, SubmitStarted{Token: "t1"})
	s = Reduce(s, RequestSucceeded[string]{Token: "t1", Result: "answer"})

	assert.Equal(t, Succeeded, s.Phase)
	assert.True(t, s.HasResult)
	assert.Equal(t, "answer", s.Result)
	assert.False(t, s.Loading(), "loading must clear on success")
}

func TestReduce_FailureRetainsPreviousResult(t *testing.T) {
	// First submission succeeds.
	s := Reduce(State[string]{Phase: Idle}, SubmitStarted{Token: "t1"})
	s = Reduce(s, RequestSucceeded[string]{Token: "t1", Result: "first answer"})

	// Second submission fails.
	s = Reduce(s, SubmitStarted{Token: "t2"})
	s = Reduce(s, RequestFailed{Token: "t2", Kind: api.ServerError, Message: "boom"})

	assert.Equal(t, Failed, s.Phase)
	assert.Equal(t, api.ServerError, s.FailKind)
	assert.Equal(t, "boom", s.FailMessage)
	assert.False(t, s.Loading(), "loading must clear on failure")
	assert.True(t, s.HasResult, "failure must not clear the displayed result")
	assert.Equal(t, "first answer", s.Result)
}

func TestReduce_StaleTokenIgnored(t *testing.T) {
	s := Reduce(State[string]{Phase: Idle}, SubmitStarted{Token: "current"})

	stale := Reduce(s, RequestSucceeded[string]{Token: "old", Result: "stale answer"})
	assert.Equal(t, s, stale, "stale success must not apply")

	stale = Reduce(s, RequestFailed{Token: "old", Kind: api.NoResponse, Message: "late timeout"})
	assert.Equal(t, s, stale, "stale failure must not apply")
}

func TestReduce_TerminalOutsideSubmittingIgnored(t *testing.T) {
	s := State[string]{Phase: Idle}
	assert.Equal(t, s, Reduce(s, RequestSucceeded[string]{Token: "t", Result: "x"}))
	assert.Equal(t, s, Reduce(s, RequestFailed{Token: "t", Kind: api.ClientError, Message: "x"}))
}

func TestReduce_ResubmitAfterTerminal(t *testing.T) {
	s := Reduce(State[string]{Phase: Idle}, SubmitStarted{Token: "t1"})
	s = Reduce(s, RequestFailed{Token: "t1", Kind: api.NoResponse, Message: api.NoResponseMessage})

	s = Reduce(s, SubmitStarted{Token: "t2"})
	assert.Equal(t, Submitting, s.Phase)
	assert.Equal(t, "t2", s.Token)

	s = Reduce(s, RequestSucceeded[string]{Token: "t2", Result: "second answer"})
	assert.Equal(t, Succeeded, s.Phase)
	assert.Equal(t, "second answer", s.Result)
	assert.Empty(t, s.FailMessage, "success clears the previous failure")
}

// =============================================================================
// CONTROLLER TESTS
// =============================================================================

func TestController_SingleInFlight(t *testing.T) {
	var calls atomic.Int32
	release := make(chan struct{})

	c := NewController(func(ctx context.Context, req string) (string, error) {
		calls.Add(1)
		<-release
		return "done", nil
	})

	cmd := c.Submit("first")
	require.NotNil(t, cmd)
	require.Equal(t, Submitting, c.State().Phase)

	// A second submit while in flight is a no-op: no command, no state
	// change, and the endpoint is never called a second time.
	before := c.State()
	cmd2 := c.Submit("second")
	assert.Nil(t, cmd2)
	assert.Equal(t, before, c.State())

	done := make(chan struct{})
	var msg ResultMsg[string]
	go func() {
		msg = cmd().(ResultMsg[string])
		close(done)
	}()
	close(release)
	<-done

	state, applied := c.Resolve(msg)
	require.True(t, applied)
	assert.Equal(t, Succeeded, state.Phase)
	assert.Equal(t, "done", state.Result)
	assert.Equal(t, int32(1), calls.Load(), "only one network call may be issued")
}

func TestController_TimeoutResolvesAsNoResponse(t *testing.T) {
	c := NewController(func(ctx context.Context, req string) (string, error) {
		<-ctx.Done()
		// The API client reports an expired request as NoResponse.
		return "", &api.RequestError{Kind: api.NoResponse, Message: api.NoResponseMessage, Err: ctx.Err()}
	}).WithTimeout(20 * time.Millisecond)

	cmd := c.Submit("slow request")
	require.NotNil(t, cmd)

	msg := cmd().(ResultMsg[string])
	state, applied := c.Resolve(msg)

	require.True(t, applied)
	assert.Equal(t, Failed, state.Phase)
	assert.Equal(t, api.NoResponse, state.FailKind)
	assert.Equal(t, api.NoResponseMessage, state.FailMessage)
	assert.False(t, state.Loading(), "loading indicator must clear on timeout")
}

func TestController_ErrorKindsPreserved(t *testing.T) {
	tests := []struct {
		name string
		err  error
		kind api.ErrorKind
		msg  string
	}{
		{
			"server error keeps server message",
			&api.RequestError{Kind: api.ServerError, Message: "invalid margin", Status: 422},
			api.ServerError, "invalid margin",
		},
		{
			"client error keeps underlying text",
			&api.RequestError{Kind: api.ClientError, Message: "parse response: unexpected EOF"},
			api.ClientError, "parse response: unexpected EOF",
		},
		{
			"unclassified error defaults to client error",
			context.Canceled,
			api.ClientError, context.Canceled.Error(),
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.err
			c := NewController(func(ctx context.Context, req int) (int, error) {
				return 0, err
			})

			msg := c.Submit(1)().(ResultMsg[int])
			state, applied := c.Resolve(msg)

			require.True(t, applied)
			assert.Equal(t, Failed, state.Phase)
			assert.Equal(t, tc.kind, state.FailKind)
			assert.Equal(t, tc.msg, state.FailMessage)
		})
	}
}

func TestController_StaleResolveReportsNotApplied(t *testing.T) {
	c := NewController(func(ctx context.Context, req string) (string, error) {
		return "ok", nil
	})

	msg := c.Submit("req")().(ResultMsg[string])
	_, applied := c.Resolve(msg)
	require.True(t, applied)

	// Replaying the same terminal message must not apply again; the
	// caller uses this to guarantee exactly one notification.
	state, applied := c.Resolve(msg)
	assert.False(t, applied)
	assert.Equal(t, Succeeded, state.Phase)
}
