// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package lifecycle

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/jeranaias/rfq-console/internal/api"
)

// SendFunc issues one request against the configured endpoint.
type SendFunc[Req, Resp any] func(ctx context.Context, req Req) (Resp, error)

// ResultMsg carries a submission's outcome back into the event loop.
// Exactly one ResultMsg is produced per accepted Submit.
type ResultMsg[Resp any] struct {
	Token  string
	Result Resp
	Err    error
}

// Controller owns one composer's request lifecycle. It is not shared:
// each composer constructs its own, and the two workflows never touch
// each other's state.
type Controller[Req, Resp any] struct {
	state   State[Resp]
	send    SendFunc[Req, Resp]
	timeout time.Duration
}

// NewController wraps an endpoint call in a lifecycle controller.
func NewController[Req, Resp any](send SendFunc[Req, Resp]) *Controller[Req, Resp] {
	return &Controller[Req, Resp]{
		state:   State[Resp]{Phase: Idle},
		send:    send,
		timeout: api.DefaultTimeout,
	}
}

// WithTimeout overrides the per-submission deadline.
func (c *Controller[Req, Resp]) WithTimeout(d time.Duration) *Controller[Req, Resp] {
	c.timeout = d
	return c
}

// State returns the current lifecycle state.
func (c *Controller[Req, Resp]) State() State[Resp] {
	return c.state
}

// Submit starts a new submission and returns the command that performs
// it. While a request is in flight the call is rejected and returns nil:
// the caller issues no command and observes no state change.
func (c *Controller[Req, Resp]) Submit(req Req) tea.Cmd {
	if c.state.Phase == Submitting {
		return nil
	}

	token := uuid.NewString()
	c.state = Reduce(c.state, SubmitStarted{Token: token})

	send := c.send
	timeout := c.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		result, err := send(ctx, req)
		return ResultMsg[Resp]{Token: token, Result: result, Err: err}
	}
}

// Resolve applies a submission outcome. The returned bool is false when
// the message was stale (its token is not the current submission's) and
// nothing changed; callers emit their one success/failure notification
// only when it is true.
func (c *Controller[Req, Resp]) Resolve(msg ResultMsg[Resp]) (State[Resp], bool) {
	before := c.state

	if msg.Err != nil {
		c.state = Reduce(c.state, RequestFailed{
			Token:   msg.Token,
			Kind:    api.KindOf(msg.Err),
			Message: api.MessageOf(msg.Err),
		})
	} else {
		c.state = Reduce(c.state, RequestSucceeded[Resp]{Token: msg.Token, Result: msg.Result})
	}

	applied := before.Phase == Submitting && before.Token == msg.Token
	return c.state, applied
}
