// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package lifecycle

import "github.com/jeranaias/rfq-console/internal/api"

// Phase is the lifecycle position of a composer's current request.
type Phase int

const (
	// Idle means no request has been submitted yet.
	Idle Phase = iota
	// Submitting means exactly one request is in flight.
	Submitting
	// Succeeded means the last submission completed with a result.
	Succeeded
	// Failed means the last submission ended in a classified error.
	Failed
)

// String returns the phase name for logs and tests.
func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Submitting:
		return "submitting"
	case Succeeded:
		return "succeeded"
	case Failed:
		return "failed"
	}
	return "unknown"
}

// State is the full lifecycle record for one composer. It is a plain
// value: transitions go through Reduce and nothing else.
//
// Result and HasResult outlive failures on purpose. A failed submission
// reports its error through FailKind/FailMessage while the previously
// rendered result stays available until a newer success replaces it.
type State[Resp any] struct {
	Phase       Phase
	Token       string // token of the in-flight or last-resolved submission
	Result      Resp
	HasResult   bool
	FailKind    api.ErrorKind
	FailMessage string
}

// Loading reports whether the composer should show its spinner. It is
// true in exactly one phase, so every terminal transition clears it.
func (s State[Resp]) Loading() bool {
	return s.Phase == Submitting
}

// Action is a lifecycle transition input.
type Action interface {
	lifecycleAction()
}

// SubmitStarted begins a submission identified by Token.
type SubmitStarted struct {
	Token string
}

// RequestSucceeded resolves the submission identified by Token with a
// result.
type RequestSucceeded[Resp any] struct {
	Token  string
	Result Resp
}

// RequestFailed resolves the submission identified by Token with a
// classified error.
type RequestFailed struct {
	Token   string
	Kind    api.ErrorKind
	Message string
}

func (SubmitStarted) lifecycleAction()           {}
func (RequestSucceeded[Resp]) lifecycleAction()  {}
func (RequestFailed) lifecycleAction()           {}

// Reduce applies one action to a state and returns the next state. It is
// pure and total: unknown or out-of-order actions return the state
// unchanged.
//
// Rejections encoded here:
//   - SubmitStarted while Submitting: resubmission is blocked.
//   - Terminal actions whose token is not the current submission's, or
//     that arrive outside Submitting: stale, ignored.
func Reduce[Resp any](s State[Resp], a Action) State[Resp] {
	switch a := a.(type) {
	case SubmitStarted:
		if s.Phase == Submitting {
			return s
		}
		s.Phase = Submitting
		s.Token = a.Token
		return s

	case RequestSucceeded[Resp]:
		if s.Phase != Submitting || s.Token != a.Token {
			return s
		}
		s.Phase = Succeeded
		s.Result = a.Result
		s.HasResult = true
		s.FailKind = 0
		s.FailMessage = ""
		return s

	case RequestFailed:
		if s.Phase != Submitting || s.Token != a.Token {
			return s
		}
		s.Phase = Failed
		s.FailKind = a.Kind
		s.FailMessage = a.Message
		return s
	}
	return s
}
