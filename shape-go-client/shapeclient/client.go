// Copyright (c) 2026 Palantir Technologies. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package shapeclient dispatches operations declared in a shape registry: one
// fluent entry point per operation, build-then-validate on send, and mapping
// of transport outcomes into typed successes and typed failures.
package shapeclient

import (
	"context"

	"github.com/palantir/shape-go-runtime/shape-go-contract/shape"
	"github.com/palantir/shape-go-runtime/shape-go-contract/value"
)

// A Client invokes operations against a configured service.
//
// Operation returns a fluent call handle; its Send performs a single attempt
// with no retries. Retry and backoff policy belongs to the Transport
// collaborator, not to this layer.
type Client interface {
	// Operation returns a single-use fluent call for the named operation
	// shape. Resolution failures are deferred and surfaced by Send, so a
	// fluent chain never has to check intermediate errors.
	Operation(name string) *Call
}

// Transport is the external collaborator that carries a validated input to
// the remote side and returns the payload it answered with: a value of the
// operation's output shape on success, or a value of one of the operation's
// declared error shapes. A transport that decodes remote errors itself may
// instead return a declared error shape as a *errors.DomainError, which the
// dispatcher passes through with its instance id intact. Invoke is the
// dispatcher's only suspension point and must honor ctx cancellation.
type Transport interface {
	Invoke(ctx context.Context, operation string, input value.Value) (value.Value, error)
}

// TransportFunc is a convenience type that implements Transport.
type TransportFunc func(ctx context.Context, operation string, input value.Value) (value.Value, error)

func (f TransportFunc) Invoke(ctx context.Context, operation string, input value.Value) (value.Value, error) {
	return f(ctx, operation, input)
}

type clientImpl struct {
	registry  *shape.Registry
	transport Transport

	serviceName    string
	disableMetrics bool
	tagProviders   []TagsProvider
}

func (c *clientImpl) Operation(name string) *Call {
	call := &Call{client: c}
	op, err := c.registry.ResolveOperation(name)
	if err != nil {
		call.err = err
		return call
	}
	call.op = op
	b, err := builderForInput(c.registry, op)
	if err != nil {
		call.err = err
		return call
	}
	call.builder = b
	return call
}
