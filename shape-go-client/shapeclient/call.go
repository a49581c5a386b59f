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

package shapeclient

import (
	"context"
	"net"
	"time"

	werror "github.com/palantir/witchcraft-go-error"
	"github.com/palantir/witchcraft-go-logging/wlog/svclog/svc1log"

	"github.com/palantir/shape-go-runtime/shape-go-contract/builder"
	"github.com/palantir/shape-go-runtime/shape-go-contract/errors"
	"github.com/palantir/shape-go-runtime/shape-go-contract/shape"
	"github.com/palantir/shape-go-runtime/shape-go-contract/value"
)

// Call is a single-use fluent handle for one operation invocation. Field
// mutators chain; the first mutation error is retained and surfaced by Send.
// A Call is single-owner, like the builder it wraps.
type Call struct {
	client   *clientImpl
	op       *shape.Operation
	builder  *builder.Builder
	prebuilt *value.Value
	err      error
}

func builderForInput(reg *shape.Registry, op *shape.Operation) (*builder.Builder, error) {
	return builder.ForShape(reg, op.InputRef())
}

// Set stores v under the named input field.
func (c *Call) Set(field string, v value.Value) *Call {
	if c.err != nil || c.builder == nil {
		return c
	}
	if err := c.builder.Set(field, v); err != nil {
		c.err = err
	}
	return c
}

// SetOptional stores v when non-nil and clears the field when nil.
func (c *Call) SetOptional(field string, v *value.Value) *Call {
	if c.err != nil || c.builder == nil {
		return c
	}
	if err := c.builder.SetOptional(field, v); err != nil {
		c.err = err
	}
	return c
}

// Input supplies a fully-built input value instead of populating the call's
// builder. The value's shape is checked against the operation's input shape
// at Send time.
func (c *Call) Input(v value.Value) *Call {
	c.prebuilt = &v
	return c
}

// Send builds and validates the input, performs a single transport attempt
// and maps the result.
//
//	payload of the output shape          → typed success value
//	payload of a declared error shape    → *errors.DomainError
//	transport failure, cancellation, or
//	payload of an undeclared shape       → *errors.TransportError
//
// A transport may also surface a declared error shape as a typed
// *errors.DomainError instead of a payload; those pass through unchanged so a
// remotely minted error instance id survives. Build failures propagate as the
// call's own failure before any transport activity. Cancellation surfaces as
// a timeout-flagged transport error and leaves no state mutated beyond the
// caller-owned builder.
func (c *Call) Send(ctx context.Context) (out value.Value, err error) {
	if !c.client.disableMetrics {
		start := time.Now()
		defer func() {
			c.client.instrument(ctx, c.operationName(), time.Since(start), err)
		}()
	}
	if c.err != nil {
		return value.Value{}, c.err
	}
	input, err := c.buildInput()
	if err != nil {
		return value.Value{}, err
	}
	svc1log.FromContext(ctx).Debug("Dispatching operation.", svc1log.SafeParam("operation", c.op.ShapeName()))
	payload, invokeErr := c.client.transport.Invoke(ctx, c.op.ShapeName(), input)
	if invokeErr != nil {
		if de, ok := errors.AsDomainError(invokeErr); ok && c.op.DeclaresError(de.Name()) {
			return value.Value{}, de
		}
		return value.Value{}, asTransportError(invokeErr)
	}
	switch {
	case payload.ShapeName() == c.op.OutputRef():
		return payload, nil
	case c.op.DeclaresError(payload.ShapeName()):
		return value.Value{}, errors.NewDomainError(payload)
	default:
		return value.Value{}, errors.NewTransportError(werror.Error("transport returned a payload shape the operation does not declare",
			werror.SafeParam("operation", c.op.ShapeName()),
			werror.SafeParam("payloadShape", payload.ShapeName())))
	}
}

func (c *Call) operationName() string {
	if c.op == nil {
		return "unknown"
	}
	return c.op.ShapeName()
}

func (c *Call) buildInput() (value.Value, error) {
	if c.prebuilt != nil {
		if err := value.Compatible(c.client.registry, c.op.InputRef(), *c.prebuilt); err != nil {
			return value.Value{}, builder.NewTypeMismatchError(
				c.op.ShapeName(), "input", c.op.InputRef(), c.prebuilt.ShapeName(), err)
		}
		return *c.prebuilt, nil
	}
	return c.builder.Build()
}

// asTransportError classifies a transport failure, preserving typed transport
// errors the collaborator already produced and flagging cancellations and
// deadline expiries as timeouts.
func asTransportError(err error) *errors.TransportError {
	if te, ok := errors.AsTransportError(err); ok {
		return te
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return errors.NewTimeoutError(err)
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return errors.NewTimeoutError(err)
	}
	return errors.NewTransportError(err)
}
