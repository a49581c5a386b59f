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

// Package errors defines the typed errors an operation dispatch can surface:
// domain errors carrying a declared error shape's fields, and transport
// errors for everything that failed before a typed payload existed. The two
// are never coerced into one another.
package errors

import (
	"github.com/palantir/pkg/uuid"
	wparams "github.com/palantir/witchcraft-go-params"
)

// Error is a typed error intended for transport through RPC channels.
//
// An Error is identified by the name of the error shape it instantiates and a
// unique instance id, and exposes its fields as named parameters.
type Error interface {
	error
	// Name returns the error shape name identifying the error type.
	Name() string
	// InstanceID returns the unique identifier of this particular error instance.
	InstanceID() uuid.UUID

	wparams.ParamStorer
}

// AsDomainError returns the *DomainError in err's chain, if any.
func AsDomainError(err error) (*DomainError, bool) {
	var de *DomainError
	ok := As(err, &de)
	return de, ok
}

// AsTransportError returns the *TransportError in err's chain, if any.
func AsTransportError(err error) (*TransportError, bool) {
	var te *TransportError
	ok := As(err, &te)
	return te, ok
}
