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

package errors

import (
	"encoding/json"
	"fmt"

	"github.com/palantir/pkg/uuid"
)

// genericError preserves a remote error whose shape name is not registered
// locally. The raw parameters are kept verbatim so nothing is lost when the
// error is logged or re-serialized, mirroring the unrecognized-enum stance.
type genericError struct {
	name            string
	errorInstanceID uuid.UUID
	parameters      json.RawMessage
}

var (
	_ Error          = genericError{}
	_ fmt.Stringer   = genericError{}
	_ json.Marshaler = genericError{}
)

func (e genericError) String() string {
	return fmt.Sprintf("%s (%s)", e.name, e.errorInstanceID)
}

func (e genericError) Error() string {
	return e.String()
}

func (e genericError) Name() string {
	return e.name
}

func (e genericError) InstanceID() uuid.UUID {
	return e.errorInstanceID
}

func (e genericError) SafeParams() map[string]interface{} {
	return map[string]interface{}{
		"errorShape":      e.name,
		"errorInstanceId": e.errorInstanceID,
	}
}

func (e genericError) UnsafeParams() map[string]interface{} {
	params := map[string]interface{}{}
	if len(e.parameters) > 0 {
		var raw map[string]interface{}
		if err := json.Unmarshal(e.parameters, &raw); err == nil {
			for k, v := range raw {
				params[k] = v
			}
		}
	}
	return params
}

func (e genericError) MarshalJSON() ([]byte, error) {
	return json.Marshal(SerializableError{
		ErrorShape:      e.name,
		ErrorInstanceID: e.errorInstanceID,
		Parameters:      e.parameters,
	})
}
