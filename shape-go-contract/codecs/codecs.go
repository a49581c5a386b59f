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

// Package codecs provides encoders and decoders for payloads crossing the
// transport boundary, including the shape-directed JSON form of built values.
package codecs

import (
	"io"
)

// Codec encodes and decodes values of a particular content type.
type Codec interface {
	// Accept returns the media type to use in an Accept header.
	Accept() string
	// ContentType returns the media type to use in a Content-Type header.
	ContentType() string

	Decode(r io.Reader, v interface{}) error
	Unmarshal(data []byte, v interface{}) error
	Encode(w io.Writer, v interface{}) error
	Marshal(v interface{}) ([]byte, error)
}
