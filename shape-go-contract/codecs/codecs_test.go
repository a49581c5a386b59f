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

package codecs_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/palantir/shape-go-runtime/shape-go-contract/codecs"
)

func TestJSONCodec(t *testing.T) {
	assert.Equal(t, "application/json", codecs.JSON.ContentType())

	data, err := codecs.JSON.Marshal(map[string]interface{}{"key": "value"})
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, codecs.JSON.Unmarshal(data, &decoded))
	assert.Equal(t, "value", decoded["key"])
}

func TestSNAPPYCodecWrapsContentCodec(t *testing.T) {
	codec := codecs.SNAPPY(codecs.JSON)
	assert.Equal(t, "application/json", codec.ContentType())

	var buf bytes.Buffer
	require.NoError(t, codec.Encode(&buf, map[string]interface{}{"key": "value"}))
	// framed stream opens with the snappy stream identifier chunk
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("\xff\x06\x00\x00sNaPpY")))

	var decoded map[string]interface{}
	require.NoError(t, codec.Decode(&buf, &decoded))
	assert.Equal(t, "value", decoded["key"])
}

func TestBinaryCodec(t *testing.T) {
	assert.Equal(t, "application/octet-stream", codecs.Binary.ContentType())

	data, err := codecs.Binary.Marshal(bytes.NewReader([]byte{1, 2, 3}))
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3}, data)

	var out bytes.Buffer
	require.NoError(t, codecs.Binary.Unmarshal(data, &out))
	assert.Equal(t, []byte{1, 2, 3}, out.Bytes())

	// non-writer target is rejected
	require.Error(t, codecs.Binary.Unmarshal(data, "not a writer"))
}

func TestYAMLCodec(t *testing.T) {
	var decoded map[string]string
	require.NoError(t, codecs.YAML.Unmarshal([]byte("key: value\n"), &decoded))
	assert.Equal(t, "value", decoded["key"])
}
