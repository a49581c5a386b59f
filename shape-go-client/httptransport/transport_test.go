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

package httptransport_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang/snappy"
	"github.com/palantir/pkg/httpserver"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/palantir/shape-go-runtime/shape-go-client/httptransport"
	"github.com/palantir/shape-go-runtime/shape-go-client/shapeclient"
	"github.com/palantir/shape-go-runtime/shape-go-contract/builder"
	"github.com/palantir/shape-go-runtime/shape-go-contract/errors"
	"github.com/palantir/shape-go-runtime/shape-go-contract/shape"
	"github.com/palantir/shape-go-runtime/shape-go-contract/value"
)

func newGetLongRegistry(t *testing.T) *shape.Registry {
	t.Helper()
	op, err := shape.NewOperation("GetLong", "GetLongInput", "GetLongOutput", "NotFoundError")
	require.NoError(t, err)
	reg := shape.NewRegistry()
	require.NoError(t, reg.Load(append(
		shape.Builtins(),
		shape.MustStruct("GetLongInput", shape.OptionalField("value", shape.BuiltinLong)),
		shape.MustStruct("GetLongOutput", shape.OptionalField("value", shape.BuiltinLong)),
		shape.MustStruct("NotFoundError", shape.OptionalField("resource", shape.BuiltinString)),
		op,
	)...))
	return reg
}

func getLongInput(t *testing.T, reg *shape.Registry, v int64) value.Value {
	t.Helper()
	long, err := reg.Resolve(shape.BuiltinLong)
	require.NoError(t, err)
	sv, err := value.NewScalar(long.(*shape.Primitive), v)
	require.NoError(t, err)
	input, err := builder.ForShape(reg, "GetLongInput")
	require.NoError(t, err)
	out, err := input.With("value", sv).Build()
	require.NoError(t, err)
	return out
}

func TestInvokeDecodesOutput(t *testing.T) {
	reg := newGetLongRegistry(t)
	server := httptest.NewServer(http.HandlerFunc(func(rw http.ResponseWriter, req *http.Request) {
		assert.Equal(t, http.MethodPost, req.Method)
		assert.Equal(t, "/invoke/GetLong", req.URL.Path)
		assert.Equal(t, "application/json", req.Header.Get("Content-Type"))
		assert.Contains(t, req.Header.Get("User-Agent"), "shape-go-runtime")

		body, err := io.ReadAll(req.Body)
		require.NoError(t, err)
		assert.JSONEq(t, `{"value":42}`, string(body))

		rw.Header().Set("Content-Type", "application/json")
		_, _ = rw.Write([]byte(`{"value":42}`))
	}))
	defer server.Close()

	transport, err := httptransport.New(
		httptransport.WithRegistry(reg),
		httptransport.WithBaseURIs([]string{server.URL}),
	)
	require.NoError(t, err)

	out, err := transport.Invoke(context.Background(), "GetLong", getLongInput(t, reg, 42))
	require.NoError(t, err)
	assert.Equal(t, "GetLongOutput", out.ShapeName())
	got, ok := out.Field("value")
	require.True(t, ok)
	gotLong, _ := got.AsLong()
	assert.Equal(t, int64(42), gotLong)
}

func TestInvokeReturnsDeclaredErrorShapeAsDomainError(t *testing.T) {
	reg := newGetLongRegistry(t)
	errReg := errors.NewRegistry(reg)
	op, err := reg.ResolveOperation("GetLong")
	require.NoError(t, err)
	require.NoError(t, errReg.RegisterOperationErrors(op))

	server := httptest.NewServer(http.HandlerFunc(func(rw http.ResponseWriter, req *http.Request) {
		rw.Header().Set("Content-Type", "application/json")
		rw.WriteHeader(http.StatusNotFound)
		_, _ = rw.Write([]byte(`{"errorShape":"NotFoundError","errorInstanceId":"8a1f00d0-1111-2222-3333-444455556666","parameters":{"resource":"widget-7"}}`))
	}))
	defer server.Close()

	transport, err := httptransport.New(
		httptransport.WithRegistry(reg),
		httptransport.WithErrorRegistry(errReg),
		httptransport.WithBaseURIs([]string{server.URL}),
	)
	require.NoError(t, err)

	_, err = transport.Invoke(context.Background(), "GetLong", getLongInput(t, reg, 42))
	require.Error(t, err)

	domainErr, ok := errors.AsDomainError(err)
	require.True(t, ok)
	assert.Equal(t, "NotFoundError", domainErr.Name())
	assert.Equal(t, "8a1f00d0-1111-2222-3333-444455556666", domainErr.InstanceID().String())
	resource, ok := domainErr.Value().Field("resource")
	require.True(t, ok)
	gotResource, _ := resource.AsString()
	assert.Equal(t, "widget-7", gotResource)
}

func TestClientSendDomainErrorOverHTTP(t *testing.T) {
	reg := newGetLongRegistry(t)
	errReg := errors.NewRegistry(reg)
	op, err := reg.ResolveOperation("GetLong")
	require.NoError(t, err)
	require.NoError(t, errReg.RegisterOperationErrors(op))

	server := httptest.NewServer(http.HandlerFunc(func(rw http.ResponseWriter, req *http.Request) {
		rw.Header().Set("Content-Type", "application/json")
		rw.WriteHeader(http.StatusNotFound)
		_, _ = rw.Write([]byte(`{"errorShape":"NotFoundError","errorInstanceId":"8a1f00d0-1111-2222-3333-444455556666","parameters":{"resource":"widget-7"}}`))
	}))
	defer server.Close()

	transport, err := httptransport.New(
		httptransport.WithRegistry(reg),
		httptransport.WithErrorRegistry(errReg),
		httptransport.WithBaseURIs([]string{server.URL}),
	)
	require.NoError(t, err)
	client, err := shapeclient.NewClient(
		shapeclient.WithRegistry(reg),
		shapeclient.WithTransport(transport),
		shapeclient.WithDisableMetrics(),
	)
	require.NoError(t, err)

	long, err := reg.Resolve(shape.BuiltinLong)
	require.NoError(t, err)
	sv, err := value.NewScalar(long.(*shape.Primitive), int64(42))
	require.NoError(t, err)

	_, err = client.Operation("GetLong").Set("value", sv).Send(context.Background())
	require.Error(t, err)

	domainErr, ok := errors.AsDomainError(err)
	require.True(t, ok)
	assert.Equal(t, "NotFoundError", domainErr.Name())
	assert.Equal(t, "8a1f00d0-1111-2222-3333-444455556666", domainErr.InstanceID().String())
	_, isTransport := errors.AsTransportError(err)
	assert.False(t, isTransport)
}

func TestInvokeUndeclaredErrorShapeIsTransportError(t *testing.T) {
	reg := newGetLongRegistry(t)
	server := httptest.NewServer(http.HandlerFunc(func(rw http.ResponseWriter, req *http.Request) {
		rw.WriteHeader(http.StatusConflict)
		_, _ = rw.Write([]byte(`{"errorShape":"MysteryError","errorInstanceId":"8a1f00d0-1111-2222-3333-444455556666","parameters":{}}`))
	}))
	defer server.Close()

	transport, err := httptransport.New(
		httptransport.WithRegistry(reg),
		httptransport.WithBaseURIs([]string{server.URL}),
	)
	require.NoError(t, err)

	_, err = transport.Invoke(context.Background(), "GetLong", getLongInput(t, reg, 42))
	require.Error(t, err)
	_, isDomain := errors.AsDomainError(err)
	assert.False(t, isDomain)
	_, isTransport := errors.AsTransportError(err)
	assert.True(t, isTransport)
}

func TestInvokeFailsOverAcrossURIs(t *testing.T) {
	reg := newGetLongRegistry(t)
	n := 0
	handler := http.HandlerFunc(func(rw http.ResponseWriter, req *http.Request) {
		n++
		if n == 3 {
			rw.Header().Set("Content-Type", "application/json")
			_, _ = rw.Write([]byte(`{"value":42}`))
		} else {
			rw.WriteHeader(http.StatusServiceUnavailable)
		}
	})
	s1 := httptest.NewServer(handler)
	defer s1.Close()
	s2 := httptest.NewServer(handler)
	defer s2.Close()
	s3 := httptest.NewServer(handler)
	defer s3.Close()

	backoff := time.Millisecond
	transport, err := httptransport.New(
		httptransport.WithRegistry(reg),
		httptransport.WithBaseURIs([]string{s1.URL, s2.URL, s3.URL}),
		httptransport.WithInitialBackoff(backoff),
		httptransport.WithMaxBackoff(backoff),
	)
	require.NoError(t, err)

	_, err = transport.Invoke(context.Background(), "GetLong", getLongInput(t, reg, 42))
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestInvokeFailsOverFromDeadServer(t *testing.T) {
	reg := newGetLongRegistry(t)
	deadPort, err := httpserver.AvailablePort()
	require.NoError(t, err)
	deadURL := fmt.Sprintf("http://localhost:%d", deadPort)

	live := httptest.NewServer(http.HandlerFunc(func(rw http.ResponseWriter, req *http.Request) {
		rw.Header().Set("Content-Type", "application/json")
		_, _ = rw.Write([]byte(`{"value":42}`))
	}))
	defer live.Close()

	backoff := time.Millisecond
	transport, err := httptransport.New(
		httptransport.WithRegistry(reg),
		httptransport.WithBaseURIs([]string{deadURL, live.URL}),
		httptransport.WithInitialBackoff(backoff),
		httptransport.WithMaxBackoff(backoff),
	)
	require.NoError(t, err)

	_, err = transport.Invoke(context.Background(), "GetLong", getLongInput(t, reg, 42))
	require.NoError(t, err)
}

func TestInvokeExhaustsAttempts(t *testing.T) {
	reg := newGetLongRegistry(t)
	n := 0
	server := httptest.NewServer(http.HandlerFunc(func(rw http.ResponseWriter, req *http.Request) {
		n++
		rw.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	backoff := time.Millisecond
	transport, err := httptransport.New(
		httptransport.WithRegistry(reg),
		httptransport.WithBaseURIs([]string{server.URL}),
		httptransport.WithMaxAttempts(2),
		httptransport.WithInitialBackoff(backoff),
		httptransport.WithMaxBackoff(backoff),
	)
	require.NoError(t, err)

	_, err = transport.Invoke(context.Background(), "GetLong", getLongInput(t, reg, 42))
	require.Error(t, err)
	_, isTransport := errors.AsTransportError(err)
	assert.True(t, isTransport)
	assert.Equal(t, 2, n)
}

func TestInvokeSnappyCompression(t *testing.T) {
	reg := newGetLongRegistry(t)
	server := httptest.NewServer(http.HandlerFunc(func(rw http.ResponseWriter, req *http.Request) {
		assert.Equal(t, "snappy", req.Header.Get("Content-Encoding"))
		body, err := io.ReadAll(snappy.NewReader(req.Body))
		require.NoError(t, err)
		assert.JSONEq(t, `{"value":42}`, string(body))

		rw.Header().Set("Content-Type", "application/json")
		rw.Header().Set("Content-Encoding", "snappy")
		sw := snappy.NewBufferedWriter(rw)
		_, _ = sw.Write([]byte(`{"value":42}`))
		_ = sw.Close()
	}))
	defer server.Close()

	transport, err := httptransport.New(
		httptransport.WithRegistry(reg),
		httptransport.WithBaseURIs([]string{server.URL}),
		httptransport.WithSnappyCompression(),
	)
	require.NoError(t, err)

	out, err := transport.Invoke(context.Background(), "GetLong", getLongInput(t, reg, 42))
	require.NoError(t, err)
	got, ok := out.Field("value")
	require.True(t, ok)
	gotLong, _ := got.AsLong()
	assert.Equal(t, int64(42), gotLong)
}

func TestInvokeUnknownOperation(t *testing.T) {
	reg := newGetLongRegistry(t)
	transport, err := httptransport.New(
		httptransport.WithRegistry(reg),
		httptransport.WithBaseURIs([]string{"http://localhost:0"}),
	)
	require.NoError(t, err)

	_, err = transport.Invoke(context.Background(), "NoSuchOperation", getLongInput(t, reg, 1))
	require.Error(t, err)
	_, isTransport := errors.AsTransportError(err)
	assert.True(t, isTransport)
}

func TestNewValidation(t *testing.T) {
	reg := newGetLongRegistry(t)

	_, err := httptransport.New(httptransport.WithBaseURIs([]string{"http://localhost:8080"}))
	require.Error(t, err)

	_, err = httptransport.New(httptransport.WithRegistry(reg))
	require.Error(t, err)

	unfrozen := shape.NewRegistry()
	_, err = httptransport.New(
		httptransport.WithRegistry(unfrozen),
		httptransport.WithBaseURIs([]string{"http://localhost:8080"}),
	)
	require.Error(t, err)
}

func TestReadConfig(t *testing.T) {
	cfg, err := httptransport.ReadConfig(strings.NewReader(`
uris:
  - http://localhost:8080
max-attempts: 2
compress-snappy: true
`))
	require.NoError(t, err)
	assert.Equal(t, []string{"http://localhost:8080"}, cfg.URIs)
	require.NotNil(t, cfg.MaxAttempts)
	assert.Equal(t, 2, *cfg.MaxAttempts)
	assert.True(t, cfg.CompressSnappy)

	_, err = httptransport.ReadConfig(strings.NewReader(`uris: []`))
	require.Error(t, err)
}

func TestMarshaledConfigRoundTrip(t *testing.T) {
	cfg, err := httptransport.ReadConfig(strings.NewReader(`
uris:
  - http://localhost:8080
`))
	require.NoError(t, err)
	data, err := json.Marshal(cfg)
	require.NoError(t, err)
	assert.Contains(t, string(data), "http://localhost:8080")
}
