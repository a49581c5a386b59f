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

package httptransport

import (
	"bytes"
	"crypto/tls"
	"net/http"
	"time"

	"github.com/palantir/pkg/bytesbuffers"
	"github.com/palantir/pkg/refreshable"
	"github.com/palantir/pkg/retry"
	werror "github.com/palantir/witchcraft-go-error"

	"github.com/palantir/shape-go-runtime/shape-go-client/shapeclient"
	"github.com/palantir/shape-go-runtime/shape-go-contract/errors"
	"github.com/palantir/shape-go-runtime/shape-go-contract/shape"
)

const (
	defaultMaxAttempts    = 4
	defaultInitialBackoff = 250 * time.Millisecond
	defaultMaxBackoff     = 2 * time.Second
	defaultRequestTimeout = 1 * time.Minute
)

// bufferPool is the subset of bytesbuffers.Pool the transport needs.
type bufferPool interface {
	Get() *bytes.Buffer
	Put(*bytes.Buffer)
}

type transportBuilder struct {
	Registry      *shape.Registry
	ErrorRegistry *errors.Registry
	HTTPClient    *http.Client
	TLSConfig     *tls.Config
	Timeout       time.Duration

	URIs           refreshable.StringSlice
	MaxAttempts    int
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
	BufferPool     bufferPool
	UserAgent      string
	CompressSnappy bool
}

// Param is a configuration parameter for building a transport.
type Param interface {
	apply(*transportBuilder) error
}

type paramFunc func(*transportBuilder) error

func (f paramFunc) apply(b *transportBuilder) error {
	return f(b)
}

// New builds an HTTP transport for use with shapeclient.NewClient. A shape
// registry and at least one base URI are required.
func New(params ...Param) (shapeclient.Transport, error) {
	b := &transportBuilder{
		MaxAttempts:    defaultMaxAttempts,
		InitialBackoff: defaultInitialBackoff,
		MaxBackoff:     defaultMaxBackoff,
		Timeout:        defaultRequestTimeout,
		UserAgent:      defaultUserAgent(),
	}
	for _, p := range params {
		if p == nil {
			continue
		}
		if err := p.apply(b); err != nil {
			return nil, err
		}
	}
	if b.Registry == nil {
		return nil, werror.Error("httptransport: shape registry is required, use WithRegistry()")
	}
	if b.URIs == nil {
		return nil, werror.Error("httptransport: base URIs are required, use WithBaseURIs()")
	}
	if b.ErrorRegistry == nil {
		b.ErrorRegistry = errors.NewRegistry(b.Registry)
	}
	if b.BufferPool == nil {
		b.BufferPool = bytesbuffers.NewSizedPool(1, 10)
	}
	if b.HTTPClient == nil {
		transport := http.DefaultTransport.(*http.Transport).Clone()
		if b.TLSConfig != nil {
			transport.TLSClientConfig = b.TLSConfig
		}
		b.HTTPClient = &http.Client{Transport: transport, Timeout: b.Timeout}
	}
	return &transportImpl{
		registry:      b.Registry,
		errorRegistry: b.ErrorRegistry,
		client:        b.HTTPClient,
		uris:          b.URIs.CurrentStringSlice,
		maxAttempts:   b.MaxAttempts,
		backoffOptions: []retry.Option{
			retry.WithInitialBackoff(b.InitialBackoff),
			retry.WithMaxBackoff(b.MaxBackoff),
		},
		bufferPool:     b.BufferPool,
		userAgent:      b.UserAgent,
		compressSnappy: b.CompressSnappy,
	}, nil
}

// WithRegistry sets the shape registry operations and payload shapes are
// resolved against. The registry must be frozen before building.
func WithRegistry(registry *shape.Registry) Param {
	return paramFunc(func(b *transportBuilder) error {
		if registry == nil {
			return werror.Error("httptransport: registry can not be nil")
		}
		if !registry.Frozen() {
			return werror.Error("httptransport: registry must be frozen before building a transport")
		}
		b.Registry = registry
		return nil
	})
}

// WithErrorRegistry sets the error shape registry used to decode structured
// error responses. When omitted, a registry backed by the shape registry with
// no named error shapes is used and all remote errors decode generically.
func WithErrorRegistry(registry *errors.Registry) Param {
	return paramFunc(func(b *transportBuilder) error {
		b.ErrorRegistry = registry
		return nil
	})
}

// WithBaseURIs sets the static base URIs requests are sent to.
func WithBaseURIs(uris []string) Param {
	return paramFunc(func(b *transportBuilder) error {
		if len(uris) == 0 {
			return werror.Error("httptransport: at least one base URI is required")
		}
		b.URIs = refreshable.NewStringSlice(refreshable.NewDefaultRefreshable(uris))
		return nil
	})
}

// WithRefreshableBaseURIs sets base URIs that update without rebuilding the
// transport.
func WithRefreshableBaseURIs(uris refreshable.StringSlice) Param {
	return paramFunc(func(b *transportBuilder) error {
		b.URIs = uris
		return nil
	})
}

// WithHTTPClient sets the underlying HTTP client. WithTLSConfig and
// WithRequestTimeout are ignored when a client is provided.
func WithHTTPClient(client *http.Client) Param {
	return paramFunc(func(b *transportBuilder) error {
		if client == nil {
			return werror.Error("httptransport: HTTP client can not be nil")
		}
		b.HTTPClient = client
		return nil
	})
}

// WithTLSConfig sets the TLS configuration of the default HTTP client. A nil
// config is a no-op.
func WithTLSConfig(cfg *tls.Config) Param {
	return paramFunc(func(b *transportBuilder) error {
		if cfg != nil {
			b.TLSConfig = cfg.Clone()
		}
		return nil
	})
}

// WithRequestTimeout sets the per-request timeout of the default HTTP client.
func WithRequestTimeout(timeout time.Duration) Param {
	return paramFunc(func(b *transportBuilder) error {
		b.Timeout = timeout
		return nil
	})
}

// WithMaxAttempts sets how many URIs are tried before an invocation fails
// with a transport error.
func WithMaxAttempts(attempts int) Param {
	return paramFunc(func(b *transportBuilder) error {
		if attempts <= 0 {
			return werror.Error("httptransport: max attempts must be positive",
				werror.SafeParam("attempts", attempts))
		}
		b.MaxAttempts = attempts
		return nil
	})
}

// WithInitialBackoff sets the backoff before the first retry.
func WithInitialBackoff(backoff time.Duration) Param {
	return paramFunc(func(b *transportBuilder) error {
		b.InitialBackoff = backoff
		return nil
	})
}

// WithMaxBackoff caps the exponential backoff between retries.
func WithMaxBackoff(backoff time.Duration) Param {
	return paramFunc(func(b *transportBuilder) error {
		b.MaxBackoff = backoff
		return nil
	})
}

// WithSnappyCompression enables snappy framing of request bodies and
// advertises snappy acceptance to the server.
func WithSnappyCompression() Param {
	return paramFunc(func(b *transportBuilder) error {
		b.CompressSnappy = true
		return nil
	})
}

// WithBufferPool sets the buffer pool used for encoding request bodies.
func WithBufferPool(pool bytesbuffers.Pool) Param {
	return paramFunc(func(b *transportBuilder) error {
		b.BufferPool = pool
		return nil
	})
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(userAgent string) Param {
	return paramFunc(func(b *transportBuilder) error {
		if userAgent == "" {
			return werror.Error("httptransport: user agent can not be empty")
		}
		b.UserAgent = userAgent
		return nil
	})
}
