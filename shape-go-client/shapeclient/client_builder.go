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
	werror "github.com/palantir/witchcraft-go-error"

	"github.com/palantir/shape-go-runtime/shape-go-contract/shape"
)

type clientBuilder struct {
	Registry  *shape.Registry
	Transport Transport

	ServiceName         string
	DisableMetrics      bool
	MetricsTagProviders []TagsProvider
}

// ClientParam configures a client at construction time.
type ClientParam interface {
	apply(*clientBuilder) error
}

type clientParamFunc func(*clientBuilder) error

func (f clientParamFunc) apply(b *clientBuilder) error {
	return f(b)
}

// WithRegistry sets the frozen shape registry the client resolves operations
// against. Required.
func WithRegistry(reg *shape.Registry) ClientParam {
	return clientParamFunc(func(b *clientBuilder) error {
		b.Registry = reg
		return nil
	})
}

// WithTransport sets the transport collaborator. Required.
func WithTransport(t Transport) ClientParam {
	return clientParamFunc(func(b *clientBuilder) error {
		b.Transport = t
		return nil
	})
}

// WithServiceName tags invocation metrics with the remote service's name.
func WithServiceName(serviceName string) ClientParam {
	return clientParamFunc(func(b *clientBuilder) error {
		b.ServiceName = serviceName
		return nil
	})
}

// WithDisableMetrics turns off invocation metrics.
func WithDisableMetrics() ClientParam {
	return clientParamFunc(func(b *clientBuilder) error {
		b.DisableMetrics = true
		return nil
	})
}

// WithMetricsTagProvider adds tags to every invocation metric emitted by the
// client.
func WithMetricsTagProvider(provider TagsProvider) ClientParam {
	return clientParamFunc(func(b *clientBuilder) error {
		b.MetricsTagProviders = append(b.MetricsTagProviders, provider)
		return nil
	})
}

// NewClient returns a configured client ready for use.
func NewClient(params ...ClientParam) (Client, error) {
	b := &clientBuilder{}
	for _, p := range params {
		if p == nil {
			continue
		}
		if err := p.apply(b); err != nil {
			return nil, err
		}
	}
	if b.Registry == nil {
		return nil, werror.Error("shapeclient: use WithRegistry() to provide a shape registry")
	}
	if !b.Registry.Frozen() {
		return nil, werror.Error("shapeclient: registry must be frozen before client construction")
	}
	if b.Transport == nil {
		return nil, werror.Error("shapeclient: use WithTransport() to provide a transport")
	}
	return &clientImpl{
		registry:       b.Registry,
		transport:      b.Transport,
		serviceName:    b.ServiceName,
		disableMetrics: b.DisableMetrics,
		tagProviders:   b.MetricsTagProviders,
	}, nil
}
