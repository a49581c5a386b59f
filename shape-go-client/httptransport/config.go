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
	"io"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/palantir/pkg/tlsconfig"
	werror "github.com/palantir/witchcraft-go-error"

	"github.com/palantir/shape-go-runtime/shape-go-contract/codecs"
)

// TransportConfig is the file-based configuration for a transport. Values
// that are unset keep the built-in defaults. Use WithConfig to apply it.
type TransportConfig struct {
	// URIs is the list of base URIs requests are sent to.
	URIs []string `json:"uris" yaml:"uris" validate:"min=1,dive,url"`
	// MaxAttempts bounds how many URIs are tried per invocation.
	MaxAttempts *int `json:"max-attempts,omitempty" yaml:"max-attempts,omitempty" validate:"omitempty,min=1"`
	// InitialBackoff is the delay before the first retry. It doubles on each
	// subsequent retry, capped at MaxBackoff.
	InitialBackoff *time.Duration `json:"initial-backoff,omitempty" yaml:"initial-backoff,omitempty"`
	// MaxBackoff caps the delay between retries.
	MaxBackoff *time.Duration `json:"max-backoff,omitempty" yaml:"max-backoff,omitempty"`
	// RequestTimeout bounds a single HTTP exchange.
	RequestTimeout *time.Duration `json:"request-timeout,omitempty" yaml:"request-timeout,omitempty"`
	// CompressSnappy enables snappy framing of request bodies.
	CompressSnappy bool `json:"compress-snappy,omitempty" yaml:"compress-snappy,omitempty"`
	// Security configures TLS. File paths are absolute or relative to the
	// process working directory.
	Security SecurityConfig `json:"security,omitempty" yaml:"security,omitempty"`
}

// SecurityConfig configures client TLS from PEM files on disk.
type SecurityConfig struct {
	CAFiles  []string `json:"ca-files,omitempty" yaml:"ca-files,omitempty" validate:"dive,file"`
	CertFile string   `json:"cert-file,omitempty" yaml:"cert-file,omitempty" validate:"omitempty,file"`
	KeyFile  string   `json:"key-file,omitempty" yaml:"key-file,omitempty" validate:"omitempty,file"`

	// InsecureSkipVerify disables server certificate verification. Only for
	// clients that establish trust some other way.
	InsecureSkipVerify bool `json:"insecure-skip-verify,omitempty" yaml:"insecure-skip-verify,omitempty"`
}

// ReadConfig decodes a TransportConfig from YAML and validates it.
func ReadConfig(r io.Reader) (TransportConfig, error) {
	var cfg TransportConfig
	if err := codecs.YAML.Decode(r, &cfg); err != nil {
		return TransportConfig{}, werror.Wrap(err, "failed to decode transport configuration")
	}
	if err := validator.New().Struct(cfg); err != nil {
		return TransportConfig{}, werror.Wrap(err, "invalid transport configuration")
	}
	return cfg, nil
}

// WithConfig applies a TransportConfig. Params placed after WithConfig
// override the values it sets.
func WithConfig(cfg TransportConfig) Param {
	return paramFunc(func(b *transportBuilder) error {
		params, err := configToParams(cfg)
		if err != nil {
			return err
		}
		for _, p := range params {
			if err := p.apply(b); err != nil {
				return err
			}
		}
		return nil
	})
}

func configToParams(cfg TransportConfig) ([]Param, error) {
	var params []Param
	if len(cfg.URIs) > 0 {
		params = append(params, WithBaseURIs(cfg.URIs))
	}
	if cfg.MaxAttempts != nil {
		params = append(params, WithMaxAttempts(*cfg.MaxAttempts))
	}
	if cfg.InitialBackoff != nil {
		params = append(params, WithInitialBackoff(*cfg.InitialBackoff))
	}
	if cfg.MaxBackoff != nil {
		params = append(params, WithMaxBackoff(*cfg.MaxBackoff))
	}
	if cfg.RequestTimeout != nil {
		params = append(params, WithRequestTimeout(*cfg.RequestTimeout))
	}
	if cfg.CompressSnappy {
		params = append(params, WithSnappyCompression())
	}
	if tlsParam, err := securityToParam(cfg.Security); err != nil {
		return nil, err
	} else if tlsParam != nil {
		params = append(params, tlsParam)
	}
	return params, nil
}

func securityToParam(cfg SecurityConfig) (Param, error) {
	var tlsParams []tlsconfig.ClientParam
	if len(cfg.CAFiles) > 0 {
		tlsParams = append(tlsParams, tlsconfig.ClientRootCAFiles(cfg.CAFiles...))
	}
	if cfg.CertFile != "" && cfg.KeyFile != "" {
		tlsParams = append(tlsParams, tlsconfig.ClientKeyPairFiles(cfg.CertFile, cfg.KeyFile))
	}
	if len(tlsParams) == 0 && !cfg.InsecureSkipVerify {
		return nil, nil
	}
	tlsConfig, err := tlsconfig.NewClientConfig(tlsParams...)
	if err != nil {
		return nil, werror.Wrap(err, "failed to build TLS configuration")
	}
	tlsConfig.InsecureSkipVerify = cfg.InsecureSkipVerify
	return WithTLSConfig(tlsConfig), nil
}
