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

// Package httptransport is the HTTP/JSON reference implementation of the
// shapeclient.Transport collaborator. It owns everything the dispatcher
// deliberately does not: wire encoding, connectivity retry with backoff
// across base URIs, trace header propagation and remote error decoding.
package httptransport

import (
	"bytes"
	"context"
	"io"
	"math/rand"
	"net/http"
	"net/url"
	"strings"

	"github.com/palantir/pkg/retry"
	werror "github.com/palantir/witchcraft-go-error"
	"github.com/palantir/witchcraft-go-logging/wlog/svclog/svc1log"
	"github.com/palantir/witchcraft-go-tracing/wtracing"

	"github.com/palantir/shape-go-runtime/shape-go-client/shapeclient"
	"github.com/palantir/shape-go-runtime/shape-go-contract/codecs"
	"github.com/palantir/shape-go-runtime/shape-go-contract/errors"
	"github.com/palantir/shape-go-runtime/shape-go-contract/shape"
	"github.com/palantir/shape-go-runtime/shape-go-contract/value"
)

const (
	traceIDHeaderKey    = "X-B3-TraceId"
	contentEncodingKey  = "Content-Encoding"
	acceptEncodingKey   = "Accept-Encoding"
	snappyEncoding      = "snappy"
	operationPathPrefix = "/invoke/"
)

type transportImpl struct {
	registry      *shape.Registry
	errorRegistry *errors.Registry
	client        *http.Client

	uris           func() []string
	maxAttempts    int
	backoffOptions []retry.Option
	bufferPool     bufferPool
	userAgent      string
	compressSnappy bool
}

var _ shapeclient.Transport = (*transportImpl)(nil)

// Invoke performs the remote call for one operation: encode the input, walk
// the configured URIs with backoff on connectivity failures, and decode the
// payload the service answered with. A response of a declared error shape is
// returned as a *errors.DomainError carrying the remotely minted instance id;
// the dispatcher passes it through untouched. Retry here covers connectivity
// and throttling only; a decoded payload of any shape ends the loop.
func (t *transportImpl) Invoke(ctx context.Context, operation string, input value.Value) (value.Value, error) {
	op, err := t.registry.ResolveOperation(operation)
	if err != nil {
		return value.Value{}, errors.NewTransportError(werror.WrapWithContextParams(ctx, err, "operation is not registered"))
	}
	body, err := t.encodeBody(input)
	if err != nil {
		return value.Value{}, errors.NewTransportError(werror.WrapWithContextParams(ctx, err, "failed to encode operation input"))
	}

	uris := t.uris()
	if len(uris) == 0 {
		return value.Value{}, errors.NewTransportError(werror.ErrorWithContextParams(ctx, "no base URIs configured"))
	}
	offset := rand.Intn(len(uris))
	retrier := retry.Start(ctx, t.backoffOptions...)

	var lastErr error
	for i := 0; i < t.maxAttempts; i++ {
		uri := uris[(offset+i)%len(uris)]
		out, retryable, err := t.invokeOnce(ctx, uri, op, body)
		if err == nil {
			return out, nil
		}
		if !retryable {
			return value.Value{}, err
		}
		lastErr = err
		if i+1 == t.maxAttempts {
			break
		}
		svc1log.FromContext(ctx).Debug("Retrying operation on next URI.",
			svc1log.SafeParam("operation", operation), svc1log.Stacktrace(err))
		if !retrier.Next() {
			// context cancelled or deadline exceeded during backoff
			return value.Value{}, errors.NewTimeoutError(ctx.Err())
		}
	}
	return value.Value{}, errors.NewTransportError(werror.WrapWithContextParams(ctx, lastErr, "could not find live server",
		werror.SafeParam("attempts", t.maxAttempts)))
}

// invokeOnce performs a single HTTP exchange. The middle return reports
// whether the failure is worth another URI: request transport errors and
// 429/503 responses are, decoded payloads and structured errors are not.
func (t *transportImpl) invokeOnce(ctx context.Context, baseURI string, op *shape.Operation, body []byte) (value.Value, bool, error) {
	req, err := t.newRequest(ctx, baseURI, op.ShapeName(), body)
	if err != nil {
		return value.Value{}, false, errors.NewTransportError(err)
	}
	resp, err := t.client.Do(req)
	if err != nil {
		return value.Value{}, true, errors.NewTransportError(unwrapURLError(err))
	}
	defer drainBody(resp)

	switch {
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode == http.StatusServiceUnavailable:
		return value.Value{}, true, errors.NewTransportError(werror.ErrorWithContextParams(ctx, "server is throttled or unavailable",
			werror.SafeParam("statusCode", resp.StatusCode)))
	case resp.StatusCode >= http.StatusBadRequest:
		return value.Value{}, false, t.decodeError(ctx, op, resp)
	}

	reader, err := t.responseReader(ctx, resp)
	if err != nil {
		return value.Value{}, false, err
	}
	out, err := codecs.DecodeValue(t.registry, op.OutputRef(), reader)
	if err != nil {
		return value.Value{}, false, errors.NewTransportError(werror.WrapWithContextParams(ctx, err, "failed to decode operation output",
			werror.SafeParam("operation", op.ShapeName())))
	}
	return out, false, nil
}

func (t *transportImpl) newRequest(ctx context.Context, baseURI, operation string, body []byte) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		strings.TrimSuffix(baseURI, "/")+operationPathPrefix+url.PathEscape(operation), bytes.NewReader(body))
	if err != nil {
		return nil, werror.WrapWithContextParams(ctx, err, "failed to build HTTP request")
	}
	req.Header.Set("Content-Type", codecs.JSON.ContentType())
	req.Header.Set("Accept", codecs.JSON.Accept())
	req.Header.Set("User-Agent", t.userAgent)
	if t.compressSnappy {
		req.Header.Set(contentEncodingKey, snappyEncoding)
		req.Header.Set(acceptEncodingKey, snappyEncoding)
	}
	if traceID := wtracing.TraceIDFromContext(ctx); traceID != "" {
		req.Header.Set(traceIDHeaderKey, string(traceID))
	}
	return req, nil
}

// decodeError turns a structured error response into either a value of a
// declared error shape, handed back as the payload for the dispatcher to map,
// or a transport error for everything else.
func (t *transportImpl) decodeError(ctx context.Context, op *shape.Operation, resp *http.Response) error {
	reader, err := t.responseReader(ctx, resp)
	if err != nil {
		return err
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return errors.NewTransportError(werror.WrapWithContextParams(ctx, err, "failed to read error response"))
	}
	typed, err := t.errorRegistry.UnmarshalJSONError(ctx, data)
	if err != nil {
		return errors.NewTransportError(werror.WrapWithContextParams(ctx, err, "failed to decode error response",
			werror.SafeParam("statusCode", resp.StatusCode)))
	}
	if de, ok := typed.(*errors.DomainError); ok && op.DeclaresError(de.Name()) {
		return de
	}
	return errors.NewTransportError(werror.WrapWithContextParams(ctx, typed, "server returned an error the operation does not declare",
		werror.SafeParam("operation", op.ShapeName()),
		werror.SafeParam("errorShape", typed.Name()),
		werror.SafeParam("statusCode", resp.StatusCode)))
}

func (t *transportImpl) encodeBody(input value.Value) ([]byte, error) {
	buf := t.bufferPool.Get()
	defer t.bufferPool.Put(buf)
	if err := codecs.EncodeValue(buf, input); err != nil {
		return nil, err
	}
	if !t.compressSnappy {
		return append([]byte(nil), buf.Bytes()...), nil
	}
	framed, err := codecs.SNAPPY(codecs.Binary).Marshal(bytes.NewReader(buf.Bytes()))
	if err != nil {
		return nil, werror.Wrap(err, "failed to compress request body")
	}
	return framed, nil
}

// responseReader unwraps the transfer encoding. Snappy-framed bodies are
// decompressed eagerly since the body is fully consumed either way.
func (t *transportImpl) responseReader(ctx context.Context, resp *http.Response) (io.Reader, error) {
	if resp.Header.Get(contentEncodingKey) != snappyEncoding {
		return resp.Body, nil
	}
	var buf bytes.Buffer
	if err := codecs.SNAPPY(codecs.Binary).Decode(resp.Body, &buf); err != nil {
		return nil, errors.NewTransportError(werror.WrapWithContextParams(ctx, err, "failed to decompress response body"))
	}
	return &buf, nil
}

// drainBody reads the remainder of the response body so the connection can be
// reused, then closes it.
func drainBody(resp *http.Response) {
	if resp == nil || resp.Body == nil {
		return
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()
}

// unwrapURLError converts a *url.Error to a werror so parameters on the
// underlying error are not lost. All errors from the stdlib client.Do are
// wrapped in *url.Error.
func unwrapURLError(respErr error) error {
	urlErr, ok := respErr.(*url.Error)
	if !ok {
		return respErr
	}
	params := []werror.Param{werror.SafeParam("requestMethod", urlErr.Op)}
	if parsedURL, _ := url.Parse(urlErr.URL); parsedURL != nil {
		params = append(params,
			werror.SafeParam("requestHost", parsedURL.Host),
			werror.UnsafeParam("requestPath", parsedURL.Path))
	}
	return werror.Wrap(urlErr.Err, "httptransport request failed", params...)
}
