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
	"time"

	"github.com/palantir/pkg/metrics"

	interrors "github.com/palantir/shape-go-runtime/internal/errors"
)

const (
	MetricTagServiceName = "service-name"

	metricClientInvocation = "client.invocation"
	metricTagOperation     = "operation"
	metricTagOutcome       = "outcome"
)

// A TagsProvider returns metric tags based on an invocation's operation name
// and dispatch result.
type TagsProvider interface {
	Tags(operation string, err error) metrics.Tags
}

// TagsProviderFunc is a convenience type that implements TagsProvider.
type TagsProviderFunc func(operation string, err error) metrics.Tags

func (f TagsProviderFunc) Tags(operation string, err error) metrics.Tags {
	return f(operation, err)
}

// instrument updates the "client.invocation" timer metric after every Send.
// Metrics are tagged with 'service-name', 'operation' and the dispatch
// 'outcome' family, plus anything the configured providers add.
func (c *clientImpl) instrument(ctx context.Context, operation string, duration time.Duration, err error) {
	tags := metrics.Tags{
		metrics.MustNewTag(metricTagOperation, operation),
		metrics.MustNewTag(metricTagOutcome, string(interrors.OutcomeOf(err))),
	}
	if c.serviceName != "" {
		tags = append(tags, metrics.MustNewTag(MetricTagServiceName, c.serviceName))
	}
	for _, provider := range c.tagProviders {
		tags = append(tags, provider.Tags(operation, err)...)
	}
	metrics.FromContext(ctx).Timer(metricClientInvocation, tags...).Update(duration / time.Microsecond)
}
