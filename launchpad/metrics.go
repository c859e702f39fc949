// Copyright 2025 Blink Labs Software
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

package launchpad

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

const metricsNamespace = "mint_launchpad"

type metrics struct {
	provisionedTotal *prometheus.CounterVec
	failuresTotal    *prometheus.CounterVec
}

// newMetrics registers the launchpad counters with reg. Launchpads sharing a
// registerer share the counters already registered there.
func newMetrics(reg prometheus.Registerer) *metrics {
	return &metrics{
		provisionedTotal: registerCounterVec(
			reg,
			prometheus.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: metricsNamespace,
					Name:      "provisioned_total",
					Help:      "Number of mints provisioned, by extension",
				},
				[]string{"extension"},
			),
		),
		failuresTotal: registerCounterVec(
			reg,
			prometheus.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: metricsNamespace,
					Name:      "failures_total",
					Help:      "Number of failed provisioning units, by error kind",
				},
				[]string{"kind"},
			),
		),
	}
}

func registerCounterVec(
	reg prometheus.Registerer,
	c *prometheus.CounterVec,
) *prometheus.CounterVec {
	err := reg.Register(c)
	if err == nil {
		return c
	}
	var are prometheus.AlreadyRegisteredError
	if errors.As(err, &are) {
		if existing, ok := are.ExistingCollector.(*prometheus.CounterVec); ok {
			return existing
		}
	}
	panic(err)
}

func (m *metrics) provisioned(tag ExtensionTag) {
	m.provisionedTotal.WithLabelValues(tag.String()).Inc()
}

func (m *metrics) failure(err error) {
	kind := KindOf(err)
	if kind == "" {
		kind = "unclassified"
	}
	m.failuresTotal.WithLabelValues(string(kind)).Inc()
}
