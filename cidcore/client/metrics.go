/*
   Copyright 2025 The DIRPX Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package client

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus instruments the client reports into.
// Metrics are optional: a nil *Metrics disables reporting entirely, and
// every observer method is safe to call on nil.
type Metrics struct {
	// RequestLatency tracks end-to-end request duration by HTTP method.
	RequestLatency *prometheus.HistogramVec

	// RequestErrors counts non-2xx responses by status code.
	RequestErrors *prometheus.CounterVec
}

// NewMetrics creates and registers the client metrics on the default
// Prometheus registry. Call it at most once per process; registering
// the same metric names twice panics by Prometheus design.
func NewMetrics() *Metrics {
	return &Metrics{
		RequestLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "callerid_client_request_duration_seconds",
			Help:    "Duration of API requests by HTTP method",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"method"}),

		RequestErrors: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "callerid_client_request_errors_total",
			Help: "Total non-2xx API responses by status code",
		}, []string{"status"}),
	}
}

// ObserveRequest records the duration of one API request.
func (m *Metrics) ObserveRequest(method string, d time.Duration) {
	if m != nil {
		m.RequestLatency.WithLabelValues(method).Observe(d.Seconds())
	}
}

// IncrementError records a non-2xx API response.
func (m *Metrics) IncrementError(statusCode int) {
	if m != nil {
		m.RequestErrors.WithLabelValues(strconv.Itoa(statusCode)).Inc()
	}
}
