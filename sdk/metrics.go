// Copyright 2025 AxonFlow
// SPDX-License-Identifier: BUSL-1.1
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package sdk

import (
	"sync"
	"sync/atomic"
	"time"
)

// ConnectorMetrics tracks metrics for a connector. Reads cover the
// list operations, writes cover insert/create/delete, refreshes count
// token-exchange round trips.
type ConnectorMetrics struct {
	connectorType string

	// Counters
	readsTotal       int64
	writesTotal      int64
	refreshesTotal   int64
	errorsTotal      int64
	connectsTotal    int64
	disconnectsTotal int64

	// Durations (nanoseconds)
	readDurationTotal  int64
	writeDurationTotal int64
	readCount          int64
	writeCount         int64

	readLatencies  *LatencyHistogram
	writeLatencies *LatencyHistogram
}

// NewConnectorMetrics creates a new metrics collector
func NewConnectorMetrics(connectorType string) *ConnectorMetrics {
	return &ConnectorMetrics{
		connectorType:  connectorType,
		readLatencies:  NewLatencyHistogram(),
		writeLatencies: NewLatencyHistogram(),
	}
}

// RecordRead records a read (list) operation
func (m *ConnectorMetrics) RecordRead(duration time.Duration, err error) {
	atomic.AddInt64(&m.readsTotal, 1)
	atomic.AddInt64(&m.readDurationTotal, int64(duration))
	atomic.AddInt64(&m.readCount, 1)

	if err != nil {
		atomic.AddInt64(&m.errorsTotal, 1)
	}

	m.readLatencies.Record(duration)
}

// RecordWrite records a write (insert/create/delete) operation
func (m *ConnectorMetrics) RecordWrite(duration time.Duration, err error) {
	atomic.AddInt64(&m.writesTotal, 1)
	atomic.AddInt64(&m.writeDurationTotal, int64(duration))
	atomic.AddInt64(&m.writeCount, 1)

	if err != nil {
		atomic.AddInt64(&m.errorsTotal, 1)
	}

	m.writeLatencies.Record(duration)
}

// RecordRefresh records a credential token-exchange round trip
func (m *ConnectorMetrics) RecordRefresh(err error) {
	atomic.AddInt64(&m.refreshesTotal, 1)
	if err != nil {
		atomic.AddInt64(&m.errorsTotal, 1)
	}
}

// RecordConnect records a connect operation
func (m *ConnectorMetrics) RecordConnect() {
	atomic.AddInt64(&m.connectsTotal, 1)
}

// RecordDisconnect records a disconnect operation
func (m *ConnectorMetrics) RecordDisconnect() {
	atomic.AddInt64(&m.disconnectsTotal, 1)
}

// MetricsSnapshot is a point-in-time view of connector metrics.
type MetricsSnapshot struct {
	ConnectorType    string
	ReadsTotal       int64
	WritesTotal      int64
	RefreshesTotal   int64
	ErrorsTotal      int64
	ConnectsTotal    int64
	DisconnectsTotal int64
	AvgReadLatency   time.Duration
	AvgWriteLatency  time.Duration
}

// GetStats returns current metrics
func (m *ConnectorMetrics) GetStats() *MetricsSnapshot {
	readCount := atomic.LoadInt64(&m.readCount)
	writeCount := atomic.LoadInt64(&m.writeCount)

	var avgRead, avgWrite time.Duration
	if readCount > 0 {
		avgRead = time.Duration(atomic.LoadInt64(&m.readDurationTotal) / readCount)
	}
	if writeCount > 0 {
		avgWrite = time.Duration(atomic.LoadInt64(&m.writeDurationTotal) / writeCount)
	}

	return &MetricsSnapshot{
		ConnectorType:    m.connectorType,
		ReadsTotal:       atomic.LoadInt64(&m.readsTotal),
		WritesTotal:      atomic.LoadInt64(&m.writesTotal),
		RefreshesTotal:   atomic.LoadInt64(&m.refreshesTotal),
		ErrorsTotal:      atomic.LoadInt64(&m.errorsTotal),
		ConnectsTotal:    atomic.LoadInt64(&m.connectsTotal),
		DisconnectsTotal: atomic.LoadInt64(&m.disconnectsTotal),
		AvgReadLatency:   avgRead,
		AvgWriteLatency:  avgWrite,
	}
}

// latencyBuckets are the histogram upper bounds.
var latencyBuckets = []time.Duration{
	1 * time.Millisecond,
	5 * time.Millisecond,
	10 * time.Millisecond,
	50 * time.Millisecond,
	100 * time.Millisecond,
	500 * time.Millisecond,
	1 * time.Second,
	5 * time.Second,
}

// LatencyHistogram is a simple fixed-bucket latency histogram.
type LatencyHistogram struct {
	mu     sync.Mutex
	counts []int64 // one per bucket, plus overflow
}

// NewLatencyHistogram creates an empty histogram.
func NewLatencyHistogram() *LatencyHistogram {
	return &LatencyHistogram{counts: make([]int64, len(latencyBuckets)+1)}
}

// Record adds an observation.
func (h *LatencyHistogram) Record(d time.Duration) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for i, upper := range latencyBuckets {
		if d <= upper {
			h.counts[i]++
			return
		}
	}
	h.counts[len(latencyBuckets)]++
}

// Counts returns a copy of the per-bucket counts. The last element is
// the overflow bucket.
func (h *LatencyHistogram) Counts() []int64 {
	h.mu.Lock()
	defer h.mu.Unlock()

	out := make([]int64, len(h.counts))
	copy(out, h.counts)
	return out
}
