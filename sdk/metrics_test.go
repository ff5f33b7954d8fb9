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
	"errors"
	"testing"
	"time"
)

func TestConnectorMetrics(t *testing.T) {
	m := NewConnectorMetrics("bigquery")

	m.RecordConnect()
	m.RecordRead(10*time.Millisecond, nil)
	m.RecordRead(20*time.Millisecond, errors.New("boom"))
	m.RecordWrite(40*time.Millisecond, nil)
	m.RecordRefresh(nil)
	m.RecordRefresh(errors.New("exchange failed"))
	m.RecordDisconnect()

	stats := m.GetStats()

	if stats.ConnectorType != "bigquery" {
		t.Errorf("ConnectorType = %s", stats.ConnectorType)
	}
	if stats.ReadsTotal != 2 {
		t.Errorf("ReadsTotal = %d, want 2", stats.ReadsTotal)
	}
	if stats.WritesTotal != 1 {
		t.Errorf("WritesTotal = %d, want 1", stats.WritesTotal)
	}
	if stats.RefreshesTotal != 2 {
		t.Errorf("RefreshesTotal = %d, want 2", stats.RefreshesTotal)
	}
	if stats.ErrorsTotal != 2 {
		t.Errorf("ErrorsTotal = %d, want 2", stats.ErrorsTotal)
	}
	if stats.ConnectsTotal != 1 || stats.DisconnectsTotal != 1 {
		t.Errorf("Connects/Disconnects = %d/%d, want 1/1", stats.ConnectsTotal, stats.DisconnectsTotal)
	}
	if stats.AvgReadLatency != 15*time.Millisecond {
		t.Errorf("AvgReadLatency = %v, want 15ms", stats.AvgReadLatency)
	}
	if stats.AvgWriteLatency != 40*time.Millisecond {
		t.Errorf("AvgWriteLatency = %v, want 40ms", stats.AvgWriteLatency)
	}
}

func TestLatencyHistogram(t *testing.T) {
	h := NewLatencyHistogram()

	h.Record(500 * time.Microsecond) // bucket 0 (<=1ms)
	h.Record(3 * time.Millisecond)   // bucket 1 (<=5ms)
	h.Record(time.Minute)            // overflow

	counts := h.Counts()
	if len(counts) != len(latencyBuckets)+1 {
		t.Fatalf("expected %d buckets, got %d", len(latencyBuckets)+1, len(counts))
	}
	if counts[0] != 1 || counts[1] != 1 {
		t.Errorf("unexpected low bucket counts: %v", counts)
	}
	if counts[len(counts)-1] != 1 {
		t.Errorf("expected one overflow observation: %v", counts)
	}
}
