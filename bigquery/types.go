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

package bigquery

import (
	"time"

	"github.com/google/uuid"
	bqapi "google.golang.org/api/bigquery/v2"
)

// TableReference addresses one table. All three fields are
// caller-supplied and never defaulted. The ordering
// project/dataset/table is canonical and applied uniformly across
// every operation.
type TableReference struct {
	ProjectID string
	DatasetID string
	TableID   string
}

// String renders the reference as project.dataset.table.
func (r TableReference) String() string {
	return r.ProjectID + "." + r.DatasetID + "." + r.TableID
}

// Row is a single table row to stream-insert.
//
// InsertID is used for server-side deduplication of the streaming
// API's at-least-once delivery. Leave it empty to have one
// synthesized per row at insert time.
type Row struct {
	InsertID string
	JSON     map[string]interface{}
}

// InsertRowBatch is an ordered batch of rows for one streaming insert
// call.
type InsertRowBatch []Row

// InsertOptions carries the optional streaming-insert flags.
type InsertOptions struct {
	// SkipInvalidRows inserts all valid rows even if invalid rows
	// exist. By default an invalid row fails the entire request.
	SkipInvalidRows bool

	// IgnoreUnknownValues accepts rows containing values that do not
	// match the schema; the unknown values are dropped server-side.
	IgnoreUnknownValues bool

	// CreateDisposition and WriteDisposition are accepted for
	// configuration compatibility with load jobs. The streaming API
	// has no disposition semantics and they are not transmitted.
	CreateDisposition string
	WriteDisposition  string

	// Throttle pauses the calling goroutine for this long before the
	// outbound call. A local blocking delay with no memory across
	// calls, letting callers cap their own write rate.
	Throttle time.Duration
}

// RowError reports the service's rejection of one row within a batch.
// Index refers to the position in the InsertRowBatch that produced
// the outcome.
type RowError struct {
	Index  int64
	Errors []*bqapi.ErrorProto
}

// Reasons returns the rejection reason codes for this row.
func (e RowError) Reasons() []string {
	reasons := make([]string, 0, len(e.Errors))
	for _, ep := range e.Errors {
		if ep != nil {
			reasons = append(reasons, ep.Reason)
		}
	}
	return reasons
}

// InsertOutcome is the result of one streaming insert call. The
// service may accept a subset of rows: RowErrors then enumerates the
// rejected row indices with reasons, while the call itself succeeded.
// Whether partial acceptance is a failure is the caller's decision.
type InsertOutcome struct {
	// Raw is the unmodified service response.
	Raw *bqapi.TableDataInsertAllResponse

	// RowErrors enumerates rejected rows, in service order. Empty
	// means full-batch acceptance.
	RowErrors []RowError
}

// Accepted reports whether every row in the batch was accepted.
func (o *InsertOutcome) Accepted() bool {
	return len(o.RowErrors) == 0
}

// Field describes one column of a table schema.
type Field struct {
	Name        string
	Type        string
	Mode        string
	Description string
}

// TableSummary is one entry of a table listing.
type TableSummary struct {
	ID           string
	Reference    TableReference
	Type         string
	FriendlyName string
}

// DatasetSummary is one entry of a dataset listing.
type DatasetSummary struct {
	ID           string
	ProjectID    string
	DatasetID    string
	FriendlyName string
}

// ProjectSummary is one entry of a project listing.
type ProjectSummary struct {
	ID           string
	NumericID    uint64
	FriendlyName string
}

// requestRows converts a batch into wire rows, synthesizing a unique
// insert ID for every row that does not carry one. Two rows in the
// same batch never share a synthesized ID.
func requestRows(batch InsertRowBatch) []*bqapi.TableDataInsertAllRequestRows {
	rows := make([]*bqapi.TableDataInsertAllRequestRows, 0, len(batch))
	for _, r := range batch {
		insertID := r.InsertID
		if insertID == "" {
			insertID = uuid.NewString()
		}

		data := make(map[string]bqapi.JsonValue, len(r.JSON))
		for k, v := range r.JSON {
			data[k] = v
		}

		rows = append(rows, &bqapi.TableDataInsertAllRequestRows{
			InsertId: insertID,
			Json:     data,
		})
	}
	return rows
}
