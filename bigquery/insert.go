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
	"context"
	"time"

	bqapi "google.golang.org/api/bigquery/v2"

	"axonflow/connector-bigquery/base"
	"axonflow/connector-bigquery/sdk"
)

// insertAllKind is the fixed discriminator the streaming insert
// request carries on the wire.
const insertAllKind = "bigquery#tableDataInsertAllRequest"

// InsertRows streams a batch of rows into the referenced table.
//
// Rows without an InsertID get one synthesized, unique within the
// batch, so the service can deduplicate redelivered batches. The
// service may accept a subset of rows: that outcome is data, not an
// error. Inspect InsertOutcome.RowErrors.
//
// An error return means the call itself failed (connectivity,
// authorization, rejected request). The session stays connected on
// warehouse failure; only a failed credential refresh closes it.
func (c *Connector) InsertRows(ctx context.Context, ref TableReference, batch InsertRowBatch, opts *InsertOptions) (*InsertOutcome, error) {
	const op = "InsertRows"

	svc, err := c.session(ctx, op, ref.String())
	if err != nil {
		return nil, err
	}

	if opts != nil && opts.Throttle > 0 {
		if err := sdk.Throttle(ctx, opts.Throttle); err != nil {
			return nil, base.NewOperationError(c.Name(), op, ref.String(), "throttle interrupted", err)
		}
	}

	req := &bqapi.TableDataInsertAllRequest{
		Kind: insertAllKind,
		Rows: requestRows(batch),
	}
	if opts != nil {
		req.SkipInvalidRows = opts.SkipInvalidRows
		req.IgnoreUnknownValues = opts.IgnoreUnknownValues
	}

	start := time.Now()
	res, err := svc.Tabledata.InsertAll(ref.ProjectID, ref.DatasetID, ref.TableID, req).Context(ctx).Do()
	c.GetMetrics().RecordWrite(time.Since(start), err)

	if err != nil {
		c.slog.ErrorWithCause(c.tenantID(), op, "Streaming insert failed", err, map[string]interface{}{
			"table":     ref.String(),
			"row_count": len(batch),
		})
		return nil, base.NewOperationError(c.Name(), op, ref.String(), "streaming insert failed", err)
	}

	outcome := &InsertOutcome{Raw: res}
	for _, ie := range res.InsertErrors {
		outcome.RowErrors = append(outcome.RowErrors, RowError{
			Index:  ie.Index,
			Errors: ie.Errors,
		})
	}

	if !outcome.Accepted() {
		c.slog.Warn(c.tenantID(), op, "Batch partially rejected", map[string]interface{}{
			"table":         ref.String(),
			"row_count":     len(batch),
			"rejected_rows": len(outcome.RowErrors),
		})
	}

	return outcome, nil
}

// ListRows reads the referenced table's rows in service order. The
// rows are positional cells resolved against the table schema; they
// pass through unmodified.
func (c *Connector) ListRows(ctx context.Context, ref TableReference) ([]*bqapi.TableRow, error) {
	const op = "ListRows"

	svc, err := c.session(ctx, op, ref.String())
	if err != nil {
		return nil, err
	}

	start := time.Now()
	res, err := svc.Tabledata.List(ref.ProjectID, ref.DatasetID, ref.TableID).Context(ctx).Do()
	c.GetMetrics().RecordRead(time.Since(start), err)

	if err != nil {
		return nil, base.NewOperationError(c.Name(), op, ref.String(), "listing table data failed", err)
	}
	return res.Rows, nil
}
