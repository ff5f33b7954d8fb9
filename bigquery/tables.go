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
)

// CreateTable creates the referenced table with the given schema.
// Creating a table that already exists is an error; the service
// reports it and the error passes through wrapped.
func (c *Connector) CreateTable(ctx context.Context, ref TableReference, fields []Field) error {
	const op = "CreateTable"

	svc, err := c.session(ctx, op, ref.String())
	if err != nil {
		return err
	}

	schema := &bqapi.TableSchema{
		Fields: make([]*bqapi.TableFieldSchema, 0, len(fields)),
	}
	for _, f := range fields {
		schema.Fields = append(schema.Fields, &bqapi.TableFieldSchema{
			Name:        f.Name,
			Type:        f.Type,
			Mode:        f.Mode,
			Description: f.Description,
		})
	}

	tbl := &bqapi.Table{
		TableReference: &bqapi.TableReference{
			ProjectId: ref.ProjectID,
			DatasetId: ref.DatasetID,
			TableId:   ref.TableID,
		},
		Schema: schema,
	}

	start := time.Now()
	_, err = svc.Tables.Insert(ref.ProjectID, ref.DatasetID, tbl).Context(ctx).Do()
	c.GetMetrics().RecordWrite(time.Since(start), err)

	if err != nil {
		return base.NewOperationError(c.Name(), op, ref.String(), "creating table failed", err)
	}

	c.slog.Info(c.tenantID(), op, "Table created", map[string]interface{}{
		"table":       ref.String(),
		"field_count": len(fields),
	})
	return nil
}

// DeleteTable deletes the referenced table. Deleting a table that does
// not exist is an error.
func (c *Connector) DeleteTable(ctx context.Context, ref TableReference) error {
	const op = "DeleteTable"

	svc, err := c.session(ctx, op, ref.String())
	if err != nil {
		return err
	}

	start := time.Now()
	err = svc.Tables.Delete(ref.ProjectID, ref.DatasetID, ref.TableID).Context(ctx).Do()
	c.GetMetrics().RecordWrite(time.Since(start), err)

	if err != nil {
		return base.NewOperationError(c.Name(), op, ref.String(), "deleting table failed", err)
	}

	c.slog.Info(c.tenantID(), op, "Table deleted", map[string]interface{}{
		"table": ref.String(),
	})
	return nil
}

// ListTables enumerates the tables of a dataset in service order.
func (c *Connector) ListTables(ctx context.Context, projectID, datasetID string) ([]TableSummary, error) {
	const op = "ListTables"
	target := projectID + "." + datasetID

	svc, err := c.session(ctx, op, target)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	res, err := svc.Tables.List(projectID, datasetID).Context(ctx).Do()
	c.GetMetrics().RecordRead(time.Since(start), err)

	if err != nil {
		return nil, base.NewOperationError(c.Name(), op, target, "listing tables failed", err)
	}

	tables := make([]TableSummary, 0, len(res.Tables))
	for _, t := range res.Tables {
		summary := TableSummary{
			ID:           t.Id,
			Type:         t.Type,
			FriendlyName: t.FriendlyName,
		}
		if t.TableReference != nil {
			summary.Reference = TableReference{
				ProjectID: t.TableReference.ProjectId,
				DatasetID: t.TableReference.DatasetId,
				TableID:   t.TableReference.TableId,
			}
		}
		tables = append(tables, summary)
	}
	return tables, nil
}

// ListTableFields returns the referenced table's schema as a flat
// field list. A table without a schema yields an empty list.
func (c *Connector) ListTableFields(ctx context.Context, ref TableReference) ([]Field, error) {
	const op = "ListTableFields"

	svc, err := c.session(ctx, op, ref.String())
	if err != nil {
		return nil, err
	}

	start := time.Now()
	tbl, err := svc.Tables.Get(ref.ProjectID, ref.DatasetID, ref.TableID).Context(ctx).Do()
	c.GetMetrics().RecordRead(time.Since(start), err)

	if err != nil {
		return nil, base.NewOperationError(c.Name(), op, ref.String(), "fetching table schema failed", err)
	}

	if tbl.Schema == nil {
		return []Field{}, nil
	}

	fields := make([]Field, 0, len(tbl.Schema.Fields))
	for _, f := range tbl.Schema.Fields {
		fields = append(fields, Field{
			Name:        f.Name,
			Type:        f.Type,
			Mode:        f.Mode,
			Description: f.Description,
		})
	}
	return fields, nil
}
