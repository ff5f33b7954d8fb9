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

	"axonflow/connector-bigquery/base"
)

// ListDatasets enumerates the datasets of a project in service order.
func (c *Connector) ListDatasets(ctx context.Context, projectID string) ([]DatasetSummary, error) {
	const op = "ListDatasets"

	svc, err := c.session(ctx, op, projectID)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	res, err := svc.Datasets.List(projectID).Context(ctx).Do()
	c.GetMetrics().RecordRead(time.Since(start), err)

	if err != nil {
		return nil, base.NewOperationError(c.Name(), op, projectID, "listing datasets failed", err)
	}

	datasets := make([]DatasetSummary, 0, len(res.Datasets))
	for _, d := range res.Datasets {
		summary := DatasetSummary{
			ID:           d.Id,
			FriendlyName: d.FriendlyName,
		}
		if d.DatasetReference != nil {
			summary.ProjectID = d.DatasetReference.ProjectId
			summary.DatasetID = d.DatasetReference.DatasetId
		}
		datasets = append(datasets, summary)
	}
	return datasets, nil
}

// ListProjects enumerates the projects the session's identity can
// see, in service order.
func (c *Connector) ListProjects(ctx context.Context) ([]ProjectSummary, error) {
	const op = "ListProjects"

	svc, err := c.session(ctx, op, "")
	if err != nil {
		return nil, err
	}

	start := time.Now()
	res, err := svc.Projects.List().Context(ctx).Do()
	c.GetMetrics().RecordRead(time.Since(start), err)

	if err != nil {
		return nil, base.NewOperationError(c.Name(), op, "", "listing projects failed", err)
	}

	projects := make([]ProjectSummary, 0, len(res.Projects))
	for _, p := range res.Projects {
		projects = append(projects, ProjectSummary{
			ID:           p.Id,
			NumericID:    p.NumericId,
			FriendlyName: p.FriendlyName,
		})
	}
	return projects, nil
}
