// Copyright 2025 AxonFlow
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

package bigquery

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"axonflow/connector-bigquery/sdk"
)

func TestListDatasets(t *testing.T) {
	c := connectedConnector(t, sdk.RoundTripFunc(func(req *http.Request) (*http.Response, error) {
		if !strings.HasSuffix(req.URL.Path, "/projects/acme/datasets") {
			t.Errorf("request path = %q", req.URL.Path)
		}
		return sdk.JSONResponse(http.StatusOK, `{
			"kind": "bigquery#datasetList",
			"datasets": [
				{"id": "acme:sales", "friendlyName": "Sales",
				 "datasetReference": {"projectId": "acme", "datasetId": "sales"}},
				{"id": "acme:marketing",
				 "datasetReference": {"projectId": "acme", "datasetId": "marketing"}}
			]
		}`), nil
	}))

	datasets, err := c.ListDatasets(context.Background(), "acme")
	if err != nil {
		t.Fatalf("ListDatasets failed: %v", err)
	}
	if len(datasets) != 2 {
		t.Fatalf("datasets = %d, want 2", len(datasets))
	}

	want := DatasetSummary{ID: "acme:sales", ProjectID: "acme", DatasetID: "sales", FriendlyName: "Sales"}
	if datasets[0] != want {
		t.Errorf("datasets[0] = %+v, want %+v", datasets[0], want)
	}
}

func TestListProjects(t *testing.T) {
	c := connectedConnector(t, sdk.RoundTripFunc(func(req *http.Request) (*http.Response, error) {
		return sdk.JSONResponse(http.StatusOK, `{
			"kind": "bigquery#projectList",
			"projects": [
				{"id": "acme-analytics", "numericId": "123456", "friendlyName": "Acme Analytics"},
				{"id": "acme-staging", "numericId": "789012", "friendlyName": "Acme Staging"}
			]
		}`), nil
	}))

	projects, err := c.ListProjects(context.Background())
	if err != nil {
		t.Fatalf("ListProjects failed: %v", err)
	}
	if len(projects) != 2 {
		t.Fatalf("projects = %d, want 2", len(projects))
	}

	want := ProjectSummary{ID: "acme-analytics", NumericID: 123456, FriendlyName: "Acme Analytics"}
	if projects[0] != want {
		t.Errorf("projects[0] = %+v, want %+v", projects[0], want)
	}
}

func TestListDatasetsEmpty(t *testing.T) {
	c := connectedConnector(t, sdk.RoundTripFunc(func(req *http.Request) (*http.Response, error) {
		return sdk.JSONResponse(http.StatusOK, `{"kind":"bigquery#datasetList"}`), nil
	}))

	datasets, err := c.ListDatasets(context.Background(), "acme")
	if err != nil {
		t.Fatalf("ListDatasets failed: %v", err)
	}
	if datasets == nil || len(datasets) != 0 {
		t.Errorf("datasets = %v, want empty non-nil list", datasets)
	}
}
