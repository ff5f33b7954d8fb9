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
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"sync"
	"testing"

	bqapi "google.golang.org/api/bigquery/v2"

	"axonflow/connector-bigquery/sdk"
)

// tableStore is a stub warehouse holding created tables by path. POST
// stores the table body, GET returns it, DELETE removes it.
type tableStore struct {
	mu     sync.Mutex
	tables map[string][]byte
}

func newTableStore() *tableStore {
	return &tableStore{tables: make(map[string][]byte)}
}

func (s *tableStore) RoundTrip(req *http.Request) (*http.Response, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch req.Method {
	case http.MethodPost:
		body, err := io.ReadAll(req.Body)
		if err != nil {
			return nil, err
		}
		var tbl bqapi.Table
		if err := json.Unmarshal(body, &tbl); err != nil || tbl.TableReference == nil {
			return sdk.JSONResponse(http.StatusBadRequest,
				`{"error":{"code":400,"message":"invalid table body"}}`), nil
		}
		// Tables are created under .../datasets/{d}/tables and read
		// back at .../tables/{tableId}.
		key := strings.TrimSuffix(req.URL.Path, "/") + "/" + tbl.TableReference.TableId
		s.tables[key] = body
		return sdk.JSONResponse(http.StatusOK, string(body)), nil

	case http.MethodGet:
		body, ok := s.tables[req.URL.Path]
		if !ok {
			return sdk.JSONResponse(http.StatusNotFound,
				`{"error":{"code":404,"message":"Not found"}}`), nil
		}
		return sdk.JSONResponse(http.StatusOK, string(body)), nil

	case http.MethodDelete:
		if _, ok := s.tables[req.URL.Path]; !ok {
			return sdk.JSONResponse(http.StatusNotFound,
				`{"error":{"code":404,"message":"Not found"}}`), nil
		}
		delete(s.tables, req.URL.Path)
		return &http.Response{StatusCode: http.StatusNoContent, Header: http.Header{}, Body: http.NoBody}, nil
	}

	return sdk.JSONResponse(http.StatusMethodNotAllowed, `{}`), nil
}

func TestCreateTableListFieldsDeleteTable(t *testing.T) {
	store := newTableStore()
	c := connectedConnector(t, store)
	ctx := context.Background()

	fields := []Field{
		{Name: "order_id", Type: "STRING", Mode: "REQUIRED", Description: "Order identifier"},
		{Name: "amount", Type: "FLOAT", Mode: "NULLABLE"},
		{Name: "placed_at", Type: "TIMESTAMP", Mode: "NULLABLE"},
	}

	if err := c.CreateTable(ctx, testTable, fields); err != nil {
		t.Fatalf("CreateTable failed: %v", err)
	}

	// The schema reads back exactly as it was declared.
	got, err := c.ListTableFields(ctx, testTable)
	if err != nil {
		t.Fatalf("ListTableFields failed: %v", err)
	}
	if len(got) != len(fields) {
		t.Fatalf("fields = %d, want %d", len(got), len(fields))
	}
	for i, f := range fields {
		if got[i] != f {
			t.Errorf("field %d = %+v, want %+v", i, got[i], f)
		}
	}

	if err := c.DeleteTable(ctx, testTable); err != nil {
		t.Fatalf("DeleteTable failed: %v", err)
	}

	// Deleting again reports the missing table.
	if err := c.DeleteTable(ctx, testTable); err == nil {
		t.Error("expected error deleting a missing table")
	}
}

func TestListTableFieldsNoSchema(t *testing.T) {
	c := connectedConnector(t, sdk.RoundTripFunc(func(req *http.Request) (*http.Response, error) {
		return sdk.JSONResponse(http.StatusOK, `{"kind":"bigquery#table","id":"acme:sales.orders"}`), nil
	}))

	fields, err := c.ListTableFields(context.Background(), testTable)
	if err != nil {
		t.Fatalf("ListTableFields failed: %v", err)
	}
	if fields == nil || len(fields) != 0 {
		t.Errorf("fields = %v, want empty non-nil list", fields)
	}
}

func TestListTables(t *testing.T) {
	c := connectedConnector(t, sdk.RoundTripFunc(func(req *http.Request) (*http.Response, error) {
		if !strings.HasSuffix(req.URL.Path, "/projects/acme/datasets/sales/tables") {
			t.Errorf("request path = %q", req.URL.Path)
		}
		return sdk.JSONResponse(http.StatusOK, `{
			"kind": "bigquery#tableList",
			"tables": [
				{"id": "acme:sales.orders", "type": "TABLE", "friendlyName": "Orders",
				 "tableReference": {"projectId": "acme", "datasetId": "sales", "tableId": "orders"}},
				{"id": "acme:sales.daily_totals", "type": "VIEW",
				 "tableReference": {"projectId": "acme", "datasetId": "sales", "tableId": "daily_totals"}}
			]
		}`), nil
	}))

	tables, err := c.ListTables(context.Background(), "acme", "sales")
	if err != nil {
		t.Fatalf("ListTables failed: %v", err)
	}
	if len(tables) != 2 {
		t.Fatalf("tables = %d, want 2", len(tables))
	}

	want := TableSummary{
		ID:           "acme:sales.orders",
		Type:         "TABLE",
		FriendlyName: "Orders",
		Reference:    TableReference{ProjectID: "acme", DatasetID: "sales", TableID: "orders"},
	}
	if tables[0] != want {
		t.Errorf("tables[0] = %+v, want %+v", tables[0], want)
	}
	if tables[1].Type != "VIEW" {
		t.Errorf("tables[1].Type = %q, want VIEW", tables[1].Type)
	}
}
