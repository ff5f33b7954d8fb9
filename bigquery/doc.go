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

/*
Package bigquery implements the Google BigQuery warehouse connector.

The connector wraps the BigQuery v2 REST API behind the platform
connector lifecycle (Connect, Disconnect, HealthCheck) and exposes
typed data operations: streaming inserts, table data listing, dataset
and project enumeration, schema introspection, and table DDL.

# Session model

A connector instance holds at most one session. Connect authenticates
a service-account identity (JSON key file or PKCS#12 keystore) or
adopts a pre-issued bearer token, then builds the service handle.
IsConnected is a pure handle check. Disconnect drops the handle
locally; tokens cannot be revoked client-side.

Every warehouse operation refreshes the credential first. A failed
refresh closes the session; a failed warehouse call does not. The
connector never retries on its own.

# Partial inserts

A streaming insert can be accepted in part. InsertRows reports
per-row rejections through InsertOutcome.RowErrors and returns a nil
error for that case; only a failed call is an error.

Basic usage:

	conn := bigquery.NewConnector()
	err := conn.Connect(ctx, &base.ConnectorConfig{
	    Name: "analytics-warehouse",
	    Type: bigquery.ConnectorType,
	    Credentials: map[string]string{
	        "key_file": "/etc/secrets/sa-key.json",
	    },
	})
	if err != nil {
	    return err
	}
	defer conn.Disconnect(ctx)

	outcome, err := conn.InsertRows(ctx,
	    bigquery.TableReference{ProjectID: "acme", DatasetID: "sales", TableID: "orders"},
	    bigquery.InsertRowBatch{
	        {JSON: map[string]interface{}{"order_id": "o-1", "amount": 12.50}},
	    }, nil)
*/
package bigquery
