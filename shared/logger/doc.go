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
Package logger provides structured JSON logging with multi-tenant support
for AxonFlow connectors.

# Overview

The logger package provides structured logging that outputs JSON to stdout,
making logs easily consumable by CloudWatch, ELK stack, or other log
aggregation systems.

Each log entry includes:
  - Timestamp (RFC3339Nano format)
  - Log level (DEBUG, INFO, WARN, ERROR)
  - Component name (connector.bigquery, etc.)
  - Instance ID and container name (for distributed tracing)
  - Tenant ID (for multi-tenant isolation)
  - Operation name (for correlating entries with the call that produced them)
  - Custom fields

# Usage

Create a logger for your component:

	log := logger.New("connector.bigquery")

Log messages with tenant and operation context:

	log.Info("tenant-123", "InsertRows", "Batch accepted", map[string]interface{}{
	    "table":     "acme.sales.orders",
	    "row_count": 150,
	})

Log errors with the cause attached:

	log.ErrorWithCause("tenant-123", "InsertRows", "Streaming insert failed", err, nil)

Log with duration tracking:

	start := time.Now()
	// ... do work ...
	log.InfoWithDuration("tenant-123", "ListRows", "Operation completed",
	    float64(time.Since(start).Milliseconds()), nil)

# Output Format

Log entries are output as single-line JSON:

	{"timestamp":"2025-01-15T10:30:00.123456789Z","level":"INFO",
	 "component":"connector.bigquery","instance_id":"i-abc123","container":"conn-xyz",
	 "tenant_id":"tenant-123","operation":"InsertRows",
	 "message":"Batch accepted","fields":{"row_count":150}}

# Environment Variables

The logger reads these environment variables:

  - INSTANCE_ID: Deployment instance identifier
  - HOSTNAME: Container hostname (auto-detected)

# Thread Safety

Logger instances are safe for concurrent use from multiple goroutines.
*/
package logger
