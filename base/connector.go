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

package base

import (
	"context"
	"time"
)

// Connector defines the lifecycle contract every warehouse connector
// must implement. Data operations are connector-specific and exposed
// as typed methods on the concrete connector, not through this
// interface: loosely-typed map payloads proved too error-prone at the
// platform boundary.
type Connector interface {
	// Lifecycle Management
	Connect(ctx context.Context, config *ConnectorConfig) error
	Disconnect(ctx context.Context) error
	HealthCheck(ctx context.Context) (*HealthStatus, error)

	// IsConnected reports whether the connector holds a live session.
	// Pure, no I/O.
	IsConnected() bool

	// ConnectionID identifies the current session. For token-based
	// connectors this is the last-known access token; it must never
	// be used for re-authorization decisions.
	ConnectionID() string

	// Metadata
	Name() string            // Unique connector instance name
	Type() string            // Connector type (bigquery, snowflake, ...)
	Version() string         // Connector version
	Capabilities() []string  // List of capabilities (insert, list, ddl)
}

// ConnectorConfig holds the configuration for a connector instance.
// The hosting platform validates and binds these values before the
// connector ever sees them.
type ConnectorConfig struct {
	Name        string                 `json:"name"`         // Unique name for this connector
	Type        string                 `json:"type"`         // Type: bigquery, snowflake, ...
	Credentials map[string]string      `json:"credentials"`  // Key material references, passwords
	Options     map[string]interface{} `json:"options"`      // Connector-specific options
	Timeout     time.Duration          `json:"timeout"`      // Operation timeout (default: 30s)
	TenantID    string                 `json:"tenant_id"`    // For multi-tenancy isolation
}

// HealthStatus represents the health of a connector
type HealthStatus struct {
	Healthy   bool              `json:"healthy"`   // Overall health status
	Latency   time.Duration     `json:"latency"`   // Probe latency
	Details   map[string]string `json:"details"`   // Additional diagnostic info
	Timestamp time.Time         `json:"timestamp"` // When health check was performed
	Error     string            `json:"error"`     // Error message if unhealthy
}
