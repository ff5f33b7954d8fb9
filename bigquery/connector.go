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
	"net/http"
	"strings"
	"sync"
	"time"

	bqapi "google.golang.org/api/bigquery/v2"
	"google.golang.org/api/option"

	"axonflow/connector-bigquery/base"
	"axonflow/connector-bigquery/sdk"
	"axonflow/connector-bigquery/shared/logger"
)

const (
	// ConnectorType identifies this connector in platform registries.
	ConnectorType = "bigquery"

	connectorVersion       = "2.1.0"
	defaultApplicationName = "axonflow-connector-bigquery"
)

// Connector is the Google BigQuery warehouse connector. It manages a
// single authenticated session and exposes streaming inserts, listing
// and table DDL against the BigQuery v2 REST API.
//
// The connector never retries failed warehouse calls; retry policy
// belongs to the hosting platform. A failed warehouse call leaves the
// session connected. A failed credential refresh ends it.
type Connector struct {
	*sdk.BaseConnector

	slog *logger.Logger

	// baseTransport is the transport underneath the auth layer.
	// Tests point this at a stub service.
	baseTransport http.RoundTripper

	mu      sync.RWMutex
	service *bqapi.Service
}

// NewConnector creates an unconnected BigQuery connector.
func NewConnector() *Connector {
	bc := sdk.NewBaseConnector(ConnectorType)
	bc.SetVersion(connectorVersion)
	bc.SetCapabilities([]string{"insert", "list", "schema", "ddl"})
	bc.SetValidator(sdk.NewDefaultConfigValidator(nil, map[string]interface{}{
		"application_name": defaultApplicationName,
		"scope":            bqapi.BigqueryScope,
	}))

	return &Connector{
		BaseConnector: bc,
		slog:          logger.New("connector." + ConnectorType),
	}
}

// SetBaseTransport replaces the transport used beneath the
// authentication layer. Must be called before Connect. Used by tests
// and by platforms that inject instrumented transports.
func (c *Connector) SetBaseTransport(rt http.RoundTripper) {
	c.baseTransport = rt
}

// Connect establishes an authenticated session.
//
// Credentials:
//   - "key_file": path to a Google JSON service-account key, or
//   - "keystore_file" (+ "store_password", "key_alias",
//     "key_password"): path to a PKCS#12 keystore, with
//     "service_account_email" required, or
//   - "access_token": a pre-issued bearer token (emulators, tests).
//
// Options: "scope", "application_name", "endpoint", "token_endpoint",
// "rate_limit" (calls per second).
//
// A failure at any step leaves the connector disconnected. The initial
// token exchange is never retried here.
func (c *Connector) Connect(ctx context.Context, config *base.ConnectorConfig) error {
	if err := c.BaseConnector.Connect(ctx, config); err != nil {
		return err
	}

	auth := c.GetAuthProvider()
	if auth == nil {
		built, err := c.buildAuthProvider(ctx)
		if err != nil {
			return c.failConnect(config, err)
		}
		auth = built
		c.SetAuthProvider(auth)
	}

	if rate := c.GetIntOption("rate_limit", 0); rate > 0 {
		limiter, err := sdk.NewRateLimiter(float64(rate), rate)
		if err != nil {
			return c.failConnect(config, base.NewOperationError(config.Name, "Connect", "", "invalid rate limit", err))
		}
		c.SetRateLimiter(limiter)
	}

	endpoint := c.GetStringOption("endpoint", "")
	if endpoint != "" {
		if err := base.ValidateEndpoint(endpoint, base.DefaultEndpointValidationOptions()); err != nil {
			return c.failConnect(config, base.NewAuthError(base.TransportInitFailure, err))
		}
	}

	opts := []option.ClientOption{
		option.WithHTTPClient(sdk.NewAuthClient(auth, c.baseTransport)),
	}
	if endpoint != "" {
		opts = append(opts, option.WithEndpoint(endpoint))
	}

	svc, err := bqapi.NewService(ctx, opts...)
	if err != nil {
		return c.failConnect(config, base.NewAuthError(base.TransportInitFailure, err))
	}
	svc.UserAgent = c.GetStringOption("application_name", defaultApplicationName)

	c.mu.Lock()
	c.service = svc
	c.mu.Unlock()

	c.GetMetrics().RecordConnect()
	c.slog.Info(config.TenantID, "Connect", "Session established", map[string]interface{}{
		"connector": config.Name,
		"auth_type": auth.Type(),
	})

	return nil
}

func (c *Connector) failConnect(config *base.ConnectorConfig, err error) error {
	c.SetConnected(false)
	c.slog.ErrorWithCause(config.TenantID, "Connect", "Connection failed", err, map[string]interface{}{
		"connector": config.Name,
	})
	return err
}

// buildAuthProvider constructs the authentication provider from the
// bound configuration. A pre-issued access token wins over key
// material; otherwise a service-account identity is loaded and its
// initial token exchange performed.
func (c *Connector) buildAuthProvider(ctx context.Context) (sdk.AuthProvider, error) {
	if token := c.GetCredential("access_token"); token != "" {
		return sdk.NewBearerTokenAuth(token, time.Time{}), nil
	}

	identity := sdk.ServiceAccountIdentity{
		ApplicationName: c.GetStringOption("application_name", defaultApplicationName),
		Email:           c.GetCredential("service_account_email"),
		Scopes:          strings.Fields(c.GetStringOption("scope", bqapi.BigqueryScope)),
		KeyFile:         c.GetCredential("key_file"),
		TokenURL:        c.GetStringOption("token_endpoint", ""),
	}
	if path := c.GetCredential("keystore_file"); path != "" {
		identity.Keystore = &sdk.KeystoreKey{
			Path:          path,
			StorePassword: c.GetCredential("store_password"),
			Alias:         c.GetCredential("key_alias"),
			KeyPassword:   c.GetCredential("key_password"),
		}
	}

	auth, err := sdk.NewServiceAccountAuth(identity)
	if err != nil {
		return nil, err
	}
	if err := auth.Establish(ctx); err != nil {
		return nil, err
	}
	return auth, nil
}

// Disconnect drops the service handle and marks the session
// disconnected. Purely local: bearer tokens cannot be revoked
// client-side, they simply expire.
func (c *Connector) Disconnect(ctx context.Context) error {
	c.mu.Lock()
	c.service = nil
	c.mu.Unlock()

	if c.BaseConnector.IsConnected() {
		c.GetMetrics().RecordDisconnect()
	}
	return c.BaseConnector.Disconnect(ctx)
}

// IsConnected reports whether the connector holds a live service
// handle. Pure, no I/O, no token inspection.
func (c *Connector) IsConnected() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.service != nil
}

// ConnectionID identifies the session by its last-known access token.
// Empty when disconnected. Diagnostic only.
func (c *Connector) ConnectionID() string {
	if !c.IsConnected() {
		return ""
	}
	if auth := c.GetAuthProvider(); auth != nil {
		return auth.Token()
	}
	return ""
}

// HealthCheck probes the warehouse with the cheapest authorized read
// available: a single-page dataset listing when a project is
// configured, a project listing otherwise.
func (c *Connector) HealthCheck(ctx context.Context) (*base.HealthStatus, error) {
	status := &base.HealthStatus{
		Timestamp: time.Now(),
		Details:   map[string]string{"connector": c.Name(), "type": c.Type()},
	}

	svc, err := c.session(ctx, "HealthCheck", "")
	if err != nil {
		status.Healthy = false
		status.Error = err.Error()
		return status, nil
	}

	start := time.Now()
	if project := c.GetStringOption("project_id", ""); project != "" {
		_, err = svc.Datasets.List(project).MaxResults(1).Context(ctx).Do()
		status.Details["probe"] = "datasets.list"
	} else {
		_, err = svc.Projects.List().MaxResults(1).Context(ctx).Do()
		status.Details["probe"] = "projects.list"
	}
	status.Latency = time.Since(start)

	if err != nil {
		status.Healthy = false
		status.Error = err.Error()
		return status, nil
	}

	status.Healthy = true
	return status, nil
}

// session is the preamble shared by every warehouse operation. It
// verifies the session, applies the configured rate limit, and
// refreshes the credential. Refresh-before-every-call is the
// connector's freshness policy; see the sdk package docs.
//
// A refresh that fails ends the session: the credential can no longer
// authorize anything, so holding the handle open would only produce
// misleading authorization errors downstream.
func (c *Connector) session(ctx context.Context, op, target string) (*bqapi.Service, error) {
	c.mu.RLock()
	svc := c.service
	c.mu.RUnlock()

	if svc == nil {
		return nil, base.NewNotConnectedError(c.Name(), op)
	}

	if limiter := c.GetRateLimiter(); limiter != nil {
		if err := limiter.Wait(ctx); err != nil {
			return nil, base.NewOperationError(c.Name(), op, target, "rate limit wait interrupted", err)
		}
	}

	auth := c.GetAuthProvider()
	err := auth.Refresh(ctx)
	c.GetMetrics().RecordRefresh(err)
	if err != nil {
		c.mu.Lock()
		c.service = nil
		c.mu.Unlock()
		c.SetConnected(false)

		c.slog.ErrorWithCause(c.tenantID(), op, "Credential refresh failed, session closed", err, nil)
		return nil, base.NewOperationError(c.Name(), op, target, "credential refresh failed", err)
	}

	return svc, nil
}

func (c *Connector) tenantID() string {
	if cfg := c.GetConfig(); cfg != nil {
		return cfg.TenantID
	}
	return ""
}
