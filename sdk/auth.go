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

package sdk

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"sync"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"golang.org/x/oauth2/jwt"

	"axonflow/connector-bigquery/base"
)

// AuthProvider defines the interface for authentication mechanisms
type AuthProvider interface {
	// Authenticate applies authentication to the given request
	Authenticate(ctx context.Context, req *http.Request) error

	// IsExpired checks if the current credentials have expired
	IsExpired() bool

	// Refresh refreshes the credentials if possible
	Refresh(ctx context.Context) error

	// Token returns the current bearer token, or "" if none is held.
	// Lock-free for readers; used as a connection identifier only.
	Token() string

	// Type returns the authentication type name
	Type() string
}

// KeystoreKey references a private key wrapped in a PKCS#12 keystore.
//
// PKCS#12 protects the whole archive with a single password. Keystores
// exported from JKS carry a separate per-entry key password; when both
// are supplied they must match, which is the case for every keystore
// Google tooling produces ("notasecret" for both). Alias is retained
// for config compatibility; Google keystores hold a single entry, so
// it is not used for selection.
type KeystoreKey struct {
	Path          string
	StorePassword string
	Alias         string
	KeyPassword   string
}

// ServiceAccountIdentity describes a non-human identity authenticated
// via a private key. Immutable once a session is established.
//
// Exactly one key source must be set: KeyFile (a Google JSON
// service-account key) or Keystore (a PKCS#12 archive). The JSON form
// carries the account email itself; the keystore form requires Email
// to be set explicitly.
type ServiceAccountIdentity struct {
	ApplicationName string
	Email           string
	Scopes          []string
	KeyFile         string
	Keystore        *KeystoreKey

	// TokenURL overrides the identity provider's token endpoint.
	// Defaults to Google's. Tests point this at a local server.
	TokenURL string
}

// ServiceAccountAuth produces and keeps fresh a bearer credential for
// a single service identity. It implements AuthProvider.
//
// The refresh policy is deliberate: the upstream service issues
// short-lived tokens, and rather than tracking expiry client-side the
// connector refreshes before every warehouse call. Each Refresh is a
// full token-exchange round trip that replaces the stored token
// entirely. Do not replace this with an expiry-based cache without
// also adding clock-skew handling.
type ServiceAccountAuth struct {
	identity ServiceAccountIdentity
	conf     *jwt.Config

	mu    sync.RWMutex
	token *oauth2.Token
}

// NewServiceAccountAuth loads the private key material for the given
// identity and prepares the signed-JWT assertion configuration. No
// network round trip happens here; call Establish to perform the
// initial token exchange.
//
// Failures are classified as base.AuthError with reason
// KeyLoadFailure (bad key material) or TransportInitFailure (bad
// token endpoint).
func NewServiceAccountAuth(identity ServiceAccountIdentity) (*ServiceAccountAuth, error) {
	var conf *jwt.Config

	switch {
	case identity.KeyFile != "":
		data, err := os.ReadFile(identity.KeyFile)
		if err != nil {
			return nil, base.NewAuthError(base.KeyLoadFailure, fmt.Errorf("reading key file %s: %w", identity.KeyFile, err))
		}
		conf, err = google.JWTConfigFromJSON(data, identity.Scopes...)
		if err != nil {
			return nil, base.NewAuthError(base.KeyLoadFailure, fmt.Errorf("parsing key file %s: %w", identity.KeyFile, err))
		}
		if identity.Email != "" {
			conf.Email = identity.Email
		}

	case identity.Keystore != nil:
		if identity.Email == "" {
			return nil, base.NewAuthError(base.KeyLoadFailure, fmt.Errorf("keystore key source requires the service account email"))
		}
		pemKey, err := loadKeystoreKey(identity.Keystore)
		if err != nil {
			return nil, base.NewAuthError(base.KeyLoadFailure, err)
		}
		conf = &jwt.Config{
			Email:      identity.Email,
			PrivateKey: pemKey,
			Scopes:     identity.Scopes,
			TokenURL:   google.JWTTokenURL,
		}

	default:
		return nil, base.NewAuthError(base.KeyLoadFailure, fmt.Errorf("no key source: set KeyFile or Keystore"))
	}

	if identity.TokenURL != "" {
		if _, err := url.ParseRequestURI(identity.TokenURL); err != nil {
			return nil, base.NewAuthError(base.TransportInitFailure, fmt.Errorf("invalid token endpoint %s: %w", identity.TokenURL, err))
		}
		conf.TokenURL = identity.TokenURL
	}

	return &ServiceAccountAuth{identity: identity, conf: conf}, nil
}

// Establish performs the initial token exchange against the identity
// provider. It must succeed before the identity can authorize any
// warehouse call. Never retried; a failure is surfaced immediately as
// a connection failure.
func (a *ServiceAccountAuth) Establish(ctx context.Context) error {
	return a.Refresh(ctx)
}

// Refresh unconditionally requests a new access token and replaces
// the stored one. Exactly one token-exchange round trip per call: a
// fresh token source is built each time so the oauth2 reuse cache
// never short-circuits the exchange.
func (a *ServiceAccountAuth) Refresh(ctx context.Context) error {
	tok, err := a.conf.TokenSource(ctx).Token()
	if err != nil {
		return base.NewAuthError(base.TokenExchangeFailure, err)
	}

	a.mu.Lock()
	a.token = tok
	a.mu.Unlock()
	return nil
}

// Token returns the last-known access token, or "" before the first
// successful exchange.
func (a *ServiceAccountAuth) Token() string {
	a.mu.RLock()
	defer a.mu.RUnlock()

	if a.token == nil {
		return ""
	}
	return a.token.AccessToken
}

// Expiry returns the expiry instant of the current token, or the zero
// time before the first successful exchange.
func (a *ServiceAccountAuth) Expiry() time.Time {
	a.mu.RLock()
	defer a.mu.RUnlock()

	if a.token == nil {
		return time.Time{}
	}
	return a.token.Expiry
}

// Authenticate applies the current bearer token to the request.
func (a *ServiceAccountAuth) Authenticate(ctx context.Context, req *http.Request) error {
	tok := a.Token()
	if tok == "" {
		return fmt.Errorf("no access token held: credential not established")
	}
	req.Header.Set("Authorization", "Bearer "+tok)
	return nil
}

// IsExpired reports whether the current token is missing or past its
// expiry. Informational only: the refresh-before-every-call policy
// does not consult it.
func (a *ServiceAccountAuth) IsExpired() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()

	if a.token == nil {
		return true
	}
	if a.token.Expiry.IsZero() {
		return false
	}
	return time.Now().After(a.token.Expiry)
}

// Type returns the authentication type
func (a *ServiceAccountAuth) Type() string {
	return "service_account"
}

// Identity returns the identity this credential was established for.
func (a *ServiceAccountAuth) Identity() ServiceAccountIdentity {
	return a.identity
}

// BearerTokenAuth authenticates with a pre-issued static bearer token.
// Used when the platform manages token issuance externally, and by
// emulator setups. Refresh is a no-op.
type BearerTokenAuth struct {
	mu        sync.RWMutex
	token     string
	expiresAt time.Time
}

// NewBearerTokenAuth creates a new static bearer token provider.
// A zero expiresAt means the token never expires.
func NewBearerTokenAuth(token string, expiresAt time.Time) *BearerTokenAuth {
	return &BearerTokenAuth{token: token, expiresAt: expiresAt}
}

// Authenticate applies the bearer token to the request.
func (b *BearerTokenAuth) Authenticate(ctx context.Context, req *http.Request) error {
	tok := b.Token()
	if tok == "" {
		return fmt.Errorf("bearer token is not set")
	}
	req.Header.Set("Authorization", "Bearer "+tok)
	return nil
}

// IsExpired checks if the token has expired
func (b *BearerTokenAuth) IsExpired() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.expiresAt.IsZero() {
		return false
	}
	return time.Now().After(b.expiresAt)
}

// Refresh is a no-op for static bearer tokens
func (b *BearerTokenAuth) Refresh(ctx context.Context) error {
	return nil
}

// Token returns the current token
func (b *BearerTokenAuth) Token() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.token
}

// SetToken updates the bearer token
func (b *BearerTokenAuth) SetToken(token string, expiresAt time.Time) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.token = token
	b.expiresAt = expiresAt
}

// Type returns the authentication type
func (b *BearerTokenAuth) Type() string {
	return "bearer"
}
