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
	"fmt"
	"net"
	"net/url"
	"strings"
)

// EndpointValidationOptions configures endpoint URL validation.
type EndpointValidationOptions struct {
	// AllowPrivateIPs permits endpoints resolving to private/internal
	// addresses. Required for local emulators.
	AllowPrivateIPs bool
	// AllowedSchemes specifies permitted URL schemes (default: ["https", "http"])
	AllowedSchemes []string
	// AllowedHostSuffixes restricts endpoints to specific domain
	// suffixes, e.g. [".googleapis.com"].
	AllowedHostSuffixes []string
}

// DefaultEndpointValidationOptions returns defaults suitable for
// custom warehouse/token endpoint overrides: https or http, private
// addresses allowed so emulator setups keep working.
func DefaultEndpointValidationOptions() EndpointValidationOptions {
	return EndpointValidationOptions{
		AllowPrivateIPs: true,
		AllowedSchemes:  []string{"https", "http"},
	}
}

// ValidateEndpoint validates a caller-supplied endpoint override
// before any client is built from it. It checks URL format, scheme,
// optional domain allowlisting and, unless private IPs are allowed,
// that the host does not resolve to an internal address.
func ValidateEndpoint(rawURL string, opts EndpointValidationOptions) error {
	if rawURL == "" {
		return fmt.Errorf("endpoint cannot be empty")
	}

	parsed, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("invalid endpoint URL: %w", err)
	}

	schemes := opts.AllowedSchemes
	if len(schemes) == 0 {
		schemes = []string{"https", "http"}
	}
	schemeOK := false
	for _, s := range schemes {
		if parsed.Scheme == s {
			schemeOK = true
			break
		}
	}
	if !schemeOK {
		return fmt.Errorf("endpoint scheme %q is not allowed", parsed.Scheme)
	}

	hostname := parsed.Hostname()
	if hostname == "" {
		return fmt.Errorf("endpoint must contain a hostname")
	}

	if len(opts.AllowedHostSuffixes) > 0 {
		allowed := false
		for _, suffix := range opts.AllowedHostSuffixes {
			if strings.HasSuffix(hostname, suffix) {
				allowed = true
				break
			}
		}
		if !allowed {
			return fmt.Errorf("endpoint host %q is not in the allowed list", hostname)
		}
	}

	if !opts.AllowPrivateIPs {
		if err := validateHostNotPrivate(hostname); err != nil {
			return err
		}
	}

	return nil
}

// validateHostNotPrivate resolves the hostname and rejects loopback,
// private and link-local addresses.
func validateHostNotPrivate(hostname string) error {
	ips, err := net.LookupIP(hostname)
	if err != nil {
		return fmt.Errorf("cannot resolve endpoint host %q: %w", hostname, err)
	}

	for _, ip := range ips {
		if ip.IsLoopback() || ip.IsPrivate() || ip.IsLinkLocalUnicast() || ip.IsUnspecified() {
			return fmt.Errorf("endpoint host %q resolves to a private address %s", hostname, ip)
		}
	}
	return nil
}

// sensitiveCredentialKeys are credential map key suffixes whose
// values must never reach a log line. File paths ("key_file") stay
// readable; the material behind them does not travel through config.
var sensitiveCredentialKeys = []string{
	"password", "secret", "token", "private_key",
}

// RedactCredentials returns a copy of the credential map safe for
// logging: values of sensitive keys are masked, everything else is
// passed through. The input map is never modified.
func RedactCredentials(creds map[string]string) map[string]string {
	if creds == nil {
		return nil
	}

	redacted := make(map[string]string, len(creds))
	for k, v := range creds {
		if isSensitiveCredentialKey(k) && v != "" {
			redacted[k] = "***"
		} else {
			redacted[k] = v
		}
	}
	return redacted
}

func isSensitiveCredentialKey(key string) bool {
	lower := strings.ToLower(key)
	for _, marker := range sensitiveCredentialKeys {
		if strings.HasSuffix(lower, marker) {
			return true
		}
	}
	return false
}
