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

import "testing"

func TestValidateEndpoint(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		opts    EndpointValidationOptions
		wantErr bool
	}{
		{
			name:    "empty URL",
			url:     "",
			opts:    DefaultEndpointValidationOptions(),
			wantErr: true,
		},
		{
			name:    "https endpoint",
			url:     "https://bigquery.googleapis.com/bigquery/v2/",
			opts:    DefaultEndpointValidationOptions(),
			wantErr: false,
		},
		{
			name:    "emulator on localhost allowed by default",
			url:     "http://127.0.0.1:9050/bigquery/v2/",
			opts:    DefaultEndpointValidationOptions(),
			wantErr: false,
		},
		{
			name:    "disallowed scheme",
			url:     "ftp://example.com/",
			opts:    DefaultEndpointValidationOptions(),
			wantErr: true,
		},
		{
			name: "host suffix allowlist rejects foreign host",
			url:  "https://evil.example.com/",
			opts: EndpointValidationOptions{
				AllowPrivateIPs:     true,
				AllowedHostSuffixes: []string{".googleapis.com"},
			},
			wantErr: true,
		},
		{
			name: "host suffix allowlist accepts matching host",
			url:  "https://bigquery.googleapis.com/",
			opts: EndpointValidationOptions{
				AllowPrivateIPs:     true,
				AllowedHostSuffixes: []string{".googleapis.com"},
			},
			wantErr: false,
		},
		{
			name: "private address rejected when not allowed",
			url:  "http://127.0.0.1:9050/",
			opts: EndpointValidationOptions{
				AllowPrivateIPs: false,
			},
			wantErr: true,
		},
		{
			name:    "missing hostname",
			url:     "https://",
			opts:    DefaultEndpointValidationOptions(),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateEndpoint(tt.url, tt.opts)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateEndpoint(%q) error = %v, wantErr %v", tt.url, err, tt.wantErr)
			}
		})
	}
}

func TestRedactCredentials(t *testing.T) {
	creds := map[string]string{
		"service_account_email": "svc@project.iam.gserviceaccount.com",
		"key_file":              "/etc/keys/svc.json",
		"store_password":        "notasecret",
		"key_password":          "notasecret",
		"access_token":          "ya29.abc",
	}

	redacted := RedactCredentials(creds)

	if redacted["service_account_email"] != "svc@project.iam.gserviceaccount.com" {
		t.Errorf("email should not be redacted, got %q", redacted["service_account_email"])
	}
	if redacted["key_file"] != "/etc/keys/svc.json" {
		t.Errorf("key file path should not be redacted, got %q", redacted["key_file"])
	}
	for _, k := range []string{"store_password", "key_password", "access_token"} {
		if redacted[k] != "***" {
			t.Errorf("%s should be redacted, got %q", k, redacted[k])
		}
	}

	// Original map must be untouched.
	if creds["store_password"] != "notasecret" {
		t.Error("input map was modified")
	}

	if RedactCredentials(nil) != nil {
		t.Error("nil input should produce nil output")
	}
}
