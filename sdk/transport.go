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
	"net/http"
)

// AuthTransport is an http.RoundTripper that applies an AuthProvider
// to every outbound request. The token is read at request time, so a
// credential refreshed between requests is picked up without
// rebuilding the client, and a refresh in flight never yields a
// half-written token to a concurrent reader.
type AuthTransport struct {
	Auth AuthProvider

	// Base is the underlying transport. Defaults to
	// http.DefaultTransport. Tests inject a mock here.
	Base http.RoundTripper
}

// RoundTrip implements http.RoundTripper.
func (t *AuthTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	clone := req.Clone(req.Context())
	if err := t.Auth.Authenticate(req.Context(), clone); err != nil {
		return nil, err
	}

	rt := t.Base
	if rt == nil {
		rt = http.DefaultTransport
	}
	return rt.RoundTrip(clone)
}

// NewAuthClient returns an *http.Client whose transport injects the
// provider's current token into each request.
func NewAuthClient(auth AuthProvider, rt http.RoundTripper) *http.Client {
	return &http.Client{Transport: &AuthTransport{Auth: auth, Base: rt}}
}
