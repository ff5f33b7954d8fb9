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
	"testing"
	"time"
)

func TestAuthTransportInjectsCurrentToken(t *testing.T) {
	auth := NewBearerTokenAuth("tok-1", time.Time{})

	var seen []string
	client := NewAuthClient(auth, RoundTripFunc(func(req *http.Request) (*http.Response, error) {
		seen = append(seen, req.Header.Get("Authorization"))
		return JSONResponse(http.StatusOK, `{}`), nil
	}))

	if _, err := client.Get("https://warehouse.example.com/v2/tables"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Token swapped between requests is picked up without rebuilding
	// the client.
	auth.SetToken("tok-2", time.Time{})
	if _, err := client.Get("https://warehouse.example.com/v2/tables"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(seen) != 2 || seen[0] != "Bearer tok-1" || seen[1] != "Bearer tok-2" {
		t.Errorf("unexpected authorization headers: %v", seen)
	}
}

func TestAuthTransportDoesNotMutateOriginalRequest(t *testing.T) {
	auth := NewBearerTokenAuth("tok", time.Time{})
	rt := &AuthTransport{
		Auth: auth,
		Base: RoundTripFunc(func(req *http.Request) (*http.Response, error) {
			return JSONResponse(http.StatusOK, `{}`), nil
		}),
	}

	req, _ := http.NewRequest(http.MethodGet, "https://warehouse.example.com/", nil)
	if _, err := rt.RoundTrip(req); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := req.Header.Get("Authorization"); got != "" {
		t.Errorf("original request was mutated: %q", got)
	}
}

func TestAuthTransportFailsWithoutToken(t *testing.T) {
	auth := NewBearerTokenAuth("", time.Time{})
	client := NewAuthClient(auth, RoundTripFunc(func(req *http.Request) (*http.Response, error) {
		t.Fatal("request must not reach the base transport")
		return nil, nil
	}))

	if _, err := client.Get("https://warehouse.example.com/"); err == nil {
		t.Error("expected error when no token is held")
	}
}
