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
	"errors"
	"testing"
)

func TestOperationError_Error(t *testing.T) {
	tests := []struct {
		name    string
		err     *OperationError
		wantMsg string
	}{
		{
			name: "with target and cause",
			err: &OperationError{
				ConnectorName: "bigquery",
				Operation:     "DeleteTable",
				Target:        "p.d.t",
				Message:       "delete failed",
				Cause:         errors.New("googleapi: Error 404: Not found"),
			},
			wantMsg: "bigquery.DeleteTable [p.d.t]: delete failed (cause: googleapi: Error 404: Not found)",
		},
		{
			name: "without target",
			err: &OperationError{
				ConnectorName: "bigquery",
				Operation:     "ListProjects",
				Message:       "list failed",
			},
			wantMsg: "bigquery.ListProjects: list failed",
		},
		{
			name: "without cause",
			err: &OperationError{
				ConnectorName: "bigquery",
				Operation:     "InsertRows",
				Target:        "p.d.t",
				Message:       "insert failed",
			},
			wantMsg: "bigquery.InsertRows [p.d.t]: insert failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.wantMsg {
				t.Errorf("Error() = %q, want %q", got, tt.wantMsg)
			}
		})
	}
}

func TestOperationError_Unwrap(t *testing.T) {
	cause := errors.New("connection reset")
	err := NewOperationError("bigquery", "ListRows", "p.d.t", "list failed", cause)

	if !errors.Is(err, cause) {
		t.Error("expected errors.Is to find the wrapped cause")
	}

	var opErr *OperationError
	if !errors.As(error(err), &opErr) {
		t.Fatal("expected errors.As to match *OperationError")
	}
	if opErr.Operation != "ListRows" {
		t.Errorf("expected operation ListRows, got %s", opErr.Operation)
	}
}

func TestAuthError(t *testing.T) {
	cause := errors.New("oauth2: cannot fetch token")
	err := NewAuthError(TokenExchangeFailure, cause)

	want := "auth: token_exchange_failure (cause: oauth2: cannot fetch token)"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
	if !errors.Is(err, cause) {
		t.Error("expected errors.Is to find the wrapped cause")
	}

	bare := NewAuthError(KeyLoadFailure, nil)
	if bare.Error() != "auth: key_load_failure" {
		t.Errorf("Error() = %q", bare.Error())
	}
}

func TestNotConnectedError(t *testing.T) {
	err := NewNotConnectedError("bigquery", "CreateTable")

	if err.Error() != "bigquery.CreateTable: not connected" {
		t.Errorf("Error() = %q", err.Error())
	}

	var ncErr *NotConnectedError
	if !errors.As(error(err), &ncErr) {
		t.Fatal("expected errors.As to match *NotConnectedError")
	}
}
