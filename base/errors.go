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

import "fmt"

// AuthFailureReason classifies a connection-establishment failure.
type AuthFailureReason string

const (
	// KeyLoadFailure means the private key material could not be
	// loaded or parsed (missing file, bad keystore password, ...).
	KeyLoadFailure AuthFailureReason = "key_load_failure"

	// TransportInitFailure means the authenticated HTTP client or the
	// service handle could not be constructed.
	TransportInitFailure AuthFailureReason = "transport_init_failure"

	// TokenExchangeFailure means the identity provider rejected or
	// failed the signed-assertion token exchange.
	TokenExchangeFailure AuthFailureReason = "token_exchange_failure"
)

// AuthError is returned when a connection cannot be established or a
// credential cannot be refreshed. It is fatal to the attempt that
// produced it and is never retried by the connector.
type AuthError struct {
	Reason AuthFailureReason
	Cause  error
}

func (e *AuthError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("auth: %s (cause: %v)", e.Reason, e.Cause)
	}
	return fmt.Sprintf("auth: %s", e.Reason)
}

func (e *AuthError) Unwrap() error {
	return e.Cause
}

// NewAuthError creates a new AuthError
func NewAuthError(reason AuthFailureReason, cause error) *AuthError {
	return &AuthError{Reason: reason, Cause: cause}
}

// NotConnectedError is returned when an operation is invoked on a
// connector without a live session. It indicates a usage error in the
// calling layer; no network call is performed.
type NotConnectedError struct {
	ConnectorName string
	Operation     string
}

func (e *NotConnectedError) Error() string {
	return e.ConnectorName + "." + e.Operation + ": not connected"
}

// NewNotConnectedError creates a new NotConnectedError
func NewNotConnectedError(connectorName, operation string) *NotConnectedError {
	return &NotConnectedError{ConnectorName: connectorName, Operation: operation}
}

// OperationError wraps any transport- or protocol-level failure from a
// warehouse call. The originating operation, the target reference and
// the underlying cause are always preserved; the session remains
// connected after an OperationError.
type OperationError struct {
	ConnectorName string
	Operation     string
	Target        string
	Message       string
	Cause         error
}

func (e *OperationError) Error() string {
	msg := e.ConnectorName + "." + e.Operation
	if e.Target != "" {
		msg += " [" + e.Target + "]"
	}
	msg += ": " + e.Message
	if e.Cause != nil {
		msg += " (cause: " + e.Cause.Error() + ")"
	}
	return msg
}

func (e *OperationError) Unwrap() error {
	return e.Cause
}

// NewOperationError creates a new OperationError
func NewOperationError(connectorName, operation, target, message string, cause error) *OperationError {
	return &OperationError{
		ConnectorName: connectorName,
		Operation:     operation,
		Target:        target,
		Message:       message,
		Cause:         cause,
	}
}
