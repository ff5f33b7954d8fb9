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
	"fmt"

	"axonflow/connector-bigquery/base"
)

// ConfigValidator validates a connector configuration before the
// connector acts on it.
type ConfigValidator interface {
	Validate(config *base.ConnectorConfig) error
}

// DefaultConfigValidator checks required credential keys and applies
// option defaults.
type DefaultConfigValidator struct {
	requiredCredentials []string
	optionDefaults      map[string]interface{}
}

// NewDefaultConfigValidator creates a validator requiring the given
// credential keys, with the given option defaults.
func NewDefaultConfigValidator(requiredCredentials []string, optionDefaults map[string]interface{}) *DefaultConfigValidator {
	return &DefaultConfigValidator{
		requiredCredentials: requiredCredentials,
		optionDefaults:      optionDefaults,
	}
}

// Validate implements ConfigValidator.
func (v *DefaultConfigValidator) Validate(config *base.ConnectorConfig) error {
	if config == nil {
		return fmt.Errorf("config is nil")
	}
	if config.Name == "" {
		return fmt.Errorf("connector name is required")
	}

	for _, key := range v.requiredCredentials {
		if config.Credentials == nil || config.Credentials[key] == "" {
			return fmt.Errorf("required credential %q is missing", key)
		}
	}
	return nil
}

// ApplyDefaults fills missing options with the validator's defaults.
func (v *DefaultConfigValidator) ApplyDefaults(config *base.ConnectorConfig) {
	if len(v.optionDefaults) == 0 {
		return
	}
	if config.Options == nil {
		config.Options = make(map[string]interface{}, len(v.optionDefaults))
	}
	for key, val := range v.optionDefaults {
		if _, ok := config.Options[key]; !ok {
			config.Options[key] = val
		}
	}
}
