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
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"fmt"
	"os"

	"software.sslmate.com/src/go-pkcs12"
)

// loadKeystoreKey extracts the RSA private key from a PKCS#12
// keystore and re-encodes it as PEM, the form the JWT assertion
// signer consumes.
func loadKeystoreKey(ks *KeystoreKey) ([]byte, error) {
	if ks.KeyPassword != "" && ks.KeyPassword != ks.StorePassword {
		return nil, fmt.Errorf("keystore %s: key password does not match store password; PKCS#12 archives carry a single password", ks.Path)
	}

	data, err := os.ReadFile(ks.Path)
	if err != nil {
		return nil, fmt.Errorf("reading keystore %s: %w", ks.Path, err)
	}

	key, _, err := pkcs12.Decode(data, ks.StorePassword)
	if err != nil {
		return nil, fmt.Errorf("decoding keystore %s: %w", ks.Path, err)
	}

	rsaKey, ok := key.(*rsa.PrivateKey)
	if !ok {
		return nil, fmt.Errorf("keystore %s: unsupported private key type %T", ks.Path, key)
	}

	return pem.EncodeToMemory(&pem.Block{
		Type:  "RSA PRIVATE KEY",
		Bytes: x509.MarshalPKCS1PrivateKey(rsaKey),
	}), nil
}
