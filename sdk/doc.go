// Copyright 2025 AxonFlow
// Licensed under the Apache License, Version 2.0

/*
Package sdk provides the building blocks shared by warehouse
connectors: the credential lifecycle, the base connector session
state, metrics, throttling and config validation.

# Credential lifecycle

ServiceAccountAuth owns the bearer credential for one service
identity. The key material comes from a Google JSON key file or a
PKCS#12 keystore; either way it ends up in a signed-JWT assertion
exchanged for a short-lived access token at the identity provider.

The refresh policy is refresh-before-every-call: connectors call
Refresh once per warehouse operation, and every Refresh is a real
token-exchange round trip that replaces the stored token. There is no
client-side expiry cache. This is a correctness choice, not an
oversight; tokens live about an hour and tracking expiry correctly
would also require clock-skew tolerance.

# Session state

BaseConnector holds the connected/disconnected state machine, the
validated configuration, the operation metrics and the optional rate
limiter. Concrete connectors embed it and add their typed operations.

# Retry

The connectors never retry internally. The Retry helper exists for
the calling layer, with a default condition tuned to transient
Google API failures.
*/
package sdk
