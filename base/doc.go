// Copyright 2025 AxonFlow
// Licensed under the Apache License, Version 2.0

/*
Package base defines the contract shared by AxonFlow warehouse
connectors: the lifecycle interface, the connector configuration
carried in from the hosting platform, and the error taxonomy.

# Error taxonomy

Three error types cover every failure mode a connector may surface:

  - AuthError: connection establishment or credential refresh failed.
    Carries a classification (key load, transport init, token
    exchange) and the underlying cause. Fatal to the attempt, never
    retried by the connector.
  - NotConnectedError: an operation was invoked without a live
    session. A usage error; no network call is made.
  - OperationError: a warehouse call failed. Carries the operation
    name, the target reference and the wrapped cause. The session
    stays connected.

All three implement error unwrapping so callers can reach the
original cause with errors.As / errors.Is.

Partial outcomes of batch operations are not errors: a streaming
insert where the service rejects a subset of rows reports the
rejected rows as data on the insert outcome.
*/
package base
