// Package client talks to the remote game catalog API.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic contract (see the Client interface): a random
//     game, a game by id, the full catalog, guess scoring, game comparison
//     and a health probe.
//  2. An HTTP/JSON implementation (see HTTPClient) that resolves endpoint
//     paths against a configurable base URL and maps HTTP status codes and
//     decoding failures to sentinel errors.
//
// Records are returned exactly as received (models.RawGame); identifier
// normalization happens once, in the catalog package.
//
// # Error Handling
//
// Callers match failures with errors.Is:
//   - ErrNotFound: 404, 405 or 501; the endpoint or the record is absent.
//   - ErrUnavailable: transport errors, timeouts, 429 and 5xx responses.
//   - ErrMalformedPayload: the body is not the expected JSON shape.
//   - ErrEmptyBody: the body is empty or the literal null.
//
// Every call makes a single attempt; there are no automatic retries.
package client
