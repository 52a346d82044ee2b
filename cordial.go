// Package cordial is a lightweight client library for the Discord REST API.
//
// The root package holds the wire-level entity types shared across the
// subpackages. Audit log models and pagination live in package auditlog,
// gateway event models in package events and the HTTP session in package
// rest.
package cordial

// Version is the library version, also reported in the User-Agent of
// outgoing requests.
const Version = "0.3.0"
