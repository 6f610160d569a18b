// Package audit emits security-relevant events in RFC5424 syslog format.
//
// Events cover the credential lifecycle (minting, revocation), every
// authentication attempt, and the bootstrap of a new tenant. Each event
// renders as a single syslog line on stdout with structured data carrying
// the acting key, the affected resource, and the client address.
//
// Emission is fire and forget. An audit failure never fails the request
// that triggered it.
package audit
