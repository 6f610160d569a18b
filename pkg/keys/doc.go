// Package keys implements the API key lifecycle: minting, hashing,
// validation, revocation, and the pure access decisions derived from a
// validated key's tenant and optional project scope.
package keys
