// Package account implements the identity store and credential verifier.
//
// Layering:
// - domain: sentinel errors
// - application: register/login/authenticate use-cases using explicit ports
// - ports: stable boundaries for persistence, hashing, and token issuance
// - adapters: concrete memory, postgres, bcrypt, jwt, and HTTP implementations
// - transport: module-private DTOs for HTTP contracts
//
// Boundary notes:
// - Keep this module self-contained under identity-access context.
// - Other contexts resolve principals through the PrincipalResolver port only;
//   they never see password hashes or token internals.
package account
