// Package channel implements the channel registry, membership relation,
// message store, and the authorization engine that guards them.
//
// Layering:
// - domain: sentinel errors and the pure authorization policy
// - application: channel/message use-cases using explicit ports
// - ports: stable boundaries for persistence and principal resolution
// - adapters: concrete memory, postgres, and HTTP implementations
// - transport: module-private DTOs for HTTP contracts
//
// Boundary notes:
// - Keep this module self-contained under community-experience context.
// - Principals are resolved through the PrincipalResolver port; this module
//   never reads identity storage directly.
// - Every authorization decision is computed from facts read within the
//   current operation. Roles are never cached across requests.
package channel
