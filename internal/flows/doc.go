// Package flows contains pure-function orchestrators for every Engine
// operation.
//
// Each flow function (RunLogin, RunRefresh, RunLogout, RunValidateAccess)
// accepts a typed dependency struct and returns a result carrying either the
// issued credential or a failure kind. Flows never panic and never let a raw
// dependency error escape unclassified; the Engine maps failure kinds onto
// the public sentinel errors.
//
// # Architecture boundaries
//
// Flow functions coordinate calls to the codec, revocation store, identity
// provider, and password hasher. They do NOT own any of these resources —
// ownership stays with the Engine, which also applies per-call timeouts
// before handing closures in.
//
// # What this package must NOT do
//
//   - Hold mutable state between calls.
//   - Import guestauth (to avoid import cycles).
//   - Perform I/O directly — all I/O is mediated through dependency closures.
package flows
