// Package card defines the typed element model renderers consume: a closed
// set of element variants behind the Element interface, the safe resolver
// used to recover a concrete variant from a wrapped handle, and the parser
// that turns card JSON into that model after validating it against the
// generated card JSON Schema.
package card
