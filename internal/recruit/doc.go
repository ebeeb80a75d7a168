// Package recruit implements the public-recruitment tag calculator: a fixed
// vocabulary of recruit terms with stable bit positions, a normalizer for
// free-form tag input, and four matching modes (any, all, grouped, suggest)
// over bit-encoded operator attributes.
//
// The engine is pure: it operates on an immutable catalog snapshot supplied by
// the caller and performs no I/O.
package recruit
