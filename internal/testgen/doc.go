// Package testgen expands one user test declaration into a subtree of
// parameterised leaves and grafts it into the process-wide registry.
//
// Where the original source used a family of type-specialised generators
// (one for zero-argument bodies, one per arity of N-argument bodies), this
// package uses a single generator: a Declaration carrying a body plus a list
// of argument tuples. A zero-argument body needs no tuples; Declare turns it
// directly into one leaf that calls the body.
package testgen
