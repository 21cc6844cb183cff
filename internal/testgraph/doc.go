// Package testgraph implements the entity graph the rest of the framework
// operates on: a tree of named nodes, each optionally carrying a runnable
// test definition. Nodes are created once during registration and never
// mutated again once the scheduler starts running tests.
package testgraph
