//go:build !production

package testgraph

// debugChecks gates AddChild's ancestor-cycle assertion. Development and
// test builds pay the O(depth) walk on every graft; a production build
// dropping this file (via -tags production) skips it entirely.
const debugChecks = true
