// Package diagnostics is the human-readable failure stream described in
// spec §6.5: compile/build/train paths that return an error also write one
// line describing it here, rather than relying solely on the returned
// error value. The sink defaults to os.Stderr and is swappable for tests.
package diagnostics
