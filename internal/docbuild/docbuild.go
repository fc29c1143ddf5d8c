// Package docbuild assembles the cargo doc invocation the launcher exists
// to run.
package docbuild

import (
	"git.home.luguber.info/inful/doclaunch/internal/runner"
)

// DefaultCargo is the toolchain binary, resolved from PATH.
const DefaultCargo = "cargo"

// Build describes one documentation build. The doc flags are fixed:
// dependency docs are skipped and private items are included on every
// build. Only viewer opening varies, because watch rebuilds refresh the
// tab the first build already opened.
type Build struct {
	Root  string // project root; working directory for cargo
	Cargo string // cargo binary; DefaultCargo when empty
	Open  bool   // pass --open so the result loads in the viewer
}

// Args returns the cargo argument vector for the build.
func (b Build) Args() []string {
	args := []string{"doc", "--no-deps", "--document-private-items"}
	if b.Open {
		args = append(args, "--open")
	}
	return args
}

// Step adapts the build to a runner step rooted at the project directory.
func (b Build) Step() runner.Step {
	cargo := b.Cargo
	if cargo == "" {
		cargo = DefaultCargo
	}
	return runner.Step{
		Name: "cargo-doc",
		Argv: append([]string{cargo}, b.Args()...),
		Dir:  b.Root,
	}
}
