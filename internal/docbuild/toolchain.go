package docbuild

import (
	"context"
	"os/exec"
	"regexp"
)

var cargoVersionRE = regexp.MustCompile(`(\d+\.\d+\.\d+)`)

// DetectCargoVersion attempts to detect the version of the cargo binary on
// PATH. Returns the version string (e.g., "1.80.1") or empty string if
// detection fails. This is best-effort and will not error if cargo is
// unavailable; the launcher does no version gating.
func DetectCargoVersion(ctx context.Context, cargo string) string {
	if cargo == "" {
		cargo = DefaultCargo
	}
	path, err := exec.LookPath(cargo)
	if err != nil {
		return ""
	}

	// #nosec G204 -- path is from exec.LookPath, not user-controlled
	out, err := exec.CommandContext(ctx, path, "--version").Output()
	if err != nil {
		return ""
	}
	return parseCargoVersion(string(out))
}

// parseCargoVersion extracts the semantic version from cargo version
// output, e.g. "cargo 1.80.1 (376290fb7 2024-07-16)".
func parseCargoVersion(output string) string {
	if m := cargoVersionRE.FindStringSubmatch(output); len(m) >= 2 {
		return m[1]
	}
	return ""
}
