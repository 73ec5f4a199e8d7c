// Package testkit holds invariant checks shared by tests and fuzz harnesses.
package testkit

import (
	"fmt"
	"os"
	"strings"

	"orbit/internal/driver"
	"orbit/internal/session"
	"orbit/internal/source"
)

// CheckUnit runs the invariants every Unit produced by the pipeline must
// satisfy:
// 1) Digest matches Source
// 2) every pragma has a target and a name without whitespace
// 3) every import points at an existing directory
// 4) exports are either absent (pipeline stopped early) or one per export
// pragma, mangled with the session convention
func CheckUnit(u *driver.Unit, sess *session.Session) error {
	if u == nil {
		return fmt.Errorf("nil unit")
	}
	if u.Digest != source.DigestOf([]byte(u.Source)) {
		return fmt.Errorf("digest %s does not match source", u.Digest)
	}
	exportPragmas := 0
	for i, p := range u.Pragmas {
		if p.Target == "" || p.Name == "" {
			return fmt.Errorf("pragma %d has empty target or name: %+v", i, p)
		}
		if strings.ContainsAny(p.Target+p.Name, " \t\r\n") {
			return fmt.Errorf("pragma %d contains whitespace: %+v", i, p)
		}
		if p.Target == driver.PhaseExport {
			exportPragmas++
		}
	}
	for _, imp := range u.Imports {
		st, err := os.Stat(imp.Dir)
		if err != nil || !st.IsDir() {
			return fmt.Errorf("import %s resolved to %q which is not a directory", imp.Module, imp.Dir)
		}
	}
	if len(u.Exports) != 0 && len(u.Exports) != exportPragmas {
		return fmt.Errorf("%d exports for %d export pragmas", len(u.Exports), exportPragmas)
	}
	for _, e := range u.Exports {
		if want := sess.Mangle(e.Name); e.Symbol != want {
			return fmt.Errorf("export %s mangled to %q, want %q", e.Name, e.Symbol, want)
		}
	}
	return nil
}
