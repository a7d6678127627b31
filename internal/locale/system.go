package locale

import (
	"os"
	"strings"
)

var systemVars = []string{"LC_ALL", "LC_NUMERIC", "LANG"}

// SystemID returns the first of LC_ALL, LC_NUMERIC and LANG that names a real
// locale, or "" when none does. C and POSIX are skipped.
func SystemID() string {
	for _, name := range systemVars {
		v := strings.TrimSpace(os.Getenv(name))
		if v == "" {
			continue
		}

		base, _, _ := strings.Cut(v, ".")
		if base == "C" || base == "POSIX" {
			continue
		}

		return v
	}

	return ""
}

// NewSystemTable builds a table that defaults to the POSIX locale of the
// process, or to DefaultID when that locale is unset or unsupported.
func NewSystemTable() (*Table, error) {
	if id := SystemID(); id != "" {
		if t, err := NewTable(id); err == nil {
			return t, nil
		}
	}

	return NewTable(DefaultID)
}
