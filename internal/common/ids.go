// internal/common/ids.go
package common

import "strings"

// FileStem turns a panel or site id into a safe file name stem. Runs of
// characters outside [A-Za-z0-9._-] collapse to one '_'; an empty result
// becomes "site".
func FileStem(id string) string {
	var b strings.Builder
	under := false
	for _, r := range strings.TrimSpace(id) {
		ok := r == '.' || r == '_' || r == '-' ||
			(r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
		if ok {
			b.WriteRune(r)
			under = false
			continue
		}
		if !under {
			b.WriteByte('_')
			under = true
		}
	}
	s := strings.Trim(b.String(), "._")
	if s == "" {
		return "site"
	}
	return s
}
