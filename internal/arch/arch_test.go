// ./internal/arch/arch_test.go
package arch

import (
	"bytes"
	"encoding/json"
	"io"
	"os/exec"
	"strings"
	"testing"
)

type pkg struct {
	ImportPath string
	Imports    []string
	Standard   bool
}

func TestImportBoundaries(t *testing.T) {
	cmd := exec.Command("go", "list", "-json", "./...")
	var out bytes.Buffer
	cmd.Stdout = &out
	if err := cmd.Run(); err != nil {
		t.Fatalf("go list: %v", err)
	}
	dec := json.NewDecoder(&out)

	app := []string{
		"primerfig/internal/appcore", "primerfig/internal/app",
		"primerfig/internal/cli", "primerfig/internal/config", "primerfig/cmd/",
	}
	bans := map[string][]string{
		// The engine is embeddable: nothing under core may reach into internal.
		"primerfig/core/":              {"primerfig/internal/", "primerfig/cmd/"},
		"primerfig/pkg/":               {"primerfig/internal/", "primerfig/cmd/"},
		"primerfig/internal/pipeline":  app,
		"primerfig/internal/writers":   append([]string{"primerfig/internal/pipeline"}, app...),
		"primerfig/internal/output":    append([]string{"primerfig/internal/pipeline", "primerfig/internal/writers"}, app...),
		"primerfig/internal/pretty":    append([]string{"primerfig/internal/pipeline", "primerfig/internal/writers"}, app...),
		"primerfig/internal/cmdutil":   app,
		"primerfig/internal/jsonutil":  {"primerfig/"},
		"primerfig/internal/jsonlutil": append([]string{"primerfig/internal/writers", "primerfig/internal/output"}, app...),
	}

	var violations []string
	for {
		var p pkg
		if err := dec.Decode(&p); err == io.EOF {
			break
		} else if err != nil {
			t.Fatalf("decode: %v", err)
		}
		if !strings.HasPrefix(p.ImportPath, "primerfig/") {
			continue
		}
		imp := p.ImportPath
		for prefix, forbidden := range bans {
			if !strings.HasPrefix(imp, prefix) {
				continue
			}
			for _, dep := range p.Imports {
				if !strings.HasPrefix(dep, "primerfig/") {
					continue
				}
				for _, ban := range forbidden {
					if strings.HasPrefix(dep, ban) {
						violations = append(violations, imp+" → "+dep)
					}
				}
			}
		}
	}

	if len(violations) > 0 {
		t.Fatalf("import boundary violations:\n  %s", strings.Join(violations, "\n  "))
	}
}
