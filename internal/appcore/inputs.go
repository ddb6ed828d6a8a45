package appcore

import (
	"primerfig/core/extract"
	"primerfig/internal/pipeline"
)

// LoadInputs reads every path ("-" for stdin) and lists its sites in order.
func LoadInputs(paths []string, format string) ([]pipeline.Input, error) {
	var out []pipeline.Input
	for _, p := range paths {
		srcs, err := extract.Load(p, format)
		if err != nil {
			return nil, err
		}
		name := p
		if p == "-" {
			name = "<stdin>"
		}
		for _, s := range srcs {
			out = append(out, pipeline.Input{Source: s, SourceFile: name})
		}
	}
	return out, nil
}
