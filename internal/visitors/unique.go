package visitors

import (
	"primerfig/internal/cmdutil"
	"primerfig/internal/output"
	"primerfig/internal/pipeline"
	"primerfig/internal/runutil"
)

// UniqueSites wraps Rendered and drops a drawing whose site key
// ("template-start-length") was already kept. Only the most recent
// runutil.DefaultSetCapacity keys are remembered.
type UniqueSites struct {
	Rendered
	seen *runutil.LRUSet[string]
}

func NewUniqueSites(log *cmdutil.Logger) *UniqueSites {
	return &UniqueSites{Rendered: Rendered{Log: log}, seen: runutil.NewLRUSet[string](0)}
}

func (v *UniqueSites) Visit(r pipeline.Result) (keep bool, out output.Item, err error) {
	keep, out, err = v.Rendered.Visit(r)
	if !keep || err != nil {
		return keep, out, err
	}
	if v.seen.Add(r.Site.Key()) {
		v.Log.Infof("%s: duplicate site %s skipped", Label(r), r.Site.Key())
		return false, output.Item{}, nil
	}
	return true, out, nil
}
