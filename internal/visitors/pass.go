package visitors

import (
	"primerfig/internal/cmdutil"
	"primerfig/internal/output"
	"primerfig/internal/pipeline"
)

// Rendered keeps sites that produced a drawing and logs the rest.
type Rendered struct {
	Log *cmdutil.Logger
}

func (v Rendered) Visit(r pipeline.Result) (keep bool, out output.Item, err error) {
	if r.Err != nil {
		v.Log.Warnf("%s: %v", Label(r), r.Err)
		return false, output.Item{}, nil
	}
	v.Log.Debugf("%s: %d rows, %gx%g", Label(r), len(r.Drawing.Rows), r.Drawing.Width, r.Drawing.Height)
	return true, r.Item, nil
}

// Label names a result in log lines.
func Label(r pipeline.Result) string {
	if r.SourceFile == "" {
		return r.PanelID
	}
	return r.SourceFile + ": " + r.PanelID
}
