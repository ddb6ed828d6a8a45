package appcore

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"primerfig/internal/cmdutil"
	"primerfig/internal/common"
	"primerfig/internal/output"
	"primerfig/internal/pipeline"
	"primerfig/internal/writers"
)

type ExportOptions struct {
	Inputs []pipeline.Input
	Format string
	MaxHit float64 // negative keeps every primer
	Sort   bool
	Log    *cmdutil.Logger

	NoSiteExitCode int
}

// Export writes the primer list of every site with at least one record. It
// returns the process exit code.
func Export(ctx context.Context, stdout, stderr io.Writer, o ExportOptions) int {
	log := o.Log
	if log == nil {
		log = cmdutil.NewLogger(stderr, cmdutil.LevelWarn)
	}

	var rows []output.ExportRow
	sites := 0
	for i, in := range o.Inputs {
		if ctx.Err() != nil {
			return 130
		}
		label := fmt.Sprintf("%s: site %d", in.SourceFile, i+1)
		res, err := in.Source.Extract()
		if err != nil {
			log.Warnf("%s: %v", label, err)
			continue
		}
		for _, d := range res.Diagnostics {
			log.Warnf("%s: %v", label, d)
		}
		if len(res.Pairs) == 0 {
			log.Warnf("%s: no primer records", label)
			continue
		}
		sites++
		rows = append(rows, output.ExportRows(res.Site, res.Pairs, o.MaxHit)...)
	}
	if o.Sort {
		common.SortExportRows(rows)
	}

	outw := bufio.NewWriter(stdout)
	var err error
	switch o.Format {
	case output.ExportXLSX:
		err = output.WriteXLSX(outw, rows)
	default:
		err = output.WriteTSV(outw, rows)
	}
	if err == nil {
		err = writers.Flush(outw)
	}
	if writers.IsBrokenPipe(err) {
		return 0
	} else if err != nil {
		fmt.Fprintln(stderr, err)
		return 3
	}
	log.Infof("exported %d rows from %d sites", len(rows), sites)
	if sites == 0 {
		return o.NoSiteExitCode
	}
	return 0
}
