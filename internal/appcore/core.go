// internal/appcore/core.go
package appcore

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"runtime"

	"primerfig/core/diagram"
	"primerfig/core/view"
	"primerfig/core/viewport"
	"primerfig/internal/cmdutil"
	"primerfig/internal/output"
	"primerfig/internal/pipeline"
	"primerfig/internal/writers"
)

type Options struct {
	Inputs []pipeline.Input

	Width, Height float64
	Zoom          float64
	Threads       int

	Diagram  diagram.Options
	Viewport viewport.Options

	// Log receives per-site warnings; nil logs warnings to stderr.
	Log *cmdutil.Logger

	NoDiagramExitCode int
}

type VisitorFunc func(pipeline.Result) (keep bool, out output.Item, err error)

type WriterFactory interface {
	Start(out io.Writer, bufSize int) (chan<- output.Item, <-chan error)
}

// Run renders every input through one view controller, filters the results
// with visit and streams the kept drawings to wf. It returns the process
// exit code.
func Run(parent context.Context, stdout, stderr io.Writer, o Options, visit VisitorFunc, wf WriterFactory) int {
	outw := bufio.NewWriter(stdout)

	log := o.Log
	if log == nil {
		log = cmdutil.NewLogger(stderr, cmdutil.LevelWarn)
	}

	thr := o.Threads
	if thr <= 0 {
		thr = runtime.NumCPU()
	}

	ctl := view.NewController(
		view.WithDiagramOptions(o.Diagram),
		view.WithViewportFactory(viewport.NewFactory(o.Viewport)),
		view.WithWarnFunc(func(panelID string, err error) { log.Warnf("%s: %v", panelID, err) }),
	)

	inCh, writeErr := wf.Start(outw, thr*4)

	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	total, perr := cmdutil.RunStream[output.Item](
		ctx,
		pipeline.Config{Threads: thr, Width: o.Width, Height: o.Height, Zoom: o.Zoom},
		ctl,
		o.Inputs,
		visit,
		func(it output.Item) error {
			select {
			case inCh <- it:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		},
	)

	close(inCh)

	if werr := <-writeErr; writers.IsBrokenPipe(werr) {
		return 0
	} else if werr != nil {
		fmt.Fprintln(stderr, werr)
		return 3
	}
	if e := writers.Flush(outw); e != nil {
		fmt.Fprintln(stderr, e)
		return 3
	}

	if perr != nil {
		if errors.Is(perr, context.Canceled) {
			return 130
		}
		fmt.Fprintln(stderr, perr)
		return 3
	}
	log.Infof("rendered %d of %d sites", total, len(o.Inputs))
	if total == 0 {
		return o.NoDiagramExitCode
	}
	return 0
}
