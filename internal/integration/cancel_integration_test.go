package integration

import (
	"context"
	"fmt"
	"io"
	"strings"
	"testing"

	"primerfig/internal/app"
)

func TestCancelled_Exit130(t *testing.T) {
	// Many sites so the batch is still running when the context ends.
	var b strings.Builder
	for i := 0; i < 500; i++ {
		fmt.Fprintf(&b, "#site chr%d 1000 200\n", i)
		for j := 0; j < 20; j++ {
			fmt.Fprintf(&b, "p%d %d-%d %d-%d %d\n", j, 900-j*10, 920-j*10, 1300+j*10, 1320+j*10, j+1)
		}
	}
	in := write(t, "many.tsv", b.String())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	code := app.RunContext(ctx, []string{"render", "-f", "png", "-o", t.TempDir(), in}, io.Discard, io.Discard)
	if code != 130 {
		t.Fatalf("expected exit 130 on cancel, got %d", code)
	}
}
