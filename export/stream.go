package export

import (
	"context"
	"io"

	"golang.org/x/sync/errgroup"

	datagate "github.com/reoring/datagate"
)

// Stream runs an export into an io.Pipe and returns the read side, so a
// transport can hand the body straight to its response writer. The export
// goroutine stops when the reader is closed (the pipe write fails) or the
// context is cancelled between rows; the first error is surfaced to the
// reader.
func Stream(ctx context.Context, e Exporter, schema datagate.ExportSchema, rows RowSource) io.ReadCloser {
	pr, pw := io.Pipe()
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return e.Export(pw, schema, &ctxRows{ctx: ctx, inner: rows})
	})
	go func() {
		pw.CloseWithError(g.Wait())
	}()
	return pr
}

// ctxRows checks for cancellation at each pull, the only suspension point
// an exporter has.
type ctxRows struct {
	ctx   context.Context
	inner RowSource
}

func (c *ctxRows) Next() ([]datagate.Value, error) {
	select {
	case <-c.ctx.Done():
		return nil, c.ctx.Err()
	default:
		return c.inner.Next()
	}
}
