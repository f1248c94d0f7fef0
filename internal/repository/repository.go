// Package repository adapts a one-shot comment fetch into an asynchronous
// single-result channel so callers on the UI goroutine never block on I/O.
package repository

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/fragmede/commentdeck/internal/api"
)

// Fetcher is the boundary over the remote comment source. It may block on I/O
// and must honour ctx cancellation. It does not retry.
type Fetcher interface {
	FetchComments(ctx context.Context) ([]api.Comment, error)
}

// Result is the single value delivered by Repository.Comments.
type Result struct {
	Comments []api.Comment
	Err      error
}

// Repository runs fetches on a background goroutine.
type Repository struct {
	fetcher Fetcher
	log     zerolog.Logger
}

// New creates a repository backed by the given fetcher.
func New(fetcher Fetcher, logger zerolog.Logger) *Repository {
	return &Repository{fetcher: fetcher, log: logger}
}

// Comments starts a fetch and returns immediately. The returned channel
// receives exactly one Result and is then closed. Fetcher errors are passed
// through untouched.
//
// The fetch runs under the group context, which is cancelled as soon as the
// fetch returns, so nothing the fetcher derived from it outlives the call.
func (r *Repository) Comments(ctx context.Context) <-chan Result {
	out := make(chan Result, 1)

	g, gctx := errgroup.WithContext(ctx)
	var comments []api.Comment
	g.Go(func() (err error) {
		defer func() {
			if p := recover(); p != nil {
				err = fmt.Errorf("comment fetch panicked: %v", p)
			}
		}()
		comments, err = r.fetcher.FetchComments(gctx)
		return err
	})

	go func() {
		defer close(out)
		err := g.Wait()
		if err != nil {
			r.log.Debug().Err(err).Msg("fetch failed")
			out <- Result{Err: err}
			return
		}
		if comments == nil {
			comments = []api.Comment{}
		}
		out <- Result{Comments: comments}
	}()

	return out
}
