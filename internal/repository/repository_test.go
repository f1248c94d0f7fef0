package repository

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fragmede/commentdeck/internal/api"
)

type fetchFunc func(ctx context.Context) ([]api.Comment, error)

func (f fetchFunc) FetchComments(ctx context.Context) ([]api.Comment, error) { return f(ctx) }

// drain reads every value from ch, failing the test if it does not close in time.
func drain(t *testing.T, ch <-chan Result) []Result {
	t.Helper()
	var got []Result
	timeout := time.After(2 * time.Second)
	for {
		select {
		case r, ok := <-ch:
			if !ok {
				return got
			}
			got = append(got, r)
		case <-timeout:
			t.Fatal("result channel was not closed")
		}
	}
}

func TestRepository_Comments_EmitsOnceThenCloses(t *testing.T) {
	want := []api.Comment{
		{PostID: 1, ID: 1, Name: "John", Email: "john@example.com", Body: "Hello"},
		{PostID: 1, ID: 2, Name: "Jane", Email: "jane@example.com", Body: "Hi"},
	}
	repo := New(fetchFunc(func(context.Context) ([]api.Comment, error) {
		return want, nil
	}), zerolog.Nop())

	results := drain(t, repo.Comments(context.Background()))
	require.Len(t, results, 1)
	require.NoError(t, results[0].Err)
	assert.Equal(t, want, results[0].Comments)
}

func TestRepository_Comments_PassesErrorThrough(t *testing.T) {
	sentinel := &api.NetworkError{URL: "http://example.test", Err: errors.New("Network Error")}
	repo := New(fetchFunc(func(context.Context) ([]api.Comment, error) {
		return nil, sentinel
	}), zerolog.Nop())

	results := drain(t, repo.Comments(context.Background()))
	require.Len(t, results, 1)
	assert.Same(t, sentinel, results[0].Err, "error must not be wrapped")
	assert.Nil(t, results[0].Comments)
}

func TestRepository_Comments_NilSliceBecomesEmpty(t *testing.T) {
	repo := New(fetchFunc(func(context.Context) ([]api.Comment, error) {
		return nil, nil
	}), zerolog.Nop())

	results := drain(t, repo.Comments(context.Background()))
	require.Len(t, results, 1)
	assert.NotNil(t, results[0].Comments)
	assert.Empty(t, results[0].Comments)
}

func TestRepository_Comments_DoesNotBlockCaller(t *testing.T) {
	release := make(chan struct{})
	repo := New(fetchFunc(func(context.Context) ([]api.Comment, error) {
		<-release
		return []api.Comment{}, nil
	}), zerolog.Nop())

	ch := repo.Comments(context.Background())
	select {
	case <-ch:
		t.Fatal("result delivered before the fetch finished")
	default:
	}

	close(release)
	assert.Len(t, drain(t, ch), 1)
}

func TestRepository_Comments_RecoversPanic(t *testing.T) {
	repo := New(fetchFunc(func(context.Context) ([]api.Comment, error) {
		panic("decoder exploded")
	}), zerolog.Nop())

	results := drain(t, repo.Comments(context.Background()))
	require.Len(t, results, 1)
	require.Error(t, results[0].Err)
	assert.Contains(t, results[0].Err.Error(), "decoder exploded")
}

func TestRepository_Comments_CancelsFetchContextWhenDone(t *testing.T) {
	var fetchCtx context.Context
	repo := New(fetchFunc(func(ctx context.Context) ([]api.Comment, error) {
		fetchCtx = ctx
		return []api.Comment{}, nil
	}), zerolog.Nop())

	results := drain(t, repo.Comments(context.Background()))
	require.Len(t, results, 1)
	require.NoError(t, results[0].Err)
	require.NotNil(t, fetchCtx)
	assert.ErrorIs(t, fetchCtx.Err(), context.Canceled)
}

func TestRepository_Comments_PropagatesCancellation(t *testing.T) {
	var sawCancel atomic.Bool
	repo := New(fetchFunc(func(ctx context.Context) ([]api.Comment, error) {
		<-ctx.Done()
		sawCancel.Store(true)
		return nil, ctx.Err()
	}), zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	ch := repo.Comments(ctx)
	cancel()

	results := drain(t, ch)
	require.Len(t, results, 1)
	assert.ErrorIs(t, results[0].Err, context.Canceled)
	assert.True(t, sawCancel.Load())
}
