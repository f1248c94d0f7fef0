package ui

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fragmede/commentdeck/internal/api"
	"github.com/fragmede/commentdeck/internal/repository"
	"github.com/fragmede/commentdeck/internal/viewstate"
)

type repoFunc func(ctx context.Context) <-chan repository.Result

func (f repoFunc) Comments(ctx context.Context) <-chan repository.Result { return f(ctx) }

func replying(res repository.Result) repoFunc {
	return func(context.Context) <-chan repository.Result {
		ch := make(chan repository.Result, 1)
		ch <- res
		close(ch)
		return ch
	}
}

func TestRunPlain_Success(t *testing.T) {
	m := viewstate.New(replying(repository.Result{Comments: []api.Comment{
		john(),
		{PostID: 1, ID: 2, Name: "Ada", Email: "ada@example.com", Body: "line one\nline two"},
	}}), zerolog.Nop())
	defer m.Close()

	var buf bytes.Buffer
	require.NoError(t, RunPlain(context.Background(), m, &buf, 80))

	out := buf.String()
	assert.Contains(t, out, "ID:    1\nName:  John\nEmail: john@example.com\nBody:  Hello\n")
	assert.Contains(t, out, "Body:  line one\n       line two\n")
	assert.Less(t, bytes.Index(buf.Bytes(), []byte("John")), bytes.Index(buf.Bytes(), []byte("Ada")))
}

func TestRunPlain_Failure(t *testing.T) {
	m := viewstate.New(replying(repository.Result{Err: errors.New("Network Error")}), zerolog.Nop())
	defer m.Close()

	var buf bytes.Buffer
	err := RunPlain(context.Background(), m, &buf, 80)

	require.ErrorIs(t, err, ErrFetchFailed)
	assert.Contains(t, buf.String(), Text(viewstate.KeyFetchFailed))
	assert.NotContains(t, buf.String(), "Network Error")
}

func TestRunPlain_EmptyList(t *testing.T) {
	m := viewstate.New(replying(repository.Result{Comments: []api.Comment{}}), zerolog.Nop())
	defer m.Close()

	var buf bytes.Buffer
	require.NoError(t, RunPlain(context.Background(), m, &buf, 80))
	assert.Equal(t, "No comments loaded\n", buf.String())
}

func TestRunPlain_ContextCancelled(t *testing.T) {
	never := repoFunc(func(context.Context) <-chan repository.Result {
		return make(chan repository.Result)
	})
	m := viewstate.New(never, zerolog.Nop())
	defer m.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var buf bytes.Buffer
	err := RunPlain(ctx, m, &buf, 80)
	require.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, buf.String())
}

func TestWritePlain_ShowsSelectedImage(t *testing.T) {
	images := map[int]viewstate.ImageRef{1: "/pics/cat.png", 2: ""}
	lookup := func(id int) (viewstate.ImageRef, bool) {
		ref, ok := images[id]
		return ref, ok
	}
	other := john()
	other.ID = 2

	var buf bytes.Buffer
	require.NoError(t, WritePlain(&buf, viewstate.Success{Comments: []api.Comment{john(), other}}, lookup, 80))

	out := buf.String()
	assert.Contains(t, out, "Image: /pics/cat.png")
	assert.Equal(t, 1, bytes.Count(buf.Bytes(), []byte("Image:")))
}

func TestWritePlain_EmptyState(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WritePlain(&buf, viewstate.Empty{}, nil, 80))
	assert.Equal(t, "No comments loaded\n", buf.String())
}

func TestText_UnknownKeyFallsBack(t *testing.T) {
	assert.Equal(t, "Retry", Text(KeyRetryButton))
	assert.Equal(t, "some_key", Text("some_key"))
}

func TestWritePlain_BodyKeepsAngleBrackets(t *testing.T) {
	c := john()
	c.Body = "if a<b then c, use <stdin> for input"
	none := func(int) (viewstate.ImageRef, bool) { return "", false }

	var buf bytes.Buffer
	require.NoError(t, WritePlain(&buf, viewstate.Success{Comments: []api.Comment{c}}, none, 80))
	assert.Contains(t, buf.String(), "Body:  if a<b then c, use <stdin> for input\n")
}
