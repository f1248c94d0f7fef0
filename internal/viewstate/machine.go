package viewstate

import (
	"context"
	"fmt"
	"maps"
	"sync"

	"github.com/rs/zerolog"

	"github.com/fragmede/commentdeck/internal/api"
	"github.com/fragmede/commentdeck/internal/repository"
)

// Repository is the asynchronous source of comments. Comments must not block;
// the channel delivers one result and is closed.
type Repository interface {
	Comments(ctx context.Context) <-chan repository.Result
}

// Machine owns the screen State and the image selection map.
//
// All mutations happen under mu and replace the state value wholesale. Each
// fetch is tagged with a generation; only the newest generation may publish,
// so results from a cancelled or superseded fetch are dropped.
type Machine struct {
	repo Repository
	log  zerolog.Logger

	ctx      context.Context
	shutdown context.CancelFunc

	mu       sync.Mutex
	state    State
	images   map[int]ImageRef
	gen      uint64
	inFlight bool
	cancel   context.CancelFunc
	closed   bool
	onChange func()
}

// New creates a machine in the Loading state. No fetch starts until Fetch or
// Retry is called.
func New(repo Repository, logger zerolog.Logger) *Machine {
	ctx, cancel := context.WithCancel(context.Background())
	return &Machine{
		repo:     repo,
		log:      logger,
		ctx:      ctx,
		shutdown: cancel,
		state:    Loading{},
		images:   make(map[int]ImageRef),
	}
}

// SetOnChange registers fn to run after every transition or image selection.
// fn runs without the machine lock held and may be called from any goroutine.
func (m *Machine) SetOnChange(fn func()) {
	m.mu.Lock()
	m.onChange = fn
	m.mu.Unlock()
}

// State returns the current state.
func (m *Machine) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Fetch starts loading comments unless a fetch is already in flight or the
// machine is closed. Outcomes are only observable through State.
func (m *Machine) Fetch() {
	m.mu.Lock()
	if m.closed || m.inFlight {
		m.mu.Unlock()
		m.log.Debug().Msg("fetch ignored")
		return
	}
	m.startLocked()
	m.mu.Unlock()
	m.notify()
}

// Retry abandons any in-flight fetch and always starts a new one.
func (m *Machine) Retry() {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return
	}
	if m.cancel != nil {
		m.cancel()
	}
	m.startLocked()
	m.mu.Unlock()
	m.notify()
}

// DismissError accepts an empty result after a failure. Outside the Error
// state it does nothing.
func (m *Machine) DismissError() {
	m.mu.Lock()
	if _, ok := m.state.(Error); !ok || m.closed {
		m.mu.Unlock()
		return
	}
	m.state = Success{Comments: []api.Comment{}}
	m.mu.Unlock()
	m.log.Debug().Msg("error dismissed")
	m.notify()
}

// SelectImage records ref as the image for commentID, replacing any earlier
// choice. It never changes State.
func (m *Machine) SelectImage(commentID int, ref ImageRef) {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return
	}
	m.images[commentID] = ref
	m.mu.Unlock()
	m.log.Debug().Int("comment_id", commentID).Str("image", string(ref)).Msg("image selected")
	m.notify()
}

// Image returns the selected image for commentID.
func (m *Machine) Image(commentID int) (ImageRef, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ref, ok := m.images[commentID]
	return ref, ok
}

// Images returns a copy of the selection map.
func (m *Machine) Images() map[int]ImageRef {
	m.mu.Lock()
	defer m.mu.Unlock()
	return maps.Clone(m.images)
}

// Close cancels any in-flight fetch and makes every later call a no-op.
func (m *Machine) Close() {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return
	}
	m.closed = true
	m.inFlight = false
	m.mu.Unlock()
	m.shutdown()
}

// startLocked moves to Loading and launches one fetch. m.mu must be held.
func (m *Machine) startLocked() {
	m.gen++
	ctx, cancel := context.WithCancel(m.ctx)
	m.cancel = cancel
	m.inFlight = true
	m.state = Loading{}
	go m.await(ctx, m.gen)
}

func (m *Machine) await(ctx context.Context, gen uint64) {
	var res repository.Result
	func() {
		defer func() {
			if p := recover(); p != nil {
				res = repository.Result{Err: fmt.Errorf("repository panicked: %v", p)}
			}
		}()
		select {
		case r, ok := <-m.repo.Comments(ctx):
			if !ok {
				r.Err = fmt.Errorf("repository closed without a result")
			}
			res = r
		case <-ctx.Done():
			res = repository.Result{Err: ctx.Err()}
		}
	}()
	m.finish(gen, res)
}

func (m *Machine) finish(gen uint64, res repository.Result) {
	m.mu.Lock()
	if m.closed || gen != m.gen {
		m.mu.Unlock()
		m.log.Debug().Uint64("generation", gen).Msg("stale fetch result dropped")
		return
	}
	m.inFlight = false
	m.cancel()
	m.cancel = nil

	if res.Err != nil {
		m.state = Error{MessageKey: KeyFetchFailed}
		m.mu.Unlock()
		m.log.Error().Err(res.Err).Msg("comments fetch failed")
		m.notify()
		return
	}

	comments := res.Comments
	if comments == nil {
		comments = []api.Comment{}
	}
	m.state = Success{Comments: comments}
	m.mu.Unlock()
	m.log.Info().Int("count", len(comments)).Msg("comments loaded")
	m.notify()
}

func (m *Machine) notify() {
	m.mu.Lock()
	fn := m.onChange
	m.mu.Unlock()
	if fn != nil {
		fn()
	}
}
