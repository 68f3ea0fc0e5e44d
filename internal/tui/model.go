package tui

import (
	"context"
	"time"

	"reel/internal/client"
	"reel/internal/config"
	"reel/internal/feed"
	"reel/internal/media"
	"reel/internal/tui/messages"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/harmonica"
)

const springFPS = 60

type toast struct {
	text    string
	isError bool
	expires time.Time
}

// Model is the bubbletea shell around the feed controller. It owns the
// terminal: keys and mouse become feed events, feed effects become
// commands, and all state lives in the embedded feed.State.
type Model struct {
	cfg    *config.Config
	params feed.Params
	state  feed.State
	styles Styles

	api        *client.Client
	dispatcher *client.Dispatcher
	media      *media.Manager
	cfgWatcher *config.Watcher

	spinner  spinner.Model
	composer textinput.Model

	// Snap-back spring animation over the visual drag offset.
	spring       harmonica.Spring
	springOffset float64
	springVel    float64
	springActive bool

	width, height int

	// Mouse gesture bookkeeping: a press only becomes a drag once the
	// pointer moves; an unmoved press-release is a tap.
	pressed bool
	pressY  int
	moved   bool

	toasts   []toast
	quitting bool
}

// New wires the model together.
func New(cfg *config.Config, api *client.Client, watcher *config.Watcher) *Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot

	composer := textinput.New()
	composer.Placeholder = "add a comment..."
	composer.CharLimit = 280

	params := paramsFromConfig(cfg, api)
	return &Model{
		cfg:        cfg,
		params:     params,
		state:      feed.NewState(params),
		styles:     NewStyles(cfg),
		api:        api,
		dispatcher: client.NewDispatcher(api),
		media:      media.NewManager(),
		cfgWatcher: watcher,
		spinner:    sp,
		composer:   composer,
		spring:     harmonica.NewSpring(harmonica.FPS(springFPS), 7.0, 0.8),
	}
}

func paramsFromConfig(cfg *config.Config, api *client.Client) feed.Params {
	return feed.Params{
		DragThreshold:     cfg.Feed.DragThresholdPct,
		PreloadRange:      cfg.Feed.PreloadRange,
		DoubleTapWindow:   time.Duration(cfg.Feed.DoubleTapWindowMs) * time.Millisecond,
		LikePulse:         time.Duration(cfg.Feed.LikePulseMs) * time.Millisecond,
		HeartBurst:        time.Duration(cfg.Feed.HeartBurstMs) * time.Millisecond,
		FollowSettle:      time.Duration(cfg.Feed.FollowSettleMs) * time.Millisecond,
		RollbackOnFailure: cfg.Behavior.RollbackOnFailure,
		StartMuted:        cfg.Behavior.StartMuted,
		Autoplay:          cfg.Behavior.Autoplay,
		ShareBaseURL:      api.BaseURL(),
	}
}

// State exposes the controller state for tests and views.
func (m *Model) State() feed.State {
	return m.state
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		m.fetchFeedCmd(),
		m.spinner.Tick,
		m.waitMediaCmd(),
		m.waitMutationCmd(),
	}
	if m.cfgWatcher != nil {
		m.cfgWatcher.Start()
		cmds = append(cmds, m.waitConfigCmd())
	}
	return tea.Batch(cmds...)
}

func (m *Model) fetchFeedCmd() tea.Cmd {
	api := m.api
	cfg := m.cfg
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.RequestTimeout())
		defer cancel()
		posts, err := api.FetchFeed(ctx)
		if err != nil {
			return messages.FeedLoadedMsg{Err: err}
		}
		posts, err = feed.FilterPosts(posts, cfg.Feed.Filter)
		return messages.FeedLoadedMsg{Posts: posts, Err: err}
	}
}

func (m *Model) waitMediaCmd() tea.Cmd {
	events := m.media.Events()
	return func() tea.Msg {
		ev, ok := <-events
		if !ok {
			return nil
		}
		return messages.MediaEventMsg{Event: ev}
	}
}

func (m *Model) waitMutationCmd() tea.Cmd {
	results := m.dispatcher.Results()
	return func() tea.Msg {
		res, ok := <-results
		if !ok {
			return nil
		}
		return messages.MutationResultMsg{Result: res}
	}
}

func (m *Model) waitConfigCmd() tea.Cmd {
	updates := m.cfgWatcher.Updates()
	return func() tea.Msg {
		cfg, ok := <-updates
		if !ok {
			return nil
		}
		return messages.ConfigReloadedMsg{Config: cfg}
	}
}

func (m *Model) springTickCmd() tea.Cmd {
	return tea.Tick(time.Second/springFPS, func(t time.Time) tea.Msg {
		return messages.SpringTickMsg(t)
	})
}

func (m *Model) toastTickCmd() tea.Cmd {
	return tea.Tick(250*time.Millisecond, func(t time.Time) tea.Msg {
		return messages.ToastTickMsg(t)
	})
}

// teardown dispatches the final controller event and releases every
// background resource. Safe to call more than once.
func (m *Model) teardown() {
	if m.quitting {
		return
	}
	m.quitting = true
	m.state, _ = feed.Step(m.params, m.state, feed.TornDown{})
	m.dispatcher.Close()
	m.media.Close()
	if m.cfgWatcher != nil {
		m.cfgWatcher.Stop()
	}
}
