package tui

import (
	"context"
	"math"
	"time"

	"reel/internal/feed"
	"reel/internal/media"
	"reel/internal/platform"
	"reel/internal/tui/messages"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// Update implements tea.Model. Everything funnels into dispatch, which
// runs the pure transition function and executes its effects.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.composer.Width = max(20, msg.Width-12)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case messages.FeedLoadedMsg:
		if msg.Err != nil {
			return m.dispatch(feed.FeedLoadFailed{Err: msg.Err})
		}
		return m.dispatch(feed.FeedLoaded{Posts: msg.Posts})

	case messages.MediaEventMsg:
		model, cmd := m.dispatch(mediaToEvent(msg.Event))
		return model, tea.Batch(cmd, m.waitMediaCmd())

	case messages.MutationResultMsg:
		res := msg.Result
		ev := feed.MutationResolved{
			Op:      res.Op,
			PostID:  res.PostID,
			Author:  res.Author,
			Comment: res.Comment,
			Err:     res.Err,
		}
		model, cmd := m.dispatch(ev)
		return model, tea.Batch(cmd, m.waitMutationCmd())

	case messages.CommentsFetchedMsg:
		return m.dispatch(feed.CommentsLoaded{
			PostID:   msg.PostID,
			Comments: msg.Comments,
			Err:      msg.Err,
		})

	case messages.TimerMsg:
		return m.dispatch(feed.TimerFired{Key: msg.Key, Gen: msg.Gen})

	case messages.SpringTickMsg:
		return m.stepSpring()

	case messages.ToastTickMsg:
		now := time.Now()
		kept := m.toasts[:0]
		for _, t := range m.toasts {
			if t.expires.After(now) {
				kept = append(kept, t)
			}
		}
		m.toasts = kept
		if len(m.toasts) > 0 {
			return m, m.toastTickCmd()
		}
		return m, nil

	case messages.ConfigReloadedMsg:
		m.cfg = msg.Config
		m.params = paramsFromConfig(msg.Config, m.api)
		m.styles = NewStyles(msg.Config)
		m.pushToast("config reloaded", false)
		cmds := []tea.Cmd{m.toastTickCmd()}
		if m.cfgWatcher != nil {
			cmds = append(cmds, m.waitConfigCmd())
		}
		return m, tea.Batch(cmds...)
	}

	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// The comment composer captures keys while the panel is open.
	if m.state.CommentsOpen {
		switch msg.String() {
		case "esc":
			m.composer.Reset()
			m.composer.Blur()
			return m.dispatch(feed.CommentsToggled{})
		case "enter":
			return m.dispatch(feed.CommentSubmitted{})
		case "ctrl+c":
			m.teardown()
			return m, tea.Quit
		default:
			var cmd tea.Cmd
			m.composer, cmd = m.composer.Update(msg)
			model, dcmd := m.dispatch(feed.CommentDraftChanged{Text: m.composer.Value()})
			return model, tea.Batch(cmd, dcmd)
		}
	}

	switch msg.String() {
	case "q", "esc", "ctrl+c":
		m.teardown()
		return m, tea.Quit
	case "up", "k":
		return m.dispatch(feed.PrevRequested{})
	case "down", "j":
		return m.dispatch(feed.NextRequested{})
	case " ":
		return m.dispatch(feed.PauseToggled{})
	case "m":
		return m.dispatch(feed.MuteToggled{})
	case "l":
		return m.dispatch(feed.LikeToggled{})
	case "s":
		return m.dispatch(feed.SaveToggled{})
	case "f":
		return m.dispatch(feed.FollowToggled{})
	case "y":
		return m.dispatch(feed.ShareRequested{})
	case "r":
		return m.dispatch(feed.RetryRequested{})
	case "e":
		return m.dispatch(feed.CaptionToggled{})
	case "c":
		m.composer.Reset()
		m.composer.Focus()
		return m.dispatch(feed.CommentsToggled{})
	}
	return m, nil
}

// handleMouse turns the pointer into the drag gesture. A press only
// becomes a drag once the pointer actually moves; an unmoved
// press-release pair is a tap on the media surface.
func (m *Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch msg.Action {
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			return m.dispatch(feed.PrevRequested{})
		case tea.MouseButtonWheelDown:
			return m.dispatch(feed.NextRequested{})
		case tea.MouseButtonLeft:
		default:
			return m, nil
		}
		m.pressed = true
		m.moved = false
		m.pressY = msg.Y
		return m, nil

	case tea.MouseActionMotion:
		if !m.pressed {
			return m, nil
		}
		if !m.moved {
			if msg.Y == m.pressY {
				return m, nil
			}
			m.moved = true
			model, cmd := m.dispatch(feed.DragStarted{})
			mm := model.(*Model)
			model2, cmd2 := mm.dispatch(feed.DragMoved{Offset: mm.dragOffset(msg.Y)})
			return model2, tea.Batch(cmd, cmd2)
		}
		return m.dispatch(feed.DragMoved{Offset: m.dragOffset(msg.Y)})

	case tea.MouseActionRelease:
		pressed, moved := m.pressed, m.moved
		m.pressed = false
		m.moved = false
		if !pressed {
			return m, nil
		}
		if moved {
			return m.dispatch(feed.DragReleased{})
		}
		return m.dispatch(feed.Tapped{})
	}
	return m, nil
}

// dragOffset converts a pointer row into the signed fraction of
// viewport height the gesture has covered.
func (m *Model) dragOffset(y int) float64 {
	h := m.height
	if h <= 0 {
		h = 24
	}
	return float64(y-m.pressY) / float64(h)
}

// dispatch runs one controller event through the transition function
// and executes the resulting effects.
func (m *Model) dispatch(ev feed.Event) (tea.Model, tea.Cmd) {
	next, effects := feed.Step(m.params, m.state, ev)
	m.state = next

	var cmds []tea.Cmd
	for _, eff := range effects {
		if cmd := m.runEffect(eff); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return m, tea.Batch(cmds...)
}

func (m *Model) runEffect(eff feed.Effect) tea.Cmd {
	switch eff := eff.(type) {
	case feed.LoadMedia:
		m.media.Load(eff.Post, eff.AndPlay)
		return nil
	case feed.UnloadMedia:
		m.media.Unload(eff.PostID)
		return nil
	case feed.PlayMedia:
		m.media.Play(eff.PostID)
		return nil
	case feed.PauseMedia:
		m.media.Pause(eff.PostID)
		return nil
	case feed.SetMuted:
		m.media.SetMuted(eff.Muted)
		return nil
	case feed.FireMutation:
		m.dispatcher.Dispatch(eff)
		return nil
	case feed.FetchComments:
		return m.fetchCommentsCmd(eff.PostID)
	case feed.StartTimer:
		key, gen := eff.Key, eff.Gen
		return tea.Tick(eff.Duration, func(time.Time) tea.Msg {
			return messages.TimerMsg{Key: key, Gen: gen}
		})
	case feed.AnimateSnap:
		m.springOffset = eff.From + float64(eff.Direction)
		m.springVel = 0
		m.springActive = true
		return m.springTickCmd()
	case feed.CopyToClipboard:
		text := eff.Text
		return func() tea.Msg {
			platform.CopyToClipboard(text)
			return nil
		}
	case feed.HapticPulse:
		return func() tea.Msg {
			platform.HapticPulse()
			return nil
		}
	case feed.ShowToast:
		m.pushToast(eff.Text, eff.IsError)
		return m.toastTickCmd()
	}
	return nil
}

func (m *Model) fetchCommentsCmd(postID string) tea.Cmd {
	api := m.api
	timeout := m.cfg.RequestTimeout()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		comments, err := api.Comments(ctx, postID)
		return messages.CommentsFetchedMsg{PostID: postID, Comments: comments, Err: err}
	}
}

// stepSpring advances the snap animation one frame and reports
// completion to the controller when it settles.
func (m *Model) stepSpring() (tea.Model, tea.Cmd) {
	if !m.springActive {
		return m, nil
	}
	m.springOffset, m.springVel = m.spring.Update(m.springOffset, m.springVel, 0)
	if math.Abs(m.springOffset) < 0.004 && math.Abs(m.springVel) < 0.004 {
		m.springActive = false
		m.springOffset = 0
		m.springVel = 0
		return m.dispatch(feed.SnapFinished{})
	}
	return m, m.springTickCmd()
}

func (m *Model) pushToast(text string, isError bool) {
	m.toasts = append(m.toasts, toast{
		text:    text,
		isError: isError,
		expires: time.Now().Add(2500 * time.Millisecond),
	})
	if len(m.toasts) > 3 {
		m.toasts = m.toasts[len(m.toasts)-3:]
	}
}

func mediaToEvent(ev media.Event) feed.Event {
	switch ev.Kind {
	case media.EventWaiting:
		return feed.MediaWaiting{PostID: ev.PostID}
	case media.EventPlaying:
		return feed.MediaPlaying{PostID: ev.PostID}
	case media.EventEnded:
		return feed.MediaEnded{PostID: ev.PostID}
	default:
		return feed.MediaFailed{PostID: ev.PostID, Reason: ev.Reason}
	}
}
