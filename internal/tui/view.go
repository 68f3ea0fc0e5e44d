package tui

import (
	"fmt"
	"strings"

	"reel/internal/feed"

	"github.com/charmbracelet/lipgloss"
)

const captionPreviewLen = 72

// View implements tea.Model.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	if m.state.LoadErr != "" {
		return m.styles.App.Render(
			m.styles.Error.Render("feed unavailable: "+m.state.LoadErr) +
				"\n" + m.styles.Help.Render("q quit"))
	}
	if !m.state.Loaded {
		return m.styles.App.Render(m.spinner.View() + " loading feed...")
	}
	if m.state.Feed.Len() == 0 {
		return m.styles.App.Render("nothing to watch" + "\n" + m.styles.Help.Render("q quit"))
	}

	post := m.state.Current()
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderOffsetPad())
	b.WriteString(m.styles.Card.Width(m.cardWidth()).Render(m.renderCard(post)))
	b.WriteString("\n")

	if m.state.CommentsOpen {
		b.WriteString(m.renderComments(post))
		b.WriteString("\n")
	}
	for _, t := range m.toasts {
		style := m.styles.Toast
		if t.isError {
			style = m.styles.ErrToast
		}
		b.WriteString(style.Render("• "+t.text) + "\n")
	}
	b.WriteString(m.renderHelp())

	return m.styles.App.Render(b.String())
}

func (m *Model) cardWidth() int {
	w := m.width - 6
	if w < 30 {
		w = 30
	}
	if w > 72 {
		w = 72
	}
	return w
}

// renderOffsetPad shifts the card vertically while a drag or snap
// animation is in flight, so the gesture reads as movement.
func (m *Model) renderOffsetPad() string {
	offset := m.springOffset
	if m.state.Cursor.Dragging {
		offset = m.state.Cursor.DragOffset
	}
	rows := int(offset * float64(m.height) / 3)
	if rows <= 0 {
		return ""
	}
	if rows > 4 {
		rows = 4
	}
	return strings.Repeat("\n", rows)
}

func (m *Model) renderHeader() string {
	pos := fmt.Sprintf("%d/%d", m.state.Cursor.Index+1, m.state.Feed.Len())
	flags := []string{}
	if m.state.Paused {
		flags = append(flags, "paused")
	}
	if m.state.Muted {
		flags = append(flags, "muted")
	}
	right := strings.Join(flags, " · ")
	title := m.styles.Title.Render("reel") + m.styles.Subtle.Render("  "+pos)
	if right != "" {
		title += m.styles.Pending.Render("   " + right)
	}
	return title
}

func (m *Model) renderCard(post feed.Post) string {
	var b strings.Builder

	b.WriteString(m.renderMediaSurface(post))
	b.WriteString("\n\n")

	author := "@" + post.Author
	switch {
	case m.state.Followed[post.Author]:
		author += m.styles.Saved.Render("  following")
	case m.state.PendingFollow[post.Author]:
		author += m.styles.Pending.Render("  following...")
	}
	b.WriteString(m.styles.Author.Render(author))
	b.WriteString("\n")

	caption := post.Caption
	if !m.state.ExpandedCaptions[post.ID] && len(caption) > captionPreviewLen {
		caption = caption[:captionPreviewLen-3] + "..." + m.styles.Subtle.Render("  [e] more")
	}
	b.WriteString(m.styles.Caption.Render(caption))
	b.WriteString("\n")
	if post.Music != "" {
		b.WriteString(m.styles.Music.Render("♫ " + post.Music))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(m.renderCounters(post))
	return b.String()
}

func (m *Model) renderMediaSurface(post feed.Post) string {
	id := post.ID
	switch {
	case m.state.MediaErrors[id] != "":
		return m.styles.Error.Render("⚠ media failed: "+m.state.MediaErrors[id]) +
			m.styles.Subtle.Render("   [r] retry")
	case m.state.Buffering[id]:
		return m.spinner.View() + m.styles.Subtle.Render(" buffering...")
	case m.state.HeartBurst[id]:
		return m.styles.Heart.Render("♥ ♥ ♥")
	case post.Kind == feed.MediaImage:
		return m.styles.Subtle.Render("▣ photo")
	case m.state.Paused:
		return m.styles.Subtle.Render("❚❚ paused")
	default:
		return m.styles.Subtle.Render("▶ playing")
	}
}

func (m *Model) renderCounters(post feed.Post) string {
	c := m.state.DisplayCounters(post)

	like := fmt.Sprintf("♥ %s", compact(c.Likes))
	switch {
	case m.state.LikePulse[post.ID]:
		like = m.styles.Heart.Render(like + " !")
	case m.state.Liked[post.ID]:
		like = m.styles.Liked.Render(like)
	default:
		like = m.styles.Counter.Render(like)
	}

	save := fmt.Sprintf("⭑ %s", compact(c.Saves))
	if m.state.Saved[post.ID] {
		save = m.styles.Saved.Render(save)
	} else {
		save = m.styles.Counter.Render(save)
	}

	parts := []string{
		like,
		m.styles.Counter.Render(fmt.Sprintf("💬 %s", compact(c.Comments))),
		m.styles.Counter.Render(fmt.Sprintf("↗ %s", compact(c.Shares))),
		save,
		m.styles.Counter.Render(fmt.Sprintf("▶ %s", compact(c.Views))),
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, strings.Join(parts, "   "))
}

func (m *Model) renderComments(post feed.Post) string {
	var b strings.Builder
	b.WriteString(m.styles.Title.Render("comments"))
	b.WriteString("\n")
	switch {
	case m.state.CommentsLoading:
		b.WriteString(m.spinner.View() + " loading...")
	case len(m.state.Comments) == 0:
		b.WriteString(m.styles.Subtle.Render("no comments yet"))
	default:
		shown := m.state.Comments
		if len(shown) > 6 {
			shown = shown[len(shown)-6:]
		}
		for _, c := range shown {
			b.WriteString(m.styles.Author.Render("@"+c.Author) + " " + c.Text + "\n")
		}
	}
	b.WriteString("\n")
	if m.state.PostingComment {
		b.WriteString(m.styles.Pending.Render("posting..."))
	} else {
		b.WriteString(m.composer.View())
	}
	return b.String()
}

func (m *Model) renderHelp() string {
	if m.state.CommentsOpen {
		return m.styles.Help.Render("enter post · esc close")
	}
	return m.styles.Help.Render(
		"j/k or drag scroll · space pause · m mute · l like · s save · f follow · c comments · y share · q quit")
}

// compact formats counters the way the feed overlay shows them: 1.2K,
// 3.4M.
func compact(n int) string {
	switch {
	case n >= 1_000_000:
		return strings.TrimSuffix(fmt.Sprintf("%.1f", float64(n)/1_000_000), ".0") + "M"
	case n >= 1_000:
		return strings.TrimSuffix(fmt.Sprintf("%.1f", float64(n)/1_000), ".0") + "K"
	default:
		return fmt.Sprintf("%d", n)
	}
}
