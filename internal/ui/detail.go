package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/reel/internal/fetch"
	"github.com/five82/reel/internal/tmdb"
	"github.com/five82/reel/internal/wishlist"
)

// openDetail switches to the detail view and starts loading movie id.
// Back returns to from.
func (m *Model) openDetail(id int64, from View) tea.Cmd {
	m.returnView = from
	m.currentView = ViewDetail
	m.details.Load(m.ctx, tmdb.MoviePath(id), "")
	m.detail = m.details.State()
	m.updateDetailViewport()
	return m.spinner.Tick
}

// handleDetailKey processes keyboard input for the detail view.
func (m Model) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case keyMatches(msg, m.keys.Back):
		m.details.Cancel()
		m.detail = m.details.State()
		m.currentView = m.returnView
		return m, nil
	case keyMatches(msg, m.keys.ToggleWishlist):
		if m.detail.Status == fetch.StatusSuccess {
			m.toggleWishlist(m.detail.Data.Movie)
			m.updateDetailViewport()
		}
		return m, nil
	case keyMatches(msg, m.keys.Reload):
		if m.detail.Path == "" {
			return m, nil
		}
		m.details.Reload(m.ctx, m.detail.Path, "")
		m.detail = m.details.State()
		m.updateDetailViewport()
		return m, m.spinner.Tick
	}

	var cmd tea.Cmd
	m.detailViewport, cmd = m.detailViewport.Update(msg)
	return m, cmd
}

func (m *Model) resizeDetail() {
	m.detailViewport.Width = max(m.width, 20)
	m.detailViewport.Height = m.contentHeight()
	m.updateDetailViewport()
}

// updateDetailViewport re-renders the detail body into the viewport.
func (m *Model) updateDetailViewport() {
	if !m.ready {
		return
	}
	m.detailViewport.SetContent(m.renderDetailBody())
	m.detailViewport.GotoTop()
}

func (m Model) renderDetail() string {
	if m.detail.Status == fetch.StatusLoading {
		return m.spinner.View() + " " + m.theme.Styles().MutedText.Render("Loading details...")
	}
	return m.detailViewport.View()
}

func (m Model) renderDetailBody() string {
	styles := m.theme.Styles()
	switch m.detail.Status {
	case fetch.StatusError:
		return styles.DangerText.Render(fetch.Message(m.detail.Err))
	case fetch.StatusSuccess:
	default:
		return ""
	}

	d := m.detail.Data
	width := max(m.width-4, 20)
	var b strings.Builder

	title := styles.AccentText.Bold(true).Render(d.Title)
	if year := d.Year(); year != "" {
		title += styles.MutedText.Render(" (" + year + ")")
	}
	if m.wishlist.IsMember(d.ID) {
		title += styles.DangerText.Render("  ♥ wishlisted")
	}
	b.WriteString(title)
	b.WriteString("\n")
	if d.Tagline != "" {
		b.WriteString(styles.FaintText.Italic(true).Render(d.Tagline))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	rows := []metadataRow{
		{"Score", fmt.Sprintf("%s (%d votes)", formatScore(d.VoteAverage), d.VoteCount)},
		{"Released", d.ReleaseDate},
		{"Runtime", formatRuntime(d.Runtime)},
		{"Genres", d.GenreNames()},
		{"Status", d.Status},
		{"Language", d.OriginalLanguage},
		{"Poster", tmdb.ImageURL(m.imageBase, d.PosterPath)},
		{"Homepage", d.Homepage},
	}
	if d.IMDbID != "" {
		rows = append(rows, metadataRow{"IMDb", "https://www.imdb.com/title/" + d.IMDbID})
	}
	for _, row := range rows {
		if strings.TrimSpace(row.value) == "" {
			continue
		}
		b.WriteString(styles.MutedText.Width(10).Render(row.key))
		b.WriteString(styles.Text.Render(row.value))
		b.WriteString("\n")
	}

	if d.Overview != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Width(width).Render(styles.Text.Render(d.Overview)))
		b.WriteString("\n")
	}
	return b.String()
}

type metadataRow struct {
	key   string
	value string
}

// handleWishlistKey processes keyboard input for the wishlist view.
func (m Model) handleWishlistKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	count := len(m.entries)
	switch {
	case keyMatches(msg, m.keys.Back):
		m.currentView = ViewBrowse
	case keyMatches(msg, m.keys.Down):
		if m.wishlistRow < count-1 {
			m.wishlistRow++
		}
	case keyMatches(msg, m.keys.Up):
		if m.wishlistRow > 0 {
			m.wishlistRow--
		}
	case keyMatches(msg, m.keys.Top):
		m.wishlistRow = 0
	case keyMatches(msg, m.keys.Bottom):
		m.wishlistRow = max(count-1, 0)
	case keyMatches(msg, m.keys.Open):
		if e, ok := m.selectedEntry(); ok {
			cmd := m.openDetail(e.ID, ViewWishlist)
			return m, cmd
		}
	case keyMatches(msg, m.keys.ToggleWishlist):
		if e, ok := m.selectedEntry(); ok {
			m.toggleWishlist(tmdb.Movie{ID: e.ID, Title: e.Title, PosterPath: e.PosterPath})
		}
	}
	return m, nil
}

func (m Model) selectedEntry() (wishlist.Entry, bool) {
	if m.wishlistRow < 0 || m.wishlistRow >= len(m.entries) {
		return wishlist.Entry{}, false
	}
	return m.entries[m.wishlistRow], true
}

func (m *Model) clampWishlist() {
	m.wishlistRow = clamp(m.wishlistRow, 0, len(m.entries)-1)
}

func (m Model) renderWishlist() string {
	styles := m.theme.Styles()

	var b strings.Builder
	b.WriteString(styles.AccentText.Bold(true).Render("Wishlist"))
	b.WriteString(styles.MutedText.Render(fmt.Sprintf("  %d movies", len(m.entries))))
	b.WriteString("\n")

	if len(m.entries) == 0 {
		b.WriteString(styles.MutedText.Render("Your wishlist is empty. Press w on a movie to add it."))
		return b.String()
	}

	width := max(m.width-4, 10)
	start, end := visibleWindow(m.wishlistRow, len(m.entries), m.contentHeight()-1)
	for i := start; i < end; i++ {
		line := padRight(truncate(m.entries[i].Title, width), width)
		if i == m.wishlistRow {
			b.WriteString(styles.Selected.Render("♥ " + line))
		} else {
			b.WriteString(styles.DangerText.Render("♥ ") + styles.Text.Render(line))
		}
		if i < end-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}
