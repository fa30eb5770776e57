package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/reel/internal/catalog"
	"github.com/five82/reel/internal/fetch"
	"github.com/five82/reel/internal/tmdb"
	"github.com/five82/reel/internal/wishlist"
)

// currentCategory returns the selected category listing.
func (m Model) currentCategory() tmdb.Category {
	cats := tmdb.Categories()
	return cats[wrapIndex(m.categoryIdx, len(cats))]
}

// listPath returns the request path for the current query, category and page.
func (m Model) listPath() string {
	if q := strings.TrimSpace(m.query.Value()); q != "" {
		return tmdb.SearchPath(q, m.page)
	}
	if m.discover {
		return tmdb.DiscoverPath(m.spec.Query(m.page))
	}
	return tmdb.CategoryPath(m.currentCategory(), m.page)
}

// loadList starts loading the current list. The credential comes from the
// session.
// The result arrives as a pagesChangedMsg.
func (m *Model) loadList(reload bool) {
	path := m.listPath()
	if reload {
		m.pages.Reload(m.ctx, path, "")
	} else {
		m.pages.Load(m.ctx, path, "")
	}
	m.list = m.pages.State()
}

// startList loads the current list and animates the spinner meanwhile.
func (m *Model) startList(reload bool) tea.Cmd {
	m.loadList(reload)
	return m.spinner.Tick
}

// visibleItems applies the filter and sort pipeline to the fetched page.
func (m Model) visibleItems() []tmdb.Movie {
	return catalog.Apply(m.list.Data.Results, m.spec)
}

func (m Model) selectedMovie() (tmdb.Movie, bool) {
	items := m.visibleItems()
	if m.selectedRow < 0 || m.selectedRow >= len(items) {
		return tmdb.Movie{}, false
	}
	return items[m.selectedRow], true
}

func (m *Model) clampSelection() {
	m.selectedRow = clamp(m.selectedRow, 0, len(m.visibleItems())-1)
}

// handleBrowseKey processes keyboard input for the catalog list.
func (m Model) handleBrowseKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	itemCount := len(m.visibleItems())

	switch {
	case keyMatches(msg, m.keys.Down):
		if m.selectedRow < itemCount-1 {
			m.selectedRow++
		}
	case keyMatches(msg, m.keys.Up):
		if m.selectedRow > 0 {
			m.selectedRow--
		}
	case keyMatches(msg, m.keys.Top):
		m.selectedRow = 0
	case keyMatches(msg, m.keys.Bottom):
		m.selectedRow = max(itemCount-1, 0)

	case keyMatches(msg, m.keys.Open):
		if movie, ok := m.selectedMovie(); ok {
			cmd := m.openDetail(movie.ID, ViewBrowse)
			return m, cmd
		}
	case keyMatches(msg, m.keys.ToggleWishlist):
		if movie, ok := m.selectedMovie(); ok {
			m.toggleWishlist(movie)
		}

	case keyMatches(msg, m.keys.Search):
		m.query.Focus()
		return m, nil
	case keyMatches(msg, m.keys.DatePrefix):
		m.dateInput.SetValue(m.spec.DatePrefix)
		m.dateInput.Focus()
		return m, nil

	case keyMatches(msg, m.keys.CycleCategory):
		m.query.SetValue("")
		m.discover = false
		m.categoryIdx = wrapIndex(m.categoryIdx+1, len(tmdb.Categories()))
		m.page = 1
		m.selectedRow = 0
		cmd := m.startList(false)
		return m, cmd
	case keyMatches(msg, m.keys.Discover):
		m.query.SetValue("")
		m.discover = true
		m.page = 1
		m.selectedRow = 0
		cmd := m.startList(false)
		return m, cmd
	case keyMatches(msg, m.keys.NextPage):
		if m.list.Data.HasNext() {
			m.page++
			m.selectedRow = 0
			cmd := m.startList(false)
			return m, cmd
		}
	case keyMatches(msg, m.keys.PrevPage):
		if m.page > 1 {
			m.page--
			m.selectedRow = 0
			cmd := m.startList(false)
			return m, cmd
		}
	case keyMatches(msg, m.keys.Reload):
		cmd := m.startList(true)
		return m, cmd

	case keyMatches(msg, m.keys.CycleSort):
		m.spec.Sort = catalog.NextSort(m.spec.Sort)
	case keyMatches(msg, m.keys.CycleMinScore):
		m.spec.MinScore = catalog.NextMinScore(m.spec.MinScore)
		m.clampSelection()
	case keyMatches(msg, m.keys.CycleGenre):
		m.genreIdx = wrapIndex(m.genreIdx+1, len(tmdb.Genres)+1)
		m.spec.GenreIDs = nil
		if m.genreIdx > 0 {
			m.spec.GenreIDs = []int{tmdb.Genres[m.genreIdx-1].ID}
		}
		m.clampSelection()
	case keyMatches(msg, m.keys.ClearFilters):
		m.spec = catalog.Spec{}
		m.genreIdx = 0
		m.clampSelection()
	}

	return m, nil
}

// handleSearchKey edits the search query. Every edit re-arms the debounce
// timer; only the last one triggers a request.
func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.query.Blur()
		m.debounce.Cancel()
		m.page = 1
		m.selectedRow = 0
		cmd := m.startList(false)
		return m, cmd
	case "esc":
		m.query.Blur()
		return m, nil
	}

	before := m.query.Value()
	var cmd tea.Cmd
	m.query, cmd = m.query.Update(msg)
	if m.query.Value() == before {
		return m, cmd
	}
	m.selectedRow = 0
	token := m.debounce.Schedule()
	return m, tea.Batch(cmd, searchDueCmd(m.debounce.Delay(), token))
}

// handleDateKey edits the release-date prefix filter.
func (m Model) handleDateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.dateInput.Blur()
		m.spec.DatePrefix = strings.TrimSpace(m.dateInput.Value())
		m.clampSelection()
		return m, nil
	case "esc":
		m.dateInput.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.dateInput, cmd = m.dateInput.Update(msg)
	return m, cmd
}

// toggleWishlist adds or removes movie and reports the outcome.
func (m *Model) toggleWishlist(movie tmdb.Movie) {
	added := m.wishlist.Toggle(wishlist.Entry{
		ID:         movie.ID,
		Title:      movie.Title,
		PosterPath: movie.PosterPath,
	})
	m.entries = m.wishlist.Entries()
	m.clampWishlist()
	if added {
		m.flash = fmt.Sprintf("Added %q to your wishlist", movie.Title)
	} else {
		m.flash = fmt.Sprintf("Removed %q from your wishlist", movie.Title)
	}
}

func (m Model) renderBrowse() string {
	styles := m.theme.Styles()
	height := m.contentHeight()

	var b strings.Builder
	b.WriteString(m.renderBrowseBar())
	b.WriteString("\n")
	rows := height - 1

	switch m.list.Status {
	case fetch.StatusIdle:
		b.WriteString(styles.MutedText.Render("Nothing loaded yet."))
		return b.String()
	case fetch.StatusError:
		b.WriteString(styles.DangerText.Render(fetch.Message(m.list.Err)))
		return b.String()
	case fetch.StatusLoading:
		if len(m.list.Data.Results) == 0 {
			b.WriteString(m.spinner.View() + " " + styles.MutedText.Render("Loading "+m.listTitle()+"..."))
			return b.String()
		}
	}

	items := m.visibleItems()
	if len(items) == 0 {
		b.WriteString(styles.MutedText.Render("No movies match the current filters."))
		return b.String()
	}

	start, end := visibleWindow(m.selectedRow, len(items), rows)
	for i := start; i < end; i++ {
		b.WriteString(m.renderMovieRow(items[i], i == m.selectedRow))
		if i < end-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

// renderBrowseBar shows the list source and active filters.
func (m Model) renderBrowseBar() string {
	styles := m.theme.Styles()

	if m.query.Focused() {
		return m.query.View()
	}
	if m.dateInput.Focused() {
		return m.dateInput.View()
	}

	parts := []string{styles.AccentText.Bold(true).Render(m.listTitle())}
	parts = append(parts, styles.MutedText.Render(fmt.Sprintf("page %d/%d", max(m.list.Data.Page, m.page), max(m.list.Data.TotalPages, 1))))
	if m.list.Status == fetch.StatusLoading {
		parts = append(parts, m.spinner.View())
	}
	if m.list.Cached {
		parts = append(parts, styles.FaintText.Render("cached"))
	}
	if filters := describeSpec(m.spec); filters != "" {
		parts = append(parts, styles.WarningText.Render(filters))
	}
	return strings.Join(parts, "  ")
}

func (m Model) listTitle() string {
	if q := strings.TrimSpace(m.query.Value()); q != "" {
		return fmt.Sprintf("Search %q", q)
	}
	if m.discover {
		return "Discover"
	}
	return m.currentCategory().Label()
}

func (m Model) renderMovieRow(movie tmdb.Movie, selected bool) string {
	styles := m.theme.Styles()

	mark := "  "
	if m.wishlist.IsMember(movie.ID) {
		mark = "♥ "
	}
	year := movie.Year()
	if year == "" {
		year = "----"
	}

	titleWidth := max(m.width-24, 10)
	title := padRight(truncate(movie.Title, titleWidth), titleWidth)
	score := formatScore(movie.VoteAverage)

	if selected {
		return styles.Selected.Render(mark + title + "  " + year + "  " + score)
	}
	line := styles.DangerText.Render(mark) + styles.Text.Render(title) + "  " +
		styles.MutedText.Render(year) + "  " + styles.ScoreStyle(movie.VoteAverage).Render(score)
	if m.width > 0 && m.width < LayoutCompactWidth {
		line = styles.DangerText.Render(mark) + styles.Text.Render(title)
	}
	return line
}

// describeSpec summarises active client-side filters.
func describeSpec(spec catalog.Spec) string {
	var parts []string
	for _, id := range spec.GenreIDs {
		parts = append(parts, tmdb.GenreName(id))
	}
	if spec.MinScore > 0 {
		parts = append(parts, fmt.Sprintf("score ≥ %.0f", spec.MinScore))
	}
	if spec.DatePrefix != "" {
		parts = append(parts, "released "+spec.DatePrefix+"*")
	}
	if spec.Sort != catalog.SortNone {
		parts = append(parts, "sort "+spec.Sort.Label())
	}
	return strings.Join(parts, " · ")
}
