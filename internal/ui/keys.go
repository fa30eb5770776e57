package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the keyboard bindings outside of text fields.
type keyMap struct {
	// Global
	Quit        key.Binding
	Help        key.Binding
	ToggleTheme key.Binding
	Logout      key.Binding
	Back        key.Binding

	// View switching
	ViewBrowse   key.Binding
	ViewWishlist key.Binding

	// Navigation
	Up       key.Binding
	Down     key.Binding
	Top      key.Binding
	Bottom   key.Binding
	NextPage key.Binding
	PrevPage key.Binding
	Open     key.Binding

	// Catalog actions
	Search         key.Binding
	CycleCategory  key.Binding
	Discover       key.Binding
	CycleSort      key.Binding
	CycleMinScore  key.Binding
	CycleGenre     key.Binding
	DatePrefix     key.Binding
	ClearFilters   key.Binding
	Reload         key.Binding
	ToggleWishlist key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	return keyMap{
		// Global
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "q"),
			key.WithHelp("q", "Quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "Toggle help"),
		),
		ToggleTheme: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "Toggle theme"),
		),
		Logout: key.NewBinding(
			key.WithKeys("L"),
			key.WithHelp("L", "Sign out"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "backspace"),
			key.WithHelp("esc", "Back"),
		),

		// View switching
		ViewBrowse: key.NewBinding(
			key.WithKeys("b"),
			key.WithHelp("b", "Browse"),
		),
		ViewWishlist: key.NewBinding(
			key.WithKeys("W"),
			key.WithHelp("W", "Wishlist"),
		),

		// Navigation
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/up", "Move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/down", "Move down"),
		),
		Top: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "Go to top"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "Go to bottom"),
		),
		NextPage: key.NewBinding(
			key.WithKeys("]", "pgdown"),
			key.WithHelp("]", "Next page"),
		),
		PrevPage: key.NewBinding(
			key.WithKeys("[", "pgup"),
			key.WithHelp("[", "Previous page"),
		),
		Open: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Open details"),
		),

		// Catalog actions
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "Search"),
		),
		CycleCategory: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "Cycle category"),
		),
		Discover: key.NewBinding(
			key.WithKeys("D"),
			key.WithHelp("D", "Discover with filters"),
		),
		CycleSort: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "Cycle sort"),
		),
		CycleMinScore: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "Cycle minimum score"),
		),
		CycleGenre: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "Cycle genre"),
		),
		DatePrefix: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "Filter by release date"),
		),
		ClearFilters: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "Clear filters"),
		),
		Reload: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "Reload"),
		),
		ToggleWishlist: key.NewBinding(
			key.WithKeys("w"),
			key.WithHelp("w", "Toggle wishlist"),
		),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Search, k.Open, k.ToggleWishlist, k.ViewWishlist, k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		// Navigation
		{k.Up, k.Down, k.Top, k.Bottom, k.NextPage, k.PrevPage, k.Open, k.Back},
		// Catalog
		{k.Search, k.CycleCategory, k.Discover, k.CycleSort, k.CycleMinScore, k.CycleGenre, k.DatePrefix, k.ClearFilters, k.Reload},
		// General
		{k.ToggleWishlist, k.ViewWishlist, k.ViewBrowse, k.ToggleTheme, k.Logout, k.Help, k.Quit},
	}
}
