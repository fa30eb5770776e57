package ui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/five82/reel/internal/auth"
	"github.com/five82/reel/internal/catalog"
	"github.com/five82/reel/internal/fetch"
	"github.com/five82/reel/internal/prefs"
	"github.com/five82/reel/internal/session"
	"github.com/five82/reel/internal/tmdb"
	"github.com/five82/reel/internal/wishlist"
)

// View represents the current active view.
type View int

const (
	ViewSignIn View = iota
	ViewSignUp
	ViewBrowse
	ViewDetail
	ViewWishlist
)

// Options configures the UI.
type Options struct {
	Context      context.Context
	Auth         *auth.Service
	Session      *session.Manager
	Wishlist     *wishlist.Store
	Prefs        *prefs.Store
	Pages        *fetch.Loader[tmdb.Page]
	Details      *fetch.Loader[tmdb.MovieDetail]
	Debouncer    *fetch.Debouncer
	ImageBaseURL string
	Logger       *zap.Logger
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Collaborators
	ctx          context.Context
	auth         *auth.Service
	session      *session.Manager
	wishlist     *wishlist.Store
	prefs        *prefs.Store
	pages        *fetch.Loader[tmdb.Page]
	details      *fetch.Loader[tmdb.MovieDetail]
	debounce     *fetch.Debouncer
	imageBase    string
	log          *zap.Logger

	// UI state
	keys        keyMap
	help        help.Model
	theme       Theme
	currentView View
	returnView  View
	width       int
	height      int
	ready       bool
	showHelp    bool
	loggedIn    bool
	flash       string

	// Forms
	signIn signInForm
	signUp signUpForm

	// Browse state
	categoryIdx int
	discover    bool // list comes from remote discovery with spec's filters
	page        int
	query       textinput.Model
	dateInput   textinput.Model
	genreIdx    int // 0 = any genre
	spec        catalog.Spec
	list        fetch.State[tmdb.Page]
	selectedRow int
	spinner     spinner.Model

	// Detail state
	detail         fetch.State[tmdb.MovieDetail]
	detailViewport viewport.Model

	// Wishlist state
	entries     []wishlist.Entry
	wishlistRow int
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	debounce := opts.Debouncer
	if debounce == nil {
		debounce = fetch.NewDebouncer(SearchDebounce)
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	query := textinput.New()
	query.Prompt = "/ "
	query.Placeholder = "search titles"
	query.CharLimit = 100

	dateInput := textinput.New()
	dateInput.Prompt = "released: "
	dateInput.Placeholder = "YYYY or YYYY-MM"
	dateInput.CharLimit = 10

	spin := spinner.New()
	spin.Spinner = spinner.Dot

	m := Model{
		ctx:          ctx,
		auth:         opts.Auth,
		session:      opts.Session,
		wishlist:     opts.Wishlist,
		prefs:        opts.Prefs,
		pages:        opts.Pages,
		details:      opts.Details,
		debounce:     debounce,
		imageBase:    opts.ImageBaseURL,
		log:          log.Named("ui"),
		keys:         DefaultKeyMap(),
		help:         help.New(),
		theme:        GetTheme(opts.Prefs.Theme()),
		page:         1,
		query:        query,
		dateInput:    dateInput,
		spinner:      spin,
		signIn:       newSignInForm(),
		signUp:       newSignUpForm(),
	}
	if remembered, ok := m.auth.Remembered(); ok {
		m.signIn.prefill(remembered)
	}
	m.entries = m.wishlist.Entries()
	m.loggedIn = m.session.IsLoggedIn()
	if m.loggedIn {
		m.currentView = ViewBrowse
	} else {
		m.currentView = ViewSignIn
	}
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{tea.EnterAltScreen}
	if m.loggedIn {
		cmds = append(cmds, m.startList(false))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		if !m.ready {
			m.detailViewport = viewport.New(msg.Width, m.contentHeight())
		}
		m.ready = true
		m.resizeDetail()
		return m, nil

	case sessionChangedMsg:
		return m.syncSession()

	case wishlistChangedMsg:
		m.entries = m.wishlist.Entries()
		m.clampWishlist()
		return m, nil

	case themeChangedMsg:
		m.theme = GetTheme(m.prefs.Theme())
		m.updateDetailViewport()
		return m, nil

	case pagesChangedMsg:
		m.list = m.pages.State()
		if m.list.Status == fetch.StatusError {
			m.log.Warn("list load failed", zap.String("path", m.list.Path), zap.Error(m.list.Err))
		}
		m.clampSelection()
		return m, nil

	case detailChangedMsg:
		m.detail = m.details.State()
		if m.detail.Status == fetch.StatusError {
			m.log.Warn("detail load failed", zap.String("path", m.detail.Path), zap.Error(m.detail.Err))
		}
		m.updateDetailViewport()
		return m, nil

	case searchDueMsg:
		if !m.debounce.Due(msg.token) {
			return m, nil
		}
		m.page = 1
		cmd := m.startList(false)
		return m, cmd

	case spinner.TickMsg:
		if !m.loading() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}
	return m.renderMain()
}

// handleKey routes keyboard input to the active view.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	switch m.currentView {
	case ViewSignIn:
		return m.handleSignInKey(msg)
	case ViewSignUp:
		return m.handleSignUpKey(msg)
	}

	// Text inputs own the keyboard while focused
	if m.query.Focused() {
		return m.handleSearchKey(msg)
	}
	if m.dateInput.Focused() {
		return m.handleDateKey(msg)
	}

	if m.showHelp {
		m.showHelp = false
		return m, nil
	}

	switch {
	case keyMatches(msg, m.keys.Quit):
		return m, tea.Quit
	case keyMatches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil
	case keyMatches(msg, m.keys.ToggleTheme):
		m.theme = GetTheme(m.prefs.Toggle())
		m.updateDetailViewport()
		return m, nil
	case keyMatches(msg, m.keys.Logout):
		m.log.Info("signed out")
		m.session.Logout()
		m.onSignedOut()
		return m, nil
	case keyMatches(msg, m.keys.ViewWishlist):
		m.entries = m.wishlist.Entries()
		m.currentView = ViewWishlist
		return m, nil
	case keyMatches(msg, m.keys.ViewBrowse):
		m.currentView = ViewBrowse
		return m, nil
	}

	switch m.currentView {
	case ViewBrowse:
		return m.handleBrowseKey(msg)
	case ViewDetail:
		return m.handleDetailKey(msg)
	case ViewWishlist:
		return m.handleWishlistKey(msg)
	}
	return m, nil
}

// syncSession follows a login or logout made by another context.
func (m Model) syncSession() (tea.Model, tea.Cmd) {
	loggedIn := m.session.IsLoggedIn()
	switch {
	case loggedIn && !m.loggedIn:
		m.log.Info("session started in another context")
		m.onSignedIn()
		cmd := m.startList(false)
		return m, cmd
	case !loggedIn && m.loggedIn:
		m.log.Info("session ended in another context")
		m.onSignedOut()
	}
	return m, nil
}

func (m *Model) onSignedIn() {
	m.loggedIn = true
	m.flash = ""
	m.currentView = ViewBrowse
}

func (m *Model) onSignedOut() {
	m.loggedIn = false
	m.currentView = ViewSignIn
	m.pages.Reset()
	m.details.Reset()
	m.list = fetch.State[tmdb.Page]{}
	m.detail = fetch.State[tmdb.MovieDetail]{}
	m.query.Blur()
	m.dateInput.Blur()
	m.debounce.Cancel()
	m.signIn.reset()
	if remembered, ok := m.auth.Remembered(); ok {
		m.signIn.prefill(remembered)
	}
}

func (m Model) loading() bool {
	return m.list.Status == fetch.StatusLoading || m.detail.Status == fetch.StatusLoading
}

// renderMain renders the full UI.
func (m Model) renderMain() string {
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n")

	b.WriteString(m.renderContent())
	b.WriteString("\n")

	b.WriteString(m.renderFooter())
	return b.String()
}

// renderContent renders the main content area based on current view.
func (m Model) renderContent() string {
	switch m.currentView {
	case ViewSignIn:
		return m.renderSignIn()
	case ViewSignUp:
		return m.renderSignUp()
	case ViewBrowse:
		return m.renderBrowse()
	case ViewDetail:
		return m.renderDetail()
	case ViewWishlist:
		return m.renderWishlist()
	default:
		return ""
	}
}

// contentHeight is the space left between header and footer.
func (m Model) contentHeight() int {
	h := m.height - headerHeight - footerHeight
	if h < 3 {
		return 3
	}
	return h
}

// Messages

// Change notifications carry no value; handlers read the current state from
// the store or loader, so the order in which they arrive does not matter.
type (
	sessionChangedMsg  struct{}
	wishlistChangedMsg struct{}
	themeChangedMsg    struct{}
	pagesChangedMsg    struct{}
	detailChangedMsg   struct{}
)

type searchDueMsg struct{ token uint64 }

// subscribe forwards store and loader notifications to send. Listeners may
// fire inside Update when the model itself writes, so each send runs on its
// own goroutine.
func (m Model) subscribe(send func(tea.Msg)) {
	post := func(msg tea.Msg) { go send(msg) }
	m.session.OnChange(func(session.State) { post(sessionChangedMsg{}) })
	m.wishlist.OnChange(func([]wishlist.Entry) { post(wishlistChangedMsg{}) })
	m.prefs.OnChange(func(string) { post(themeChangedMsg{}) })
	if m.pages != nil {
		m.pages.OnChange(func(fetch.State[tmdb.Page]) { post(pagesChangedMsg{}) })
	}
	if m.details != nil {
		m.details.OnChange(func(fetch.State[tmdb.MovieDetail]) { post(detailChangedMsg{}) })
	}
}

// Commands

func searchDueCmd(d time.Duration, token uint64) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return searchDueMsg{token: token}
	})
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(m.ctx))
	m.subscribe(p.Send)
	final, err := p.Run()
	if fm, ok := final.(Model); ok {
		if fm.pages != nil {
			fm.pages.Dispose()
		}
		if fm.details != nil {
			fm.details.Dispose()
		}
	}
	return err
}
