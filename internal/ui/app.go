package ui

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/time/rate"

	"github.com/abelbrown/opskrifter/internal/catalog"
	"github.com/abelbrown/opskrifter/internal/config"
	"github.com/abelbrown/opskrifter/internal/dispatch"
	"github.com/abelbrown/opskrifter/internal/metrics"
	"github.com/abelbrown/opskrifter/internal/otel"
	"github.com/abelbrown/opskrifter/internal/overlay"
	"github.com/abelbrown/opskrifter/internal/render"
	"github.com/abelbrown/opskrifter/internal/saved"
	"github.com/abelbrown/opskrifter/internal/search"
)

// ReloadInterval is the minimum spacing between manual catalog reloads.
const ReloadInterval = 5 * time.Second

// AppConfig holds dependencies for the App.
// IMPORTANT: App does NOT hold the saved store or the catalog loader. Every
// side effect is a closure returning a tea.Cmd.
type AppConfig struct {
	LoadCatalog func() tea.Cmd
	ListSaved   func() tea.Cmd
	ToggleSaved func(item saved.Item) tea.Cmd
	RemoveSaved func(url string) tea.Cmd
	MountHeader func() tea.Cmd

	Surfaces     config.SurfaceConfig
	Nav          []config.NavLink
	ResultsPath  string
	BadgeRefresh []time.Duration

	// ReloadLimit throttles manual reloads. Nil uses one per ReloadInterval.
	ReloadLimit *rate.Limiter

	Ring    *otel.RingBuffer
	Logger  *otel.Logger
	Metrics *metrics.Metrics
}

// App is the root Bubble Tea model. It is the composition root for the
// page's state: catalog, selection, saved snapshot and overlays are owned
// here and handed to the engine and render layer by reference.
type App struct {
	loadCatalog func() tea.Cmd
	listSaved   func() tea.Cmd
	toggleSaved func(item saved.Item) tea.Cmd
	removeSaved func(url string) tea.Cmd
	mountHeader func() tea.Cmd

	surfaces     config.SurfaceConfig
	nav          []config.NavLink
	resultsPath  string
	badgeRefresh []time.Duration
	reloadLimit  *rate.Limiter

	ring    *otel.RingBuffer
	logger  *otel.Logger
	metrics *metrics.Metrics

	registry   *dispatch.Registry
	dispatcher *dispatch.Dispatcher
	overlays   *overlay.Set
	cards      *render.Cache

	// Catalog and derived state
	catalog      []catalog.Recipe
	facets       search.Facets
	facetEntries []render.FacetEntry
	selection    search.Selection
	query        string
	results      []catalog.Recipe
	live         bool

	// Saved-list snapshot, refreshed on every change notification.
	// savedRev is the store revision it was read at.
	saved    []saved.Item
	savedRev uint64

	// page is the current path; pageURL is the link it was reached by.
	page    string
	pageURL string
	search  textinput.Model
	spinner spinner.Model

	cursor      int
	savedCursor int
	facetCursor int
	navCursor   int

	width        int
	height       int
	ready        bool
	loading      bool
	status       string
	err          error
	debugVisible bool
}

// NewApp creates an App and installs its dispatcher routes.
func NewApp(cfg AppConfig) *App {
	resultsPath := cfg.ResultsPath
	if resultsPath == "" {
		resultsPath = "/"
	}
	limit := cfg.ReloadLimit
	if limit == nil {
		limit = rate.NewLimiter(rate.Every(ReloadInterval), 1)
	}

	ti := textinput.New()
	ti.Placeholder = "Search recipes..."
	ti.CharLimit = 120
	ti.Width = 40

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	registry := dispatch.NewRegistry()

	a := &App{
		loadCatalog:  cfg.LoadCatalog,
		listSaved:    cfg.ListSaved,
		toggleSaved:  cfg.ToggleSaved,
		removeSaved:  cfg.RemoveSaved,
		mountHeader:  cfg.MountHeader,
		surfaces:     cfg.Surfaces,
		nav:          cfg.Nav,
		resultsPath:  resultsPath,
		badgeRefresh: cfg.BadgeRefresh,
		reloadLimit:  limit,
		ring:         cfg.Ring,
		logger:       cfg.Logger,
		metrics:      cfg.Metrics,
		registry:     registry,
		dispatcher:   dispatch.New(registry, dispatch.WithLogger(cfg.Logger), dispatch.WithMetrics(cfg.Metrics)),
		overlays:     overlay.NewSet(),
		cards:        render.NewCache(512),
		selection:    search.NewSelection(),
		catalog:      []catalog.Recipe{},
		page:         resultsPath,
		search:       ti,
		spinner:      sp,
	}

	a.installRoutes()
	a.mountPageSurfaces()

	registry.WhenMounted(func() {
		a.logger.Emit(otel.Event{Level: otel.LevelInfo, Kind: otel.KindSurfaceMount, Comp: "ui", Msg: "header"})
	}, dispatch.HeaderSurfaces...)

	return a
}

// mountPageSurfaces mounts the surfaces that are part of the page itself.
// The header arrives later through HeaderMounted.
func (a *App) mountPageSurfaces() {
	a.registry.Mount(dispatch.ResultsGrid, dispatch.EmptyState, dispatch.ResultCard, dispatch.SaveToggle)
	for _, n := range overlay.All {
		if a.surfaceEnabled(n) {
			a.registry.Mount(surfaceMarkers[n]...)
		}
	}
}

func (a *App) surfaceEnabled(n overlay.Name) bool {
	switch n {
	case overlay.MobileNav:
		return a.surfaces.MobileNav
	case overlay.Filters:
		return a.surfaces.Filters
	case overlay.Saved:
		return a.surfaces.Saved
	case overlay.Search:
		return a.surfaces.Search
	}
	return false
}

// Init loads the catalog and the saved list, starts the header injection
// and schedules the badge refreshes.
func (a *App) Init() tea.Cmd {
	var cmds []tea.Cmd
	if a.loadCatalog != nil {
		a.loading = true
		cmds = append(cmds, a.loadCatalog(), a.spinner.Tick)
	}
	if a.listSaved != nil {
		cmds = append(cmds, a.listSaved())
	}
	if a.mountHeader != nil {
		cmds = append(cmds, a.mountHeader())
	}
	for i, d := range a.badgeRefresh {
		attempt := i + 1
		cmds = append(cmds, tea.Tick(d, func(time.Time) tea.Msg {
			return BadgeRefresh{Attempt: attempt}
		}))
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

// Update handles messages and returns the updated model and any commands.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	a.logger.TraceMsg("ui", msg)

	switch msg := msg.(type) {
	case tea.KeyMsg:
		return a, a.handleKeyMsg(msg)

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.ready = true
		a.search.Width = clamp(msg.Width-20, 10, 80)
		return a, nil

	case spinner.TickMsg:
		if !a.loading {
			return a, nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd

	case CatalogLoaded:
		a.applyCatalog(msg)
		return a, nil

	case SavedChanged:
		a.applySaved(msg)
		return a, nil

	case BadgeRefresh:
		if a.listSaved != nil {
			return a, a.listSaved()
		}
		return a, nil

	case HeaderMounted:
		a.registry.Mount(dispatch.HeaderSurfaces...)
		if a.listSaved != nil {
			return a, a.listSaved()
		}
		return a, nil

	case Navigate:
		return a, a.navigate(msg.URL)

	case FocusSearch:
		if !a.overlays.IsOpen(overlay.Search) {
			return a, nil
		}
		return a, a.search.Focus()

	case BackdropHidden:
		a.overlays.HideBackdrop(msg.Overlay)
		return a, nil
	}

	return a, nil
}

// applyCatalog installs a freshly loaded catalog. Facets are rebuilt and
// selections that no longer exist in the catalog are dropped.
func (a *App) applyCatalog(msg CatalogLoaded) {
	a.loading = false
	recipes := msg.Recipes
	if recipes == nil {
		recipes = []catalog.Recipe{}
	}
	if msg.Err != nil {
		a.err = msg.Err
		a.logger.Emit(otel.Event{Level: otel.LevelWarn, Kind: otel.KindCatalogError, Comp: "ui", Err: msg.Err.Error()})
	}

	a.catalog = recipes
	a.live = msg.Err == nil
	a.cards.Purge()

	a.facets = search.BuildFacets(recipes)
	a.facetEntries = render.FacetEntries(a.facets)
	dropped := a.selection.Reconcile(a.facets)
	a.facetCursor = clamp(a.facetCursor, 0, len(a.facetEntries)-1)

	a.logger.Emit(otel.Event{
		Level: otel.LevelInfo,
		Kind:  otel.KindFacetsRebuilt,
		Comp:  "ui",
		Count: len(a.facetEntries),
		Extra: map[string]any{"dropped": dropped},
	})

	a.refilter()
}

// applySaved reconciles every saved-state surface against the new list:
// badge, card toggles and the saved drawer all render from this snapshot.
// Snapshots older than the one applied are dropped: commands finish in any
// order, and a slow read must not undo a later mutation.
func (a *App) applySaved(msg SavedChanged) {
	if msg.Err != nil {
		a.err = fmt.Errorf("could not save: %w", msg.Err)
	}
	if msg.Rev < a.savedRev {
		a.logger.Emit(otel.Event{Level: otel.LevelDebug, Kind: otel.KindSavedSkip, Comp: "ui",
			Msg: fmt.Sprintf("stale snapshot rev %d < %d", msg.Rev, a.savedRev)})
		return
	}
	a.savedRev = msg.Rev
	a.saved = msg.Items
	if a.saved == nil {
		a.saved = []saved.Item{}
	}
	a.savedCursor = clamp(a.savedCursor, 0, len(a.saved)-1)
}

// refilter recomputes the results from the catalog, query and selection.
func (a *App) refilter() {
	start := time.Now()
	a.results = search.Apply(a.catalog, a.query, a.selection)
	a.cursor = clamp(a.cursor, 0, len(a.results)-1)
	a.logger.Emit(otel.Event{
		Level: otel.LevelDebug,
		Kind:  otel.KindSearch,
		Comp:  "ui",
		Query: a.query,
		Count: len(a.results),
		Dur:   time.Since(start),
	})
}

// navigate moves to url. A navigation is a new page view: overlays close
// and facet selections reset. The catalog stays in memory.
func (a *App) navigate(raw string) tea.Cmd {
	u, err := url.Parse(raw)
	if err != nil {
		a.err = fmt.Errorf("bad link %q: %w", raw, err)
		return nil
	}

	a.logger.Emit(otel.Event{Level: otel.LevelInfo, Kind: otel.KindNavigate, Comp: "ui", URL: raw})

	cmds := a.effectCmds(a.overlays.CloseAll())
	a.search.Blur()

	a.page = u.Path
	a.pageURL = strings.TrimSpace(raw)
	if a.page == "" {
		a.page = a.resultsPath
	}
	if a.page == a.resultsPath {
		a.query = strings.TrimSpace(u.Query().Get("q"))
		a.selection.Reset()
		a.cursor = 0
		a.refilter()
	}
	return tea.Batch(cmds...)
}

// ResultsURL builds the results page URL for a search query. It returns ""
// for a blank query.
func ResultsURL(resultsPath, query string) string {
	q := strings.TrimSpace(query)
	if q == "" {
		return ""
	}
	return resultsPath + "?" + url.Values{"q": {q}}.Encode()
}

// reload refetches the catalog, at most once per ReloadInterval.
func (a *App) reload() tea.Cmd {
	if a.loadCatalog == nil {
		return nil
	}
	if !a.reloadLimit.Allow() {
		a.status = "reload throttled"
		a.logger.Emit(otel.Event{Level: otel.LevelInfo, Kind: otel.KindCatalogThrottled, Comp: "ui"})
		return nil
	}
	a.status = ""
	a.loading = true
	return tea.Batch(a.loadCatalog(), a.spinner.Tick)
}

// onRecipePage returns the recipe shown on the current page, if any. The
// link the page was opened by wins; otherwise a recipe whose url has the
// page's path matches, so absolute catalog urls resolve from bare paths.
func (a *App) onRecipePage() (catalog.Recipe, bool) {
	if a.page == a.resultsPath {
		return catalog.Recipe{}, false
	}
	want := saved.NormalizeURL(a.pageURL)
	match := -1
	for i, r := range a.catalog {
		if saved.NormalizeURL(r.URL) == want {
			return r, true
		}
		if match < 0 && urlPath(r.URL) == a.page {
			match = i
		}
	}
	if match >= 0 {
		return a.catalog[match], true
	}
	return catalog.Recipe{}, false
}

// pageItem is what the current page's save toggle stands for: the recipe
// when the page shows one, else the bare page path.
func (a *App) pageItem() saved.Item {
	if r, ok := a.onRecipePage(); ok {
		return saved.Item{Title: r.Title, URL: r.URL, Image: r.Image}
	}
	return saved.Item{URL: a.page}
}

func urlPath(raw string) string {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return ""
	}
	return u.Path
}

func (a *App) isSaved(u string) bool {
	return saved.Contains(a.saved, u)
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Results returns the current filtered results (for testing).
func (a *App) Results() []catalog.Recipe {
	return a.results
}

// Saved returns the saved-list snapshot (for testing).
func (a *App) Saved() []saved.Item {
	return a.saved
}

// Overlays returns the overlay set (for testing).
func (a *App) Overlays() *overlay.Set {
	return a.overlays
}

// Registry returns the surface registry (for testing).
func (a *App) Registry() *dispatch.Registry {
	return a.registry
}

// Page returns the current page path.
func (a *App) Page() string {
	return a.page
}

// Query returns the active listing query.
func (a *App) Query() string {
	return a.query
}
