package dispatch

// Marker identifies a surface or control. Markers are the stable contract
// between the render layer, which tags what it draws, and the routes.
type Marker string

const (
	// Mobile navigation
	BurgerButton      Marker = "burger-btn"
	MobileNavDrawer   Marker = "mobile-nav-drawer"
	MobileNavBackdrop Marker = "mobile-nav-backdrop"
	MobileNavClose    Marker = "drawer-close"
	NavLink           Marker = "nav-link"

	// Filters drawer
	FiltersButton   Marker = "filters-btn"
	FiltersDrawer   Marker = "filters-drawer"
	FiltersBackdrop Marker = "filters-backdrop"
	FiltersClose    Marker = "filters-close"
	FiltersReset    Marker = "filters-reset"
	FacetContainer  Marker = "facet-container"
	FacetCheckbox   Marker = "facet-checkbox"

	// Saved drawer
	SavedButton   Marker = "saved-btn"
	SavedDrawer   Marker = "saved-drawer"
	SavedBackdrop Marker = "saved-backdrop"
	SavedClose    Marker = "saved-close"
	SavedRemove   Marker = "saved-remove"
	SavedBadge    Marker = "saved-count"

	// Header search
	SearchOpen    Marker = "search-open"
	SearchOverlay Marker = "search-overlay"
	SearchClose   Marker = "search-close"
	SearchInput   Marker = "search-input"

	// Listing
	SaveToggle  Marker = "save-toggle"
	ResultsGrid Marker = "results-grid"
	EmptyState  Marker = "empty-state"
	ResultCard  Marker = "result-card"
)

// Attribute keys carried by nodes.
const (
	AttrTitle = "data-title"
	AttrURL   = "data-url"
	AttrImage = "data-image"
	AttrFacet = "data-facet"
	AttrLabel = "data-label"
	AttrHref  = "href"
)

// HeaderSurfaces are mounted together when the header arrives.
var HeaderSurfaces = []Marker{BurgerButton, SavedButton, SavedBadge, SearchOpen}
