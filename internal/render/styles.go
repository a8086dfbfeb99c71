package render

import "github.com/charmbracelet/lipgloss"

var (
	colorPrimary   = lipgloss.Color("62")  // Purple
	colorSecondary = lipgloss.Color("241") // Gray
	colorMuted     = lipgloss.Color("240") // Darker gray
	colorHighlight = lipgloss.Color("212") // Pink
)

// CardTitle is the unselected card and row title.
var CardTitle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("255"))

// CardTitleSelected highlights the focused card or row.
var CardTitleSelected = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("255")).
	Background(colorPrimary)

// CardMeta is the minutes/level line.
var CardMeta = lipgloss.NewStyle().
	Foreground(colorSecondary)

// CardLabels is the categories/tags line.
var CardLabels = lipgloss.NewStyle().
	Foreground(colorMuted).
	Italic(true)

var SavedHeart = lipgloss.NewStyle().
	Foreground(colorHighlight).
	Bold(true)

var UnsavedHeart = lipgloss.NewStyle().
	Foreground(colorSecondary)

// BadgeStyle is the saved-count badge in the header.
var BadgeStyle = lipgloss.NewStyle().
	Foreground(colorHighlight).
	Background(lipgloss.Color("236")).
	Padding(0, 1)

var SavedURL = lipgloss.NewStyle().
	Foreground(colorMuted)

var RemoveControl = lipgloss.NewStyle().
	Foreground(lipgloss.Color("196"))

// EmptyState is the explicit no-results element.
var EmptyState = lipgloss.NewStyle().
	Foreground(colorMuted).
	Padding(1, 2)

// DrawerHeading titles a drawer section.
var DrawerHeading = lipgloss.NewStyle().
	Bold(true).
	Foreground(colorHighlight)
