package styles

import "github.com/charmbracelet/lipgloss"

// Styles holds all themed lipgloss styles for the application.
type Styles struct {
	// Layout
	AppContainer lipgloss.Style

	// Header / Footer
	Header       lipgloss.Style
	HeaderTitle  lipgloss.Style
	HeaderStatus lipgloss.Style
	Footer       lipgloss.Style
	FooterKey    lipgloss.Style
	FooterDesc   lipgloss.Style

	// Table
	TableHeader  lipgloss.Style
	TableRow     lipgloss.Style
	TableRowSel  lipgloss.Style
	TableCellDim lipgloss.Style

	// Device status colors
	StatusOnline  lipgloss.Style
	StatusWarn    lipgloss.Style
	StatusOffline lipgloss.Style
	StatusNever   lipgloss.Style

	// Check table cell classification
	CellGood lipgloss.Style
	CellBad  lipgloss.Style

	// Live sync badge
	SyncOn  lipgloss.Style
	SyncOff lipgloss.Style

	// Alert severity badges
	SeverityCritical lipgloss.Style
	SeverityWarning  lipgloss.Style
	SeverityInfo     lipgloss.Style

	// Section headers within a view
	SectionHeader lipgloss.Style

	// Modal / overlay
	ModalBorder lipgloss.Style
	ModalTitle  lipgloss.Style

	// Form
	FormLabel       lipgloss.Style
	FormInput       lipgloss.Style
	FormInputActive lipgloss.Style
	FormError       lipgloss.Style

	// Sparkline (ping latency trend)
	SparklineStyle lipgloss.Style
}

// NewStyles creates a new Styles instance from a theme.
func NewStyles(theme Theme) *Styles {
	return &Styles{
		AppContainer: lipgloss.NewStyle().
			Foreground(theme.Base05).
			Background(theme.Base00),

		Header: lipgloss.NewStyle().
			Foreground(theme.Base05).
			Background(theme.Base01).
			Bold(true).
			Padding(0, 1),
		HeaderTitle: lipgloss.NewStyle().
			Foreground(theme.Base0D).
			Bold(true),
		HeaderStatus: lipgloss.NewStyle().
			Foreground(theme.Base0B),

		Footer: lipgloss.NewStyle().
			Foreground(theme.Base04).
			Background(theme.Base01).
			Padding(0, 1),
		FooterKey: lipgloss.NewStyle().
			Foreground(theme.Base0D).
			Bold(true),
		FooterDesc: lipgloss.NewStyle().
			Foreground(theme.Base04),

		TableHeader: lipgloss.NewStyle().
			Foreground(theme.Base0D).
			Bold(true),
		TableRow: lipgloss.NewStyle().
			Foreground(theme.Base05),
		TableRowSel: lipgloss.NewStyle().
			Foreground(theme.Base05).
			Background(theme.Base02),
		TableCellDim: lipgloss.NewStyle().
			Foreground(theme.Base03),

		StatusOnline: lipgloss.NewStyle().
			Foreground(theme.Base0B),
		StatusWarn: lipgloss.NewStyle().
			Foreground(theme.Base0A),
		StatusOffline: lipgloss.NewStyle().
			Foreground(theme.Base08),
		StatusNever: lipgloss.NewStyle().
			Foreground(theme.Base03),

		CellGood: lipgloss.NewStyle().
			Foreground(theme.Base0B),
		CellBad: lipgloss.NewStyle().
			Foreground(theme.Base08),

		SyncOn: lipgloss.NewStyle().
			Foreground(theme.Base0B).
			Bold(true),
		SyncOff: lipgloss.NewStyle().
			Foreground(theme.Base08).
			Bold(true),

		SeverityCritical: lipgloss.NewStyle().
			Foreground(theme.Base00).
			Background(theme.Base08).
			Bold(true).
			Padding(0, 1),
		SeverityWarning: lipgloss.NewStyle().
			Foreground(theme.Base00).
			Background(theme.Base0A).
			Padding(0, 1),
		SeverityInfo: lipgloss.NewStyle().
			Foreground(theme.Base00).
			Background(theme.Base0D).
			Padding(0, 1),

		SectionHeader: lipgloss.NewStyle().
			Foreground(theme.Base0E).
			Bold(true),

		ModalBorder: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Base0D).
			BorderBackground(theme.Base00).
			Background(theme.Base00).
			Padding(1, 2),
		ModalTitle: lipgloss.NewStyle().
			Foreground(theme.Base0D).
			Bold(true),

		FormLabel: lipgloss.NewStyle().
			Foreground(theme.Base04),
		FormInput: lipgloss.NewStyle().
			Foreground(theme.Base05),
		FormInputActive: lipgloss.NewStyle().
			Foreground(theme.Base06).
			Background(theme.Base02),
		FormError: lipgloss.NewStyle().
			Foreground(theme.Base08),

		SparklineStyle: lipgloss.NewStyle().
			Foreground(theme.Base0C),
	}
}
