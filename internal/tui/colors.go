package tui

// Color constants for the tempo TUI theme
const (
	// Text Colors
	ColorPrimaryText   = "#E8F0EC" // Primary text (task names, clock)
	ColorSecondaryText = "#9DB2A6" // Secondary text - muted green-grey
	ColorHelpText      = "240"     // Dark grey for help text

	// Accent Colors (green theme)
	ColorAccentMain   = "#00C774" // Accent elements, borders
	ColorAccentBright = "#36F09A" // Highlights, the running clock

	// State Colors
	ColorBorder  = "#3A554A" // Panel borders
	ColorError   = "#EF4444" // Errors
	ColorSuccess = "#22C55E" // Success, confirmations
	ColorWarning = "#F59E0B" // Break phases, warnings
)
