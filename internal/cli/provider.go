package cli

// CLIColorProvider implements apperrors.ColorProvider using the active
// terminal theme.
type CLIColorProvider struct{}

// Yellow returns the warning color code.
func (c CLIColorProvider) Yellow() string { return ColorYellow() }

// Reset returns the reset color code.
func (c CLIColorProvider) Reset() string { return ColorReset() }
