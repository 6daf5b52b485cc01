package ports

// Style selects one of the fixed status-line colors.
type Style int

const (
	// StyleReset restores the default foreground color.
	StyleReset Style = iota
	// StyleSpeed is used for the speed / paused indicator.
	StyleSpeed
	// StylePrompt is used for the end-of-stream prompt.
	StylePrompt
)

// Screen abstracts the terminal output operations used during playback.
// Coordinates are 1-based, matching ANSI cursor addressing.
type Screen interface {
	// Clear erases the whole screen.
	Clear()

	// MoveCursor places the cursor at the given column and row.
	MoveCursor(col, row int)

	// HideCursor hides the cursor.
	HideCursor()

	// ShowCursor makes the cursor visible.
	ShowCursor()

	// SetStyle switches the foreground color for subsequent writes.
	SetStyle(style Style)

	// Write writes text verbatim.
	Write(text string)

	// Flush pushes buffered output to the terminal.
	Flush() error

	// Size returns the terminal dimensions in character cells.
	Size() (cols, rows int)
}
