package app

// Key binding constants used in handleKey.
const (
	KeyQuit      = "q"
	KeyQuitUpper = "Q"
	KeyCtrlC     = "ctrl+c"
	KeySpace     = " "
	KeyTab       = "tab"
	KeyShiftTab  = "shift+tab"
	KeyUp        = "up"
	KeyDown      = "down"
	KeyLeft      = "left"
	KeyRight     = "right"
	KeyJ         = "j"
	KeyK         = "k"
	KeyH         = "h"
	KeyL         = "l"
	KeyEnter     = "enter"
	KeyEsc       = "esc"
	KeyBackspace = "backspace"
	KeyFinishDay = "f"
	KeyReset     = "r"
	KeyAddTask   = "a"
	KeyDelete    = "x"
	KeyEdit      = "e"
	KeyToggle    = "n"
	KeyTestNote  = "t"
)
