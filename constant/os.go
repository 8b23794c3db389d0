package constant

// runtime.GOOS values the application special-cases when clearing the screen
// and opening URLs or files.
const (
	Windows = "windows"
	Darwin  = "darwin"
	Linux   = "linux"
	Android = "android"
)
