package constant

import _ "embed"

// AsciiArtLogo is the banner shown at the top of the root help screen.
//
//go:embed ascii.txt
var AsciiArtLogo string
