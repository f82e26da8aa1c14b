package ui

// ColorRed returns the error escape code of the active theme.
func ColorRed() string { return CurrentTheme().Error }

// ColorDim returns the dim escape code of the active theme.
func ColorDim() string { return CurrentTheme().Dim }

// ColorReset returns the reset escape code of the active theme.
func ColorReset() string { return CurrentTheme().Reset }
