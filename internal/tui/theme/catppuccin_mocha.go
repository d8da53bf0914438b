package theme

// NewCatppuccinMocha creates the default Catppuccin Mocha theme.
func NewCatppuccinMocha() *Theme {
	return &Theme{
		Name:   "catppuccin-mocha",
		IsDark: true,

		Primary:   "#cba6f7", // Mauve
		Secondary: "#89b4fa", // Blue

		BgBase:     "#1e1e2e", // Base
		BgSurface0: "#313244", // Surface0
		BgSurface1: "#45475a", // Surface1

		FgMuted:  "#6c7086", // Overlay0
		FgSubtle: "#a6adc8", // Subtext0
		FgBase:   "#cdd6f4", // Text
		FgBright: "#bac2de", // Subtext1

		Success: "#a6e3a1", // Green
		Warning: "#f9e2af", // Yellow
		Error:   "#f38ba8", // Red
		Info:    "#89dceb", // Sky
	}
}
