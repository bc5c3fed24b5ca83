package styles

import "github.com/charmbracelet/lipgloss"

// Themes maps theme slugs to their Base16 color schemes.
var Themes = map[string]Theme{
	"solarized-dark": {
		Name:   "Solarized Dark",
		Base00: lipgloss.Color("#002b36"),
		Base01: lipgloss.Color("#073642"),
		Base02: lipgloss.Color("#586e75"),
		Base03: lipgloss.Color("#657b83"),
		Base04: lipgloss.Color("#839496"),
		Base05: lipgloss.Color("#93a1a1"),
		Base06: lipgloss.Color("#eee8d5"),
		Base07: lipgloss.Color("#fdf6e3"),
		Base08: lipgloss.Color("#dc322f"),
		Base09: lipgloss.Color("#cb4b16"),
		Base0A: lipgloss.Color("#b58900"),
		Base0B: lipgloss.Color("#859900"),
		Base0C: lipgloss.Color("#2aa198"),
		Base0D: lipgloss.Color("#268bd2"),
		Base0E: lipgloss.Color("#6c71c4"),
		Base0F: lipgloss.Color("#d33682"),
	},
	"solarized-light": {
		Name:   "Solarized Light",
		Base00: lipgloss.Color("#fdf6e3"),
		Base01: lipgloss.Color("#eee8d5"),
		Base02: lipgloss.Color("#93a1a1"),
		Base03: lipgloss.Color("#839496"),
		Base04: lipgloss.Color("#657b83"),
		Base05: lipgloss.Color("#586e75"),
		Base06: lipgloss.Color("#073642"),
		Base07: lipgloss.Color("#002b36"),
		Base08: lipgloss.Color("#dc322f"),
		Base09: lipgloss.Color("#cb4b16"),
		Base0A: lipgloss.Color("#b58900"),
		Base0B: lipgloss.Color("#859900"),
		Base0C: lipgloss.Color("#2aa198"),
		Base0D: lipgloss.Color("#268bd2"),
		Base0E: lipgloss.Color("#6c71c4"),
		Base0F: lipgloss.Color("#d33682"),
	},
	"gruvbox-dark": {
		Name:   "Gruvbox Dark",
		Base00: lipgloss.Color("#282828"),
		Base01: lipgloss.Color("#3c3836"),
		Base02: lipgloss.Color("#504945"),
		Base03: lipgloss.Color("#665c54"),
		Base04: lipgloss.Color("#bdae93"),
		Base05: lipgloss.Color("#d5c4a1"),
		Base06: lipgloss.Color("#ebdbb2"),
		Base07: lipgloss.Color("#fbf1c7"),
		Base08: lipgloss.Color("#fb4934"),
		Base09: lipgloss.Color("#fe8019"),
		Base0A: lipgloss.Color("#fabd2f"),
		Base0B: lipgloss.Color("#b8bb26"),
		Base0C: lipgloss.Color("#8ec07c"),
		Base0D: lipgloss.Color("#83a598"),
		Base0E: lipgloss.Color("#d3869b"),
		Base0F: lipgloss.Color("#d65d0e"),
	},
	"gruvbox-light": {
		Name:   "Gruvbox Light",
		Base00: lipgloss.Color("#fbf1c7"),
		Base01: lipgloss.Color("#ebdbb2"),
		Base02: lipgloss.Color("#d5c4a1"),
		Base03: lipgloss.Color("#bdae93"),
		Base04: lipgloss.Color("#665c54"),
		Base05: lipgloss.Color("#504945"),
		Base06: lipgloss.Color("#3c3836"),
		Base07: lipgloss.Color("#282828"),
		Base08: lipgloss.Color("#9d0006"),
		Base09: lipgloss.Color("#af3a03"),
		Base0A: lipgloss.Color("#b57614"),
		Base0B: lipgloss.Color("#79740e"),
		Base0C: lipgloss.Color("#427b58"),
		Base0D: lipgloss.Color("#076678"),
		Base0E: lipgloss.Color("#8f3f71"),
		Base0F: lipgloss.Color("#d65d0e"),
	},
	"nord": {
		Name:   "Nord",
		Base00: lipgloss.Color("#2e3440"),
		Base01: lipgloss.Color("#3b4252"),
		Base02: lipgloss.Color("#434c5e"),
		Base03: lipgloss.Color("#4c566a"),
		Base04: lipgloss.Color("#d8dee9"),
		Base05: lipgloss.Color("#e5e9f0"),
		Base06: lipgloss.Color("#eceff4"),
		Base07: lipgloss.Color("#8fbcbb"),
		Base08: lipgloss.Color("#bf616a"),
		Base09: lipgloss.Color("#d08770"),
		Base0A: lipgloss.Color("#ebcb8b"),
		Base0B: lipgloss.Color("#a3be8c"),
		Base0C: lipgloss.Color("#88c0d0"),
		Base0D: lipgloss.Color("#81a1c1"),
		Base0E: lipgloss.Color("#b48ead"),
		Base0F: lipgloss.Color("#5e81ac"),
	},
	"dracula": {
		Name:   "Dracula",
		Base00: lipgloss.Color("#282a36"),
		Base01: lipgloss.Color("#363447"),
		Base02: lipgloss.Color("#44475a"),
		Base03: lipgloss.Color("#6272a4"),
		Base04: lipgloss.Color("#9ea8c7"),
		Base05: lipgloss.Color("#f8f8f2"),
		Base06: lipgloss.Color("#f0f1f4"),
		Base07: lipgloss.Color("#ffffff"),
		Base08: lipgloss.Color("#ff5555"),
		Base09: lipgloss.Color("#ffb86c"),
		Base0A: lipgloss.Color("#f1fa8c"),
		Base0B: lipgloss.Color("#50fa7b"),
		Base0C: lipgloss.Color("#8be9fd"),
		Base0D: lipgloss.Color("#bd93f9"),
		Base0E: lipgloss.Color("#ff79c6"),
		Base0F: lipgloss.Color("#bd9cf9"),
	},
	"tokyo-night": {
		Name:   "Tokyo Night",
		Base00: lipgloss.Color("#1a1b26"),
		Base01: lipgloss.Color("#16161e"),
		Base02: lipgloss.Color("#2f3549"),
		Base03: lipgloss.Color("#444b6a"),
		Base04: lipgloss.Color("#787c99"),
		Base05: lipgloss.Color("#a9b1d6"),
		Base06: lipgloss.Color("#cbccd1"),
		Base07: lipgloss.Color("#d5d6db"),
		Base08: lipgloss.Color("#c0caf5"),
		Base09: lipgloss.Color("#a9b1d6"),
		Base0A: lipgloss.Color("#0db9d7"),
		Base0B: lipgloss.Color("#9ece6a"),
		Base0C: lipgloss.Color("#b4f9f8"),
		Base0D: lipgloss.Color("#2ac3de"),
		Base0E: lipgloss.Color("#bb9af7"),
		Base0F: lipgloss.Color("#f7768e"),
	},
	"catppuccin-mocha": {
		Name:   "Catppuccin Mocha",
		Base00: lipgloss.Color("#1e1e2e"),
		Base01: lipgloss.Color("#181825"),
		Base02: lipgloss.Color("#313244"),
		Base03: lipgloss.Color("#45475a"),
		Base04: lipgloss.Color("#585b70"),
		Base05: lipgloss.Color("#cdd6f4"),
		Base06: lipgloss.Color("#f5e0dc"),
		Base07: lipgloss.Color("#b4befe"),
		Base08: lipgloss.Color("#f38ba8"),
		Base09: lipgloss.Color("#fab387"),
		Base0A: lipgloss.Color("#f9e2af"),
		Base0B: lipgloss.Color("#a6e3a1"),
		Base0C: lipgloss.Color("#94e2d5"),
		Base0D: lipgloss.Color("#89b4fa"),
		Base0E: lipgloss.Color("#cba6f7"),
		Base0F: lipgloss.Color("#f2cdcd"),
	},
	"monokai": {
		Name:   "Monokai",
		Base00: lipgloss.Color("#272822"),
		Base01: lipgloss.Color("#383830"),
		Base02: lipgloss.Color("#49483e"),
		Base03: lipgloss.Color("#75715e"),
		Base04: lipgloss.Color("#a59f85"),
		Base05: lipgloss.Color("#f8f8f2"),
		Base06: lipgloss.Color("#f5f4f1"),
		Base07: lipgloss.Color("#f9f8f5"),
		Base08: lipgloss.Color("#f92672"),
		Base09: lipgloss.Color("#fd971f"),
		Base0A: lipgloss.Color("#f4bf75"),
		Base0B: lipgloss.Color("#a6e22e"),
		Base0C: lipgloss.Color("#a1efe4"),
		Base0D: lipgloss.Color("#66d9ef"),
		Base0E: lipgloss.Color("#ae81ff"),
		Base0F: lipgloss.Color("#cc6633"),
	},
	"ocean": {
		Name:   "Ocean",
		Base00: lipgloss.Color("#2b303b"),
		Base01: lipgloss.Color("#343d46"),
		Base02: lipgloss.Color("#4f5b66"),
		Base03: lipgloss.Color("#65737e"),
		Base04: lipgloss.Color("#a7adba"),
		Base05: lipgloss.Color("#c0c5ce"),
		Base06: lipgloss.Color("#dfe1e8"),
		Base07: lipgloss.Color("#eff1f5"),
		Base08: lipgloss.Color("#bf616a"),
		Base09: lipgloss.Color("#d08770"),
		Base0A: lipgloss.Color("#ebcb8b"),
		Base0B: lipgloss.Color("#a3be8c"),
		Base0C: lipgloss.Color("#96b5b4"),
		Base0D: lipgloss.Color("#8fa1b3"),
		Base0E: lipgloss.Color("#b48ead"),
		Base0F: lipgloss.Color("#ab7967"),
	},
}
