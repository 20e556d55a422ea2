package theme

import "github.com/charmbracelet/lipgloss"

// Kanagawa: Dragon for dark terminals, Lotus-leaning tones for light ones.
func newKanagawaColors() Colors {
	return Colors{
		Green:              lipgloss.AdaptiveColor{Light: "#4E7C5A", Dark: "#98BB6C"},
		Yellow:             lipgloss.AdaptiveColor{Light: "#A68A64", Dark: "#E6C384"},
		Red:                lipgloss.AdaptiveColor{Light: "#C34043", Dark: "#FF5D62"},
		Orange:             lipgloss.AdaptiveColor{Light: "#CC6B4E", Dark: "#FFA066"},
		Cyan:               lipgloss.AdaptiveColor{Light: "#5B8BBE", Dark: "#7FB4CA"},
		Blue:               lipgloss.AdaptiveColor{Light: "#4F7CAC", Dark: "#7E9CD8"},
		Violet:             lipgloss.AdaptiveColor{Light: "#674D7A", Dark: "#957FB8"},
		Pink:               lipgloss.AdaptiveColor{Light: "#B35C74", Dark: "#D27E99"},
		LightText:          lipgloss.AdaptiveColor{Light: "#2B2F42", Dark: "#DCD7BA"},
		MutedText:          lipgloss.AdaptiveColor{Light: "#6C7086", Dark: "#727169"},
		Border:             lipgloss.AdaptiveColor{Light: "#B5BDC5", Dark: "#54546D"},
		SelectedBackground: lipgloss.AdaptiveColor{Light: "#E2E6F3", Dark: "#223249"},
		SubtleBackground:   lipgloss.AdaptiveColor{Light: "#F7F7FB", Dark: "#1F1F28"},
	}
}

func newGruvboxColors() Colors {
	return Colors{
		Green:              lipgloss.AdaptiveColor{Light: "#98971A", Dark: "#B8BB26"},
		Yellow:             lipgloss.AdaptiveColor{Light: "#D79921", Dark: "#FABD2F"},
		Red:                lipgloss.AdaptiveColor{Light: "#CC241D", Dark: "#FB4934"},
		Orange:             lipgloss.AdaptiveColor{Light: "#D65D0E", Dark: "#FE8019"},
		Cyan:               lipgloss.AdaptiveColor{Light: "#458588", Dark: "#83A598"},
		Blue:               lipgloss.AdaptiveColor{Light: "#076678", Dark: "#458588"},
		Violet:             lipgloss.AdaptiveColor{Light: "#8F3F71", Dark: "#B16286"},
		Pink:               lipgloss.AdaptiveColor{Light: "#B57679", Dark: "#D3869B"},
		LightText:          lipgloss.AdaptiveColor{Light: "#3C3836", Dark: "#EBDBB2"},
		MutedText:          lipgloss.AdaptiveColor{Light: "#928374", Dark: "#BDAE93"},
		Border:             lipgloss.AdaptiveColor{Light: "#D5C4A1", Dark: "#504945"},
		SelectedBackground: lipgloss.AdaptiveColor{Light: "#F2E5BC", Dark: "#32302F"},
		SubtleBackground:   lipgloss.AdaptiveColor{Light: "#FBF1C7", Dark: "#282828"},
	}
}

// ANSI indexes so the terminal's own palette applies.
func newTerminalColors() Colors {
	return Colors{
		Green:              lipgloss.Color("2"),
		Yellow:             lipgloss.Color("3"),
		Red:                lipgloss.Color("1"),
		Orange:             lipgloss.Color("208"),
		Cyan:               lipgloss.Color("6"),
		Blue:               lipgloss.Color("4"),
		Violet:             lipgloss.Color("5"),
		Pink:               lipgloss.Color("13"),
		LightText:          lipgloss.Color("7"),
		MutedText:          lipgloss.Color("8"),
		Border:             lipgloss.Color("8"),
		SelectedBackground: lipgloss.Color("8"),
		SubtleBackground:   lipgloss.Color("0"),
	}
}
