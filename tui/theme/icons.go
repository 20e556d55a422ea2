package theme

import "os"

// Glyphs used by the session list.
type Glyphs struct {
	Recency   string
	Cursor    string
	Branch    string
	Tree      string
	Message   string
	RuleChar  string
	Ellipsis  string
	Separator string
}

var unicodeGlyphs = Glyphs{
	Recency:   "█",
	Cursor:    "▌",
	Branch:    "⎇",
	Tree:      "└─",
	Message:   "▸",
	RuleChar:  "─",
	Ellipsis:  "…",
	Separator: "│",
}

var asciiGlyphs = Glyphs{
	Recency:   "#",
	Cursor:    ">",
	Branch:    "@",
	Tree:      "`-",
	Message:   ">",
	RuleChar:  "-",
	Ellipsis:  "~",
	Separator: "|",
}

// Icons is the active glyph set. CCSESSIONS_ASCII=1 selects plain ASCII.
var Icons = resolveGlyphs()

func resolveGlyphs() Glyphs {
	if os.Getenv("CCSESSIONS_ASCII") == "1" {
		return asciiGlyphs
	}
	return unicodeGlyphs
}
