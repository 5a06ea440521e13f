package icon

// Icon is a status symbol.
type Icon int

const (
	Success Icon = iota
	Fail
	Progress
	Warn
	Question
	Backend
	Link
	Play
	Pause
)

var icons = map[Icon]glyphs{
	Success: {
		Emoji:   "✅",
		Nerd:    "",
		Plain:   "✓",
		Kaomoji: "(ᵔ◡ᵔ)",
		Squares: "🟩",
	},
	Fail: {
		Emoji:   "👹",
		Nerd:    "",
		Plain:   "✖",
		Kaomoji: "(╯°□°)╯",
		Squares: "🟥",
	},
	Progress: {
		Emoji:   "⏳",
		Nerd:    "",
		Plain:   "…",
		Kaomoji: "(●´ω｀●)",
		Squares: "🟦",
	},
	Warn: {
		Emoji:   "⚠️",
		Nerd:    "",
		Plain:   "!",
		Kaomoji: "(・_・;)",
		Squares: "🟨",
	},
	Question: {
		Emoji:   "❓",
		Nerd:    "",
		Plain:   "?",
		Kaomoji: "(・・?)",
		Squares: "🟪",
	},
	Backend: {
		Emoji:   "🎛️",
		Nerd:    "",
		Plain:   "*",
		Kaomoji: "(￣▽￣)ノ",
		Squares: "🟫",
	},
	Link: {
		Emoji:   "🔗",
		Nerd:    "",
		Plain:   "->",
		Kaomoji: "(⊃｡•́‿•̀｡)⊃",
		Squares: "⬜",
	},
	Play: {
		Emoji:   "▶️",
		Nerd:    "",
		Plain:   ">",
		Kaomoji: "♪(´▽｀)",
		Squares: "🟩",
	},
	Pause: {
		Emoji:   "⏸️",
		Nerd:    "",
		Plain:   "||",
		Kaomoji: "(－_－) zzZ",
		Squares: "⬛",
	},
}
