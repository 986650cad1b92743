package icon

// Icon identifies a symbol in the registry.
type Icon int

const (
	Success Icon = iota
	Fail
	Progress
	Item
	Program
	Link
	Key
)

var icons = map[Icon]glyphs{
	Success: {
		emoji:   "✅",
		nerd:    "",
		plain:   "✓",
		kaomoji: "(◕‿◕)",
		squares: "🟩",
	},
	Fail: {
		emoji:   "❌",
		nerd:    "",
		plain:   "✗",
		kaomoji: "(╥﹏╥)",
		squares: "🟥",
	},
	Progress: {
		emoji:   "⏳",
		nerd:    "",
		plain:   "…",
		kaomoji: "(・_・)",
		squares: "🟨",
	},
	Item: {
		emoji:   "🎬",
		nerd:    "",
		plain:   "▶",
		kaomoji: "(ﾉ◕ヮ◕)ﾉ",
		squares: "🟦",
	},
	Program: {
		emoji:   "📺",
		nerd:    "",
		plain:   "■",
		kaomoji: "(⌐■_■)",
		squares: "🟪",
	},
	Link: {
		emoji:   "🔗",
		nerd:    "",
		plain:   "→",
		kaomoji: "(☞ﾟ∀ﾟ)☞",
		squares: "⬜",
	},
	Key: {
		emoji:   "🔑",
		nerd:    "",
		plain:   "*",
		kaomoji: "(¬‿¬)",
		squares: "🟧",
	},
}
