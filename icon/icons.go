package icon

type Icon int

const (
	Success Icon = iota
	Fail
	Progress
	Search
	Source
	Episode
	Link
	Subtitle
	Key
)

var icons = map[Icon]*iconDef{
	Success: {
		emoji:   "🎉",
		nerd:    "",
		plain:   "✓",
		kaomoji: "(ᵔ◡ᵔ)",
		squares: "🟩",
	},
	Fail: {
		emoji:   "😿",
		nerd:    "",
		plain:   "✖",
		kaomoji: "(╥﹏╥)",
		squares: "🟥",
	},
	Progress: {
		emoji:   "⏳",
		nerd:    "",
		plain:   "…",
		kaomoji: "(￣ω￣;)",
		squares: "🟨",
	},
	Search: {
		emoji:   "🔍",
		nerd:    "",
		plain:   "?",
		kaomoji: "(・_・ヾ",
		squares: "🟦",
	},
	Source: {
		emoji:   "📦",
		nerd:    "",
		plain:   "#",
		kaomoji: "(っ˘ڡ˘ς)",
		squares: "🟪",
	},
	Episode: {
		emoji:   "🎞️",
		nerd:    "",
		plain:   "*",
		kaomoji: "(ﾉ◕ヮ◕)ﾉ",
		squares: "🟫",
	},
	Link: {
		emoji:   "🔗",
		nerd:    "",
		plain:   ">",
		kaomoji: "(づ｡◕‿‿◕｡)づ",
		squares: "🟧",
	},
	Subtitle: {
		emoji:   "💬",
		nerd:    "",
		plain:   "~",
		kaomoji: "(´･ω･`)",
		squares: "⬜",
	},
	Key: {
		emoji:   "🔑",
		nerd:    "",
		plain:   "=",
		kaomoji: "(ಠ_ಠ)",
		squares: "⬛",
	},
}
