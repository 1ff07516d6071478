package shop

// Item categories. A player has at most one equipped item per category.
const (
	CategorySymbol    = "symbol"
	CategoryEmojiPack = "emoji_pack"
	CategoryBg        = "background"
	CategoryAnimation = "animation"
)

// Item is one cosmetic the shop sells. The catalog ships in code; there
// is no admin surface for editing it at runtime.
type Item struct {
	ID       string `json:"id"`
	Category string `json:"category"`
	Name     string `json:"name"`
	Price    int64  `json:"price"`
	Preview  string `json:"preview"`
	Desc     string `json:"desc"`
}

var catalog = map[string]Item{
	"symbol_stars": {
		ID: "symbol_stars", Category: CategorySymbol, Name: "Stars",
		Price: 500, Preview: "⭐✴️", Desc: "X becomes ⭐, O becomes ✴️",
	},
	"symbol_fox": {
		ID: "symbol_fox", Category: CategorySymbol, Name: "Foxes",
		Price: 700, Preview: "🦊🌕", Desc: "Foxes instead of X/O",
	},
	"emoji_party": {
		ID: "emoji_party", Category: CategoryEmojiPack, Name: "Party Pack",
		Price: 800, Preview: "🎉🥳🍾", Desc: "Bright emoji instead of X/O",
	},
	"emoji_space": {
		ID: "emoji_space", Category: CategoryEmojiPack, Name: "Space Pack",
		Price: 900, Preview: "🚀🌟👾", Desc: "Cosmic emoji",
	},
	"bg_neon": {
		ID: "bg_neon", Category: CategoryBg, Name: "Neon Board",
		Price: 700, Preview: "🔵🔴", Desc: "A stylish neon board background",
	},
	"bg_wood": {
		ID: "bg_wood", Category: CategoryBg, Name: "Wooden Board",
		Price: 600, Preview: "🪵", Desc: "A warm wooden board background",
	},
	"anim_confetti": {
		ID: "anim_confetti", Category: CategoryAnimation, Name: "Confetti",
		Price: 1200, Preview: "🎊", Desc: "A festive burst on victory",
	},
	"anim_fireworks": {
		ID: "anim_fireworks", Category: CategoryAnimation, Name: "Fireworks",
		Price: 1400, Preview: "🎆", Desc: "An explosive celebration on victory",
	},
}

// Find looks an item up by id.
func Find(itemID string) (Item, bool) {
	item, ok := catalog[itemID]
	return item, ok
}

// ByCategory lists every item in a category.
func ByCategory(category string) []Item {
	var items []Item
	for _, item := range catalog {
		if item.Category == category {
			items = append(items, item)
		}
	}
	return items
}

// equippedColumn maps a category to the users table column holding the
// currently equipped item of that category.
func equippedColumn(category string) (string, bool) {
	switch category {
	case CategorySymbol:
		return "equipped_symbol", true
	case CategoryBg:
		return "equipped_bg", true
	case CategoryEmojiPack:
		return "equipped_emoji_pack", true
	case CategoryAnimation:
		return "equipped_animation", true
	}
	return "", false
}
