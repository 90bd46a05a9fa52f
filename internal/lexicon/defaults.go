package lexicon

// Built-in dictionaries, German and English. Keys are matched lowercase.

var defaultPhrases = map[string]string{
	"guten morgen":   "🌅",
	"good morning":   "🌅",
	"gute nacht":     "🌙",
	"good night":     "🌙",
	"ich liebe":      "😍",
	"i love":         "😍",
	"alles gute":     "🎂",
	"happy birthday": "🎂",
	"auf wiedersehen": "👋",
	"see you":        "👋",
	"ich weiß nicht": "🤷",
	"i don't know":   "🤷",
	"viel glück":     "🍀",
	"good luck":      "🍀",
}

var defaultWords = map[string]string{
	"liebe":   "❤️",
	"love":    "❤️",
	"herz":    "💖",
	"heart":   "💖",
	"sonne":   "☀️",
	"sun":     "☀️",
	"regen":   "🌧️",
	"rain":    "🌧️",
	"party":   "🎉",
	"musik":   "🎵",
	"music":   "🎵",
	"kaffee":  "☕",
	"coffee":  "☕",
	"pizza":   "🍕",
	"bier":    "🍺",
	"beer":    "🍺",
	"hallo":   "👋",
	"hello":   "👋",
	"danke":   "🙏",
	"thanks":  "🙏",
	"feuer":   "🔥",
	"fire":    "🔥",
	"geld":    "💰",
	"money":   "💰",
	"katze":   "🐱",
	"cat":     "🐱",
	"hund":    "🐶",
	"dog":     "🐶",
	"lachen":  "😂",
	"laugh":   "😂",
	"schlafen": "😴",
	"sleep":   "😴",
	"essen":   "🍽️",
	"food":    "🍽️",
	"arbeit":  "💼",
	"work":    "💼",
	"stern":   "⭐",
	"star":    "⭐",
}

var defaultPositive = []string{
	"liebe", "love", "super", "toll", "great", "good", "gut",
	"schön", "happy", "glücklich", "awesome", "nice", "danke",
	"thanks", "wunderbar", "wonderful", "perfekt", "perfect",
	"freude", "joy", "best", "beste",
}

var defaultNegative = []string{
	"hass", "hate", "schlecht", "bad", "terrible", "schrecklich",
	"angry", "wütend", "sad", "traurig", "furchtbar", "awful",
	"horrible", "schlimm", "worst", "nein", "angst", "fear",
}
