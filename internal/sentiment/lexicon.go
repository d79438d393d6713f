package sentiment

// slangLexicon overrides or extends the default VADER table with social-media
// slang. VADER lexicon entries are a single valence weight, so only the
// compound weight of each term is injected.
var slangLexicon = map[string]float64{
	"lit":        0.9,
	"fire":       0.9,
	"awesome":    0.9,
	"cool":       0.8,
	"vibes":      0.0,
	"savage":     0.5,
	"cringe":     -0.7,
	"dope":       0.8,
	"hyped":      0.7,
	"OMG":        0.5,
	"YAS":        0.8,
	"slay":       0.9,
	"mood":       0.0,
	"fomo":       -0.2,
	"sus":        -0.2,
	"BFF":        0.8,
	"YOLO":       0.6,
	"tbh":        0.5,
	"shook":      -0.3,
	"thirsty":    -0.5,
	"iconic":     0.6,
	"queen":      0.8,
	"trash":      -0.8,
	"epic":       0.7,
	"fleek":      0.7,
	"sorry":      -0.5,
	"basic":      -0.3,
	"yass":       0.8,
	"good vibes": 0.6,
	"no cap":     0.7,
	"lame":       -0.6,
	"dank":       0.6,
	"chill":      0.5,
	"salty":      -0.4,
	"blessed":    0.8,
	"fake":       -0.6,
	"sick":       0.8,
	"woke":       0.5,
	"LOL":        0.7,
	"LMAO":       0.8,
	"SMH":        -0.6,
	"ROFL":       0.8,
}
