package game

// Version is the origin game a record was caught or hatched in
type Version uint8

const (
	Sapphire    Version = 1
	Ruby        Version = 2
	Emerald     Version = 3
	FireRed     Version = 4
	LeafGreen   Version = 5
	HeartGold   Version = 7
	SoulSilver  Version = 8
	Diamond     Version = 10
	Pearl       Version = 11
	Platinum    Version = 12
	ColoXD      Version = 15
	White       Version = 20
	Black       Version = 21
	White2      Version = 22
	Black2      Version = 23
	X           Version = 24
	Y           Version = 25
	AlphaSapph  Version = 26
	OmegaRuby   Version = 27
	Sun         Version = 30
	Moon        Version = 31
	UltraSun    Version = 32
	UltraMoon   Version = 33
	GO          Version = 34
	LetsPikachu Version = 42
	LetsEevee   Version = 43
	Sword       Version = 44
	Shield      Version = 45
)

// Generation returns the origin generation of v
func (v Version) Generation() Generation {
	switch v {
	case Sapphire, Ruby, Emerald, FireRed, LeafGreen, ColoXD:
		return Three
	case HeartGold, SoulSilver, Diamond, Pearl, Platinum:
		return Four
	case White, Black, White2, Black2:
		return Five
	case X, Y, AlphaSapph, OmegaRuby:
		return Six
	case Sun, Moon, UltraSun, UltraMoon:
		return Seven
	case GO, LetsPikachu, LetsEevee:
		return LGPE
	case Sword, Shield:
		return Eight
	}
	return Unknown
}

var versionNames = map[Version]string{
	Sapphire: "Sapphire", Ruby: "Ruby", Emerald: "Emerald", FireRed: "FireRed", LeafGreen: "LeafGreen",
	HeartGold: "HeartGold", SoulSilver: "SoulSilver", Diamond: "Diamond", Pearl: "Pearl",
	Platinum: "Platinum", ColoXD: "Colosseum/XD", White: "White", Black: "Black", White2: "White 2",
	Black2: "Black 2", X: "X", Y: "Y", AlphaSapph: "Alpha Sapphire", OmegaRuby: "Omega Ruby",
	Sun: "Sun", Moon: "Moon", UltraSun: "Ultra Sun", UltraMoon: "Ultra Moon", GO: "GO",
	LetsPikachu: "Let's Go Pikachu", LetsEevee: "Let's Go Eevee", Sword: "Sword", Shield: "Shield",
}

func (v Version) String() string {
	if s, ok := versionNames[v]; ok {
		return s
	}
	return "unknown"
}

// Language of the game a record originates from
type Language uint8

const (
	LangNone    Language = 0
	Japanese    Language = 1
	English     Language = 2
	French      Language = 3
	Italian     Language = 4
	German      Language = 5
	Spanish     Language = 7
	Korean      Language = 8
	ChineseSimp Language = 9
	ChineseTrad Language = 10
)
