// Package palette holds the fixed set of bubble colors and the themes the
// renderers draw them on.
package palette

type Key int

const (
	Default Key = iota
	Red
	Blue
	Green
	Yellow
	Purple
	Orange
	Teal
	Pink
)

// Scheme is the set of colors used to paint a bubble and the links pointing at it.
type Scheme struct {
	BG         string
	Border     string
	Text       string
	Connection string
}

var names = [...]string{
	Default: "default",
	Red:     "red",
	Blue:    "blue",
	Green:   "green",
	Yellow:  "yellow",
	Purple:  "purple",
	Orange:  "orange",
	Teal:    "teal",
	Pink:    "pink",
}

var schemes = [...]Scheme{
	Default: {BG: "#8B7ED8", Border: "#ffffff", Text: "#ffffff", Connection: "#8B7ED8"},
	Red:     {BG: "#E85A5A", Border: "#ffffff", Text: "#ffffff", Connection: "#E85A5A"},
	Blue:    {BG: "#5A9BD4", Border: "#ffffff", Text: "#ffffff", Connection: "#5A9BD4"},
	Green:   {BG: "#7BC142", Border: "#ffffff", Text: "#ffffff", Connection: "#7BC142"},
	Yellow:  {BG: "#F4A460", Border: "#ffffff", Text: "#ffffff", Connection: "#F4A460"},
	Purple:  {BG: "#9B59B6", Border: "#ffffff", Text: "#ffffff", Connection: "#9B59B6"},
	Orange:  {BG: "#E67E22", Border: "#ffffff", Text: "#ffffff", Connection: "#E67E22"},
	Teal:    {BG: "#1ABC9C", Border: "#ffffff", Text: "#ffffff", Connection: "#1ABC9C"},
	Pink:    {BG: "#E91E63", Border: "#ffffff", Text: "#ffffff", Connection: "#E91E63"},
}

// Count is the number of palette entries; number keys 1..Count select them.
const Count = len(names)

func (k Key) Valid() bool {
	return k >= 0 && int(k) < Count
}

func (k Key) String() string {
	if !k.Valid() {
		return names[Default]
	}
	return names[k]
}

// Scheme resolves the key through the lookup table. Unknown keys resolve to Default.
func (k Key) Scheme() Scheme {
	if !k.Valid() {
		return schemes[Default]
	}
	return schemes[k]
}

func Parse(name string) (Key, bool) {
	for i, n := range names {
		if n == name {
			return Key(i), true
		}
	}
	return Default, false
}

// ByIndex returns the i-th palette entry (0-based).
func ByIndex(i int) (Key, bool) {
	if i < 0 || i >= Count {
		return Default, false
	}
	return Key(i), true
}

func All() []Key {
	keys := make([]Key, Count)
	for i := range keys {
		keys[i] = Key(i)
	}
	return keys
}

type Theme struct {
	Name       string
	Background string
	Foreground string
	Preview    string
}

var themes = map[string]Theme{
	"default": {Name: "default", Background: "#f8f9fa", Foreground: "#212529", Preview: "#CCCCCC"},
	"dark":    {Name: "dark", Background: "#1e1e2e", Foreground: "#e0e0e0", Preview: "#ffffff"},
}

// ThemeNamed returns the named theme, falling back to the default one.
func ThemeNamed(name string) Theme {
	if t, ok := themes[name]; ok {
		return t
	}
	return themes["default"]
}
