package export

import "strconv"

// RGB is an 8-bit colour.
type RGB struct {
	R, G, B int
}

const fallbackGenreColor = "#CCCCCC"

var genreColors = map[string]string{
	"Rock":       "#FF6B6B",
	"Pop":        "#4ECDC4",
	"Jazz":       "#FFD166",
	"Classical":  "#06D6A0",
	"Hip Hop":    "#118AB2",
	"Hip-Hop":    "#118AB2",
	"Electronic": "#EF476F",
	"Country":    "#073B4C",
	"R&B":        "#7209B7",
	"Metal":      "#3A0CA3",
	"Folk":       "#F72585",
	"Blues":      "#480CA8",
	"Reggae":     "#560BAD",
}

// GenreColor returns the row fill for a genre, grey for anything unlisted.
func GenreColor(genre string) RGB {
	hex, ok := genreColors[genre]
	if !ok {
		hex = fallbackGenreColor
	}
	c, _ := parseHex(hex)
	return c
}

// ContrastColor picks black or white text for a fill by perceived luminance.
func ContrastColor(fill RGB) RGB {
	luminance := (0.299*float64(fill.R) + 0.587*float64(fill.G) + 0.114*float64(fill.B)) / 255
	if luminance > 0.5 {
		return RGB{0, 0, 0}
	}
	return RGB{255, 255, 255}
}

func parseHex(hex string) (RGB, bool) {
	if len(hex) == 7 && hex[0] == '#' {
		hex = hex[1:]
	}
	if len(hex) != 6 {
		return RGB{}, false
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return RGB{}, false
	}
	return RGB{R: int(v >> 16 & 0xFF), G: int(v >> 8 & 0xFF), B: int(v & 0xFF)}, true
}
