package wafermap

import (
	"strconv"

	"wafersight/domain/wafer"
)

// Styling constants of the shipped wafermap layout.
var (
	// SentinelFill marks cells whose end-test code or classification mark
	// could not be resolved. Both degraded outcomes use the same color and
	// are distinguishable only through the reported warning.
	SentinelFill = wafer.RGB{R: 200, G: 200, B: 200}

	HeaderFill = wafer.RGB{R: 228, G: 241, B: 253}
	HeaderFont = wafer.RGB{R: 46, G: 110, B: 158}
)

// paletteHex is the versioned classification-mark color table, keyed by
// single-character marks. It ships with the engine and is not user
// configurable; any change is a new release of this constant.
var paletteHex = map[string]string{
	"/": "#00FF00", "$": "#7B68EE", "*": "#87CEEB", "?": "#66FF66", "=": "#7FFFD4", "!": "#6495ED", "#": "#6A5ACD",
	"%": "#66FF66", ".": "#66FF66", ":": "#66FF66", "^": "#66FF66", "+": "#66FF66", "-": "#66FF66", "{": "#66FF66",
	"}": "#66FF66", "(": "#66FF66", ")": "#66FF66", "_": "#66FF66", "|": "#66FF66", ";": "#66FF66", "@": "#66FF66",
	"\\": "#66FF66", "<": "#66FF66", ">": "#66FF66", "&": "#66FF66",
	"0": "#66FF66", "1": "#FFFF99", "2": "#FF0000", "3": "#FFFFE0", "4": "#ADD8E6", "5": "#FF8080", "6": "#AFEEEE",
	"7": "#99CCFF", "8": "#FFCC00", "9": "#FFFF00",
	"A": "#2E8B57", "B": "#FFCC00", "C": "#FFCC00", "D": "#99CC00", "E": "#99CC00", "F": "#7CFC00", "G": "#FFFF00",
	"H": "#A6A6A6", "I": "#00CCFF", "J": "#32CD32", "K": "#20B2AA", "L": "#FFDEAD", "M": "#D9D9D9", "N": "#DAA520",
	"O": "#00CCFF", "P": "#FFFF99", "Q": "#ED7D31", "R": "#FFCC00", "S": "#FF7C80", "T": "#FFCC00", "U": "#00CCFF",
	"V": "#008080", "W": "#008080", "X": "#008080", "Y": "#666699", "Z": "#666699",
	"a": "#D2691E", "b": "#993366", "c": "#A52A2A", "d": "#E9967A", "e": "#660066", "f": "#ED7D31", "g": "#3366FF",
	"h": "#CCFFFF", "i": "#FF7F50", "j": "#99CCFF", "k": "#CCCCFF", "l": "#D9D9D9", "m": "#969696", "n": "#339966",
	"o": "#333399", "p": "#FF6600", "q": "#FFFF00", "r": "#0066CC", "s": "#FF9900", "t": "#33CCCC", "u": "#008080",
	"v": "#EE82EE", "w": "#DDA0DD", "x": "#00FFFF", "y": "#99CC00", "z": "#9932CC",
}

// Palette maps classification marks to fill colors. Loaded once at process
// start, never mutated.
var Palette = buildPalette()

func buildPalette() map[string]wafer.RGB {
	m := make(map[string]wafer.RGB, len(paletteHex))
	for mark, hex := range paletteHex {
		m[mark] = parseHex(hex)
	}
	return m
}

func parseHex(hex string) wafer.RGB {
	v, err := strconv.ParseUint(hex[1:], 16, 32)
	if err != nil {
		panic("wafermap: malformed palette entry " + hex)
	}
	return wafer.RGB{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}
}
