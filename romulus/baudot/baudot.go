package baudot

import "strings"

const (
	// SymbolWidth is the ITA2 code width in bits.
	SymbolWidth = 5

	// MaxSymbol is the largest valid symbol code.
	MaxSymbol = 1<<SymbolWidth - 1

	// Null is ignored on decode and used as line fill.
	Null = 0x00

	// Letters and Figures are the reserved shift codes. They switch the
	// decode plane instead of producing output.
	Letters = 0x1F
	Figures = 0x1B
)

var letterCodes = map[rune]byte{
	'A': 0x03, 'B': 0x19, 'C': 0x0E, 'D': 0x09, 'E': 0x01,
	'F': 0x0D, 'G': 0x1A, 'H': 0x14, 'I': 0x06, 'J': 0x0B,
	'K': 0x0F, 'L': 0x12, 'M': 0x1C, 'N': 0x0C, 'O': 0x18,
	'P': 0x16, 'Q': 0x17, 'R': 0x0A, 'S': 0x05, 'T': 0x10,
	'U': 0x07, 'V': 0x1E, 'W': 0x13, 'X': 0x1D, 'Y': 0x15,
	'Z': 0x11, ' ': 0x04, '\r': 0x08, '\n': 0x02,
}

var figureCodes = map[rune]byte{
	'1': 0x17, '2': 0x13, '3': 0x01, '4': 0x0A, '5': 0x10,
	'6': 0x15, '7': 0x07, '8': 0x06, '9': 0x18, '0': 0x16,
	'-': 0x03, '?': 0x19, ':': 0x0E, '$': 0x09, '!': 0x0D,
	'&': 0x1A, '#': 0x14, '\'': 0x0B, '(': 0x0F, ')': 0x12,
	'.': 0x1C, ',': 0x0C, ';': 0x1E, '/': 0x1D, '"': 0x11,
	' ': 0x04, '\r': 0x08, '\n': 0x02,
}

var (
	letterRunes [MaxSymbol + 1]rune
	figureRunes [MaxSymbol + 1]rune
)

func init() {
	for r, code := range letterCodes {
		letterRunes[code] = r
	}
	for r, code := range figureCodes {
		figureRunes[code] = r
	}
}

// Encoder converts text to ITA2 symbol codes. The zero value starts in
// the letters plane. On a teleprinter line the shift state belongs to
// the line, not to any one message, so a long-lived Encoder carries it
// across calls; use the package-level Encode for standalone messages.
type Encoder struct {
	inFigures bool
}

// Encode appends the codes for text, inserting shift codes as the plane
// changes. Input is upper-cased first. Characters present in the
// letters plane (including space, CR and LF) encode there, shifting
// back from figures if needed; unknown characters are silently dropped.
func (e *Encoder) Encode(text string) []byte {
	var out []byte
	for _, r := range strings.ToUpper(text) {
		if code, ok := letterCodes[r]; ok {
			if e.inFigures {
				out = append(out, Letters)
				e.inFigures = false
			}
			out = append(out, code)
		} else if code, ok := figureCodes[r]; ok {
			if !e.inFigures {
				out = append(out, Figures)
				e.inFigures = true
			}
			out = append(out, code)
		}
	}
	return out
}

// Reset returns the encoder to the letters plane.
func (e *Encoder) Reset() { e.inFigures = false }

// Decoder converts ITA2 symbol codes back to text. The zero value
// starts in the letters plane; the shift state persists across calls so
// traffic split over several frames decodes correctly.
type Decoder struct {
	inFigures bool
}

// Decode converts codes to text, tracking the shift state. NULL codes
// and codes above MaxSymbol are ignored. A code with no figures mapping
// falls back to the letters plane before being dropped.
func (d *Decoder) Decode(codes []byte) string {
	var sb strings.Builder
	for _, code := range codes {
		switch {
		case code > MaxSymbol:
		case code == Letters:
			d.inFigures = false
		case code == Figures:
			d.inFigures = true
		case code == Null:
		default:
			if d.inFigures && figureRunes[code] != 0 {
				sb.WriteRune(figureRunes[code])
			} else if letterRunes[code] != 0 {
				sb.WriteRune(letterRunes[code])
			}
		}
	}
	return sb.String()
}

// Reset returns the decoder to the letters plane.
func (d *Decoder) Reset() { d.inFigures = false }

// Encode converts a standalone message, starting in the letters plane.
func Encode(text string) []byte {
	var e Encoder
	return e.Encode(text)
}

// Decode converts a standalone message, starting in the letters plane.
func Decode(codes []byte) string {
	var d Decoder
	return d.Decode(codes)
}
