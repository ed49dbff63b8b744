package printer

import "unicode/utf8"

var (
	escInit    = []byte{0x1b, 0x40}
	escCut     = []byte{0x1d, 0x56, 0x41, 0x10}
	escKickPin = []byte{0x1b, 0x70, 0x00, 0x19, 0xfa}
)

// EscPos wraps rendered text in ESC/POS init and partial-cut commands. When
// openDrawer is set the cash drawer is kicked before printing. Characters
// outside ASCII print as '?'.
func EscPos(text string, openDrawer bool) []byte {
	out := make([]byte, 0, len(text)+len(escInit)+len(escCut)+len(escKickPin))
	out = append(out, escInit...)
	if openDrawer {
		out = append(out, escKickPin...)
	}
	for _, r := range text {
		switch {
		case r == '\n':
			out = append(out, '\n')
		case r < utf8.RuneSelf && r >= 0x20:
			out = append(out, byte(r))
		default:
			out = append(out, '?')
		}
	}
	out = append(out, escCut...)
	return out
}
