// Package keyboard turns raw terminal input bytes into playback keys.
package keyboard

import "github.com/user/termplay/pkg/ports"

type state int

const (
	awaitLead state = iota
	awaitIntro
	awaitFinal
	awaitScan
)

const (
	keyEsc    = 0x1b
	keyCtrlC  = 0x03
	scanLead  = 0xe0
	scanLead0 = 0x00

	// maxParams bounds the CSI parameter bytes accepted before the sequence
	// is treated as malformed.
	maxParams = 8
)

// Decoder is a byte-at-a-time state machine:
//
//	awaitLead --ESC--> awaitIntro --'['/'O'--> awaitFinal --final--> key
//	awaitLead --0xE0/0x00--> awaitScan --'K'/'M'--> key
//
// Malformed sequences are discarded without producing a key.
type Decoder struct {
	state  state
	params int
}

// NewDecoder creates a decoder waiting for a lead byte.
func NewDecoder() *Decoder {
	return &Decoder{}
}

// Pending reports whether the decoder is in the middle of a sequence.
func (d *Decoder) Pending() bool {
	return d.state != awaitLead
}

// Feed consumes one byte. It returns the resolved key and true once a
// complete key press has been seen, or KeyNone and false when more bytes are
// needed or the sequence was malformed.
func (d *Decoder) Feed(b byte) (ports.Key, bool) {
	switch d.state {
	case awaitLead:
		return d.lead(b)

	case awaitIntro:
		if b == '[' || b == 'O' {
			d.state = awaitFinal
			d.params = 0
			return ports.KeyNone, false
		}
		d.reset()
		return ports.KeyNone, false

	case awaitFinal:
		switch {
		case (b >= '0' && b <= '9') || b == ';':
			d.params++
			if d.params > maxParams {
				d.reset()
			}
			return ports.KeyNone, false
		case b >= 0x40 && b <= 0x7e:
			d.reset()
			switch b {
			case 'D':
				return ports.KeySlower, true
			case 'C':
				return ports.KeyFaster, true
			default:
				return ports.KeyOther, true
			}
		default:
			d.reset()
			return ports.KeyNone, false
		}

	case awaitScan:
		d.reset()
		switch b {
		case 'K':
			return ports.KeySlower, true
		case 'M':
			return ports.KeyFaster, true
		default:
			return ports.KeyOther, true
		}
	}

	d.reset()
	return ports.KeyNone, false
}

// Flush resolves a pending sequence after an input lull. A lone ESC counts
// as a key press; any other partial sequence is dropped.
func (d *Decoder) Flush() (ports.Key, bool) {
	wasEsc := d.state == awaitIntro
	d.reset()
	if wasEsc {
		return ports.KeyOther, true
	}
	return ports.KeyNone, false
}

func (d *Decoder) lead(b byte) (ports.Key, bool) {
	switch b {
	case 'q', 'Q', keyCtrlC:
		return ports.KeyQuit, true
	case ' ':
		return ports.KeyTogglePause, true
	case keyEsc:
		d.state = awaitIntro
		return ports.KeyNone, false
	case scanLead, scanLead0:
		d.state = awaitScan
		return ports.KeyNone, false
	default:
		return ports.KeyOther, true
	}
}

func (d *Decoder) reset() {
	d.state = awaitLead
	d.params = 0
}

// Decode runs a whole byte slice through a fresh decoder and returns every
// resolved key in order.
func Decode(data []byte) []ports.Key {
	d := NewDecoder()
	var keys []ports.Key
	for _, b := range data {
		if k, ok := d.Feed(b); ok {
			keys = append(keys, k)
		}
	}
	return keys
}
