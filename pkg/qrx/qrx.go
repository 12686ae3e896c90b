// Package qrx renders invitation codes as QR code PNG images.
package qrx

import (
	"bytes"
	"errors"
	"fmt"
	"image/png"
	"strings"
	"time"
	"unicode"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/qr"
)

const (
	// DefaultSize is the default edge length of the rendered image in pixels.
	DefaultSize = 320

	MinSize = 64
	MaxSize = 2048

	// filenameNameLimit bounds the holder part of a download filename.
	filenameNameLimit = 20
)

var ErrEmptyContent = errors.New("qrx: empty content")

// PNG encodes content as a QR symbol (medium error correction) scaled to a
// size x size PNG. size is clamped to [MinSize, MaxSize]; zero means
// DefaultSize.
func PNG(content string, size int) ([]byte, error) {
	if content == "" {
		return nil, ErrEmptyContent
	}

	switch {
	case size == 0:
		size = DefaultSize
	case size < MinSize:
		size = MinSize
	case size > MaxSize:
		size = MaxSize
	}

	code, err := qr.Encode(content, qr.M, qr.Auto)
	if err != nil {
		return nil, fmt.Errorf("qrx: encode: %w", err)
	}

	scaled, err := barcode.Scale(code, size, size)
	if err != nil {
		return nil, fmt.Errorf("qrx: scale: %w", err)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, scaled); err != nil {
		return nil, fmt.Errorf("qrx: png: %w", err)
	}
	return buf.Bytes(), nil
}

// Filename returns the download filename for a holder's invitation, e.g.
// "invite_Alice_Smith_201500.png". The holder part keeps at most 20
// characters; spaces become underscores and anything outside letters,
// digits, '-' and '_' is dropped.
func Filename(holderName string, at time.Time) string {
	var b strings.Builder
	n := 0
	for _, r := range strings.TrimSpace(holderName) {
		if n == filenameNameLimit {
			break
		}
		switch {
		case r == ' ':
			r = '_'
		case r == '-' || r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r):
		default:
			continue
		}
		b.WriteRune(r)
		n++
	}

	name := b.String()
	if name == "" {
		name = "guest"
	}
	return "invite_" + name + "_" + at.Format("150405") + ".png"
}
