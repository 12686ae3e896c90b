package qrx

import (
	"bytes"
	"image/png"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestPNGRendersRequestedSize(t *testing.T) {
	data, err := PNG("ARD_01JAB3J2Z8M0X9T5K7Q4W6E1RS", 256)
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	require.Equal(t, 256, img.Bounds().Dx())
	require.Equal(t, 256, img.Bounds().Dy())
}

func TestPNGClampsSize(t *testing.T) {
	for in, want := range map[int]int{0: DefaultSize, 1: MinSize, 100000: MaxSize} {
		data, err := PNG("ARD_X", in)
		require.NoError(t, err)

		cfg, err := png.DecodeConfig(bytes.NewReader(data))
		require.NoError(t, err)
		require.Equal(t, want, cfg.Width, "size %d", in)
	}
}

func TestPNGRejectsEmptyContent(t *testing.T) {
	_, err := PNG("", 0)
	require.ErrorIs(t, err, ErrEmptyContent)
}

func TestFilename(t *testing.T) {
	at := time.Date(2026, 10, 18, 20, 15, 0, 0, time.UTC)

	cases := map[string]string{
		"Alice Smith":                  "invite_Alice_Smith_201500.png",
		"  Bob  ":                      "invite_Bob_201500.png",
		"A very long holder name here": "invite_A_very_long_holder_n_201500.png",
		`Eve "quoted" / path\..`:       "invite_Eve_quoted__path_201500.png",
		"":                             "invite_guest_201500.png",
		"Zoë":                          "invite_Zoë_201500.png",
	}
	for in, want := range cases {
		require.Equal(t, want, Filename(in, at), "holder %q", in)
	}

	require.False(t, strings.ContainsAny(Filename(`a"b;c`, at), `";`))
}
