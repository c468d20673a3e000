package app

import (
	"bytes"
	"testing"

	"github.com/jesseduffield/gocui"
)

func TestKeyBytes(t *testing.T) {
	tests := []struct {
		key  gocui.Key
		want []byte
	}{
		{gocui.KeyEnter, []byte{'\r'}},
		{gocui.KeyTab, []byte{'\t'}},
		{gocui.KeyEsc, []byte{0x1b}},
		{gocui.KeySpace, []byte{' '}},
		{gocui.KeyBackspace2, []byte{0x7f}},
		{gocui.KeyArrowUp, []byte("\x1b[A")},
		{gocui.KeyArrowDown, []byte("\x1b[B")},
		{gocui.KeyArrowRight, []byte("\x1b[C")},
		{gocui.KeyArrowLeft, []byte("\x1b[D")},
		{gocui.KeyPgup, []byte("\x1b[5~")},
		{gocui.KeyPgdn, []byte("\x1b[6~")},
		{gocui.KeyDelete, []byte("\x1b[3~")},
		{gocui.KeyCtrlC, []byte{0x03}},
		{gocui.KeyCtrlD, []byte{0x04}},
		{gocui.KeyCtrlZ, []byte{0x1a}},
	}

	for _, tt := range tests {
		got := keyBytes(tt.key)
		if !bytes.Equal(got, tt.want) {
			t.Errorf("keyBytes(%v) = %q, want %q", tt.key, got, tt.want)
		}
	}
}

func TestKeyBytesUnmapped(t *testing.T) {
	if b := keyBytes(gocui.KeyF12); b != nil {
		t.Errorf("function keys are not forwarded, got %q", b)
	}
}
