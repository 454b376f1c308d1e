package util

import (
	"bytes"
	"testing"
)

func TestUint24(t *testing.T) {
	raw := []byte{0x01, 0x02, 0x03}
	v := BigEndian.Uint24(raw)
	if v != 0x010203 {
		t.Errorf("Uint24 = %#x, want 0x010203", v)
	}

	out := make([]byte, 3)
	BigEndian.PutUint24(out, v)
	if !bytes.Equal(out, raw) {
		t.Errorf("PutUint24 = %v, want %v", out, raw)
	}

	appended := BigEndian.AppendUint24([]byte{0xff}, v)
	if !bytes.Equal(appended, []byte{0xff, 0x01, 0x02, 0x03}) {
		t.Errorf("AppendUint24 = %v", appended)
	}
}

func TestUint48(t *testing.T) {
	raw := []byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06}
	v := BigEndian.Uint48(raw)
	if v != 0x010203040506 {
		t.Errorf("Uint48 = %#x, want 0x010203040506", v)
	}

	out := make([]byte, 6)
	BigEndian.PutUint48(out, v)
	if !bytes.Equal(out, raw) {
		t.Errorf("PutUint48 = %v, want %v", out, raw)
	}

	appended := BigEndian.AppendUint48(nil, v)
	if !bytes.Equal(appended, raw) {
		t.Errorf("AppendUint48 = %v, want %v", appended, raw)
	}
}
