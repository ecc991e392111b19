package parse

import "testing"

func TestDecode(t *testing.T) {
	tests := []struct {
		name string
		enc  Encoding
		src  string
		cp   rune
		size int
		ok   bool
	}{
		{"utf8 ascii", UTF8, "abc", 'a', 1, true},
		{"utf8 two byte", UTF8, "über", 'ü', 2, true},
		{"utf8 three byte", UTF8, "€1", '€', 3, true},
		{"utf8 four byte", UTF8, "\U0001F600", 0x1F600, 4, true},
		{"utf8 empty", UTF8, "", 0, 0, false},
		{"utf8 invalid byte", UTF8, "\xff", 0, 0, false},
		{"utf8 truncated", UTF8, "\xc3", 0, 0, false},
		{"latin1 high byte", Latin1, "\xfcber", 0xFC, 1, true},
		{"latin1 empty", Latin1, "", 0, 0, false},
		{"utf16 bmp", UTF16, "\x00a", 'a', 2, true},
		{"utf16 umlaut", UTF16, "\x00\xfc", 0xFC, 2, true},
		{"utf16 surrogate pair", UTF16, "\xd8\x3d\xde\x00", 0x1F600, 4, true},
		{"utf16 unpaired high", UTF16, "\xd8\x3d", 0, 0, false},
		{"utf16 unpaired low", UTF16, "\xde\x00\x00a", 0, 0, false},
		{"utf16 odd length", UTF16, "\x00", 0, 0, false},
		{"utf32 scalar", UTF32, "\x00\x00\x00a", 'a', 4, true},
		{"utf32 astral", UTF32, "\x00\x01\xf6\x00", 0x1F600, 4, true},
		{"utf32 out of range", UTF32, "\x00\x11\x00\x00", 0, 0, false},
		{"utf32 surrogate", UTF32, "\x00\x00\xd8\x00", 0, 0, false},
		{"utf32 short", UTF32, "\x00\x00a", 0, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cp, size, ok := tt.enc.decode(tt.src, 0)
			if ok != tt.ok {
				t.Fatalf("ok = %v, want %v", ok, tt.ok)
			}
			if !tt.ok {
				return
			}
			if cp != tt.cp || size != tt.size {
				t.Errorf("decode = %#x/%d, want %#x/%d", cp, size, tt.cp, tt.size)
			}
		})
	}
}

func TestDecodeAdvancesByteOffsets(t *testing.T) {
	src := "aüb"
	cp, size, ok := UTF8.decode(src, 0)
	if !ok || cp != 'a' || size != 1 {
		t.Fatalf("first decode = %#x/%d/%v", cp, size, ok)
	}
	cp, size, ok = UTF8.decode(src, 1)
	if !ok || cp != 'ü' || size != 2 {
		t.Fatalf("second decode = %#x/%d/%v", cp, size, ok)
	}
	cp, size, ok = UTF8.decode(src, 3)
	if !ok || cp != 'b' || size != 1 {
		t.Fatalf("third decode = %#x/%d/%v", cp, size, ok)
	}
}
