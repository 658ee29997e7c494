package shell

import (
	"errors"
	"testing"
	"unicode/utf16"

	"github.com/babarot/trash/internal/trash/core"
)

func TestWindowsTicksToUnixSeconds(t *testing.T) {
	testCases := []struct {
		name  string
		ticks uint64
		want  int64
	}{
		{"unix epoch", 116444736000000000, 0},
		{"sub-second ticks are truncated", 116444736000000000 + 9_999_999, 0},
		{"one day later", 116444736000000000 + 86400*windowsTick, 86400},
		{"windows epoch", 0, -11644473600},
		{"2024-01-01T00:00:00Z", 133485408000000000, 1704067200},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := windowsTicksToUnixSeconds(tc.ticks); got != tc.want {
				t.Errorf("windowsTicksToUnixSeconds(%d) = %d, want %d", tc.ticks, got, tc.want)
			}
		})
	}
}

func TestFileTimeToUnix(t *testing.T) {
	ticks := uint64(133485408000000000)
	if got := fileTimeToUnix(uint32(ticks), uint32(ticks>>32)); got != 1704067200 {
		t.Errorf("fileTimeToUnix() = %d, want 1704067200", got)
	}
}

func TestDecodeUTF16(t *testing.T) {
	testCases := []struct {
		name    string
		in      []uint16
		want    string
		wantErr bool
	}{
		{name: "ascii", in: utf16.Encode([]rune("report.txt")), want: "report.txt"},
		{name: "bmp", in: utf16.Encode([]rune("日本語.txt")), want: "日本語.txt"},
		{name: "surrogate pair", in: utf16.Encode([]rune("🗑.txt")), want: "🗑.txt"},
		{name: "empty", in: nil, want: ""},
		{name: "lone high surrogate", in: []uint16{'a', 0xd83d, 'b'}, wantErr: true},
		{name: "trailing high surrogate", in: []uint16{'a', 0xd83d}, wantErr: true},
		{name: "lone low surrogate", in: []uint16{0xdc00, 'a'}, wantErr: true},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := decodeUTF16(tc.in)
			if tc.wantErr {
				if !errors.Is(err, core.ErrConvertOsString) {
					t.Fatalf("expected ErrConvertOsString, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Errorf("decodeUTF16() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestStripExtendedPrefix(t *testing.T) {
	testCases := []struct {
		in, want string
	}{
		{`\\?\C:\Users\me\file.txt`, `C:\Users\me\file.txt`},
		{`\\?\UNC\server\share\file.txt`, `\\server\share\file.txt`},
		{`C:\Users\me\file.txt`, `C:\Users\me\file.txt`},
		{`\\server\share`, `\\server\share`},
	}
	for _, tc := range testCases {
		if got := stripExtendedPrefix(tc.in); got != tc.want {
			t.Errorf("stripExtendedPrefix(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
