package name

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplit(t *testing.T) {
	tests := []struct {
		base string
		want Parts
	}{
		{
			base: "file1.txt",
			want: Parts{Stem: "file", Ext: ".txt", Number: 1, Digits: "1", HasNumber: true},
		},
		{
			base: "item-5.log",
			want: Parts{Stem: "item-", Ext: ".log", Number: 5, Digits: "5", HasNumber: true},
		},
		{
			base: "data.txt",
			want: Parts{Stem: "data", Ext: ".txt"},
		},
		{
			base: "shot042.png",
			want: Parts{Stem: "shot", Ext: ".png", Number: 42, Digits: "042", HasNumber: true},
		},
		{
			base: "track12",
			want: Parts{Stem: "track", Ext: "", Number: 12, Digits: "12", HasNumber: true},
		},
		{
			base: "2024",
			want: Parts{Stem: "", Ext: "", Number: 2024, Digits: "2024", HasNumber: true},
		},
		{
			base: "a.b.c3.dat",
			want: Parts{Stem: "a.b.c", Ext: ".dat", Number: 3, Digits: "3", HasNumber: true},
		},
		{
			base: "v2-final.txt",
			want: Parts{Stem: "v2-final", Ext: ".txt"},
		},
		{
			base: "mix3abc.txt",
			want: Parts{Stem: "mix3abc", Ext: ".txt"},
		},
		{
			base: "noext",
			want: Parts{Stem: "noext", Ext: ""},
		},
		{
			base: ".hidden",
			want: Parts{Stem: "", Ext: ".hidden"},
		},
		{
			base: "big2147483647.bin",
			want: Parts{Stem: "big", Ext: ".bin", Number: 2147483647, Digits: "2147483647", HasNumber: true},
		},
	}
	for _, tt := range tests {
		t.Run(tt.base, func(t *testing.T) {
			assert.Equal(t, tt.want, Split(tt.base))
		})
	}
}

func TestSplitDigitRunBeyondInt64(t *testing.T) {
	// 25 digits cannot parse as int64; the run stays part of the stem.
	got := Split("file9999999999999999999999999.txt")
	assert.False(t, got.HasNumber)
	assert.Equal(t, "file9999999999999999999999999", got.Stem)
	assert.Equal(t, ".txt", got.Ext)
}

func TestSplitHyphenBelongsToStem(t *testing.T) {
	// The hyphen is a separator, never a sign: shifting item-5 by 10
	// must produce item-15, not item5.
	p := Split("item-5.log")
	assert.Equal(t, "item-15.log", Join(p.Stem, p.Number+10, p.Ext))
}

func TestJoin(t *testing.T) {
	tests := []struct {
		name string
		stem string
		n    int64
		ext  string
		want string
	}{
		{name: "simple", stem: "file", n: 2, ext: ".txt", want: "file2.txt"},
		{name: "negative", stem: "file", n: -5, ext: ".txt", want: "file-5.txt"},
		{name: "zero", stem: "data", n: 0, ext: ".txt", want: "data0.txt"},
		{name: "no ext", stem: "track", n: 9, ext: "", want: "track9"},
		{name: "no padding", stem: "shot", n: 7, ext: ".png", want: "shot7.png"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Join(tt.stem, tt.n, tt.ext))
		})
	}
}

func TestSplitJoinRoundTrip(t *testing.T) {
	// Shift 0 reconstruction is the identity for canonically numbered
	// names (no leading zeros).
	for _, base := range []string{"file1.txt", "item-5.log", "track12", "a.b.c3.dat", "x9"} {
		p := Split(base)
		assert.Equal(t, base, Join(p.Stem, p.Number, p.Ext), base)
	}
}
