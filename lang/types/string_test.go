package types_test

import (
	"testing"

	"github.com/ondrejsv/ippcode22/lang/types"
	"github.com/stretchr/testify/require"
)

func TestDecodeEscapes(t *testing.T) {
	cases := []struct {
		desc string
		in   string
		want string
	}{
		{"no escapes", "hello", "hello"},
		{"one escape", `ab\092c`, `ab\c`},
		{"trailing backslash", `ab\`, `ab\`},
		{"short digit run", `ab\09c`, `ab\09c`},
		{"consecutive escapes", `\035\035`, "##"},
	}
	for _, c := range cases {
		t.Run(c.desc, func(t *testing.T) {
			got := types.DecodeEscapes(c.in)
			require.Equal(t, c.want, got.String())
		})
	}
}

func TestStrLen(t *testing.T) {
	s := types.NewStr("héllo")
	require.Equal(t, 5, s.Len())
}

func TestFormatEscapes(t *testing.T) {
	s := types.NewStr("a\\b")
	require.Equal(t, `a\092b`, types.FormatEscapes(s))
}
