package stablehash

import (
	"strconv"
	"testing"
)

func TestHash(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  int32
	}{
		{name: "ownerName", input: "ownerName", want: 1227488406},
		{name: "random letters", input: "wefijfewijfjewi", want: -957960349},
		{name: "creator", input: "creator", want: 881008290},
		{name: "rudder", input: "rudder", want: -1299519756},
		{name: "empty", input: "", want: 371857150},
		{name: "single unit", input: "a", want: 372029373},
		{name: "non-ascii", input: "Þórr", want: 559069213},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Hash(tt.input); got != tt.want {
				t.Errorf("Hash(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestHashStopsAtNul(t *testing.T) {
	if Hash("ab\x00cd") != Hash("ab") {
		t.Error("Hash() did not stop at the NUL unit in an even position")
	}
	if Hash("abc\x00d") != Hash("abc") {
		t.Error("Hash() did not stop at the NUL unit in an odd position")
	}
}

func TestHashIsPure(t *testing.T) {
	for i := range 1000 {
		s := "item" + strconv.Itoa(i)
		if Hash(s) != Hash(s) {
			t.Fatalf("Hash(%q) is not deterministic", s)
		}
	}
}
