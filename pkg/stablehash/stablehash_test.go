package stablehash

import "testing"

func TestSum31_Pure(t *testing.T) {
	inputs := []string{"", "a", "hello world", "日本語", "https://example.com/page?id=1"}
	for _, in := range inputs {
		if Sum31(in) != Sum31(in) {
			t.Errorf("Sum31(%q) not stable", in)
		}
	}
}

func TestSum31_KnownValues(t *testing.T) {
	// h = h*31 + codepoint, per rune.
	cases := []struct {
		in   string
		want int64
	}{
		{"", 0},
		{"a", 97},
		{"ab", 97*31 + 98},
		{"abc", (97*31+98)*31 + 99},
	}
	for _, c := range cases {
		if got := Sum31(c.in); got != c.want {
			t.Errorf("Sum31(%q) = %d, want %d", c.in, got, c.want)
		}
	}
}

func TestSum31_NonNegative(t *testing.T) {
	// Long strings overflow int32; the result must still be non-negative.
	long := ""
	for i := 0; i < 200; i++ {
		long += "overflow me please "
	}
	if Sum31(long) < 0 {
		t.Error("Sum31 returned negative value after wraparound")
	}
}

func TestPick31_Range(t *testing.T) {
	for _, s := range []string{"", "x", "some identity|https://a.b", "ZETSUMETSU"} {
		for _, n := range []int{1, 2, 37, 100} {
			got := Pick31(s, n)
			if got < 0 || got >= n {
				t.Errorf("Pick31(%q, %d) = %d out of range", s, n, got)
			}
		}
	}
	if Pick31("anything", 0) != 0 {
		t.Error("Pick31 with n=0 should return 0")
	}
}

func TestShortID(t *testing.T) {
	id := ShortID("https://example.com/article")
	if id == "" {
		t.Fatal("empty short id")
	}
	if len(id) > ShortIDLen {
		t.Errorf("short id %q longer than %d", id, ShortIDLen)
	}
	if id != ShortID("https://example.com/article") {
		t.Error("ShortID not stable")
	}
	if ShortID("a") == ShortID("b") {
		t.Error("distinct inputs collided on trivially different strings")
	}
	// 33-multiplier, base 36: "ab" -> 97*33+98 = 3299 -> "2jn"
	if got := ShortID("ab"); got != "2jn" {
		t.Errorf("ShortID(\"ab\") = %q, want \"2jn\"", got)
	}
}
