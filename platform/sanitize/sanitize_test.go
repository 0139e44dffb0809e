package sanitize

import "testing"

func TestText(t *testing.T) {
	cases := map[string]string{
		"":                                 "",
		"  PAINT <b>CEILING</b>  ":         "PAINT CEILING",
		"&lt;script&gt;x&lt;/script&gt;ok": "xok",
		"line\none\ttab":                   "line one tab",
		"bell\x07 char":                    "bell char",
		"AT&amp;T":                         "AT&T",
	}
	for in, want := range cases {
		if got := Text(in); got != want {
			t.Fatalf("Text(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestJoinSkipsEmptyParts(t *testing.T) {
	if got := Join("12", "", " MAIN  ST ", "<i></i>", "NY"); got != "12 MAIN ST NY" {
		t.Fatalf("unexpected join %q", got)
	}
}
