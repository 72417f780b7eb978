package slug

import (
	"regexp"
	"testing"
	"time"
)

var urlSafe = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

func TestMake(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Intro to X", "intro-to-x"},
		{"  Go: Concurrency & Channels!! ", "go-concurrency-channels"},
		{"Café Crème Brûlée", "cafe-creme-brulee"},
		{"Belajar Pemrograman 101", "belajar-pemrograman-101"},
		{"---", ""},
		{"日本語 course", "course"},
	}
	for _, tc := range cases {
		if got := Make(tc.in); got != tc.want {
			t.Fatalf("Make(%q): want=%q got=%q", tc.in, tc.want, got)
		}
	}
}

func TestMakeIsURLSafe(t *testing.T) {
	titles := []string{"A", "Data Science — From Zero", "C++ / C# for Beginners", "100% Practical SQL"}
	for _, title := range titles {
		s := Make(title)
		if !urlSafe.MatchString(s) {
			t.Fatalf("Make(%q)=%q is not url safe", title, s)
		}
	}
}

func TestMakeTruncates(t *testing.T) {
	long := ""
	for i := 0; i < 60; i++ {
		long += "ab "
	}
	s := Make(long)
	if len(s) > maxLen {
		t.Fatalf("len: want<=%d got=%d", maxLen, len(s))
	}
	if s[len(s)-1] == '-' {
		t.Fatalf("truncated slug must not end with a dash: %q", s)
	}
}

func TestWithTimestamp(t *testing.T) {
	now := time.UnixMilli(1700000000123)
	if got := WithTimestamp("intro-to-x", now); got != "intro-to-x-1700000000123" {
		t.Fatalf("WithTimestamp: got=%q", got)
	}
	if got := WithTimestamp("", now); got != "1700000000123" {
		t.Fatalf("WithTimestamp empty base: got=%q", got)
	}
}
