package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fatih/color"
)

func init() {
	color.NoColor = true
}

func TestRun_Encode(t *testing.T) {
	var out, errOut bytes.Buffer
	code := run([]string{"encode", "-size", "2", "3", "15", "97"}, &out, &errOut)
	if code != 0 {
		t.Fatalf("exit code mismatch: got=%d want=0 stderr=%s", code, errOut.String())
	}
	if got := strings.TrimSpace(out.String()); got != "l = 41698" {
		t.Fatalf("output mismatch: got=%q want=%q", got, "l = 41698")
	}
}

func TestRun_Decode(t *testing.T) {
	var out, errOut bytes.Buffer
	code := run([]string{"decode", "-size", "2", "41698"}, &out, &errOut)
	if code != 0 {
		t.Fatalf("exit code mismatch: got=%d want=0 stderr=%s", code, errOut.String())
	}
	if got := strings.TrimSpace(out.String()); got != "x y z = 3 15 97" {
		t.Fatalf("output mismatch: got=%q", got)
	}
}

func TestRun_Errors(t *testing.T) {
	cases := []struct {
		name string
		args []string
		code int
		want string
	}{
		{name: "no command", args: nil, code: 2, want: "usage"},
		{name: "unknown command", args: []string{"rotate"}, code: 1, want: "unknown command"},
		{name: "missing axis", args: []string{"encode", "1", "2"}, code: 2, want: "usage"},
		{name: "out of bounds", args: []string{"encode", "-size", "1", "9", "0", "0"}, code: 1, want: "out of bounds"},
		{name: "bad key", args: []string{"decode", "-size", "2", "10001"}, code: 1, want: "invalid"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var out, errOut bytes.Buffer
			if code := run(tc.args, &out, &errOut); code != tc.code {
				t.Fatalf("exit code mismatch: got=%d want=%d stderr=%s", code, tc.code, errOut.String())
			}
			if !strings.Contains(errOut.String(), tc.want) {
				t.Fatalf("stderr %q does not contain %q", errOut.String(), tc.want)
			}
		})
	}
}
