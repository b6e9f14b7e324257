package util

import (
	"os"
	"testing"
)

// parseWith swaps os.Args for the duration of one ParseArgs call.
func parseWith(t *testing.T, args ...string) (Options, error) {
	t.Helper()
	old := os.Args
	defer func() { os.Args = old }()
	os.Args = append([]string{"myvmc"}, args...)
	return ParseArgs()
}

func TestParseArgs(t *testing.T) {
	tests := []struct {
		args    []string
		want    Options
		wantErr bool
	}{
		{nil, Options{}, false},
		{[]string{"main.src"}, Options{Src: "main.src"}, false},
		{[]string{"-vb", "main.src"}, Options{Src: "main.src", Verbose: true}, false},
		{[]string{"-o", "out.bin", "main.src"}, Options{Src: "main.src", Out: "out.bin"}, false},
		{[]string{"-o"}, Options{}, true},
		{[]string{"-o", "-vb"}, Options{}, true},
		{[]string{"-nosuchflag"}, Options{}, true},
	}
	for _, tc := range tests {
		got, err := parseWith(t, tc.args...)
		if (err != nil) != tc.wantErr {
			t.Errorf("ParseArgs(%v) error = %v, wantErr %v", tc.args, err, tc.wantErr)
			continue
		}
		if !tc.wantErr && got != tc.want {
			t.Errorf("ParseArgs(%v) = %+v, want %+v", tc.args, got, tc.want)
		}
	}
}
