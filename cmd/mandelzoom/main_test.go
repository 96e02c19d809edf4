package main

import (
	"testing"

	"github.com/san-kum/mandelzoom/internal/cplx"
)

func TestParsePoint(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want cplx.Complex
	}{
		{"parts", []string{"-0.75", "0.1"}, cplx.New(-0.75, 0.1)},
		{"literal", []string{"-0.75+0.1i"}, cplx.New(-0.75, 0.1)},
		{"real literal", []string{"0.25"}, cplx.New(0.25, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parsePoint(tt.args)
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("parsePoint(%q) = %v, want %v", tt.args, got, tt.want)
			}
		})
	}

	for _, args := range [][]string{{"x"}, {"1", "y"}, {"x", "1"}} {
		if _, err := parsePoint(args); err == nil {
			t.Errorf("parsePoint(%q) should fail", args)
		}
	}
}
