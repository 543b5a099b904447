package main

import (
	"reflect"
	"testing"
)

func TestSplitVariants(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{"Well512a", []string{"Well512a"}},
		{" Well512a, ,well44497b ,", []string{"Well512a", "well44497b"}},
	}
	for _, tt := range tests {
		if got := splitVariants(tt.in); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("splitVariants(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
