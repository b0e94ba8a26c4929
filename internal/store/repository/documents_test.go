package repository

import "testing"

func TestEncodeVector(t *testing.T) {
	tests := []struct {
		in   []float32
		want string
	}{
		{nil, "[]"},
		{[]float32{0.5}, "[0.5]"},
		{[]float32{0.1, 0.2, -1.5}, "[0.1,0.2,-1.5]"},
		{[]float32{0, 1}, "[0,1]"},
	}
	for _, tt := range tests {
		if got := EncodeVector(tt.in); got != tt.want {
			t.Errorf("EncodeVector(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
