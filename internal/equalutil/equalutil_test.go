package equalutil_test

import (
	"math"
	"testing"

	"github.com/chrisskorka/sysconf/internal/equalutil"
	"github.com/stretchr/testify/assert"
)

func ptr[T any](v T) *T { return &v }

func TestEqualPtr_float64(t *testing.T) {
	tests := []struct {
		name string
		a    *float64
		b    *float64
		want bool
	}{
		{"both nil", nil, nil, true},
		{"a nil, b non-nil", nil, ptr(3.14), false},
		{"a non-nil, b nil", ptr(3.14), nil, false},
		{"both same value", ptr(3.14), ptr(3.14), true},
		{"both different values", ptr(3.14), ptr(2.71), false},
		{"both zero", ptr(0.0), ptr(0.0), true},
		{"negative values equal", ptr(-1.5), ptr(-1.5), true},
		{"both NaN", ptr(math.NaN()), ptr(math.NaN()), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, equalutil.EqualPtr(tt.a, tt.b))
		})
	}
}

func TestEqualPtr_string(t *testing.T) {
	tests := []struct {
		name string
		a    *string
		b    *string
		want bool
	}{
		{"both nil", nil, nil, true},
		{"a nil, b non-nil", nil, ptr("x"), false},
		{"a non-nil, b nil", ptr("x"), nil, false},
		{"both same value", ptr("x"), ptr("x"), true},
		{"both different values", ptr("x"), ptr("y"), false},
		{"both empty", ptr(""), ptr(""), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, equalutil.EqualPtr(tt.a, tt.b))
		})
	}
}

func TestEqualPtr_bool(t *testing.T) {
	tests := []struct {
		name string
		a    *bool
		b    *bool
		want bool
	}{
		{"both nil", nil, nil, true},
		{"a nil, b non-nil true", nil, ptr(true), false},
		{"a non-nil, b nil", ptr(true), nil, false},
		{"both true", ptr(true), ptr(true), true},
		{"both false", ptr(false), ptr(false), true},
		{"true vs false", ptr(true), ptr(false), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, equalutil.EqualPtr(tt.a, tt.b))
		})
	}
}
