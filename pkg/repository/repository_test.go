package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPage_Normalize(t *testing.T) {
	cases := []struct {
		name string
		in   Page
		want Page
	}{
		{"zero value gets defaults", Page{}, Page{Skip: 0, Limit: DefaultLimit}},
		{"negative skip", Page{Skip: -3, Limit: 10}, Page{Skip: 0, Limit: 10}},
		{"limit above max", Page{Skip: 5, Limit: 500}, Page{Skip: 5, Limit: MaxLimit}},
		{"untouched", Page{Skip: 2, Limit: 1}, Page{Skip: 2, Limit: 1}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.in.Normalize())
		})
	}
}
