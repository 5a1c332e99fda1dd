package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPage_Normalize(t *testing.T) {
	tests := []struct {
		name string
		in   Page
		want Page
	}{
		{"zero value", Page{}, Page{Limit: DefaultPageLimit}},
		{"kept as is", Page{Limit: 10, Offset: 20}, Page{Limit: 10, Offset: 20}},
		{"negative limit", Page{Limit: -3, Offset: 5}, Page{Limit: DefaultPageLimit, Offset: 5}},
		{"capped", Page{Limit: MaxPageLimit + 1}, Page{Limit: MaxPageLimit}},
		{"negative offset", Page{Limit: 5, Offset: -1}, Page{Limit: 5}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.in.Normalize())
		})
	}
}
