package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNextFreeID(t *testing.T) {
	tests := []struct {
		name string
		used []uint64
		want uint64
	}{
		{"empty table", nil, 1},
		{"dense prefix", []uint64{1, 2, 3}, 4},
		{"gap is reused", []uint64{1, 2, 4, 5}, 3},
		{"first id free", []uint64{2, 3}, 1},
		{"unordered with duplicates", []uint64{3, 1, 3, 2, 1, 6}, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NextFreeID(tt.used))
		})
	}
}
