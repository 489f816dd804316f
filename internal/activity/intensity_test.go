package activity

import (
	"testing"

	"github.com/starford/dagaz/internal/models"
)

func acts(intensities ...int) []models.Activity {
	out := make([]models.Activity, len(intensities))
	for i, n := range intensities {
		out[i] = models.Activity{Intensity: n}
	}
	return out
}

func TestResolveIntensity(t *testing.T) {
	cases := []struct {
		name   string
		stored []int
		want   int
	}{
		{"no activity", nil, 0},
		{"one light", []int{1}, 1},
		{"one medium", []int{2}, 2},
		{"one high caps at two", []int{3}, 2},
		{"one intense caps at two", []int{4}, 2},
		{"two lights", []int{1, 1}, 2},
		{"two with max two", []int{1, 2}, 3},
		{"two highs cap at three", []int{3, 3}, 3},
		{"two intense cap at three", []int{4, 4}, 3},
		{"three lights saturate", []int{1, 1, 1}, 4},
		{"four anything", []int{1, 2, 1, 1}, 4},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ResolveIntensity(acts(tc.stored...)); got != tc.want {
				t.Errorf("ResolveIntensity(%v) = %d, want %d", tc.stored, got, tc.want)
			}
		})
	}
}
