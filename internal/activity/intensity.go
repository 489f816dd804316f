package activity

import "github.com/starford/dagaz/internal/models"

// ResolveIntensity maps a day's raw activity list to the single display
// intensity shown in the contribution calendar. The remap is saturating
// and count-aware: the volume of work on a day matters as much as any one
// event's declared importance.
//
//	0 activities → 0
//	1 activity   → min(stored, 2)
//	2 activities → min(max(stored)+1, 3)
//	3 or more    → 4
func ResolveIntensity(activities []models.Activity) int {
	switch len(activities) {
	case 0:
		return 0
	case 1:
		if activities[0].Intensity > 2 {
			return 2
		}
		return activities[0].Intensity
	case 2:
		max := activities[0].Intensity
		if activities[1].Intensity > max {
			max = activities[1].Intensity
		}
		if max+1 > 3 {
			return 3
		}
		return max + 1
	default:
		return 4
	}
}
