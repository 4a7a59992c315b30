package control

// DefaultControlZoneMargin is the fraction of the frame trimmed from each
// edge before remapping hand coordinates to the output range.
const DefaultControlZoneMargin = 0.15

// MapToControlZone linearly remaps a normalized hand coordinate so the
// central control zone [margin, 1-margin] spans the full [0,1] output
// range, clamped. This gives the user full-screen reach without having to
// stretch to the frame edges.
func MapToControlZone(v, margin float64) float64 {
	if margin < 0 || margin >= 0.5 {
		margin = 0
	}
	mapped := (v - margin) / (1 - 2*margin)
	if mapped < 0 {
		return 0
	}
	if mapped > 1 {
		return 1
	}
	return mapped
}
