package decoder

import "math"

// Soundfield transforms remap the estimated (x, y) position before the
// channel grids are consulted. They run in a fixed order: circular wrap,
// shift, depth, focus, separation (shift, depth and separation are inline
// in the bin loop since they are single expressions).

const baseAngle = math.Pi / 2 // the neutral front-stage width

func clamp(v float64) float64 {
	return math.Max(-1, math.Min(1, v))
}

func sign(v float64) float64 {
	switch {
	case v < 0:
		return -1
	case v > 0:
		return 1
	default:
		return 0
	}
}

// edgeDistance returns the distance from the origin to the boundary of the
// soundstage square along the given polar angle.
func edgeDistance(ang float64) float64 {
	t := math.Tan(ang)
	return math.Min(math.Sqrt(1+t*t), math.Sqrt(1+1/(t*t)))
}

// circularWrap stretches the front stage to span refAngle degrees around
// the listener and compresses the remaining field behind it. 90 degrees is
// the neutral setting.
func circularWrap(x, y, refAngle float64) (float64, float64) {
	if refAngle == 90 {
		return x, y
	}
	ref := refAngle * math.Pi / 180

	// Edge-normalized polar coordinates.
	ang := math.Atan2(x, y)
	length := math.Hypot(x, y) / edgeDistance(ang)

	if math.Abs(ang) < baseAngle/2 {
		// Front region: widen to the reference angle.
		ang *= ref / baseAngle
	} else {
		// Rear region: compress what the front gained.
		ang = math.Pi + (ref-2*math.Pi)*(math.Pi-math.Abs(ang))*sign(ang)/(2*math.Pi-baseAngle)
	}

	length *= edgeDistance(ang)
	return clamp(math.Sin(ang) * length), clamp(math.Cos(ang) * length)
}

// focusTransform sharpens (focus > 0) or diffuses (focus < 0) source
// localization by warping the edge-normalized radius.
func focusTransform(x, y, focus float64) (float64, float64) {
	if focus == 0 {
		return x, y
	}

	ang := math.Atan2(x, y)
	length := clamp(math.Hypot(x, y) / edgeDistance(ang))

	if focus > 0 {
		length = 1 - math.Pow(1-length, 1+focus*20)
	} else {
		length = math.Pow(length, 1-focus*20)
	}

	length *= edgeDistance(ang)
	return clamp(math.Sin(ang) * length), clamp(math.Cos(ang) * length)
}
