package chanmap

import (
	"math"
	"sort"
)

// The allocation grids are generated from the speaker layouts at startup.
// For every grid cell the generator places a virtual source at the cell's
// (x, y) soundstage position and distributes unit signal power across the
// speakers:
//
//   - The source azimuth picks the two adjacent speakers on the ring and
//     pans between them with the constant-power quarter-wave law.
//   - The edge-normalized radius blends between that pan (source on the
//     soundfield boundary) and an even spread across all speakers (source
//     in the middle of the room, which no speaker pair can render alone).
//   - The front-center presence level rescales the center speaker and moves
//     the displaced power to its two ring neighbors.
//
// Each cell is normalized so the squared gains sum to exactly 1, which the
// synthesizer relies on for energy preservation across the soundstage.

// build constructs the full map for a setup with the given front-center
// presence level in [0,1].
func build(s Setup, centerImage float64) *Map {
	lay := layouts[s]
	n := len(lay.speakers)

	channels := make([]Channel, 0, n+1)
	xsf := make([]int, 0, n+1)
	for _, sp := range lay.speakers {
		channels = append(channels, sp.ch)
		xsf = append(xsf, phaseSourceFor(sp.azimuth))
	}
	if lay.withLFE {
		channels = append(channels, LFE)
		xsf = append(xsf, PhaseCenter)
	}

	g := lay.gridRes
	grids := make([][][]float64, len(channels))
	for c := range grids {
		grids[c] = make([][]float64, g)
		for q := range grids[c] {
			grids[c][q] = make([]float64, g)
		}
	}

	ring := newPanRing(lay.speakers)
	gains := make([]float64, n)
	for q := 0; q < g; q++ {
		y := -1 + 2*float64(q)/float64(g-1)
		for p := 0; p < g; p++ {
			x := -1 + 2*float64(p)/float64(g-1)
			cellGains(ring, x, y, centerImage, gains)
			for c := 0; c < n; c++ {
				grids[c][q][p] = gains[c]
			}
		}
	}

	return &Map{
		setup:    s,
		channels: channels,
		xsf:      xsf,
		grids:    grids,
		gridRes:  g,
		hasLFE:   lay.withLFE,
	}
}

// panRing is the speaker list sorted by azimuth, with back-references to
// the layout's channel order.
type panRing struct {
	azimuths []float64 // ascending, degrees
	index    []int     // ring slot -> layout channel index
	center   int       // layout index of the 0° speaker, -1 if none
}

func newPanRing(speakers []speaker) *panRing {
	r := &panRing{
		azimuths: make([]float64, len(speakers)),
		index:    make([]int, len(speakers)),
		center:   -1,
	}
	order := make([]int, len(speakers))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool {
		return speakers[order[a]].azimuth < speakers[order[b]].azimuth
	})
	for slot, li := range order {
		r.azimuths[slot] = speakers[li].azimuth
		r.index[slot] = li
		if speakers[li].azimuth == 0 {
			r.center = li
		}
	}
	return r
}

// pair finds the ring slots enclosing the given azimuth and the pan
// fraction between them. Azimuths outside the spanned arc pan across the
// wrap-around pair.
func (r *panRing) pair(azimuth float64) (lo, hi int, t float64) {
	m := len(r.azimuths)
	first, last := r.azimuths[0], r.azimuths[m-1]
	if azimuth < first || azimuth >= last {
		// Wrap-around arc from the last speaker back to the first.
		span := first + 360 - last
		off := azimuth - last
		if azimuth < first {
			off = azimuth + 360 - last
		}
		return m - 1, 0, off / span
	}
	hi = sort.SearchFloat64s(r.azimuths, azimuth)
	if r.azimuths[hi] > azimuth {
		hi--
	}
	lo = hi
	hi = lo + 1
	span := r.azimuths[hi] - r.azimuths[lo]
	return lo, hi, (azimuth - r.azimuths[lo]) / span
}

// neighbors returns the layout indexes of the two speakers adjacent to the
// given layout index on the ring.
func (r *panRing) neighbors(li int) (int, int) {
	m := len(r.index)
	for slot, idx := range r.index {
		if idx == li {
			return r.index[(slot+m-1)%m], r.index[(slot+1)%m]
		}
	}
	return li, li
}

// cellGains fills gains (indexed by layout channel order) for a source at
// soundstage position (x, y).
func cellGains(r *panRing, x, y, centerImage float64, gains []float64) {
	n := len(gains)

	// Power from constant-power panning along the ring.
	power := make([]float64, n)
	azimuth := math.Atan2(x, y) * 180 / math.Pi
	lo, hi, t := r.pair(azimuth)
	power[r.index[lo]] += sqr(math.Cos(t * math.Pi / 2))
	power[r.index[hi]] += sqr(math.Sin(t * math.Pi / 2))

	// Blend toward an even spread as the source leaves the boundary.
	radius := math.Hypot(x, y) / edgeDistanceDeg(azimuth)
	if radius > 1 {
		radius = 1
	}
	even := (1 - radius) / float64(n)
	for i := range power {
		power[i] = radius*power[i] + even
	}

	// Fold the front-center presence into the cell.
	if centerImage != 1 && r.center >= 0 {
		moved := (1 - centerImage*centerImage) * power[r.center]
		power[r.center] -= moved
		left, right := r.neighbors(r.center)
		power[left] += moved / 2
		power[right] += moved / 2
	}

	var total float64
	for _, pw := range power {
		total += pw
	}
	inv := 1 / math.Sqrt(total)
	for i, pw := range power {
		gains[i] = math.Sqrt(pw) * inv
	}
}

// edgeDistanceDeg is the distance from the origin to the unit-square
// boundary along the given azimuth in degrees.
func edgeDistanceDeg(azimuth float64) float64 {
	rad := azimuth * math.Pi / 180
	t := math.Tan(rad)
	return math.Min(math.Sqrt(1+t*t), math.Sqrt(1+1/(t*t)))
}

func sqr(v float64) float64 { return v * v }
