package decoder

// The position estimator maps the per-bin amplitude-difference feature
// a ∈ [-1,1] and phase-difference feature p ∈ [0,π] to a soundstage
// position (x, y). The mapping is a fixed bivariate polynomial with
// hand-fit coefficients; the terms are kept as data so the model can be
// inspected and tested apart from the bin loop.
//
// The x estimate is dominated by odd powers of a (left/right symmetry),
// the y estimate by powers of p (in-phase content maps to the front,
// anti-phase content to the back).

type polyTerm struct {
	coef float64
	powA int
	powP int
}

var xTerms = [...]polyTerm{
	{1.0047, 1, 0},
	{0.46804, 1, 3},
	{-0.2042, 1, 4},
	{0.0080586, 1, 7},
	{-0.0001526, 1, 10},
	{-0.073512, 3, 1},
	{-0.2499, 3, 4},
	{0.016932, 3, 7},
	{-0.00027707, 3, 10},
	{0.048105, 5, 7},
	{-0.0065947, 5, 10},
	{0.0016006, 5, 11},
	{-0.0071132, 7, 9},
	{0.0022336, 7, 11},
	{-0.0004804, 7, 12},
}

var yTerms = [...]polyTerm{
	{0.98592, 0, 0},
	{-0.62237, 0, 1},
	{0.077875, 0, 2},
	{-0.0026929, 0, 5},
	{0.4971, 2, 1},
	{-0.00032124, 2, 6},
	{9.2491e-06, 4, 10},
	{0.051549, 8, 0},
	{1.0727e-14, 10, 0},
}

const (
	maxPowA = 10
	maxPowP = 12
)

// positionEstimate evaluates the fitted model and clamps both coordinates
// to the soundstage square.
func positionEstimate(a, p float64) (x, y float64) {
	var aPow, pPow [13]float64
	aPow[0], pPow[0] = 1, 1
	for i := 1; i <= maxPowA; i++ {
		aPow[i] = aPow[i-1] * a
	}
	for i := 1; i <= maxPowP; i++ {
		pPow[i] = pPow[i-1] * p
	}

	for _, t := range xTerms {
		x += t.coef * aPow[t.powA] * pPow[t.powP]
	}
	for _, t := range yTerms {
		y += t.coef * aPow[t.powA] * pPow[t.powP]
	}
	return clamp(x), clamp(y)
}
