package regime

import "math"

// StabilityInputs carries the train/test statistics the evaluator compares.
// Optional members use the (value, ok) convention: Ok=false means the
// underlying sub-test never produced a value.
type StabilityInputs struct {
	MomentumIn     float64
	MomentumInOK   bool
	MomentumOut    float64
	MomentumOutOK  bool
	HurstIn        float64
	HurstInOK      bool
	HurstInSignif  bool
	HurstOut       float64
	HurstOutOK     bool
	TrendingAbove  float64
	MeanRevBelow   float64
	WeakCorrFloor  float64 // |in-sample| at or below this = too weak to assess
	HoldMagnitude  float64 // oos magnitude at or above this = pattern held
}

// Stability grades how well the in-sample pattern survived in held-out data.
// Result lies in [0,1]; ok=false when either momentum leg is missing.
//
// Same sign and oos magnitude >= HoldMagnitude -> 1.0. Same sign but weaker
// -> 0.5. Sign flip -> 0.0 (the strongest failure: the strategy direction
// reversed out-of-sample). A significant in-sample Hurst whose regime type
// disagrees with the out-of-sample classification caps the result at 0.5.
func Stability(in StabilityInputs) (float64, bool) {
	if !in.MomentumInOK || !in.MomentumOutOK {
		return 0, false
	}
	var s float64
	switch {
	case math.Abs(in.MomentumIn) <= in.WeakCorrFloor:
		s = 0
	case sameSign(in.MomentumIn, in.MomentumOut) && math.Abs(in.MomentumOut) >= in.HoldMagnitude:
		s = 1.0
	case sameSign(in.MomentumIn, in.MomentumOut):
		s = 0.5
	default:
		s = 0.0
	}

	if in.HurstInOK && in.HurstInSignif && in.HurstOutOK {
		regIn := Classify(in.HurstIn, in.TrendingAbove, in.MeanRevBelow)
		regOut := Classify(in.HurstOut, in.TrendingAbove, in.MeanRevBelow)
		if regIn != regOut && s > 0.5 {
			s = 0.5
		}
	}
	return s, true
}

func sameSign(a, b float64) bool {
	return (a >= 0) == (b >= 0)
}
