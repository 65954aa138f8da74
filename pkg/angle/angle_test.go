package angle

import (
	"math"
	"testing"
)

const eps = 1e-9

func near(a, b float64) bool { return math.Abs(a-b) < eps }

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		want float64
	}{
		{"Zero", 0, 0},
		{"Inside", 1.5, 1.5},
		{"FullTurn", Tau, 0},
		{"Negative", -math.Pi / 2, 3 * math.Pi / 2},
		{"Multiple", 5*Tau + 0.25, 0.25},
		{"NegativeMultiple", -3*Tau - 0.25, Tau - 0.25},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.in); !near(got, tt.want) {
				t.Errorf("Normalize(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestNormalizeNaN(t *testing.T) {
	if got := Normalize(math.NaN()); !math.IsNaN(got) {
		t.Errorf("Normalize(NaN) = %v, want NaN", got)
	}
}

func TestRenormalize(t *testing.T) {
	for _, a := range []float64{-20, -Tau - 0.1, -1, 0, 1, Tau, Tau + 0.1, 20} {
		got := Renormalize(a)
		if got < -Tau || got > Tau {
			t.Errorf("Renormalize(%v) = %v, outside [-2π, 2π]", a, got)
		}
		if !near(Normalize(got), Normalize(a)) {
			t.Errorf("Renormalize(%v) = %v changed the angle", a, got)
		}
	}
	if got := Renormalize(-1); got != -1 {
		t.Errorf("Renormalize(-1) = %v, want -1 (in range values are kept)", got)
	}
}

func TestRenormalizeExtent(t *testing.T) {
	tests := []struct {
		name               string
		start, end         float64
		wantStart, wantEnd float64
	}{
		{"in range kept", -1, 2, -1, 2},
		{"below range shifts up together", -8, -4, -8 + Tau, -4 + Tau},
		{"end past a turn shifts down together", 1, 0.5 + Tau, 1 - Tau, 0.5},
		{"several turns", 20, 21, 20 - 3*Tau, 21 - 3*Tau},
		{"wrapped folds each end", Tau + 1, 0.5, 1, 0.5},
		{"wider than a turn folds each end", -7, 7, -7 + Tau, 7 - Tau},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := RenormalizeExtent(tt.start, tt.end)
			if !near(start, tt.wantStart) || !near(end, tt.wantEnd) {
				t.Errorf("RenormalizeExtent(%v, %v) = (%v, %v), want (%v, %v)",
					tt.start, tt.end, start, end, tt.wantStart, tt.wantEnd)
			}
			if tt.start <= tt.end && tt.end-tt.start <= Tau && start > end {
				t.Errorf("ordered extent came back wrapped: (%v, %v)", start, end)
			}
		})
	}
}

func TestClampForward(t *testing.T) {
	start := 1.0
	lower, upper := start, start+Tau

	tests := []struct {
		name      string
		candidate float64
		want      float64
	}{
		{"InsideWindow", 2, 2},
		{"BelowWrapsUp", 0.5, 0.5 + Tau},
		{"AboveWrapsDown", upper + 0.3, upper + 0.3 - Tau},
		{"FarBelowClamps", lower - 2*Tau, lower},
		{"AtLower", lower, lower},
		{"AtUpper", upper, upper},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClampForward(tt.candidate, lower, upper)
			if !near(got, tt.want) {
				t.Errorf("ClampForward(%v) = %v, want %v", tt.candidate, got, tt.want)
			}
			if got < lower-eps || got > upper+eps {
				t.Errorf("ClampForward(%v) = %v outside window", tt.candidate, got)
			}
		})
	}
}

func TestClampBackward(t *testing.T) {
	end := 2.0
	lower, upper := end-Tau, end

	tests := []struct {
		name      string
		candidate float64
		want      float64
	}{
		{"InsideWindow", 1, 1},
		{"AboveWrapsDown", 2.5, 2.5 - Tau},
		{"BelowWrapsUp", lower - 0.5, lower - 0.5 + Tau},
		{"FarAboveClamps", upper + 3*Tau, upper},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClampBackward(tt.candidate, lower, upper)
			if !near(got, tt.want) {
				t.Errorf("ClampBackward(%v) = %v, want %v", tt.candidate, got, tt.want)
			}
		})
	}
}

func TestClampStaysWithinOneTurn(t *testing.T) {
	lower, upper := 0.3, 0.3+Tau
	for c := -Tau + 0.31; c < 2*Tau+0.29; c += 0.05 {
		got := ClampForward(c, lower, upper)
		if math.Abs(got-c) > Tau+eps {
			t.Fatalf("ClampForward(%v) = %v moved more than 2π", c, got)
		}
		got = ClampBackward(c, lower, upper)
		if math.Abs(got-c) > Tau+eps {
			t.Fatalf("ClampBackward(%v) = %v moved more than 2π", c, got)
		}
	}
}

func TestClampForwardContinuityAcrossSeam(t *testing.T) {
	// Drag the end handle of [1, 6] through 2π in small steps. The reported
	// angle must follow the pointer without large jumps until it reaches the
	// limit of the window.
	start, end := 1.0, 6.0
	prev := end
	for step := 0.0; step < 1.2; step += 0.01 {
		got := ClampForward(end+step, start, start+Tau)
		if d := math.Abs(got - prev); d > 0.01+eps {
			t.Fatalf("step %.2f: jump of %v (from %v to %v)", step, d, prev, got)
		}
		prev = got
	}
}

func TestContains(t *testing.T) {
	d := Domain{Min: 0, Max: 10}
	tests := []struct {
		name       string
		v          float64
		start, end float64
		tol        float64
		want       bool
	}{
		{"Inside", 5, 2, 8, 0, true},
		{"Outside", 9, 2, 8, 0, false},
		{"WithinTolerance", 8.4, 2, 8, 0.5, true},
		{"BeyondTolerance", 8.6, 2, 8, 0.5, false},
		{"WrappedHead", 9, 8, 2, 0, true},
		{"WrappedTail", 1, 8, 2, 0, true},
		{"WrappedGap", 5, 8, 2, 0, false},
		{"WrappedMax", 10, 8, 2, 0, true},
		{"WrappedMin", 0, 8, 2, 0, true},
		{"WrappedBeyondMax", 10.5, 8, 2, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Contains(tt.v, tt.start, tt.end, tt.tol, d); got != tt.want {
				t.Errorf("Contains(%v, %v, %v) = %v, want %v", tt.v, tt.start, tt.end, got, tt.want)
			}
		})
	}
}

func TestFromPoint(t *testing.T) {
	tests := []struct {
		name string
		x, y float64
		want float64
	}{
		{"Top", 0, -1, 0},
		{"Right", 1, 0, math.Pi / 2},
		{"Bottom", 0, 1, math.Pi},
		{"Left", -1, 0, 3 * math.Pi / 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FromPoint(tt.x, tt.y); !near(got, tt.want) {
				t.Errorf("FromPoint(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestDelta(t *testing.T) {
	// Quarter turn clockwise on screen: from right (1,0) to bottom (0,1).
	if got := Delta(1, 0, 0, 1); !near(got, math.Pi/2) {
		t.Errorf("Delta = %v, want π/2", got)
	}
}
