package logger

import "testing"

func TestRatioSamplerAllow(t *testing.T) {
	s := newRatioSampler(1, 3)
	want := []bool{true, false, false, true, false, false}
	for i, w := range want {
		if got := s.Allow(); got != w {
			t.Fatalf("call %d = %v, want %v", i, got, w)
		}
	}
}

func TestRatioSamplerDisabledAllowsAll(t *testing.T) {
	s := newRatioSampler(0, 0)
	for i := 0; i < 5; i++ {
		if !s.Allow() {
			t.Fatalf("call %d sampled out with sampling disabled", i)
		}
	}
}

func TestShouldSampleDebugRespectsRatio(t *testing.T) {
	debugSampler.Set(1, 2)
	defer debugSampler.Set(1, 50)

	if !ShouldSampleDebug() {
		t.Fatal("first call must pass")
	}
	if ShouldSampleDebug() {
		t.Fatal("second call must be sampled out")
	}
	if !ShouldSampleDebug() {
		t.Fatal("third call starts the next window")
	}
}

func TestParseRatioSpec(t *testing.T) {
	cases := []struct {
		spec string
		num  int
		den  int
	}{
		{"1/50", 1, 50},
		{"3/10", 3, 10},
		{"25", 1, 25},
		{"0", 0, 0},
		{"", 0, 0},
		{"garbage", 0, 0},
	}
	for _, tc := range cases {
		num, den := parseRatioSpec(tc.spec)
		if num != tc.num || den != tc.den {
			t.Fatalf("parseRatioSpec(%q) = %d/%d, want %d/%d", tc.spec, num, den, tc.num, tc.den)
		}
	}
}
