package eeio

import "testing"

func TestEnergyDirectIntensity_Resolution(t *testing.T) {
	cases := []struct {
		code string
		name string
		want float64
	}{
		{"331110", "Iron and steel mills", 15000},        // prefix table
		{"999999", "Secondary aluminum smelting", 20000}, // name keyword
		{"339999", "", 3500},                             // prefix table, misc mfg
		{"318999", "", 4000},                             // broad manufacturing default
		{"489999", "", 1200},                             // broad trade/services default
		{"XYZ", "", 1500},                                // national average
	}
	for _, tc := range cases {
		if got := EnergyDirectIntensity(tc.code, tc.name); got != tc.want {
			t.Fatalf("EnergyDirectIntensity(%q, %q) = %v, want %v", tc.code, tc.name, got, tc.want)
		}
	}
}

func TestLandDirectIntensity_AgricultureDominates(t *testing.T) {
	crop := LandDirectIntensity("111110", "Oilseed farming")
	mfg := LandDirectIntensity("336411", "Aircraft manufacturing")
	office := LandDirectIntensity("541511", "Custom computer programming services")
	if crop != 2500 || mfg != 40 || office != 15 {
		t.Fatalf("unexpected intensities: crop %v, mfg %v, office %v", crop, mfg, office)
	}
	if got := LandDirectIntensity("999999", "Grain farming"); got != 2500 {
		t.Fatalf("expected name keyword fallback 2500, got %v", got)
	}
}
