package theory

// Spectra are the calculated Raman peak tables for the ten SnCl₆₋ₙBrₙ
// octahedral species, from DFT frequency calculations. Wavenumbers in cm⁻¹,
// intensities in arbitrary units on a shared scale. Read-only: fits consume
// these tables but never modify them.
var Spectra = map[string]PeakSet{
	"SnCl6": {Name: "SnCl6", Peaks: []Peak{
		{290.84, 417}, {228.5, 13.89}, {152.4, 90.5},
	}},
	"SnCl5Br": {Name: "SnCl5Br", Peaks: []Peak{
		{290.27, 253.29}, {288.23, 7.4}, {259.8, 182.98}, {226.45, 10.97},
		{207.01, 140.95}, {158.88, 6.35}, {146.21, 64.67}, {130.05, 62.64},
		{110.16, 84.33},
	}},
	"SnCl4Br2 (cis)": {Name: "SnCl4Br2 (cis)", Peaks: []Peak{
		{287.73, 239.22}, {284.61, 5.84}, {244.01, 223.61}, {223.06, 8.86},
		{192.49, 323.86}, {155.6, 68.9}, {140.7, 1.85}, {130.56, 35.9},
		{119.69, 59.62}, {103.7, 95.83},
	}},
	"SnCl4Br2 (trans)": {Name: "SnCl4Br2 (trans)", Peaks: []Peak{
		{266.05809, 510.16}, {227.36, 16.53}, {149.22, 60.2}, {123.39, 118.44},
		{117.22, 23.91},
	}},
	"SnCl3Br3 (fac)": {Name: "SnCl3Br3 (fac)", Peaks: []Peak{
		{285.14, 240.45}, {268.06, 8.27}, {196.28, 494.54}, {186.02, 2.42},
		{148.36, 91.09}, {135.16, 74.44}, {121.61, 23.82}, {115.72, 16.99},
		{101.6, 106.58},
	}},
	"SnCl3Br3 (mer)": {Name: "SnCl3Br3 (mer)", Peaks: []Peak{
		{281.75, 2.46}, {276.58, 177.25}, {243.85, 334.36}, {213.87, 10.2},
		{178.86, 316.35}, {156.72, 19.72}, {138.98, 33.18}, {122.67, 62.17},
		{114.97, 4.0}, {101.15, 65.71},
	}},
	"SnCl2Br4 (cis)": {Name: "SnCl2Br4 (cis)", Peaks: []Peak{
		{276.38, 198.27}, {210.44, 15.21}, {190.86, 647.7}, {173.81, 318.57},
		{158.42, 93.11}, {139.74, 73.2}, {122.19, 10.11}, {113.19, 42.92},
		{104.68, 27.22}, {97.09, 65.06},
	}},
	"SnCl2Br4 (trans)": {Name: "SnCl2Br4 (trans)", Peaks: []Peak{
		{244.76, 559.22}, {161.6, 301.5}, {135.91, 6.74}, {112.12, 118.88},
		{100.61, 14.98},
	}},
	"SnClBr5": {Name: "SnClBr5", Peaks: []Peak{
		{268.54, 122.58}, {208.14, 14.5}, {184.37, 845.04}, {150.98, 109.05},
		{135.81, 13.32}, {123.88, 19.24}, {109.06, 10.73}, {101.27, 66.04},
		{97.69, 60.49},
	}},
	"SnBr6": {Name: "SnBr6", Peaks: []Peak{
		{174.59, 1968.58}, {135.64, 61.18}, {95.51, 173.52},
	}},
}

// SpectrumOrder is the canonical ordering of the reference set, from the
// chlorine end member through increasing bromine substitution. Coefficient
// vectors everywhere in this module are index-aligned with this slice.
var SpectrumOrder = []string{
	"SnCl6", "SnCl5Br", "SnCl4Br2 (cis)", "SnCl4Br2 (trans)",
	"SnCl3Br3 (fac)", "SnCl3Br3 (mer)", "SnCl2Br4 (cis)",
	"SnCl2Br4 (trans)", "SnClBr5", "SnBr6",
}

// Ordered returns the ten reference PeakSets in SpectrumOrder.
func Ordered() []PeakSet {
	sets := make([]PeakSet, 0, NumReferences)
	for _, name := range SpectrumOrder {
		sets = append(sets, Spectra[name])
	}
	return sets
}
