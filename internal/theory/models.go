package theory

// NumReferences is the number of theory spectra in the reference set. The
// fitter's coefficient vector is index-aligned with SpectrumOrder, so every
// fit works with exactly this many reference curves.
const NumReferences = 10

// Peak is a single calculated Raman transition: position in cm⁻¹ and a
// relative scattering intensity (arbitrary units, non-negative).
type Peak struct {
	Wavenumber float64
	Intensity  float64
}

// PeakSet holds the discrete theory peaks for one SnCl₆₋ₙBrₙ species.
// The peak order is as published; it carries no meaning for broadening.
type PeakSet struct {
	Name  string
	Peaks []Peak
}
