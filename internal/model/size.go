package model

const (
	mm2PerM2 = 1e6
	mm3PerM3 = 1e9
)

// Size holds the three dimensions of a part in mm.
// Length >= Width >= Thickness when the size was auto-oriented.
type Size struct {
	Length    float64 `json:"length"`
	Width     float64 `json:"width"`
	Thickness float64 `json:"thickness"`
}

// Area returns the face area (length x width) in sq mm.
func (s Size) Area() float64 {
	return s.Length * s.Width
}

// Volume returns the volume in cubic mm.
func (s Size) Volume() float64 {
	return s.Length * s.Width * s.Thickness
}

// AreaM2 returns the face area in square meters.
func (s Size) AreaM2() float64 {
	return s.Area() / mm2PerM2
}

// VolumeM3 returns the volume in cubic meters.
func (s Size) VolumeM3() float64 {
	return s.Volume() / mm3PerM3
}
