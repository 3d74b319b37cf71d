package cityagg

import "time"

const (
	DefaultInterval = 5 * time.Second
	DefaultCeiling  = 4

	DefaultExtraCity = "Miami"
)

// Default lists are returned as fresh slices.

func DefaultSeed() []string {
	return []string{"Atlanta", "Columbus ", "DC Metro", "Philly", "Charlotte", "Denver", "Richmond"}
}

func DefaultRotation() []string {
	return []string{"Honolulu", "San Diego", "New Orleans", "Seattle", "LA"}
}

func DefaultAppendices() []string {
	return []string{"Dallas", "Jacksonville", "Boston"}
}
