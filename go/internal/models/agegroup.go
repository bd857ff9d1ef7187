package models

// AgeGroupKind defines how an age group descriptor is interpreted.
type AgeGroupKind string

const (
	AgeGroupKindLabel AgeGroupKind = "LABEL"
	AgeGroupKindRange AgeGroupKind = "RANGE"
)

// AgeGroup is one bucket athletes are sorted into for a season. A descriptor
// like "9U" resolves to a LABEL group; "8U-9U" or "8U/9U" resolves to a RANGE
// group with the numeric bounds parsed once at configuration time.
type AgeGroup struct {
	ID     string       `json:"id"`
	Label  string       `json:"label"`
	Kind   AgeGroupKind `json:"kind"`
	MinAge int          `json:"min_age,omitempty"`
	MaxAge int          `json:"max_age,omitempty"`
}
