// Package player holds the player record and the immutable record set loaded at startup.
package player

import "math"

// Column names as they appear in the source header.
const (
	ColRating   = "rating"
	ColAge      = "age"
	ColPosition = "position"
	ColTeam     = "team"
	ColHeight   = "height"
	ColWeight   = "weight"
	ColSalary   = "salary"
	ColBMI      = "BMI"
	ColCountry  = "country"
)

// RequiredColumns lists every column the dashboard reads. Extra columns are ignored.
var RequiredColumns = []string{
	ColRating, ColAge, ColPosition, ColTeam, ColHeight, ColWeight, ColSalary, ColBMI, ColCountry,
}

// StringColumns are loaded as text even when their values look numeric.
var StringColumns = []string{ColPosition, ColTeam, ColCountry}

// NumericColumns are the float columns averaged per team.
var NumericColumns = []string{ColHeight, ColWeight, ColSalary, ColRating, ColBMI}

// MissingAge marks a record whose age cell was empty.
const MissingAge = -1

// Player is one row of the source table. Float fields are NaN and Age is
// MissingAge when the cell was empty.
type Player struct {
	Age      int
	Height   float64
	Weight   float64
	BMI      float64
	Salary   float64
	Rating   float64
	Team     string
	Position string
	Country  string
}

// Value returns the float column named col, or NaN for unknown names.
func (p Player) Value(col string) float64 {
	switch col {
	case ColHeight:
		return p.Height
	case ColWeight:
		return p.Weight
	case ColBMI:
		return p.BMI
	case ColSalary:
		return p.Salary
	case ColRating:
		return p.Rating
	case ColAge:
		if !p.HasAge() {
			return math.NaN()
		}
		return float64(p.Age)
	}
	return math.NaN()
}

// HasAge reports whether the age cell was filled.
func (p Player) HasAge() bool { return p.Age != MissingAge }

// Label returns the categorical column named col, or "" for unknown names.
func (p Player) Label(col string) string {
	switch col {
	case ColTeam:
		return p.Team
	case ColPosition:
		return p.Position
	case ColCountry:
		return p.Country
	}
	return ""
}
