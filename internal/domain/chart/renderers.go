package chart

import (
	"github.com/okian/hoopboard/internal/domain/player"
	"github.com/okian/hoopboard/internal/domain/prepared"
	"github.com/okian/hoopboard/internal/domain/stats"
)

// Dashboard chart ids.
const (
	IDAgeHistogram = "age-histogram"
	IDRatingsBar   = "ratings-bar"
	IDPositionPie  = "position-pie"
	IDHeightLine   = "height-line"
	IDWeightLine   = "weight-line"
	IDSalaryLine   = "salary-line"
	IDRatingLine   = "rating-line"
	IDCountryMap   = "country-map"
	IDBMILine      = "bmi-line"
)

// DefaultSizeMax is the largest country marker size.
const DefaultSizeMax = 40

// DefaultRegistry enumerates the nine dashboard charts in page order.
// sizeMax bounds the country marker size; non-positive means DefaultSizeMax.
func DefaultRegistry(sizeMax float64) *Registry {
	if sizeMax <= 0 {
		sizeMax = DefaultSizeMax
	}
	r, err := NewRegistry(
		Entry{ID: IDAgeHistogram, Row: 0, Render: AgeHistogram},
		Entry{ID: IDRatingsBar, Row: 0, Render: RatingsBar},
		Entry{ID: IDPositionPie, Row: 0, Render: PositionPie},
		Entry{ID: IDHeightLine, Row: 1, Render: TeamLine(player.ColHeight, "Average Height by Team")},
		Entry{ID: IDWeightLine, Row: 1, Render: TeamLine(player.ColWeight, "Average Weight by Team")},
		Entry{ID: IDSalaryLine, Row: 1, Render: TeamLine(player.ColSalary, "Average Salary by Team")},
		Entry{ID: IDRatingLine, Row: 1, Render: TeamLine(player.ColRating, "Average Rating by Team")},
		Entry{ID: IDCountryMap, Row: 2, Render: CountryMap(sizeMax)},
		Entry{ID: IDBMILine, Row: 2, Render: TeamLine(player.ColBMI, "Average BMI by Team")},
	)
	if err != nil {
		// static table; a failure is a programming error
		panic(err)
	}
	return r
}

// AgeHistogram bins every known age; players without one are left out.
func AgeHistogram(s *prepared.Snapshot) Spec {
	bins := s.AgeBins()
	spec := Spec{
		Kind:       KindHistogram,
		Title:      "Histogram of Age",
		XTitle:     player.ColAge,
		YTitle:     "count",
		Categories: make([]string, len(bins)),
		Values:     make([]float64, len(bins)),
	}
	for i, b := range bins {
		spec.Categories[i] = b.Label()
		spec.Values[i] = float64(b.N)
	}
	return spec
}

// RatingsBar plots the rating count series in interval order.
func RatingsBar(s *prepared.Snapshot) Spec {
	return countSpec(KindBar, "Player Ratings", "rating interval", s.Ratings())
}

// PositionPie shows each position's share of the record set.
func PositionPie(s *prepared.Snapshot) Spec {
	return countSpec(KindPie, "Player Positions", player.ColPosition, s.Positions())
}

func countSpec(kind Kind, title, xTitle string, counts []stats.Count) Spec {
	spec := Spec{
		Kind:       kind,
		Title:      title,
		XTitle:     xTitle,
		YTitle:     "count",
		Categories: make([]string, len(counts)),
		Values:     make([]float64, len(counts)),
	}
	for i, c := range counts {
		spec.Categories[i] = c.Label
		spec.Values[i] = float64(c.N)
	}
	return spec
}

// TeamLine plots one team aggregate column with teams on the x-axis.
func TeamLine(col, title string) Renderer {
	return func(s *prepared.Snapshot) Spec {
		teams := s.Teams()
		spec := Spec{
			Kind:       KindLine,
			Title:      title,
			XTitle:     "Team",
			YTitle:     col,
			Categories: make([]string, len(teams)),
			Values:     make([]float64, len(teams)),
		}
		for i, t := range teams {
			spec.Categories[i] = t.Team
			spec.Values[i] = t.Value(col)
		}
		return spec
	}
}

// CountryMap places one marker per located country, sized and coloured by player count.
func CountryMap(sizeMax float64) Renderer {
	return func(s *prepared.Snapshot) Spec {
		points := s.CountryPoints()
		spec := Spec{
			Kind:       KindScatterGeo,
			Title:      "Player Distribution by Country",
			SizeMax:    sizeMax,
			Projection: "natural earth",
			Points:     make([]GeoPoint, len(points)),
		}
		for i, p := range points {
			spec.Points[i] = GeoPoint{Name: p.Country, Lat: p.Lat, Lon: p.Lon, Value: float64(p.N)}
		}
		return spec
	}
}
