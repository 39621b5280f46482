package stats

import (
	"cmp"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"slices"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"github.com/okian/hoopboard/internal/domain/player"
)

// TeamRow holds the per-team means. A column with no values for the team is NaN.
type TeamRow struct {
	Team   string
	Height float64
	Weight float64
	Salary float64
	Rating float64
	BMI    float64
}

// Value returns the mean for a numeric player column.
func (r TeamRow) Value(col string) float64 {
	switch col {
	case player.ColHeight:
		return r.Height
	case player.ColWeight:
		return r.Weight
	case player.ColSalary:
		return r.Salary
	case player.ColRating:
		return r.Rating
	case player.ColBMI:
		return r.BMI
	}
	return math.NaN()
}

// MarshalJSON encodes NaN means as null.
func (r TeamRow) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]any{
		"team":           r.Team,
		player.ColHeight: jsonFloat(r.Height),
		player.ColWeight: jsonFloat(r.Weight),
		player.ColSalary: jsonFloat(r.Salary),
		player.ColRating: jsonFloat(r.Rating),
		player.ColBMI:    jsonFloat(r.BMI),
	})
}

func jsonFloat(v float64) any {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return v
}

// Frame converts the record set into a gota frame holding the team column and
// the averaged numeric columns.
func Frame(ds *player.Dataset) dataframe.DataFrame {
	cols := []series.Series{series.New(ds.Labels(player.ColTeam), series.String, player.ColTeam)}
	for _, c := range player.NumericColumns {
		cols = append(cols, series.New(ds.Floats(c), series.Float, c))
	}
	return dataframe.New(cols...)
}

// TeamMeans groups the record set by team and averages height, weight,
// salary, rating and BMI, skipping missing values column by column. Rows are
// sorted by team name; there is exactly one row per distinct non-empty team.
func TeamMeans(ds *player.Dataset) ([]TeamRow, error) {
	if ds.Len() == 0 {
		return nil, nil
	}
	groups := Frame(ds).GroupBy(player.ColTeam)
	if groups.Err != nil {
		return nil, fmt.Errorf("%w: %w", ErrAggregate, groups.Err)
	}

	rows := make([]TeamRow, 0)
	for _, g := range groups.GetGroups() {
		row := TeamRow{Team: g.Col(player.ColTeam).Elem(0).String()}
		if row.Team == "" {
			// missing team values form no group
			continue
		}
		row.Height = nanMean(g.Col(player.ColHeight).Float())
		row.Weight = nanMean(g.Col(player.ColWeight).Float())
		row.Salary = nanMean(g.Col(player.ColSalary).Float())
		row.Rating = nanMean(g.Col(player.ColRating).Float())
		row.BMI = nanMean(g.Col(player.ColBMI).Float())
		rows = append(rows, row)
	}
	slices.SortFunc(rows, func(a, b TeamRow) int { return cmp.Compare(a.Team, b.Team) })
	return rows, nil
}

// TeamFrame lays the aggregate out as a gota frame in column order
// team, height, weight, salary, rating, BMI.
func TeamFrame(rows []TeamRow) dataframe.DataFrame {
	teams := make([]string, len(rows))
	values := make(map[string][]float64, len(player.NumericColumns))
	for i, r := range rows {
		teams[i] = r.Team
		for _, c := range player.NumericColumns {
			values[c] = append(values[c], r.Value(c))
		}
	}
	cols := []series.Series{series.New(teams, series.String, player.ColTeam)}
	for _, c := range player.NumericColumns {
		cols = append(cols, series.New(values[c], series.Float, c))
	}
	return dataframe.New(cols...)
}

// WriteTeamCSV writes the aggregate table as CSV with a header row.
func WriteTeamCSV(w io.Writer, rows []TeamRow) error {
	if err := TeamFrame(rows).WriteCSV(w); err != nil {
		return fmt.Errorf("%w: write csv: %w", ErrAggregate, err)
	}
	return nil
}
