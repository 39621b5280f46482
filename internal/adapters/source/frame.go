package source

import (
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"github.com/okian/hoopboard/internal/domain/player"
)

// loadOptions forces label columns to text so numeric-looking team or
// country names survive type detection.
func loadOptions() []dataframe.LoadOption {
	types := make(map[string]series.Type, len(player.StringColumns))
	for _, c := range player.StringColumns {
		types[c] = series.String
	}
	return []dataframe.LoadOption{
		dataframe.HasHeader(true),
		dataframe.WithTypes(types),
	}
}

// fromRecords loads a header row plus data rows through gota.
func fromRecords(name string, records [][]string) (*player.Dataset, error) {
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: %s has no header", ErrMalformed, name)
	}
	if len(records) == 1 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyDataset, name)
	}
	return fromFrame(name, dataframe.LoadRecords(records, loadOptions()...))
}

// fromFrame converts a loaded frame into the record set.
func fromFrame(name string, df dataframe.DataFrame) (*player.Dataset, error) {
	if df.Err != nil {
		if strings.Contains(df.Err.Error(), "empty DataFrame") {
			return nil, fmt.Errorf("%w: %s", ErrEmptyDataset, name)
		}
		return nil, fmt.Errorf("%w: %s: %w", ErrMalformed, name, df.Err)
	}

	names := df.Names()
	for _, c := range player.RequiredColumns {
		if !slices.Contains(names, c) {
			return nil, fmt.Errorf("%w: %q in %s", ErrMissingColumn, c, name)
		}
	}
	n := df.Nrow()
	if n == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyDataset, name)
	}

	ages, err := parseAges(df.Col(player.ColAge).Records())
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrMalformed, name, err)
	}
	height := df.Col(player.ColHeight).Float()
	weight := df.Col(player.ColWeight).Float()
	salary := df.Col(player.ColSalary).Float()
	rating := df.Col(player.ColRating).Float()
	bmi := df.Col(player.ColBMI).Float()
	team := df.Col(player.ColTeam).Records()
	position := df.Col(player.ColPosition).Records()
	country := df.Col(player.ColCountry).Records()

	players := make([]player.Player, n)
	for i := range players {
		players[i] = player.Player{
			Age:      ages[i],
			Height:   height[i],
			Weight:   weight[i],
			BMI:      bmi[i],
			Salary:   salary[i],
			Rating:   rating[i],
			Team:     label(team[i]),
			Position: label(position[i]),
			Country:  label(country[i]),
		}
	}
	return player.NewDataset(name, players), nil
}

// label maps gota's missing-value marker back to an empty cell.
func label(s string) string {
	s = strings.TrimSpace(s)
	if s == "NaN" {
		return ""
	}
	return s
}

// parseAges accepts integral values only; "24" and "24.0" are both 24. Empty
// cells, which gota reports as NaN, become player.MissingAge. Errors name the
// data row counting from 1 after the header.
func parseAges(raw []string) ([]int, error) {
	ages := make([]int, len(raw))
	for i, s := range raw {
		s = strings.TrimSpace(s)
		if s == "" || s == "NaN" {
			ages[i] = player.MissingAge
			continue
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil || math.IsInf(f, 0) || f != math.Trunc(f) || f < 0 {
			return nil, fmt.Errorf("data row %d: age %q is not a non-negative integer", i+1, s)
		}
		ages[i] = int(f)
	}
	return ages, nil
}
