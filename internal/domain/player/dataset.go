package player

// Dataset is the record set. It is built once by a loader and never mutated;
// accessors hand out copies.
type Dataset struct {
	source  string
	players []Player
}

// NewDataset copies players into a new Dataset.
func NewDataset(source string, players []Player) *Dataset {
	cp := make([]Player, len(players))
	copy(cp, players)
	return &Dataset{source: source, players: cp}
}

// Source names where the records came from.
func (d *Dataset) Source() string { return d.source }

// Len returns the number of records.
func (d *Dataset) Len() int { return len(d.players) }

// At returns record i.
func (d *Dataset) At(i int) Player { return d.players[i] }

// Players returns a copy of all records.
func (d *Dataset) Players() []Player {
	cp := make([]Player, len(d.players))
	copy(cp, d.players)
	return cp
}

// Floats returns the named numeric column in record order.
func (d *Dataset) Floats(col string) []float64 {
	out := make([]float64, len(d.players))
	for i, p := range d.players {
		out[i] = p.Value(col)
	}
	return out
}

// Ages returns the known ages in record order; records without an age are skipped.
func (d *Dataset) Ages() []int {
	out := make([]int, 0, len(d.players))
	for _, p := range d.players {
		if p.HasAge() {
			out = append(out, p.Age)
		}
	}
	return out
}

// Labels returns the named categorical column in record order.
func (d *Dataset) Labels(col string) []string {
	out := make([]string, len(d.players))
	for i, p := range d.players {
		out[i] = p.Label(col)
	}
	return out
}
