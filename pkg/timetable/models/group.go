package models

// Group is one schedule column.
type Group struct {
	// Name is the text of the group names row in this column.
	Name string `json:"name"`
	// Column is the sheet column the group occupies.
	Column string `json:"column"`
	// Pairs in top-to-bottom order.
	Pairs []*Pair `json:"pairs"`

	sheet  *Sheet
	byCell map[string]*Pair
}

// NewGroup creates an empty group bound to a sheet.
func NewGroup(sheet *Sheet, name, column string) *Group {
	return &Group{
		Name:   name,
		Column: column,
		Pairs:  []*Pair{},
		sheet:  sheet,
		byCell: make(map[string]*Pair),
	}
}

// Sheet returns the owning sheet.
func (g *Group) Sheet() *Sheet {
	return g.sheet
}

// AddPair appends a pair keyed by its time cell coordinate.
func (g *Group) AddPair(p *Pair) {
	p.group = g
	if g.byCell == nil {
		g.byCell = make(map[string]*Pair)
	}
	g.byCell[p.Coordinate] = p
	g.Pairs = append(g.Pairs, p)
}

// PairAt returns the pair anchored at a time cell coordinate.
func (g *Group) PairAt(coordinate string) (*Pair, bool) {
	p, ok := g.byCell[coordinate]
	return p, ok
}

// Days returns the distinct days in pair order.
func (g *Group) Days() []string {
	var days []string
	seen := make(map[string]bool)
	for _, p := range g.Pairs {
		if !seen[p.Day] {
			seen[p.Day] = true
			days = append(days, p.Day)
		}
	}
	return days
}

// PairsByDay returns the pairs held on day, in order.
func (g *Group) PairsByDay(day string) []*Pair {
	var pairs []*Pair
	for _, p := range g.Pairs {
		if p.Day == day {
			pairs = append(pairs, p)
		}
	}
	return pairs
}
