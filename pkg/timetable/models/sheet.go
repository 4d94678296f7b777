package models

// Sheet is the schedule extracted from one worksheet.
type Sheet struct {
	// Title is the sanitized worksheet title.
	Title string `json:"title"`
	// Layout is the detected header geometry.
	Layout Layout `json:"layout"`
	// Processable is false when no schedule header was found.
	Processable bool `json:"processable"`
	// HasAlternateCampus is set when the sheet mentions the secondary campus.
	HasAlternateCampus bool `json:"has_alternate_campus,omitempty"`
	// Groups in left-to-right order.
	Groups []*Group `json:"groups"`

	byColumn map[string]*Group
}

// AddGroup appends a group keyed by its column.
func (s *Sheet) AddGroup(g *Group) {
	g.sheet = s
	if s.byColumn == nil {
		s.byColumn = make(map[string]*Group)
	}
	s.byColumn[g.Column] = g
	s.Groups = append(s.Groups, g)
}

// Group returns the group in column.
func (s *Sheet) Group(column string) (*Group, bool) {
	g, ok := s.byColumn[column]
	return g, ok
}

// HasGroups reports whether any group was extracted.
func (s *Sheet) HasGroups() bool {
	return len(s.Groups) > 0
}

// FirstGroup returns the leftmost group or nil.
func (s *Sheet) FirstGroup() *Group {
	if len(s.Groups) == 0 {
		return nil
	}
	return s.Groups[0]
}

// GroupByName returns the first group called name.
func (s *Sheet) GroupByName(name string) (*Group, bool) {
	for _, g := range s.Groups {
		if g.Name == name {
			return g, true
		}
	}
	return nil, false
}
