package models

// Document is the schedule extracted from one spreadsheet file.
type Document struct {
	// Source is the file name or URL the document was read from.
	Source string `json:"source"`
	// Sheets in document order, including non-processable ones.
	Sheets []*Sheet `json:"sheets"`
}

// GroupNames returns every non-empty group name in document order.
func (d *Document) GroupNames() []string {
	var names []string
	for _, s := range d.Sheets {
		for _, g := range s.Groups {
			if g.Name != "" {
				names = append(names, g.Name)
			}
		}
	}
	return names
}
