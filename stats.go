package structdiff

// Stats holds counts of the changes in a change set
type Stats struct {
	Inserts    int `json:"inserts,omitempty"`    // number of elements and entries added
	Updates    int `json:"updates,omitempty"`    // number of values changed as a whole
	Deletes    int `json:"deletes,omitempty"`    // number of elements and entries removed
	Containers int `json:"containers,omitempty"` // number of collections, maps and elements holding changes
}

// CalcStats counts every change in changes, nested ones included
func CalcStats(changes Changes) *Stats {
	st := &Stats{}
	Walk(changes, func(_ int, c Change) bool {
		switch c.Op() {
		case DTInsert:
			st.Inserts++
		case DTDelete:
			st.Deletes++
		case DTUpdate:
			st.Updates++
		case DTContext:
			st.Containers++
		}
		return true
	})
	return st
}

// NodeChange returns the net number of elements and entries gained from left
// to right
func (s Stats) NodeChange() int {
	return s.Inserts - s.Deletes
}

// Total is the number of leaf changes
func (s Stats) Total() int {
	return s.Inserts + s.Updates + s.Deletes
}
