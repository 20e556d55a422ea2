package index

import "github.com/grovetools/ccsessions/pkg/models"

// Params are the user-controlled inputs to the visible list.
type Params struct {
	Query   string
	Sort    SortKey
	Grouped bool
}

// View is the visible list for one set of Params.
type View struct {
	// Sessions is the full visible sequence: filtered, sorted and, when
	// grouped, flattened group by group.
	Sessions []*models.Session
	// Groups is set only when grouping is on.
	Groups []Group

	groupOf []int
}

// Build filters, sorts and optionally groups sessions.
func Build(sessions []*models.Session, p Params) View {
	visible := Sort(Filter(sessions, p.Query), p.Sort)
	if !p.Grouped {
		return View{Sessions: visible}
	}

	groups := GroupByLabel(visible)
	v := View{Sessions: Flatten(groups), Groups: groups}
	v.groupOf = make([]int, 0, len(v.Sessions))
	for gi, g := range groups {
		for range g.Sessions {
			v.groupOf = append(v.groupOf, gi)
		}
	}
	return v
}

// Len returns the number of visible sessions.
func (v View) Len() int {
	return len(v.Sessions)
}

// Page returns the k-th page of the visible sequence.
func (v View) Page(k int) []*models.Session {
	return Page(v.Sessions, k)
}

// PageCount returns the number of pages, at least 1.
func (v View) PageCount() int {
	return PageCount(len(v.Sessions))
}

// GroupOf returns the group of the i-th visible session, or nil when the
// view is not grouped or i is out of range.
func (v View) GroupOf(i int) *Group {
	if i < 0 || i >= len(v.groupOf) {
		return nil
	}
	return &v.Groups[v.groupOf[i]]
}

// IndexOf returns the position of the session with id, or -1.
func (v View) IndexOf(id string) int {
	for i, s := range v.Sessions {
		if s.ID == id {
			return i
		}
	}
	return -1
}

// At returns the session on page k at offset cursor, or nil.
func (v View) At(page, cursor int) *models.Session {
	items := v.Page(page)
	if cursor < 0 || cursor >= len(items) {
		return nil
	}
	return items[cursor]
}
