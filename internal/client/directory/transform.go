// Package directory implements the client-side view over one server page of
// users: search, sort, locally deleted rows and selection.
package directory

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/dmitrijs2005/userdesk/internal/client/models"
	"golang.org/x/text/cases"
)

// SortField is the closed set of sortable columns.
type SortField int

const (
	SortByFirstName SortField = iota
	SortByLastName
	SortByEmail
)

var sortFieldNames = [...]string{"first_name", "last_name", "email"}

func (f SortField) String() string {
	if f < 0 || int(f) >= len(sortFieldNames) {
		return fmt.Sprintf("SortField(%d)", int(f))
	}
	return sortFieldNames[f]
}

func (f SortField) value(u models.User) string {
	switch f {
	case SortByLastName:
		return u.LastName
	case SortByEmail:
		return u.Email
	}
	return u.FirstName
}

// ParseSortField accepts the wire names and a few short aliases.
func ParseSortField(s string) (SortField, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "first_name", "first", "firstname":
		return SortByFirstName, nil
	case "last_name", "last", "lastname":
		return SortByLastName, nil
	case "email":
		return SortByEmail, nil
	}
	return 0, fmt.Errorf("unknown sort field %q (want first_name, last_name or email)", s)
}

type Direction int

const (
	Asc Direction = iota
	Desc
)

func (d Direction) String() string {
	if d == Desc {
		return "desc"
	}
	return "asc"
}

func (d Direction) Flip() Direction {
	if d == Desc {
		return Asc
	}
	return Desc
}

type SortSpec struct {
	Field     SortField
	Direction Direction
}

func (s SortSpec) String() string {
	return s.Field.String() + " " + s.Direction.String()
}

// Query is the local, network-free part of the view.
type Query struct {
	Search string
	Sort   SortSpec
}

// Tombstones is the set of ids deleted locally but possibly still present
// in the last fetched page.
type Tombstones map[int]struct{}

func (t Tombstones) Add(ids ...int) {
	for _, id := range ids {
		t[id] = struct{}{}
	}
}

func (t Tombstones) Has(id int) bool {
	_, ok := t[id]
	return ok
}

// A Caser is stateful, so each call gets its own.
func fold(s string) string {
	return cases.Fold().String(s)
}

// Matches reports whether the case-folded "first last email" of u contains
// the case-folded search. An empty search matches everything.
func Matches(u models.User, search string) bool {
	if search == "" {
		return true
	}
	hay := fold(u.FirstName + " " + u.LastName + " " + u.Email)
	return strings.Contains(hay, fold(search))
}

// Filter returns the users matching search, in input order.
func Filter(users []models.User, search string) []models.User {
	out := make([]models.User, 0, len(users))
	for _, u := range users {
		if Matches(u, search) {
			out = append(out, u)
		}
	}
	return out
}

// Sort returns a sorted copy. Values compare byte-wise, case-sensitive;
// equal keys keep their input order.
func Sort(users []models.User, spec SortSpec) []models.User {
	out := slices.Clone(users)
	if out == nil {
		out = []models.User{}
	}
	slices.SortStableFunc(out, func(a, b models.User) int {
		c := cmp.Compare(spec.Field.value(a), spec.Field.value(b))
		if spec.Direction == Desc {
			return -c
		}
		return c
	})
	return out
}

// ExcludeTombstoned drops every user whose id is in t.
func ExcludeTombstoned(users []models.User, t Tombstones) []models.User {
	out := make([]models.User, 0, len(users))
	for _, u := range users {
		if !t.Has(u.ID) {
			out = append(out, u)
		}
	}
	return out
}

// Transform derives the visible rows: tombstoned ids are dropped, the rest
// filtered by q.Search and sorted by q.Sort. users is never modified.
func Transform(users []models.User, q Query, t Tombstones) []models.User {
	return Sort(Filter(ExcludeTombstoned(users, t), q.Search), q.Sort)
}
