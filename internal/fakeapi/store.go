package fakeapi

import (
	"fmt"
	"slices"
	"sync"

	"github.com/dmitrijs2005/userdesk/internal/client/models"
)

// SeedUsers returns the twelve users the public reqres service ships with.
func SeedUsers() []models.User {
	names := [][3]string{
		{"george.bluth", "George", "Bluth"},
		{"janet.weaver", "Janet", "Weaver"},
		{"emma.wong", "Emma", "Wong"},
		{"eve.holt", "Eve", "Holt"},
		{"charles.morris", "Charles", "Morris"},
		{"tracey.ramos", "Tracey", "Ramos"},
		{"michael.lawson", "Michael", "Lawson"},
		{"lindsay.ferguson", "Lindsay", "Ferguson"},
		{"tobias.funke", "Tobias", "Funke"},
		{"byron.fields", "Byron", "Fields"},
		{"george.edwards", "George", "Edwards"},
		{"rachel.howell", "Rachel", "Howell"},
	}
	users := make([]models.User, 0, len(names))
	for i, n := range names {
		id := i + 1
		users = append(users, models.User{
			ID:        id,
			Email:     n[0] + "@reqres.in",
			FirstName: n[1],
			LastName:  n[2],
			Avatar:    fmt.Sprintf("https://reqres.in/img/faces/%d-image.jpg", id),
		})
	}
	return users
}

// Store is an in-memory user table ordered by id.
type Store struct {
	mu    sync.RWMutex
	users map[int]models.User
}

func NewStore(users ...models.User) *Store {
	s := &Store{users: make(map[int]models.User, len(users))}
	for _, u := range users {
		s.users[u.ID] = u
	}
	return s
}

func (s *Store) sortedIDs() []int {
	ids := make([]int, 0, len(s.users))
	for id := range s.users {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Page returns the 1-based page of perPage users. Pages past the end are
// empty but still report the totals.
func (s *Store) Page(page, perPage int) models.UserPage {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 1
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := s.sortedIDs()
	total := len(ids)
	out := models.UserPage{
		Items:      []models.User{},
		Page:       page,
		PerPage:    perPage,
		Total:      total,
		TotalPages: (total + perPage - 1) / perPage,
	}

	start := (page - 1) * perPage
	if start >= total {
		return out
	}
	end := min(start+perPage, total)
	for _, id := range ids[start:end] {
		out.Items = append(out.Items, s.users[id])
	}
	return out
}

func (s *Store) Get(id int) (models.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	return u, ok
}

// FindByEmail is an exact, case-sensitive match, as the public service does.
func (s *Store) FindByEmail(email string) (models.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.Email == email {
			return u, true
		}
	}
	return models.User{}, false
}

// Update merges the non-nil patch fields into the stored user.
func (s *Store) Update(id int, p models.UserPatch) (models.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return models.User{}, false
	}
	if p.Email != nil {
		u.Email = *p.Email
	}
	if p.FirstName != nil {
		u.FirstName = *p.FirstName
	}
	if p.LastName != nil {
		u.LastName = *p.LastName
	}
	if p.Avatar != nil {
		u.Avatar = *p.Avatar
	}
	s.users[id] = u
	return u, true
}

// Delete reports whether the user existed.
func (s *Store) Delete(id int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.users[id]
	delete(s.users, id)
	return ok
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.users)
}
