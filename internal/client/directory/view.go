package directory

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/dmitrijs2005/userdesk/internal/client/models"
)

type State int

const (
	Loading State = iota
	Ready
)

func (s State) String() string {
	if s == Ready {
		return "ready"
	}
	return "loading"
}

// Source is what the view needs from the directory service.
type Source interface {
	List(ctx context.Context, page int) (models.UserPage, error)
	Delete(ctx context.Context, id int) error
	BulkDelete(ctx context.Context, ids []int) models.BulkDeleteResult
}

// ListView holds one server page plus the local query, tombstones and
// selection. Network calls run outside the lock; the last finished fetch
// wins.
type ListView struct {
	src Source

	mu         sync.Mutex
	state      State
	loaded     bool
	page       int
	data       models.UserPage
	query      Query
	tombstones Tombstones
	selected   map[int]struct{}
	stale      bool
}

// NewListView starts in Loading on page 1, sorted by first name ascending.
func NewListView(src Source) *ListView {
	return &ListView{
		src:        src,
		state:      Loading,
		page:       1,
		query:      Query{Sort: SortSpec{Field: SortByFirstName, Direction: Asc}},
		tombstones: Tombstones{},
		selected:   map[int]struct{}{},
	}
}

func (v *ListView) State() State {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.state
}

// Loaded reports whether any fetch has succeeded yet.
func (v *ListView) Loaded() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.loaded
}

// Page returns the current page number and the server's page metadata.
func (v *ListView) Page() (int, models.UserPage) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.page, v.data
}

// Refresh refetches the current page.
func (v *ListView) Refresh(ctx context.Context) error {
	v.mu.Lock()
	page := v.page
	v.mu.Unlock()
	return v.fetch(ctx, page)
}

// SetPage fetches page n; values below 1 mean 1.
func (v *ListView) SetPage(ctx context.Context, n int) error {
	return v.fetch(ctx, max(n, 1))
}

// NextPage moves forward unless the last page is shown. It reports whether
// a fetch was attempted.
func (v *ListView) NextPage(ctx context.Context) (bool, error) {
	v.mu.Lock()
	page, last := v.page, v.data.TotalPages
	v.mu.Unlock()
	if last == 0 || page >= last {
		return false, nil
	}
	return true, v.fetch(ctx, page+1)
}

// PrevPage moves back unless page 1 is shown.
func (v *ListView) PrevPage(ctx context.Context) (bool, error) {
	v.mu.Lock()
	page := v.page
	v.mu.Unlock()
	if page <= 1 {
		return false, nil
	}
	return true, v.fetch(ctx, page-1)
}

func (v *ListView) fetch(ctx context.Context, page int) error {
	v.mu.Lock()
	v.state = Loading
	v.mu.Unlock()

	data, err := v.src.List(ctx, page)

	v.mu.Lock()
	defer v.mu.Unlock()
	if err != nil {
		if v.loaded {
			v.state = Ready
		}
		return fmt.Errorf("failed to load page %d: %w", page, err)
	}

	v.data = data
	v.page = page
	if data.Page > 0 {
		v.page = data.Page
	}
	v.loaded = true
	v.state = Ready
	v.stale = false
	clear(v.tombstones)

	present := make(map[int]struct{}, len(data.Items))
	for _, u := range data.Items {
		present[u.ID] = struct{}{}
	}
	for id := range v.selected {
		if _, ok := present[id]; !ok {
			delete(v.selected, id)
		}
	}
	return nil
}

func (v *ListView) Query() Query {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.query
}

func (v *ListView) SetSearch(s string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.query.Search = s
}

func (v *ListView) SetSort(spec SortSpec) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.query.Sort = spec
}

// ToggleSort flips the direction when field is already the sort key,
// otherwise sorts ascending by field.
func (v *ListView) ToggleSort(field SortField) SortSpec {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.query.Sort.Field == field {
		v.query.Sort.Direction = v.query.Sort.Direction.Flip()
	} else {
		v.query.Sort = SortSpec{Field: field, Direction: Asc}
	}
	return v.query.Sort
}

// Visible returns the rows to show for the current page and query.
func (v *ListView) Visible() []models.User {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.visibleLocked()
}

func (v *ListView) visibleLocked() []models.User {
	return Transform(v.data.Items, v.query, v.tombstones)
}

// Summary reads "Showing N of T users", T being the server-side total.
func (v *ListView) Summary() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return fmt.Sprintf("Showing %d of %d users", len(v.visibleLocked()), v.data.Total)
}

func (v *ListView) IsTombstoned(id int) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.tombstones.Has(id)
}

func (v *ListView) Select(ids ...int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	for _, id := range ids {
		v.selected[id] = struct{}{}
	}
}

func (v *ListView) Deselect(ids ...int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	for _, id := range ids {
		delete(v.selected, id)
	}
}

// ToggleSelectAll clears the selection when every visible row is already
// selected, otherwise selects exactly the visible rows. It reports whether
// rows are selected afterwards.
func (v *ListView) ToggleSelectAll() bool {
	v.mu.Lock()
	defer v.mu.Unlock()

	visible := v.visibleLocked()
	all := len(visible) > 0 && len(v.selected) == len(visible)
	for _, u := range visible {
		if _, ok := v.selected[u.ID]; !ok {
			all = false
			break
		}
	}
	clear(v.selected)
	if all {
		return false
	}
	for _, u := range visible {
		v.selected[u.ID] = struct{}{}
	}
	return len(visible) > 0
}

// Selected returns the selected ids in ascending order.
func (v *ListView) Selected() []int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.selectedLocked()
}

func (v *ListView) selectedLocked() []int {
	ids := make([]int, 0, len(v.selected))
	for id := range v.selected {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Delete removes one user remotely. Only on success is the id tombstoned
// and deselected.
func (v *ListView) Delete(ctx context.Context, id int) error {
	if err := v.src.Delete(ctx, id); err != nil {
		return err
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	v.tombstones.Add(id)
	delete(v.selected, id)
	return nil
}

// DeleteSelected bulk-deletes the selection. Succeeded ids are tombstoned
// and deselected; failed ids stay visible and selected.
func (v *ListView) DeleteSelected(ctx context.Context) models.BulkDeleteResult {
	ids := v.Selected()
	if len(ids) == 0 {
		return models.NewBulkDeleteResult()
	}

	res := v.src.BulkDelete(ctx, ids)

	v.mu.Lock()
	defer v.mu.Unlock()
	for _, id := range res.Succeeded {
		v.tombstones.Add(id)
		delete(v.selected, id)
	}
	return res
}

// MarkStale flags the cached page as outdated, e.g. after an edit.
func (v *ListView) MarkStale() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.stale = true
}

func (v *ListView) Stale() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.stale
}
