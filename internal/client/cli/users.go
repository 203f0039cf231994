package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/userdesk/internal/client/directory"
	"github.com/dmitrijs2005/userdesk/internal/client/models"
)

// render prints the visible rows of the current page. It never fetches.
func (a *App) render() {
	if !a.view.Loaded() {
		a.println("Loading...")
		return
	}
	rows := a.view.Visible()
	if len(rows) == 0 {
		a.println("No users to show.")
	} else {
		renderTable(a.out, rows, a.view.Selected())
	}
	renderFooter(a.out, a.view)
}

func (a *App) load(ctx context.Context, fetch func(context.Context) error) error {
	if !a.view.Loaded() {
		a.println("Loading...")
	}
	if err := fetch(ctx); err != nil {
		return a.fail(ctx, "Failed to load users", err)
	}
	a.render()
	return nil
}

// List shows the current page, fetching it first when nothing is loaded
// yet or the data went stale after an edit.
func (a *App) List(ctx context.Context) error {
	if a.view.Loaded() && !a.view.Stale() {
		a.render()
		return nil
	}
	return a.load(ctx, a.view.Refresh)
}

func (a *App) Refresh(ctx context.Context) error {
	return a.load(ctx, a.view.Refresh)
}

func (a *App) Page(ctx context.Context, n int) error {
	return a.load(ctx, func(ctx context.Context) error { return a.view.SetPage(ctx, n) })
}

func (a *App) Next(ctx context.Context) error {
	return a.step(ctx, a.view.NextPage, "Already on the last page.")
}

func (a *App) Prev(ctx context.Context) error {
	return a.step(ctx, a.view.PrevPage, "Already on the first page.")
}

func (a *App) step(ctx context.Context, move func(context.Context) (bool, error), atEdge string) error {
	moved, err := move(ctx)
	if err != nil {
		return a.fail(ctx, "Failed to load users", err)
	}
	if !moved {
		a.println(atEdge)
		return nil
	}
	a.render()
	return nil
}

func (a *App) Search(_ context.Context, text string) error {
	a.view.SetSearch(strings.TrimSpace(text))
	a.render()
	return nil
}

func (a *App) Sort(ctx context.Context, field string) error {
	f, err := directory.ParseSortField(field)
	if err != nil {
		return a.fail(ctx, "Cannot sort", err)
	}
	a.view.ToggleSort(f)
	a.render()
	return nil
}

func (a *App) Show(ctx context.Context, id int) error {
	u, err := a.users.Get(ctx, id)
	if err != nil {
		return a.fail(ctx, fmt.Sprintf("Failed to load user #%d", id), err)
	}
	renderUser(a.out, u)
	return nil
}

// Edit loads the user, asks for each field with the current value as the
// default and sends only the fields that changed.
func (a *App) Edit(ctx context.Context, id int) error {
	u, err := a.users.Get(ctx, id)
	if err != nil {
		return a.fail(ctx, fmt.Sprintf("Failed to load user #%d", id), err)
	}

	var patch models.UserPatch
	form := editForm{}
	fields := []struct {
		label string
		cur   string
		dst   *string
		set   **string
	}{
		{"First name", u.FirstName, &form.FirstName, &patch.FirstName},
		{"Last name", u.LastName, &form.LastName, &patch.LastName},
		{"Email", u.Email, &form.Email, &patch.Email},
		{"Avatar URL", u.Avatar, &form.Avatar, &patch.Avatar},
	}
	for _, f := range fields {
		v, changed, err := GetWithDefault(a.reader, f.label, f.cur, a.out)
		if err != nil {
			return err
		}
		*f.dst = v
		if changed {
			*f.set = &v
		}
	}

	if patch.IsEmpty() {
		a.println("Nothing to update.")
		return nil
	}
	if err := validate.Struct(form); err != nil {
		return a.fail(ctx, "Invalid input", formError(err))
	}

	updated, err := a.users.Update(ctx, id, patch)
	if err != nil {
		return a.fail(ctx, fmt.Sprintf("Failed to update user #%d", id), err)
	}
	a.view.MarkStale()
	a.success("User updated successfully")
	renderUser(a.out, updated)
	return a.List(ctx)
}

func (a *App) Delete(ctx context.Context, id int) error {
	ok, err := Confirm(a.reader, fmt.Sprintf("Delete user #%d?", id), a.out)
	if err != nil || !ok {
		return err
	}
	if err := a.view.Delete(ctx, id); err != nil {
		return a.fail(ctx, "Failed to delete user", err)
	}
	a.success("User #%d deleted", id)
	a.render()
	return nil
}

func (a *App) Select(_ context.Context, ids []int) error {
	a.view.Select(ids...)
	a.render()
	return nil
}

func (a *App) Unselect(_ context.Context, ids []int) error {
	a.view.Deselect(ids...)
	a.render()
	return nil
}

func (a *App) SelectAll(_ context.Context) error {
	a.view.ToggleSelectAll()
	a.render()
	return nil
}

// BulkDelete deletes the selection concurrently. Ids that failed stay
// visible and selected so the command can be retried.
func (a *App) BulkDelete(ctx context.Context) error {
	ids := a.view.Selected()
	if len(ids) == 0 {
		a.println("No users selected.")
		return nil
	}
	ok, err := Confirm(a.reader, fmt.Sprintf("Delete %d selected users?", len(ids)), a.out)
	if err != nil || !ok {
		return err
	}

	res := a.view.DeleteSelected(ctx)
	if len(res.Succeeded) > 0 {
		a.success("Deleted %d of %d selected users", len(res.Succeeded), len(ids))
	}
	a.render()
	if err := res.Err(); err != nil {
		return a.fail(ctx, "Failed to delete users", err)
	}
	return nil
}
