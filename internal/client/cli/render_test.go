package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/dmitrijs2005/userdesk/internal/client/directory"
	"github.com/dmitrijs2005/userdesk/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderTable(t *testing.T) {
	var buf bytes.Buffer
	renderTable(&buf, []models.User{
		{ID: 1, FirstName: "George", LastName: "Bluth", Email: "george.bluth@reqres.in"},
		{ID: 12, FirstName: "Rachel", LastName: "Howell", Email: "rachel.howell@reqres.in"},
	}, []int{12})

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "FIRST NAME")
	assert.True(t, strings.HasPrefix(lines[1], "[ ]"))
	assert.True(t, strings.HasPrefix(lines[2], "[x]"))
	assert.Equal(t, strings.Index(lines[1], "george"), strings.Index(lines[2], "rachel"), "columns aligned")
}

type staticSource struct{ page models.UserPage }

func (s staticSource) List(context.Context, int) (models.UserPage, error) { return s.page, nil }
func (s staticSource) Delete(context.Context, int) error                  { return nil }
func (s staticSource) BulkDelete(context.Context, []int) models.BulkDeleteResult {
	return models.NewBulkDeleteResult()
}

func TestRenderFooter(t *testing.T) {
	v := directory.NewListView(staticSource{page: models.UserPage{
		Page: 1, TotalPages: 2, Total: 12,
		Items: []models.User{{ID: 1, FirstName: "A"}, {ID: 2, FirstName: "B"}},
	}})
	require.NoError(t, v.Refresh(context.Background()))
	v.SetSearch("a")
	v.Select(1)

	var buf bytes.Buffer
	renderFooter(&buf, v)

	assert.Equal(t, `Showing 1 of 12 users | page 1/2 | sort first_name asc | search "a" | 1 selected`+"\n", buf.String())
}

func TestRenderUser(t *testing.T) {
	var buf bytes.Buffer
	renderUser(&buf, models.User{ID: 4, FirstName: "Eve", LastName: "Holt", Email: "eve.holt@reqres.in"})

	assert.Contains(t, buf.String(), "First name:  Eve")
	assert.Contains(t, buf.String(), "Email:       eve.holt@reqres.in")
}
