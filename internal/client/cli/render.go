package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/dmitrijs2005/userdesk/internal/client/directory"
	"github.com/dmitrijs2005/userdesk/internal/client/models"
)

// renderTable prints users as aligned columns. Selected rows carry [x].
func renderTable(w io.Writer, users []models.User, selected []int) {
	sel := make(map[int]bool, len(selected))
	for _, id := range selected {
		sel[id] = true
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "\tID\tFIRST NAME\tLAST NAME\tEMAIL")
	for _, u := range users {
		mark := "[ ]"
		if sel[u.ID] {
			mark = "[x]"
		}
		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\t%s\n", mark, u.ID, u.FirstName, u.LastName, u.Email)
	}
	_ = tw.Flush()
}

// renderFooter prints the summary line under the table.
func renderFooter(w io.Writer, v *directory.ListView) {
	page, data := v.Page()
	q := v.Query()

	parts := []string{
		v.Summary(),
		fmt.Sprintf("page %d/%d", page, max(data.TotalPages, 1)),
		"sort " + q.Sort.String(),
	}
	if q.Search != "" {
		parts = append(parts, fmt.Sprintf("search %q", q.Search))
	}
	if n := len(v.Selected()); n > 0 {
		parts = append(parts, fmt.Sprintf("%d selected", n))
	}
	fmt.Fprintln(w, strings.Join(parts, " | "))
}

func renderUser(w io.Writer, u models.User) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "ID:\t%d\n", u.ID)
	fmt.Fprintf(tw, "First name:\t%s\n", u.FirstName)
	fmt.Fprintf(tw, "Last name:\t%s\n", u.LastName)
	fmt.Fprintf(tw, "Email:\t%s\n", u.Email)
	fmt.Fprintf(tw, "Avatar:\t%s\n", u.Avatar)
	_ = tw.Flush()
}
