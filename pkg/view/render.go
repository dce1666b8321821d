package view

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/platinummonkey/advocates/pkg/advocates"
)

var columns = []string{
	"First Name",
	"Last Name",
	"City",
	"Degree",
	"Specialties",
	"Years of Experience",
	"Phone Number",
}

// RenderTable writes the search header and the result table for s
func RenderTable(w io.Writer, s State) error {
	if _, err := fmt.Fprintf(w, "Searching for: %s\nShowing %d Providers\n\n", s.Query, len(s.Rows)); err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(columns, "\t"))
	for _, a := range s.Rows {
		fmt.Fprintln(tw, strings.Join(row(a), "\t"))
	}
	return tw.Flush()
}

func row(a advocates.Advocate) []string {
	return []string{
		a.FirstName,
		a.LastName,
		a.City,
		a.Degree,
		strings.Join(a.Specialties, ", "),
		fmt.Sprintf("%d", a.YearsOfExperience),
		advocates.FormatPhone(a.PhoneNumber),
	}
}
