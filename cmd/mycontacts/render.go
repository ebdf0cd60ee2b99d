package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"gopkg.in/yaml.v3"

	"myContacts/models"
)

const (
	formatTable = "table"
	formatJSON  = "json"
	formatYAML  = "yaml"
)

var headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
var cellStyle = lipgloss.NewStyle().Padding(0, 1)

type formatter struct {
	kind string
}

func newFormatter(kind string) (*formatter, error) {
	switch kind {
	case formatTable, formatJSON, formatYAML:
		return &formatter{kind: kind}, nil
	}
	return nil, fmt.Errorf("unknown output format %q", kind)
}

// Contacts writes list in the formatter's format. JSON and YAML always
// produce a list, even when it is empty.
func (f *formatter) Contacts(w io.Writer, list []models.Contact) error {
	if list == nil {
		list = []models.Contact{}
	}
	switch f.kind {
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(list)
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(list); err != nil {
			return err
		}
		return enc.Close()
	}
	if len(list) == 0 {
		_, err := fmt.Fprintln(w, "No contacts found")
		return err
	}
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("ID", "Name", "Job", "Location", "Contact No.").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	for _, c := range list {
		t.Row(strconv.FormatInt(c.ID, 10), c.Name, c.Job, c.Location, c.Contact)
	}
	_, err := fmt.Fprintln(w, t.Render())
	return err
}
