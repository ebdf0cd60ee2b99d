package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"myContacts/models"
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// filterClause turns a ContactFilter into a WHERE fragment and its arguments.
// The column name never comes from user text; it is picked from a fixed set.
func filterClause(f models.ContactFilter) (string, []any, error) {
	if f.Prefix == "" {
		return "", nil, nil
	}
	if !f.Column.Valid() {
		return "", nil, fmt.Errorf("unknown search column %q", f.Column)
	}
	return string(f.Column) + ` LIKE ? ESCAPE '\'`, []any{likeEscaper.Replace(f.Prefix) + "%"}, nil
}

// List returns the contacts matching filter ordered by name, then id.
func (r *ContactRepository) List(ctx context.Context, filter models.ContactFilter) ([]models.Contact, error) {
	where, args, err := filterClause(filter)
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	q := `SELECT id, name, job, location, contact FROM contacts`
	if where != "" {
		q += ` WHERE ` + where
	}
	q += ` ORDER BY name ASC, id ASC`

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanContactRows(rows)
}

func scanContactRows(rows *sql.Rows) ([]models.Contact, error) {
	var out []models.Contact
	for rows.Next() {
		var c models.Contact
		if err := rows.Scan(&c.ID, &c.Name, &c.Job, &c.Location, &c.Contact); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
