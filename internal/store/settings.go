package store

import (
	"context"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"
)

func (r *repo) Availability(ctx context.Context) (map[string]int, error) {
	query, args := builder.Select("day", "minutes").From(builder.Table(availabilityTable)).Query()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query availability: %w", err)
	}
	defer rows.Close()

	avail := make(map[string]int)
	for rows.Next() {
		var (
			day     string
			minutes int
		)
		if err := rows.Scan(&day, &minutes); err != nil {
			return nil, fmt.Errorf("scan availability: %w", err)
		}
		avail[day] = minutes
	}
	return avail, rows.Err()
}

func (r *repo) SetAvailability(ctx context.Context, day string, minutes int) error {
	query, args := builder.Insert(availabilityTable).
		Columns("day", "minutes").
		Values(day, minutes).
		OnConflict(entsql.ConflictColumns("day"), entsql.ResolveWithNewValues()).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save availability %s: %w", day, err)
	}
	return nil
}

func (r *repo) DeleteAvailability(ctx context.Context, day string) error {
	query, args := builder.Delete(availabilityTable).Where(entsql.EQ("day", day)).Query()
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete availability %s: %w", day, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("availability %s: %w", day, ErrNotFound)
	}
	return nil
}

func (r *repo) RevisionTable(ctx context.Context) (map[int]int, error) {
	query, args := builder.Select("priority", "sessions").From(builder.Table(revisionsTable)).Query()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query revision table: %w", err)
	}
	defer rows.Close()

	table := make(map[int]int)
	for rows.Next() {
		var priority, sessions int
		if err := rows.Scan(&priority, &sessions); err != nil {
			return nil, fmt.Errorf("scan revision count: %w", err)
		}
		table[priority] = sessions
	}
	return table, rows.Err()
}

func (r *repo) SetRevisionCount(ctx context.Context, priority, sessions int) error {
	query, args := builder.Insert(revisionsTable).
		Columns("priority", "sessions").
		Values(priority, sessions).
		OnConflict(entsql.ConflictColumns("priority"), entsql.ResolveWithNewValues()).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save revision count %d: %w", priority, err)
	}
	return nil
}

func (r *repo) Parameters(ctx context.Context) (map[string]int, error) {
	query, args := builder.Select("name", "value").From(builder.Table(parametersTable)).Query()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query parameters: %w", err)
	}
	defer rows.Close()

	params := make(map[string]int)
	for rows.Next() {
		var (
			name  string
			value int
		)
		if err := rows.Scan(&name, &value); err != nil {
			return nil, fmt.Errorf("scan parameter: %w", err)
		}
		params[name] = value
	}
	return params, rows.Err()
}

func (r *repo) SetParameter(ctx context.Context, name string, value int, description string) error {
	query, args := builder.Insert(parametersTable).
		Columns("name", "value", "description").
		Values(name, value, nullString(description)).
		OnConflict(entsql.ConflictColumns("name"), entsql.ResolveWithNewValues()).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save parameter %s: %w", name, err)
	}
	return nil
}

// EnsureDefaults inserts each default row unless its key already exists.
func (r *repo) EnsureDefaults(ctx context.Context, d Defaults) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	insert := func(table, conflict string, cols []string, vals ...any) error {
		query, args := builder.Insert(table).
			Columns(cols...).
			Values(vals...).
			OnConflict(entsql.ConflictColumns(conflict), entsql.DoNothing()).
			Query()
		_, err := tx.ExecContext(ctx, query, args...)
		return err
	}

	for name, value := range d.Parameters {
		if err := insert(parametersTable, "name", []string{"name", "value", "description"},
			name, value, nullString(d.Descriptions[name])); err != nil {
			return fmt.Errorf("seed parameter %s: %w", name, err)
		}
	}
	for priority, sessions := range d.Revisions {
		if err := insert(revisionsTable, "priority", []string{"priority", "sessions"}, priority, sessions); err != nil {
			return fmt.Errorf("seed revision count %d: %w", priority, err)
		}
	}
	for day, minutes := range d.Availability {
		if err := insert(availabilityTable, "day", []string{"day", "minutes"}, day, minutes); err != nil {
			return fmt.Errorf("seed availability %s: %w", day, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit defaults: %w", err)
	}
	return nil
}
