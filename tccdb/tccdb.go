// Package tccdb reads privacy permission decisions from a TCC database.
//
// Reading either database needs Full Disk Access. The package only ever
// opens databases read-only.
package tccdb

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// SystemPath is the machine-wide TCC database.
const SystemPath = "/Library/Application Support/com.apple.TCC/TCC.db"

// UserPath returns the per-user TCC database under home.
func UserPath(home string) string {
	return filepath.Join(home, "Library", "Application Support", "com.apple.TCC", "TCC.db")
}

// Auth is the access.auth_value column.
type Auth int

const (
	Denied Auth = iota
	Unknown
	Allowed
	Limited
)

func (a Auth) String() string {
	switch a {
	case Denied:
		return "denied"
	case Unknown:
		return "unknown"
	case Allowed:
		return "allowed"
	case Limited:
		return "limited"
	}
	return fmt.Sprintf("auth(%d)", int(a))
}

// Granted reports whether a counts as access.
func (a Auth) Granted() bool { return a >= Allowed }

// Entry is one row of the access table.
type Entry struct {
	Service    string    `json:"service"`
	Client     string    `json:"client"`
	ClientType int       `json:"client_type"`
	Auth       Auth      `json:"auth_value"`
	AuthReason int       `json:"auth_reason"`
	LastUsed   time.Time `json:"last_used,omitzero"`
	Allowed    bool      `json:"allowed"`
}

// DB is a read-only view of a TCC database.
type DB struct {
	db *sql.DB
}

// Open opens the database at path read-only and checks that it can be read.
func Open(ctx context.Context, path string) (*DB, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("cannot access TCC database (need Full Disk Access): %w", err)
	}
	db, err := sql.Open("sqlite3", "file:"+path+"?mode=ro")
	if err != nil {
		return nil, fmt.Errorf("open TCC database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("cannot read TCC database (need Full Disk Access): %w", err)
	}
	return New(db), nil
}

// New wraps an already open database handle.
func New(db *sql.DB) *DB {
	return &DB{db: db}
}

// Close closes the database.
func (d *DB) Close() error {
	return d.db.Close()
}

// Status returns the strongest decision recorded for service and client.
// A missing row is reported as Unknown.
func (d *DB) Status(ctx context.Context, service, client string) (Auth, error) {
	const query = `
		SELECT auth_value
		FROM access
		WHERE service = ? AND client = ?
		ORDER BY auth_value DESC
		LIMIT 1`

	var auth Auth
	err := d.db.QueryRowContext(ctx, query, service, client).Scan(&auth)
	if errors.Is(err, sql.ErrNoRows) {
		return Unknown, nil
	}
	if err != nil {
		return Unknown, fmt.Errorf("query %s for %s: %w", service, client, err)
	}
	return auth, nil
}

const selectEntries = `
	SELECT service, client, client_type, auth_value, auth_reason,
	       COALESCE(last_modified, 0)
	FROM access`

// All returns every row, ordered by service and client.
func (d *DB) All(ctx context.Context) ([]Entry, error) {
	rows, err := d.db.QueryContext(ctx, selectEntries+` ORDER BY service, client`)
	if err != nil {
		return nil, fmt.Errorf("list permissions: %w", err)
	}
	return scanEntries(rows)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// ForClient returns the rows for client. Rows whose client is a path ending
// in the base name of client, or a bundle ID whose last component is that
// name, also match, so an executable path finds entries recorded for its
// bundle.
func (d *DB) ForClient(ctx context.Context, client string) ([]Entry, error) {
	base := likeEscaper.Replace(filepath.Base(client))
	rows, err := d.db.QueryContext(ctx, selectEntries+`
		WHERE client = ? OR client LIKE ? ESCAPE '\' OR client LIKE ? ESCAPE '\'
		ORDER BY service`, client, "%/"+base, "%."+base)
	if err != nil {
		return nil, fmt.Errorf("list permissions for %s: %w", client, err)
	}
	return scanEntries(rows)
}

func scanEntries(rows *sql.Rows) ([]Entry, error) {
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var modified int64
		if err := rows.Scan(&e.Service, &e.Client, &e.ClientType, &e.Auth, &e.AuthReason, &modified); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		if modified > 0 {
			e.LastUsed = time.Unix(modified, 0).UTC()
		}
		e.Allowed = e.Auth.Granted()
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Format renders entries as "table" (the default) or "json".
func Format(entries []Entry, format string) (string, error) {
	switch format {
	case "json":
		if entries == nil {
			entries = []Entry{}
		}
		data, err := json.MarshalIndent(entries, "", "  ")
		if err != nil {
			return "", err
		}
		return string(data), nil

	case "table", "":
		var b strings.Builder
		w := tabwriter.NewWriter(&b, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "SERVICE\tCLIENT\tAUTH\tMODIFIED")
		for _, e := range entries {
			modified := "-"
			if !e.LastUsed.IsZero() {
				modified = e.LastUsed.Format(time.DateTime)
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
				strings.TrimPrefix(e.Service, "kTCCService"), shortClient(e.Client), e.Auth, modified)
		}
		if err := w.Flush(); err != nil {
			return "", err
		}
		return b.String(), nil
	}
	return "", fmt.Errorf("unknown format %q", format)
}

// shortClient reduces a path inside an application bundle to the bundle name.
func shortClient(client string) string {
	for _, part := range strings.Split(client, "/") {
		if strings.HasSuffix(part, ".app") {
			return strings.TrimSuffix(part, ".app")
		}
	}
	return client
}
