package store

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Note is one annotated-media note.
type Note struct {
	ID        string
	Title     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Sort orders for the note list.
type Sort int

const (
	SortUpdatedDesc Sort = iota
	SortCreatedDesc
	SortTitleAsc
)

// Query filters and orders the note list. A zero Query lists everything,
// most recently updated first.
type Query struct {
	Search string // case-insensitive title substring
	Sort   Sort
}

func (db *DB) CreateNote(title string) (*Note, error) {
	now := time.Now()
	n := &Note{
		ID:        uuid.NewString(),
		Title:     title,
		CreatedAt: now,
		UpdatedAt: now,
	}
	_, err := db.conn.Exec(
		`INSERT INTO notes (id, title, created_at, updated_at) VALUES (?, ?, ?, ?)`,
		n.ID, n.Title, n.CreatedAt, n.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("create note: %w", err)
	}
	db.log.Debug().Str("note", n.ID).Msg("note created")
	return n, nil
}

func (db *DB) GetNote(id string) (*Note, error) {
	n := &Note{}
	err := db.conn.QueryRow(
		`SELECT id, title, created_at, updated_at FROM notes WHERE id = ?`, id,
	).Scan(&n.ID, &n.Title, &n.CreatedAt, &n.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("get note: %w", err)
	}
	return n, nil
}

func (db *DB) ListNotes(q Query) ([]Note, error) {
	order := "updated_at DESC"
	switch q.Sort {
	case SortCreatedDesc:
		order = "created_at DESC"
	case SortTitleAsc:
		order = "title COLLATE NOCASE ASC"
	}

	query := `SELECT id, title, created_at, updated_at FROM notes`
	args := []any{}
	if q.Search != "" {
		query += ` WHERE title LIKE ? COLLATE NOCASE`
		args = append(args, "%"+q.Search+"%")
	}
	query += ` ORDER BY ` + order

	rows, err := db.conn.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	defer rows.Close()

	var notes []Note
	for rows.Next() {
		var n Note
		if err := rows.Scan(&n.ID, &n.Title, &n.CreatedAt, &n.UpdatedAt); err != nil {
			return nil, err
		}
		notes = append(notes, n)
	}
	return notes, rows.Err()
}

// RenameNote updates the note title.
func (db *DB) RenameNote(id, title string) error {
	_, err := db.conn.Exec(
		`UPDATE notes SET title = ?, updated_at = ? WHERE id = ?`,
		title, time.Now(), id,
	)
	if err != nil {
		return fmt.Errorf("rename note: %w", err)
	}
	return nil
}

// DeleteNote removes the note, its blocks, and their uploaded media files.
func (db *DB) DeleteNote(id string) error {
	blocks, err := db.ListBlocks(id)
	if err != nil {
		return err
	}

	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM blocks WHERE note_id = ?`, id); err != nil {
		return fmt.Errorf("delete blocks: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM notes WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete note: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return err
	}

	for _, b := range blocks {
		db.removeMedia(b.MediaPath)
	}
	db.log.Debug().Str("note", id).Int("blocks", len(blocks)).Msg("note deleted")
	return nil
}

func (db *DB) touchNote(id string) error {
	_, err := db.conn.Exec(`UPDATE notes SET updated_at = ? WHERE id = ?`, time.Now(), id)
	return err
}
