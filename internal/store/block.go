package store

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// Block kinds.
const (
	BlockImage = "image"
	BlockVideo = "video"
)

// Block is a media asset attached to a note, together with its annotation
// set. The annotation set is created empty with the block, replaced
// wholesale when an editing session is saved, and removed with the block.
type Block struct {
	ID          string
	NoteID      string
	Kind        string
	MediaPath   string // path under the media dir, relative
	SortOrder   int
	Annotations []byte // persisted annotation set, JSON
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// AddBlock uploads the media file at srcPath into the media directory and
// attaches it to the note as a new block with an empty annotation set.
func (db *DB) AddBlock(noteID, kind, srcPath string) (*Block, error) {
	rel, err := db.importMedia(srcPath)
	if err != nil {
		return nil, err
	}

	var order int
	err = db.conn.QueryRow(
		`SELECT COALESCE(MAX(sort_order)+1, 0) FROM blocks WHERE note_id = ?`, noteID,
	).Scan(&order)
	if err != nil {
		return nil, fmt.Errorf("next sort order: %w", err)
	}

	now := time.Now()
	b := &Block{
		ID:          uuid.NewString(),
		NoteID:      noteID,
		Kind:        kind,
		MediaPath:   rel,
		SortOrder:   order,
		Annotations: []byte(`[]`),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	_, err = db.conn.Exec(
		`INSERT INTO blocks (id, note_id, kind, media_path, sort_order, annotations, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		b.ID, b.NoteID, b.Kind, b.MediaPath, b.SortOrder, string(b.Annotations), b.CreatedAt, b.UpdatedAt,
	)
	if err != nil {
		db.removeMedia(rel)
		return nil, fmt.Errorf("insert block: %w", err)
	}

	if err := db.touchNote(noteID); err != nil {
		return nil, err
	}
	db.log.Debug().Str("block", b.ID).Str("media", rel).Msg("block added")
	return b, nil
}

func (db *DB) GetBlock(id string) (*Block, error) {
	b := &Block{}
	var ann string
	err := db.conn.QueryRow(
		`SELECT id, note_id, kind, media_path, sort_order, annotations, created_at, updated_at
		 FROM blocks WHERE id = ?`, id,
	).Scan(&b.ID, &b.NoteID, &b.Kind, &b.MediaPath, &b.SortOrder, &ann, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("get block: %w", err)
	}
	b.Annotations = []byte(ann)
	return b, nil
}

func (db *DB) ListBlocks(noteID string) ([]Block, error) {
	rows, err := db.conn.Query(
		`SELECT id, note_id, kind, media_path, sort_order, annotations, created_at, updated_at
		 FROM blocks WHERE note_id = ? ORDER BY sort_order ASC`, noteID,
	)
	if err != nil {
		return nil, fmt.Errorf("list blocks: %w", err)
	}
	defer rows.Close()

	var blocks []Block
	for rows.Next() {
		var b Block
		var ann string
		if err := rows.Scan(&b.ID, &b.NoteID, &b.Kind, &b.MediaPath, &b.SortOrder, &ann, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, err
		}
		b.Annotations = []byte(ann)
		blocks = append(blocks, b)
	}
	return blocks, rows.Err()
}

// SetAnnotations replaces the block's persisted annotation set with the
// snapshot handed back by a saved editing session.
func (db *DB) SetAnnotations(blockID string, data []byte) error {
	var noteID string
	err := db.conn.QueryRow(`SELECT note_id FROM blocks WHERE id = ?`, blockID).Scan(&noteID)
	if err != nil {
		return fmt.Errorf("set annotations: %w", err)
	}
	_, err = db.conn.Exec(
		`UPDATE blocks SET annotations = ?, updated_at = ? WHERE id = ?`,
		string(data), time.Now(), blockID,
	)
	if err != nil {
		return fmt.Errorf("set annotations: %w", err)
	}
	return db.touchNote(noteID)
}

// DeleteBlock removes the block and its uploaded media file.
func (db *DB) DeleteBlock(id string) error {
	b, err := db.GetBlock(id)
	if err != nil {
		return err
	}
	if _, err := db.conn.Exec(`DELETE FROM blocks WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete block: %w", err)
	}
	db.removeMedia(b.MediaPath)
	return db.touchNote(b.NoteID)
}

// MediaFile resolves a block's media path to an absolute path.
func (db *DB) MediaFile(b *Block) string {
	return filepath.Join(db.MediaDir(), b.MediaPath)
}

// importMedia copies the source file into the media directory under a
// fresh UUID name, keeping the original extension.
func (db *DB) importMedia(srcPath string) (string, error) {
	src, err := os.Open(srcPath)
	if err != nil {
		return "", fmt.Errorf("open media: %w", err)
	}
	defer src.Close()

	name := uuid.NewString() + filepath.Ext(srcPath)
	dst, err := os.Create(filepath.Join(db.MediaDir(), name))
	if err != nil {
		return "", fmt.Errorf("create media copy: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(dst.Name())
		return "", fmt.Errorf("copy media: %w", err)
	}
	return name, nil
}

func (db *DB) removeMedia(rel string) {
	if rel == "" {
		return
	}
	if err := os.Remove(filepath.Join(db.MediaDir(), rel)); err != nil && !os.IsNotExist(err) {
		db.log.Warn().Err(err).Str("media", rel).Msg("failed to remove media file")
	}
}
