package repository

import (
	"database/sql"
	"errors"
)

// ErrNotFound reports that no editor row exists for the requested id.
var ErrNotFound = errors.New("editor row not found")

// emptyResultPlaceholder is written instead of an empty result so the plugin
// always has something to show the editor.
const emptyResultPlaceholder = "لا توجد نتيجة تم إنشاؤها"

// EditorRepository reads and writes the wpl3_editor_tool table owned by the
// WordPress installation. One parameterized statement per call, no
// transactions; concurrent writers follow last-write-wins.
type EditorRepository struct {
	db *sql.DB
}

func NewEditorRepository(db *sql.DB) *EditorRepository {
	return &EditorRepository{db: db}
}

func (r *EditorRepository) Ping() error {
	return r.db.Ping()
}

func (r *EditorRepository) FetchText(id int64) (string, error) {
	var text sql.NullString
	err := r.db.QueryRow(`
		SELECT entered_text FROM wpl3_editor_tool WHERE id = ?
	`, id).Scan(&text)

	if err == sql.ErrNoRows {
		return "", ErrNotFound
	}

	if err != nil {
		return "", err
	}

	return text.String, nil
}

func (r *EditorRepository) PersistResult(id int64, result string) error {
	if result == "" {
		result = emptyResultPlaceholder
	}

	_, err := r.db.Exec(`
		UPDATE wpl3_editor_tool SET result = ? WHERE id = ?
	`, result, id)
	return err
}
