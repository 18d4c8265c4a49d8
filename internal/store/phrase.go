package store

import (
	"database/sql"
	"errors"
	"time"
)

// ErrNotFound is returned when a requested resource does not exist.
var ErrNotFound = errors.New("not found")

// Phrase represents a gesture-to-phrase binding stored in the database.
type Phrase struct {
	ID        string
	Gesture   string
	Phrase    string
	Enabled   bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// PhraseRepository provides CRUD operations for phrase mappings.
type PhraseRepository struct {
	db *sql.DB
}

// Phrases returns the phrase repository for this store.
func (s *Store) Phrases() *PhraseRepository {
	return &PhraseRepository{db: s.db}
}

// Create inserts a new phrase mapping into the database.
func (r *PhraseRepository) Create(p *Phrase) error {
	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now

	enabled := 0
	if p.Enabled {
		enabled = 1
	}

	_, err := r.db.Exec(
		`INSERT INTO phrases (id, gesture, phrase, enabled, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		p.ID, p.Gesture, p.Phrase, enabled, p.CreatedAt, p.UpdatedAt,
	)
	return err
}

// GetByID retrieves a phrase mapping by its ID.
func (r *PhraseRepository) GetByID(id string) (*Phrase, error) {
	return r.scanOne(r.db.QueryRow(
		`SELECT id, gesture, phrase, enabled, created_at, updated_at
		 FROM phrases WHERE id = ?`,
		id,
	))
}

// GetByGesture retrieves a phrase mapping by its gesture identifier.
func (r *PhraseRepository) GetByGesture(gesture string) (*Phrase, error) {
	return r.scanOne(r.db.QueryRow(
		`SELECT id, gesture, phrase, enabled, created_at, updated_at
		 FROM phrases WHERE gesture = ?`,
		gesture,
	))
}

// Lookup resolves a gesture identifier to its phrase text. It returns
// ("", false) for unmapped, disabled, or empty phrases, which matches the
// dispatch gate's contract: absence of a usable phrase withholds dispatch.
func (r *PhraseRepository) Lookup(gesture string) (string, bool) {
	p, err := r.GetByGesture(gesture)
	if err != nil || !p.Enabled || p.Phrase == "" {
		return "", false
	}
	return p.Phrase, true
}

// List retrieves all phrase mappings from the database.
func (r *PhraseRepository) List() ([]*Phrase, error) {
	rows, err := r.db.Query(
		`SELECT id, gesture, phrase, enabled, created_at, updated_at
		 FROM phrases ORDER BY gesture`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var phrases []*Phrase
	for rows.Next() {
		p := &Phrase{}
		var enabled int

		err := rows.Scan(&p.ID, &p.Gesture, &p.Phrase, &enabled, &p.CreatedAt, &p.UpdatedAt)
		if err != nil {
			return nil, err
		}

		p.Enabled = enabled != 0
		phrases = append(phrases, p)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return phrases, nil
}

// Update updates an existing phrase mapping in the database.
func (r *PhraseRepository) Update(p *Phrase) error {
	p.UpdatedAt = time.Now()

	enabled := 0
	if p.Enabled {
		enabled = 1
	}

	result, err := r.db.Exec(
		`UPDATE phrases SET gesture = ?, phrase = ?, enabled = ?, updated_at = ?
		 WHERE id = ?`,
		p.Gesture, p.Phrase, enabled, p.UpdatedAt, p.ID,
	)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

// Delete removes a phrase mapping from the database by its ID.
func (r *PhraseRepository) Delete(id string) error {
	result, err := r.db.Exec(`DELETE FROM phrases WHERE id = ?`, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *PhraseRepository) scanOne(row *sql.Row) (*Phrase, error) {
	p := &Phrase{}
	var enabled int

	err := row.Scan(&p.ID, &p.Gesture, &p.Phrase, &enabled, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	p.Enabled = enabled != 0
	return p, nil
}
