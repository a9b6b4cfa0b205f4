package notes

import (
	"encoding/json"
	"time"

	"github.com/Allan0411/Notes-API/collab"
)

// Note is a user note. The rich content fields (drawings, checklist
// items, formatting) are stored as raw JSON: the server never looks
// inside them, it only carries them between client and store.
type Note struct {
	ID             int             `json:"id"`
	Title          string          `json:"title"`
	TextContents   string          `json:"textContents"`
	Drawings       json.RawMessage `json:"drawings,omitempty"`
	ChecklistItems json.RawMessage `json:"checklistItems,omitempty"`
	Formatting     json.RawMessage `json:"formatting,omitempty"`

	CreatedAt    time.Time `json:"createdAt"`
	LastAccessed time.Time `json:"lastAccessed"`

	Archived bool `json:"archived"`
	Private  bool `json:"private"`

	CreatorUserID int `json:"creatorUserId"`
}

// Repository is the durable note store.
type Repository interface {
	// Get returns the note with the given id, or the zero Note.
	Get(id int) (Note, error)

	// List returns the notes with the given ids, skipping absent ones.
	List(ids []int) ([]Note, error)

	// ListForCreator returns all notes created by the user.
	ListForCreator(creatorID int) ([]Note, error)

	// Upsert inserts the note, assigning an id if it has none, or
	// overwrites it.
	Upsert(n *Note) error

	// Delete removes the note. It reports whether a row was actually
	// removed.
	Delete(id int) (bool, error)
}

// Index is the full-text search index over note titles and text.
type Index interface {
	Index(n *Note) error
	Delete(id int) error

	// Search returns the ids of the indexed notes matching q, restricted
	// to the given ids.
	Search(q string, ids []int) ([]int, error)
}

// Getter adapts a Repository to the view the access control engine
// needs.
type Getter struct {
	repo Repository
}

func NewGetter(repo Repository) Getter {
	return Getter{repo: repo}
}

func (g Getter) Note(id int) (collab.Note, error) {
	n, err := g.repo.Get(id)
	if err != nil {
		return collab.Note{}, err
	}
	return collab.Note{
		ID:        n.ID,
		CreatorID: n.CreatorUserID,
		Archived:  n.Archived,
		Private:   n.Private,
	}, nil
}
