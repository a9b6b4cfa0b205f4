package inmem

import (
	"sync"

	"github.com/Allan0411/Notes-API/notes"
)

// InMemNoteRepository keeps notes in a map. It backs the service tests.
type InMemNoteRepository struct {
	mu     sync.Mutex
	notes  map[int]notes.Note
	lastID int
}

func NewInMemNoteRepository() *InMemNoteRepository {
	return &InMemNoteRepository{
		notes: make(map[int]notes.Note),
	}
}

func (r *InMemNoteRepository) Get(id int) (notes.Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.notes[id], nil
}

func (r *InMemNoteRepository) List(ids []int) ([]notes.Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	list := make([]notes.Note, 0, len(ids))
	for _, id := range ids {
		if n, ok := r.notes[id]; ok {
			list = append(list, n)
		}
	}
	return list, nil
}

func (r *InMemNoteRepository) ListForCreator(creatorID int) ([]notes.Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var list []notes.Note
	for _, n := range r.notes {
		if n.CreatorUserID == creatorID {
			list = append(list, n)
		}
	}
	return list, nil
}

func (r *InMemNoteRepository) Upsert(n *notes.Note) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if n.ID == 0 {
		r.lastID++
		n.ID = r.lastID
	} else if n.ID > r.lastID {
		r.lastID = n.ID
	}

	r.notes[n.ID] = *n
	return nil
}

func (r *InMemNoteRepository) Delete(id int) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.notes[id]
	delete(r.notes, id)
	return ok, nil
}

// NopIndex satisfies the index interface for tests that do not search.
type NopIndex struct{}

func (NopIndex) Index(*notes.Note) error { return nil }

func (NopIndex) Delete(int) error { return nil }

func (NopIndex) Search(string, []int) ([]int, error) { return nil, nil }
