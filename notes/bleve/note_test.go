package bleve

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Allan0411/Notes-API/notes"
)

func createIndex(t *testing.T) (*NoteIndex, func()) {
	dir, err := ioutil.TempDir("", "")
	if err != nil {
		t.Fatal("could not create tmp dir:", err)
	}

	index := &NoteIndex{}
	if err := index.Open(filepath.Join(dir, "index")); err != nil {
		os.RemoveAll(dir)
		t.Fatal("could not open index:", err)
	}

	return index, func() {
		if err := index.Close(); err != nil {
			t.Log(err)
		}
		if err := os.RemoveAll(dir); err != nil {
			t.Log(err)
		}
	}
}

func TestNoteIndexSearch(t *testing.T) {
	index, f := createIndex(t)
	defer f()

	docs := []notes.Note{
		{ID: 1, Title: "Grocery list", TextContents: "milk and eggs"},
		{ID: 2, Title: "Meeting notes", TextContents: "milk the new feature"},
		{ID: 3, Title: "Grocery budget", TextContents: "numbers"},
	}
	for i := range docs {
		require.NoError(t, index.Index(&docs[i]))
	}

	all := []int{1, 2, 3}

	tts := map[string]struct {
		q        string
		ids      []int
		expected []int
	}{
		"match in title": {
			q:        "grocery",
			ids:      all,
			expected: []int{1, 3},
		},
		"match in text": {
			q:        "milk",
			ids:      all,
			expected: []int{1, 2},
		},
		"restricted to readable ids": {
			q:        "milk",
			ids:      []int{2},
			expected: []int{2},
		},
		"no match": {
			q:        "holiday",
			ids:      all,
			expected: []int{},
		},
	}

	for name, tt := range tts {
		t.Run(name, func(t *testing.T) {
			got, err := index.Search(tt.q, tt.ids)
			require.NoError(t, err)
			assert.ElementsMatch(t, tt.expected, got)
		})
	}
}

func TestNoteIndexDelete(t *testing.T) {
	index, f := createIndex(t)
	defer f()

	note := notes.Note{ID: 1, Title: "Grocery list"}
	require.NoError(t, index.Index(&note))
	require.NoError(t, index.Delete(note.ID))

	got, err := index.Search("grocery", []int{1})
	require.NoError(t, err)
	assert.Empty(t, got)
}
