package mysql

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConnectionString(t *testing.T) {
	dsn := connectionString("localhost", "3306", "notes", "secret", "notesapi")

	assert.Equal(
		t,
		"notes:secret@tcp(localhost:3306)/notesapi?charset=utf8&parseTime=True&loc=Local&clientFoundRows=true",
		dsn,
	)

	// Same-value updates must still count as matched rows, or the
	// repositories would take them for missing ones.
	assert.Contains(t, dsn, "clientFoundRows=true")
}
