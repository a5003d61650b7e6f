package watch

import (
	"testing"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
)

func TestRelevant(t *testing.T) {
	tests := []struct {
		name  string
		event fsnotify.Event
		want  bool
	}{
		{"manifest write", fsnotify.Event{Name: "/lib/books/a/b/manifest.yaml", Op: fsnotify.Write}, true},
		{"manifest create", fsnotify.Event{Name: "/lib/books/a/b/manifest.yaml", Op: fsnotify.Create}, true},
		{"manifest remove", fsnotify.Event{Name: "/lib/books/a/b/manifest.yaml", Op: fsnotify.Remove}, true},
		{"manifest chmod only", fsnotify.Event{Name: "/lib/books/a/b/manifest.yaml", Op: fsnotify.Chmod}, false},
		{"other file", fsnotify.Event{Name: "/lib/books/a/b/notes.txt", Op: fsnotify.Write}, false},
		{"index document", fsnotify.Event{Name: "/lib/books/_index/authors.md", Op: fsnotify.Write}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, relevant(tt.event))
		})
	}
}
