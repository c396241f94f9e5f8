// Package store persists template documents.
//
// Two backends implement [Store]: [FileStore] keeps one TOML file per
// template in a directory and backs the CLI; [MongoStore] keeps templates in
// a MongoDB collection and backs the API server when it runs with
// --mongo-uri.
package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/jappaper/pkg/errors"
	"github.com/matzehuels/jappaper/pkg/template"
)

// ErrNotFound is wrapped by every error about a template id that does not
// exist.
var ErrNotFound = errors.New(errors.ErrCodeTemplateNotFound, "template not found")

// Store is a collection of template documents keyed by id.
type Store interface {
	// Get returns the template with the given id.
	Get(ctx context.Context, id string) (*template.Document, error)
	// Put validates and saves doc. An empty ID is replaced with a new
	// UUID, and UpdatedAt is set to the current time; both are written back
	// to doc.
	Put(ctx context.Context, doc *template.Document) error
	// Delete removes a template.
	Delete(ctx context.Context, id string) error
	// List returns every template, most recently updated first.
	List(ctx context.Context) ([]*template.Document, error)
	Close() error
}

// prepare validates doc and stamps its id and update time.
func prepare(doc *template.Document, now time.Time) error {
	if doc.ID == "" {
		doc.ID = uuid.NewString()
	}
	if err := errors.ValidateTemplateID(doc.ID); err != nil {
		return err
	}
	doc.SetDefaults()
	if err := doc.Validate(); err != nil {
		return err
	}
	doc.UpdatedAt = now.UTC().Truncate(time.Millisecond)
	return nil
}
