// Package documents loads and saves the JSON documents behind the
// application services.
package documents

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/alejandrodnm/soloqbet/internal/domain"
	"github.com/alejandrodnm/soloqbet/internal/ports"
)

// Load decodes the named document and replaces *v with it. It reports false,
// leaving *v untouched, when the document is absent or cannot be parsed;
// callers then start from the default shape. Store failures are returned as
// *domain.PersistenceError.
func Load[T any](ctx context.Context, store ports.DocumentStore, name string, v *T) (bool, error) {
	data, err := store.Get(ctx, name)
	if errors.Is(err, ports.ErrDocumentNotFound) {
		return false, nil
	}
	if err != nil {
		return false, &domain.PersistenceError{Doc: name, Op: "load", Err: err}
	}
	var decoded T
	if err := json.Unmarshal(data, &decoded); err != nil {
		slog.Warn("unparseable document, starting from defaults", "doc", name, "err", err)
		return false, nil
	}
	*v = decoded
	return true, nil
}

// Save encodes v and replaces the named document.
func Save(ctx context.Context, store ports.DocumentStore, name string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return &domain.PersistenceError{Doc: name, Op: "encode", Err: err}
	}
	if err := store.Put(ctx, name, data); err != nil {
		return &domain.PersistenceError{Doc: name, Op: "save", Err: err}
	}
	return nil
}
