package ports

import (
	"context"
	"errors"
)

// ErrDocumentNotFound is returned by DocumentStore.Get when the named
// document has never been written.
var ErrDocumentNotFound = errors.New("document not found")

// Document names used by the application services.
const (
	DocWallets = "wallets"
	DocMarkets = "markets"
	DocPlayers = "players"
	DocConfig  = "config"
)

// DocumentStore persists whole JSON documents by name. Each service reads,
// mutates and writes back its own document; writes replace the document.
type DocumentStore interface {
	// Get returns the raw document, or ErrDocumentNotFound.
	Get(ctx context.Context, name string) ([]byte, error)

	// Put replaces the named document.
	Put(ctx context.Context, name string, data []byte) error

	// Close releases the underlying connection.
	Close() error
}
