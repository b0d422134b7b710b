// Package api provides interfaces for dependency injection
package api

import (
	"context"

	"github.com/segmentio/ksuid"

	"github.com/ssargent/pkcore/pkg/codec"
	"github.com/ssargent/pkcore/pkg/storage"
)

// Bank is the record store the server reads and writes
type Bank interface {
	Put(r codec.Record) (ksuid.KSUID, error)
	Get(id ksuid.KSUID) (codec.Record, error)
	Meta(id ksuid.KSUID) (storage.Meta, error)
	Delete(id ksuid.KSUID) error
	List() ([]storage.Meta, error)
	BySpecies(species uint16) ([]storage.Meta, error)
	Count() (int, error)
}

// ServerStarter defines the interface for starting the API server
type ServerStarter interface {
	// StartServer serves the bank until ctx is cancelled
	StartServer(ctx context.Context, bank Bank, deps Deps, config ServerConfig) error
}

// ServerFactory creates server instances
type ServerFactory interface {
	// CreateServerStarter creates a server starter
	CreateServerStarter() ServerStarter
}
