// Package di provides dependency injection container
package di

import (
	"log/slog"

	"github.com/ssargent/pkcore/pkg/api" //nolint:depguard
	"github.com/ssargent/pkcore/pkg/storage"
)

// BankOpener opens the record bank in dir
type BankOpener func(dir string, logger *slog.Logger) (*storage.Bank, error)

// Container holds all the dependencies for the application
type Container struct {
	serverFactory api.ServerFactory
	bankOpener    BankOpener
}

// NewContainer creates a new dependency injection container
func NewContainer() *Container {
	return &Container{
		serverFactory: api.NewServerFactory(),
		bankOpener:    openBank,
	}
}

func openBank(dir string, logger *slog.Logger) (*storage.Bank, error) {
	return storage.Open(dir, storage.WithLogger(logger))
}

// GetServerFactory returns the server factory
func (c *Container) GetServerFactory() api.ServerFactory {
	return c.serverFactory
}

// SetServerFactory allows overriding the server factory (for testing)
func (c *Container) SetServerFactory(factory api.ServerFactory) {
	c.serverFactory = factory
}

// GetBankOpener returns the bank opener
func (c *Container) GetBankOpener() BankOpener {
	return c.bankOpener
}

// SetBankOpener allows overriding how banks are opened (for testing)
func (c *Container) SetBankOpener(opener BankOpener) {
	c.bankOpener = opener
}
