package repository

import "context"

// Factory describes access to different domain repositories.
type Factory interface {
	Orders() OrderRepository
	Locations() LocationRepository
	Customers() CustomerRepository
	Archive() ArchiveRepository
	Categories() CategoryRepository
	Products() ProductRepository
	OfferMessages() OfferMessageRepository
	HealthCheck(ctx context.Context) error
	Close(ctx context.Context) error
}
