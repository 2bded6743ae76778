package storage

import "airbnb-listings/models"

// ListingWriter is the interface any storage backend must satisfy.
type ListingWriter interface {
	Write(records []models.ListingRecord) error
	Close() error
}

// ListingReader is implemented by backends that can return the record set
// they hold, in extraction order.
type ListingReader interface {
	FetchAll() ([]models.ListingRecord, error)
}
