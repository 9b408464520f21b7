/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package storage

import (
	"errors"
	"fmt"
	standardlog "log"

	spi "github.com/credgraph/credgraph-go/spi/log"
)

// MultiError represents the errors that occurred during a bulk operation.
type MultiError interface {
	error
	Errors() []error // Errors returns the error objects for all operations.
}

var (
	// ErrStoreNotFound is returned when a store is not found.
	ErrStoreNotFound = errors.New("store not found")
	// ErrDataNotFound is returned when data is not found.
	ErrDataNotFound = errors.New("data not found")
	// ErrDuplicateKey is returned when a Batch call uses the IsNewKey PutOption with a key that already
	// exists in the database.
	ErrDuplicateKey = errors.New("duplicate key")
)

// StoreConfiguration represents the configuration of a store. It is used to declare the tag names the
// underlying database should build indexes on.
type StoreConfiguration struct {
	// TagNames is a list of Tag names to create indexes on. Tag names cannot contain any ':' characters.
	TagNames []string `json:"tagNames,omitempty"`
}

// SortOrder specifies the sort order of query results.
type SortOrder int

const (
	// SortAscending indicates that the query results must be sorted in ascending order.
	SortAscending SortOrder = iota
	// SortDescending indicates that the query results must be sorted in descending order.
	SortDescending
)

// SortOptions sets the order that results from an Iterator will be returned in. Sorting is based on the
// tag values associated with the given TagName. TagName cannot be blank.
type SortOptions struct {
	Order   SortOrder
	TagName string
}

// QueryOptions represents various options for Query calls in a store.
type QueryOptions struct {
	// PageSize sets the page size used by the Store.Query method.
	PageSize int
	// InitialPageNum sets the page for the iterator returned from Store.Query to start from.
	// InitialPageNum=0 means start from the first page.
	InitialPageNum int
	// SortOptions defines the sort order.
	SortOptions *SortOptions
}

// QueryOption represents an option for a Store.Query call.
type QueryOption func(opts *QueryOptions)

// WithPageSize sets the maximum page size for data retrievals done within the Iterator returned by the
// Query call. Paging is handled internally by the Iterator.
func WithPageSize(size int) QueryOption {
	return func(opts *QueryOptions) {
		opts.PageSize = size
	}
}

// WithInitialPageNum sets the page number for an Iterator to start from. Page number counting starts
// from 0.
func WithInitialPageNum(initialPageNum int) QueryOption {
	return func(opts *QueryOptions) {
		opts.InitialPageNum = initialPageNum
	}
}

// WithSortOrder sets the sort order used by a Store.Query call. See SortOptions for more information.
// Without this option the result order is determined by the underlying database implementation.
func WithSortOrder(sortOptions *SortOptions) QueryOption {
	return func(opts *QueryOptions) {
		opts.SortOptions = sortOptions
	}
}

// Tag represents a Name + Value pair that can be associated with a key + value pair for querying later.
// Tag names are static values a store is configured with in order to build indexes; tag values are
// dynamic. Neither can contain any ':' characters.
type Tag struct {
	Name  string `json:"name,omitempty"`
	Value string `json:"value,omitempty"`
}

// PutOptions represents options for a Put Operation.
type PutOptions struct {
	// IsNewKey is an optimization hint telling the storage provider that this key does not currently
	// exist in the database. Unexpected behaviour may occur if it is set to true for an existing key.
	IsNewKey bool `json:"isNewKey,omitempty"`
}

// Operation represents an operation to be performed in the Batch method.
type Operation struct {
	Key        string      `json:"key,omitempty"`
	Value      []byte      `json:"value,omitempty"`      // A nil value will result in a delete operation.
	Tags       []Tag       `json:"tags,omitempty"`       // Optional.
	PutOptions *PutOptions `json:"putOptions,omitempty"` // Optional. Only used for Put Operations.
}

// Provider represents a storage provider.
type Provider interface {
	// OpenStore opens a Store with the given name and returns it.
	// Store names are not case-sensitive. If name is blank, then an error will be returned.
	OpenStore(name string) (Store, error)

	// SetStoreConfig sets the configuration on a Store. The underlying database uses it to create
	// indexes that make Store.Query calls faster. OpenStore must be called first; if the store cannot
	// be found then an error wrapping ErrStoreNotFound is returned.
	SetStoreConfig(name string, config StoreConfiguration) error

	// GetStoreConfig gets the current Store configuration. It checks the underlying storage directly,
	// so it can be used to determine whether a database for the given name exists; if it does not,
	// an error wrapping ErrStoreNotFound is returned.
	GetStoreConfig(name string) (StoreConfiguration, error)

	// GetOpenStores returns all Stores opened in this Provider object's lifetime via OpenStore.
	GetOpenStores() []Store

	// Close closes all open Stores in this Provider. For persistent Store implementations, this does
	// not delete any data in the underlying databases.
	Close() error
}

// Store represents a storage database.
type Store interface {
	// Put stores the key + value pair along with the (optional) tags. If the key already exists in the
	// database, then the value and tags will be overwritten silently.
	// If key is empty or value is nil, then an error will be returned.
	Put(key string, value []byte, tags ...Tag) error

	// Get fetches the value associated with the given key.
	// If key cannot be found, then an error wrapping ErrDataNotFound will be returned.
	// If key is empty, then an error will be returned.
	Get(key string) ([]byte, error)

	// GetTags fetches all tags associated with the given key.
	// If key cannot be found, then an error wrapping ErrDataNotFound will be returned.
	GetTags(key string) ([]Tag, error)

	// GetBulk fetches the values associated with the given keys. If no data exists under a given key,
	// then a nil []byte is returned for that value; it is not considered an error.
	GetBulk(keys ...string) ([][]byte, error)

	// Query returns all data that satisfies the expression. Expression format: TagName:TagValue.
	// If TagValue is not provided, then all data associated with the TagName will be returned,
	// regardless of their tag values.
	Query(expression string, options ...QueryOption) (Iterator, error)

	// Delete deletes the key + value pair (and all tags) associated with key.
	// If key is empty, then an error will be returned.
	Delete(key string) error

	// Batch performs multiple Put and/or Delete operations in order. The Puts and Deletes follow the
	// same rules as the Put and Delete methods, except that an operation using PutOptions.IsNewKey may
	// return an error wrapping ErrDuplicateKey for a key that already exists.
	Batch(operations []Operation) error

	// Flush forces any queued up Put and/or Delete operations to execute. If the Store implementation
	// doesn't queue up operations, then this method is a no-op.
	Flush() error

	// Close closes this store object, freeing resources. It can be called repeatedly without causing
	// an error.
	Close() error
}

// Iterator allows for iteration over a collection of entries in a store.
type Iterator interface {
	// Next moves the pointer to the next entry in the iterator. It must be called before accessing the
	// first entry. It returns false if the iterator is exhausted - this is not considered an error.
	Next() (bool, error)

	// Key returns the key of the current entry.
	Key() (string, error)

	// Value returns the value of the current entry.
	Value() ([]byte, error)

	// Tags returns the tags associated with the key of the current entry.
	Tags() ([]Tag, error)

	// TotalItems returns a count of the number of entries matched by the query that generated this
	// Iterator, regardless of the page settings used.
	TotalItems() (int, error)

	// Close closes this iterator object, freeing resources.
	Close() error
}

// Close closes iterator and logs any error that occurs.
// If logger is nil, then the standard Go logger will be used.
func Close(iterator Iterator, logger spi.Logger) {
	errClose := iterator.Close()
	if errClose != nil {
		if logger == nil {
			standardlog.Println(fmt.Sprintf("failed to close iterator: %s", errClose.Error()))
		} else {
			logger.Errorf("failed to close iterator: %s", errClose.Error())
		}
	}
}
