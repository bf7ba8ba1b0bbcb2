package dictionary

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"github.com/botandrose/red-cap/pkg/record"
)

// Loader fetches metadata or record exports from a Source. Implementations
// live under internal/loader; the root package exposes a constructor.
type Loader interface {
	Load(ctx context.Context, src Source) (Document, error)
}

// LoaderOptions configures how a Loader resolves sources.
type LoaderOptions struct {
	// FileSystem backs SourceKindFS sources. Nil disables them.
	FileSystem fs.FS
}

// LoaderOption mutates LoaderOptions prior to construction.
type LoaderOption func(*LoaderOptions)

// WithFileSystem injects an fs.FS used for SourceFromFS locations.
func WithFileSystem(files fs.FS) LoaderOption {
	return func(opts *LoaderOptions) {
		opts.FileSystem = files
	}
}

// NewLoaderOptions applies the options over the defaults.
func NewLoaderOptions(options ...LoaderOption) LoaderOptions {
	var opts LoaderOptions
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&opts)
	}
	return opts
}

// Document is a raw export paired with the Source it came from.
type Document struct {
	source Source
	raw    []byte
}

// NewDocument wraps raw bytes. An empty payload is rejected.
func NewDocument(src Source, raw []byte) (Document, error) {
	if src == nil {
		return Document{}, errors.New("dictionary: document source is nil")
	}
	if len(raw) == 0 {
		return Document{}, fmt.Errorf("dictionary: document %s is empty", src.Location())
	}
	return Document{source: src, raw: append([]byte(nil), raw...)}, nil
}

// Source returns the document's origin.
func (d Document) Source() Source { return d.source }

// Location is shorthand for Source().Location().
func (d Document) Location() string {
	if d.source == nil {
		return ""
	}
	return d.source.Location()
}

// Dictionary parses the document as a metadata export.
func (d Document) Dictionary() (*Dictionary, error) {
	return Parse(d.raw, d.Location())
}

// Records parses the document as a record export.
func (d Document) Records() ([]record.Record, error) {
	return record.DecodeSet(d.raw, d.Location())
}

// Parse reads a metadata export (JSON or YAML array of attribute maps).
func Parse(data []byte, source string) (*Dictionary, error) {
	rows, err := record.DecodeRows(data, source)
	if err != nil {
		return nil, fmt.Errorf("dictionary: %w", err)
	}
	dict, err := FromAttributes(rows)
	if err != nil {
		return nil, fmt.Errorf("%w (source %s)", err, source)
	}
	return dict, nil
}
