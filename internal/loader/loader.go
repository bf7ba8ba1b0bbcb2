package loader

import (
	"context"
	"errors"
	"io/fs"

	"github.com/botandrose/red-cap/pkg/dictionary"
)

// Loader implements dictionary.Loader by delegating to file or fs.FS
// strategies.
type Loader struct {
	fs fs.FS
}

var _ dictionary.Loader = (*Loader)(nil)

// New constructs a Loader from pre-resolved options.
func New(options dictionary.LoaderOptions) dictionary.Loader {
	return &Loader{fs: options.FileSystem}
}

// Load reads the export behind src and wraps it in a Document.
func (l *Loader) Load(ctx context.Context, src dictionary.Source) (dictionary.Document, error) {
	if ctx == nil {
		return dictionary.Document{}, errors.New("dictionary loader: context is required")
	}
	if src == nil {
		return dictionary.Document{}, errors.New("dictionary loader: source is nil")
	}

	var (
		data []byte
		err  error
	)

	switch src.Kind() {
	case dictionary.SourceKindFile:
		data, err = loadFile(ctx, src.Location())
	case dictionary.SourceKindFS:
		data, err = loadFromFS(ctx, l.fs, src.Location())
	default:
		err = errors.New("dictionary loader: unsupported source kind")
	}
	if err != nil {
		return dictionary.Document{}, err
	}

	return dictionary.NewDocument(src, data)
}
