package hfile

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"os"
)

// Option configures a trailer read.
type Option func(*options)

type options struct {
	log *slog.Logger
}

// WithLogger sends debug events about the read to log. Reads are silent by
// default.
func WithLogger(log *slog.Logger) Option {
	return func(o *options) {
		if log != nil {
			o.log = log
		}
	}
}

func buildOptions(opts []Option) options {
	o := options{log: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// ReadTrailer locates and decodes the trailer of an HFile of the given size.
func ReadTrailer(r io.ReaderAt, size int64, opts ...Option) (Trailer, error) {
	o := buildOptions(opts)

	loc, err := locate(r, size)
	if err != nil {
		return Trailer{}, err
	}
	o.log.Debug("located trailer",
		"offset", loc.offset,
		"major", loc.major,
		"minor", loc.minor,
	)
	return decodeBody(loc.major, loc.minor, loc.body, o.log)
}

// ReadTrailerFile opens path and reads its trailer. A path that does not exist
// yields KindMissingFile. The context is checked before each file-system
// call; a cancelled read closes the file and returns a KindIO error wrapping
// the context error.
func ReadTrailerFile(ctx context.Context, path string, opts ...Option) (Trailer, error) {
	if err := ctx.Err(); err != nil {
		return Trailer{}, errIO("open "+path, err)
	}
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Trailer{}, errMissingFile(path, err)
		}
		return Trailer{}, errIO("open "+path, err)
	}
	defer func() { _ = f.Close() }()

	if err := ctx.Err(); err != nil {
		return Trailer{}, errIO("stat "+path, err)
	}
	stat, err := f.Stat()
	if err != nil {
		return Trailer{}, errIO("stat "+path, err)
	}

	if err := ctx.Err(); err != nil {
		return Trailer{}, errIO("read "+path, err)
	}
	return ReadTrailer(f, stat.Size(), opts...)
}
