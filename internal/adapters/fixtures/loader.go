// Package fixtures loads the canned row logs from JSON documents, one array
// per entity kind, each sorted by tick.
package fixtures

import (
	"context"
	"courier-tracking-service/internal/domain"
	"courier-tracking-service/internal/platform/obs"
	"courier-tracking-service/internal/rowstore"
	"courier-tracking-service/internal/scenario"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"golang.org/x/sync/errgroup"
)

//go:embed data/*.json
var embedded embed.FS

// Opener resolves a fixture name to its JSON document.
type Opener interface {
	Open(ctx context.Context, name string) (io.ReadCloser, error)
}

// FSOpener reads "<name>.json" from a file system.
type FSOpener struct {
	FS fs.FS
}

func (o FSOpener) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return o.FS.Open(name + ".json")
}

// Embedded returns the fixtures compiled into the binary.
func Embedded() FSOpener {
	sub, err := fs.Sub(embedded, "data")
	if err != nil {
		panic(fmt.Sprintf("fixtures: embedded data dir: %v", err))
	}
	return FSOpener{FS: sub}
}

// Dir returns an opener over a fixture directory on disk.
func Dir(path string) FSOpener {
	return FSOpener{FS: os.DirFS(path)}
}

// Loader implements ports.RowSource over named JSON fixtures.
type Loader struct {
	opener Opener
	names  scenario.Fixtures
}

func NewLoader(opener Opener, names scenario.Fixtures) *Loader {
	return &Loader{opener: opener, names: names}
}

// LoadRows decodes the four fixtures concurrently. A missing or malformed
// fixture is reported as a *rowstore.LoadError naming it.
func (l *Loader) LoadRows(ctx context.Context) (_ domain.RowLogs, err error) {
	defer obs.Time(ctx, "fixtures.LoadRows")(&err)

	if l.opener == nil {
		return domain.RowLogs{}, errors.New("fixtures loader: opener is nil")
	}

	var logs domain.RowLogs
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return decode(gctx, l.opener, l.names.Couriers, &logs.Couriers) })
	g.Go(func() error { return decode(gctx, l.opener, l.names.Packages, &logs.Packages) })
	g.Go(func() error { return decode(gctx, l.opener, l.names.Vehicles, &logs.Vehicles) })
	g.Go(func() error { return decode(gctx, l.opener, l.names.Trips, &logs.Trips) })

	if err := g.Wait(); err != nil {
		return domain.RowLogs{}, err
	}
	return logs, nil
}

func decode[R any](ctx context.Context, opener Opener, name string, out *[]R) error {
	if name == "" {
		return &rowstore.LoadError{Fixture: name, Err: errors.New("fixture name is empty")}
	}

	rc, err := opener.Open(ctx, name)
	if err != nil {
		return &rowstore.LoadError{Fixture: name, Err: fmt.Errorf("open: %w", err)}
	}
	defer rc.Close()

	var rows []R
	if err := json.NewDecoder(rc).Decode(&rows); err != nil {
		return &rowstore.LoadError{Fixture: name, Err: fmt.Errorf("parse json: %w", err)}
	}

	*out = rows
	return nil
}
