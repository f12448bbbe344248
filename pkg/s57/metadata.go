package s57

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/jamessvoss/XNautical-sub006/internal/logctx"
	"github.com/jamessvoss/XNautical-sub006/internal/parser"
	"github.com/jamessvoss/XNautical-sub006/pkg/iso8211"
)

// ChartMetadata is lightweight chart identity extracted without
// resolving feature geometry: enough for spatial indexing and chart
// discovery over large ENC directory trees.
type ChartMetadata struct {
	Path             string    // absolute path to the .000 file
	Name             string    // dataset name (DSNM)
	Bounds           Bounds    // union of all vector record positions
	CompilationScale int       // CSCL
	Edition          int       // EDTN
	UpdateNumber     int       // UPDN
	UsageBand        UsageBand // INTU
	FileSize         int64
	ModTime          time.Time
}

// ExtractMetadata reads a chart's identification, parameters and
// geographic extent without resolving any feature topology. The extent
// comes from the raw node and edge coordinates, so it is exact even
// when individual features carry broken spatial references.
func ExtractMetadata(path string) (*ChartMetadata, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat chart file: %w", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read chart file: %w", err)
	}

	file, err := iso8211.Decode(data)
	if err != nil {
		return nil, err
	}
	// Discard per-record diagnostics; metadata extraction is a bulk
	// scan and callers only care about whole-file failures.
	ctx := logctx.With(context.Background(), zerolog.Nop())
	ds := parser.BuildDataset(ctx, file)

	meta := &ChartMetadata{
		Path:             path,
		Name:             ds.ID.DatasetName,
		Bounds:           datasetBounds(ds),
		CompilationScale: int(ds.Params.CompilationScale),
		Edition:          atoiOrZero(ds.ID.Edition),
		UpdateNumber:     atoiOrZero(ds.ID.UpdateNumber),
		UsageBand:        UsageBand(ds.ID.IntendedUsage),
		FileSize:         info.Size(),
		ModTime:          info.ModTime(),
	}
	return meta, nil
}

// ExtractMetadataFromDir walks a directory tree for base cells (.000
// files) and extracts metadata from each. Files that fail to parse are
// reported in the error slice and skipped; one corrupt cell must not
// hide the rest of the catalogue.
func ExtractMetadataFromDir(root string) ([]*ChartMetadata, []error) {
	var charts []*ChartMetadata
	var errs []error

	walkErr := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || filepath.Ext(path) != ".000" {
			return nil
		}
		meta, err := ExtractMetadata(path)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", path, err))
			return nil
		}
		charts = append(charts, meta)
		return nil
	})
	if walkErr != nil {
		errs = append(errs, fmt.Errorf("walk directory: %w", walkErr))
	}
	return charts, errs
}

// datasetBounds unions every node and edge position of a dataset.
func datasetBounds(ds *parser.Dataset) Bounds {
	var bounds Bounds
	first := true
	extend := func(points []parser.Position) {
		for _, p := range points {
			pb := Bounds{MinLon: p.Lon, MaxLon: p.Lon, MinLat: p.Lat, MaxLat: p.Lat}
			if first {
				bounds = pb
				first = false
			} else {
				bounds = bounds.union(pb)
			}
		}
	}
	for _, node := range ds.IsolatedNodes {
		extend(node.Points)
	}
	for _, node := range ds.ConnectedNodes {
		extend(node.Points)
	}
	for _, edge := range ds.Edges {
		extend(edge.Vertices)
	}
	return bounds
}

func atoiOrZero(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}
