// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package geo loads boundary features and joins them with reduced
// accident data by name.
package geo

import (
	"context"
	"fmt"
	"io/ioutil"
	"runtime"

	"github.com/paulmach/orb/geojson"
	"golang.org/x/sync/errgroup"
)

// Parse parses a GeoJSON FeatureCollection.
func Parse(data []byte) (*geojson.FeatureCollection, error) {
	return geojson.UnmarshalFeatureCollection(data)
}

// Load reads the GeoJSON FeatureCollection at path.
func Load(path string) (*geojson.FeatureCollection, error) {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, err
	}
	fc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return fc, nil
}

// LoadAll loads the FeatureCollections at paths concurrently. The
// results are in the order of paths. If any file fails to load,
// LoadAll cancels the remaining loads and returns the first error.
func LoadAll(ctx context.Context, paths []string) ([]*geojson.FeatureCollection, error) {
	out := make([]*geojson.FeatureCollection, len(paths))
	nworkers := runtime.GOMAXPROCS(-1)
	if nworkers > len(paths) {
		nworkers = len(paths)
	}
	tasks := make(chan int)
	g, ctx := errgroup.WithContext(ctx)

	// Feeder.
	g.Go(func() error {
		defer close(tasks)
		for i := range paths {
			select {
			case tasks <- i:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return nil
	})

	// Workers.
	for i := 0; i < nworkers; i++ {
		g.Go(func() error {
			for i := range tasks {
				fc, err := Load(paths[i])
				if err != nil {
					return err
				}
				out[i] = fc
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// Select returns a FeatureCollection of the features of fc for which
// keep returns true. The features are shared with fc.
func Select(fc *geojson.FeatureCollection, keep func(*geojson.Feature) bool) *geojson.FeatureCollection {
	out := geojson.NewFeatureCollection()
	for _, f := range fc.Features {
		if keep(f) {
			out.Append(f)
		}
	}
	return out
}
