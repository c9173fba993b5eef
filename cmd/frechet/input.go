package main

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/tdewolff/frechet"
)

// readPaths reads the first two rows of comma-separated x;y cells as the paths P and Q.
func readPaths(r io.Reader) ([]frechet.Vector, []frechet.Vector, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	var paths [][]frechet.Vector
	for len(paths) < 2 {
		row, err := cr.Read()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, nil, err
		}

		var path []frechet.Vector
		for i, cell := range row {
			cell = strings.TrimSpace(cell)
			if cell == "" {
				continue
			}
			x, y, ok := strings.Cut(cell, ";")
			if !ok {
				return nil, nil, fmt.Errorf("row %d cell %d: expected x;y, got %q", len(paths)+1, i+1, cell)
			}
			v, err := parseVector(x, y)
			if err != nil {
				return nil, nil, fmt.Errorf("row %d cell %d: %w", len(paths)+1, i+1, err)
			}
			path = append(path, v)
		}
		if 0 < len(path) {
			paths = append(paths, path)
		}
	}
	if len(paths) < 2 {
		return nil, nil, errors.New("expected two rows of points")
	}
	return paths[0], paths[1], nil
}

func parseVector(x, y string) (frechet.Vector, error) {
	fx, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
	if err != nil {
		return frechet.Vector{}, err
	}
	fy, err := strconv.ParseFloat(strings.TrimSpace(y), 64)
	if err != nil {
		return frechet.Vector{}, err
	}
	return frechet.Vector{X: fx, Y: fy}, nil
}

// openInput reads the paths from filename, or from stdin when filename is empty or a dash.
func openInput(filename string) ([]frechet.Vector, []frechet.Vector, error) {
	if filename == "" || filename == "-" {
		return readPaths(os.Stdin)
	}
	f, err := os.Open(filename)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()
	return readPaths(f)
}

// parseLevels parses a comma-separated list of epsilons.
func parseLevels(s string) ([]float64, error) {
	var levels []float64
	for _, field := range strings.Split(s, ",") {
		if field = strings.TrimSpace(field); field == "" {
			continue
		}
		eps, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return nil, fmt.Errorf("level %q: %w", field, err)
		}
		levels = append(levels, eps)
	}
	return levels, nil
}
