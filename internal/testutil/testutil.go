// Package testutil provides shared test fixtures for building simulator
// grids and stream files.
package testutil

import (
	"encoding/json"
	"strings"
	"testing"
)

// UniformGrid builds a rows x cols grid filled with the given symbol.
func UniformGrid(rows, cols int, symbol string) [][]string {
	grid := make([][]string, rows)
	for r := range grid {
		row := make([]string, cols)
		for c := range row {
			row[c] = symbol
		}
		grid[r] = row
	}
	return grid
}

// GridLine marshals a bare grid as one stream line (without newline).
func GridLine(t *testing.T, grid [][]string) string {
	t.Helper()
	data, err := json.Marshal(grid)
	if err != nil {
		t.Fatalf("marshal grid: %v", err)
	}
	return string(data)
}

// WrappedLine marshals a grid wrapped under the "cells" key.
func WrappedLine(t *testing.T, grid [][]string) string {
	t.Helper()
	data, err := json.Marshal(map[string][][]string{"cells": grid})
	if err != nil {
		t.Fatalf("marshal wrapped grid: %v", err)
	}
	return string(data)
}

// Stream assembles an ndjson stream body: a header line followed by the
// given frame lines, each newline-terminated.
func Stream(lines ...string) []byte {
	var b strings.Builder
	b.WriteString("header\n")
	for _, l := range lines {
		b.WriteString(l)
		b.WriteByte('\n')
	}
	return []byte(b.String())
}

// AssertNoError fails the test if err is not nil.
func AssertNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// AssertError fails the test if err is nil.
func AssertError(t *testing.T, err error) {
	t.Helper()
	if err == nil {
		t.Fatal("expected error, got nil")
	}
}
