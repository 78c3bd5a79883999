package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hupe1980/sptensor/coord"
	"github.com/hupe1980/sptensor/tensorio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const (
	matA = "order: 2\nshape: 2, 2\nvalues:\n0, 0, 1\n0, 1, 2\n1, 0, 3\n1, 1, 4\n"
	matB = "order: 2\nshape: 2, 2\nvalues:\n0, 0, 5\n0, 1, 6\n1, 0, 7\n1, 1, 8\n"
	eye  = "order: 2\nshape: 2, 2\nvalues:\n0, 0, 1\n1, 1, 1\n"
)

func TestInfo(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.coo", matA)

	out, err := run(t, "info", a)
	require.NoError(t, err)
	assert.Contains(t, out, "order:   2\n")
	assert.Contains(t, out, "shape:   [2, 2]\n")
	assert.Contains(t, out, "nnz:     4\n")
	assert.Contains(t, out, "store:   bptree\n")
	assert.Contains(t, out, "btree:   height=1")

	out, err = run(t, "--store", "hash", "info", a)
	require.NoError(t, err)
	assert.Contains(t, out, "store:   hash\n")
	assert.NotContains(t, out, "btree:")
}

func TestTrace(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "eye.coo", eye)

	out, err := run(t, "trace", path, "0", "1")
	require.NoError(t, err)
	assert.Equal(t, "shape is []\ncontents is:\n  [] = 2\n", out)

	_, err = run(t, "trace", path, "0", "0")
	assert.Error(t, err)

	_, err = run(t, "trace", path, "x", "1")
	assert.Error(t, err)
}

func TestContract(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.coo", matA)
	b := writeFile(t, dir, "b.coo", matB)
	c := filepath.Join(dir, "c.json.zst")

	_, err := run(t, "contract", a, "1", b, "0", "-o", c)
	require.NoError(t, err)

	got, err := tensorio.ReadFile(c)
	require.NoError(t, err)

	for _, tc := range []struct {
		at   coord.Coords
		want float64
	}{
		{coord.Coords{0, 0}, 19},
		{coord.Coords{0, 1}, 22},
		{coord.Coords{1, 0}, 43},
		{coord.Coords{1, 1}, 50},
	} {
		v, err := got.Get(tc.at)
		require.NoError(t, err)
		assert.Equal(t, tc.want, v, tc.at.String())
	}

	_, err = run(t, "contract", a, "1", filepath.Join(dir, "missing.coo"), "0")
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestGen(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "g.coo")

	_, err := run(t, "gen", "--seed", "7", "--density", "0.5", "-o", path, "4", "5")
	require.NoError(t, err)

	g, err := tensorio.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, coord.Coords{4, 5}, g.Shape())
	assert.Greater(t, g.NNZ(), 0)
	assert.LessOrEqual(t, g.NNZ(), 10)

	// Same seed, same tensor.
	again := filepath.Join(dir, "again.coo")
	_, err = run(t, "gen", "--seed", "7", "--density", "0.5", "-o", again, "4", "5")
	require.NoError(t, err)
	raw1, _ := os.ReadFile(path)
	raw2, _ := os.ReadFile(again)
	assert.Equal(t, string(raw1), string(raw2))

	_, err = run(t, "gen", "--density", "2", "3")
	assert.Error(t, err)

	_, err = run(t, "gen", "1", "2", "3", "4", "5")
	assert.Error(t, err)
}

func TestConvert(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.coo", matA)
	out := filepath.Join(dir, "a.snapshot")

	_, err := run(t, "convert", "--format", "json", "--compression", "lz4", "--codec", "json", a, out)
	require.NoError(t, err)

	back, err := tensorio.ReadFile(out, tensorio.WithFormat(tensorio.FormatJSON))
	require.NoError(t, err)
	orig, err := tensorio.ReadFile(a)
	require.NoError(t, err)
	assert.True(t, orig.Equal(back))

	_, err = run(t, "convert", "--codec", "xml", a, out)
	assert.Error(t, err)
}

func TestCompare(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.coo", matA)
	b := writeFile(t, dir, "b.coo", matB)

	out, err := run(t, "compare", a, "1", b, "0")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(lines[0], "store"))
	for i, kind := range []string{"bptree", "ordered", "hash"} {
		fields := strings.Fields(lines[i+1])
		assert.Equal(t, kind, fields[0])
		assert.Equal(t, []string{"4", "16", "4", "8", "8"}, fields[1:6])
	}
}

func TestMetricsOut(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "eye.coo", eye)
	metrics := filepath.Join(dir, "metrics.prom")

	_, err := run(t, "--metrics-out", metrics, "trace", path, "0", "1")
	require.NoError(t, err)

	raw, err := os.ReadFile(metrics)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `sptensor_operations_total{op="trace",status="success"} 1`)
	assert.Contains(t, string(raw), `sptensor_operations_total{op="read",status="success"} 1`)
}

func TestBadFlags(t *testing.T) {
	_, err := run(t, "--store", "skiplist", "info", "x.coo")
	assert.Error(t, err)

	_, err = run(t, "--s3-bucket", "b", "--minio-endpoint", "localhost:9000", "info", "x.coo")
	assert.Error(t, err)

	_, err = run(t, "--minio-endpoint", "localhost:9000", "info", "x.coo")
	assert.Error(t, err)
}
