package convert

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cfix-labs/cfix/internal/ast"
)

func writeTreeFile(t *testing.T, dir, name string, unit *ast.TranslationUnit) string {
	t.Helper()
	data, err := ast.EncodeUnit(unit)
	require.NoError(t, err)
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func readTreeFile(t *testing.T, path string) *ast.TranslationUnit {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	unit, err := ast.DecodeUnit(data)
	require.NoError(t, err)
	return unit
}

func TestConvertFileTransformsTreeInPlace(t *testing.T) {
	dir := t.TempDir()
	path := writeTreeFile(t, dir, "main.json", devirtUnit())

	p := NewPipeline(nil, nil, DefaultConfig(), nil)
	issues, err := p.ConvertFile(path)
	require.NoError(t, err)
	assert.Empty(t, issues)

	unit := readTreeFile(t, path)
	main := unit.Lookup("main")
	require.NotNil(t, main)
	assert.Equal(t, "hello();", main.Body.Stmts[0].String())
	assert.True(t, main.ReturnType.IsVoid())
}

func TestConvertFileRejectsUnknownExtension(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "main.txt")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))

	p := NewPipeline(nil, nil, DefaultConfig(), nil)
	_, err := p.ConvertFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported file type")
}

func TestProcessPathDirectory(t *testing.T) {
	dir := t.TempDir()
	writeTreeFile(t, dir, "a.json", devirtUnit())
	writeTreeFile(t, dir, "b.json", ast.Unit(
		ast.Func("lonely", ast.Void(), nil, ast.NewBlock(
			ast.DeclFuncPtr("fp"),
			ast.Call("fp"),
		)),
	))
	// Non-tree files are skipped, not failed.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))

	p := NewPipeline(nil, nil, DefaultConfig(), nil)
	issues, err := ProcessPath(context.Background(), nil, p, dir)
	require.NoError(t, err)

	// b.json carries an unresolved pointer call.
	require.Len(t, issues, 1)
	assert.Equal(t, "lonely", issues[0].Function)
}

func TestProcessFilesPropagatesAccessErrors(t *testing.T) {
	p := NewPipeline(nil, nil, DefaultConfig(), nil)
	_, err := ProcessFiles(context.Background(), nil, p, []string{"/nonexistent/path"})
	require.Error(t, err)
}

func TestProcessPathCancelled(t *testing.T) {
	dir := t.TempDir()
	writeTreeFile(t, dir, "a.json", devirtUnit())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := NewPipeline(nil, nil, DefaultConfig(), nil)
	_, err := ProcessPath(ctx, nil, p, dir)
	require.ErrorIs(t, err, context.Canceled)
}
