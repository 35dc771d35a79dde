package askit

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeForm(t *testing.T, dir, file, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, file), []byte(body), 0o644))
}

func simpleForm(name string) *Form {
	return &Form{Name: name, Fields: []*FormField{{Name: "a"}}}
}

func TestMemoryFormCatalog(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryFormCatalog()

	require.NoError(t, c.Put(simpleForm("beta")))
	require.NoError(t, c.Put(simpleForm("alpha")))

	t.Run("get", func(t *testing.T) {
		f, err := c.Get(ctx, "alpha")
		require.NoError(t, err)
		assert.Equal(t, "alpha", f.Name)

		_, err = c.Get(ctx, "gamma")
		assert.ErrorIs(t, err, ErrFormNotFound)
	})

	t.Run("list sorted", func(t *testing.T) {
		names, err := c.List(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"alpha", "beta"}, names)
	})

	t.Run("exists", func(t *testing.T) {
		ok, err := c.Exists(ctx, "beta")
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = c.Exists(ctx, "gamma")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("put validates", func(t *testing.T) {
		assert.Error(t, c.Put(nil))
		assert.Error(t, c.Put(&Form{Name: "empty"}))
		assert.Error(t, c.Put(simpleForm("")))
	})

	t.Run("canceled context", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		_, err := c.Get(cctx, "alpha")
		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("closed", func(t *testing.T) {
		require.NoError(t, c.Close())

		_, err := c.Get(ctx, "alpha")
		assert.ErrorIs(t, err, ErrCatalogClosed)
		_, err = c.List(ctx)
		assert.ErrorIs(t, err, ErrCatalogClosed)
		_, err = c.Exists(ctx, "alpha")
		assert.ErrorIs(t, err, ErrCatalogClosed)
		assert.ErrorIs(t, c.Put(simpleForm("z")), ErrCatalogClosed)
	})
}

func TestNewFilesystemFormCatalog(t *testing.T) {
	_, err := NewFilesystemFormCatalog(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)

	dir := t.TempDir()
	writeForm(t, dir, "file.yaml", "x")
	_, err = NewFilesystemFormCatalog(filepath.Join(dir, "file.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), ErrMsgCatalogRootDir)

	c, err := NewFilesystemFormCatalog(dir)
	require.NoError(t, err)
	assert.Equal(t, dir, c.Root())
}

func TestFilesystemFormCatalog(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	writeForm(t, dir, "db.yaml", "name: db\nfields:\n  - name: host\n")
	writeForm(t, dir, "app.yml", "name: app\nfields:\n  - name: port\n    type: uint\n")
	writeForm(t, dir, "broken.yaml", "name: broken\nfields: []\n")
	writeForm(t, dir, "README.md", "not a form")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested.yaml"), 0o755))

	c, err := NewFilesystemFormCatalog(dir)
	require.NoError(t, err)

	t.Run("list", func(t *testing.T) {
		names, err := c.List(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"app", "broken", "db"}, names)
	})

	t.Run("get yaml and yml", func(t *testing.T) {
		db, err := c.Get(ctx, "db")
		require.NoError(t, err)
		assert.Equal(t, "db", db.Name)

		app, err := c.Get(ctx, "app")
		require.NoError(t, err)
		assert.Equal(t, FieldTypeUint, app.Fields[0].FieldType())
	})

	t.Run("cached after first load", func(t *testing.T) {
		first, err := c.Get(ctx, "db")
		require.NoError(t, err)
		require.NoError(t, os.Remove(filepath.Join(dir, "db.yaml")))

		second, err := c.Get(ctx, "db")
		require.NoError(t, err)
		assert.Same(t, first, second)
	})

	t.Run("invalid form file", func(t *testing.T) {
		_, err := c.Get(ctx, "broken")
		require.Error(t, err)
		assert.Contains(t, err.Error(), ErrMsgFormEmpty)
	})

	t.Run("not found", func(t *testing.T) {
		_, err := c.Get(ctx, "nope")
		assert.ErrorIs(t, err, ErrFormNotFound)

		_, err = c.Get(ctx, "nested")
		assert.ErrorIs(t, err, ErrFormNotFound)
	})

	t.Run("exists", func(t *testing.T) {
		ok, err := c.Exists(ctx, "app")
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = c.Exists(ctx, "README")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("rejects unsafe names", func(t *testing.T) {
		for _, name := range []string{"", "../db", "a/b", `a\b`, "x:y"} {
			_, err := c.Get(ctx, name)
			assert.Error(t, err, name)
			assert.NotErrorIs(t, err, ErrFormNotFound, name)
		}
	})

	t.Run("closed", func(t *testing.T) {
		require.NoError(t, c.Close())
		_, err := c.Get(ctx, "app")
		assert.ErrorIs(t, err, ErrCatalogClosed)
		_, err = c.List(ctx)
		assert.ErrorIs(t, err, ErrCatalogClosed)
	})
}

func TestFormCatalog_Interface(t *testing.T) {
	dir := t.TempDir()
	writeForm(t, dir, "one.yaml", "name: one\nfields:\n  - name: a\n")
	fs, err := NewFilesystemFormCatalog(dir)
	require.NoError(t, err)

	mem := NewMemoryFormCatalog()
	require.NoError(t, mem.Put(simpleForm("one")))

	for name, c := range map[string]FormCatalog{"memory": mem, "filesystem": fs} {
		t.Run(name, func(t *testing.T) {
			f, err := c.Get(context.Background(), "one")
			require.NoError(t, err)

			answers, err := f.Run(context.Background(), strings.NewReader("value\n"), &strings.Builder{})
			require.NoError(t, err)
			v, _ := answers.Get("a")
			assert.Equal(t, "value", v)
			require.NoError(t, c.Close())
		})
	}
}
