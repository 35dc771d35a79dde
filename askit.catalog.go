package askit

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"go.uber.org/zap"
)

// Form file extensions recognised by FilesystemFormCatalog, in lookup order.
const (
	FormFileExtYAML = ".yaml"
	FormFileExtYML  = ".yml"
)

// FormCatalog looks up forms by name.
type FormCatalog interface {
	// Get returns the named form.
	Get(ctx context.Context, name string) (*Form, error)

	// List returns all form names, sorted.
	List(ctx context.Context) ([]string, error)

	// Exists reports whether a form is available.
	Exists(ctx context.Context, name string) (bool, error)

	// Close releases resources. Later calls fail with ErrCatalogClosed.
	Close() error
}

// MemoryFormCatalog is an in-memory FormCatalog, mainly for tests and
// programmatically built forms.
type MemoryFormCatalog struct {
	mu     sync.RWMutex
	forms  map[string]*Form
	closed bool
}

// NewMemoryFormCatalog creates an empty in-memory catalog.
func NewMemoryFormCatalog() *MemoryFormCatalog {
	return &MemoryFormCatalog{forms: make(map[string]*Form)}
}

// Put validates and stores form under its name, replacing any previous one.
func (c *MemoryFormCatalog) Put(form *Form) error {
	if form == nil || form.Name == "" {
		return NewCatalogError(ErrMsgFormNameEmpty, "", nil)
	}
	if err := form.Validate(); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return NewCatalogClosedError()
	}
	c.forms[form.Name] = form
	return nil
}

// Get returns the named form.
func (c *MemoryFormCatalog) Get(ctx context.Context, name string) (*Form, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.closed {
		return nil, NewCatalogClosedError()
	}
	form, ok := c.forms[name]
	if !ok {
		return nil, NewFormNotFoundError(name)
	}
	return form, nil
}

// List returns all form names, sorted.
func (c *MemoryFormCatalog) List(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.closed {
		return nil, NewCatalogClosedError()
	}
	names := make([]string, 0, len(c.forms))
	for name := range c.forms {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// Exists reports whether the named form is stored.
func (c *MemoryFormCatalog) Exists(ctx context.Context, name string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.closed {
		return false, NewCatalogClosedError()
	}
	_, ok := c.forms[name]
	return ok, nil
}

// Close marks the catalog as closed.
func (c *MemoryFormCatalog) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.closed = true
	c.forms = nil
	return nil
}

// FilesystemFormCatalog serves forms from YAML files in one directory.
// The form name is the file name without its extension:
//
//	<root>/
//	  database.yaml
//	  onboarding.yml
//
// Files are parsed on first Get and cached.
type FilesystemFormCatalog struct {
	mu     sync.RWMutex
	root   string
	cache  map[string]*Form
	logger *zap.Logger
	closed bool
}

// NewFilesystemFormCatalog opens a catalog rooted at dir. The directory must exist.
func NewFilesystemFormCatalog(dir string, opts ...Option) (*FilesystemFormCatalog, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, NewCatalogError(ErrMsgCatalogRootDir, "", err)
	}
	if !info.IsDir() {
		return nil, NewCatalogError(ErrMsgCatalogRootDir, "", nil)
	}
	return &FilesystemFormCatalog{
		root:   dir,
		cache:  make(map[string]*Form),
		logger: resolveConfig(opts).logger,
	}, nil
}

// Root returns the catalog directory.
func (c *FilesystemFormCatalog) Root() string { return c.root }

// Get loads the named form, from cache when possible.
func (c *FilesystemFormCatalog) Get(ctx context.Context, name string) (*Form, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := validateFormName(name); err != nil {
		return nil, err
	}

	c.mu.RLock()
	if c.closed {
		c.mu.RUnlock()
		return nil, NewCatalogClosedError()
	}
	form, ok := c.cache[name]
	c.mu.RUnlock()
	if ok {
		return form, nil
	}

	path, ok := c.locate(name)
	if !ok {
		return nil, NewFormNotFoundError(name)
	}
	form, err := LoadForm(path)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil, NewCatalogClosedError()
	}
	c.cache[name] = form
	c.logger.Debug(LogMsgCatalogLoaded, zap.String(LogFieldForm, name), zap.String(LogFieldPath, path))
	return form, nil
}

// List returns the names of all form files in the root directory, sorted.
// Subdirectories and files with other extensions are ignored.
func (c *FilesystemFormCatalog) List(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.closed {
		return nil, NewCatalogClosedError()
	}

	entries, err := os.ReadDir(c.root)
	if err != nil {
		return nil, NewCatalogError(ErrMsgCatalogRead, "", err)
	}

	seen := make(map[string]struct{})
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := filepath.Ext(entry.Name())
		if ext != FormFileExtYAML && ext != FormFileExtYML {
			continue
		}
		name := strings.TrimSuffix(entry.Name(), ext)
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// Exists reports whether a form file for name is present.
func (c *FilesystemFormCatalog) Exists(ctx context.Context, name string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	if err := validateFormName(name); err != nil {
		return false, err
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.closed {
		return false, NewCatalogClosedError()
	}
	_, ok := c.locate(name)
	return ok, nil
}

// Close drops the cache and marks the catalog as closed.
func (c *FilesystemFormCatalog) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.closed = true
	c.cache = nil
	return nil
}

func (c *FilesystemFormCatalog) locate(name string) (string, bool) {
	for _, ext := range []string{FormFileExtYAML, FormFileExtYML} {
		path := filepath.Join(c.root, name+ext)
		info, err := os.Stat(path)
		if err == nil && !info.IsDir() {
			return path, true
		}
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			c.logger.Debug(LogMsgCatalogSkippedFile, zap.String(LogFieldPath, path), zap.Error(err))
		}
	}
	return "", false
}

// validateFormName rejects names that could escape the catalog root.
func validateFormName(name string) error {
	if name == "" {
		return NewCatalogError(ErrMsgFormNameEmpty, "", nil)
	}
	if strings.Contains(name, "..") || strings.ContainsAny(name, "/\\:*?\"<>|") {
		return NewCatalogError(ErrMsgFormNameInvalid, name, nil)
	}
	return nil
}
