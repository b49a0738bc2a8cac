// Package catalog keeps the in-memory registry of prompt templates loaded
// from disk or uploaded at runtime.
package catalog

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/dgallion1/promptforge/internal/source"
	"github.com/dgallion1/promptforge/internal/variable"
	"github.com/dgallion1/promptforge/internal/wizard"
	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/errgroup"
)

// Template is a catalogued prompt template.
type Template struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Role        string   `json:"role"`
	Roles       []string `json:"roles"`
	Phase       string   `json:"phase"`
	Tags        []string `json:"tags"`
	Filename    string   `json:"filename"`
	Variables   []string `json:"variables"`
	Hash        string   `json:"content_hash"`
	Content     string   `json:"content,omitempty"`
}

// Summary drops the content for listings.
func (t Template) Summary() Template {
	t.Content = ""
	return t
}

// Query filters List. Empty fields match everything.
type Query struct {
	Role   string
	Phase  string
	Search string
}

// Catalog is safe for concurrent use.
type Catalog struct {
	mu   sync.RWMutex
	byID map[string]*Template

	steps *lru.Cache[string, []wizard.Step]
	log   *slog.Logger
}

// New creates an empty catalog whose wizard analysis cache holds cacheSize
// entries.
func New(cacheSize int, log *slog.Logger) (*Catalog, error) {
	cache, err := lru.New[string, []wizard.Step](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("create analysis cache: %w", err)
	}
	return &Catalog{
		byID:  make(map[string]*Template),
		steps: cache,
		log:   log,
	}, nil
}

// LoadDir loads every supported file in dir, at most concurrency at a time.
// Files that fail to load are logged and skipped. It returns the number of
// templates added.
func (c *Catalog) LoadDir(ctx context.Context, dir string, concurrency int, opts source.Options) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, fmt.Errorf("read templates dir: %w", err)
	}

	var names []string
	for _, e := range entries {
		if e.Type().IsRegular() && source.IsSupportedExtension(e.Name()) {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	docs := make([]*source.Document, len(names))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(concurrency, 1))
	for i, name := range names {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			doc, err := loadFile(filepath.Join(dir, name), opts)
			if err != nil {
				c.log.Warn("template load failed", "file", name, "error", err)
				return nil
			}
			docs[i] = doc
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}

	added := 0
	for _, doc := range docs {
		if doc == nil {
			continue
		}
		c.Add(doc)
		added++
	}
	c.log.Info("templates loaded", "dir", dir, "count", added, "skipped", len(names)-added)
	return added, nil
}

func loadFile(path string, opts source.Options) (*source.Document, error) {
	loader, err := source.ForFile(path, opts)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return loader.Load(f, filepath.Base(path))
}

// Add registers a loaded document and returns the stored template. IDs are
// derived from the filename; clashes get a numeric suffix.
func (c *Catalog) Add(doc *source.Document) *Template {
	roles := detectRoles(doc.Meta.Role, doc.Meta.Roles, doc.Filename, doc.Content)
	tmpl := &Template{
		Title:       doc.Title,
		Description: doc.Description,
		Role:        roles[0],
		Roles:       roles,
		Phase:       detectPhase(doc.Meta.Phase, doc.Filename, doc.Content),
		Tags:        nonNil(doc.Meta.Tags),
		Filename:    doc.Filename,
		Variables:   variable.BareNames(doc.Content),
		Hash:        ContentHashHex([]byte(doc.Content)),
		Content:     doc.Content,
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	base := slug(doc.Filename)
	id := base
	for n := 2; c.byID[id] != nil; n++ {
		id = base + "-" + strconv.Itoa(n)
	}
	tmpl.ID = id
	c.byID[id] = tmpl
	return tmpl
}

// Get returns a copy of the template with the given id.
func (c *Catalog) Get(id string) (Template, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	t, ok := c.byID[id]
	if !ok {
		return Template{}, false
	}
	return *t, true
}

// List returns matching template summaries sorted by title, then id.
func (c *Catalog) List(q Query) []Template {
	role := normalizeKey(q.Role)
	phase := normalizeKey(q.Phase)
	search := strings.ToLower(strings.TrimSpace(q.Search))

	c.mu.RLock()
	out := make([]Template, 0, len(c.byID))
	for _, t := range c.byID {
		if role != "" && !slices.Contains(t.Roles, role) {
			continue
		}
		if phase != "" && t.Phase != phase {
			continue
		}
		if search != "" && !t.matches(search) {
			continue
		}
		out = append(out, t.Summary())
	}
	c.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].Title != out[j].Title {
			return out[i].Title < out[j].Title
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func (t *Template) matches(search string) bool {
	if strings.Contains(strings.ToLower(t.Title), search) ||
		strings.Contains(strings.ToLower(t.Description), search) {
		return true
	}
	for _, tag := range t.Tags {
		if strings.Contains(strings.ToLower(tag), search) {
			return true
		}
	}
	return false
}

// Count returns the number of catalogued templates.
func (c *Catalog) Count() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.byID)
}

// Steps returns the wizard steps for a catalogued template.
func (c *Catalog) Steps(id string) ([]wizard.Step, bool) {
	t, ok := c.Get(id)
	if !ok {
		return nil, false
	}
	return c.Analyze(t.Content), true
}

// Analyze builds wizard steps for arbitrary template text, memoised by
// content hash. Callers must not mutate the returned slice.
func (c *Catalog) Analyze(content string) []wizard.Step {
	key := ContentHashHex([]byte(content))
	if steps, ok := c.steps.Get(key); ok {
		return steps
	}
	steps := wizard.BuildSteps(content)
	c.steps.Add(key, steps)
	return steps
}

// ContentHashHex returns the hex-encoded SHA-256 of data.
func ContentHashHex(data []byte) string {
	h := sha256.Sum256(data)
	return hex.EncodeToString(h[:])
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
