package universe

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/simonhull/firebird-suite/kestrel/internal/graph"
)

// Parser discovers and parses all BUILD.yml files under a project root.
// Directories matching an ignore glob (doublestar syntax, e.g.
// "vendor/**" or "**/node_modules") are skipped entirely.
type Parser struct {
	root   string
	ignore []string
}

// NewParser creates a parser rooted at dir with the given ignore globs.
func NewParser(dir string, ignore []string) *Parser {
	return &Parser{root: dir, ignore: ignore}
}

// ParseAll walks the project tree and returns every declared target node.
// Duplicate declarations across files surface later, when the universe graph
// is constructed.
func (p *Parser) ParseAll() ([]*graph.TargetNode, error) {
	var nodes []*graph.TargetNode

	err := filepath.WalkDir(p.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, relErr := filepath.Rel(p.root, path)
		if relErr != nil {
			return relErr
		}
		rel = filepath.ToSlash(rel)

		if d.IsDir() {
			if rel != "." && p.ignored(rel) {
				return filepath.SkipDir
			}
			return nil
		}
		if d.Name() != BuildFileName || p.ignored(rel) {
			return nil
		}

		data, readErr := os.ReadFile(path)
		if readErr != nil {
			return &graph.ConstructionError{
				Reason: fmt.Sprintf("reading %s", rel),
				Err:    readErr,
			}
		}
		pkg := filepath.ToSlash(filepath.Dir(rel))
		if pkg == "." {
			pkg = ""
		}
		parsed, parseErr := parseBuildFile(data, pkg)
		if parseErr != nil {
			return parseErr
		}
		nodes = append(nodes, parsed...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return nodes, nil
}

func (p *Parser) ignored(rel string) bool {
	for _, pattern := range p.ignore {
		if ok, err := doublestar.Match(pattern, rel); err == nil && ok {
			return true
		}
	}
	return false
}
