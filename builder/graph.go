package builder

import (
	"errors"
	"fmt"
	"hash/fnv"
	"os"
	"path/filepath"

	"golang.org/x/mod/modfile"
	"gonum.org/v1/gonum/graph/multi"
	"gonum.org/v1/gonum/graph/topo"
)

type programNode struct {
	program *Program
	id      int64
}

func (n *programNode) ID() int64 {
	return n.id
}

func makeNode(program *Program) *programNode {
	hasher := fnv.New64()
	hasher.Write([]byte(program.path))
	return &programNode{
		program: program,
		id:      int64(hasher.Sum64()),
	}
}

// resolveImportPaths determines each program's import path from the
// enclosing module so import edges between the scanned packages can be
// recognized.
func resolveImportPaths(programs []*Program) error {
	for _, program := range programs {
		root, module, err := findModule(program.path)
		if err != nil {
			return err
		}
		abs, err := filepath.Abs(program.path)
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(root, abs)
		if err != nil {
			return err
		}
		if rel == "." {
			program.importPath = module
		} else {
			program.importPath = module + "/" + filepath.ToSlash(rel)
		}
	}
	return nil
}

// findModule walks up from the directory to the nearest go.mod and returns
// the module root and module path.
func findModule(dir string) (string, string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", "", err
	}
	for {
		data, err := os.ReadFile(filepath.Join(dir, "go.mod"))
		if err == nil {
			module := modfile.ModulePath(data)
			if module == "" {
				return "", "", fmt.Errorf("%w: malformed go.mod in %s", ErrNoModule, dir)
			}
			return dir, module, nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			return "", "", err
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", "", ErrNoModule
		}
		dir = parent
	}
}

// orderPrograms sorts the programs topologically so every package is
// transformed after the packages it imports.
func orderPrograms(programs []*Program) ([]*Program, error) {
	if err := resolveImportPaths(programs); err != nil {
		return nil, err
	}

	byImport := map[string]*programNode{}
	nodes := make([]*programNode, len(programs))
	for i, program := range programs {
		node := makeNode(program)
		nodes[i] = node
		byImport[program.importPath] = node
	}

	graph := multi.NewDirectedGraph()
	for _, node := range nodes {
		graph.AddNode(node)
	}
	for _, node := range nodes {
		for _, path := range node.program.imports() {
			if imported, ok := byImport[path]; ok && imported != node {
				graph.SetLine(graph.NewLine(imported, node))
			}
		}
	}

	sorted, sortErr := topo.Sort(graph)
	if sortErr != nil {
		return nil, sortErr
	}

	ordered := make([]*Program, len(sorted))
	for i, node := range sorted {
		ordered[i] = node.(*programNode).program
	}
	return ordered, nil
}
