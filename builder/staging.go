package builder

import (
	"bytes"
	"go/format"
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"sort"

	"golang.org/x/exp/slices"
	"golang.org/x/tools/go/ast/astutil"

	"omibyte.io/arm9rt/stub"
)

const runtimeImportPath = "omibyte.io/arm9rt/rt"

// stage writes the program's transformed sources into the staging
// directory. Files without annotated declarations are copied verbatim;
// files with them have each annotated declaration replaced by its generated
// stub, gain an import of the runtime package, and are reformatted.
func (p *Program) stage(outDir string) error {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return err
	}

	for _, filename := range p.fileNames() {
		src, err := os.ReadFile(filename)
		if err != nil {
			return err
		}

		out := src
		if stubs := p.stubs[filename]; len(stubs) > 0 {
			out, err = p.transformFile(src, stubs)
			if err != nil {
				return err
			}
		}

		staged := filepath.Join(outDir, filepath.Base(filename))
		if err := os.WriteFile(staged, out, 0o644); err != nil {
			return err
		}
	}

	return nil
}

// transformFile splices the generated stubs over their source declarations,
// adds the runtime import, and formats the result.
func (p *Program) transformFile(src []byte, stubs []*stub.Stub) ([]byte, error) {
	stubs = slices.Clone(stubs)
	sort.Slice(stubs, func(i, j int) bool {
		return stubs[i].Start < stubs[j].Start
	})

	tokFile := p.fset.File(stubs[0].Start)

	var buf bytes.Buffer
	cursor := 0
	for _, s := range stubs {
		fragment, err := s.Generate(p.fset)
		if err != nil {
			return nil, err
		}
		buf.Write(src[cursor:tokFile.Offset(s.Start)])
		buf.Write(fragment)
		cursor = tokFile.Offset(s.End)
	}
	buf.Write(src[cursor:])

	// Reparse the spliced text so the runtime import lands in the right
	// place and the whole file can be formatted.
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, tokFile.Name(), buf.Bytes(), parser.ParseComments)
	if err != nil {
		return nil, err
	}
	astutil.AddImport(fset, file, runtimeImportPath)

	var out bytes.Buffer
	if err := format.Node(&out, fset, file); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}
