// Package merger writes generated test classes into Go source files,
// creating them or appending missing methods to existing ones.
package merger

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/chriserin/gherkinstub/internal/generator"
	"github.com/chriserin/gherkinstub/internal/naming"
)

// Result describes what Write did to a single file.
type Result struct {
	Path      string
	Class     string
	Created   bool
	Untouched bool     // the file exists but does not declare Class
	Added     []string // method names written
	Skipped   []string // method names already present
}

// Changed reports whether the file on disk was written.
func (r *Result) Changed() bool {
	return r.Created || len(r.Added) > 0
}

// WriteError wraps a filesystem or parse failure for one file.
type WriteError struct {
	Op   string
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}

// Write places class under targetDir. Each segment of the dotted package
// name becomes a directory and the file is named after the class in snake
// case.
//
// A missing file is created with every method. An existing file that
// declares the class gets only the methods it lacks; when none are missing
// it is not rewritten. An existing file without the class is left alone and
// reported as Untouched. Nothing is written when the existing file does not
// parse.
func Write(class *generator.GeneratedClass, targetDir string) (*Result, error) {
	if err := validate(class); err != nil {
		return nil, err
	}

	dir := PackageDir(targetDir, class.PackageName)
	path := filepath.Join(dir, naming.FileName(class.Name))
	res := &Result{Path: path, Class: class.Name}

	src, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		err = create(res, class, dir)
	case err != nil:
		err = &WriteError{Op: "read", Path: path, Err: err}
	default:
		err = merge(res, class, src)
	}
	if err != nil {
		return nil, err
	}
	return res, nil
}

// PackageDir is the directory under targetDir for a dotted package name.
func PackageDir(targetDir, packageName string) string {
	return filepath.Join(append([]string{targetDir}, strings.Split(packageName, ".")...)...)
}

func create(res *Result, class *generator.GeneratedClass, dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return &WriteError{Op: "mkdir", Path: dir, Err: err}
	}
	data, err := NewDocument(class).Bytes()
	if err != nil {
		return &WriteError{Op: "render", Path: res.Path, Err: err}
	}
	if err := writeFileAtomic(res.Path, data, 0o644); err != nil {
		return &WriteError{Op: "write", Path: res.Path, Err: err}
	}
	res.Created = true
	for _, m := range class.Methods {
		res.Added = append(res.Added, m.Name)
	}
	return nil
}

func merge(res *Result, class *generator.GeneratedClass, src []byte) error {
	doc, err := ParseDocument(src)
	if err != nil {
		return &WriteError{Op: "parse", Path: res.Path, Err: err}
	}
	if !doc.HasType(class.Name) {
		res.Untouched = true
		return nil
	}

	add, skipped := Reconcile(doc.Methods(class.Name), class.Methods)
	res.Skipped = skipped
	if len(add) == 0 {
		return nil
	}

	if err := doc.AppendMethods(class.Name, add); err != nil {
		return &WriteError{Op: "merge", Path: res.Path, Err: err}
	}
	data, err := doc.Bytes()
	if err != nil {
		return &WriteError{Op: "render", Path: res.Path, Err: err}
	}

	perm := fs.FileMode(0o644)
	if info, err := os.Stat(res.Path); err == nil {
		perm = info.Mode().Perm()
	}
	if err := writeFileAtomic(res.Path, data, perm); err != nil {
		return &WriteError{Op: "write", Path: res.Path, Err: err}
	}
	for _, m := range add {
		res.Added = append(res.Added, m.Name)
	}
	return nil
}

func validate(class *generator.GeneratedClass) error {
	if class.PackageName == "" {
		return &naming.InvalidNameError{Phrase: class.PackageName, Reason: "package name is required"}
	}
	for _, seg := range strings.Split(class.PackageName, ".") {
		if seg == "" {
			return &naming.InvalidNameError{Phrase: class.PackageName, Reason: "empty package segment"}
		}
	}
	if pkg := packageClause(class.PackageName); !naming.IsIdentifier(pkg) {
		return &naming.InvalidNameError{Phrase: pkg, Reason: "not a valid Go package name"}
	}
	if !naming.IsIdentifier(class.Name) {
		return &naming.InvalidNameError{Phrase: class.Name, Reason: "not a valid Go identifier"}
	}
	for _, m := range class.Methods {
		if !naming.IsIdentifier(Identifier(m)) {
			return &naming.InvalidNameError{Phrase: m.Name, Reason: "not a valid Go identifier"}
		}
	}
	return nil
}

// writeFileAtomic replaces path through a temporary file in the same
// directory so readers never observe a partial write.
func writeFileAtomic(path string, data []byte, perm fs.FileMode) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer func() {
		if tmpName != "" {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, perm); err != nil {
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		return err
	}
	tmpName = ""
	return nil
}
