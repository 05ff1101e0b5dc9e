package merger

import (
	"bytes"
	"errors"
	"fmt"
	"go/format"
	"go/token"

	"github.com/dave/dst"
	"github.com/dave/dst/decorator"

	"github.com/chriserin/gherkinstub/internal/generator"
)

// ErrUnparsable is wrapped by errors for existing files that are not valid Go.
var ErrUnparsable = errors.New("existing file is not valid Go")

const defaultReceiver = "s"

// Document is a Go source file held as a decorated syntax tree, so comments
// and layout survive a parse, patch and print cycle.
type Document struct {
	file *dst.File
}

// ParseDocument parses Go source.
func ParseDocument(src []byte) (*Document, error) {
	f, err := decorator.Parse(src)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnparsable, err)
	}
	return &Document{file: f}, nil
}

// NewDocument builds the complete file for class: package clause, imports,
// the suite type, its Test runner and one method per generated method.
func NewDocument(class *generator.GeneratedClass) *Document {
	f := &dst.File{
		Name: dst.NewIdent(packageClause(class.PackageName)),
		Decls: []dst.Decl{
			importDecl(),
			suiteTypeDecl(class),
			runnerDecl(class.Name),
		},
	}
	for _, m := range class.Methods {
		f.Decls = append(f.Decls, methodDecl(class.Name, defaultReceiver, true, m))
	}
	return &Document{file: f}
}

// PackageName returns the package clause.
func (d *Document) PackageName() string {
	return d.file.Name.Name
}

// HasType reports whether the file declares a type named name.
func (d *Document) HasType(name string) bool {
	for _, decl := range d.file.Decls {
		if declaresType(decl, name) {
			return true
		}
	}
	return false
}

// Methods returns the names of the methods declared on typeName, in file order.
func (d *Document) Methods(typeName string) []string {
	var names []string
	for _, decl := range d.file.Decls {
		if fn, ok := decl.(*dst.FuncDecl); ok && receiverType(fn) == typeName {
			names = append(names, fn.Name.Name)
		}
	}
	return names
}

// AppendMethods adds methods to typeName after the last declaration that
// belongs to it. The receiver name and pointer-ness of existing methods are
// reused.
func (d *Document) AppendMethods(typeName string, methods []generator.GeneratedMethod) error {
	at := d.lastDeclOf(typeName)
	if at < 0 {
		return fmt.Errorf("type %s not declared", typeName)
	}
	recv, pointer := d.receiverOf(typeName)

	added := make([]dst.Decl, 0, len(methods))
	for _, m := range methods {
		added = append(added, methodDecl(typeName, recv, pointer, m))
	}

	decls := make([]dst.Decl, 0, len(d.file.Decls)+len(added))
	decls = append(decls, d.file.Decls[:at+1]...)
	decls = append(decls, added...)
	decls = append(decls, d.file.Decls[at+1:]...)
	d.file.Decls = decls
	return nil
}

// Bytes prints the document and normalizes it with gofmt rules.
func (d *Document) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := decorator.Fprint(&buf, d.file); err != nil {
		return nil, fmt.Errorf("printing file: %w", err)
	}
	out, err := format.Source(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("formatting file: %w", err)
	}
	return out, nil
}

// lastDeclOf returns the index of the last declaration of the type itself,
// one of its methods or its Test runner; -1 when the type is not declared.
func (d *Document) lastDeclOf(typeName string) int {
	last := -1
	for i, decl := range d.file.Decls {
		switch {
		case declaresType(decl, typeName):
			last = i
		case isMethodOrRunner(decl, typeName):
			last = i
		}
	}
	return last
}

func (d *Document) receiverOf(typeName string) (string, bool) {
	for _, decl := range d.file.Decls {
		fn, ok := decl.(*dst.FuncDecl)
		if !ok || receiverType(fn) != typeName {
			continue
		}
		field := fn.Recv.List[0]
		_, pointer := field.Type.(*dst.StarExpr)
		if len(field.Names) == 0 || field.Names[0].Name == "_" {
			return defaultReceiver, pointer
		}
		return field.Names[0].Name, pointer
	}
	return defaultReceiver, true
}

func declaresType(decl dst.Decl, name string) bool {
	gen, ok := decl.(*dst.GenDecl)
	if !ok || gen.Tok != token.TYPE {
		return false
	}
	for _, spec := range gen.Specs {
		if ts, ok := spec.(*dst.TypeSpec); ok && ts.Name.Name == name {
			return true
		}
	}
	return false
}

func isMethodOrRunner(decl dst.Decl, typeName string) bool {
	fn, ok := decl.(*dst.FuncDecl)
	if !ok {
		return false
	}
	if fn.Recv == nil {
		return fn.Name.Name == runnerName(typeName)
	}
	return receiverType(fn) == typeName
}

func receiverType(fn *dst.FuncDecl) string {
	if fn.Recv == nil || len(fn.Recv.List) == 0 {
		return ""
	}
	return baseTypeName(fn.Recv.List[0].Type)
}

func baseTypeName(expr dst.Expr) string {
	switch t := expr.(type) {
	case *dst.Ident:
		return t.Name
	case *dst.StarExpr:
		return baseTypeName(t.X)
	case *dst.ParenExpr:
		return baseTypeName(t.X)
	case *dst.IndexExpr:
		return baseTypeName(t.X)
	case *dst.IndexListExpr:
		return baseTypeName(t.X)
	}
	return ""
}
