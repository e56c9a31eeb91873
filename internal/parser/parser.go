// Package parser scans Go packages for //proof:: annotations and turns them
// into the metadata the generator consumes. Scanning is a two step affair:
// ParseDirectory and ParseSource discover error sets, parsers and routes
// inside one package, and FinalizeRoutes classifies route parameters once
// every package's parsers are registered.
package parser

import (
	"fmt"
	"go/ast"
	goparser "go/parser"
	"go/token"
	"io/fs"
	"sort"
	"strings"

	"github.com/stifskere/proofroute/internal/annotations"
	"github.com/stifskere/proofroute/internal/models"
	"github.com/stifskere/proofroute/pkg/proof"
)

// proofImportPath is the import path generated wrappers use for the runtime
// helpers.
const proofImportPath = "github.com/stifskere/proofroute/pkg/proof"

// Parser scans Go source for proof annotations.
type Parser struct {
	fileSet *token.FileSet
	engine  annotations.ParserEngine
}

// NewParser creates a parser backed by the builtin annotation schemas.
func NewParser() *Parser {
	return &Parser{
		fileSet: token.NewFileSet(),
		engine:  annotations.NewParser(annotations.DefaultRegistry()),
	}
}

// ParseDirectory parses all Go files in a directory and extracts the
// annotated declarations. importPath is the module-relative import path of
// the directory; it may be empty when generation runs outside a module.
func (p *Parser) ParseDirectory(packagePath, importPath string) (*models.PackageMetadata, error) {
	noTests := func(info fs.FileInfo) bool {
		return !strings.HasSuffix(info.Name(), "_test.go")
	}

	pkgs, err := goparser.ParseDir(p.fileSet, packagePath, noTests, goparser.ParseComments)
	if err != nil {
		return nil, fmt.Errorf("failed to parse directory %s: %w", packagePath, err)
	}
	if len(pkgs) == 0 {
		return nil, fmt.Errorf("no Go source files in %s", packagePath)
	}
	if len(pkgs) > 1 {
		names := make([]string, 0, len(pkgs))
		for name := range pkgs {
			names = append(names, name)
		}
		sort.Strings(names)
		return nil, fmt.Errorf("multiple packages in %s: %s", packagePath, strings.Join(names, ", "))
	}

	for name, pkg := range pkgs {
		return p.buildPackage(name, pkg.Files, packagePath, importPath)
	}
	return nil, nil
}

// ParseSource parses a single in-memory file. Used by tests and by tools
// embedding the scanner.
func (p *Parser) ParseSource(filename string, source any) (*models.PackageMetadata, error) {
	file, err := goparser.ParseFile(p.fileSet, filename, source, goparser.ParseComments)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filename, err)
	}
	files := map[string]*ast.File{filename: file}
	return p.buildPackage(file.Name.Name, files, "", "")
}

// ParseSources parses a set of in-memory files belonging to one package,
// keyed by file name.
func (p *Parser) ParseSources(sources map[string]string) (*models.PackageMetadata, error) {
	names := make([]string, 0, len(sources))
	for name := range sources {
		names = append(names, name)
	}
	sort.Strings(names)

	files := make(map[string]*ast.File, len(sources))
	packageName := ""
	for _, name := range names {
		file, err := goparser.ParseFile(p.fileSet, name, sources[name], goparser.ParseComments)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", name, err)
		}
		if packageName == "" {
			packageName = file.Name.Name
		} else if packageName != file.Name.Name {
			return nil, fmt.Errorf("multiple packages in sources: %s, %s", packageName, file.Name.Name)
		}
		files[name] = file
	}
	return p.buildPackage(packageName, files, "", "")
}

func (p *Parser) buildPackage(packageName string, files map[string]*ast.File, packagePath, importPath string) (*models.PackageMetadata, error) {
	pkg := &models.PackageMetadata{
		PackageName: packageName,
		PackagePath: packagePath,
		ImportPath:  importPath,
	}
	if err := p.processAnnotations(pkg, files); err != nil {
		return nil, err
	}
	return pkg, nil
}

// annotatedDecl couples one top-level declaration with the proof
// annotations found in its doc comment.
type annotatedDecl struct {
	fileName string
	file     *ast.File
	typeSpec *ast.TypeSpec
	funcDecl *ast.FuncDecl
	anns     []*annotations.ParsedAnnotation
}

// packageScan is the raw material one walk over the package produces:
// annotated declarations in declaration order plus the lookup indexes
// structural validation needs.
type packageScan struct {
	decls     []annotatedDecl
	functions map[string]*ast.FuncDecl
	methods   map[string][]*ast.FuncDecl
}

// processAnnotations resolves every annotation in the package. Files are
// visited in sorted name order so declaration order, and with it the arm
// order of rendered error sets, is stable across runs.
func (p *Parser) processAnnotations(pkg *models.PackageMetadata, files map[string]*ast.File) error {
	fileNames := make([]string, 0, len(files))
	for name := range files {
		fileNames = append(fileNames, name)
	}
	sort.Strings(fileNames)

	scan, err := p.scanPackage(files, fileNames)
	if err != nil {
		return err
	}

	if err := p.collectErrorSets(pkg, scan); err != nil {
		return err
	}
	if err := p.collectVariants(pkg, scan); err != nil {
		return err
	}
	return p.collectFunctions(pkg, scan)
}

// scanPackage walks the top-level declarations of every file, parses the
// annotations in their doc comments and indexes functions and methods for
// later lookups. A malformed annotation fails the scan instead of being
// skipped: an annotation the generator would silently ignore is worse than
// a build failure.
func (p *Parser) scanPackage(files map[string]*ast.File, fileNames []string) (*packageScan, error) {
	scan := &packageScan{
		functions: make(map[string]*ast.FuncDecl),
		methods:   make(map[string][]*ast.FuncDecl),
	}

	for _, fileName := range fileNames {
		file := files[fileName]
		for _, decl := range file.Decls {
			switch d := decl.(type) {
			case *ast.GenDecl:
				if d.Tok != token.TYPE {
					anns, err := p.extractAnnotations(d.Doc, fileName)
					if err != nil {
						return nil, err
					}
					if len(anns) > 0 {
						pos := p.fileSet.Position(d.Pos())
						return nil, models.NewValidationError(fileName, pos.Line,
							"//proof::%s must annotate a type or function declaration", anns[0].Type)
					}
					continue
				}
				if err := p.scanTypeDecl(scan, fileName, file, d); err != nil {
					return nil, err
				}

			case *ast.FuncDecl:
				if d.Recv != nil {
					base := receiverBaseName(d)
					if base != "" {
						scan.methods[base] = append(scan.methods[base], d)
					}
				} else {
					scan.functions[d.Name.Name] = d
				}

				anns, err := p.extractAnnotations(d.Doc, fileName)
				if err != nil {
					return nil, err
				}
				if len(anns) > 0 {
					scan.decls = append(scan.decls, annotatedDecl{
						fileName: fileName,
						file:     file,
						funcDecl: d,
						anns:     anns,
					})
				}
			}
		}
	}

	return scan, nil
}

func (p *Parser) scanTypeDecl(scan *packageScan, fileName string, file *ast.File, decl *ast.GenDecl) error {
	declAnns, err := p.extractAnnotations(decl.Doc, fileName)
	if err != nil {
		return err
	}
	if len(declAnns) > 0 && len(decl.Specs) != 1 {
		pos := p.fileSet.Position(decl.Pos())
		return models.NewValidationError(fileName, pos.Line,
			"annotations on a grouped type declaration are ambiguous, annotate each type instead")
	}

	for _, spec := range decl.Specs {
		typeSpec, ok := spec.(*ast.TypeSpec)
		if !ok {
			continue
		}
		specAnns, err := p.extractAnnotations(typeSpec.Doc, fileName)
		if err != nil {
			return err
		}
		anns := append(append([]*annotations.ParsedAnnotation{}, declAnns...), specAnns...)
		if len(anns) > 0 {
			scan.decls = append(scan.decls, annotatedDecl{
				fileName: fileName,
				file:     file,
				typeSpec: typeSpec,
				anns:     anns,
			})
		}
	}
	return nil
}

// extractAnnotations parses every proof annotation in one doc comment.
func (p *Parser) extractAnnotations(doc *ast.CommentGroup, fileName string) ([]*annotations.ParsedAnnotation, error) {
	if doc == nil {
		return nil, nil
	}

	var anns []*annotations.ParsedAnnotation
	for _, comment := range doc.List {
		if !annotations.IsAnnotation(comment.Text) {
			continue
		}
		pos := p.fileSet.Position(comment.Pos())
		location := annotations.SourceLocation{File: fileName, Line: pos.Line, Column: pos.Column}
		ann, err := p.engine.ParseAnnotation(comment.Text, location)
		if err != nil {
			return nil, err
		}
		anns = append(anns, ann)
	}
	return anns, nil
}

// collectErrorSets resolves every //proof::errors annotation. Sets are
// collected before variants and routes so that membership and result shapes
// can refer to sets declared later in the package.
func (p *Parser) collectErrorSets(pkg *models.PackageMetadata, scan *packageScan) error {
	for _, decl := range scan.decls {
		if decl.typeSpec == nil {
			continue
		}
		typeName := decl.typeSpec.Name.Name
		seen := false

		for _, ann := range decl.anns {
			switch ann.Type {
			case annotations.ErrorsAnnotation:
				if seen {
					return models.NewValidationError(decl.fileName, ann.Location.Line,
						"duplicate //proof::errors annotation on type %s", typeName)
				}
				seen = true
				if err := p.addErrorSet(pkg, scan, decl, ann); err != nil {
					return err
				}

			case annotations.VariantAnnotation:
				// Attached in the variant pass.

			default:
				return models.NewValidationError(decl.fileName, ann.Location.Line,
					"//proof::%s cannot annotate type %s, it applies to functions", ann.Type, typeName)
			}
		}
	}
	return nil
}

func (p *Parser) addErrorSet(pkg *models.PackageMetadata, scan *packageScan, decl annotatedDecl, ann *annotations.ParsedAnnotation) error {
	typeName := decl.typeSpec.Name.Name
	iface, ok := decl.typeSpec.Type.(*ast.InterfaceType)
	if !ok {
		return models.NewValidationError(decl.fileName, ann.Location.Line,
			"//proof::errors requires an interface type, %s is not an interface", typeName)
	}

	marker, problem := analyzeErrorInterface(iface)
	if problem != "" {
		return models.NewValidationError(decl.fileName, ann.Location.Line,
			"error set %s %s", typeName, problem)
	}

	transformer := ann.GetString("Transformer")
	if transformer != "" {
		if err := p.validateTransformer(scan, transformer, decl.fileName, ann.Location.Line); err != nil {
			return err
		}
	}

	pos := p.fileSet.Position(decl.typeSpec.Pos())
	pkg.ErrorSets = append(pkg.ErrorSets, models.ErrorSetMetadata{
		Name:         typeName,
		Transformer:  transformer,
		MarkerMethod: marker,
		FileName:     decl.fileName,
		Line:         pos.Line,
	})
	return nil
}

func (p *Parser) validateTransformer(scan *packageScan, name, fileName string, line int) error {
	fn, ok := scan.functions[name]
	if !ok {
		return models.NewValidationError(fileName, line,
			"transformer %s is not declared in this package", name)
	}
	if !isTransformerSignature(fn) {
		return models.NewValidationError(fileName, line,
			"transformer %s must have signature func(*proof.ResponseBuilder, string) *proof.Response", name)
	}
	return nil
}

// collectVariants attaches every //proof::variant annotation to its set, in
// declaration order. A struct belongs to at most one set and each variant
// must supply its own display string through Error().
func (p *Parser) collectVariants(pkg *models.PackageMetadata, scan *packageScan) error {
	owners := make(map[string]string)

	for _, decl := range scan.decls {
		if decl.typeSpec == nil {
			continue
		}
		typeName := decl.typeSpec.Name.Name

		for _, ann := range decl.anns {
			if ann.Type != annotations.VariantAnnotation {
				continue
			}

			if _, ok := decl.typeSpec.Type.(*ast.StructType); !ok {
				return models.NewValidationError(decl.fileName, ann.Location.Line,
					"//proof::variant requires a struct type, %s is not a struct", typeName)
			}

			setName := ann.PositionalAt(0)
			set := pkg.ErrorSet(setName)
			if set == nil {
				return models.NewValidationError(decl.fileName, ann.Location.Line,
					"variant %s references undeclared error set %s", typeName, setName)
			}

			if owner, claimed := owners[typeName]; claimed {
				if owner == setName {
					return models.NewValidationError(decl.fileName, ann.Location.Line,
						"duplicate //proof::variant annotation on struct %s", typeName)
				}
				return models.NewValidationError(decl.fileName, ann.Location.Line,
					"struct %s already belongs to error set %s", typeName, owner)
			}
			owners[typeName] = setName

			statusIdent := ann.GetString("Status")
			statusConstant := ServerFaultConstant
			if statusIdent != "" {
				constant, known := ResolveStatus(statusIdent)
				if !known {
					return models.NewValidationError(decl.fileName, ann.Location.Line,
						"unknown status %s, use a name like BadRequest, NotFound or ImATeapot", statusIdent)
				}
				statusConstant = constant
			}

			if !hasErrorMethod(scan.methods[typeName]) {
				return models.NewValidationError(decl.fileName, ann.Location.Line,
					"variant %s must implement Error() string", typeName)
			}

			pos := p.fileSet.Position(decl.typeSpec.Pos())
			set.Variants = append(set.Variants, models.VariantMetadata{
				Name:           typeName,
				StatusIdent:    statusIdent,
				StatusConstant: statusConstant,
				FileName:       decl.fileName,
				Line:           pos.Line,
			})
		}
	}
	return nil
}

// collectFunctions resolves //proof::route, //proof::or and //proof::parser
// annotations on package-level functions.
func (p *Parser) collectFunctions(pkg *models.PackageMetadata, scan *packageScan) error {
	registered := make(map[string]string)
	parserFiles := make(map[string]models.ParserMetadata)

	for _, decl := range scan.decls {
		if decl.funcDecl == nil {
			continue
		}

		var routeAnn, parserAnn *annotations.ParsedAnnotation
		var orAnns []*annotations.ParsedAnnotation
		funcName := decl.funcDecl.Name.Name

		for _, ann := range decl.anns {
			switch ann.Type {
			case annotations.RouteAnnotation:
				if routeAnn != nil {
					return models.NewValidationError(decl.fileName, ann.Location.Line,
						"duplicate //proof::route annotation on function %s", funcName)
				}
				routeAnn = ann
			case annotations.OrAnnotation:
				orAnns = append(orAnns, ann)
			case annotations.ParserAnnotation:
				if parserAnn != nil {
					return models.NewValidationError(decl.fileName, ann.Location.Line,
						"duplicate //proof::parser annotation on function %s", funcName)
				}
				parserAnn = ann
			default:
				return models.NewValidationError(decl.fileName, ann.Location.Line,
					"//proof::%s cannot annotate function %s, it applies to types", ann.Type, funcName)
			}
		}

		if routeAnn != nil && parserAnn != nil {
			return models.NewValidationError(decl.fileName, parserAnn.Location.Line,
				"function %s cannot be both a route and a parser", funcName)
		}
		if routeAnn == nil && len(orAnns) > 0 {
			return models.NewValidationError(decl.fileName, orAnns[0].Location.Line,
				"//proof::or requires a //proof::route annotation on the same function")
		}

		if parserAnn != nil {
			if err := p.addParser(pkg, parserFiles, decl, parserAnn); err != nil {
				return err
			}
		}
		if routeAnn != nil {
			if err := p.addRoute(pkg, registered, decl, routeAnn, orAnns); err != nil {
				return err
			}
		}
	}
	return nil
}

func (p *Parser) addParser(pkg *models.PackageMetadata, parserFiles map[string]models.ParserMetadata, decl annotatedDecl, ann *annotations.ParsedAnnotation) error {
	funcName := decl.funcDecl.Name.Name
	if decl.funcDecl.Recv != nil {
		return models.NewValidationError(decl.fileName, ann.Location.Line,
			"//proof::parser requires a package-level function, %s is a method", funcName)
	}

	typeName := ann.PositionalAt(0)
	if proof.IsBuiltinType(typeName) {
		return models.NewParserConflictError(typeName, decl.fileName, ann.Location.Line, "", 0)
	}
	if existing, ok := parserFiles[typeName]; ok {
		return models.NewParserConflictError(typeName, decl.fileName, ann.Location.Line, existing.FileName, existing.Line)
	}

	if !isParserSignature(decl.funcDecl, typeName) {
		return models.NewValidationError(decl.fileName, ann.Location.Line,
			"parser %s must have signature func(string) (%s, error)", funcName, typeName)
	}

	pos := p.fileSet.Position(decl.funcDecl.Pos())
	parser := models.ParserMetadata{
		TypeName:       typeName,
		FunctionName:   funcName,
		PackagePath:    pkg.ImportPath,
		ParameterTypes: flattenFieldTypes(decl.funcDecl.Type.Params),
		ReturnTypes:    flattenFieldTypes(decl.funcDecl.Type.Results),
		FileName:       decl.fileName,
		Line:           pos.Line,
	}
	parserFiles[typeName] = parser
	pkg.Parsers = append(pkg.Parsers, parser)
	return nil
}

func (p *Parser) addRoute(pkg *models.PackageMetadata, registered map[string]string, decl annotatedDecl, routeAnn *annotations.ParsedAnnotation, orAnns []*annotations.ParsedAnnotation) error {
	funcName := decl.funcDecl.Name.Name
	if decl.funcDecl.Recv != nil {
		return models.NewValidationError(decl.fileName, routeAnn.Location.Line,
			"//proof::route requires a package-level function, %s is a method", funcName)
	}

	method := strings.ToUpper(routeAnn.PositionalAt(0))
	path := routeAnn.PositionalAt(1)
	if err := proof.Path(path).Validate(); err != nil {
		return models.NewValidationError(decl.fileName, routeAnn.Location.Line,
			"invalid route path: %v", err)
	}

	routeKey := method + " " + path
	if owner, exists := registered[routeKey]; exists {
		return models.NewValidationError(decl.fileName, routeAnn.Location.Line,
			"route %s %s already registered by %s", method, path, owner)
	}
	registered[routeKey] = funcName

	params, err := p.extractParameters(decl.funcDecl, decl.file, decl.fileName)
	if err != nil {
		return err
	}
	result, err := p.analyzeResultShape(decl.funcDecl, pkg, decl.fileName)
	if err != nil {
		return err
	}

	for _, orAnn := range orAnns {
		target := orAnn.PositionalAt(0)
		expr := orAnn.PositionalAt(1)
		param := findParameter(params, target)
		if param == nil {
			return models.NewValidationError(decl.fileName, orAnn.Location.Line,
				"//proof::or targets unknown parameter %s of %s", target, funcName)
		}
		if param.OverrideSet {
			return models.NewValidationError(decl.fileName, orAnn.Location.Line,
				"duplicate //proof::or annotation for parameter %s", target)
		}
		parsed, parseErr := goparser.ParseExpr(expr)
		if parseErr != nil {
			return models.NewValidationError(decl.fileName, orAnn.Location.Line,
				"//proof::or expression %q for parameter %s is not a valid Go expression", expr, target)
		}
		param.Override = expr
		param.OverrideSet = true
		param.OverrideImports = overrideImports(parsed, decl.file)
	}

	pos := p.fileSet.Position(decl.funcDecl.Pos())
	pkg.Routes = append(pkg.Routes, models.RouteMetadata{
		Method:      method,
		Path:        path,
		HandlerName: funcName,
		Parameters:  params,
		Result:      result,
		FileName:    decl.fileName,
		Line:        pos.Line,
	})
	return nil
}

func findParameter(params []models.Parameter, name string) *models.Parameter {
	for i := range params {
		if params[i].Name == name {
			return &params[i]
		}
	}
	return nil
}
