package parser

import (
	"sort"
	"strings"
	"unicode"

	"github.com/stifskere/proofroute/internal/models"
	"github.com/stifskere/proofroute/internal/registry"
	"github.com/stifskere/proofroute/pkg/proof"
)

// FinalizeRoutes classifies every route parameter of the package. It runs
// after scanning so the registry holds the custom parsers of every scanned
// package, not just this one.
//
// Parameters resolve in precedence order: the request context passes
// through, names matching a path segment extract from the path, types with
// a registered parser extract from the query string, and the remaining
// struct-shaped type binds the request body.
func (p *Parser) FinalizeRoutes(pkg *models.PackageMetadata, parsers registry.ParserRegistryInterface) error {
	for i := range pkg.Routes {
		if err := p.finalizeRoute(pkg, &pkg.Routes[i], parsers); err != nil {
			return err
		}
	}
	return nil
}

func (p *Parser) finalizeRoute(pkg *models.PackageMetadata, route *models.RouteMetadata, parsers registry.ParserRegistryInterface) error {
	pathTypes := proof.Path(route.Path).ParamTypes()
	consumed := make(map[string]bool)
	bodyName := ""

	for i := range route.Parameters {
		param := &route.Parameters[i]

		if isContextType(param.Type) {
			if param.OverrideSet {
				return models.NewValidationError(route.FileName, route.Line,
					"parameter %s of %s cannot fail extraction, remove the //proof::or override",
					param.Name, route.HandlerName)
			}
			param.Source = models.ParameterSourceContext
			continue
		}

		if declared, isPath := pathTypes[param.Name]; isPath {
			resolved := proof.ResolveTypeAlias(declared)
			if !typesAgree(resolved, param.Type) {
				return models.NewValidationError(route.FileName, route.Line,
					"path parameter %s is declared as %s but handler %s takes %s",
					param.Name, declared, route.HandlerName, param.Type)
			}
			meta, ok := lookupParser(parsers, param.Type)
			if !ok {
				return models.NewValidationError(route.FileName, route.Line,
					"no parser registered for type %s", param.Type)
			}
			wireParser(param, meta, pkg)
			param.Source = models.ParameterSourcePath
			consumed[param.Name] = true
			continue
		}

		if meta, ok := lookupParser(parsers, param.Type); ok {
			wireParser(param, meta, pkg)
			param.Source = models.ParameterSourceQuery
			continue
		}

		if isBodyCandidate(param.Type) {
			if bodyName != "" {
				return models.NewValidationError(route.FileName, route.Line,
					"handler %s takes more than one body parameter (%s and %s)",
					route.HandlerName, bodyName, param.Name)
			}
			if typeQualifier(param.Type) != "" && param.TypeImport == "" {
				return models.NewValidationError(route.FileName, route.Line,
					"cannot resolve the package of body type %s for handler %s",
					param.Type, route.HandlerName)
			}
			bodyName = param.Name
			param.Source = models.ParameterSourceBody
			continue
		}

		return models.NewValidationError(route.FileName, route.Line,
			"no parser registered for type %s and it cannot bind as a request body", param.Type)
	}

	var missing []string
	for name := range pathTypes {
		if !consumed[name] {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return models.NewValidationError(route.FileName, route.Line,
			"path parameter %s is not a parameter of handler %s", missing[0], route.HandlerName)
	}
	return nil
}

// wireParser records which parse function the generated wrapper calls for
// this parameter and where it has to be imported from.
func wireParser(param *models.Parameter, meta models.ParserMetadata, pkg *models.PackageMetadata) {
	param.IsCustomType = !meta.Builtin
	param.ParserFunc = meta.FunctionName

	switch {
	case meta.Builtin:
		param.ParserImport = proofImportPath
	case meta.PackagePath == "" || meta.PackagePath == pkg.ImportPath:
		param.ParserImport = ""
	default:
		param.ParserImport = meta.PackagePath
	}
}

// lookupParser resolves a signature type against the registry, retrying
// with the package qualifier stripped so a type registered at its
// definition site still matches when handlers import it qualified.
func lookupParser(parsers registry.ParserRegistryInterface, typeName string) (models.ParserMetadata, bool) {
	if meta, ok := parsers.GetParser(typeName); ok {
		return meta, true
	}
	if base := typeBase(typeName); base != typeName {
		return parsers.GetParser(base)
	}
	return models.ParserMetadata{}, false
}

// typesAgree compares a path segment type against a signature type,
// tolerating package qualifiers on either side.
func typesAgree(declared, actual string) bool {
	return declared == actual || typeBase(declared) == typeBase(actual)
}

func typeBase(typeName string) string {
	if dot := strings.LastIndex(typeName, "."); dot != -1 {
		return typeName[dot+1:]
	}
	return typeName
}

// nonBindable lists type strings that look like plain identifiers but can
// never bind a request body.
var nonBindable = map[string]bool{
	"struct":     true,
	"func":       true,
	"error":      true,
	"any":        true,
	"byte":       true,
	"rune":       true,
	"int8":       true,
	"int16":      true,
	"uint8":      true,
	"uint16":     true,
	"uintptr":    true,
	"complex64":  true,
	"complex128": true,
	"unknown":    true,
}

// isBodyCandidate reports whether the type can be decoded from the request
// body: a named type or pointer to one, possibly package qualified.
func isBodyCandidate(typeName string) bool {
	name := strings.TrimPrefix(typeName, "*")
	if nonBindable[name] {
		return false
	}

	parts := strings.Split(name, ".")
	if len(parts) > 2 {
		return false
	}
	for _, part := range parts {
		if !identLike(part) {
			return false
		}
	}
	return true
}

func identLike(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		if unicode.IsLetter(r) || r == '_' {
			continue
		}
		if i > 0 && unicode.IsDigit(r) {
			continue
		}
		return false
	}
	return true
}
