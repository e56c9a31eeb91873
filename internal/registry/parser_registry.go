package registry

import (
	"sort"
	"sync"

	"github.com/stifskere/proofroute/internal/models"
	"github.com/stifskere/proofroute/pkg/proof"
)

// ParserRegistryInterface defines the interface for parser registry operations
type ParserRegistryInterface interface {
	RegisterParser(parser models.ParserMetadata) error
	GetParser(typeName string) (models.ParserMetadata, bool)
	ListParsers() []string
	HasParser(typeName string) bool
	ClearCustomParsers()
}

// ParserRegistry manages the parameter parsers visible to route generation,
// the runtime builtins plus every //proof::parser registration discovered
// across the module.
type ParserRegistry struct {
	parsers map[string]models.ParserMetadata
	mu      sync.RWMutex
}

// NewParserRegistry creates a new parser registry with built-in parsers
func NewParserRegistry() *ParserRegistry {
	registry := &ParserRegistry{
		parsers: make(map[string]models.ParserMetadata),
	}

	for _, parser := range proof.BuiltinParsers {
		registry.parsers[parser.TypeName] = builtinMetadata(parser)
	}

	return registry
}

// builtinMetadata converts a runtime parser entry into discovery metadata
func builtinMetadata(parser proof.ParserMetadata) models.ParserMetadata {
	return models.ParserMetadata{
		TypeName:       parser.TypeName,
		FunctionName:   parser.FunctionName,
		PackagePath:    parser.PackagePath,
		Builtin:        true,
		ParameterTypes: parser.ParameterTypes,
		ReturnTypes:    parser.ReturnTypes,
	}
}

// RegisterParser registers a new parser for a type
func (r *ParserRegistry) RegisterParser(parser models.ParserMetadata) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, exists := r.parsers[parser.TypeName]; exists {
		return models.NewParserConflictError(
			parser.TypeName,
			parser.FileName,
			parser.Line,
			existing.FileName,
			existing.Line,
		)
	}

	r.parsers[parser.TypeName] = parser
	return nil
}

// GetParser retrieves a parser for a type, resolving aliases
func (r *ParserRegistry) GetParser(typeName string) (models.ParserMetadata, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if parser, exists := r.parsers[typeName]; exists {
		return parser, true
	}

	resolvedType := proof.ResolveTypeAlias(typeName)
	if resolvedType != typeName {
		if parser, exists := r.parsers[resolvedType]; exists {
			return parser, true
		}
	}

	return models.ParserMetadata{}, false
}

// ListParsers returns all registered parser type names in sorted order
func (r *ParserRegistry) ListParsers() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	types := make([]string, 0, len(r.parsers))
	for typeName := range r.parsers {
		types = append(types, typeName)
	}
	sort.Strings(types)
	return types
}

// HasParser checks if a parser is registered for a type, resolving aliases
func (r *ParserRegistry) HasParser(typeName string) bool {
	_, exists := r.GetParser(typeName)
	return exists
}

// ClearCustomParsers removes custom parsers, keeping built-in parsers
func (r *ParserRegistry) ClearCustomParsers() {
	r.mu.Lock()
	defer r.mu.Unlock()

	for typeName, parser := range r.parsers {
		if !parser.Builtin {
			delete(r.parsers, typeName)
		}
	}
}
