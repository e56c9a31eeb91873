package generator

import (
	"fmt"
	"sort"
	"strings"
)

// importManager assigns collision free qualifiers to the import paths a
// generated file needs and renders the final import block.
type importManager struct {
	byAlias map[string]string // alias -> path
	byPath  map[string]string // path -> first alias
	forced  map[string]bool   // aliases pinned by verbatim override expressions
}

func newImportManager() *importManager {
	return &importManager{
		byAlias: make(map[string]string),
		byPath:  make(map[string]string),
		forced:  make(map[string]bool),
	}
}

// add registers an import path and returns the qualifier generated code must
// use for it. A taken name bumps to name2, name3 and so on.
func (im *importManager) add(path string) string {
	if alias, ok := im.byPath[path]; ok {
		return alias
	}
	base := assumedPackageName(path)
	alias := base
	for n := 2; ; n++ {
		if _, taken := im.byAlias[alias]; !taken {
			break
		}
		alias = fmt.Sprintf("%s%d", base, n)
	}
	im.byAlias[alias] = path
	im.byPath[path] = alias
	return alias
}

// addForced registers an import under an exact name because a verbatim
// expression already refers to it by that name.
func (im *importManager) addForced(alias, path string) error {
	if existing, ok := im.byAlias[alias]; ok {
		if existing != path {
			return fmt.Errorf("import name %s already refers to %s", alias, existing)
		}
		im.forced[alias] = true
		return nil
	}
	im.byAlias[alias] = path
	if _, ok := im.byPath[path]; !ok {
		im.byPath[path] = alias
	}
	im.forced[alias] = true
	return nil
}

// render produces the import declaration for the collected paths, standard
// library first, sorted by path within each group.
func (im *importManager) render() string {
	if len(im.byAlias) == 0 {
		return ""
	}

	var std, external []string
	for alias, path := range im.byAlias {
		line := fmt.Sprintf("%q", path)
		if alias != assumedPackageName(path) {
			line = fmt.Sprintf("%s %q", alias, path)
		}
		if isStandardLibrary(path) {
			std = append(std, line)
		} else {
			external = append(external, line)
		}
	}
	sort.Strings(std)
	sort.Strings(external)

	if len(std)+len(external) == 1 {
		both := append(std, external...)
		return fmt.Sprintf("import %s\n", both[0])
	}

	var block strings.Builder
	block.WriteString("import (\n")
	for _, line := range std {
		block.WriteString(fmt.Sprintf("\t%s\n", line))
	}
	if len(std) > 0 && len(external) > 0 {
		block.WriteString("\n")
	}
	for _, line := range external {
		block.WriteString(fmt.Sprintf("\t%s\n", line))
	}
	block.WriteString(")\n")
	return block.String()
}

// isStandardLibrary reports whether an import path belongs to the standard
// library, recognized by a dotless first path element.
func isStandardLibrary(path string) bool {
	first := path
	if slash := strings.Index(first, "/"); slash != -1 {
		first = first[:slash]
	}
	return !strings.Contains(first, ".")
}

// assumedPackageName guesses the package name of an import path the way
// goimports does: last element, skipping major version suffixes like /v4
// and dotted suffixes like yaml.v3.
func assumedPackageName(path string) string {
	base := path
	if slash := strings.LastIndex(base, "/"); slash != -1 {
		if isVersionElement(base[slash+1:]) {
			base = base[:slash]
			if slash = strings.LastIndex(base, "/"); slash != -1 {
				base = base[slash+1:]
			}
		} else {
			base = base[slash+1:]
		}
	}
	if dot := strings.Index(base, "."); dot > 0 {
		base = base[:dot]
	}
	return base
}

func isVersionElement(s string) bool {
	if len(s) < 2 || s[0] != 'v' {
		return false
	}
	for _, r := range s[1:] {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
