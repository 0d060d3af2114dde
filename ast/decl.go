package ast

// TranslationUnit is the parsed result of one source file: the head of its
// ExternalDeclaration list and the file scope every top-level name was
// declared in.
type TranslationUnit struct {
	Decls     *ExternalDeclaration
	FileScope *Scope
}

// Declarations returns the translation unit's external declarations as a
// slice, in source order, for callers that would rather not walk the
// linked list by hand (the IR emitter and tests).
func (tu *TranslationUnit) Declarations() []*ExternalDeclaration {
	var out []*ExternalDeclaration
	for d := tu.Decls; d != nil; d = d.Next {
		out = append(out, d)
	}
	return out
}
