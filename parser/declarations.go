package parser

import (
	"ccfront/ast"
	"ccfront/lexer"
	"ccfront/report"
	"ccfront/types"
)

// parseDeclarationSpecifiers loops while the current token is a declaration
// specifier, folding each one into a Builder, and stops at the first
// non-specifier token. When a typedef-name is used, the typedef's own
// underlying type is returned as typedefType so the caller can apply any
// additional qualifiers to it instead of resolving a fundamental type from
// the (otherwise empty) specifier bits.
func (p *Parser) parseDeclarationSpecifiers() (b *types.Builder, typedefType *types.Type) {
	b = types.NewBuilder(p.cur.Span)

	for p.isDeclarationSpecifier(p.cur) {
		switch k := p.cur.Kind; {
		case isStorageClass(k):
			b.AddStorageClass(storageClassFlag(k))
		case k == lexer.LongKw:
			b.AddLong()
		case isTypeSpecifierKeyword(k):
			b.AddTypeSpecifier(typeSpecifierFlag(k))
		case isTypeQualifier(k):
			b.AddQualifier(qualifierFlag(k))
		case isFunctionSpecifier(k):
			b.AddFunctionSpecifier(functionSpecifierFlag(k))
		case k == lexer.AlignAsKw:
			b.AddAlignas()
		case k == lexer.Identifier:
			b.AddTypeSpecifier(types.TypedefName)
			if obj, ok := p.scope.LookupTypedef(p.cur.Lexeme); ok {
				typedefType = obj.Type
			}
		}
		p.advance()
	}

	return b, typedefType
}

// resolveBaseType turns the result of parseDeclarationSpecifiers into a
// *types.Type: the typedef's own type (qualified by anything additionally
// written) when a typedef-name was used, otherwise the canonical
// fundamental type for the accumulated specifier bits.
func resolveBaseType(b *types.Builder, typedefType *types.Type, span *report.TextSpan) *types.Type {
	if typedefType != nil {
		return types.Qualify(typedefType, b.Flags())
	}
	return canonicalFundamentalType(b, span)
}

func storageClassFlag(k lexer.Kind) types.SpecifierFlags {
	switch k {
	case lexer.TypedefKw:
		return types.TypeDef
	case lexer.ExternKw:
		return types.Extern
	case lexer.StaticKw:
		return types.Static
	case lexer.ThreadLocalKw:
		return types.ThreadLocal
	case lexer.AutoKw:
		return types.Auto
	case lexer.RegisterKw:
		return types.Register
	default:
		return 0
	}
}

func typeSpecifierFlag(k lexer.Kind) types.SpecifierFlags {
	switch k {
	case lexer.VoidKw:
		return types.Void
	case lexer.CharKw:
		return types.Char
	case lexer.ShortKw:
		return types.Short
	case lexer.IntKw:
		return types.Int
	case lexer.FloatKw:
		return types.Float
	case lexer.DoubleKw:
		return types.Double
	case lexer.SignedKw:
		return types.Signed
	case lexer.UnsignedKw:
		return types.Unsigned
	case lexer.BoolKw:
		return types.Bool
	case lexer.ComplexKw:
		return types.Complex
	case lexer.StructKw:
		return types.Struct
	case lexer.UnionKw:
		// The original encoding has no separate bit for union, only Struct,
		// so a union specifier resolves exactly as a struct specifier does
		// (KindStruct); nothing later tells the two apart.
		return types.Struct
	case lexer.EnumKw:
		return types.Enum
	default:
		return 0
	}
}

func qualifierFlag(k lexer.Kind) types.SpecifierFlags {
	switch k {
	case lexer.ConstKw:
		return types.Const
	case lexer.RestrictKw:
		return types.Restrict
	case lexer.VolatileKw:
		return types.Volatile
	case lexer.AtomicKw:
		return types.Atomic
	default:
		return 0
	}
}

func functionSpecifierFlag(k lexer.Kind) types.SpecifierFlags {
	switch k {
	case lexer.InlineKw:
		return types.Inline
	case lexer.NoReturnKw:
		return types.NoReturn
	default:
		return 0
	}
}

// -----------------------------------------------------------------------------

// declarator is the parsed shape of one declarator before it is combined
// with the declaration-specifier base type: the declared name and a
// type-building function that wraps the base type inside-out.
type declarator struct {
	name    string
	wrap    func(base *types.Type) *types.Type
	isFunc  bool
	params  *types.FunctionParameter
	varargs bool
}

// parseDeclarator parses an optional pointer chain, then an identifier,
// then an optional parameter list or array-dimension suffix. Only one
// array-dimension or parameter-list suffix is handled; chained suffixes
// ("int f(int)[3]"-style derived declarators) are not.
func (p *Parser) parseDeclarator() *declarator {
	wrap := p.parsePointerChain()

	name := p.expect(lexer.Identifier, "expected identifier in declarator").Lexeme
	d := &declarator{name: name, wrap: wrap}

	switch p.cur.Kind {
	case lexer.LParen:
		params, varargs := p.parseParameterList()
		d.isFunc = true
		d.params = params
		d.varargs = varargs
	case lexer.LBracket:
		p.advance()
		// Array dimensions are read but not retained as a distinct
		// fundamental kind; the source's own array support is likewise
		// absent beyond recognizing the brackets.
		if p.cur.Kind != lexer.RBracket {
			p.parseExpression()
		}
		p.expect(lexer.RBracket, "expected ']' after array dimension")
	}

	return d
}

// parsePointerChain parses a sequence of '*', each optionally followed by
// its own qualifier list, and returns a function that builds the pointer
// type inside-out around whatever base type it is eventually given: for
// "int *const *volatile x", the first '*' written ('*const', farthest from
// the identifier) wraps the base type first, and the '*' closest to the
// identifier ('*volatile') becomes the outermost pointer.
func (p *Parser) parsePointerChain() func(*types.Type) *types.Type {
	if p.cur.Kind != lexer.Star {
		return func(base *types.Type) *types.Type { return base }
	}
	p.advance()

	var quals types.SpecifierFlags
	for isTypeQualifier(p.cur.Kind) {
		quals |= qualifierFlag(p.cur.Kind)
		p.advance()
	}

	rest := p.parsePointerChain()
	return func(base *types.Type) *types.Type {
		return rest(types.NewPointerTo(base, quals))
	}
}

// parseParameterList parses `( parameter-declaration , ... [, ...] )`.
// A lone `...` must be the final element. Function declarators are only
// legal at file scope; the caller enforces that.
func (p *Parser) parseParameterList() (*types.FunctionParameter, bool) {
	p.expect(lexer.LParen, "expected '(' to start parameter list")

	var head, tail *types.FunctionParameter
	variadic := false

	if p.cur.Kind == lexer.RParen {
		p.advance()
		return nil, false
	}

	for {
		if p.cur.Kind == lexer.Ellipsis {
			p.advance()
			variadic = true
			break
		}

		b, typedefType := p.parseDeclarationSpecifiers()
		baseType := resolveBaseType(b, typedefType, p.cur.Span)

		paramName := ""
		paramType := baseType
		if p.cur.Kind == lexer.Identifier || p.cur.Kind == lexer.Star {
			d := p.parseDeclarator()
			paramName = d.name
			paramType = d.wrap(baseType)
		}

		// A lone, unnamed `void` is not a parameter: it denotes an empty
		// parameter-type-list (C11 §6.7.6.3), e.g. `int main(void)`.
		if head == nil && paramName == "" && baseType.Kind == types.KindVoid && p.cur.Kind == lexer.RParen {
			p.advance()
			return nil, false
		}

		node := &types.FunctionParameter{Type: paramType, Name: paramName}
		if head == nil {
			head, tail = node, node
		} else {
			tail.Next = node
			tail = node
		}

		if p.cur.Kind != lexer.Comma {
			break
		}
		p.advance()
	}

	p.expect(lexer.RParen, "expected ')' to close parameter list")
	return head, variadic
}

// parseExternalDeclaration parses one top-level construct: a declaration
// specifier list followed by a declarator, which is either a function
// definition (declarator is a function type immediately followed by '{')
// or an ordinary declaration (optionally with more comma-separated
// declarators and initializers, terminated by ';').
func (p *Parser) parseExternalDeclaration() *ast.ExternalDeclaration {
	span := p.cur.Span
	b, typedefType := p.parseDeclarationSpecifiers()
	baseType := resolveBaseType(b, typedefType, span)

	d := p.parseDeclarator()
	var declType *types.Type
	if d.isFunc {
		declType = types.NewFunctionType(d.wrap(baseType), d.params, d.varargs)
	} else {
		declType = d.wrap(baseType)
	}

	obj := p.arena.NewObject(d.name, declType)
	obj.Storage = b.Flags()
	if b.Has(types.TypeDef) {
		p.scope.DeclareTypedef(obj)
	} else {
		p.scope.Declare(obj)
	}

	if d.isFunc && p.cur.Kind == lexer.LBrace {
		p.pushScope()
		p.scope.ReturnType = declType.Func.Return
		for param := d.params; param != nil; param = param.Next {
			if param.Name != "" {
				p.scope.Declare(p.arena.NewObject(param.Name, param.Type))
			}
		}
		body := p.parseCompoundStatementBody()
		p.popScope()

		obj.Body = body
		node := &ast.DeclStmt{
			StmtBase: ast.StmtBase{Base: ast.NewBaseOn(span)},
			Decls:    []*ast.InitDeclarator{{Object: obj}},
		}
		return &ast.ExternalDeclaration{Kind: ast.FunctionDefinition, Node: node}
	}

	inits := []*ast.InitDeclarator{p.finishInitDeclarator(obj)}
	for p.cur.Kind == lexer.Comma {
		p.advance()
		nd := p.parseDeclarator()
		nt := nd.wrap(baseType)
		nobj := p.arena.NewObject(nd.name, nt)
		nobj.Storage = b.Flags()
		if b.Has(types.TypeDef) {
			p.scope.DeclareTypedef(nobj)
		} else {
			p.scope.Declare(nobj)
		}
		inits = append(inits, p.finishInitDeclarator(nobj))
	}
	p.expect(lexer.Semicolon, "expected ';' after declaration")

	return &ast.ExternalDeclaration{
		Kind: ast.PlainDeclaration,
		Node: &ast.DeclStmt{StmtBase: ast.StmtBase{Base: ast.NewBaseOn(span)}, Decls: inits},
	}
}

func (p *Parser) finishInitDeclarator(obj *ast.Object) *ast.InitDeclarator {
	var init ast.Expr
	if p.cur.Kind == lexer.Assign {
		p.advance()
		init = p.parseInitializer()
	}
	return &ast.InitDeclarator{Object: obj, Init: init}
}

// parseInitializer parses an assignment-expression or a brace-enclosed
// initializer list. Designated initializers ("[i] =", ".field =") are not
// handled once inside the list.
func (p *Parser) parseInitializer() ast.Expr {
	if p.cur.Kind == lexer.LBrace {
		p.advance()
		for p.cur.Kind != lexer.RBrace {
			p.parseInitializer()
			if p.cur.Kind == lexer.Comma {
				p.advance()
			} else {
				break
			}
		}
		p.expect(lexer.RBrace, "expected '}' to close initializer list")
		return nil
	}
	return p.parseAssignmentExpression()
}
