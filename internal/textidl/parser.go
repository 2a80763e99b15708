package textidl

import (
	"fmt"
	"strconv"

	"github.com/nswarm/apyxl/apyxlerr"
	"github.com/nswarm/apyxl/model"
	"github.com/nswarm/apyxl/parser"
)

// Parser implements parser.Parser for the textidl syntax.
type Parser struct{}

// New returns a ready-to-use Parser. Parser holds no state between
// calls, so one instance may parse many chunks.
func New() *Parser { return &Parser{} }

// Parse implements parser.Parser. It builds the chunk's sub-tree in an
// unattached root namespace first and only calls b.Merge once parsing
// the whole chunk has succeeded, per the Parser contract's
// must-not-merge-on-failure rule.
func (p *Parser) Parse(source []byte, chunkTag string, cfg parser.Config, b parser.Merger) error {
	ps := &state{
		toks:         lex(string(source)),
		chunkTag:     chunkTag,
		rawUserTypes: rawUserTypeSet(cfg.UserTypes),
	}
	root := model.NewNamespace("")
	if err := ps.parseBody(root, true); err != nil {
		return err
	}
	b.Merge(root, chunkTag)
	return nil
}

func rawUserTypeSet(types []model.UserType) map[string]string {
	out := make(map[string]string, len(types))
	for _, t := range types {
		out[t.Parse] = t.Name
	}
	return out
}

// state is the parser's cursor over the pre-lexed token stream.
type state struct {
	toks         []token
	pos          int
	chunkTag     string
	rawUserTypes map[string]string // parse-spelling -> semantic name
}

func (s *state) peek() token  { return s.toks[s.pos] }
func (s *state) advance() token {
	t := s.toks[s.pos]
	if s.pos < len(s.toks)-1 {
		s.pos++
	}
	return t
}

func (s *state) atEOF() bool { return s.peek().kind == tokEOF }

func (s *state) errf(format string, args ...any) error {
	t := s.peek()
	return &apyxlerr.ParseError{Chunk: s.chunkTag, Line: t.line, Column: t.col, Message: fmt.Sprintf(format, args...)}
}

func (s *state) expectSymbol(sym string) error {
	t := s.peek()
	if t.kind != tokSymbol || t.text != sym {
		return s.errf("expected %q, got %q", sym, t.text)
	}
	s.advance()
	return nil
}

func (s *state) expectIdent() (string, error) {
	t := s.peek()
	if t.kind != tokIdent {
		return "", s.errf("expected identifier, got %q", t.text)
	}
	s.advance()
	return t.text, nil
}

// collectLeading consumes any run of comment tokens immediately
// preceding the next real token, returning their text in source order,
// and any '@'-prefixed attributes mixed in among them.
func (s *state) collectLeading() ([]string, []model.UserAttribute, error) {
	var comments []string
	var attrs []model.UserAttribute
	for {
		switch {
		case s.peek().kind == tokComment:
			comments = append(comments, s.advance().text)
		case s.peek().kind == tokSymbol && s.peek().text == "@":
			attr, err := s.parseAttribute()
			if err != nil {
				return nil, nil, err
			}
			attrs = append(attrs, attr)
		default:
			return comments, attrs, nil
		}
	}
}

// parseAttribute parses one of the three attribute surfaces of
// : `@flag`, `@name(a, b)`, `@name(k=v, k2=v2)`.
func (s *state) parseAttribute() (model.UserAttribute, error) {
	if err := s.expectSymbol("@"); err != nil {
		return model.UserAttribute{}, err
	}
	name, err := s.expectIdent()
	if err != nil {
		return model.UserAttribute{}, err
	}
	if s.peek().kind != tokSymbol || s.peek().text != "(" {
		return model.UserAttribute{Name: name, Kind: model.AttrFlag}, nil
	}
	s.advance() // (

	var tokens []string
	kv := map[string]string{}
	isKeyValue := false
	first := true
	for {
		if s.peek().kind == tokSymbol && s.peek().text == ")" {
			s.advance()
			break
		}
		if !first {
			if err := s.expectSymbol(","); err != nil {
				return model.UserAttribute{}, err
			}
		}
		first = false
		tok := s.advance()
		if tok.kind != tokIdent && tok.kind != tokNumber && tok.kind != tokString {
			return model.UserAttribute{}, s.errf("unexpected token %q in attribute args", tok.text)
		}
		if s.peek().kind == tokSymbol && s.peek().text == "=" {
			isKeyValue = true
			s.advance()
			val := s.advance()
			kv[tok.text] = val.text
		} else {
			tokens = append(tokens, tok.text)
		}
	}
	if isKeyValue {
		return model.UserAttribute{Name: name, Kind: model.AttrKeyValue, KeyValue: kv}, nil
	}
	return model.UserAttribute{Name: name, Kind: model.AttrPositional, Tokens: tokens}, nil
}

// parseBody parses declarations until '}' (or EOF at the top level)
// and adds them as children of ns.
func (s *state) parseBody(ns *model.Namespace, topLevel bool) error {
	for {
		if s.atEOF() {
			if !topLevel {
				return s.errf("unexpected end of input, expected '}'")
			}
			return nil
		}
		if s.peek().kind == tokSymbol && s.peek().text == "}" {
			if topLevel {
				return s.errf("unexpected '}'")
			}
			s.advance()
			return nil
		}
		comments, attrs, err := s.collectLeading()
		if err != nil {
			return err
		}
		if s.peek().kind == tokSymbol && s.peek().text == "}" {
			if topLevel {
				return s.errf("unexpected '}'")
			}
			s.advance()
			return nil
		}
		kw, err := s.expectIdent()
		if err != nil {
			return err
		}
		child, err := s.parseDeclaration(kw, comments, attrs)
		if err != nil {
			return err
		}
		ns.AddChild(child)
	}
}

func (s *state) parseDeclaration(kw string, comments []string, attrs []model.UserAttribute) (model.NamespaceChild, error) {
	switch kw {
	case "namespace":
		name, err := s.expectIdent()
		if err != nil {
			return nil, err
		}
		ns := model.NewNamespace(name)
		applyMeta(ns.Attributes(), comments, attrs)
		if err := s.expectSymbol("{"); err != nil {
			return nil, err
		}
		if err := s.parseBody(ns, false); err != nil {
			return nil, err
		}
		return ns, nil

	case "dto":
		name, err := s.expectIdent()
		if err != nil {
			return nil, err
		}
		dto := model.NewDto(name)
		applyMeta(dto.Attributes(), comments, attrs)
		if err := s.expectSymbol("{"); err != nil {
			return nil, err
		}
		for !(s.peek().kind == tokSymbol && s.peek().text == "}") {
			fComments, fAttrs, err := s.collectLeading()
			if err != nil {
				return nil, err
			}
			if s.peek().kind == tokSymbol && s.peek().text == "}" {
				break
			}
			fname, err := s.expectIdent()
			if err != nil {
				return nil, err
			}
			if err := s.expectSymbol(":"); err != nil {
				return nil, err
			}
			ty, err := s.parseType()
			if err != nil {
				return nil, err
			}
			field := model.Field{FieldName: fname, Type: ty}
			applyMeta(&field.Attributes, fComments, fAttrs)
			dto.Fields = append(dto.Fields, field)
			s.consumeOptional(",")
		}
		if err := s.expectSymbol("}"); err != nil {
			return nil, err
		}
		return dto, nil

	case "rpc":
		name, err := s.expectIdent()
		if err != nil {
			return nil, err
		}
		rpc := model.NewRpc(name)
		applyMeta(rpc.Attributes(), comments, attrs)
		if err := s.expectSymbol("("); err != nil {
			return nil, err
		}
		first := true
		for !(s.peek().kind == tokSymbol && s.peek().text == ")") {
			if !first {
				if err := s.expectSymbol(","); err != nil {
					return nil, err
				}
			}
			first = false
			pname, err := s.expectIdent()
			if err != nil {
				return nil, err
			}
			if err := s.expectSymbol(":"); err != nil {
				return nil, err
			}
			ty, err := s.parseType()
			if err != nil {
				return nil, err
			}
			rpc.Params = append(rpc.Params, model.Param{ParamName: pname, Type: ty})
		}
		if err := s.expectSymbol(")"); err != nil {
			return nil, err
		}
		if s.peek().kind == tokSymbol && s.peek().text == "->" {
			s.advance()
			ret, err := s.parseType()
			if err != nil {
				return nil, err
			}
			rpc.Return = &ret
		}
		return rpc, nil

	case "enum":
		name, err := s.expectIdent()
		if err != nil {
			return nil, err
		}
		enum := model.NewEnum(name)
		applyMeta(enum.Attributes(), comments, attrs)
		if err := s.expectSymbol("{"); err != nil {
			return nil, err
		}
		first := true
		for !(s.peek().kind == tokSymbol && s.peek().text == "}") {
			if !first {
				s.consumeOptional(",")
				if s.peek().kind == tokSymbol && s.peek().text == "}" {
					break
				}
			}
			first = false
			vComments, vAttrs, err := s.collectLeading()
			if err != nil {
				return nil, err
			}
			vname, err := s.expectIdent()
			if err != nil {
				return nil, err
			}
			variant := model.EnumVariant{VariantName: vname}
			if s.peek().kind == tokSymbol && s.peek().text == "=" {
				s.advance()
				n, err := s.expectNumber()
				if err != nil {
					return nil, err
				}
				variant.Value = n
				variant.HasExplicitValue = true
			}
			applyMeta(&variant.Attributes, vComments, vAttrs)
			enum.Variants = append(enum.Variants, variant)
		}
		if err := s.expectSymbol("}"); err != nil {
			return nil, err
		}
		return enum, nil

	case "alias":
		name, err := s.expectIdent()
		if err != nil {
			return nil, err
		}
		if err := s.expectSymbol("="); err != nil {
			return nil, err
		}
		target, err := s.parseType()
		if err != nil {
			return nil, err
		}
		alias := model.NewTypeAlias(name, target)
		applyMeta(alias.Attributes(), comments, attrs)
		return alias, nil

	default:
		return nil, s.errf("unknown declaration keyword %q", kw)
	}
}

func (s *state) consumeOptional(sym string) {
	if s.peek().kind == tokSymbol && s.peek().text == sym {
		s.advance()
	}
}

func (s *state) expectNumber() (int64, error) {
	t := s.peek()
	if t.kind != tokNumber {
		return 0, s.errf("expected number, got %q", t.text)
	}
	s.advance()
	n, err := strconv.ParseInt(t.text, 10, 64)
	if err != nil {
		return 0, s.errf("invalid integer literal %q", t.text)
	}
	return n, nil
}

var primitiveKeywords = map[string]model.Primitive{
	"bool": model.Bool,
	"i8": model.I8, "i16": model.I16, "i32": model.I32, "i64": model.I64, "i128": model.I128, "int": model.Int,
	"u8": model.U8, "u16": model.U16, "u32": model.U32, "u64": model.U64, "u128": model.U128, "uint": model.Uint,
	"f32": model.F32, "f64": model.F64,
	"string": model.String, "bytes": model.Bytes,
}

// parseType parses one type reference: a primitive keyword, one of the
// composite shapes (array/map/optional/fn), or an otherwise-unknown
// dotted name, which is a user type if its spelling is declared in
// user_types, else a relative ApiType reference left for the validator
// to qualify.
func (s *state) parseType() (model.TypeRef, error) {
	t := s.peek()
	if t.kind != tokIdent {
		return model.TypeRef{}, s.errf("expected type, got %q", t.text)
	}

	if prim, ok := primitiveKeywords[t.text]; ok {
		s.advance()
		return model.NewPrimitive(prim), nil
	}

	switch t.text {
	case "array":
		s.advance()
		elem, err := s.parseAngleOne()
		if err != nil {
			return model.TypeRef{}, err
		}
		return model.NewArray(elem), nil
	case "optional":
		s.advance()
		elem, err := s.parseAngleOne()
		if err != nil {
			return model.TypeRef{}, err
		}
		return model.NewOptional(elem), nil
	case "map":
		s.advance()
		if err := s.expectSymbol("<"); err != nil {
			return model.TypeRef{}, err
		}
		key, err := s.parseType()
		if err != nil {
			return model.TypeRef{}, err
		}
		if err := s.expectSymbol(","); err != nil {
			return model.TypeRef{}, err
		}
		val, err := s.parseType()
		if err != nil {
			return model.TypeRef{}, err
		}
		if err := s.expectSymbol(">"); err != nil {
			return model.TypeRef{}, err
		}
		return model.NewMap(key, val), nil
	case "fn":
		s.advance()
		if err := s.expectSymbol("("); err != nil {
			return model.TypeRef{}, err
		}
		var params []model.TypeRef
		first := true
		for !(s.peek().kind == tokSymbol && s.peek().text == ")") {
			if !first {
				if err := s.expectSymbol(","); err != nil {
					return model.TypeRef{}, err
				}
			}
			first = false
			p, err := s.parseType()
			if err != nil {
				return model.TypeRef{}, err
			}
			params = append(params, p)
		}
		if err := s.expectSymbol(")"); err != nil {
			return model.TypeRef{}, err
		}
		var ret *model.TypeRef
		if s.peek().kind == tokSymbol && s.peek().text == "->" {
			s.advance()
			r, err := s.parseType()
			if err != nil {
				return model.TypeRef{}, err
			}
			ret = &r
		}
		return model.NewFunction(params, ret), nil
	}

	parts := []string{t.text}
	s.advance()
	for s.peek().kind == tokSymbol && s.peek().text == "." {
		s.advance()
		next, err := s.expectIdent()
		if err != nil {
			return model.TypeRef{}, err
		}
		parts = append(parts, next)
	}

	if len(parts) == 1 {
		if semantic, ok := s.rawUserTypes[parts[0]]; ok {
			return model.NewUserType(semantic, nil), nil
		}
	}
	return model.NewApiType(relativeTypeId(parts)), nil
}

func (s *state) parseAngleOne() (model.TypeRef, error) {
	if err := s.expectSymbol("<"); err != nil {
		return model.TypeRef{}, err
	}
	elem, err := s.parseType()
	if err != nil {
		return model.TypeRef{}, err
	}
	if err := s.expectSymbol(">"); err != nil {
		return model.TypeRef{}, err
	}
	return elem, nil
}

// relativeTypeId builds the pre-qualification EntityId for a dotted
// type name. The tail segment's Kind is a placeholder (KindDto):
// model.FindQualifiedTypeRelative tries every type-entity kind at each
// scope level regardless of what's set here.
func relativeTypeId(parts []string) model.EntityId {
	segs := make([]model.IdSegment, len(parts))
	for i, p := range parts {
		kind := model.KindNamespace
		if i == len(parts)-1 {
			kind = model.KindDto
		}
		segs[i] = model.IdSegment{Name: p, Kind: kind}
	}
	return model.NewEntityId(segs...)
}

func applyMeta(a *model.Attributes, comments []string, attrs []model.UserAttribute) {
	a.Comments = append(a.Comments, comments...)
	a.UserAttributes = append(a.UserAttributes, attrs...)
}
