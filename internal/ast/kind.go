package ast

// Kind tags the grammatical construct a node stands for.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindGlobalNamespace
	KindNamespace
	KindInclude
	KindAlias
	KindClass
	KindStruct
	KindTypeName
	KindAlignas
	KindRegister
	KindBody
	KindAccessModifier
	KindMemberVariable
	KindMemberFunction
	KindConstructor
	KindDestructor
	KindParameterList
	KindParameter
	KindInitializerList
	KindInitializer
	KindMemberInit // skipped `= ...`, `(...)` or `{...}` after a member name
	KindLiteral
	KindIdentifier
	KindFunctionBody
	KindBlock
	KindReturn
	KindNoOp
	KindDeclaration
	KindExprStatement
	KindTypeNode
	KindIndirection
	KindSemantic
)

var kindNames = [...]string{
	KindInvalid:         "Invalid",
	KindGlobalNamespace: "GlobalNamespace",
	KindNamespace:       "Namespace",
	KindInclude:         "Include",
	KindAlias:           "Alias",
	KindClass:           "Class",
	KindStruct:          "Struct",
	KindTypeName:        "TypeName",
	KindAlignas:         "Alignas",
	KindRegister:        "Register",
	KindBody:            "Body",
	KindAccessModifier:  "AccessModifier",
	KindMemberVariable:  "MemberVariable",
	KindMemberFunction:  "MemberFunction",
	KindConstructor:     "Constructor",
	KindDestructor:      "Destructor",
	KindParameterList:   "ParameterList",
	KindParameter:       "Parameter",
	KindInitializerList: "InitializerList",
	KindInitializer:     "Initializer",
	KindMemberInit:      "MemberInit",
	KindLiteral:         "Literal",
	KindIdentifier:      "Identifier",
	KindFunctionBody:    "FunctionBody",
	KindBlock:           "Block",
	KindReturn:          "Return",
	KindNoOp:            "NoOp",
	KindDeclaration:     "Declaration",
	KindExprStatement:   "ExprStatement",
	KindTypeNode:        "TypeNode",
	KindIndirection:     "Indirection",
	KindSemantic:        "Semantic",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "Kind(?)"
}

// IsRecord reports whether k is a class or struct declaration.
func (k Kind) IsRecord() bool { return k == KindClass || k == KindStruct }

// IsScope reports whether k opens a namespace scope.
func (k Kind) IsScope() bool { return k == KindGlobalNamespace || k == KindNamespace }
