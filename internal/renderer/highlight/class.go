package highlight

import "github.com/alecthomas/chroma/v2"

// Class is the semantic classification of a token.
type Class uint8

// Token classes.
const (
	ClassNone Class = iota
	ClassText
	ClassComment
	ClassString
	ClassStringEscape
	ClassNumber
	ClassKeyword
	ClassKeywordType
	ClassConstant
	ClassOperator
	ClassPunctuation
	ClassIdentifier
	ClassFunction
	ClassType
	ClassTag
	ClassAttribute
	ClassNamespace
	ClassMeta
	ClassInvalid
)

var classNames = [...]string{
	ClassNone:         "none",
	ClassText:         "text",
	ClassComment:      "comment",
	ClassString:       "string",
	ClassStringEscape: "string.escape",
	ClassNumber:       "number",
	ClassKeyword:      "keyword",
	ClassKeywordType:  "keyword.type",
	ClassConstant:     "constant",
	ClassOperator:     "operator",
	ClassPunctuation:  "punctuation",
	ClassIdentifier:   "identifier",
	ClassFunction:     "function",
	ClassType:         "type",
	ClassTag:          "tag",
	ClassAttribute:    "attribute",
	ClassNamespace:    "namespace",
	ClassMeta:         "meta",
	ClassInvalid:      "invalid",
}

// String returns the dotted name of the class.
func (c Class) String() string {
	if int(c) < len(classNames) {
		return classNames[c]
	}
	return "unknown"
}

// Classify maps a chroma token type onto a Class. The boolean result is
// false for token types with no known classification.
func Classify(tt chroma.TokenType) (Class, bool) {
	switch tt {
	case chroma.Text, chroma.TextWhitespace, chroma.Background:
		return ClassText, true
	case chroma.KeywordType:
		return ClassKeywordType, true
	case chroma.KeywordConstant, chroma.NameConstant, chroma.NameBuiltinPseudo:
		return ClassConstant, true
	case chroma.KeywordNamespace, chroma.NameNamespace:
		return ClassNamespace, true
	case chroma.LiteralStringEscape:
		return ClassStringEscape, true
	case chroma.NameFunction, chroma.NameFunctionMagic, chroma.NameBuiltin:
		return ClassFunction, true
	case chroma.NameClass, chroma.NameException:
		return ClassType, true
	case chroma.NameTag:
		return ClassTag, true
	case chroma.NameAttribute, chroma.NameDecorator:
		return ClassAttribute, true
	case chroma.NameLabel, chroma.NameEntity:
		return ClassMeta, true
	case chroma.Error:
		return ClassInvalid, true
	}

	switch {
	case tt.InCategory(chroma.Comment):
		if tt.InSubCategory(chroma.CommentPreproc) {
			return ClassMeta, true
		}
		return ClassComment, true
	case tt.InCategory(chroma.Keyword):
		return ClassKeyword, true
	case tt.InSubCategory(chroma.LiteralString):
		return ClassString, true
	case tt.InSubCategory(chroma.LiteralNumber):
		return ClassNumber, true
	case tt.InCategory(chroma.Operator):
		return ClassOperator, true
	case tt.InCategory(chroma.Punctuation):
		return ClassPunctuation, true
	case tt.InCategory(chroma.Name):
		return ClassIdentifier, true
	case tt.InCategory(chroma.Text):
		return ClassText, true
	}
	return ClassNone, false
}
