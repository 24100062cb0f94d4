package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// Лексические
	LexInfo                     Code = 1000
	LexUnknownChar              Code = 1001
	LexUnterminatedString       Code = 1002
	LexUnterminatedBlockComment Code = 1003

	// Синтаксические
	SynInfo               Code = 2000
	SynUnexpectedToken    Code = 2001
	SynExpectSemicolon    Code = 2002
	SynExpectIdentifier   Code = 2003
	SynExpectType         Code = 2004
	SynExpectAssign       Code = 2005
	SynUnclosedBrace      Code = 2006
	SynUnclosedParen      Code = 2007
	SynUnclosedAngle      Code = 2008
	SynUnexpectedTopLevel Code = 2009
	SynExpectBlock        Code = 2010
	SynExpectExternName   Code = 2011
	SynErrorNode          Code = 2012

	// Семантические
	SemaInfo                          Code = 3000
	SemaUnknownFragment               Code = 3001
	SemaUnknownInclude                Code = 3002
	SemaUndeclaredModifierReference   Code = 3003
	SemaMultipleStringRepresentations Code = 3004
	SemaUnexpectedToken               Code = 3005

	// Ввод-вывод
	IOLoadFileError  Code = 4001
	IOWriteFileError Code = 4002

	// Проект и шаблоны
	ProjInvalidConfig   Code = 5001
	ProjTemplateInvalid Code = 5002
	ProjRenderFailed    Code = 5003
)

var codeDescription = map[Code]string{
	UnknownCode:                       "Unknown error",
	LexInfo:                           "Lexical information",
	LexUnknownChar:                    "Unknown character",
	LexUnterminatedString:             "Unterminated string literal",
	LexUnterminatedBlockComment:       "Unterminated block comment",
	SynInfo:                           "Syntax information",
	SynUnexpectedToken:                "Unexpected token",
	SynExpectSemicolon:                "Missing semicolon",
	SynExpectIdentifier:               "Expected identifier",
	SynExpectType:                     "Expected type",
	SynExpectAssign:                   "Expected '='",
	SynUnclosedBrace:                  "Unclosed brace",
	SynUnclosedParen:                  "Unclosed parenthesis",
	SynUnclosedAngle:                  "Unclosed angle bracket",
	SynUnexpectedTopLevel:             "Unexpected top-level construct",
	SynExpectBlock:                    "Expected member block",
	SynExpectExternName:               "Expected extern name",
	SynErrorNode:                      "Syntax error",
	SemaInfo:                          "Semantic information",
	SemaUnknownFragment:               "Unknown fragment",
	SemaUnknownInclude:                "Unknown include",
	SemaUndeclaredModifierReference:   "Undeclared modifier reference",
	SemaMultipleStringRepresentations: "Multiple string representations",
	SemaUnexpectedToken:               "Unexpected token",
	IOLoadFileError:                   "I/O load file error",
	IOWriteFileError:                  "I/O write file error",
	ProjInvalidConfig:                 "Invalid project configuration",
	ProjTemplateInvalid:               "Invalid template",
	ProjRenderFailed:                  "Render failed",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("SEM%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("PRJ%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return c.ID()
}
