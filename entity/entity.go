// Package entity implements the parser: the stack-based entity synthesizer
// that turns the tokenizer's token stream into the final Shastina entity
// stream (declarations, operations, strings, groups, arrays, and
// metacommands), terminated by the `|;` sentinel.
package entity

import (
	"github.com/aledsdavies/shastina/errkind"
	"github.com/aledsdavies/shastina/token"
)

// Kind discriminates the variants of Entity.
type Kind int

const (
	BeginMeta Kind = iota
	EndMeta
	BeginGroup
	EndGroup
	Numeric
	Variable
	Constant
	Assign
	Get
	Operation
	MetaToken
	String
	MetaString
	Array
	Eof
	Error
)

// Entity is the tagged union produced by Parser.Next. Only the fields
// relevant to Kind are meaningful.
type Entity struct {
	Kind    Kind
	Text    string
	Prefix  string
	Quoting token.Quoting
	Payload string
	Count   uint32
	Err     errkind.Kind
}

var kindNames = [...]string{
	BeginMeta:  "BeginMeta",
	EndMeta:    "EndMeta",
	BeginGroup: "BeginGroup",
	EndGroup:   "EndGroup",
	Numeric:    "Numeric",
	Variable:   "Variable",
	Constant:   "Constant",
	Assign:     "Assign",
	Get:        "Get",
	Operation:  "Operation",
	MetaToken:  "MetaToken",
	String:     "String",
	MetaString: "MetaString",
	Array:      "Array",
	Eof:        "Eof",
	Error:      "Error",
}

// String renders a Kind for logs and the CLI's dump command.
func (k Kind) String() string {
	if int(k) >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Unknown"
}
