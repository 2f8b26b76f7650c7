package diag

import (
	"fmt"
)

// Code is a stable numeric identifier for a diagnostic kind.
// Ranges are reserved per phase so new codes never renumber old ones.
type Code uint16

const (
	UnknownCode Code = 0

	// Lexical (1000-1999).
	LexUnknownChar        Code = 1001
	LexUnterminatedString Code = 1002
	LexBadNumber          Code = 1003

	// Syntax (2000-2999).
	SynUnexpectedToken    Code = 2001
	SynExpectIdentifier   Code = 2002
	SynExpectType         Code = 2003
	SynExpectExpression   Code = 2004
	SynUnclosedDelimiter  Code = 2005
	SynExpectSemicolon    Code = 2006
	SynUnexpectedTopLevel Code = 2007
	SynExpectColon        Code = 2008

	// Control flow (3000-3999).
	FlowBreakOutsideLoop    Code = 3001
	FlowContinueOutsideLoop Code = 3002
	// FlowUninitStorageAccess flags a read of a storage-pointer variable on a
	// path that never assigned it.
	FlowUninitStorageAccess Code = 3100

	// Driver / IO (4000-4999).
	IOLoadFileError  Code = 4001
	JSONBadInput     Code = 4002
	JSONUnknownKey   Code = 4003
	JSONMissingField Code = 4004
)

// String renders the code in its stable external form, e.g. "CIN3100".
func (c Code) String() string {
	return fmt.Sprintf("CIN%04d", uint16(c))
}
