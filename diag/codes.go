package diag

// Numeric diagnostic codes are stable and grouped by the fixed ranges from
// spec.md §6: preprocessor 10001-, assembly 20001-, expression/SQF 30001-,
// config 40001-, linting 50001-, runtime 60001-.

// Preprocessor (10001-).
const (
	CodeRedefinedMacro           = 10001
	CodeUndefAbsent              = 10002
	CodeRecursiveInclude         = 10003
	CodeUnexpectedDataAfterInclude = 10004
	CodeUnknownInstruction       = 10005
	CodeMissingEndif             = 10006
	CodeElseWithoutIf            = 10007
	CodeEndifWithoutIf           = 10008
	CodeArgCountMismatch         = 10009
	CodeMacroNotFound            = 10010
	CodeIncludeFailed            = 10011
	CodeUnterminatedString       = 10012
	CodeUnterminatedBlockComment = 10013
	CodeMalformedDefine          = 10014
)

// Assembly grammar (20001-).
const (
	CodeAsmUnknownInstruction = 20001
	CodeAsmBadOperand         = 20002
	CodeAsmUnexpectedEOF      = 20003
)

// Expression grammar (30001-).
const (
	CodeExprUnexpectedToken  = 30001
	CodeExprNoViableAlt      = 30002
	CodeExprUnterminatedExpr = 30003
)

// Configuration (40001-).
const (
	CodeConfigInvalidValue = 40001
)

// Linting (50001-).
const (
	CodeLintUnusedVariable = 50001
)

// Runtime (60001-).
const (
	CodeUnknownNularOperator   = 60001
	CodeUnknownUnaryOperator   = 60002
	CodeUnknownBinaryOperator  = 60003
	CodeWrongOperandType       = 60004
	CodeArraySizeMismatch      = 60005
	CodeIndexOutOfRange        = 60006
	CodeNegativeIndexOrSize    = 60007
	CodeSuspensionDisabled     = 60008
	CodeMaximumInstructionCap  = 60009
	CodeAssignPrivateNoFrame   = 60010
	CodeReturningNil           = 60011
	CodeCyclicArrayStringify   = 60012
	CodeStackUnderflow         = 60013
	CodeFatalUnrecoverable     = 60014
)
