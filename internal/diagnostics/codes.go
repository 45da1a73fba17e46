package diagnostics

// Lexer error codes
const (
	ErrInvalidOperator     = "L0001"
	ErrInvalidKeyword      = "L0002"
	ErrUnknownToken        = "L0003"
	ErrNumericOverflow     = "L0004"
	ErrUnterminatedString  = "L0005"
	ErrUnterminatedComment = "L0006"
	ErrInvalidEscape       = "L0007"
	ErrInvalidEncoding     = "L0008"
	ErrEmptyFile           = "L0009"
	ErrReadFailure         = "L0010"
)
