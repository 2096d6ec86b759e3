package vcf

import "fmt"

// ParseError is a parse failure positioned at a physical line of the input.
type ParseError struct {
	Line    int
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("vcf parse error at line %d: %s", e.Line, e.Message)
}
