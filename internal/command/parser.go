package command

import (
	"strings"

	"golang.org/x/text/cases"
)

const DefaultToken = "!avg"

// Parser recognises the toggle command at the start of a chat line.
type Parser struct {
	token string
}

// NewParser matches lines starting with token, ignoring case. An empty token
// selects DefaultToken.
func NewParser(token string) *Parser {
	if token == "" {
		token = DefaultToken
	}
	return &Parser{token: fold(token)}
}

func (p *Parser) Match(text string) bool {
	return strings.HasPrefix(fold(text), p.token)
}

// fold case-folds s. Casers are stateful, so each call gets its own.
func fold(s string) string {
	return cases.Fold().String(s)
}
