package command

import (
	"testing"

	"github.com/pixil98/go-testutil"
)

func TestParser_Match(t *testing.T) {
	tests := map[string]struct {
		token string
		text  string
		exp   bool
	}{
		"exact command":         {text: "!avg", exp: true},
		"upper case":            {text: "!AVG", exp: true},
		"mixed case":            {text: "!AvG", exp: true},
		"trailing text":         {text: "!avg please", exp: true},
		"prefix only":           {text: "!avgerage", exp: true},
		"leading space":         {text: " !avg", exp: false},
		"other command":         {text: "!help", exp: false},
		"command mid sentence":  {text: "type !avg to start", exp: false},
		"empty text":            {text: "", exp: false},
		"custom token":          {token: "!Price", text: "!PRICE now", exp: true},
		"custom token no match": {token: "!price", text: "!avg", exp: false},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			testutil.AssertEqual(t, "match", NewParser(tt.token).Match(tt.text), tt.exp)
		})
	}
}
