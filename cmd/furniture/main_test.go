package main

import (
	"testing"

	qt "github.com/frankban/quicktest"
)

func TestRootCommands(t *testing.T) {
	c := qt.New(t)

	var names []string
	for _, cmd := range newRootCommand().Commands() {
		names = append(names, cmd.Name())
	}
	for _, want := range []string{"serve", "migrate", "import", "export", "products", "workshops", "stats", "report"} {
		c.Assert(names, qt.Contains, want)
	}
}

func TestParseID(t *testing.T) {
	c := qt.New(t)

	id, err := parseID("12")
	c.Assert(err, qt.IsNil)
	c.Assert(id, qt.Equals, int64(12))

	_, err = parseID("0")
	c.Assert(err, qt.ErrorMatches, `invalid product id "0"`)
	_, err = parseID("abc")
	c.Assert(err, qt.Not(qt.IsNil))
}
