package tools

import (
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
)

func TestCatalogDeclarations(t *testing.T) {
	names := Names()
	assert.Len(t, names, 17)
	assert.Len(t, lo.Uniq(names), len(names), "duplicate function names")

	for _, d := range Catalog() {
		assert.NotEmpty(t, d.Name)
		assert.NotEmpty(t, d.Description, "%s needs a description", d.Name)
		for _, req := range d.Parameters.Required {
			_, ok := d.Parameters.Properties[req]
			assert.True(t, ok, "%s requires undeclared parameter %s", d.Name, req)
		}
	}
}

func TestCatalogLookups(t *testing.T) {
	assert.True(t, Has("getDriverStats"))
	assert.False(t, Has("dropAllTables"))

	d := Describe("formatLapTime")
	assert.NotNil(t, d)
	assert.Contains(t, d.Parameters.Required, "milliseconds")
	assert.Nil(t, Describe("nope"))
}

func TestCatalogLimitsMatchClamp(t *testing.T) {
	// the limit hints shown to the model must match the server-side cap
	limited := []string{
		"getRecentRaces", "getAllRaces", "getDriverRaceHistory", "getRecentWinners",
	}
	for _, name := range limited {
		d := Describe(name)
		if !assert.NotNil(t, d, name) {
			continue
		}
		limit, ok := d.Parameters.Properties["limit"]
		if !assert.True(t, ok, "%s has no limit parameter", name) {
			continue
		}
		assert.Contains(t, limit.Description, "max 50", name)
	}
}

func TestTools(t *testing.T) {
	ts := Tools()
	assert.Len(t, ts, 1)
	assert.Len(t, ts[0].FunctionDeclarations, len(Names()))
}
