package database

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDSNCarriesLocation(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	got := dsn("draco", "secret", "db", "3306", "dracofit", loc)

	assert.Contains(t, got, "draco:secret@tcp(db:3306)/dracofit")
	assert.Contains(t, got, "parseTime=true")
	assert.Contains(t, got, "loc=America%2FNew_York")
	assert.Contains(t, got, "charset=utf8mb4")
}

func TestDSNDefaultsToUTC(t *testing.T) {
	got := dsn("draco", "", "localhost", "3306", "dracofit", nil)

	assert.Contains(t, got, "draco@tcp(localhost:3306)/dracofit")
	assert.NotContains(t, got, "loc=")
}
