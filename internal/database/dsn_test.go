package database

import (
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildDSN_Mattn(t *testing.T) {
	dsn, err := buildDSN("/data/techShop.db3", DriverMattn, 5*time.Second)
	require.NoError(t, err)

	require.True(t, strings.HasPrefix(dsn, "file:///data/techShop.db3?"), dsn)
	q, err := url.ParseQuery(dsn[strings.Index(dsn, "?")+1:])
	require.NoError(t, err)
	assert.Equal(t, "rwc", q.Get("mode"))
	assert.Equal(t, "shared", q.Get("cache"))
	assert.Equal(t, "5000", q.Get("_busy_timeout"))
	assert.Equal(t, "on", q.Get("_foreign_keys"))
}

func TestBuildDSN_Modernc(t *testing.T) {
	dsn, err := buildDSN("shop.db", DriverModernc, 250*time.Millisecond)
	require.NoError(t, err)

	q, err := url.ParseQuery(dsn[strings.Index(dsn, "?")+1:])
	require.NoError(t, err)
	assert.Equal(t, "rwc", q.Get("mode"))
	assert.Equal(t, "shared", q.Get("cache"))
	assert.ElementsMatch(t, []string{"busy_timeout(250)", "foreign_keys(1)"}, q["_pragma"])
	assert.Empty(t, q.Get("_busy_timeout"))
}

func TestBuildDSN_RelativePathIsAbsolute(t *testing.T) {
	dsn, err := buildDSN("shop.db", DriverMattn, time.Second)
	require.NoError(t, err)

	u, err := url.Parse(dsn)
	require.NoError(t, err)
	assert.Empty(t, u.Host)
	assert.True(t, strings.HasPrefix(u.Path, "/"))
	assert.True(t, strings.HasSuffix(u.Path, "/shop.db"))
}

func TestBuildDSN_EscapesPath(t *testing.T) {
	path := "/data/a#b/q?x/pct%41dir/techShop.db3"
	dsn, err := buildDSN(path, DriverMattn, time.Second)
	require.NoError(t, err)

	assert.NotContains(t, dsn, "a#b")
	assert.NotContains(t, dsn, "q?x")
	assert.Contains(t, dsn, "pct%2541dir")

	u, err := url.Parse(dsn)
	require.NoError(t, err)
	assert.Equal(t, path, u.Path)
	assert.Equal(t, "rwc", u.Query().Get("mode"))
}

func TestDriverName(t *testing.T) {
	name, err := Driver("").driverName()
	require.NoError(t, err)
	assert.Equal(t, "sqlite3", name)

	name, err = DriverModernc.driverName()
	require.NoError(t, err)
	assert.Equal(t, "sqlite", name)

	_, err = Driver("postgres").driverName()
	assert.ErrorIs(t, err, ErrUnknownDriver)
}
