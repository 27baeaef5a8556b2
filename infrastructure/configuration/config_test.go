package configuration

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyDefaults(t *testing.T) {
	var c Config
	applyDefaults(&c)

	assert.Equal(t, 8000, c.App.Port)
	assert.Equal(t, 10*time.Second, c.App.RequestTimeout)
	assert.Equal(t, "vidtube", c.Database.Mongo.Name)
	assert.Equal(t, "none", c.Events.Provider)
	assert.Equal(t, 10, c.Pagination.DefaultLimit)
	assert.Equal(t, 100, c.Pagination.MaxLimit)
	assert.Equal(t, 5*time.Minute, c.Cache.ChannelStatsTTL)
}

func TestApplyDefaultsKeepsDefaultLimitWithinMax(t *testing.T) {
	c := Config{Pagination: Pagination{DefaultLimit: 50, MaxLimit: 20}}
	applyDefaults(&c)
	assert.Equal(t, 10, c.Pagination.DefaultLimit)
	assert.Equal(t, 20, c.Pagination.MaxLimit)
}

func TestMongoURI(t *testing.T) {
	assert.Equal(t, "mongodb://localhost:27017", Mongo{}.MongoURI())
	assert.Equal(t, "mongodb://u:p@db:27018", Mongo{Host: "db", Port: "27018", User: "u", Password: "p"}.MongoURI())
	assert.Equal(t, "mongodb+srv://cluster", Mongo{URI: "mongodb+srv://cluster", Host: "ignored"}.MongoURI())
}

func TestInitAppReadsEnv(t *testing.T) {
	t.Setenv("ACCESS_TOKEN_SECRET", "a")
	t.Setenv("REFRESH_TOKEN_SECRET", "r")
	t.Setenv("APP_PORT", "9090")
	t.Setenv("CORS_ORIGIN", "http://a.test,http://b.test")

	var c Config
	initApp(&c)
	require.Equal(t, 9090, c.App.Port)
	assert.Equal(t, "a", c.App.AccessTokenSecret)
	assert.Equal(t, "r", c.App.RefreshTokenSecret)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, c.App.CorsOrigins)
}
