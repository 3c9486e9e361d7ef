package server

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_ParseDBConnString(t *testing.T) {
	testCases := []struct {
		name      string
		input     string
		expect    Database
		expectErr bool
	}{
		{name: "inmem", input: "inmem", expect: Database{Type: DatabaseInMemory}},
		{name: "inmem upper", input: "INMEM", expect: Database{Type: DatabaseInMemory}},
		{name: "sqlite", input: "sqlite:/var/salvo", expect: Database{Type: DatabaseSQLite, DataDir: "/var/salvo"}},
		{name: "sqlite without dir", input: "sqlite", expectErr: true},
		{name: "inmem with params", input: "inmem:/x", expectErr: true},
		{name: "none", input: "none", expectErr: true},
		{name: "unknown", input: "postgres:x", expectErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			actual, err := ParseDBConnString(tc.input)
			if tc.expectErr {
				assert.Error(err)
				return
			}
			assert.NoError(err)
			assert.Equal(tc.expect, actual)
		})
	}
}

func Test_ParseListenAddress(t *testing.T) {
	testCases := []struct {
		name       string
		input      string
		expectHost string
		expectPort int
		expectErr  bool
	}{
		{name: "host and port", input: "0.0.0.0:9000", expectHost: "0.0.0.0", expectPort: 9000},
		{name: "port only", input: ":8080", expectHost: "localhost", expectPort: 8080},
		{name: "no port", input: "localhost", expectErr: true},
		{name: "bad port", input: "localhost:http", expectErr: true},
		{name: "port out of range", input: "localhost:70000", expectErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			host, port, err := ParseListenAddress(tc.input)
			if tc.expectErr {
				assert.Error(err)
				return
			}
			assert.NoError(err)
			assert.Equal(tc.expectHost, host)
			assert.Equal(tc.expectPort, port)
		})
	}
}

func Test_ParseConfig(t *testing.T) {
	t.Run("all keys", func(t *testing.T) {
		assert := assert.New(t)

		cfg, err := ParseConfig(`
listen = ":9001"
token_secret = "0123456789abcdef0123456789abcdef"
database = "sqlite:/tmp/salvo"
unauth_delay_ms = 0
debug = true
`)
		if !assert.NoError(err) {
			return
		}

		assert.Equal(":9001", cfg.ListenAddress)
		assert.Equal([]byte("0123456789abcdef0123456789abcdef"), cfg.TokenSecret)
		assert.Equal(Database{Type: DatabaseSQLite, DataDir: "/tmp/salvo"}, cfg.DB)
		assert.Equal(-1, cfg.UnauthDelayMillis)
		assert.True(cfg.Debug)
		assert.NoError(cfg.FillDefaults().Validate())
	})

	t.Run("unknown key", func(t *testing.T) {
		assert := assert.New(t)

		_, err := ParseConfig(`listen = ":9001"
port = 8080`)
		assert.Error(err)
	})

	t.Run("bad database", func(t *testing.T) {
		assert := assert.New(t)

		_, err := ParseConfig(`database = "mysql"`)
		assert.Error(err)
	})
}

func Test_Config_WithEnv(t *testing.T) {
	assert := assert.New(t)

	env := map[string]string{
		EnvListenAddress: ":7000",
		EnvDatabase:      "inmem",
	}
	lookup := func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}

	base := Config{ListenAddress: ":9001", DB: Database{Type: DatabaseSQLite, DataDir: "/x"}, TokenSecret: []byte("keep")}
	cfg, err := base.WithEnv(lookup)
	assert.NoError(err)
	assert.Equal(":7000", cfg.ListenAddress)
	assert.Equal(Database{Type: DatabaseInMemory}, cfg.DB)
	assert.Equal([]byte("keep"), cfg.TokenSecret)

	env[EnvDatabase] = "bogus"
	_, err = base.WithEnv(lookup)
	assert.Error(err)
}

func Test_Config_FillDefaultsAndValidate(t *testing.T) {
	assert := assert.New(t)

	cfg := Config{}.FillDefaults()
	assert.Equal(DefaultListenAddress, cfg.ListenAddress)
	assert.Equal(DatabaseInMemory, cfg.DB.Type)
	assert.Equal(1000, cfg.UnauthDelayMillis)
	assert.NoError(cfg.Validate())

	cfg.TokenSecret = []byte("short")
	assert.Error(cfg.Validate())

	cfg = Config{UnauthDelayMillis: -1}
	assert.Zero(cfg.UnauthDelay())
}
