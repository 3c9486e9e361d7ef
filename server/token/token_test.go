package token

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dekarrin/salvo/server/dao"
	"github.com/dekarrin/salvo/server/dao/inmem"
	"github.com/stretchr/testify/assert"
)

var testSecret = []byte("0123456789abcdef0123456789abcdef")

func Test_Get(t *testing.T) {
	testCases := []struct {
		name      string
		header    string
		expect    string
		expectErr bool
	}{
		{name: "bearer", header: "Bearer abc.def", expect: "abc.def"},
		{name: "scheme is case-insensitive", header: "bEaReR  abc ", expect: "abc"},
		{name: "missing", header: "", expectErr: true},
		{name: "basic", header: "Basic dXNlcjpwYXNz", expectErr: true},
		{name: "no token part", header: "Bearer", expectErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			req := httptest.NewRequest("GET", "/", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}

			actual, err := Get(req)
			if tc.expectErr {
				assert.Error(err)
				return
			}
			assert.NoError(err)
			assert.Equal(tc.expect, actual)
		})
	}
}

func Test_GenerateAndValidate(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T) (dao.PlayerRepository, dao.Player) {
		repo := inmem.NewPlayersRepository()
		p, err := repo.Create(ctx, dao.Player{Username: "ahab", Password: "hash"})
		if err != nil {
			t.Fatalf("create player: %v", err)
		}
		return repo, p
	}

	t.Run("valid token gives its player", func(t *testing.T) {
		assert := assert.New(t)
		repo, p := setup(t)

		tok, err := Generate(testSecret, p)
		if !assert.NoError(err) {
			return
		}

		actual, err := Validate(ctx, tok, testSecret, repo)
		assert.NoError(err)
		assert.Equal(p.ID, actual.ID)
	})

	t.Run("wrong secret", func(t *testing.T) {
		assert := assert.New(t)
		repo, p := setup(t)

		tok, _ := Generate(testSecret, p)
		_, err := Validate(ctx, tok, []byte("some-other-secret-entirely-here!"), repo)
		assert.Error(err)
	})

	t.Run("logout invalidates", func(t *testing.T) {
		assert := assert.New(t)
		repo, p := setup(t)

		tok, _ := Generate(testSecret, p)

		p.LastLogoutTime = p.LastLogoutTime.Add(2 * time.Second)
		_, err := repo.Update(ctx, p.ID, p)
		assert.NoError(err)

		_, err = Validate(ctx, tok, testSecret, repo)
		assert.Error(err)
	})

	t.Run("deleted player", func(t *testing.T) {
		assert := assert.New(t)
		repo, p := setup(t)

		tok, _ := Generate(testSecret, p)
		repo.Delete(ctx, p.ID)

		_, err := Validate(ctx, tok, testSecret, repo)
		assert.Error(err)
	})
}
