package relay

import (
	"context"
	"testing"

	"github.com/dekarrin/salvo/internal/cmderr"
	"github.com/dekarrin/salvo/internal/command"
	"github.com/dekarrin/salvo/server/dao"
	"github.com/dekarrin/salvo/server/dao/inmem"
	"github.com/dekarrin/salvo/server/dao/sqlite"
	"github.com/dekarrin/salvo/server/serr"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
)

func newTestService() Service {
	return Service{
		DB:         inmem.NewDatastore(),
		Dispatcher: command.NewDispatcher(nil, nil),
		HashCost:   bcrypt.MinCost,
	}
}

func newTestSQLiteService(t *testing.T) Service {
	st, err := sqlite.NewDatastore(t.TempDir())
	if err != nil {
		t.Fatalf("could not open store: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	svc := newTestService()
	svc.DB = st
	return svc
}

func Test_Service_CreatePlayer(t *testing.T) {
	testCases := []struct {
		name      string
		existing  []string
		username  string
		password  string
		expectErr error
	}{
		{name: "new player", username: "ahab", password: "whale"},
		{name: "duplicate", existing: []string{"ahab"}, username: "ahab", password: "whale", expectErr: serr.ErrAlreadyExists},
		{name: "blank username", username: "  ", password: "whale", expectErr: serr.ErrBadArgument},
		{name: "username with space", username: "cap ahab", password: "whale", expectErr: serr.ErrBadArgument},
		{name: "blank password", username: "ahab", password: "", expectErr: serr.ErrBadArgument},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)
			svc := newTestService()
			ctx := context.Background()

			for _, u := range tc.existing {
				_, err := svc.CreatePlayer(ctx, u, "pw")
				if !assert.NoError(err) {
					return
				}
			}

			actual, err := svc.CreatePlayer(ctx, tc.username, tc.password)
			if tc.expectErr != nil {
				assert.ErrorIs(err, tc.expectErr)
				return
			}

			assert.NoError(err)
			assert.Equal(tc.username, actual.Username)
			assert.NotEqual(tc.password, actual.Password)
		})
	}
}

func Test_Service_Login(t *testing.T) {
	ctx := context.Background()

	t.Run("correct password", func(t *testing.T) {
		assert := assert.New(t)
		svc := newTestService()
		created, _ := svc.CreatePlayer(ctx, "ahab", "whale")

		p, err := svc.Login(ctx, "ahab", "whale")
		assert.NoError(err)
		assert.Equal(created.ID, p.ID)
		assert.False(p.LastLoginTime.IsZero())
	})

	t.Run("wrong password", func(t *testing.T) {
		assert := assert.New(t)
		svc := newTestService()
		svc.CreatePlayer(ctx, "ahab", "whale")

		_, err := svc.Login(ctx, "ahab", "squid")
		assert.ErrorIs(err, serr.ErrBadCredentials)
	})

	t.Run("unknown player", func(t *testing.T) {
		assert := assert.New(t)
		svc := newTestService()

		_, err := svc.Login(ctx, "ishmael", "whale")
		assert.ErrorIs(err, serr.ErrBadCredentials)
	})
}

func Test_Service_Logout(t *testing.T) {
	assert := assert.New(t)
	svc := newTestService()
	ctx := context.Background()

	p, _ := svc.CreatePlayer(ctx, "ahab", "whale")

	out, err := svc.Logout(ctx, p.ID)
	assert.NoError(err)
	assert.Greater(out.LastLogoutTime.Unix(), p.LastLogoutTime.Unix())

	_, err = svc.Logout(ctx, uuid.New())
	assert.ErrorIs(err, serr.ErrNotFound)
}

func Test_Service_SubmitCommand(t *testing.T) {
	testCases := []struct {
		name       string
		game       string
		line       string
		expectName string
		expectArgs []string
		expectErr  error
		expectRule cmderr.Rule
	}{
		{
			name:       "fire",
			game:       "pequod",
			line:       "fire C 4",
			expectName: "fire",
			expectArgs: []string{"C", "4"},
		},
		{
			name:       "alias is recorded under canonical name",
			game:       "pequod",
			line:       "SHOOT j -3",
			expectName: "fire",
			expectArgs: []string{"j", "-3"},
		},
		{
			name:       "bad letter",
			game:       "pequod",
			line:       "fire K 4",
			expectErr:  serr.ErrBadCommand,
			expectRule: command.RuleGridLetter,
		},
		{
			name:       "too few args",
			game:       "pequod",
			line:       "fire C",
			expectErr:  serr.ErrBadCommand,
			expectRule: command.RuleArity,
		},
		{
			name:      "unknown command",
			game:      "pequod",
			line:      "harpoon moby",
			expectErr: cmderr.ErrUnknownCommand,
		},
		{
			name:      "blank line",
			game:      "pequod",
			line:      "   ",
			expectErr: serr.ErrBadArgument,
		},
		{
			name:      "blank game",
			game:      "",
			line:      "ready",
			expectErr: serr.ErrBadArgument,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)
			svc := newTestService()
			ctx := context.Background()
			p, _ := svc.CreatePlayer(ctx, "ahab", "whale")

			actual, err := svc.SubmitCommand(ctx, p.ID, tc.game, tc.line)
			if tc.expectErr != nil {
				assert.ErrorIs(err, tc.expectErr)
				assert.Equal(tc.expectRule, cmderr.RuleOf(err))
				return
			}

			assert.NoError(err)
			assert.Equal(tc.expectName, actual.Name)
			assert.Equal(tc.expectArgs, actual.Args)
			assert.Equal(tc.line, actual.Line)
			assert.Equal(p.ID, actual.PlayerID)
		})
	}
}

func Test_Service_SubmitCommand_unknownPlayer(t *testing.T) {
	assert := assert.New(t)
	svc := newTestService()

	_, err := svc.SubmitCommand(context.Background(), uuid.New(), "pequod", "ready")
	assert.ErrorIs(err, serr.ErrNotFound)
}

func Test_Service_GetCommands(t *testing.T) {
	assert := assert.New(t)
	svc := newTestService()
	ctx := context.Background()

	ahab, _ := svc.CreatePlayer(ctx, "ahab", "whale")
	starbuck, _ := svc.CreatePlayer(ctx, "starbuck", "coffee")

	svc.SubmitCommand(ctx, ahab.ID, "g1", "fire a 1")
	svc.SubmitCommand(ctx, starbuck.ID, "g1", "fire b 2")
	svc.SubmitCommand(ctx, ahab.ID, "g2", "ready")
	svc.SubmitCommand(ctx, ahab.ID, "g1", "fire c 3")

	all, err := svc.GetCommands(ctx, ahab.ID, "")
	assert.NoError(err)
	assert.Len(all, 3)

	g1, err := svc.GetCommands(ctx, ahab.ID, "g1")
	assert.NoError(err)
	if assert.Len(g1, 2) {
		assert.Equal("fire a 1", g1[0].Line)
		assert.Equal("fire c 3", g1[1].Line)
	}
}

func Test_Service_GetCommand(t *testing.T) {
	ctx := context.Background()

	setup := func() (Service, dao.Player, dao.Player, dao.Command) {
		svc := newTestService()
		ahab, _ := svc.CreatePlayer(ctx, "ahab", "whale")
		starbuck, _ := svc.CreatePlayer(ctx, "starbuck", "coffee")
		c, _ := svc.SubmitCommand(ctx, ahab.ID, "g1", "fire a 1")
		return svc, ahab, starbuck, c
	}

	t.Run("owner", func(t *testing.T) {
		assert := assert.New(t)
		svc, ahab, _, c := setup()

		actual, err := svc.GetCommand(ctx, ahab.ID, c.ID.String())
		assert.NoError(err)
		assert.Equal(c.ID, actual.ID)
	})

	t.Run("other player", func(t *testing.T) {
		assert := assert.New(t)
		svc, _, starbuck, c := setup()

		_, err := svc.GetCommand(ctx, starbuck.ID, c.ID.String())
		assert.ErrorIs(err, serr.ErrPermissions)
	})

	t.Run("bad ID", func(t *testing.T) {
		assert := assert.New(t)
		svc, ahab, _, _ := setup()

		_, err := svc.GetCommand(ctx, ahab.ID, "not-a-uuid")
		assert.ErrorIs(err, serr.ErrBadArgument)
	})

	t.Run("missing", func(t *testing.T) {
		assert := assert.New(t)
		svc, ahab, _, _ := setup()

		_, err := svc.GetCommand(ctx, ahab.ID, uuid.NewString())
		assert.ErrorIs(err, serr.ErrNotFound)
	})
}

func Test_Service_RenamePlayer(t *testing.T) {
	stores := []struct {
		name string
		svc  func(t *testing.T) Service
	}{
		{name: "inmem", svc: func(t *testing.T) Service { return newTestService() }},
		{name: "sqlite", svc: newTestSQLiteService},
	}

	testCases := []struct {
		name      string
		username  string
		expectErr error
	}{
		{name: "free username", username: "ishmael"},
		{name: "taken username", username: "starbuck", expectErr: serr.ErrAlreadyExists},
		{name: "blank username", username: " ", expectErr: serr.ErrBadArgument},
	}

	for _, st := range stores {
		for _, tc := range testCases {
			t.Run(st.name+"/"+tc.name, func(t *testing.T) {
				assert := assert.New(t)
				svc := st.svc(t)
				ctx := context.Background()

				ahab, err := svc.CreatePlayer(ctx, "ahab", "whale")
				if !assert.NoError(err) {
					return
				}
				_, err = svc.CreatePlayer(ctx, "starbuck", "coffee")
				if !assert.NoError(err) {
					return
				}

				actual, err := svc.RenamePlayer(ctx, ahab.ID, tc.username)
				if tc.expectErr != nil {
					assert.ErrorIs(err, tc.expectErr)
					assert.NotErrorIs(err, serr.ErrDB)
					return
				}

				assert.NoError(err)
				assert.Equal(tc.username, actual.Username)
				assert.Equal(ahab.ID, actual.ID)
			})
		}
	}
}

func Test_Service_DeletePlayer(t *testing.T) {
	stores := []struct {
		name string
		svc  func(t *testing.T) Service
	}{
		{name: "inmem", svc: func(t *testing.T) Service { return newTestService() }},
		{name: "sqlite", svc: newTestSQLiteService},
	}

	for _, st := range stores {
		t.Run(st.name, func(t *testing.T) {
			assert := assert.New(t)
			svc := st.svc(t)
			ctx := context.Background()

			ahab, _ := svc.CreatePlayer(ctx, "ahab", "whale")
			starbuck, _ := svc.CreatePlayer(ctx, "starbuck", "coffee")
			svc.SubmitCommand(ctx, ahab.ID, "g1", "fire a 1")
			svc.SubmitCommand(ctx, starbuck.ID, "g1", "fire b 2")

			_, err := svc.DeletePlayer(ctx, ahab.ID)
			assert.NoError(err)

			_, err = svc.GetPlayer(ctx, ahab.ID.String())
			assert.ErrorIs(err, serr.ErrNotFound)

			game, err := svc.DB.Commands().GetAllByGame(ctx, "g1")
			assert.NoError(err)
			if assert.Len(game, 1) {
				assert.Equal(starbuck.ID, game[0].PlayerID)
			}

			all, err := svc.GetAllPlayers(ctx)
			assert.NoError(err)
			if assert.Len(all, 1) {
				assert.Equal("starbuck", all[0].Username)
			}

			_, err = svc.DeletePlayer(ctx, ahab.ID)
			assert.ErrorIs(err, serr.ErrNotFound)
		})
	}
}

func Test_Service_DeleteCommand(t *testing.T) {
	ctx := context.Background()

	t.Run("owner", func(t *testing.T) {
		assert := assert.New(t)
		svc := newTestService()
		ahab, _ := svc.CreatePlayer(ctx, "ahab", "whale")
		c, _ := svc.SubmitCommand(ctx, ahab.ID, "g1", "fire a 1")

		_, err := svc.DeleteCommand(ctx, ahab.ID, c.ID.String())
		assert.NoError(err)

		_, err = svc.GetCommand(ctx, ahab.ID, c.ID.String())
		assert.ErrorIs(err, serr.ErrNotFound)
	})

	t.Run("other player", func(t *testing.T) {
		assert := assert.New(t)
		svc := newTestService()
		ahab, _ := svc.CreatePlayer(ctx, "ahab", "whale")
		starbuck, _ := svc.CreatePlayer(ctx, "starbuck", "coffee")
		c, _ := svc.SubmitCommand(ctx, ahab.ID, "g1", "fire a 1")

		_, err := svc.DeleteCommand(ctx, starbuck.ID, c.ID.String())
		assert.ErrorIs(err, serr.ErrPermissions)

		_, err = svc.GetCommand(ctx, ahab.ID, c.ID.String())
		assert.NoError(err)
	})
}
