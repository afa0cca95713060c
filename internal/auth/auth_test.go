package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/learnflix/learnflix/internal/learner"
	"github.com/learnflix/learnflix/internal/nav"
)

func newTestService(opts ...Option) (*Service, *learner.State, *nav.Navigator) {
	state := learner.NewState()
	navigator := nav.New(state)
	return NewService(state, navigator, opts...), state, navigator
}

func TestLogin(t *testing.T) {
	svc, _, navigator := newTestService()

	snap, err := svc.Login(learner.MethodGoogle)
	require.NoError(t, err)
	assert.True(t, snap.LoggedIn)
	assert.Equal(t, learner.MethodGoogle, snap.Method)
	assert.Equal(t, nav.Dashboard, navigator.Current())
}

func TestLogin_EveryMethodSucceeds(t *testing.T) {
	for _, m := range Methods() {
		t.Run(string(m), func(t *testing.T) {
			svc, _, _ := newTestService()
			_, err := svc.Login(m)
			assert.NoError(t, err)
		})
	}
}

func TestLogin_Twice(t *testing.T) {
	svc, _, _ := newTestService()
	_, err := svc.Login(learner.MethodGuest)
	require.NoError(t, err)

	_, err = svc.Login(learner.MethodGuest)
	assert.ErrorIs(t, err, ErrAlreadyLoggedIn)
}

func TestLogin_UnknownMethod(t *testing.T) {
	svc, state, navigator := newTestService()
	_, err := svc.Login("facebook")
	assert.ErrorIs(t, err, ErrUnknownMethod)
	assert.False(t, state.LoggedIn())
	assert.Equal(t, nav.Login, navigator.Current())
}

func TestLogout(t *testing.T) {
	svc, _, navigator := newTestService()
	_, err := svc.Login(learner.MethodEmail)
	require.NoError(t, err)

	snap, err := svc.Logout()
	require.NoError(t, err)
	assert.False(t, snap.LoggedIn)
	assert.Equal(t, nav.Login, navigator.Current())
}

func TestLogout_WhileLoggedOut(t *testing.T) {
	svc, _, _ := newTestService()
	_, err := svc.Logout()
	assert.ErrorIs(t, err, ErrNotLoggedIn)
}

func TestLogoutLogin_KeepsProgress(t *testing.T) {
	svc, state, _ := newTestService()
	_, err := svc.Login(learner.MethodGuest)
	require.NoError(t, err)
	require.NoError(t, state.AddXP(120))
	before := state.Snapshot()

	_, err = svc.Logout()
	require.NoError(t, err)
	after, err := svc.Login(learner.MethodGuest)
	require.NoError(t, err)

	assert.True(t, after.LoggedIn)
	assert.Equal(t, before.XP, after.XP)
	assert.Equal(t, before.StreakDays, after.StreakDays)
	assert.Equal(t, before.Level, after.Level)
}

func TestWithHome(t *testing.T) {
	svc, _, navigator := newTestService(WithHome(nav.AITeacher))
	_, err := svc.Login(learner.MethodGuest)
	require.NoError(t, err)
	assert.Equal(t, nav.AITeacher, navigator.Current())
}

func TestWithHome_IgnoresLogin(t *testing.T) {
	svc, _, navigator := newTestService(WithHome(nav.Login))
	_, err := svc.Login(learner.MethodGuest)
	require.NoError(t, err)
	assert.Equal(t, nav.Dashboard, navigator.Current())
}
