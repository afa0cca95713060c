package lesson

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/learnflix/learnflix/internal/catalog"
	"github.com/learnflix/learnflix/internal/learner"
	"github.com/learnflix/learnflix/internal/nav"
)

func testLesson() catalog.Lesson {
	return catalog.Lesson{ID: 1, Title: "Friends - Coffee Shop Conversation", Level: "B1", Category: catalog.CategoryIntermediate}
}

func TestNewPlayer_Defaults(t *testing.T) {
	p := NewPlayer(testLesson())
	assert.False(t, p.Playing())
	assert.Equal(t, SubtitlesBoth, p.Subtitles())
	assert.Equal(t, DefaultSpeed, p.Speed())
	assert.False(t, p.Favorited())
	assert.False(t, p.Finished())
	assert.Equal(t, 1, p.Lesson().ID)
}

func TestPlayer_Toggles(t *testing.T) {
	p := NewPlayer(testLesson())
	p.TogglePlay()
	p.ToggleFavorite()
	assert.True(t, p.Playing())
	assert.True(t, p.Favorited())
	p.TogglePlay()
	assert.False(t, p.Playing())
}

func TestPlayer_Subtitles(t *testing.T) {
	p := NewPlayer(testLesson())
	assert.Equal(t, SubtitlesEN, p.CycleSubtitles())
	assert.Equal(t, SubtitlesPT, p.CycleSubtitles())
	assert.Equal(t, SubtitlesBoth, p.CycleSubtitles())

	require.NoError(t, p.SetSubtitles(SubtitlesPT))
	assert.ErrorIs(t, p.SetSubtitles("fr"), ErrUnknownSubtitles)
	assert.Equal(t, SubtitlesPT, p.Subtitles())
}

func TestPlayer_Speed(t *testing.T) {
	p := NewPlayer(testLesson())
	assert.Equal(t, Speed(1.25), p.Faster())
	assert.Equal(t, Speed(1.5), p.Faster())
	assert.Equal(t, Speed(1.5), p.Faster(), "stops at fastest")

	require.NoError(t, p.SetSpeed(0.5))
	assert.Equal(t, Speed(0.5), p.Slower(), "stops at slowest")

	assert.ErrorIs(t, p.SetSpeed(2), ErrUnsupportedSpeed)
	assert.Equal(t, "0.75x", Speed(0.75).String())
}

func TestPlayer_Replay(t *testing.T) {
	p := NewPlayer(testLesson())
	p.Replay()
	assert.True(t, p.Playing())
	assert.Equal(t, 1, p.Replays())
}

func TestPlayer_Finish(t *testing.T) {
	state := learner.NewState()
	state.SetLoggedIn(true, learner.MethodGuest)
	n := nav.New(state)
	_, err := n.GoTo(nav.Lesson)
	require.NoError(t, err)

	p := NewPlayer(testLesson())
	p.TogglePlay()
	xp := state.XP()

	require.NoError(t, p.Finish(state, n))
	assert.Equal(t, xp+FinishXP, state.XP())
	assert.Equal(t, nav.Activities, n.Current())
	assert.True(t, p.Finished())
	assert.False(t, p.Playing())

	assert.ErrorIs(t, p.Finish(state, n), ErrAlreadyFinished)
	assert.Equal(t, xp+FinishXP, state.XP())
}

func TestPlayer_FinishGateFailureAwardsNothing(t *testing.T) {
	state := learner.NewState()
	n := nav.New(state)
	core, logs := observer.New(zap.DebugLevel)
	p := NewPlayer(testLesson(), WithLogger(zap.New(core)))
	xp := state.XP()

	assert.ErrorIs(t, p.Finish(state, n), nav.ErrLoginRequired)
	assert.Equal(t, xp, state.XP())
	assert.False(t, p.Finished())
	assert.Equal(t, nav.Login, n.Current())
	assert.Zero(t, logs.FilterMessage("lesson finished").Len())
}

func TestPlayer_LogsRejectedUsage(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	p := NewPlayer(testLesson(), WithLogger(zap.New(core)))

	assert.ErrorIs(t, p.SetSpeed(3), ErrUnsupportedSpeed)
	assert.ErrorIs(t, p.SetSubtitles("fr"), ErrUnknownSubtitles)
	assert.Equal(t, 2, logs.FilterLevelExact(zap.WarnLevel).Len())
}
