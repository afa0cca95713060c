package activity

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/learnflix/learnflix/internal/catalog"
	"github.com/learnflix/learnflix/internal/learner"
	"github.com/learnflix/learnflix/internal/nav"
)

func testContent() catalog.Activities {
	return catalog.Activities{
		FillBlank:   catalog.FillBlank{Before: "I would like a cup of", After: ", please.", Answer: "coffee"},
		DragDrop:    catalog.DragDrop{Words: []string{"How", "are", "you"}},
		Quiz:        catalog.Quiz{Question: "How are you?", Options: []string{"Como você está?", "Onde você está?"}, CorrectIndex: 0},
		ListenWrite: catalog.ListenWrite{Prompt: "listen"},
		Speaking:    catalog.Speaking{Phrase: "How are you doing today?"},
	}
}

func loggedInNavigator(t *testing.T) (*learner.State, *nav.Navigator) {
	t.Helper()
	state := learner.NewState()
	state.SetLoggedIn(true, learner.MethodGuest)
	n := nav.New(state)
	_, err := n.GoTo(nav.Activities)
	require.NoError(t, err)
	return state, n
}

func TestNewSession(t *testing.T) {
	s := NewSession(testContent())
	snap := s.Snapshot()

	assert.NotEmpty(t, snap.ID)
	assert.Equal(t, FillBlank, snap.ActiveType)
	assert.Equal(t, 0, snap.Score)
	assert.Equal(t, TotalQuestions, snap.TotalQuestions)
	assert.Equal(t, VerdictNone, snap.LastVerdict)
	assert.False(t, snap.Complete)
	assert.Equal(t, NoChoice, snap.Draft.Choice)
}

func TestNewSession_DistinctIDs(t *testing.T) {
	a := NewSession(testContent())
	b := NewSession(testContent())
	assert.NotEqual(t, a.ID(), b.ID())
}

func TestSubmit_FillBlankNormalization(t *testing.T) {
	s := NewSession(testContent())

	for i, answer := range []string{"Coffee", "coffee", "  coffee  "} {
		v, err := s.Submit(FillBlank, TextAnswer(answer))
		require.NoError(t, err)
		assert.Equal(t, VerdictCorrect, v, "answer %q", answer)
		assert.Equal(t, i+1, s.Score())
	}
}

func TestSubmit_FillBlankWrong(t *testing.T) {
	s := NewSession(testContent())

	v, err := s.Submit(FillBlank, TextAnswer("tea"))
	require.NoError(t, err)
	assert.Equal(t, VerdictIncorrect, v)
	assert.Equal(t, 0, s.Score())
	assert.Equal(t, VerdictIncorrect, s.LastVerdict())
}

func TestSubmit_FillBlankEmpty(t *testing.T) {
	s := NewSession(testContent())

	_, err := s.Submit(FillBlank, TextAnswer("   "))
	assert.ErrorIs(t, err, ErrNoAnswer)
	assert.Equal(t, 0, s.Score())
}

func TestSubmit_Quiz(t *testing.T) {
	tests := []struct {
		name    string
		choice  int
		want    Verdict
		wantErr error
		score   int
	}{
		{"correct index", 0, VerdictCorrect, nil, 1},
		{"wrong index", 1, VerdictIncorrect, nil, 0},
		{"nothing selected", NoChoice, VerdictNone, ErrNoAnswer, 0},
		{"out of range", 7, VerdictNone, ErrChoiceOutOfRange, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSession(testContent())
			require.NoError(t, s.SelectType(Quiz))

			v, err := s.Submit(Quiz, ChoiceAnswer(tt.choice))
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.want, v)
			assert.Equal(t, tt.score, s.Score())
		})
	}
}

func TestSubmit_StubbedTypesAlwaysCorrect(t *testing.T) {
	for _, typ := range []Type{DragDrop, ListenWrite, Speaking} {
		t.Run(string(typ), func(t *testing.T) {
			s := NewSession(testContent())
			require.NoError(t, s.SelectType(typ))

			v, err := s.Submit(typ, TextAnswer(""))
			require.NoError(t, err)
			assert.Equal(t, VerdictCorrect, v)
			assert.Equal(t, 1, s.Score())
		})
	}
}

func TestSubmit_UsageErrors(t *testing.T) {
	s := NewSession(testContent())

	_, err := s.Submit(Type("essay"), TextAnswer("x"))
	assert.ErrorIs(t, err, ErrUnknownType)

	_, err = s.Submit(Quiz, ChoiceAnswer(0))
	assert.ErrorIs(t, err, ErrTypeNotActive)

	assert.Equal(t, 0, s.Score())
}

func TestSelectType_KeepsScoreResetsDraft(t *testing.T) {
	s := NewSession(testContent())
	_, err := s.Submit(FillBlank, TextAnswer("coffee"))
	require.NoError(t, err)
	s.SetText("half typed")

	require.NoError(t, s.SelectType(Quiz))
	require.NoError(t, s.SelectChoice(1))
	require.NoError(t, s.SelectType(FillBlank))

	assert.Equal(t, 1, s.Score())
	assert.Empty(t, s.Draft().Text)
	assert.Equal(t, NoChoice, s.Draft().Choice)
	assert.Equal(t, VerdictNone, s.LastVerdict())
}

func TestSelectType_Unknown(t *testing.T) {
	s := NewSession(testContent())
	assert.ErrorIs(t, s.SelectType(Type("karaoke")), ErrUnknownType)
	assert.Equal(t, FillBlank, s.Active())
}

func TestSelectChoice(t *testing.T) {
	s := NewSession(testContent())
	assert.ErrorIs(t, s.SelectChoice(0), ErrTypeNotActive)

	require.NoError(t, s.SelectType(Quiz))
	assert.ErrorIs(t, s.SelectChoice(5), ErrChoiceOutOfRange)
	require.NoError(t, s.SelectChoice(1))
	assert.Equal(t, 1, s.Draft().Choice)

	v, err := s.Submit(Quiz, s.Draft().Answer())
	require.NoError(t, err)
	assert.Equal(t, VerdictIncorrect, v)
}

func TestToggleRecording(t *testing.T) {
	s := NewSession(testContent())
	require.NoError(t, s.SelectType(Speaking))
	s.ToggleRecording()
	assert.True(t, s.Draft().Recording)
	s.ToggleRecording()
	assert.False(t, s.Draft().Recording)
	assert.Equal(t, 0, s.Score())
}

func TestCompletionAndReward(t *testing.T) {
	state, n := loggedInNavigator(t)
	s := NewSession(testContent())

	// Mixed formats: two fill-blank, one quiz, one drag-drop, one speaking.
	_, err := s.Submit(FillBlank, TextAnswer("Coffee"))
	require.NoError(t, err)
	_, err = s.Submit(FillBlank, TextAnswer("coffee"))
	require.NoError(t, err)
	require.NoError(t, s.SelectType(Quiz))
	_, err = s.Submit(Quiz, ChoiceAnswer(0))
	require.NoError(t, err)
	require.NoError(t, s.SelectType(DragDrop))
	_, err = s.Submit(DragDrop, TextAnswer(""))
	require.NoError(t, err)

	assert.False(t, s.Complete())
	assert.ErrorIs(t, s.ClaimReward(state, n), ErrNotComplete)

	require.NoError(t, s.SelectType(Speaking))
	_, err = s.Submit(Speaking, TextAnswer(""))
	require.NoError(t, err)

	snap := s.Snapshot()
	assert.Equal(t, 5, snap.Score)
	assert.True(t, snap.Complete)
	assert.Equal(t, 100, snap.Percent())

	xpBefore := state.XP()
	require.NoError(t, s.ClaimReward(state, n))
	assert.Equal(t, xpBefore+RewardXP, state.XP())
	assert.Equal(t, nav.Dashboard, n.Current())
}

func TestReward_OnlyOnce(t *testing.T) {
	state, n := loggedInNavigator(t)
	s := NewSession(testContent())
	require.NoError(t, s.SelectType(DragDrop))
	for i := 0; i < TotalQuestions; i++ {
		_, err := s.Submit(DragDrop, TextAnswer(""))
		require.NoError(t, err)
	}
	require.NoError(t, s.ClaimReward(state, n))
	xp := state.XP()

	assert.ErrorIs(t, s.ClaimReward(state, n), ErrRewardClaimed)
	_, err := s.Submit(DragDrop, TextAnswer(""))
	assert.ErrorIs(t, err, ErrRewardClaimed)
	assert.Equal(t, xp, state.XP())
}

func TestScoreClampedAtTotal(t *testing.T) {
	s := NewSession(testContent())
	require.NoError(t, s.SelectType(ListenWrite))
	for i := 0; i < TotalQuestions+3; i++ {
		v, err := s.Submit(ListenWrite, TextAnswer("anything"))
		require.NoError(t, err)
		assert.Equal(t, VerdictCorrect, v)
	}
	assert.Equal(t, TotalQuestions, s.Score())
}

type failingProgress struct{}

func (failingProgress) AddXP(int) error { return errors.New("boom") }

func TestClaimReward_ProgressFailureKeepsReward(t *testing.T) {
	_, n := loggedInNavigator(t)
	s := NewSession(testContent())
	require.NoError(t, s.SelectType(Speaking))
	for i := 0; i < TotalQuestions; i++ {
		_, err := s.Submit(Speaking, TextAnswer(""))
		require.NoError(t, err)
	}

	assert.Error(t, s.ClaimReward(failingProgress{}, n))
	assert.False(t, s.Claimed())
	assert.Equal(t, nav.Activities, n.Current())
}

func TestClaimReward_GateFailureAwardsNothing(t *testing.T) {
	state, n := loggedInNavigator(t)
	s := NewSession(testContent())
	require.NoError(t, s.SelectType(DragDrop))
	for i := 0; i < TotalQuestions; i++ {
		_, err := s.Submit(DragDrop, TextAnswer(""))
		require.NoError(t, err)
	}
	state.SetLoggedIn(false, "")
	xp := state.XP()

	assert.ErrorIs(t, s.ClaimReward(state, n), nav.ErrLoginRequired)
	assert.Equal(t, xp, state.XP())
	assert.False(t, s.Claimed())
	assert.Equal(t, nav.Activities, n.Current())
}

func TestSession_LogsRejectedUsage(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	s := NewSession(testContent(), WithLogger(zap.New(core)))

	_, err := s.Submit(Quiz, ChoiceAnswer(0))
	require.ErrorIs(t, err, ErrTypeNotActive)
	_, err = s.Submit(FillBlank, TextAnswer("coffee"))
	require.NoError(t, err)

	assert.Equal(t, 1, logs.FilterLevelExact(zap.WarnLevel).FilterMessage("submit for inactive tab").Len())
	assert.Equal(t, 1, logs.FilterLevelExact(zap.DebugLevel).FilterMessage("answer submitted").Len())
}
