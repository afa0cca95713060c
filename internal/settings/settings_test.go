package settings

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/learnflix/learnflix/internal/lesson"
)

func TestDefaults(t *testing.T) {
	s := Defaults()
	require.NoError(t, s.Validate())
	assert.True(t, s.DualSubtitles)
	assert.Equal(t, lesson.Speed(1.0), s.VideoSpeed)
	assert.Equal(t, LanguagePTBR, s.InterfaceLanguage)
	assert.True(t, s.Notifications)
	assert.True(t, s.DarkMode)
	assert.False(t, s.Autoplay)
	assert.True(t, s.SoundEffects)
	assert.Equal(t, DifficultyBeginner, s.Difficulty)
}

func TestValidate_Rejects(t *testing.T) {
	tests := []struct {
		name string
		mut  func(*Settings)
	}{
		{"speed", func(s *Settings) { s.VideoSpeed = 3 }},
		{"language", func(s *Settings) { s.InterfaceLanguage = "fr-FR" }},
		{"difficulty", func(s *Settings) { s.Difficulty = "expert" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Defaults()
			tt.mut(&s)
			assert.ErrorIs(t, s.Validate(), ErrInvalid)
		})
	}
}

func TestChange_Toggle(t *testing.T) {
	s := Defaults()
	next, err := s.Change(KeyAutoplay)
	require.NoError(t, err)
	assert.True(t, next.Autoplay)
	assert.False(t, s.Autoplay, "receiver is not modified")
}

func TestChange_Cycles(t *testing.T) {
	s := Defaults()
	var err error
	s, err = s.Change(KeyVideoSpeed)
	require.NoError(t, err)
	assert.Equal(t, lesson.Speed(1.25), s.VideoSpeed)

	s, err = s.Change(KeyInterfaceLanguage)
	require.NoError(t, err)
	assert.Equal(t, LanguageENUS, s.InterfaceLanguage)

	for range Difficulties() {
		s, err = s.Change(KeyDifficulty)
		require.NoError(t, err)
	}
	assert.Equal(t, DifficultyBeginner, s.Difficulty)
}

func TestChange_Errors(t *testing.T) {
	s := Defaults()
	_, err := s.Change(KeyDarkMode)
	assert.ErrorIs(t, err, ErrLocked)
	_, err = s.Change("volume")
	assert.ErrorIs(t, err, ErrUnknownKey)
}

func TestItems(t *testing.T) {
	items := Defaults().Items()
	require.Len(t, items, 12)
	assert.Equal(t, KeyDualSubtitles, items[0].Key)
	assert.Equal(t, "1x", items[1].Value)
	for _, it := range items {
		if it.Key == KeyDarkMode {
			assert.True(t, it.Locked)
		}
	}
}
