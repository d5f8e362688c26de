package telegram

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/quizbot/engine"
)

func TestReplyKeyboard_RendersMenuRows(t *testing.T) {
	markup := replyKeyboard(engine.MainMenu())

	require.Len(t, markup.Keyboard, 2)
	require.Len(t, markup.Keyboard[0], 2)
	assert.Equal(t, engine.CommandNewQuestion, markup.Keyboard[0][0].Text)
	assert.Equal(t, engine.CommandGiveUp, markup.Keyboard[0][1].Text)
	assert.Equal(t, engine.CommandScore, markup.Keyboard[1][0].Text)
	assert.True(t, markup.ResizeKeyboard)
}
