package engine

import "github.com/hupe1980/quizbot/core"

// Menu commands recognized by the state machine. Adapters render these as
// keyboard buttons; the engine matches them against the raw message text.
const (
	CommandNewQuestion = "Новый вопрос"
	CommandGiveUp      = "Сдаться"
	CommandScore       = "Мой счет"
	CommandCancel      = "/cancel"
)

// User-facing message texts.
const (
	// GreetingMessage welcomes a user whose name is unknown.
	GreetingMessage = "Приветствуем тебя в нашей викторине!\nНажми «Новый вопрос» для начала викторины."
	// GreetingNamedFormat welcomes a user by first name (one %s verb).
	GreetingNamedFormat = "Привет, %s! Я бот для викторин.\nНажми «Новый вопрос» для начала викторины.\n/cancel - для отмены."
	// CorrectAnswerMessage acknowledges a correct solution attempt.
	CorrectAnswerMessage = "Правильно! Поздравляю! Для следующего вопроса нажми «Новый вопрос»."
	// WrongAnswerMessage rejects an incorrect solution attempt.
	WrongAnswerMessage = "Неправильно… Попробуешь ещё раз?"
	// RevealAnswerFormat reveals the stored answer after a give-up (one %s verb).
	RevealAnswerFormat = "Правильный ответ: %s\nЧтобы продолжить, нажми «Новый вопрос»."
	// UnrecognizedMessage guides the user after input the machine cannot act on.
	UnrecognizedMessage = "Я вас не понимаю.\nЧтобы получить новый вопрос, нажми «Новый вопрос».\nЕсли вы уже получили новый вопрос, то попробуйте ответить на него или нажми «Сдаться», чтобы узнать правильный ответ."
	// QuestionPendingMessage answers a new-question request while an answer is pending.
	QuestionPendingMessage = "Сначала ответь на текущий вопрос или нажми «Сдаться», чтобы узнать правильный ответ."
	// ScoreFormat reports the running score (two %d verbs: score, answered).
	ScoreFormat = "Ваш текущий счет: %d из %d"
	// CancelMessage closes the interactive flow.
	CancelMessage = "Вы завершили опрос. Чтобы продолжить, нажми «Новый вопрос»."
	// UnavailableMessage is the generic degraded reply adapters send when a
	// turn fails; internal detail never reaches the user.
	UnavailableMessage = "Викторина временно недоступна. Попробуйте ещё раз чуть позже."
)

// MainMenu is the standard quiz keyboard: the two quiz actions on the first
// row, the score button below.
func MainMenu() *core.Keyboard {
	return &core.Keyboard{Rows: [][]core.Button{
		{
			{Label: CommandNewQuestion, Color: core.ButtonPrimary},
			{Label: CommandGiveUp, Color: core.ButtonNegative},
		},
		{
			{Label: CommandScore, Color: core.ButtonSecondary},
		},
	}}
}
