// messages.go contains message templates and formatting functions for Telegram.

package telegram

import (
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/vocab-quiz/internal/domain/entities"
)

// Plain error messages.
const (
	msgInternalError        = "Что‑то пошло не так. Попробуйте позже."
	msgQuizUsage            = "Используйте: /quiz <id словаря> [количество] [режим].\nРежимы: translation, writing, pronunciation, mixed.\nПример: /quiz 3 10 mixed"
	msgStatsUsage           = "Используйте: /stats или /stats <id словаря>."
	msgDictionaryNotFound   = "Словарь не найден или у вас нет к нему доступа."
	msgEmptyDictionary      = "В словаре пока нет слов для квиза."
	msgQuizNotFound         = "Квиз не найден."
	msgQuizAlreadyCompleted = "Этот квиз уже завершён."
	msgQuizNotCompleted     = "Квиз ещё не завершён."
	msgQuizExpired          = "Сессия квиза устарела. Откройте /quizzes, чтобы продолжить."
	msgAlreadyAnswered      = "Ответ уже принят"
	msgNoUnfinished         = "Незавершённых квизов нет. Начните новый: /quiz <id словаря>."
	msgNoCompleted          = "Вы ещё не завершили ни одного квиза."
	msgInvalidInput         = "Некорректный запрос."
	msgSubmitFailed         = "Не удалось отправить ответы. Ваш выбор сохранён, попробуйте ещё раз."
)

// md escapes plain text for MarkdownV2.
func md(s string) string {
	return tgbotapi.EscapeText(tgbotapi.ModeMarkdownV2, s)
}

func bold(s string) string {
	return "*" + md(s) + "*"
}

// newMessage creates a message with MarkdownV2 parse mode.
func newMessage(chatID int64, text string) tgbotapi.MessageConfig {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdownV2
	return msg
}

// newPlainMessage creates a plain message without MarkdownV2 parse mode.
func newPlainMessage(chatID int64, text string) tgbotapi.MessageConfig {
	return tgbotapi.NewMessage(chatID, text)
}

// newEdit creates an edit of an existing message with MarkdownV2 parse mode.
func newEdit(chatID int64, msgID int, text string) tgbotapi.EditMessageTextConfig {
	edit := tgbotapi.NewEditMessageText(chatID, msgID, text)
	edit.ParseMode = tgbotapi.ModeMarkdownV2
	return edit
}

func msgWelcome() string {
	return fmt.Sprintf(
		"%s\n\n%s\n\n%s",
		bold("👋 Добро пожаловать!"),
		md("Я помогу закрепить слова из ваших словарей с помощью коротких квизов."),
		msgHelp(),
	)
}

func msgHelp() string {
	lines := []string{
		bold("Команды:"),
		md("/quiz <id словаря> [количество] [режим] — начать квиз"),
		md("/quizzes — незавершённые квизы"),
		md("/history — завершённые квизы"),
		md("/stats [id словаря] — статистика"),
		md("/help — помощь"),
		"",
		md("Режимы: translation, writing, pronunciation, mixed."),
	}
	return strings.Join(lines, "\n")
}

func msgUnknownCommand() string {
	return md("Неизвестная команда.") + "\n\n" + msgHelp()
}

func msgUseCommands() string {
	return md("Ответы на вопросы выбирайте кнопками под вопросом.") + "\n\n" + msgHelp()
}

// buildProgressBar creates an ASCII progress bar.
func buildProgressBar(current, total, length int) string {
	if total == 0 {
		return fmt.Sprintf("[%s]", strings.Repeat("░", length))
	}

	filled := int(float64(current) / float64(total) * float64(length))
	if filled > length {
		filled = length
	}

	empty := length - filled
	bar := strings.Repeat("█", filled) + strings.Repeat("░", empty)
	return fmt.Sprintf("[%s]", bar)
}

// buildQuizStartMessage builds quiz start message (MarkdownV2 safe).
func buildQuizStartMessage(mode entities.QuizMode, questions int) string {
	return fmt.Sprintf(
		"%s\n\n%s %s\n%s %s\n\n%s",
		bold("🎯 Квиз начинается!"),
		md("Режим:"),
		bold(formatQuizMode(mode)),
		md("Вопросов:"),
		bold(fmt.Sprint(questions)),
		md("Выберите правильный вариант ответа для каждого вопроса."),
	)
}

// formatQuizMode formats quiz mode for display.
func formatQuizMode(mode entities.QuizMode) string {
	switch mode {
	case entities.ModeTranslation:
		return "🔤 Перевод"
	case entities.ModeWriting:
		return "✍️ Написание"
	case entities.ModePronunciation:
		return "🗣 Произношение"
	case entities.ModeMixed:
		return "🎲 Смешанный режим"
	default:
		return string(mode)
	}
}

// formatQuizQuestion formats a quiz question (MarkdownV2 safe for question text).
func formatQuizQuestion(q entities.QuestionView, currentNum, totalQuestions int) string {
	return fmt.Sprintf(
		"%s\n\n%s",
		md(fmt.Sprintf("Вопрос %d из %d", currentNum, totalQuestions)),
		bold(q.Prompt),
	)
}

// formatAnswerChosen replaces an answered question so its buttons cannot be reused.
func formatAnswerChosen(q entities.QuestionView, currentNum, totalQuestions int, answer string) string {
	return fmt.Sprintf(
		"%s\n\n%s %s",
		formatQuizQuestion(q, currentNum, totalQuestions),
		md("Ваш ответ:"),
		bold(answer),
	)
}

// formatQuizResult formats quiz results (MarkdownV2 safe).
func formatQuizResult(res *entities.QuizResult) string {
	emoji, message := "📚", "Повторите слова и попробуйте ещё раз!"
	switch {
	case res.ScorePercent >= 90:
		emoji, message = "🌟", "Отличный результат!"
	case res.ScorePercent >= 70:
		emoji, message = "👍", "Хороший результат!"
	case res.ScorePercent >= 50:
		emoji, message = "💪", "Неплохо, продолжайте!"
	}

	text := fmt.Sprintf(
		"%s %s\n\n%s %s\n%s",
		md(emoji),
		md("Квиз завершён!"),
		md("Результат:"),
		bold(fmt.Sprintf("%d/%d (%d%%)", res.CorrectCount, res.TotalCount, res.ScorePercent)),
		md(buildProgressBar(res.CorrectCount, res.TotalCount, 10)),
	)
	if res.DurationSeconds != nil {
		text += "\n" + md(fmt.Sprintf("Время: %s", formatDuration(*res.DurationSeconds)))
	}

	return text + "\n\n" + md(message)
}

func formatDuration(seconds int) string {
	if seconds < 60 {
		return fmt.Sprintf("%d с", seconds)
	}
	return fmt.Sprintf("%d мин %d с", seconds/60, seconds%60)
}

// formatQuizReport formats a completed quiz with every graded question.
func formatQuizReport(report *entities.QuizReport) string {
	var b strings.Builder
	b.WriteString(formatQuizResult(report.Quiz.Result))
	b.WriteString("\n")

	for _, q := range report.Questions {
		b.WriteString("\n")
		switch {
		case !q.IsAnswered():
			b.WriteString(md(fmt.Sprintf("➖ %s — %s", q.Prompt, q.CorrectAnswer)))
		case q.IsCorrect != nil && *q.IsCorrect:
			b.WriteString(md(fmt.Sprintf("✅ %s — %s", q.Prompt, *q.UserAnswer)))
		default:
			b.WriteString(md(fmt.Sprintf("❌ %s — %s (верно: %s)", q.Prompt, *q.UserAnswer, q.CorrectAnswer)))
		}
	}

	return b.String()
}

// formatQuizList formats a list of quizzes, newest first.
func formatQuizList(title string, quizzes []*entities.Quiz) string {
	var b strings.Builder
	b.WriteString(bold(title))
	b.WriteString("\n")

	for _, q := range quizzes {
		line := fmt.Sprintf("• %s · словарь %d · %s · %d сл.",
			q.CreatedAt.Format("02.01.2006 15:04"),
			q.DictionaryID,
			formatQuizMode(q.Mode),
			len(q.QuestionIDs),
		)
		if q.IsCompleted() {
			line += fmt.Sprintf(" · %d%%", q.Result.ScorePercent)
		}
		b.WriteString("\n")
		b.WriteString(md(line))
	}

	if len(quizzes) > maxListButtons {
		b.WriteString("\n\n")
		b.WriteString(md(fmt.Sprintf("Кнопки показаны для последних %d.", maxListButtons)))
	}

	return b.String()
}

// formatUserSummary formats overall statistics (MarkdownV2 safe).
func formatUserSummary(s *entities.UserSummary) string {
	return fmt.Sprintf(
		"%s\n\n%s %s\n%s %s\n%s %s\n%s %s",
		bold("📊 Статистика"),
		md("Квизов завершено:"), bold(fmt.Sprint(s.TotalQuizzes)),
		md("Без ошибок:"), bold(fmt.Sprint(s.PerfectScores)),
		md("Всего ошибок:"), bold(fmt.Sprint(s.TotalMistakes)),
		md("Средний результат:"), bold(fmt.Sprintf("%d%%", s.AverageScorePercent)),
	)
}

// formatDictionarySummary formats dictionary statistics (MarkdownV2 safe).
func formatDictionarySummary(s *entities.DictionarySummary) string {
	return fmt.Sprintf(
		"%s\n\n%s %s\n%s %s\n%s\n%s %s\n%s %s",
		bold(fmt.Sprintf("📘 Словарь %d", s.DictionaryID)),
		md("Слов:"), bold(fmt.Sprint(s.TotalWords)),
		md("Выучено:"), bold(fmt.Sprintf("%d (%d%%)", s.LearnedWords, s.PercentageLearned)),
		md(buildProgressBar(s.LearnedWords, s.TotalWords, 10)),
		md("Квизов пройдено:"), bold(fmt.Sprint(s.QuizzesTaken)),
		md("Средний результат:"), bold(fmt.Sprintf("%d%%", s.AverageQuizScore)),
	)
}

// buildReminderNotification builds the unfinished-quiz reminder text.
func buildReminderNotification(r entities.StaleQuizReminder) string {
	return fmt.Sprintf(
		"%s\n\n%s",
		bold("⏰ Напоминание"),
		md(fmt.Sprintf(
			"У вас %d незавершённых квизов. Самый старый начат %s.",
			r.UnfinishedCount,
			r.OldestCreatedAt.Format("02.01.2006"),
		)),
	)
}
