package telegram

import (
	"errors"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// Callback action constants.
const (
	actionAnswer     = "answer"
	actionResume     = "resume"
	actionResult     = "result"
	actionUnfinished = "unfinished"
	actionSubmit     = "submit"
)

var errBadCallback = errors.New("malformed callback data")

// callbackData represents structured callback data.
type callbackData struct {
	Action string
	Params []string
	Raw    string
}

// encode creates callback string.
func (cd callbackData) encode() string {
	if len(cd.Params) == 0 {
		return cd.Action
	}
	return cd.Action + ":" + strings.Join(cd.Params, ":")
}

// decodeCallback parses callback data string.
func decodeCallback(data string) callbackData {
	parts := strings.Split(data, ":")
	if len(parts) == 0 {
		return callbackData{Raw: data}
	}

	return callbackData{
		Action: parts[0],
		Params: parts[1:],
		Raw:    data,
	}
}

// quizID parses the quiz ID carried as the first parameter.
func (cd callbackData) quizID() (uuid.UUID, error) {
	if len(cd.Params) == 0 {
		return uuid.Nil, errBadCallback
	}
	id, err := uuid.Parse(cd.Params[0])
	if err != nil {
		return uuid.Nil, errBadCallback
	}
	return id, nil
}

// answer parses "answer:<quiz>:<position>:<choice>".
func (cd callbackData) answer() (quizID uuid.UUID, position, choice int, err error) {
	if cd.Action != actionAnswer || len(cd.Params) != 3 {
		return uuid.Nil, 0, 0, errBadCallback
	}

	quizID, err = cd.quizID()
	if err != nil {
		return uuid.Nil, 0, 0, err
	}

	position, err1 := strconv.Atoi(cd.Params[1])
	choice, err2 := strconv.Atoi(cd.Params[2])
	if err1 != nil || err2 != nil || position < 0 || choice < 0 {
		return uuid.Nil, 0, 0, errBadCallback
	}

	return quizID, position, choice, nil
}

// buildAnswerCallback builds callback data for answering a quiz question.
func buildAnswerCallback(quizID uuid.UUID, position, choice int) string {
	return callbackData{
		Action: actionAnswer,
		Params: []string{
			quizID.String(),
			strconv.Itoa(position),
			strconv.Itoa(choice),
		},
	}.encode()
}

// buildResumeCallback builds callback data for resuming an unfinished quiz.
func buildResumeCallback(quizID uuid.UUID) string {
	return callbackData{
		Action: actionResume,
		Params: []string{quizID.String()},
	}.encode()
}

// buildResultCallback builds callback data for opening a completed quiz.
func buildResultCallback(quizID uuid.UUID) string {
	return callbackData{
		Action: actionResult,
		Params: []string{quizID.String()},
	}.encode()
}

// buildSubmitCallback builds callback data for resubmitting a finished answer sheet.
func buildSubmitCallback(quizID uuid.UUID) string {
	return callbackData{
		Action: actionSubmit,
		Params: []string{quizID.String()},
	}.encode()
}

func buildUnfinishedCallback() string {
	return actionUnfinished
}
