package grading

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/AhmadIqbal246/Role-Based-Education-System/backend/models"
)

func question(correctAnswer string) models.Question {
	return models.Question{
		ID:            uuid.New(),
		LessonID:      uuid.New(),
		Type:          models.QuestionTypeFillBlank,
		QuestionText:  "placeholder",
		CorrectAnswer: correctAnswer,
	}
}

func TestScoreAwardsFixedPointsPerCorrectAnswer(t *testing.T) {
	questions := []models.Question{question("a"), question("b"), question("c")}

	answers := map[string]string{
		questions[0].ID.String(): "a",
		questions[1].ID.String(): "b",
		questions[2].ID.String(): "wrong",
	}

	assert.Equal(t, 4, Score(questions, answers))
}

func TestScoreFullAndZeroBounds(t *testing.T) {
	questions := []models.Question{question("x"), question("y")}

	allCorrect := map[string]string{
		questions[0].ID.String(): "x",
		questions[1].ID.String(): "y",
	}
	assert.Equal(t, PointsPerQuestion*len(questions), Score(questions, allCorrect))

	allWrong := map[string]string{
		questions[0].ID.String(): "nope",
		questions[1].ID.String(): "nope",
	}
	assert.Equal(t, 0, Score(questions, allWrong))
}

func TestScoreIsCaseSensitive(t *testing.T) {
	q := question("true")
	answers := map[string]string{q.ID.String(): "True"}

	assert.Equal(t, 0, Score([]models.Question{q}, answers))
}

func TestScoreMissingAnswersScoreZero(t *testing.T) {
	questions := []models.Question{question("a"), question("b")}

	// Only one answer submitted; the absent one must not raise an error or
	// change the points of the answered one.
	answers := map[string]string{questions[0].ID.String(): "a"}
	assert.Equal(t, PointsPerQuestion, Score(questions, answers))

	// Removing an absent key is a no-op by definition.
	assert.Equal(t, Score(questions, answers), Score(questions, map[string]string{
		questions[0].ID.String(): "a",
	}))
}

func TestScoreUnknownQuestionIDsIgnored(t *testing.T) {
	questions := []models.Question{question("a")}

	answers := map[string]string{
		questions[0].ID.String(): "a",
		uuid.New().String():      "a", // not part of the lesson
	}
	assert.Equal(t, PointsPerQuestion, Score(questions, answers))
}

func TestScoreEmptyQuestionSet(t *testing.T) {
	assert.Equal(t, 0, Score(nil, map[string]string{"whatever": "a"}))
	assert.Equal(t, 0, Score([]models.Question{}, nil))
}
