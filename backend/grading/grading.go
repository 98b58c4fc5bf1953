// Package grading implements the scoring rule applied to quiz submissions.
package grading

import "github.com/AhmadIqbal246/Role-Based-Education-System/backend/models"

// PointsPerQuestion is the fixed award for a correct answer. There is no
// partial credit and no penalty for wrong or missing answers.
const PointsPerQuestion = 2

// Score grades a submitted answer map against a lesson's question set.
// Answers are keyed by question ID and compared with exact, case-sensitive
// string equality against the stored correct answer; a question with no
// submitted answer simply scores zero. Score is pure: it touches no store
// and never fails.
func Score(questions []models.Question, answers map[string]string) int {
	score := 0
	for _, q := range questions {
		answer, ok := answers[q.ID.String()]
		if !ok {
			continue
		}
		if answer == q.CorrectAnswer {
			score += PointsPerQuestion
		}
	}
	return score
}
