package routes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/AhmadIqbal246/Role-Based-Education-System/backend/config"
	"github.com/AhmadIqbal246/Role-Based-Education-System/backend/models"
	"github.com/AhmadIqbal246/Role-Based-Education-System/backend/utils"
)

func newTestApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	cfg := &config.Config{
		JWTSecret:  "testsecret",
		ServerPort: "8080",
	}

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, utils.Migrate(db))

	app := fiber.New()
	SetupRoutes(app, db, cfg)
	return app, db
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body interface{}) *http.Response {
	t.Helper()

	var reader *bytes.Buffer
	if body != nil {
		buf, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewBuffer(buf)
	} else {
		reader = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", token)
	}

	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func decode(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

func register(t *testing.T, app *fiber.App, name string, role models.Role, classID string) string {
	t.Helper()

	payload := map[string]string{
		"name":     name,
		"email":    name + "@example.com",
		"password": "password123",
		"role":     string(role),
		"class":    classID,
	}
	resp := doJSON(t, app, "POST", "/api/auth/register", "", payload)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var result map[string]interface{}
	decode(t, resp, &result)
	require.NotEmpty(t, result["token"])
	return result["token"].(string)
}

func createClass(t *testing.T, app *fiber.App, teacherToken, name string) string {
	t.Helper()
	resp := doJSON(t, app, "POST", "/api/teacher/create-class", teacherToken, map[string]string{"name": name})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var class map[string]interface{}
	decode(t, resp, &class)
	return class["id"].(string)
}

func createLesson(t *testing.T, app *fiber.App, teacherToken, classID, title string) string {
	t.Helper()
	resp := doJSON(t, app, "POST", "/api/teacher/classes/"+classID+"/create-lesson", teacherToken,
		map[string]interface{}{"title": title, "materials": []string{"intro.pdf"}})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var lesson map[string]interface{}
	decode(t, resp, &lesson)
	return lesson["id"].(string)
}

func createQuestion(t *testing.T, app *fiber.App, teacherToken, lessonID, text, answer string) string {
	t.Helper()
	resp := doJSON(t, app, "POST", "/api/teacher/lessons/"+lessonID+"/create-question", teacherToken,
		map[string]interface{}{
			"type":           models.QuestionTypeFillBlank,
			"question_text":  text,
			"correct_answer": answer,
		})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	var question map[string]interface{}
	decode(t, resp, &question)
	return question["id"].(string)
}

func TestRegisterAndLogin(t *testing.T) {
	app, _ := newTestApp(t)

	register(t, app, "teacher1", models.RoleTeacher, "")

	resp := doJSON(t, app, "POST", "/api/auth/login", "", map[string]string{
		"email":    "teacher1@example.com",
		"password": "password123",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var result map[string]interface{}
	decode(t, resp, &result)
	assert.NotEmpty(t, result["token"])
	assert.Equal(t, "Teacher", result["role"])
}

func TestLoginRejectsBadPassword(t *testing.T) {
	app, _ := newTestApp(t)
	register(t, app, "teacher1", models.RoleTeacher, "")

	resp := doJSON(t, app, "POST", "/api/auth/login", "", map[string]string{
		"email":    "teacher1@example.com",
		"password": "wrongpassword",
	})
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestQuizSubmissionFlow(t *testing.T) {
	app, _ := newTestApp(t)

	teacherToken := register(t, app, "teacher1", models.RoleTeacher, "")
	classID := createClass(t, app, teacherToken, "Algebra")
	lessonID := createLesson(t, app, teacherToken, classID, "Linear equations")

	q1 := createQuestion(t, app, teacherToken, lessonID, "2+2?", "4")
	q2 := createQuestion(t, app, teacherToken, lessonID, "3+3?", "6")
	q3 := createQuestion(t, app, teacherToken, lessonID, "5+5?", "10")

	studentToken := register(t, app, "student1", models.RoleStudent, classID)

	// Questions served to students must not contain the correct answer.
	resp := doJSON(t, app, "GET", "/api/student/lessons/"+lessonID+"/questions", studentToken, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var questions []map[string]interface{}
	decode(t, resp, &questions)
	require.Len(t, questions, 3)
	for _, q := range questions {
		_, leaked := q["correct_answer"]
		assert.False(t, leaked, "student payload must not carry correct_answer")
	}

	// Two correct, one wrong: fixed 2 points each.
	resp = doJSON(t, app, "POST", "/api/student/lessons/"+lessonID+"/submit-answers", studentToken,
		map[string]interface{}{"answers": map[string]string{q1: "4", q2: "6", q3: "11"}})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var submitResult map[string]interface{}
	decode(t, resp, &submitResult)
	assert.EqualValues(t, 4, submitResult["score"])

	// Student view: one row enriched with the lesson title.
	resp = doJSON(t, app, "GET", "/api/student/results", studentToken, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var studentResults []map[string]interface{}
	decode(t, resp, &studentResults)
	require.Len(t, studentResults, 1)
	assert.Equal(t, "Linear equations", studentResults[0]["lesson_title"])
	assert.EqualValues(t, 4, studentResults[0]["score"])

	// Teacher view: same row, with the student name.
	resp = doJSON(t, app, "GET", "/api/teacher/results", teacherToken, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var teacherResults []map[string]interface{}
	decode(t, resp, &teacherResults)
	require.Len(t, teacherResults, 1)
	assert.Equal(t, "student1", teacherResults[0]["student_name"])

	// Admin view: global listing.
	adminToken := register(t, app, "admin1", models.RoleAdmin, "")
	resp = doJSON(t, app, "GET", "/api/admin/results", adminToken, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var adminResults []map[string]interface{}
	decode(t, resp, &adminResults)
	assert.Len(t, adminResults, 1)
}

func TestRepeatedSubmissionsAppendResults(t *testing.T) {
	app, _ := newTestApp(t)

	teacherToken := register(t, app, "teacher1", models.RoleTeacher, "")
	classID := createClass(t, app, teacherToken, "Algebra")
	lessonID := createLesson(t, app, teacherToken, classID, "Linear equations")
	q1 := createQuestion(t, app, teacherToken, lessonID, "2+2?", "4")

	studentToken := register(t, app, "student1", models.RoleStudent, classID)
	answers := map[string]interface{}{"answers": map[string]string{q1: "4"}}

	for i := 0; i < 2; i++ {
		resp := doJSON(t, app, "POST", "/api/student/lessons/"+lessonID+"/submit-answers", studentToken, answers)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
	}

	resp := doJSON(t, app, "GET", "/api/student/results", studentToken, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var results []map[string]interface{}
	decode(t, resp, &results)
	assert.Len(t, results, 2, "every attempt keeps its own Result row")
}

func TestSubmitMalformedLessonID(t *testing.T) {
	app, _ := newTestApp(t)
	studentToken := register(t, app, "student1", models.RoleStudent, "00000000-0000-0000-0000-000000000001")

	resp := doJSON(t, app, "POST", "/api/student/lessons/not-a-uuid/submit-answers", studentToken,
		map[string]interface{}{"answers": map[string]string{}})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestSubmitUnknownLesson(t *testing.T) {
	app, _ := newTestApp(t)
	studentToken := register(t, app, "student1", models.RoleStudent, "00000000-0000-0000-0000-000000000001")

	resp := doJSON(t, app, "POST",
		"/api/student/lessons/8a9a2c02-52dc-4b23-9517-d4ea58da1f2b/submit-answers", studentToken,
		map[string]interface{}{"answers": map[string]string{}})
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestEmptyResultViewsReturnNotFound(t *testing.T) {
	app, _ := newTestApp(t)

	teacherToken := register(t, app, "teacher1", models.RoleTeacher, "")
	resp := doJSON(t, app, "GET", "/api/teacher/results", teacherToken, nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	studentToken := register(t, app, "student1", models.RoleStudent, "00000000-0000-0000-0000-000000000001")
	resp = doJSON(t, app, "GET", "/api/student/results", studentToken, nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestRoleEnforcement(t *testing.T) {
	app, _ := newTestApp(t)

	studentToken := register(t, app, "student1", models.RoleStudent, "00000000-0000-0000-0000-000000000001")

	// Students cannot reach teacher or admin surfaces.
	resp := doJSON(t, app, "POST", "/api/teacher/create-class", studentToken, map[string]string{"name": "x"})
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	resp = doJSON(t, app, "GET", "/api/admin/results", studentToken, nil)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	// No token at all.
	resp = doJSON(t, app, "GET", "/api/student/results", "", nil)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAdminUserManagement(t *testing.T) {
	app, db := newTestApp(t)

	adminToken := register(t, app, "admin1", models.RoleAdmin, "")

	resp := doJSON(t, app, "POST", "/api/admin/create-teacher", adminToken, map[string]string{
		"name":     "teacher2",
		"email":    "teacher2@example.com",
		"password": "password123",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var teacher models.User
	require.NoError(t, db.Where("email = ?", "teacher2@example.com").First(&teacher).Error)
	assert.Equal(t, models.RoleTeacher, teacher.Role)

	resp = doJSON(t, app, "POST", "/api/admin/change-role", adminToken, map[string]string{
		"user_id":  teacher.ID.String(),
		"new_role": string(models.RoleAdmin),
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.NoError(t, db.First(&teacher, "id = ?", teacher.ID).Error)
	assert.Equal(t, models.RoleAdmin, teacher.Role)

	resp = doJSON(t, app, "POST", "/api/admin/change-role", adminToken, map[string]string{
		"user_id":  teacher.ID.String(),
		"new_role": "Superuser",
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode, "roles are a closed set")
}

func TestQuestionEditDoesNotRescorePastResults(t *testing.T) {
	app, _ := newTestApp(t)

	teacherToken := register(t, app, "teacher1", models.RoleTeacher, "")
	classID := createClass(t, app, teacherToken, "Algebra")
	lessonID := createLesson(t, app, teacherToken, classID, "Linear equations")
	q1 := createQuestion(t, app, teacherToken, lessonID, "2+2?", "4")

	studentToken := register(t, app, "student1", models.RoleStudent, classID)
	resp := doJSON(t, app, "POST", "/api/student/lessons/"+lessonID+"/submit-answers", studentToken,
		map[string]interface{}{"answers": map[string]string{q1: "4"}})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	// Changing the correct answer afterwards must not touch the stored score.
	resp = doJSON(t, app, "PUT", fmt.Sprintf("/api/teacher/questions/%s/edit", q1), teacherToken,
		map[string]string{"correct_answer": "5"})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = doJSON(t, app, "GET", "/api/student/results", studentToken, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var results []map[string]interface{}
	decode(t, resp, &results)
	require.Len(t, results, 1)
	assert.EqualValues(t, 2, results[0]["score"])
}
