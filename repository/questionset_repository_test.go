// repository/questionset_repository_test.go
package repository

import (
	"database/sql"
	"regexp"
	"testing"
	"time"

	"answerly/model"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

var setColumnsList = []string{"id", "user_id", "title", "questions", "is_public", "slug", "created_at", "updated_at"}

func TestQuestionSetRepository_CreateSet(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewQuestionSetRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO question_sets`)).
		WithArgs(1, "Quiz", []byte(`[{"text":"2+2?","options":["3","4"],"answer":"4"}]`), true, "abc123def0").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(7, time.Now(), time.Now()))

	set := &model.QuestionSet{
		UserID:    1,
		Title:     "Quiz",
		Questions: []model.Question{{Text: "2+2?", Options: []string{"3", "4"}, Answer: "4"}},
		IsPublic:  true,
		Slug:      "abc123def0",
	}
	err = repo.CreateSet(set)

	assert.NoError(t, err)
	assert.Equal(t, 7, set.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestQuestionSetRepository_GetPublicSetBySlug(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewQuestionSetRepository(db)

	t.Run("public set resolves with decoded questions", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(`FROM question_sets WHERE slug = $1 AND is_public = true`)).
			WithArgs("abc123def0").
			WillReturnRows(sqlmock.NewRows(setColumnsList).
				AddRow(7, 1, "Quiz", []byte(`[{"text":"2+2?"}]`), true, "abc123def0", time.Now(), time.Now()))

		set, err := repo.GetPublicSetBySlug("abc123def0")

		assert.NoError(t, err)
		assert.Len(t, set.Questions, 1)
		assert.Equal(t, "2+2?", set.Questions[0].Text)
	})

	t.Run("private set stays invisible", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(`FROM question_sets WHERE slug = $1 AND is_public = true`)).
			WithArgs("hidden12ab").
			WillReturnError(sql.ErrNoRows)

		_, err := repo.GetPublicSetBySlug("hidden12ab")
		assert.ErrorIs(t, err, sql.ErrNoRows)
	})
}

func TestQuestionSetRepository_GetSetsByUserID(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewQuestionSetRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM question_sets WHERE user_id = $1 ORDER BY created_at DESC`)).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows(setColumnsList).
			AddRow(2, 1, "B", []byte(`[]`), false, "bbbbbbbbbb", time.Now(), time.Now()).
			AddRow(1, 1, "A", []byte(`[]`), true, "aaaaaaaaaa", time.Now(), time.Now()))

	sets, err := repo.GetSetsByUserID(1)

	assert.NoError(t, err)
	assert.Len(t, sets, 2)
	assert.Equal(t, "B", sets[0].Title)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAnswerRepository_CreateAnswer(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewAnswerRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO answers`)).
		WithArgs(7, nil, "Anonymous", []byte(`{"0":"4"}`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(3, time.Now()))

	answer := &model.Answer{SetID: 7, UserName: "Anonymous", Answer: []byte(`{"0":"4"}`)}
	err = repo.CreateAnswer(answer)

	assert.NoError(t, err)
	assert.Equal(t, 3, answer.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
