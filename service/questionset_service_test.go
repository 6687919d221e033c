// service/questionset_service_test.go
package service

import (
	"database/sql"
	"encoding/json"
	"errors"
	"testing"

	"answerly/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type mockSetRepo struct{ mock.Mock }

func (m *mockSetRepo) CreateSet(set *model.QuestionSet) error {
	args := m.Called(set)
	return args.Error(0)
}
func (m *mockSetRepo) GetSetByID(id int) (*model.QuestionSet, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.QuestionSet), args.Error(1)
}
func (m *mockSetRepo) GetSetBySlug(slug string) (*model.QuestionSet, error) {
	args := m.Called(slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.QuestionSet), args.Error(1)
}
func (m *mockSetRepo) GetPublicSetBySlug(slug string) (*model.QuestionSet, error) {
	args := m.Called(slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.QuestionSet), args.Error(1)
}
func (m *mockSetRepo) GetSetsByUserID(userID int) ([]*model.QuestionSet, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.QuestionSet), args.Error(1)
}
func (m *mockSetRepo) GetAllSets() ([]*model.QuestionSet, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.QuestionSet), args.Error(1)
}
func (m *mockSetRepo) UpdateSet(set *model.QuestionSet) error {
	args := m.Called(set)
	return args.Error(0)
}
func (m *mockSetRepo) DeleteSet(id int) error {
	args := m.Called(id)
	return args.Error(0)
}

type mockAnswerRepo struct{ mock.Mock }

func (m *mockAnswerRepo) CreateAnswer(answer *model.Answer) error {
	args := m.Called(answer)
	return args.Error(0)
}
func (m *mockAnswerRepo) GetAnswersBySetID(setID int) ([]*model.Answer, error) {
	args := m.Called(setID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Answer), args.Error(1)
}
func (m *mockAnswerRepo) GetAllAnswers() ([]*model.Answer, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Answer), args.Error(1)
}

func TestQuestionSetService_CreateSet(t *testing.T) {
	mockRepo := new(mockSetRepo)
	svc := NewQuestionSetService(mockRepo, nil, nil)

	mockRepo.On("CreateSet", mock.MatchedBy(func(set *model.QuestionSet) bool {
		return set.UserID == 1 && set.Title == "Quiz" && len(set.Slug) == 10
	})).Return(nil).Once()

	set, err := svc.CreateSet(1, model.CreateSetRequest{
		Title:     "Quiz",
		Questions: []model.Question{{Text: "2+2?", Options: []string{"3", "4"}, Answer: "4"}},
		IsPublic:  true,
	})

	assert.NoError(t, err)
	assert.Len(t, set.Slug, 10)
	assert.True(t, set.IsPublic)
	mockRepo.AssertExpectations(t)
}

func TestQuestionSetService_SlugsAreUniquePerCall(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		slug := newSlug()
		assert.Len(t, slug, 10)
		assert.False(t, seen[slug], "slug %q generated twice", slug)
		seen[slug] = true
	}
}

func TestQuestionSetService_UpdateSet(t *testing.T) {
	owned := func() *model.QuestionSet {
		return &model.QuestionSet{ID: 5, UserID: 1, Title: "Old", IsPublic: false}
	}

	t.Run("owner applies a partial update", func(t *testing.T) {
		mockRepo := new(mockSetRepo)
		mockRepo.On("GetSetByID", 5).Return(owned(), nil).Once()
		mockRepo.On("UpdateSet", mock.MatchedBy(func(set *model.QuestionSet) bool {
			return set.Title == "New" && set.IsPublic == false
		})).Return(nil).Once()

		svc := NewQuestionSetService(mockRepo, nil, nil)
		title := "New"
		set, err := svc.UpdateSet(1, 5, model.UpdateSetRequest{Title: &title})

		assert.NoError(t, err)
		assert.Equal(t, "New", set.Title)
		mockRepo.AssertExpectations(t)
	})

	t.Run("non-owner is rejected", func(t *testing.T) {
		mockRepo := new(mockSetRepo)
		mockRepo.On("GetSetByID", 5).Return(owned(), nil).Once()

		svc := NewQuestionSetService(mockRepo, nil, nil)
		_, err := svc.UpdateSet(2, 5, model.UpdateSetRequest{})

		assert.ErrorIs(t, err, ErrNotSetOwner)
		mockRepo.AssertNotCalled(t, "UpdateSet")
	})

	t.Run("missing set", func(t *testing.T) {
		mockRepo := new(mockSetRepo)
		mockRepo.On("GetSetByID", 99).Return(nil, sql.ErrNoRows).Once()

		svc := NewQuestionSetService(mockRepo, nil, nil)
		_, err := svc.UpdateSet(1, 99, model.UpdateSetRequest{})

		assert.ErrorIs(t, err, ErrSetNotFound)
	})
}

func TestQuestionSetService_DeleteSet(t *testing.T) {
	t.Run("owner deletes", func(t *testing.T) {
		mockRepo := new(mockSetRepo)
		mockRepo.On("GetSetByID", 5).Return(&model.QuestionSet{ID: 5, UserID: 1}, nil).Once()
		mockRepo.On("DeleteSet", 5).Return(nil).Once()

		svc := NewQuestionSetService(mockRepo, nil, nil)
		assert.NoError(t, svc.DeleteSet(1, 5))
		mockRepo.AssertExpectations(t)
	})

	t.Run("non-owner is rejected", func(t *testing.T) {
		mockRepo := new(mockSetRepo)
		mockRepo.On("GetSetByID", 5).Return(&model.QuestionSet{ID: 5, UserID: 1}, nil).Once()

		svc := NewQuestionSetService(mockRepo, nil, nil)
		assert.ErrorIs(t, svc.DeleteSet(2, 5), ErrNotSetOwner)
		mockRepo.AssertNotCalled(t, "DeleteSet")
	})
}

func TestQuestionSetService_SubmitAnswers(t *testing.T) {
	publicSet := &model.QuestionSet{ID: 8, UserID: 1, Slug: "abc123def0", IsPublic: true}
	payload := json.RawMessage(`{"0":"4"}`)

	t.Run("anonymous submission defaults the name", func(t *testing.T) {
		mockRepo := new(mockSetRepo)
		mockAnswers := new(mockAnswerRepo)
		mockRepo.On("GetPublicSetBySlug", "abc123def0").Return(publicSet, nil).Once()
		mockAnswers.On("CreateAnswer", mock.MatchedBy(func(a *model.Answer) bool {
			return a.SetID == 8 && a.UserID == nil && a.UserName == "Anonymous"
		})).Return(nil).Once()

		svc := NewQuestionSetService(mockRepo, mockAnswers, nil)
		answer, err := svc.SubmitAnswers("abc123def0", model.SubmitAnswersRequest{Answers: payload}, nil)

		assert.NoError(t, err)
		assert.Equal(t, "Anonymous", answer.UserName)
		mockAnswers.AssertExpectations(t)
	})

	t.Run("named submission keeps the name", func(t *testing.T) {
		mockRepo := new(mockSetRepo)
		mockAnswers := new(mockAnswerRepo)
		mockRepo.On("GetPublicSetBySlug", "abc123def0").Return(publicSet, nil).Once()
		mockAnswers.On("CreateAnswer", mock.MatchedBy(func(a *model.Answer) bool {
			return a.UserName == "eve"
		})).Return(nil).Once()

		svc := NewQuestionSetService(mockRepo, mockAnswers, nil)
		_, err := svc.SubmitAnswers("abc123def0", model.SubmitAnswersRequest{Answers: payload, UserName: "eve"}, nil)

		assert.NoError(t, err)
	})

	t.Run("private or missing set", func(t *testing.T) {
		mockRepo := new(mockSetRepo)
		mockRepo.On("GetPublicSetBySlug", "nope").Return(nil, sql.ErrNoRows).Once()

		svc := NewQuestionSetService(mockRepo, new(mockAnswerRepo), nil)
		_, err := svc.SubmitAnswers("nope", model.SubmitAnswersRequest{Answers: payload}, nil)

		assert.ErrorIs(t, err, ErrSetNotFound)
	})
}

func TestQuestionSetService_GetSetAnswers(t *testing.T) {
	set := &model.QuestionSet{ID: 8, Slug: "abc123def0"}
	stored := []*model.Answer{{ID: 2, SetID: 8}, {ID: 1, SetID: 8}}

	mockRepo := new(mockSetRepo)
	mockAnswers := new(mockAnswerRepo)
	mockRepo.On("GetSetBySlug", "abc123def0").Return(set, nil).Once()
	mockAnswers.On("GetAnswersBySetID", 8).Return(stored, nil).Once()

	svc := NewQuestionSetService(mockRepo, mockAnswers, nil)
	gotSet, gotAnswers, err := svc.GetSetAnswers("abc123def0")

	assert.NoError(t, err)
	assert.Equal(t, set, gotSet)
	assert.Equal(t, stored, gotAnswers)
}

func TestQuestionSetService_ListSetsForUser_RepoError(t *testing.T) {
	mockRepo := new(mockSetRepo)
	dbErr := errors.New("db down")
	mockRepo.On("GetSetsByUserID", 1).Return(nil, dbErr).Once()

	svc := NewQuestionSetService(mockRepo, nil, nil)
	_, err := svc.ListSetsForUser(1)

	assert.ErrorIs(t, err, dbErr)
}
