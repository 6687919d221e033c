// file: service/questionset_service.go

package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"answerly/logger"
	"answerly/model"
	"answerly/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var (
	ErrSetNotFound = errors.New("Set not found")
	ErrNotSetOwner = errors.New("Unauthorized. Not the set owner.")
)

// QuestionSetService handles authoring, sharing and answering of question
// sets, with a cache-aside strategy on per-user listings.
type QuestionSetService struct {
	setRepo    repository.IQuestionSetRepository
	answerRepo repository.IAnswerRepository
	cache      ICacheClient
}

func NewQuestionSetService(setRepo repository.IQuestionSetRepository, answerRepo repository.IAnswerRepository, cache ICacheClient) *QuestionSetService {
	return &QuestionSetService{
		setRepo:    setRepo,
		answerRepo: answerRepo,
		cache:      cache,
	}
}

// newSlug returns the short public handle for a set. The slug uniqueness
// index guards against the unlikely collision.
func newSlug() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:10]
}

func (s *QuestionSetService) cacheKey(userID int) string {
	return fmt.Sprintf("sets:%d", userID)
}

func (s *QuestionSetService) invalidate(userID int) {
	if s.cache != nil {
		s.cache.Del(context.Background(), s.cacheKey(userID))
	}
}

// CreateSet persists a new question set for the author and invalidates
// their cached listing.
func (s *QuestionSetService) CreateSet(userID int, req model.CreateSetRequest) (*model.QuestionSet, error) {
	set := &model.QuestionSet{
		UserID:    userID,
		Title:     req.Title,
		Questions: req.Questions,
		IsPublic:  req.IsPublic,
		Slug:      newSlug(),
	}

	if err := s.setRepo.CreateSet(set); err != nil {
		return nil, err
	}

	s.invalidate(userID)
	return set, nil
}

// ListSetsForUser returns the caller's sets, serving from cache when fresh.
func (s *QuestionSetService) ListSetsForUser(userID int) ([]*model.QuestionSet, error) {
	key := s.cacheKey(userID)
	ctx := context.Background()

	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, key).Result(); err == nil {
			var sets []*model.QuestionSet
			if err := json.Unmarshal([]byte(cached), &sets); err == nil {
				return sets, nil
			}
		}
	}

	sets, err := s.setRepo.GetSetsByUserID(userID)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if data, err := json.Marshal(sets); err == nil {
			s.cache.Set(ctx, key, data, 10*time.Minute)
		}
	}

	return sets, nil
}

// UpdateSet applies a partial update to a set the caller owns.
func (s *QuestionSetService) UpdateSet(userID, setID int, req model.UpdateSetRequest) (*model.QuestionSet, error) {
	set, err := s.setRepo.GetSetByID(setID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrSetNotFound
		}
		return nil, err
	}

	if set.UserID != userID {
		logger.Log.WithFields(logrus.Fields{
			"set_id":  setID,
			"user_id": userID,
			"owner":   set.UserID,
		}).Warn("Update denied: not the set owner")
		return nil, ErrNotSetOwner
	}

	if req.Title != nil {
		set.Title = *req.Title
	}
	if req.Questions != nil {
		set.Questions = req.Questions
	}
	if req.IsPublic != nil {
		set.IsPublic = *req.IsPublic
	}

	if err := s.setRepo.UpdateSet(set); err != nil {
		return nil, err
	}

	s.invalidate(userID)
	return set, nil
}

// DeleteSet removes a set the caller owns.
func (s *QuestionSetService) DeleteSet(userID, setID int) error {
	set, err := s.setRepo.GetSetByID(setID)
	if err != nil {
		if err == sql.ErrNoRows {
			return ErrSetNotFound
		}
		return err
	}

	if set.UserID != userID {
		return ErrNotSetOwner
	}

	if err := s.setRepo.DeleteSet(setID); err != nil {
		return err
	}

	s.invalidate(userID)
	logger.Log.WithFields(logrus.Fields{
		"set_id":  setID,
		"user_id": userID,
	}).Info("Question set deleted")
	return nil
}

// GetPublicSet resolves a share link for respondents.
func (s *QuestionSetService) GetPublicSet(slug string) (*model.QuestionSet, error) {
	set, err := s.setRepo.GetPublicSetBySlug(slug)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrSetNotFound
		}
		return nil, err
	}
	return set, nil
}

// SubmitAnswers records a submission against a public set. userID is nil for
// anonymous respondents.
func (s *QuestionSetService) SubmitAnswers(slug string, req model.SubmitAnswersRequest, userID *int) (*model.Answer, error) {
	set, err := s.setRepo.GetPublicSetBySlug(slug)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrSetNotFound
		}
		return nil, err
	}

	userName := req.UserName
	if userName == "" {
		userName = "Anonymous"
	}

	answer := &model.Answer{
		SetID:    set.ID,
		UserID:   userID,
		UserName: userName,
		Answer:   req.Answers,
	}

	if err := s.answerRepo.CreateAnswer(answer); err != nil {
		return nil, err
	}
	return answer, nil
}

// GetSetAnswers returns a set and its submissions, newest first.
func (s *QuestionSetService) GetSetAnswers(slug string) (*model.QuestionSet, []*model.Answer, error) {
	set, err := s.setRepo.GetSetBySlug(slug)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil, ErrSetNotFound
		}
		return nil, nil, err
	}

	answers, err := s.answerRepo.GetAnswersBySetID(set.ID)
	if err != nil {
		return nil, nil, err
	}
	return set, answers, nil
}

// AllSets retrieves every set on the platform. Admin dashboard totals only;
// not cached so the numbers stay fresh.
func (s *QuestionSetService) AllSets() ([]*model.QuestionSet, error) {
	return s.setRepo.GetAllSets()
}

// AllAnswers retrieves every answer on the platform. Admin use only.
func (s *QuestionSetService) AllAnswers() ([]*model.Answer, error) {
	return s.answerRepo.GetAllAnswers()
}
