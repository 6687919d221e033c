package repository

import (
	"database/sql"
	"encoding/json"

	"answerly/logger"
	"answerly/model"

	"github.com/sirupsen/logrus"
)

// IQuestionSetRepository defines the contract for question set database operations.
type IQuestionSetRepository interface {
	CreateSet(set *model.QuestionSet) error
	GetSetByID(id int) (*model.QuestionSet, error)
	GetSetBySlug(slug string) (*model.QuestionSet, error)
	GetPublicSetBySlug(slug string) (*model.QuestionSet, error)
	GetSetsByUserID(userID int) ([]*model.QuestionSet, error)
	GetAllSets() ([]*model.QuestionSet, error)
	UpdateSet(set *model.QuestionSet) error
	DeleteSet(id int) error
}

type QuestionSetRepository struct {
	DB *sql.DB
}

func NewQuestionSetRepository(db *sql.DB) *QuestionSetRepository {
	return &QuestionSetRepository{DB: db}
}

const setColumns = `id, user_id, title, questions, is_public, slug, created_at, updated_at`

func scanSet(row *sql.Row) (*model.QuestionSet, error) {
	set := &model.QuestionSet{}
	var questions []byte
	err := row.Scan(&set.ID, &set.UserID, &set.Title, &questions, &set.IsPublic, &set.Slug, &set.CreatedAt, &set.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(questions, &set.Questions); err != nil {
		return nil, err
	}
	return set, nil
}

func (r *QuestionSetRepository) CreateSet(set *model.QuestionSet) error {
	log := logger.Log.WithFields(logrus.Fields{
		"user_id": set.UserID,
		"slug":    set.Slug,
	})
	log.Info("Executing query to create a new question set")

	questions, err := json.Marshal(set.Questions)
	if err != nil {
		return err
	}

	query := `INSERT INTO question_sets (user_id, title, questions, is_public, slug)
	          VALUES ($1, $2, $3, $4, $5) RETURNING id, created_at, updated_at`
	err = r.DB.QueryRow(query, set.UserID, set.Title, questions, set.IsPublic, set.Slug).
		Scan(&set.ID, &set.CreatedAt, &set.UpdatedAt)
	if err != nil {
		log.WithError(err).Error("Failed to execute create question set query")
		return err
	}
	return nil
}

func (r *QuestionSetRepository) GetSetByID(id int) (*model.QuestionSet, error) {
	query := `SELECT ` + setColumns + ` FROM question_sets WHERE id = $1`
	return scanSet(r.DB.QueryRow(query, id))
}

func (r *QuestionSetRepository) GetSetBySlug(slug string) (*model.QuestionSet, error) {
	query := `SELECT ` + setColumns + ` FROM question_sets WHERE slug = $1`
	return scanSet(r.DB.QueryRow(query, slug))
}

// GetPublicSetBySlug resolves a slug for respondents; private sets stay
// invisible through this path.
func (r *QuestionSetRepository) GetPublicSetBySlug(slug string) (*model.QuestionSet, error) {
	query := `SELECT ` + setColumns + ` FROM question_sets WHERE slug = $1 AND is_public = true`
	return scanSet(r.DB.QueryRow(query, slug))
}

func (r *QuestionSetRepository) GetSetsByUserID(userID int) ([]*model.QuestionSet, error) {
	log := logger.Log.WithField("user_id", userID)
	log.Info("Executing query to get question sets by user ID")

	query := `SELECT ` + setColumns + ` FROM question_sets WHERE user_id = $1 ORDER BY created_at DESC`
	return r.querySets(query, userID)
}

// GetAllSets retrieves every question set. For admin use only.
func (r *QuestionSetRepository) GetAllSets() ([]*model.QuestionSet, error) {
	query := `SELECT ` + setColumns + ` FROM question_sets ORDER BY created_at DESC`
	return r.querySets(query)
}

func (r *QuestionSetRepository) querySets(query string, args ...interface{}) ([]*model.QuestionSet, error) {
	rows, err := r.DB.Query(query, args...)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to execute question set query")
		return nil, err
	}
	defer rows.Close()

	var sets []*model.QuestionSet
	for rows.Next() {
		set := &model.QuestionSet{}
		var questions []byte
		if err := rows.Scan(&set.ID, &set.UserID, &set.Title, &questions, &set.IsPublic, &set.Slug, &set.CreatedAt, &set.UpdatedAt); err != nil {
			logger.Log.WithError(err).Error("Failed to scan question set row")
			return nil, err
		}
		if err := json.Unmarshal(questions, &set.Questions); err != nil {
			return nil, err
		}
		sets = append(sets, set)
	}
	return sets, rows.Err()
}

func (r *QuestionSetRepository) UpdateSet(set *model.QuestionSet) error {
	log := logger.Log.WithField("set_id", set.ID)
	log.Info("Executing query to update question set")

	questions, err := json.Marshal(set.Questions)
	if err != nil {
		return err
	}

	query := `UPDATE question_sets SET title = $1, questions = $2, is_public = $3, updated_at = now()
	          WHERE id = $4 RETURNING updated_at`
	err = r.DB.QueryRow(query, set.Title, questions, set.IsPublic, set.ID).Scan(&set.UpdatedAt)
	if err != nil {
		log.WithError(err).Error("Failed to execute update question set query")
		return err
	}
	return nil
}

func (r *QuestionSetRepository) DeleteSet(id int) error {
	log := logger.Log.WithField("set_id", id)
	log.Info("Executing query to delete question set")

	_, err := r.DB.Exec(`DELETE FROM question_sets WHERE id = $1`, id)
	if err != nil {
		log.WithError(err).Error("Failed to execute delete question set query")
		return err
	}
	return nil
}
