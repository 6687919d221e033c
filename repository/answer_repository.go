package repository

import (
	"database/sql"

	"answerly/logger"
	"answerly/model"

	"github.com/sirupsen/logrus"
)

// IAnswerRepository defines the contract for answer database operations.
type IAnswerRepository interface {
	CreateAnswer(answer *model.Answer) error
	GetAnswersBySetID(setID int) ([]*model.Answer, error)
	GetAllAnswers() ([]*model.Answer, error)
}

type AnswerRepository struct {
	DB *sql.DB
}

func NewAnswerRepository(db *sql.DB) *AnswerRepository {
	return &AnswerRepository{DB: db}
}

func (r *AnswerRepository) CreateAnswer(answer *model.Answer) error {
	log := logger.Log.WithFields(logrus.Fields{
		"set_id":    answer.SetID,
		"user_name": answer.UserName,
	})
	log.Info("Executing query to create a new answer")

	query := `INSERT INTO answers (set_id, user_id, user_name, answer)
	          VALUES ($1, $2, $3, $4) RETURNING id, created_at`
	err := r.DB.QueryRow(query, answer.SetID, answer.UserID, answer.UserName, []byte(answer.Answer)).
		Scan(&answer.ID, &answer.CreatedAt)
	if err != nil {
		log.WithError(err).Error("Failed to execute create answer query")
		return err
	}
	return nil
}

// GetAnswersBySetID retrieves all submissions for a set, newest first.
func (r *AnswerRepository) GetAnswersBySetID(setID int) ([]*model.Answer, error) {
	query := `SELECT id, set_id, user_id, user_name, answer, created_at FROM answers
	          WHERE set_id = $1 ORDER BY created_at DESC`
	return r.queryAnswers(query, setID)
}

// GetAllAnswers retrieves every answer. For admin use only.
func (r *AnswerRepository) GetAllAnswers() ([]*model.Answer, error) {
	query := `SELECT id, set_id, user_id, user_name, answer, created_at FROM answers ORDER BY created_at DESC`
	return r.queryAnswers(query)
}

func (r *AnswerRepository) queryAnswers(query string, args ...interface{}) ([]*model.Answer, error) {
	rows, err := r.DB.Query(query, args...)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to execute answer query")
		return nil, err
	}
	defer rows.Close()

	var answers []*model.Answer
	for rows.Next() {
		answer := &model.Answer{}
		var payload []byte
		if err := rows.Scan(&answer.ID, &answer.SetID, &answer.UserID, &answer.UserName, &payload, &answer.CreatedAt); err != nil {
			logger.Log.WithError(err).Error("Failed to scan answer row")
			return nil, err
		}
		answer.Answer = payload
		answers = append(answers, answer)
	}
	return answers, rows.Err()
}
