package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"prepforge/internal/common"
	"prepforge/internal/domain/model"
)

type SubmissionRepository interface {
	// Create persists one append-only record. Submissions are never updated.
	Create(ctx context.Context, sub *model.Submission) error
	FindByID(ctx context.Context, id string) (*model.Submission, error)
	// ListByUser returns the user's history newest-first with question
	// metadata joined in, plus the total count for pagination.
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]model.Submission, int, error)
	CountByUser(ctx context.Context, userID string) (int, error)
}

type pgSubmissionRepository struct {
	db *sql.DB
}

func NewPgSubmissionRepository(db *sql.DB) SubmissionRepository {
	return &pgSubmissionRepository{db: db}
}

func (r *pgSubmissionRepository) Create(ctx context.Context, sub *model.Submission) error {
	feedback, err := json.Marshal(sub.Feedback)
	if err != nil {
		return fmt.Errorf("pgSubmissionRepository.Create marshal feedback: %w", err)
	}

	query := `INSERT INTO submissions (id, user_id, question_id, code, language, status,
	            execution_time_ms, memory_kb, test_cases_passed, total_test_cases, feedback)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err = r.db.ExecContext(ctx, query,
		sub.ID, sub.UserID, sub.QuestionID, sub.Code, sub.Language, sub.Status,
		sub.ExecutionTimeMs, sub.MemoryKb, sub.TestCasesPassed, sub.TotalTestCases, feedback)
	if err != nil {
		return fmt.Errorf("pgSubmissionRepository.Create: %w", err)
	}
	return nil
}

const submissionSelect = `
	SELECT s.id, s.user_id, s.question_id, s.code, s.language, s.status,
	       s.execution_time_ms, s.memory_kb, s.test_cases_passed, s.total_test_cases,
	       s.feedback, s.submitted_at,
	       COALESCE(q.title, 'Deleted Question'), q.difficulty, q.category
	FROM submissions s
	LEFT JOIN questions q ON s.question_id = q.id`

func (r *pgSubmissionRepository) FindByID(ctx context.Context, id string) (*model.Submission, error) {
	sub, err := scanSubmission(r.db.QueryRowContext(ctx, submissionSelect+` WHERE s.id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgSubmissionRepository.FindByID: %w", err)
	}
	return sub, nil
}

func (r *pgSubmissionRepository) ListByUser(ctx context.Context, userID string, limit, offset int) ([]model.Submission, int, error) {
	total, err := r.CountByUser(ctx, userID)
	if err != nil {
		return nil, 0, err
	}

	query := submissionSelect + ` WHERE s.user_id = $1 ORDER BY s.submitted_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.db.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("pgSubmissionRepository.ListByUser: %w", err)
	}
	defer rows.Close()

	submissions := []model.Submission{}
	for rows.Next() {
		sub, err := scanSubmission(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("pgSubmissionRepository.ListByUser scan: %w", err)
		}
		submissions = append(submissions, *sub)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("pgSubmissionRepository.ListByUser rows.Err: %w", err)
	}

	return submissions, total, nil
}

func (r *pgSubmissionRepository) CountByUser(ctx context.Context, userID string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM submissions WHERE user_id = $1`, userID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("pgSubmissionRepository.CountByUser: %w", err)
	}
	return count, nil
}

func scanSubmission(row rowScanner) (*model.Submission, error) {
	sub := &model.Submission{}
	var feedback []byte

	err := row.Scan(
		&sub.ID, &sub.UserID, &sub.QuestionID, &sub.Code, &sub.Language, &sub.Status,
		&sub.ExecutionTimeMs, &sub.MemoryKb, &sub.TestCasesPassed, &sub.TotalTestCases,
		&feedback, &sub.SubmittedAt,
		&sub.QuestionTitle, &sub.QuestionDifficulty, &sub.QuestionCategory,
	)
	if err != nil {
		return nil, err
	}

	if len(feedback) > 0 && string(feedback) != "null" {
		sub.Feedback = &model.Feedback{}
		if err := json.Unmarshal(feedback, sub.Feedback); err != nil {
			return nil, fmt.Errorf("decode submission feedback: %w", err)
		}
	}
	return sub, nil
}
