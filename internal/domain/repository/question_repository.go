package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"prepforge/internal/common"
	"prepforge/internal/domain/model"

	"github.com/jackc/pgx/v5/pgconn"
)

// QuestionFilter narrows List. Zero values mean "no filter".
type QuestionFilter struct {
	Scope      model.QuestionScope
	UserID     *string
	Difficulty model.QuestionDifficulty
	Category   string
	Limit      int
	Offset     int
}

type QuestionRepository interface {
	Create(ctx context.Context, q *model.Question) error
	FindByID(ctx context.Context, id string) (*model.Question, error)
	List(ctx context.Context, filter QuestionFilter) ([]model.Question, int, error)
	// MarkSolved transitions Generated -> Solved. Already-Solved is a no-op;
	// an absent id is ErrNotFound.
	MarkSolved(ctx context.Context, id string) error
	// TitlesByDifficulty lists prior titles for anti-duplication. userID nil
	// matches catalog questions, otherwise that user's practice questions.
	TitlesByDifficulty(ctx context.Context, scope model.QuestionScope, userID *string, difficulty model.QuestionDifficulty) ([]string, error)
	// SolvedTallies aggregates solved-question counts per user and difficulty
	// for the leaderboard read path.
	SolvedTallies(ctx context.Context) ([]model.SolvedTally, error)
}

type pgQuestionRepository struct {
	db *sql.DB
}

func NewPgQuestionRepository(db *sql.DB) QuestionRepository {
	return &pgQuestionRepository{db: db}
}

const questionColumns = `id, scope, user_id, title, slug, description, difficulty, category,
       tags, starter_code, examples, test_cases, hints, status, created_at, updated_at`

func (r *pgQuestionRepository) Create(ctx context.Context, q *model.Question) error {
	tags, starterCode, examples, testCases, hints, err := marshalQuestionDocs(q)
	if err != nil {
		return fmt.Errorf("pgQuestionRepository.Create: %w", err)
	}

	query := `INSERT INTO questions (id, scope, user_id, title, slug, description, difficulty, category,
	            tags, starter_code, examples, test_cases, hints, status)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err = r.db.ExecContext(ctx, query,
		q.ID, q.Scope, q.UserID, q.Title, q.Slug, q.Description, q.Difficulty, q.Category,
		tags, starterCode, examples, testCases, hints, q.Status)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique slug
			return fmt.Errorf("question with this slug already exists: %w", common.ErrConflict)
		}
		return fmt.Errorf("pgQuestionRepository.Create: %w", err)
	}
	return nil
}

func (r *pgQuestionRepository) FindByID(ctx context.Context, id string) (*model.Question, error) {
	query := `SELECT ` + questionColumns + ` FROM questions WHERE id = $1`
	q, err := scanQuestion(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgQuestionRepository.FindByID: %w", err)
	}
	return q, nil
}

func (r *pgQuestionRepository) List(ctx context.Context, filter QuestionFilter) ([]model.Question, int, error) {
	var conditions []string
	var args []interface{}
	argID := 1

	addCond := func(cond string, arg interface{}) {
		conditions = append(conditions, fmt.Sprintf(cond, argID))
		args = append(args, arg)
		argID++
	}

	if filter.Scope != "" {
		addCond("scope = $%d", filter.Scope)
	}
	if filter.UserID != nil {
		addCond("user_id = $%d", *filter.UserID)
	}
	if filter.Difficulty != "" {
		addCond("difficulty = $%d", filter.Difficulty)
	}
	if filter.Category != "" {
		addCond("category ILIKE $%d", filter.Category)
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	var total int
	countQuery := `SELECT COUNT(*) FROM questions` + whereClause
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("pgQuestionRepository.List count: %w", err)
	}

	query := `SELECT ` + questionColumns + ` FROM questions` + whereClause +
		fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", argID, argID+1)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("pgQuestionRepository.List query: %w", err)
	}
	defer rows.Close()

	questions := []model.Question{}
	for rows.Next() {
		q, err := scanQuestion(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("pgQuestionRepository.List scan: %w", err)
		}
		questions = append(questions, *q)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("pgQuestionRepository.List rows.Err: %w", err)
	}

	return questions, total, nil
}

func (r *pgQuestionRepository) MarkSolved(ctx context.Context, id string) error {
	query := `UPDATE questions SET status = $1, updated_at = CURRENT_TIMESTAMP
	          WHERE id = $2 AND status <> $1`
	res, err := r.db.ExecContext(ctx, query, model.StatusSolved, id)
	if err != nil {
		return fmt.Errorf("pgQuestionRepository.MarkSolved: %w", err)
	}
	if n, _ := res.RowsAffected(); n > 0 {
		return nil
	}

	// Zero rows: either already Solved (no-op) or the id does not exist.
	var exists bool
	err = r.db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM questions WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return fmt.Errorf("pgQuestionRepository.MarkSolved exists: %w", err)
	}
	if !exists {
		return common.ErrNotFound
	}
	return nil
}

func (r *pgQuestionRepository) TitlesByDifficulty(ctx context.Context, scope model.QuestionScope, userID *string, difficulty model.QuestionDifficulty) ([]string, error) {
	query := `SELECT title FROM questions WHERE scope = $1 AND difficulty = $2`
	args := []interface{}{scope, difficulty}
	if userID != nil {
		query += ` AND user_id = $3`
		args = append(args, *userID)
	}
	query += ` ORDER BY created_at ASC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("pgQuestionRepository.TitlesByDifficulty: %w", err)
	}
	defer rows.Close()

	var titles []string
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			return nil, fmt.Errorf("pgQuestionRepository.TitlesByDifficulty scan: %w", err)
		}
		titles = append(titles, t)
	}
	return titles, rows.Err()
}

func (r *pgQuestionRepository) SolvedTallies(ctx context.Context) ([]model.SolvedTally, error) {
	query := `SELECT user_id, difficulty, COUNT(*)
	          FROM questions
	          WHERE status = $1 AND user_id IS NOT NULL
	          GROUP BY user_id, difficulty`
	rows, err := r.db.QueryContext(ctx, query, model.StatusSolved)
	if err != nil {
		return nil, fmt.Errorf("pgQuestionRepository.SolvedTallies: %w", err)
	}
	defer rows.Close()

	var tallies []model.SolvedTally
	for rows.Next() {
		var t model.SolvedTally
		if err := rows.Scan(&t.UserID, &t.Difficulty, &t.Count); err != nil {
			return nil, fmt.Errorf("pgQuestionRepository.SolvedTallies scan: %w", err)
		}
		tallies = append(tallies, t)
	}
	return tallies, rows.Err()
}

// rowScanner covers *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanQuestion(row rowScanner) (*model.Question, error) {
	q := &model.Question{}
	var tags, starterCode, examples, testCases, hints []byte

	err := row.Scan(
		&q.ID, &q.Scope, &q.UserID, &q.Title, &q.Slug, &q.Description, &q.Difficulty, &q.Category,
		&tags, &starterCode, &examples, &testCases, &hints, &q.Status, &q.CreatedAt, &q.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	for _, pair := range []struct {
		raw []byte
		dst any
	}{
		{tags, &q.Tags},
		{starterCode, &q.StarterCode},
		{examples, &q.Examples},
		{testCases, &q.TestCases},
		{hints, &q.Hints},
	} {
		if len(pair.raw) == 0 {
			continue
		}
		if err := json.Unmarshal(pair.raw, pair.dst); err != nil {
			return nil, fmt.Errorf("decode question document field: %w", err)
		}
	}
	return q, nil
}

func marshalQuestionDocs(q *model.Question) (tags, starterCode, examples, testCases, hints []byte, err error) {
	if tags, err = json.Marshal(q.Tags); err != nil {
		return
	}
	if starterCode, err = json.Marshal(q.StarterCode); err != nil {
		return
	}
	if examples, err = json.Marshal(q.Examples); err != nil {
		return
	}
	if testCases, err = json.Marshal(q.TestCases); err != nil {
		return
	}
	hints, err = json.Marshal(q.Hints)
	return
}
