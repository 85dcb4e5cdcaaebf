package model

// LeaderboardEntry is derived on every read, never stored.
type LeaderboardEntry struct {
	Rank       int     `json:"rank"`
	UserID     string  `json:"user_id"`
	Name       string  `json:"name"`
	PhotoURL   *string `json:"photo_url,omitempty"`
	TotalScore int     `json:"total_score"`
}

// SolvedTally is one user's solved-question count for a single difficulty,
// as aggregated by the question repository.
type SolvedTally struct {
	UserID     string
	Difficulty QuestionDifficulty
	Count      int
}
