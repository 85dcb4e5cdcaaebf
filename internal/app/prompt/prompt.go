// Package prompt builds the instructions sent to the generative-text service
// and owns the JSON response contracts. Builders are deterministic given
// identical inputs; the prior-titles list is read from the database by the
// caller, so end-to-end behavior is not idempotent across calls.
package prompt

import (
	"fmt"
	"strings"

	"prepforge/internal/domain/model"
)

const questionSystem = `You are a senior technical interviewer creating coding interview questions.

Rules:
- Generate exactly one original coding question for the given difficulty and category.
- The description must be self-contained: problem statement, input format, output format, constraints.
- Provide starter code for javascript, python, java and cpp. Each stub declares the function signature and nothing else.
- Provide 2-3 worked examples with input, output and a short explanation.
- Provide 5-8 test cases with input and expected output. Mark at least half of them hidden.
- Provide 2-3 progressive hints.
- Respond with JSON only, matching the requested schema exactly.
- Do not repeat any title from the "already generated" list.`

// BuildQuestionPrompt assembles the user message for catalog question
// generation. priorTitles are titles already generated for this user and
// difficulty; maxPrior caps the list.
func BuildQuestionPrompt(difficulty model.QuestionDifficulty, category string, priorTitles []string, maxPrior int) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Difficulty: %s\n", difficulty)
	if category != "" {
		fmt.Fprintf(&b, "Category: %s\n", category)
	} else {
		b.WriteString("Category: any common interview topic\n")
	}

	b.WriteString("\nAlready generated, do not repeat these titles:\n")
	b.WriteString(formatList(priorTitles, maxPrior))

	return b.String()
}

func QuestionSystem() string { return questionSystem }

const practiceSystem = `You are an interview coach generating a personal practice question.

Rules:
- Generate one coding question tailored to the given difficulty, role and experience level.
- The "prompt" field is the full problem statement in Markdown.
- The "solutionTemplate" field is a code skeleton in the requested language.
- Respond with JSON only, matching the requested schema exactly.
- Do not repeat any title from the "already generated" list.`

// BuildPracticePrompt assembles the user message for a per-user practice
// question.
func BuildPracticePrompt(difficulty model.QuestionDifficulty, topic, role, experience, language string, priorTitles []string, maxPrior int) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Difficulty: %s\n", difficulty)
	if topic != "" {
		fmt.Fprintf(&b, "Topic: %s\n", topic)
	}
	if role != "" {
		fmt.Fprintf(&b, "Target role: %s\n", role)
	}
	if experience != "" {
		fmt.Fprintf(&b, "Experience level: %s\n", experience)
	}
	if language == "" {
		language = "javascript"
	}
	fmt.Fprintf(&b, "Solution template language: %s\n", language)

	b.WriteString("\nAlready generated, do not repeat these titles:\n")
	b.WriteString(formatList(priorTitles, maxPrior))

	return b.String()
}

func PracticeSystem() string { return practiceSystem }

const feedbackSystem = `You are a code reviewer evaluating an interview submission.

Rules:
- Assess correctness, readability and algorithmic choices against the problem statement and the execution outcome.
- "score" is an integer from 0 to 100.
- Keep each note to a few sentences; suggestions are short imperative items.
- Respond with JSON only, matching the requested schema exactly.`

// BuildFeedbackPrompt embeds the problem, the submitted code and the judged
// outcome for a structured critique.
func BuildFeedbackPrompt(title, description string, difficulty model.QuestionDifficulty, code, language string, status model.SubmissionStatus, passed, total int) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Problem: %s (%s)\n\n%s\n\n", title, difficulty, description)
	fmt.Fprintf(&b, "Execution result: %s (%d of %d test cases passed)\n\n", status, passed, total)
	fmt.Fprintf(&b, "Submitted %s code:\n```%s\n%s\n```\n", language, language, code)

	return b.String()
}

func FeedbackSystem() string { return feedbackSystem }

const verdictSystem = `You are an interview coach reviewing a practice solution.

Rules:
- Decide whether the solution is correct for the given problem.
- "feedback" is a Markdown review: what works, what does not, how to improve.
- "isCorrect" is true only when the solution solves the problem as stated.
- Respond with JSON only, matching the requested schema exactly.`

// BuildVerdictPrompt asks for a Markdown review plus a correctness verdict for
// the practice flow.
func BuildVerdictPrompt(title, statement, code, language string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Problem: %s\n\n%s\n\n", title, statement)
	fmt.Fprintf(&b, "Candidate %s solution:\n```%s\n%s\n```\n", language, language, code)

	return b.String()
}

func VerdictSystem() string { return verdictSystem }

const quizSystem = `You are a quiz author writing multiple-choice questions for interview preparation.

Rules:
- Each item has exactly 4 options and exactly one correct answer.
- "correctAnswer" must be the verbatim text of one of the options.
- Distractors reflect common misconceptions, not random values.
- Respond with a JSON array only, matching the requested schema exactly.`

// BuildQuizPrompt assembles the user message for quiz generation.
func BuildQuizPrompt(topic string, difficulty model.QuestionDifficulty, count int) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Topic: %s\n", topic)
	if difficulty != "" {
		fmt.Fprintf(&b, "Difficulty: %s\n", difficulty)
	}
	fmt.Fprintf(&b, "Number of questions: %d\n", count)

	return b.String()
}

func QuizSystem() string { return quizSystem }

const resumeSystem = `You are a technical recruiter reviewing a resume.

Rules:
- Summarize the candidate in 2-3 sentences.
- List concrete strengths and weaknesses observed in the resume text.
- Suggestions are actionable edits the candidate can make.
- "score" is an integer from 0 to 100 rating overall resume quality.
- Respond with JSON only, matching the requested schema exactly.`

// BuildResumePrompt wraps extracted resume text for analysis.
func BuildResumePrompt(text, targetRole string) string {
	var b strings.Builder

	if targetRole != "" {
		fmt.Fprintf(&b, "Target role: %s\n\n", targetRole)
	}
	b.WriteString("Resume text:\n")
	b.WriteString(text)

	return b.String()
}

func ResumeSystem() string { return resumeSystem }

// formatList renders a numbered exclusion list, keeping only the most recent
// max entries. Returns "None" when empty.
func formatList(items []string, max int) string {
	if len(items) == 0 {
		return "None"
	}
	if max > 0 && len(items) > max {
		items = items[len(items)-max:]
	}

	var b strings.Builder
	for i, item := range items {
		fmt.Fprintf(&b, "%d. %s\n", i+1, item)
	}
	return strings.TrimRight(b.String(), "\n")
}
