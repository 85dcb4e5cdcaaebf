package model

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestPointsFor(t *testing.T) {
	cases := []struct {
		difficulty QuestionDifficulty
		want       int
	}{
		{DifficultyEasy, 10},
		{DifficultyMedium, 25},
		{DifficultyHard, 50},
		{"Unknown", 0},
	}
	for _, tc := range cases {
		if got := PointsFor(tc.difficulty); got != tc.want {
			t.Errorf("PointsFor(%q) = %d, want %d", tc.difficulty, got, tc.want)
		}
	}
}

func TestValidDifficulty(t *testing.T) {
	for _, d := range []QuestionDifficulty{DifficultyEasy, DifficultyMedium, DifficultyHard} {
		if !ValidDifficulty(d) {
			t.Errorf("expected %q to be valid", d)
		}
	}
	if ValidDifficulty("easy") {
		t.Error("difficulty is case sensitive")
	}
	if ValidDifficulty("") {
		t.Error("empty difficulty must be invalid")
	}
}

func TestValidLanguage(t *testing.T) {
	for _, lang := range []string{"javascript", "python", "java", "cpp"} {
		if !ValidLanguage(lang) {
			t.Errorf("expected %q to be supported", lang)
		}
	}
	if ValidLanguage("ruby") {
		t.Error("ruby is not a supported language")
	}
}

func TestQuestionJSONOmitsTestCases(t *testing.T) {
	q := Question{
		ID:    "q1",
		Title: "Two Sum",
		TestCases: []TestCase{
			{Input: "secret input", ExpectedOutput: "secret output", Hidden: true},
		},
	}
	encoded, err := json.Marshal(q)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if strings.Contains(string(encoded), "secret") {
		t.Errorf("test cases leaked into JSON: %s", encoded)
	}
}
