package model

// Supported submission languages. The judge is a simulation, so the set is a
// fixed allowlist rather than a database table of runtimes.
var SupportedLanguages = map[string]bool{
	"javascript": true,
	"python":     true,
	"java":       true,
	"cpp":        true,
}

func ValidLanguage(slug string) bool {
	return SupportedLanguages[slug]
}
