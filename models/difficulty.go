package models

// Difficulty is a project's difficulty level, 1 (beginner) to 5 (expert)
type Difficulty int

const (
	DifficultyBeginner Difficulty = iota + 1
	DifficultyEasy
	DifficultyIntermediate
	DifficultyAdvanced
	DifficultyExpert
)

var difficultyLabels = map[Difficulty]string{
	DifficultyBeginner:     "Beginner",
	DifficultyEasy:         "Easy",
	DifficultyIntermediate: "Intermediate",
	DifficultyAdvanced:     "Advanced",
	DifficultyExpert:       "Expert",
}

var difficultyColors = map[Difficulty]string{
	DifficultyBeginner:     "green",
	DifficultyEasy:         "lime",
	DifficultyIntermediate: "yellow",
	DifficultyAdvanced:     "orange",
	DifficultyExpert:       "red",
}

// Known reports whether d maps to a label
func (d Difficulty) Known() bool {
	_, ok := difficultyLabels[d]
	return ok
}

// Label returns the display label, or "Unknown" for out-of-range levels
func (d Difficulty) Label() string {
	if label, ok := difficultyLabels[d]; ok {
		return label
	}
	return "Unknown"
}

// Color returns the theme color token, or "gray" for out-of-range levels
func (d Difficulty) Color() string {
	if color, ok := difficultyColors[d]; ok {
		return color
	}
	return "gray"
}
