package telemetry

// MaxLevel is the level at which the top grade is awarded.
const MaxLevel = 2000

// scorePerLevel converts score to levels.
const scorePerLevel = 7

var grades = [...]string{
	"Bronze 1", "Bronze 2", "Bronze 3",
	"Silver 1", "Silver 2", "Silver 3",
	"Gold 1", "Gold 2", "Gold 3",
	"Diamond 1", "Diamond 2", "Diamond 3",
	"Elite 1", "Elite 2", "Elite 3",
	"Immortal 1", "Immortal 2", "Immortal 3",
	"Champion 1", "Champion 2", "Champion 3",
	"Legend 1", "Legend 2", "Legend 3",
	"Ranked",
}

// Level converts a score into a level.
func Level(score int) int {
	if score < 0 {
		return 0
	}
	return score / scorePerLevel
}

// Grade returns the rank name for a level. The ladder below MaxLevel is split
// evenly across every grade but the last.
func Grade(level int) string {
	if level >= MaxLevel {
		return grades[len(grades)-1]
	}
	if level < 0 {
		level = 0
	}
	idx := level * (len(grades) - 1) / MaxLevel
	return grades[idx]
}
