package scheduler

import "math/rand"

var motivationalLines = []string{
	"🔥 You're improving — keep going!",
	"🌟 Small steps create big changes!",
	"💪 You're closer than you think!",
	"🚀 Believe in yourself — your journey matters!",
	"✨ One task at a time. You're doing great!",
	"🌱 Growth happens slowly, but surely.",
	"🏆 You are unstoppable — keep moving forward!",
}

// RandomMotivation picks one line uniformly from the fixed set.
func RandomMotivation() string {
	return motivationalLines[rand.Intn(len(motivationalLines))]
}
