package handlers

import (
	"strings"

	"github.com/Spok95/university-assistant-bot/internal/identity"
)

type Intent int

const (
	IntentAssistant Intent = iota
	IntentMoodle
	IntentSchedule
)

func (i Intent) String() string {
	switch i {
	case IntentMoodle:
		return "moodle"
	case IntentSchedule:
		return "schedule"
	default:
		return "assistant"
	}
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}

// Classify: сначала Moodle (ключевые слова или ИИН в тексте), затем расписание,
// остальное: ассистенту.
func Classify(text string) Intent {
	lower := strings.ToLower(text)
	if containsAny(lower, moodleWords) {
		return IntentMoodle
	}
	if iin, _ := MoodleQuery(text); identity.ValidNationalID(iin) {
		return IntentMoodle
	}
	if containsAny(lower, scheduleWords) {
		return IntentSchedule
	}
	return IntentAssistant
}
