package responder

// cannedFallbacks holds a deterministic in-character reply per persona, used
// when that persona's generation call fails. Personas without an entry get
// genericFallback.
var cannedFallbacks = map[string]string{
	"logic_master":         "Let me restate that premise before I respond; I will return with a proper argument.",
	"storyteller":          "I have a story that fits this perfectly, give me a moment to find the right words.",
	"critic":               "I have objections to this, but I'll hold them until I can phrase them sharply enough.",
	"optimist":             "There's a bright side here, I just need a little longer to point it out!",
	"troll":                "Oh, I had the perfect comeback and then lost it. Classic. Hold that thought.",
	"angry_person":         "I can't even put into words how much I have to say about this right now.",
	"diplomat":             "I'd like to hear everyone out before weighing in properly.",
	"redditor":             "hot take loading... brb",
	"expert_in_everything": "I know exactly what's going on here; a full explanation is forthcoming.",
	"phd_student":          "I need to check my sources before I commit to a claim on this.",
	"unemployed_student":   "honestly so much to say about this but my brain just blanked, one sec",
}

const genericFallback = "I wanted to weigh in here but couldn't get my thoughts together in time."

// fallbackText returns the canned reply for a persona id.
func fallbackText(personaID string) string {
	if text, ok := cannedFallbacks[personaID]; ok {
		return text
	}
	return genericFallback
}
