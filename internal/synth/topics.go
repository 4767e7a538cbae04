package synth

// DefaultTopics is the fixed pool posts are generated about.
var DefaultTopics = []string{
	"industry insights", "professional growth", "innovation", "leadership",
	"technology trends", "workplace culture", "success stories", "team building",
	"market analysis", "future predictions", "personal development",
	"problem solving", "change management", "strategic thinking",
}

// DefaultExamplesPerAnalysis is how many topics are sampled, and therefore
// how many training examples are produced, per style analysis.
const DefaultExamplesPerAnalysis = 5
