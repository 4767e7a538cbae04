package synth

import "fmt"

// synthesisTemperature allows some creativity while maintaining style consistency.
const synthesisTemperature = 0.7

// personaPrompt is the system message of every assembled training example.
const personaPrompt = "You are an assistant that writes social media posts matching the speaker's authentic voice and style."

// synthesisPromptFormat instructs the model to write a post in the analyzed voice.
const synthesisPromptFormat = `Based on the speaker's analyzed style, generate an authentic social media post about %s.
Maintain their unique voice characteristics, vocabulary preferences, and structural patterns.`

// synthesisPrompt renders the system prompt for one topic.
func synthesisPrompt(topic string) string {
	return fmt.Sprintf(synthesisPromptFormat, topic)
}

// TopicRequest renders the user message of a training example.
func TopicRequest(topic string) string {
	return "Write a social media post about " + topic
}
