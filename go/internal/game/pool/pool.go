// Package pool holds the static trivia question catalog and resolves a
// game's topic selection into the set of questions eligible for it.
package pool

import (
	"github.com/codingfighters/trivia/go/internal/models"
)

// Known topic labels.
const (
	TopicJava   = "Java"
	TopicRust   = "Rust"
	TopicKotlin = "Kotlin"
)

// topicOrder fixes the order in which per-topic sets are concatenated so
// Resolve is deterministic for a given selection.
var topicOrder = []string{TopicJava, TopicRust, TopicKotlin}

// Resolve returns the union of the catalog sets for every selected topic.
// Unknown topics contribute nothing; duplicate selections count once.
// An empty result means the game cannot start.
func Resolve(topics []string) []models.Question {
	selected := make(map[string]bool, len(topics))
	for _, topic := range topics {
		selected[topic] = true
	}

	var questions []models.Question
	for _, topic := range topicOrder {
		if selected[topic] {
			questions = append(questions, catalog[topic]...)
		}
	}
	return questions
}

// Topics lists all topic labels with at least one catalog question.
func Topics() []string {
	topics := make([]string, len(topicOrder))
	copy(topics, topicOrder)
	return topics
}
