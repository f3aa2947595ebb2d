package rag

import (
	"fmt"
	"sort"
	"strings"

	"github.com/bububa/waypoint/components/vectordb"
)

// Prompt names accepted by NewContextGenerator
const (
	PromptStuff     = "stuff"
	PromptAssistant = "assistant"
)

// NewContextGenerator returns the context generator registered under name.
func NewContextGenerator(name string) (ContextGenerator, error) {
	switch name {
	case "", PromptStuff:
		return StuffContextGenerator, nil
	case PromptAssistant:
		return AssistantContextGenerator, nil
	}
	return nil, fmt.Errorf("unknown prompt: %s", name)
}

// StuffContextGenerator lists the retrieved chunks with their metadata and
// asks the model to answer from them only.
func StuffContextGenerator(question string, results []vectordb.Result) string {
	sb := new(strings.Builder)
	sb.WriteString("Use the following pieces of context to answer the question at the end. ")
	sb.WriteString("If you don't know the answer, just say that you don't know, don't try to make up an answer.\n\n")
	for i, res := range results {
		fmt.Fprintf(sb, "%d. %s\n", i+1, res.Content)
		keys := make([]string, 0, len(res.Meta))
		for k := range res.Meta {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(sb, "  - %s: %s\n", k, res.Meta[k])
		}
	}
	fmt.Fprintf(sb, "\nQuestion: %s\nHelpful Answer:", question)
	return sb.String()
}

const assistantInstructions = "You are a helpful and informative assistant. Your primary goal is to answer the user's question accurately. " +
	"First, critically evaluate the provided context. " +
	"If the context directly answers the question, respond clearly and concisely *without* mentioning that you used external information. " +
	"If the question is a common greeting or conversational query (e.g., 'hello', 'how are you?'), respond appropriately and politely. " +
	"If the context is not relevant to the question, or if it's a general knowledge question, use your own comprehensive knowledge to formulate an answer. " +
	"Only if you cannot find a suitable answer from the context or your own knowledge, politely inform the user that you are unable to answer the question at this time."

// AssistantContextGenerator is the chat assistant prompt of the web server.
// The model may fall back to its own knowledge when the chunks do not help.
func AssistantContextGenerator(question string, results []vectordb.Result) string {
	contents := make([]string, 0, len(results))
	for _, res := range results {
		contents = append(contents, res.Content)
	}
	return fmt.Sprintf("%s Context:\n\n%s\n\nQuestion: %s", assistantInstructions, strings.Join(contents, "\n\n"), question)
}
