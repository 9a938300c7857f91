// Package docs embeds the user documentation, one markdown file per topic.
package docs

import (
	"embed"
	"fmt"
	"io/fs"
	"strings"
)

//go:embed *.md
var docs embed.FS

// index is the topic listing the others.
const index = "readme"

// GetTopic returns the content of a documentation topic. The topic "*" is
// every topic but the readme.
func GetTopic(topic string) (string, error) {
	if topic != "*" {
		content, err := docs.ReadFile(topic + ".md")
		if err != nil {
			return "", fmt.Errorf("topic %q not found: %w", topic, err)
		}
		return string(content), nil
	}
	all, err := GetAllTopics()
	if err != nil {
		return "", err
	}
	return GetTopics(all...)
}

// GetTopics returns the content of several topics, one after the other.
func GetTopics(topics ...string) (string, error) {
	pages := make([]string, 0, len(topics))
	for _, topic := range topics {
		content, err := GetTopic(topic)
		if err != nil {
			return "", err
		}
		pages = append(pages, content)
	}
	return strings.Join(pages, "\n"), nil
}

// GetAllTopics lists the available topics, sorted, without the readme.
func GetAllTopics() ([]string, error) {
	files, err := fs.Glob(docs, "*.md")
	if err != nil {
		return nil, err
	}
	topics := make([]string, 0, len(files))
	for _, f := range files {
		if name := strings.TrimSuffix(f, ".md"); name != index {
			topics = append(topics, name)
		}
	}
	return topics, nil
}
