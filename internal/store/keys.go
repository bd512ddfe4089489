package store

import "strconv"

// Key prefixes match the historical storage layout: the topic list under
// a fixed key, each topic's question list under "questions<topicID>".
const topicsKey = "topics"
const questionsKeyPrefix = "questions"

// TopicsKey returns the key holding the topic list.
func TopicsKey() string {
	return topicsKey
}

// QuestionsKey returns the key holding the question list for a topic.
func QuestionsKey(topicID int64) string {
	return questionsKeyPrefix + strconv.FormatInt(topicID, 10)
}
