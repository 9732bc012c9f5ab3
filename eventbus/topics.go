package eventbus

// TopicSummaryEvents carries summary lifecycle events.
var TopicSummaryEvents = NewTopic("summary_events")
