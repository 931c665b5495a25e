package queue

import "fmt"

// QueueType is the x-queue-type a session events queue is declared with.
type QueueType string

const (
	QueueTypeClassic QueueType = "classic"
	QueueTypeQuorum  QueueType = "quorum"
	QueueTypeStream  QueueType = "stream"
)

// ParseQueueType accepts the configured queue type. Empty means classic.
func ParseQueueType(value string) (QueueType, error) {
	switch t := QueueType(value); t {
	case "":
		return QueueTypeClassic, nil
	case QueueTypeClassic, QueueTypeQuorum, QueueTypeStream:
		return t, nil
	default:
		return "", fmt.Errorf("unknown queue type %q", value)
	}
}
