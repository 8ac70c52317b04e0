package sbe

import "fmt"

// ControlMessageType is the message_type field of a ControlMessageRequest.
type ControlMessageType uint8

const (
	ControlAddTaskSubscription              ControlMessageType = 0
	ControlRemoveTaskSubscription            ControlMessageType = 1
	ControlIncreaseTaskSubscriptionCredits   ControlMessageType = 2
	ControlRemoveTopicSubscription           ControlMessageType = 3
	ControlRequestTopology                   ControlMessageType = 4
)

func (c ControlMessageType) String() string {
	switch c {
	case ControlAddTaskSubscription:
		return "AddTaskSubscription"
	case ControlRemoveTaskSubscription:
		return "RemoveTaskSubscription"
	case ControlIncreaseTaskSubscriptionCredits:
		return "IncreaseTaskSubscriptionCredits"
	case ControlRemoveTopicSubscription:
		return "RemoveTopicSubscription"
	case ControlRequestTopology:
		return "RequestTopology"
	default:
		return fmt.Sprintf("ControlMessageType(%d)", uint8(c))
	}
}

// EventType identifies the business-event kind carried by an
// ExecuteCommandRequest, ExecuteCommandResponse, or SubscribedEvent.
type EventType uint8

const (
	EventTask             EventType = 0
	EventRaft             EventType = 1
	EventSubscription     EventType = 2
	EventSubscriber       EventType = 3
	EventDeployment       EventType = 4
	EventWorkflowInstance EventType = 5
	EventIncident         EventType = 6
	EventWorkflow         EventType = 7
	EventNoop             EventType = 8
	EventTopic            EventType = 9
	EventPartition        EventType = 10
)

func (e EventType) String() string {
	switch e {
	case EventTask:
		return "TaskEvent"
	case EventRaft:
		return "RaftEvent"
	case EventSubscription:
		return "SubscriptionEvent"
	case EventSubscriber:
		return "SubscriberEvent"
	case EventDeployment:
		return "DeploymentEvent"
	case EventWorkflowInstance:
		return "WorkflowInstanceEvent"
	case EventIncident:
		return "IncidentEvent"
	case EventWorkflow:
		return "WorkflowEvent"
	case EventNoop:
		return "NoopEvent"
	case EventTopic:
		return "TopicEvent"
	case EventPartition:
		return "PartitionEvent"
	default:
		return fmt.Sprintf("EventType(%d)", uint8(e))
	}
}

// SubscriptionType distinguishes a task subscription from a topic
// subscription.
type SubscriptionType uint8

const (
	SubscriptionTask  SubscriptionType = 0
	SubscriptionTopic SubscriptionType = 1
)

func (s SubscriptionType) String() string {
	switch s {
	case SubscriptionTask:
		return "TaskSubscription"
	case SubscriptionTopic:
		return "TopicSubscription"
	default:
		return fmt.Sprintf("SubscriptionType(%d)", uint8(s))
	}
}

// ErrorCode is the error_code field of an ErrorResponse. MessageNotSupported
// and InvalidMessage are preserved as distinct values verbatim from the
// wire; this codec never reinterprets one as the other.
type ErrorCode uint8

const (
	ErrorMessageNotSupported      ErrorCode = 0
	ErrorPartitionNotFound        ErrorCode = 1
	ErrorRequestWriteFailure      ErrorCode = 2
	ErrorInvalidClientVersion     ErrorCode = 3
	ErrorRequestTimeout           ErrorCode = 4
	ErrorRequestProcessingFailure ErrorCode = 5
	ErrorInvalidMessage           ErrorCode = 6
)

func (e ErrorCode) String() string {
	switch e {
	case ErrorMessageNotSupported:
		return "MessageNotSupported"
	case ErrorPartitionNotFound:
		return "PartitionNotFound"
	case ErrorRequestWriteFailure:
		return "RequestWriteFailure"
	case ErrorInvalidClientVersion:
		return "InvalidClientVersion"
	case ErrorRequestTimeout:
		return "RequestTimeout"
	case ErrorRequestProcessingFailure:
		return "RequestProcessingFailure"
	case ErrorInvalidMessage:
		return "InvalidMessage"
	default:
		return fmt.Sprintf("ErrorCode(%d)", uint8(e))
	}
}

// ANYPartition is the sentinel partition_id recognized by the broker as
// "route to any partition", used by topology queries.
const ANYPartition uint16 = 0xFFFF
