// Package eventstate gives each event kind's "state" field — otherwise a
// bare string on the wire — a typed, validated Go representation, in the
// same spirit as proxy.Op for captured database operations.
package eventstate

import (
	"fmt"

	"github.com/taskbroker/zbproto/protoerr"
)

// Task is the lifecycle state of a TaskEvent.
type Task int32

const (
	TaskCreate Task = iota
	TaskCreated
	TaskLock
	TaskLocked
	TaskLockRejected
	TaskComplete
	TaskCompleted
	TaskCompleteRejected
	TaskFail
	TaskFailed
	TaskFailRejected
	TaskExpireLock
	TaskLockExpired
	TaskLockExpirationRejected
	TaskUpdateRetries
	TaskRetriesUpdated
	TaskUpdateRetriesRejected
	TaskCancel
	TaskCanceled
	TaskCancelRejected
)

func (s Task) String() string {
	switch s {
	case TaskCreate:
		return "CREATE"
	case TaskCreated:
		return "CREATED"
	case TaskLock:
		return "LOCK"
	case TaskLocked:
		return "LOCKED"
	case TaskLockRejected:
		return "LOCK_REJECTED"
	case TaskComplete:
		return "COMPLETE"
	case TaskCompleted:
		return "COMPLETED"
	case TaskCompleteRejected:
		return "COMPLETE_REJECTED"
	case TaskFail:
		return "FAIL"
	case TaskFailed:
		return "FAILED"
	case TaskFailRejected:
		return "FAIL_REJECTED"
	case TaskExpireLock:
		return "EXPIRE_LOCK"
	case TaskLockExpired:
		return "LOCK_EXPIRED"
	case TaskLockExpirationRejected:
		return "LOCK_EXPIRATION_REJECTED"
	case TaskUpdateRetries:
		return "UPDATE_RETRIES"
	case TaskRetriesUpdated:
		return "RETRIES_UPDATED"
	case TaskUpdateRetriesRejected:
		return "UPDATE_RETRIES_REJECTED"
	case TaskCancel:
		return "CANCEL"
	case TaskCanceled:
		return "CANCELED"
	case TaskCancelRejected:
		return "CANCEL_REJECTED"
	default:
		return fmt.Sprintf("Task(%d)", int32(s))
	}
}

// ParseTask maps a wire state string to a Task, failing with
// *protoerr.UnknownState for anything it does not recognize.
func ParseTask(s string) (Task, error) {
	for _, t := range []Task{
		TaskCreate, TaskCreated, TaskLock, TaskLocked, TaskLockRejected,
		TaskComplete, TaskCompleted, TaskCompleteRejected, TaskFail, TaskFailed, TaskFailRejected,
		TaskExpireLock, TaskLockExpired, TaskLockExpirationRejected,
		TaskUpdateRetries, TaskRetriesUpdated, TaskUpdateRetriesRejected,
		TaskCancel, TaskCanceled, TaskCancelRejected,
	} {
		if t.String() == s {
			return t, nil
		}
	}
	return 0, &protoerr.UnknownState{Kind: "eventstate.Task", Value: s}
}

// Topic is the lifecycle state of a TopicEvent.
type Topic int32

const (
	TopicCreate Topic = iota
	TopicCreated
	TopicCreateRejected
)

func (s Topic) String() string {
	switch s {
	case TopicCreate:
		return "CREATE"
	case TopicCreated:
		return "CREATED"
	case TopicCreateRejected:
		return "CREATE_REJECTED"
	default:
		return fmt.Sprintf("Topic(%d)", int32(s))
	}
}

func ParseTopic(s string) (Topic, error) {
	for _, t := range []Topic{TopicCreate, TopicCreated, TopicCreateRejected} {
		if t.String() == s {
			return t, nil
		}
	}
	return 0, &protoerr.UnknownState{Kind: "eventstate.Topic", Value: s}
}

// TopicSubscriber is the lifecycle state of a TopicSubscriberEvent.
type TopicSubscriber int32

const (
	TopicSubscriberSubscribe TopicSubscriber = iota
	TopicSubscriberSubscribed
	TopicSubscriberSubscribeRejected
	TopicSubscriberUnsubscribe
	TopicSubscriberUnsubscribed
	TopicSubscriberUnsubscribeRejected
)

func (s TopicSubscriber) String() string {
	switch s {
	case TopicSubscriberSubscribe:
		return "SUBSCRIBE"
	case TopicSubscriberSubscribed:
		return "SUBSCRIBED"
	case TopicSubscriberSubscribeRejected:
		return "SUBSCRIBE_REJECTED"
	case TopicSubscriberUnsubscribe:
		return "UNSUBSCRIBE"
	case TopicSubscriberUnsubscribed:
		return "UNSUBSCRIBED"
	case TopicSubscriberUnsubscribeRejected:
		return "UNSUBSCRIBE_REJECTED"
	default:
		return fmt.Sprintf("TopicSubscriber(%d)", int32(s))
	}
}

func ParseTopicSubscriber(s string) (TopicSubscriber, error) {
	for _, t := range []TopicSubscriber{
		TopicSubscriberSubscribe, TopicSubscriberSubscribed, TopicSubscriberSubscribeRejected,
		TopicSubscriberUnsubscribe, TopicSubscriberUnsubscribed, TopicSubscriberUnsubscribeRejected,
	} {
		if t.String() == s {
			return t, nil
		}
	}
	return 0, &protoerr.UnknownState{Kind: "eventstate.TopicSubscriber", Value: s}
}

// Deployment is the lifecycle state of a DeploymentEvent.
type Deployment int32

const (
	DeploymentCreate Deployment = iota
	DeploymentCreated
	DeploymentRejected
)

func (s Deployment) String() string {
	switch s {
	case DeploymentCreate:
		return "CREATE_DEPLOYMENT"
	case DeploymentCreated:
		return "DEPLOYMENT_CREATED"
	case DeploymentRejected:
		return "DEPLOYMENT_REJECTED"
	default:
		return fmt.Sprintf("Deployment(%d)", int32(s))
	}
}

func ParseDeployment(s string) (Deployment, error) {
	for _, d := range []Deployment{DeploymentCreate, DeploymentCreated, DeploymentRejected} {
		if d.String() == s {
			return d, nil
		}
	}
	return 0, &protoerr.UnknownState{Kind: "eventstate.Deployment", Value: s}
}

// WorkflowInstance is the lifecycle state of a WorkflowInstanceEvent.
type WorkflowInstance int32

const (
	WorkflowInstanceCreate WorkflowInstance = iota
	WorkflowInstanceCreated
	WorkflowInstanceRejected
	WorkflowInstanceStartEventOccurred
	WorkflowInstanceEndEventOccurred
	WorkflowInstanceSequenceFlowTaken
	WorkflowInstanceCompleted
	WorkflowInstanceActivityReady
	WorkflowInstanceActivityActivated
	WorkflowInstanceActivityCompleting
	WorkflowInstanceActivityCompleted
	WorkflowInstanceActivityTerminated
	WorkflowInstanceCanceling
	WorkflowInstanceCanceled
	WorkflowInstanceCancelRejected
	WorkflowInstanceUpdatePayload
	WorkflowInstancePayloadUpdated
	WorkflowInstanceUpdatePayloadRejected
)

func (s WorkflowInstance) String() string {
	switch s {
	case WorkflowInstanceCreate:
		return "CREATE_WORKFLOW_INSTANCE"
	case WorkflowInstanceCreated:
		return "WORKFLOW_INSTANCE_CREATED"
	case WorkflowInstanceRejected:
		return "WORKFLOW_INSTANCE_REJECTED"
	case WorkflowInstanceStartEventOccurred:
		return "START_EVENT_OCCURRED"
	case WorkflowInstanceEndEventOccurred:
		return "END_EVENT_OCCURRED"
	case WorkflowInstanceSequenceFlowTaken:
		return "SEQUENCE_FLOW_TAKEN"
	case WorkflowInstanceCompleted:
		return "WORKFLOW_INSTANCE_COMPLETED"
	case WorkflowInstanceActivityReady:
		return "ACTIVITY_READY"
	case WorkflowInstanceActivityActivated:
		return "ACTIVITY_ACTIVATED"
	case WorkflowInstanceActivityCompleting:
		return "ACTIVITY_COMPLETING"
	case WorkflowInstanceActivityCompleted:
		return "ACTIVITY_COMPLETED"
	case WorkflowInstanceActivityTerminated:
		return "ACTIVITY_TERMINATED"
	case WorkflowInstanceCanceling:
		return "CANCEL_WORKFLOW_INSTANCE"
	case WorkflowInstanceCanceled:
		return "WORKFLOW_INSTANCE_CANCELED"
	case WorkflowInstanceCancelRejected:
		return "CANCEL_WORKFLOW_INSTANCE_REJECTED"
	case WorkflowInstanceUpdatePayload:
		return "UPDATE_PAYLOAD"
	case WorkflowInstancePayloadUpdated:
		return "PAYLOAD_UPDATED"
	case WorkflowInstanceUpdatePayloadRejected:
		return "UPDATE_PAYLOAD_REJECTED"
	default:
		return fmt.Sprintf("WorkflowInstance(%d)", int32(s))
	}
}

func ParseWorkflowInstance(s string) (WorkflowInstance, error) {
	for _, w := range []WorkflowInstance{
		WorkflowInstanceCreate, WorkflowInstanceCreated, WorkflowInstanceRejected,
		WorkflowInstanceStartEventOccurred, WorkflowInstanceEndEventOccurred, WorkflowInstanceSequenceFlowTaken,
		WorkflowInstanceCompleted,
		WorkflowInstanceActivityReady, WorkflowInstanceActivityActivated, WorkflowInstanceActivityCompleting,
		WorkflowInstanceActivityCompleted, WorkflowInstanceActivityTerminated,
		WorkflowInstanceCanceling, WorkflowInstanceCanceled, WorkflowInstanceCancelRejected,
		WorkflowInstanceUpdatePayload, WorkflowInstancePayloadUpdated, WorkflowInstanceUpdatePayloadRejected,
	} {
		if w.String() == s {
			return w, nil
		}
	}
	return 0, &protoerr.UnknownState{Kind: "eventstate.WorkflowInstance", Value: s}
}
