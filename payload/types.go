package payload

import (
	"github.com/vmihailenco/msgpack/v5"

	"github.com/taskbroker/zbproto/eventstate"
)

// --- Topology ---

type TopicLeader struct {
	Host        string `msgpack:"host"`
	Port        uint16 `msgpack:"port"`
	TopicName   string `msgpack:"topicName"`
	PartitionID uint16 `msgpack:"partitionId"`
}

type Broker struct {
	Host string `msgpack:"host"`
	Port uint16 `msgpack:"port"`
}

type TopologyResponse struct {
	TopicLeaders []TopicLeader `msgpack:"topicLeaders"`
	Brokers      []Broker      `msgpack:"brokers"`
}

// EncodeTopologyRequest returns the empty-map payload for a topology
// request; the request itself carries no fields.
func EncodeTopologyRequest() ([]byte, error) {
	return marshal(&struct{}{})
}

func DecodeTopologyResponse(data []byte) (TopologyResponse, error) {
	var v TopologyResponse
	err := unmarshal(data, &v)
	return v, err
}

func EncodeTopologyResponse(v TopologyResponse) ([]byte, error) {
	return marshal(&v)
}

// --- Task ---

// TaskHeaders carries workflow-correlation metadata attached to a task
// event. Every integer field defaults to -1 ("unset") when absent.
type TaskHeaders struct {
	WorkflowInstanceKey       int64  `msgpack:"workflowInstanceKey"`
	BpmnProcessID             string `msgpack:"bpmnProcessId"`
	WorkflowDefinitionVersion int64  `msgpack:"workflowDefinitionVersion"`
	WorkflowKey               int64  `msgpack:"workflowKey"`
	ActivityID                string `msgpack:"activityId"`
	ActivityInstanceKey       int64  `msgpack:"activityInstanceKey"`
}

// NewTaskHeaders returns a TaskHeaders with every defaulted field set.
func NewTaskHeaders() TaskHeaders {
	return TaskHeaders{
		WorkflowInstanceKey:       -1,
		WorkflowDefinitionVersion: -1,
		WorkflowKey:               -1,
		ActivityInstanceKey:       -1,
	}
}

// TaskEvent is the business object carried in the command/event variable
// field of a task-related ExecuteCommandRequest/Response or
// SubscribedEvent. The decode-default for Retries is -1 ("unset"); callers
// constructing a new task to send use the root package's CreateTaskBuilder,
// whose own default is 3, per the two dialects' disagreement resolved in
// the design notes.
type TaskEvent struct {
	State         string            `msgpack:"state"`
	LockTime      int64             `msgpack:"lockTime"`
	LockOwner     string            `msgpack:"lockOwner"`
	Retries       int32             `msgpack:"retries"`
	Type          string            `msgpack:"type"`
	Headers       TaskHeaders       `msgpack:"headers"`
	CustomHeaders map[string]string `msgpack:"customHeaders"`
	Payload       msgpack.RawMessage `msgpack:"payload"`
}

// NewTaskEvent returns a TaskEvent with every defaulted field set,
// including the nil payload.
func NewTaskEvent() TaskEvent {
	return TaskEvent{
		LockTime: unsetInt64,
		Retries:  -1,
		Headers:  NewTaskHeaders(),
		Payload:  append(msgpack.RawMessage(nil), NilPayload...),
	}
}

func DecodeTaskEvent(data []byte) (TaskEvent, error) {
	v := NewTaskEvent()
	if err := unmarshal(data, &v); err != nil {
		return v, err
	}
	if _, err := eventstate.ParseTask(v.State); err != nil {
		return v, err
	}
	return v, nil
}

func EncodeTaskEvent(v TaskEvent) ([]byte, error) {
	return marshal(&v)
}

// --- Topic ---

type TopicEvent struct {
	State      string `msgpack:"state"`
	Name       string `msgpack:"name"`
	Partitions uint32 `msgpack:"partitions"`
}

func DecodeTopicEvent(data []byte) (TopicEvent, error) {
	var v TopicEvent
	if err := unmarshal(data, &v); err != nil {
		return v, err
	}
	if _, err := eventstate.ParseTopic(v.State); err != nil {
		return v, err
	}
	return v, nil
}

func EncodeTopicEvent(v TopicEvent) ([]byte, error) {
	return marshal(&v)
}

// --- Subscriptions ---

type TaskSubscription struct {
	TopicName     string `msgpack:"topicName"`
	PartitionID   uint32 `msgpack:"partitionId"`
	SubscriberKey uint64 `msgpack:"subscriberKey"`
	TaskType      string `msgpack:"taskType"`
	LockDuration  uint64 `msgpack:"lockDuration"`
	LockOwner     string `msgpack:"lockOwner"`
	Credits       uint32 `msgpack:"credits"`
}

func DecodeTaskSubscription(data []byte) (TaskSubscription, error) {
	var v TaskSubscription
	err := unmarshal(data, &v)
	return v, err
}

func EncodeTaskSubscription(v TaskSubscription) ([]byte, error) {
	return marshal(&v)
}

// TopicSubscriberEvent opens or acknowledges a topic subscription.
// StartPosition defaults to -1 ("start from the current tail").
type TopicSubscriberEvent struct {
	State            string `msgpack:"state"`
	Name             string `msgpack:"name"`
	PrefetchCapacity uint32 `msgpack:"prefetchCapacity"`
	StartPosition    int64  `msgpack:"startPosition"`
	ForceStart       bool   `msgpack:"forceStart"`
}

// NewTopicSubscriberEvent returns a TopicSubscriberEvent with its
// defaulted fields set and State = "SUBSCRIBE".
func NewTopicSubscriberEvent() TopicSubscriberEvent {
	return TopicSubscriberEvent{State: "SUBSCRIBE", StartPosition: -1}
}

func DecodeTopicSubscriberEvent(data []byte) (TopicSubscriberEvent, error) {
	v := NewTopicSubscriberEvent()
	if err := unmarshal(data, &v); err != nil {
		return v, err
	}
	if _, err := eventstate.ParseTopicSubscriber(v.State); err != nil {
		return v, err
	}
	return v, nil
}

func EncodeTopicSubscriberEvent(v TopicSubscriberEvent) ([]byte, error) {
	return marshal(&v)
}

type CloseSubscription struct {
	TopicName     string `msgpack:"topicName"`
	PartitionID   uint32 `msgpack:"partitionId"`
	SubscriberKey uint64 `msgpack:"subscriberKey"`
}

func DecodeCloseSubscription(data []byte) (CloseSubscription, error) {
	var v CloseSubscription
	err := unmarshal(data, &v)
	return v, err
}

func EncodeCloseSubscription(v CloseSubscription) ([]byte, error) {
	return marshal(&v)
}

// --- Deployment ---

type DeployedWorkflow struct {
	BpmnProcessID string `msgpack:"bpmnProcessId"`
	Version       int32  `msgpack:"version"`
}

type DeploymentEvent struct {
	State             string             `msgpack:"state"`
	DeployedWorkflows []DeployedWorkflow `msgpack:"deployedWorkflows"`
	BpmnXML           []byte             `msgpack:"bpmnXml"`
}

func DecodeDeploymentEvent(data []byte) (DeploymentEvent, error) {
	var v DeploymentEvent
	if err := unmarshal(data, &v); err != nil {
		return v, err
	}
	if _, err := eventstate.ParseDeployment(v.State); err != nil {
		return v, err
	}
	return v, nil
}

func EncodeDeploymentEvent(v DeploymentEvent) ([]byte, error) {
	return marshal(&v)
}

// --- Workflow instance ---

type WorkflowInstanceEvent struct {
	State               string             `msgpack:"state"`
	BpmnProcessID       string             `msgpack:"bpmnProcessId"`
	Version             int32              `msgpack:"version"`
	WorkflowKey         int64              `msgpack:"workflowKey"`
	WorkflowInstanceKey int64              `msgpack:"workflowInstanceKey"`
	ActivityID          string             `msgpack:"activityId"`
	Payload             msgpack.RawMessage `msgpack:"payload"`
}

func DecodeWorkflowInstanceEvent(data []byte) (WorkflowInstanceEvent, error) {
	v := WorkflowInstanceEvent{Payload: append(msgpack.RawMessage(nil), NilPayload...)}
	if err := unmarshal(data, &v); err != nil {
		return v, err
	}
	if _, err := eventstate.ParseWorkflowInstance(v.State); err != nil {
		return v, err
	}
	return v, nil
}

func EncodeWorkflowInstanceEvent(v WorkflowInstanceEvent) ([]byte, error) {
	return marshal(&v)
}
