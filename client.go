// Package zbproto is the public client API: it composes the frame,
// transport, sbe, and payload layers into the request/response and
// subscription operations a broker client actually performs, the way the
// three reference CLIs in cmd/ each do by hand.
package zbproto

import (
	"fmt"

	"github.com/taskbroker/zbproto/eventstate"
	"github.com/taskbroker/zbproto/payload"
	"github.com/taskbroker/zbproto/sbe"
	"github.com/taskbroker/zbproto/transport"
)

// DefaultPartition routes a command to partition 0 of the default topic,
// the convention every reference CLI uses when it has no reason to target
// a specific partition.
const DefaultPartition uint16 = 0

// Protocol/version constants used when composing outgoing frames. Callers
// that need non-default values build their own transport.Encode* calls
// directly.
const (
	wireVersion uint8 = 0
	wireFlags   uint8 = 0
)

// TopologyRequest builds the wire bytes for a topology query.
func TopologyRequest(requestID uint64) ([]byte, error) {
	data, err := payload.EncodeTopologyRequest()
	if err != nil {
		return nil, fmt.Errorf("zbproto: topology request: %w", err)
	}
	body, err := sbe.EncodeControlMessageRequest(sbe.ControlMessageRequest{
		MessageType: sbe.ControlRequestTopology,
		PartitionID: sbe.ANYPartition,
		Data:        data,
	})
	if err != nil {
		return nil, fmt.Errorf("zbproto: topology request: %w", err)
	}
	return transport.EncodeRequestResponse(wireVersion, wireFlags, 0, requestID, body), nil
}

// ReadTopologyResponse decodes a topology response received over a
// request-response envelope.
func ReadTopologyResponse(wireBytes []byte) (payload.TopologyResponse, error) {
	ctrl, err := readControlMessageResponse(wireBytes)
	if err != nil {
		return payload.TopologyResponse{}, fmt.Errorf("zbproto: read topology response: %w", err)
	}
	resp, err := payload.DecodeTopologyResponse(ctrl.Data)
	if err != nil {
		return payload.TopologyResponse{}, fmt.Errorf("zbproto: read topology response: %w", err)
	}
	return resp, nil
}

// CreateTopicRequest builds the wire bytes for a create-topic command
// addressed to partitionID.
func CreateTopicRequest(requestID uint64, partitionID uint16, name string, partitions uint32) ([]byte, error) {
	data, err := payload.EncodeTopicEvent(payload.TopicEvent{
		State:      eventstate.TopicCreate.String(),
		Name:       name,
		Partitions: partitions,
	})
	if err != nil {
		return nil, fmt.Errorf("zbproto: create topic request: %w", err)
	}
	body, err := sbe.EncodeExecuteCommandRequest(sbe.ExecuteCommandRequest{
		PartitionID: partitionID,
		EventType:   sbe.EventTopic,
		TopicName:   "system",
		Command:     data,
	})
	if err != nil {
		return nil, fmt.Errorf("zbproto: create topic request: %w", err)
	}
	return transport.EncodeRequestResponse(wireVersion, wireFlags, 0, requestID, body), nil
}

// ReadTopicResponse decodes an ExecuteCommandResponse carrying a TopicEvent.
func ReadTopicResponse(wireBytes []byte) (payload.TopicEvent, error) {
	resp, err := readExecuteCommandResponse(wireBytes)
	if err != nil {
		return payload.TopicEvent{}, fmt.Errorf("zbproto: read topic response: %w", err)
	}
	ev, err := payload.DecodeTopicEvent(resp.Event)
	if err != nil {
		return payload.TopicEvent{}, fmt.Errorf("zbproto: read topic response: %w", err)
	}
	return ev, nil
}

// CreateTaskBuilder accumulates the fields of a new task before encoding it
// into a create-task command. The zero value is not usable; construct with
// NewCreateTaskBuilder.
type CreateTaskBuilder struct {
	topicName     string
	partitionID   uint16
	taskType      string
	lockOwner     string
	retries       int32
	customHeaders map[string]string
	payload       []byte
}

// NewCreateTaskBuilder returns a builder for a task of the given type on
// the default topic/partition, with the standard retries default of 3 (the
// dialect this codec follows for newly created tasks; a decoded task with
// no retries field present instead defaults to -1, meaning "unset").
func NewCreateTaskBuilder(taskType string) *CreateTaskBuilder {
	return &CreateTaskBuilder{
		topicName:     "default-topic",
		partitionID:   DefaultPartition,
		taskType:      taskType,
		retries:       3,
		customHeaders: make(map[string]string),
	}
}

// Topic overrides the target topic and partition.
func (b *CreateTaskBuilder) Topic(name string, partitionID uint16) *CreateTaskBuilder {
	b.topicName = name
	b.partitionID = partitionID
	return b
}

// Retries overrides the retry count.
func (b *CreateTaskBuilder) Retries(n int32) *CreateTaskBuilder {
	b.retries = n
	return b
}

// LockOwner sets the lock_owner field sent with the create command.
func (b *CreateTaskBuilder) LockOwner(owner string) *CreateTaskBuilder {
	b.lockOwner = owner
	return b
}

// CustomHeader attaches one key/value pair to the task's customHeaders map.
func (b *CreateTaskBuilder) CustomHeader(key, value string) *CreateTaskBuilder {
	b.customHeaders[key] = value
	return b
}

// CustomHeaders attaches every key/value pair of headers to the task's
// customHeaders map.
func (b *CreateTaskBuilder) CustomHeaders(headers map[string]string) *CreateTaskBuilder {
	for k, v := range headers {
		b.customHeaders[k] = v
	}
	return b
}

// Payload encodes v as the task's business payload. v may be any value
// vmihailenco/msgpack can marshal, typically a map[string]any or struct.
func (b *CreateTaskBuilder) Payload(v any) (*CreateTaskBuilder, error) {
	data, err := payload.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("zbproto: task payload: %w", err)
	}
	b.payload = data
	return b, nil
}

// Build composes the wire bytes for the create-task command.
func (b *CreateTaskBuilder) Build(requestID uint64) ([]byte, error) {
	ev := payload.NewTaskEvent()
	ev.State = eventstate.TaskCreate.String()
	ev.Type = b.taskType
	ev.LockOwner = b.lockOwner
	ev.Retries = b.retries
	ev.CustomHeaders = b.customHeaders
	if b.payload != nil {
		ev.Payload = b.payload
	}

	data, err := payload.EncodeTaskEvent(ev)
	if err != nil {
		return nil, fmt.Errorf("zbproto: build create task: %w", err)
	}
	body, err := sbe.EncodeExecuteCommandRequest(sbe.ExecuteCommandRequest{
		PartitionID: b.partitionID,
		EventType:   sbe.EventTask,
		TopicName:   b.topicName,
		Command:     data,
	})
	if err != nil {
		return nil, fmt.Errorf("zbproto: build create task: %w", err)
	}
	return transport.EncodeRequestResponse(wireVersion, wireFlags, 0, requestID, body), nil
}

// ReadTaskResponse decodes an ExecuteCommandResponse carrying a TaskEvent,
// the shape returned by both a create-task and a complete-task command.
func ReadTaskResponse(wireBytes []byte) (payload.TaskEvent, error) {
	resp, err := readExecuteCommandResponse(wireBytes)
	if err != nil {
		return payload.TaskEvent{}, fmt.Errorf("zbproto: read task response: %w", err)
	}
	ev, err := payload.DecodeTaskEvent(resp.Event)
	if err != nil {
		return payload.TaskEvent{}, fmt.Errorf("zbproto: read task response: %w", err)
	}
	return ev, nil
}

// OpenTaskSubscription builds the wire bytes for an AddTaskSubscription
// control message.
func OpenTaskSubscription(requestID uint64, sub payload.TaskSubscription) ([]byte, error) {
	return encodeSubscriptionControl(requestID, sbe.ControlAddTaskSubscription, sub)
}

// IncreaseTaskSubscriptionCredits builds the wire bytes for an
// IncreaseTaskSubscriptionCredits control message, sent once a worker's
// credit pool has been fully drained and refilled.
func IncreaseTaskSubscriptionCredits(requestID uint64, sub payload.TaskSubscription) ([]byte, error) {
	return encodeSubscriptionControl(requestID, sbe.ControlIncreaseTaskSubscriptionCredits, sub)
}

// ReadTaskSubscriptionResponse decodes the ControlMessageResponse returned
// by OpenTaskSubscription, which carries the broker-assigned subscriber
// key.
func ReadTaskSubscriptionResponse(wireBytes []byte) (payload.TaskSubscription, error) {
	ctrl, err := readControlMessageResponse(wireBytes)
	if err != nil {
		return payload.TaskSubscription{}, fmt.Errorf("zbproto: read task subscription response: %w", err)
	}
	sub, err := payload.DecodeTaskSubscription(ctrl.Data)
	if err != nil {
		return payload.TaskSubscription{}, fmt.Errorf("zbproto: read task subscription response: %w", err)
	}
	return sub, nil
}

// CloseTaskSubscription builds the wire bytes for a
// RemoveTaskSubscription control message.
func CloseTaskSubscription(requestID uint64, sub payload.CloseSubscription) ([]byte, error) {
	return encodeSubscriptionControl(requestID, sbe.ControlRemoveTaskSubscription, sub)
}

// CloseTopicSubscription builds the wire bytes for a
// RemoveTopicSubscription control message.
func CloseTopicSubscription(requestID uint64, sub payload.CloseSubscription) ([]byte, error) {
	return encodeSubscriptionControl(requestID, sbe.ControlRemoveTopicSubscription, sub)
}

func encodeSubscriptionControl(requestID uint64, msgType sbe.ControlMessageType, v any) ([]byte, error) {
	data, err := payload.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("zbproto: encode subscription control: %w", err)
	}
	body, err := sbe.EncodeControlMessageRequest(sbe.ControlMessageRequest{
		MessageType: msgType,
		PartitionID: sbe.ANYPartition,
		Data:        data,
	})
	if err != nil {
		return nil, fmt.Errorf("zbproto: encode subscription control: %w", err)
	}
	return transport.EncodeRequestResponse(wireVersion, wireFlags, 0, requestID, body), nil
}

// ReadSubscribedEvent decodes a pushed SubscribedEvent arriving over the
// full-duplex single-message protocol (the transport branch the broker
// uses to push task/topic events outside the request-response cycle), plus
// the TaskEvent it carries.
func ReadSubscribedEvent(wireBytes []byte) (sbe.SubscribedEvent, payload.TaskEvent, error) {
	env, _, err := transport.ReadEnvelope(wireBytes)
	if err != nil {
		return sbe.SubscribedEvent{}, payload.TaskEvent{}, fmt.Errorf("zbproto: read subscribed event: %w", err)
	}
	sub, err := sbe.DecodeSubscribedEvent(env.Body)
	if err != nil {
		return sbe.SubscribedEvent{}, payload.TaskEvent{}, fmt.Errorf("zbproto: read subscribed event: %w", err)
	}
	ev, err := payload.DecodeTaskEvent(sub.Event)
	if err != nil {
		return sbe.SubscribedEvent{}, payload.TaskEvent{}, fmt.Errorf("zbproto: read subscribed event: %w", err)
	}
	return sub, ev, nil
}

// CompleteTask builds the wire bytes that complete the task carried by a
// previously-received SubscribedEvent, echoing its partition/position/key/
// event type/topic back to the broker the way a worker does after finishing
// the task's business logic.
func CompleteTask(requestID uint64, sub sbe.SubscribedEvent, task payload.TaskEvent) ([]byte, error) {
	task.State = eventstate.TaskComplete.String()
	if len(task.Payload) == 0 {
		task.Payload = payload.NilPayload
	}

	data, err := payload.EncodeTaskEvent(task)
	if err != nil {
		return nil, fmt.Errorf("zbproto: complete task: %w", err)
	}
	body, err := sbe.EncodeExecuteCommandRequest(sbe.ExecuteCommandRequest{
		PartitionID: sub.PartitionID,
		Position:    sub.Position,
		Key:         sub.Key,
		EventType:   sub.EventType,
		TopicName:   sub.TopicName,
		Command:     data,
	})
	if err != nil {
		return nil, fmt.Errorf("zbproto: complete task: %w", err)
	}
	return transport.EncodeRequestResponse(wireVersion, wireFlags, 0, requestID, body), nil
}

// AppendRequest builds the wire bytes for a raft append-entries request,
// used by components replicating the event log rather than by ordinary
// clients. It is framed on the full-duplex single-message branch, which
// has no correlation header, so requestID is not written to the frame.
func AppendRequest(requestID uint64, req sbe.AppendRequest) ([]byte, error) {
	body, err := sbe.EncodeAppendRequest(req)
	if err != nil {
		return nil, fmt.Errorf("zbproto: append request: %w", err)
	}
	return transport.EncodeFullDuplexSingleMessage(wireVersion, wireFlags, 0, body), nil
}

// ReadAppendRequest decodes the wire bytes produced by AppendRequest.
func ReadAppendRequest(wireBytes []byte) (sbe.AppendRequest, error) {
	env, _, err := transport.ReadEnvelope(wireBytes)
	if err != nil {
		return sbe.AppendRequest{}, fmt.Errorf("zbproto: read append request: %w", err)
	}
	req, err := sbe.DecodeAppendRequest(env.Body)
	if err != nil {
		return sbe.AppendRequest{}, fmt.Errorf("zbproto: read append request: %w", err)
	}
	return req, nil
}

func readControlMessageResponse(wireBytes []byte) (sbe.ControlMessageResponse, error) {
	env, _, err := transport.ReadEnvelope(wireBytes)
	if err != nil {
		return sbe.ControlMessageResponse{}, err
	}
	return sbe.DecodeControlMessageResponse(env.Body)
}

func readExecuteCommandResponse(wireBytes []byte) (sbe.ExecuteCommandResponse, error) {
	env, _, err := transport.ReadEnvelope(wireBytes)
	if err != nil {
		return sbe.ExecuteCommandResponse{}, err
	}
	return sbe.DecodeExecuteCommandResponse(env.Body)
}
