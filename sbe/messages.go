package sbe

import (
	"fmt"

	"github.com/taskbroker/zbproto/wire"
)

// Message is satisfied by every template in the catalog; it lets callers
// that only need to route on identity (rather than decode a specific
// template) treat the catalog as a single family, the way proxy.Proxy and
// tea.Model let a small set of concrete types stand in for a sum type Go
// does not have natively.
type Message interface {
	Header() MessageHeader
}

// --- ErrorResponse (template_id=0) ---

var errorResponseHeader = MessageHeader{BlockLength: 1, TemplateID: 0, SchemaID: 0, Version: 1}

type ErrorResponse struct {
	Code          ErrorCode
	ErrorData     []byte
	FailedRequest []byte
}

func (m ErrorResponse) Header() MessageHeader { return errorResponseHeader }

func EncodeErrorResponse(m ErrorResponse) ([]byte, error) {
	w := wire.NewWriter()
	errorResponseHeader.encode(w)
	w.WriteU8(uint8(m.Code))
	if err := w.WriteBytes(m.ErrorData); err != nil {
		return nil, fmt.Errorf("sbe: encode ErrorResponse: %w", err)
	}
	if err := w.WriteBytes(m.FailedRequest); err != nil {
		return nil, fmt.Errorf("sbe: encode ErrorResponse: %w", err)
	}
	return w.Bytes(), nil
}

func DecodeErrorResponse(b []byte) (ErrorResponse, error) {
	r := wire.NewReader(b)
	declared, err := expectHeader(r, errorResponseHeader)
	if err != nil {
		return ErrorResponse{}, err
	}
	code, err := r.ReadU8()
	if err != nil {
		return ErrorResponse{}, fmt.Errorf("sbe: decode ErrorResponse: %w", err)
	}
	if err := readBlockTail(r, declared, errorResponseHeader.BlockLength); err != nil {
		return ErrorResponse{}, fmt.Errorf("sbe: decode ErrorResponse: %w", err)
	}
	errorData, err := r.ReadBytes()
	if err != nil {
		return ErrorResponse{}, fmt.Errorf("sbe: decode ErrorResponse: %w", err)
	}
	failedRequest, err := r.ReadBytes()
	if err != nil {
		return ErrorResponse{}, fmt.Errorf("sbe: decode ErrorResponse: %w", err)
	}
	return ErrorResponse{Code: ErrorCode(code), ErrorData: errorData, FailedRequest: failedRequest}, nil
}

// --- ControlMessageRequest (template_id=10, schema_id=0) ---

var controlMessageRequestHeader = MessageHeader{BlockLength: 3, TemplateID: 10, SchemaID: 0, Version: 1}

type ControlMessageRequest struct {
	MessageType ControlMessageType
	PartitionID uint16
	Data        []byte
}

func (m ControlMessageRequest) Header() MessageHeader { return controlMessageRequestHeader }

func EncodeControlMessageRequest(m ControlMessageRequest) ([]byte, error) {
	w := wire.NewWriter()
	controlMessageRequestHeader.encode(w)
	w.WriteU8(uint8(m.MessageType))
	w.WriteU16(m.PartitionID)
	if err := w.WriteBytes(m.Data); err != nil {
		return nil, fmt.Errorf("sbe: encode ControlMessageRequest: %w", err)
	}
	return w.Bytes(), nil
}

func DecodeControlMessageRequest(b []byte) (ControlMessageRequest, error) {
	r := wire.NewReader(b)
	declared, err := expectHeader(r, controlMessageRequestHeader)
	if err != nil {
		return ControlMessageRequest{}, err
	}
	msgType, err := r.ReadU8()
	if err != nil {
		return ControlMessageRequest{}, fmt.Errorf("sbe: decode ControlMessageRequest: %w", err)
	}
	partitionID, err := r.ReadU16()
	if err != nil {
		return ControlMessageRequest{}, fmt.Errorf("sbe: decode ControlMessageRequest: %w", err)
	}
	if err := readBlockTail(r, declared, controlMessageRequestHeader.BlockLength); err != nil {
		return ControlMessageRequest{}, fmt.Errorf("sbe: decode ControlMessageRequest: %w", err)
	}
	data, err := r.ReadBytes()
	if err != nil {
		return ControlMessageRequest{}, fmt.Errorf("sbe: decode ControlMessageRequest: %w", err)
	}
	return ControlMessageRequest{MessageType: ControlMessageType(msgType), PartitionID: partitionID, Data: data}, nil
}

// --- ControlMessageResponse (template_id=11, schema_id=0) ---

var controlMessageResponseHeader = MessageHeader{BlockLength: 0, TemplateID: 11, SchemaID: 0, Version: 1}

type ControlMessageResponse struct {
	Data []byte
}

func (m ControlMessageResponse) Header() MessageHeader { return controlMessageResponseHeader }

func EncodeControlMessageResponse(m ControlMessageResponse) ([]byte, error) {
	w := wire.NewWriter()
	controlMessageResponseHeader.encode(w)
	if err := w.WriteBytes(m.Data); err != nil {
		return nil, fmt.Errorf("sbe: encode ControlMessageResponse: %w", err)
	}
	return w.Bytes(), nil
}

func DecodeControlMessageResponse(b []byte) (ControlMessageResponse, error) {
	r := wire.NewReader(b)
	declared, err := expectHeader(r, controlMessageResponseHeader)
	if err != nil {
		return ControlMessageResponse{}, err
	}
	if err := readBlockTail(r, declared, controlMessageResponseHeader.BlockLength); err != nil {
		return ControlMessageResponse{}, fmt.Errorf("sbe: decode ControlMessageResponse: %w", err)
	}
	data, err := r.ReadBytes()
	if err != nil {
		return ControlMessageResponse{}, fmt.Errorf("sbe: decode ControlMessageResponse: %w", err)
	}
	return ControlMessageResponse{Data: data}, nil
}

// --- ExecuteCommandRequest (template_id=20, schema_id=0) ---

var executeCommandRequestHeader = MessageHeader{BlockLength: 19, TemplateID: 20, SchemaID: 0, Version: 1}

type ExecuteCommandRequest struct {
	PartitionID uint16
	Position    uint64
	Key         uint64
	EventType   EventType
	TopicName   string
	Command     []byte
}

func (m ExecuteCommandRequest) Header() MessageHeader { return executeCommandRequestHeader }

func EncodeExecuteCommandRequest(m ExecuteCommandRequest) ([]byte, error) {
	w := wire.NewWriter()
	executeCommandRequestHeader.encode(w)
	w.WriteU16(m.PartitionID)
	w.WriteU64(m.Position)
	w.WriteU64(m.Key)
	w.WriteU8(uint8(m.EventType))
	if err := w.WriteString(m.TopicName); err != nil {
		return nil, fmt.Errorf("sbe: encode ExecuteCommandRequest: %w", err)
	}
	if err := w.WriteBytes(m.Command); err != nil {
		return nil, fmt.Errorf("sbe: encode ExecuteCommandRequest: %w", err)
	}
	return w.Bytes(), nil
}

func DecodeExecuteCommandRequest(b []byte) (ExecuteCommandRequest, error) {
	r := wire.NewReader(b)
	declared, err := expectHeader(r, executeCommandRequestHeader)
	if err != nil {
		return ExecuteCommandRequest{}, err
	}
	partitionID, err := r.ReadU16()
	if err != nil {
		return ExecuteCommandRequest{}, fmt.Errorf("sbe: decode ExecuteCommandRequest: %w", err)
	}
	position, err := r.ReadU64()
	if err != nil {
		return ExecuteCommandRequest{}, fmt.Errorf("sbe: decode ExecuteCommandRequest: %w", err)
	}
	key, err := r.ReadU64()
	if err != nil {
		return ExecuteCommandRequest{}, fmt.Errorf("sbe: decode ExecuteCommandRequest: %w", err)
	}
	eventType, err := r.ReadU8()
	if err != nil {
		return ExecuteCommandRequest{}, fmt.Errorf("sbe: decode ExecuteCommandRequest: %w", err)
	}
	if err := readBlockTail(r, declared, executeCommandRequestHeader.BlockLength); err != nil {
		return ExecuteCommandRequest{}, fmt.Errorf("sbe: decode ExecuteCommandRequest: %w", err)
	}
	topicName, err := r.ReadString()
	if err != nil {
		return ExecuteCommandRequest{}, fmt.Errorf("sbe: decode ExecuteCommandRequest: %w", err)
	}
	command, err := r.ReadBytes()
	if err != nil {
		return ExecuteCommandRequest{}, fmt.Errorf("sbe: decode ExecuteCommandRequest: %w", err)
	}
	return ExecuteCommandRequest{
		PartitionID: partitionID, Position: position, Key: key,
		EventType: EventType(eventType), TopicName: topicName, Command: command,
	}, nil
}

// --- ExecuteCommandResponse (template_id=21, schema_id=0) ---

var executeCommandResponseHeader = MessageHeader{BlockLength: 18, TemplateID: 21, SchemaID: 0, Version: 1}

type ExecuteCommandResponse struct {
	PartitionID uint16
	Position    uint64
	Key         uint64
	TopicName   string
	Event       []byte
}

func (m ExecuteCommandResponse) Header() MessageHeader { return executeCommandResponseHeader }

func EncodeExecuteCommandResponse(m ExecuteCommandResponse) ([]byte, error) {
	w := wire.NewWriter()
	executeCommandResponseHeader.encode(w)
	w.WriteU16(m.PartitionID)
	w.WriteU64(m.Position)
	w.WriteU64(m.Key)
	if err := w.WriteString(m.TopicName); err != nil {
		return nil, fmt.Errorf("sbe: encode ExecuteCommandResponse: %w", err)
	}
	if err := w.WriteBytes(m.Event); err != nil {
		return nil, fmt.Errorf("sbe: encode ExecuteCommandResponse: %w", err)
	}
	return w.Bytes(), nil
}

func DecodeExecuteCommandResponse(b []byte) (ExecuteCommandResponse, error) {
	r := wire.NewReader(b)
	declared, err := expectHeader(r, executeCommandResponseHeader)
	if err != nil {
		return ExecuteCommandResponse{}, err
	}
	partitionID, err := r.ReadU16()
	if err != nil {
		return ExecuteCommandResponse{}, fmt.Errorf("sbe: decode ExecuteCommandResponse: %w", err)
	}
	position, err := r.ReadU64()
	if err != nil {
		return ExecuteCommandResponse{}, fmt.Errorf("sbe: decode ExecuteCommandResponse: %w", err)
	}
	key, err := r.ReadU64()
	if err != nil {
		return ExecuteCommandResponse{}, fmt.Errorf("sbe: decode ExecuteCommandResponse: %w", err)
	}
	if err := readBlockTail(r, declared, executeCommandResponseHeader.BlockLength); err != nil {
		return ExecuteCommandResponse{}, fmt.Errorf("sbe: decode ExecuteCommandResponse: %w", err)
	}
	topicName, err := r.ReadString()
	if err != nil {
		return ExecuteCommandResponse{}, fmt.Errorf("sbe: decode ExecuteCommandResponse: %w", err)
	}
	event, err := r.ReadBytes()
	if err != nil {
		return ExecuteCommandResponse{}, fmt.Errorf("sbe: decode ExecuteCommandResponse: %w", err)
	}
	return ExecuteCommandResponse{
		PartitionID: partitionID, Position: position, Key: key,
		TopicName: topicName, Event: event,
	}, nil
}

// --- SubscribedEvent (template_id=30, schema_id=0) ---

var subscribedEventHeader = MessageHeader{BlockLength: 28, TemplateID: 30, SchemaID: 0, Version: 1}

type SubscribedEvent struct {
	PartitionID      uint16
	Position         uint64
	Key              uint64
	SubscriberKey    uint64
	SubscriptionType SubscriptionType
	EventType        EventType
	TopicName        string
	Event            []byte
}

func (m SubscribedEvent) Header() MessageHeader { return subscribedEventHeader }

func EncodeSubscribedEvent(m SubscribedEvent) ([]byte, error) {
	w := wire.NewWriter()
	subscribedEventHeader.encode(w)
	w.WriteU16(m.PartitionID)
	w.WriteU64(m.Position)
	w.WriteU64(m.Key)
	w.WriteU64(m.SubscriberKey)
	w.WriteU8(uint8(m.SubscriptionType))
	w.WriteU8(uint8(m.EventType))
	if err := w.WriteString(m.TopicName); err != nil {
		return nil, fmt.Errorf("sbe: encode SubscribedEvent: %w", err)
	}
	if err := w.WriteBytes(m.Event); err != nil {
		return nil, fmt.Errorf("sbe: encode SubscribedEvent: %w", err)
	}
	return w.Bytes(), nil
}

func DecodeSubscribedEvent(b []byte) (SubscribedEvent, error) {
	r := wire.NewReader(b)
	declared, err := expectHeader(r, subscribedEventHeader)
	if err != nil {
		return SubscribedEvent{}, err
	}
	partitionID, err := r.ReadU16()
	if err != nil {
		return SubscribedEvent{}, fmt.Errorf("sbe: decode SubscribedEvent: %w", err)
	}
	position, err := r.ReadU64()
	if err != nil {
		return SubscribedEvent{}, fmt.Errorf("sbe: decode SubscribedEvent: %w", err)
	}
	key, err := r.ReadU64()
	if err != nil {
		return SubscribedEvent{}, fmt.Errorf("sbe: decode SubscribedEvent: %w", err)
	}
	subscriberKey, err := r.ReadU64()
	if err != nil {
		return SubscribedEvent{}, fmt.Errorf("sbe: decode SubscribedEvent: %w", err)
	}
	subscriptionType, err := r.ReadU8()
	if err != nil {
		return SubscribedEvent{}, fmt.Errorf("sbe: decode SubscribedEvent: %w", err)
	}
	eventType, err := r.ReadU8()
	if err != nil {
		return SubscribedEvent{}, fmt.Errorf("sbe: decode SubscribedEvent: %w", err)
	}
	if err := readBlockTail(r, declared, subscribedEventHeader.BlockLength); err != nil {
		return SubscribedEvent{}, fmt.Errorf("sbe: decode SubscribedEvent: %w", err)
	}
	topicName, err := r.ReadString()
	if err != nil {
		return SubscribedEvent{}, fmt.Errorf("sbe: decode SubscribedEvent: %w", err)
	}
	event, err := r.ReadBytes()
	if err != nil {
		return SubscribedEvent{}, fmt.Errorf("sbe: decode SubscribedEvent: %w", err)
	}
	return SubscribedEvent{
		PartitionID: partitionID, Position: position, Key: key, SubscriberKey: subscriberKey,
		SubscriptionType: SubscriptionType(subscriptionType), EventType: EventType(eventType),
		TopicName: topicName, Event: event,
	}, nil
}

// --- AppendRequest (template_id=10, schema_id=4) ---

var appendRequestHeader = MessageHeader{BlockLength: 26, TemplateID: 10, SchemaID: 4, Version: 1}

type AppendRequest struct {
	PartitionID           uint16
	Term                  uint16
	PreviousEventPosition uint64
	PreviousEventTerm     int32
	CommitPosition        uint64
	Port                  uint16
	TopicName             string
	Host                  string
	Data                  []byte
}

func (m AppendRequest) Header() MessageHeader { return appendRequestHeader }

func EncodeAppendRequest(m AppendRequest) ([]byte, error) {
	w := wire.NewWriter()
	appendRequestHeader.encode(w)
	w.WriteU16(m.PartitionID)
	w.WriteU16(m.Term)
	w.WriteU64(m.PreviousEventPosition)
	w.WriteI32(m.PreviousEventTerm)
	w.WriteU64(m.CommitPosition)
	w.WriteU16(m.Port)
	if err := w.WriteString(m.TopicName); err != nil {
		return nil, fmt.Errorf("sbe: encode AppendRequest: %w", err)
	}
	if err := w.WriteString(m.Host); err != nil {
		return nil, fmt.Errorf("sbe: encode AppendRequest: %w", err)
	}
	if err := w.WriteBytes(m.Data); err != nil {
		return nil, fmt.Errorf("sbe: encode AppendRequest: %w", err)
	}
	return w.Bytes(), nil
}

func DecodeAppendRequest(b []byte) (AppendRequest, error) {
	r := wire.NewReader(b)
	declared, err := expectHeader(r, appendRequestHeader)
	if err != nil {
		return AppendRequest{}, err
	}
	partitionID, err := r.ReadU16()
	if err != nil {
		return AppendRequest{}, fmt.Errorf("sbe: decode AppendRequest: %w", err)
	}
	term, err := r.ReadU16()
	if err != nil {
		return AppendRequest{}, fmt.Errorf("sbe: decode AppendRequest: %w", err)
	}
	prevPos, err := r.ReadU64()
	if err != nil {
		return AppendRequest{}, fmt.Errorf("sbe: decode AppendRequest: %w", err)
	}
	prevTerm, err := r.ReadI32()
	if err != nil {
		return AppendRequest{}, fmt.Errorf("sbe: decode AppendRequest: %w", err)
	}
	commitPosition, err := r.ReadU64()
	if err != nil {
		return AppendRequest{}, fmt.Errorf("sbe: decode AppendRequest: %w", err)
	}
	port, err := r.ReadU16()
	if err != nil {
		return AppendRequest{}, fmt.Errorf("sbe: decode AppendRequest: %w", err)
	}
	if err := readBlockTail(r, declared, appendRequestHeader.BlockLength); err != nil {
		return AppendRequest{}, fmt.Errorf("sbe: decode AppendRequest: %w", err)
	}
	topicName, err := r.ReadString()
	if err != nil {
		return AppendRequest{}, fmt.Errorf("sbe: decode AppendRequest: %w", err)
	}
	host, err := r.ReadString()
	if err != nil {
		return AppendRequest{}, fmt.Errorf("sbe: decode AppendRequest: %w", err)
	}
	data, err := r.ReadBytes()
	if err != nil {
		return AppendRequest{}, fmt.Errorf("sbe: decode AppendRequest: %w", err)
	}
	return AppendRequest{
		PartitionID: partitionID, Term: term, PreviousEventPosition: prevPos, PreviousEventTerm: prevTerm,
		CommitPosition: commitPosition, Port: port, TopicName: topicName, Host: host, Data: data,
	}, nil
}

// --- BrokerEventMetadata (template_id=200, schema_id=0) ---

var brokerEventMetadataHeader = MessageHeader{BlockLength: 31, TemplateID: 200, SchemaID: 0, Version: 1}

type BrokerEventMetadata struct {
	RequestStreamID int32
	RequestID       uint64
	SubscriptionID  uint64
	ProtocolVersion uint16
	EventType       EventType
	IncidentKey     uint64
}

func (m BrokerEventMetadata) Header() MessageHeader { return brokerEventMetadataHeader }

func EncodeBrokerEventMetadata(m BrokerEventMetadata) []byte {
	w := wire.NewWriter()
	brokerEventMetadataHeader.encode(w)
	w.WriteI32(m.RequestStreamID)
	w.WriteU64(m.RequestID)
	w.WriteU64(m.SubscriptionID)
	w.WriteU16(m.ProtocolVersion)
	w.WriteU8(uint8(m.EventType))
	w.WriteU64(m.IncidentKey)
	return w.Bytes()
}

func DecodeBrokerEventMetadata(b []byte) (BrokerEventMetadata, error) {
	r := wire.NewReader(b)
	declared, err := expectHeader(r, brokerEventMetadataHeader)
	if err != nil {
		return BrokerEventMetadata{}, err
	}
	requestStreamID, err := r.ReadI32()
	if err != nil {
		return BrokerEventMetadata{}, fmt.Errorf("sbe: decode BrokerEventMetadata: %w", err)
	}
	requestID, err := r.ReadU64()
	if err != nil {
		return BrokerEventMetadata{}, fmt.Errorf("sbe: decode BrokerEventMetadata: %w", err)
	}
	subscriptionID, err := r.ReadU64()
	if err != nil {
		return BrokerEventMetadata{}, fmt.Errorf("sbe: decode BrokerEventMetadata: %w", err)
	}
	protocolVersion, err := r.ReadU16()
	if err != nil {
		return BrokerEventMetadata{}, fmt.Errorf("sbe: decode BrokerEventMetadata: %w", err)
	}
	eventType, err := r.ReadU8()
	if err != nil {
		return BrokerEventMetadata{}, fmt.Errorf("sbe: decode BrokerEventMetadata: %w", err)
	}
	incidentKey, err := r.ReadU64()
	if err != nil {
		return BrokerEventMetadata{}, fmt.Errorf("sbe: decode BrokerEventMetadata: %w", err)
	}
	if err := readBlockTail(r, declared, brokerEventMetadataHeader.BlockLength); err != nil {
		return BrokerEventMetadata{}, fmt.Errorf("sbe: decode BrokerEventMetadata: %w", err)
	}
	return BrokerEventMetadata{
		RequestStreamID: requestStreamID, RequestID: requestID, SubscriptionID: subscriptionID,
		ProtocolVersion: protocolVersion, EventType: EventType(eventType), IncidentKey: incidentKey,
	}, nil
}
