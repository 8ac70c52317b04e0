package sbe_test

import (
	"bytes"
	"testing"

	"github.com/taskbroker/zbproto/sbe"
)

func TestControlMessageRequestRoundTrip(t *testing.T) {
	t.Parallel()

	in := sbe.ControlMessageRequest{
		MessageType: sbe.ControlRequestTopology,
		PartitionID: sbe.ANYPartition,
		Data:        []byte{0x80},
	}
	b, err := sbe.EncodeControlMessageRequest(in)
	if err != nil {
		t.Fatal(err)
	}
	out, err := sbe.DecodeControlMessageRequest(b)
	if err != nil {
		t.Fatal(err)
	}
	if out.MessageType != in.MessageType || out.PartitionID != in.PartitionID || !bytes.Equal(out.Data, in.Data) {
		t.Fatalf("got %+v, want %+v", out, in)
	}
}

func TestTopologyRequestGoldenVector(t *testing.T) {
	t.Parallel()

	in := sbe.ControlMessageRequest{
		MessageType: sbe.ControlRequestTopology,
		PartitionID: sbe.ANYPartition,
		Data:        []byte{0x80},
	}
	b, err := sbe.EncodeControlMessageRequest(in)
	if err != nil {
		t.Fatal(err)
	}
	want := []byte{
		3, 0, 10, 0, 0, 0, 1, 0, // MessageHeader: block_length=3, template_id=10, schema_id=0, version=1
		4, 255, 255, // message_type=RequestTopology(4), partition_id=0xFFFF
		1, 0, 0x80, // data: length=1, byte 0x80
	}
	if !bytes.Equal(b, want) {
		t.Fatalf("bytes = %v, want %v", b, want)
	}
}

func TestExecuteCommandRequestRoundTrip(t *testing.T) {
	t.Parallel()

	in := sbe.ExecuteCommandRequest{
		PartitionID: 0,
		Position:    0,
		Key:         0,
		EventType:   sbe.EventTask,
		TopicName:   "default_topic",
		Command:     []byte{1, 2, 3},
	}
	b, err := sbe.EncodeExecuteCommandRequest(in)
	if err != nil {
		t.Fatal(err)
	}
	out, err := sbe.DecodeExecuteCommandRequest(b)
	if err != nil {
		t.Fatal(err)
	}
	if out.TopicName != in.TopicName || !bytes.Equal(out.Command, in.Command) || out.EventType != in.EventType {
		t.Fatalf("got %+v, want %+v", out, in)
	}
}

func TestSubscribedEventRoundTrip(t *testing.T) {
	t.Parallel()

	in := sbe.SubscribedEvent{
		PartitionID:      1,
		Position:         100,
		Key:              200,
		SubscriberKey:    300,
		SubscriptionType: sbe.SubscriptionTask,
		EventType:        sbe.EventTask,
		TopicName:        "default-topic",
		Event:            []byte{0xc0},
	}
	b, err := sbe.EncodeSubscribedEvent(in)
	if err != nil {
		t.Fatal(err)
	}
	out, err := sbe.DecodeSubscribedEvent(b)
	if err != nil {
		t.Fatal(err)
	}
	if out.PartitionID != in.PartitionID || out.Position != in.Position || out.Key != in.Key ||
		out.SubscriberKey != in.SubscriberKey || out.SubscriptionType != in.SubscriptionType ||
		out.EventType != in.EventType || out.TopicName != in.TopicName || !bytes.Equal(out.Event, in.Event) {
		t.Fatalf("got %+v, want %+v", out, in)
	}
}

func TestAppendRequestRoundTrip(t *testing.T) {
	t.Parallel()

	in := sbe.AppendRequest{
		PartitionID:           0,
		Term:                  1,
		PreviousEventPosition: 4_294_967_296,
		PreviousEventTerm:     0,
		CommitPosition:        4_294_967_392,
		Port:                  8001,
		TopicName:             "default",
		Host:                  "localhost",
		Data:                  bytes.Repeat([]byte{0x7a}, 141),
	}
	b, err := sbe.EncodeAppendRequest(in)
	if err != nil {
		t.Fatal(err)
	}
	out, err := sbe.DecodeAppendRequest(b)
	if err != nil {
		t.Fatal(err)
	}
	if out.TopicName != in.TopicName || out.Host != in.Host || out.Port != in.Port ||
		out.PreviousEventPosition != in.PreviousEventPosition || out.CommitPosition != in.CommitPosition ||
		!bytes.Equal(out.Data, in.Data) {
		t.Fatalf("got %+v, want %+v", out, in)
	}
}

func TestDecodeUnsupportedMessage(t *testing.T) {
	t.Parallel()

	// Bytes that look like a ControlMessageRequest header but are fed to the
	// ExecuteCommandRequest decoder.
	b, err := sbe.EncodeControlMessageRequest(sbe.ControlMessageRequest{MessageType: sbe.ControlRequestTopology})
	if err != nil {
		t.Fatal(err)
	}
	_, err = sbe.DecodeExecuteCommandRequest(b)
	if err == nil {
		t.Fatal("expected UnsupportedMessage error")
	}
}

func TestErrorResponseRoundTrip(t *testing.T) {
	t.Parallel()

	in := sbe.ErrorResponse{
		Code:          sbe.ErrorPartitionNotFound,
		ErrorData:     []byte("Cannot execute command. Topic with name 'default-toic' and partition id '0' not found"),
		FailedRequest: bytes.Repeat([]byte{0x11}, 248),
	}
	b, err := sbe.EncodeErrorResponse(in)
	if err != nil {
		t.Fatal(err)
	}
	out, err := sbe.DecodeErrorResponse(b)
	if err != nil {
		t.Fatal(err)
	}
	if out.Code != in.Code || !bytes.Equal(out.ErrorData, in.ErrorData) || len(out.FailedRequest) != 248 {
		t.Fatalf("got %+v", out)
	}
}

func TestBrokerEventMetadataRoundTrip(t *testing.T) {
	t.Parallel()

	in := sbe.BrokerEventMetadata{
		RequestStreamID: -1,
		RequestID:       1,
		SubscriptionID:  2,
		ProtocolVersion: 1,
		EventType:       sbe.EventTask,
		IncidentKey:     0,
	}
	b := sbe.EncodeBrokerEventMetadata(in)
	out, err := sbe.DecodeBrokerEventMetadata(b)
	if err != nil {
		t.Fatal(err)
	}
	if out != in {
		t.Fatalf("got %+v, want %+v", out, in)
	}
}
