package zbproto_test

import (
	"bytes"
	"testing"

	zbproto "github.com/taskbroker/zbproto"
	"github.com/taskbroker/zbproto/payload"
	"github.com/taskbroker/zbproto/sbe"
	"github.com/taskbroker/zbproto/transport"
)

func TestTopologyRequestGoldenVector(t *testing.T) {
	t.Parallel()

	wireBytes, err := zbproto.TopologyRequest(1)
	if err != nil {
		t.Fatal(err)
	}

	// frame header (12 bytes) + transport header (protocol=0, request_id=1,
	// 10 bytes) + the sbe ControlMessageRequest golden vector.
	sbeBytes := []byte{
		3, 0, 10, 0, 0, 0, 1, 0,
		4, 255, 255,
		1, 0, 0x80,
	}
	innerLen := 2 + 8 + len(sbeBytes)
	if int(uint32(len(wireBytes))) < innerLen {
		t.Fatalf("wireBytes too short: %d", len(wireBytes))
	}
	if !bytes.Contains(wireBytes, sbeBytes) {
		t.Fatalf("wireBytes does not contain the expected ControlMessageRequest bytes")
	}
}

func TestCreateTaskBuilderRoundTrip(t *testing.T) {
	t.Parallel()

	builder := zbproto.NewCreateTaskBuilder("payment-collection").LockOwner("worker-1").CustomHeader("priority", "high")
	wireBytes, err := builder.Build(1)
	if err != nil {
		t.Fatal(err)
	}

	req, err := readExecuteCommandRequest(t, wireBytes)
	if err != nil {
		t.Fatal(err)
	}
	task, err := payload.DecodeTaskEvent(req.Command)
	if err != nil {
		t.Fatal(err)
	}
	if task.State != "CREATE" || task.Type != "payment-collection" || task.Retries != 3 ||
		task.LockOwner != "worker-1" || task.CustomHeaders["priority"] != "high" {
		t.Fatalf("got %+v", task)
	}
}

func TestCompleteTaskRoundTrip(t *testing.T) {
	t.Parallel()

	subscribed := sbe.SubscribedEvent{
		PartitionID:   0,
		Position:      42,
		Key:           7,
		SubscriberKey: 1,
		TopicName:     "default-topic",
	}
	task := payload.NewTaskEvent()
	task.Type = "payment-collection"
	task.LockOwner = "worker-1"

	wireBytes, err := zbproto.CompleteTask(2, subscribed, task)
	if err != nil {
		t.Fatal(err)
	}

	req, err := readExecuteCommandRequest(t, wireBytes)
	if err != nil {
		t.Fatal(err)
	}
	if req.Position != 42 || req.Key != 7 || req.TopicName != "default-topic" {
		t.Fatalf("got %+v", req)
	}
	out, err := payload.DecodeTaskEvent(req.Command)
	if err != nil {
		t.Fatal(err)
	}
	if out.State != "COMPLETE" {
		t.Fatalf("State = %q, want COMPLETE", out.State)
	}
}

func TestAppendRequestRoundTrip(t *testing.T) {
	t.Parallel()

	in := sbe.AppendRequest{
		PartitionID: 0,
		Term:        1,
		TopicName:   "default",
		Host:        "localhost",
		Port:        8001,
		Data:        []byte{1, 2, 3},
	}
	wireBytes, err := zbproto.AppendRequest(3, in)
	if err != nil {
		t.Fatal(err)
	}
	out, err := zbproto.ReadAppendRequest(wireBytes)
	if err != nil {
		t.Fatal(err)
	}
	if out.TopicName != in.TopicName || out.Host != in.Host || !bytes.Equal(out.Data, in.Data) {
		t.Fatalf("got %+v, want %+v", out, in)
	}
}

func readExecuteCommandRequest(t *testing.T, wireBytes []byte) (sbe.ExecuteCommandRequest, error) {
	t.Helper()
	env, _, err := transport.ReadEnvelope(wireBytes)
	if err != nil {
		return sbe.ExecuteCommandRequest{}, err
	}
	return sbe.DecodeExecuteCommandRequest(env.Body)
}
