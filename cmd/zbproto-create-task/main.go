// Command zbproto-create-task creates a single task on a broker and prints
// the event it responds with.
package main

import (
	"flag"
	"fmt"
	"log"
	"net"
	"os"

	"github.com/taskbroker/zbproto"
)

func main() {
	fs := flag.NewFlagSet("zbproto-create-task", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "zbproto-create-task — create a task on a broker\n\nUsage:\n  zbproto-create-task [flags] [broker-address]\n\nFlags:\n")
		fs.PrintDefaults()
	}
	taskType := fs.String("type", "foo", "task type")
	lockOwner := fs.String("lock-owner", "zbproto-create-task", "lock owner recorded on the task")
	retries := fs.Int("retries", 3, "retry count")
	requestID := fs.Uint64("request-id", 1, "request id to correlate the response")
	_ = fs.Parse(os.Args[1:])

	addr := "localhost:51015"
	if fs.NArg() > 0 {
		addr = fs.Arg(0)
	}

	if err := run(addr, *taskType, *lockOwner, int32(*retries), *requestID); err != nil {
		log.Fatal(err)
	}
}

func run(addr, taskType, lockOwner string, retries int32, requestID uint64) error {
	conn, err := net.Dial("tcp", addr)
	if err != nil {
		return fmt.Errorf("connect to broker %s: %w", addr, err)
	}
	defer func() { _ = conn.Close() }()
	log.Printf("connected to broker %s", addr)

	req, err := zbproto.NewCreateTaskBuilder(taskType).
		LockOwner(lockOwner).
		Retries(retries).
		Build(requestID)
	if err != nil {
		return fmt.Errorf("build create-task request: %w", err)
	}
	if _, err := conn.Write(req); err != nil {
		return fmt.Errorf("send create-task request: %w", err)
	}

	wireBytes, err := zbproto.ReadMessage(conn)
	if err != nil {
		return fmt.Errorf("read create-task response: %w", err)
	}
	task, err := zbproto.ReadTaskResponse(wireBytes)
	if err != nil {
		return fmt.Errorf("decode create-task response: %w", err)
	}

	fmt.Printf("%+v\n", task)
	return nil
}
