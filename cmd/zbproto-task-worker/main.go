// Command zbproto-task-worker subscribes to a task type and completes every
// task the broker pushes to it, refilling its subscription credits once
// they run out.
package main

import (
	"flag"
	"fmt"
	"log"
	"net"
	"os"

	"github.com/taskbroker/zbproto"
	"github.com/taskbroker/zbproto/payload"
	"github.com/taskbroker/zbproto/sbe"
	"github.com/taskbroker/zbproto/transport"
)

const initialCredits = 32

func main() {
	fs := flag.NewFlagSet("zbproto-task-worker", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "zbproto-task-worker — complete tasks pushed by a broker subscription\n\nUsage:\n  zbproto-task-worker [flags] [task-type] [lock-owner] [broker-address]\n\nFlags:\n")
		fs.PrintDefaults()
	}
	lockDuration := fs.Uint64("lock-duration-ms", 1000, "lock duration in milliseconds")
	_ = fs.Parse(os.Args[1:])

	taskType := "foo"
	lockOwner := "unterflow"
	addr := "localhost:51015"
	switch fs.NArg() {
	case 3:
		addr = fs.Arg(2)
		fallthrough
	case 2:
		lockOwner = fs.Arg(1)
		fallthrough
	case 1:
		taskType = fs.Arg(0)
	}

	if err := run(addr, taskType, lockOwner, *lockDuration); err != nil {
		log.Fatal(err)
	}
}

func run(addr, taskType, lockOwner string, lockDuration uint64) error {
	conn, err := net.Dial("tcp", addr)
	if err != nil {
		return fmt.Errorf("connect to broker %s: %w", addr, err)
	}
	defer func() { _ = conn.Close() }()
	log.Printf("connected to broker %s", addr)

	requestID := uint64(1)
	credits := uint32(initialCredits)

	sub := payload.TaskSubscription{
		TopicName:    "default-topic",
		PartitionID:  0,
		TaskType:     taskType,
		LockOwner:    lockOwner,
		LockDuration: lockDuration,
		Credits:      credits,
	}

	req, err := zbproto.OpenTaskSubscription(requestID, sub)
	if err != nil {
		return fmt.Errorf("build task subscription: %w", err)
	}
	if _, err := conn.Write(req); err != nil {
		return fmt.Errorf("send task subscription: %w", err)
	}

	for {
		wireBytes, err := zbproto.ReadMessage(conn)
		if err != nil {
			return fmt.Errorf("read message: %w", err)
		}

		env, _, err := transport.ReadEnvelope(wireBytes)
		if err != nil {
			log.Printf("decode envelope: %v", err)
			continue
		}

		switch env.Protocol {
		case transport.ProtocolFullDuplexSingleMessage:
			pushed, err := sbe.DecodeSubscribedEvent(env.Body)
			if err != nil {
				log.Printf("decode subscribed event: %v", err)
				continue
			}
			event, err := payload.DecodeTaskEvent(pushed.Event)
			if err != nil {
				log.Printf("decode task event: %v", err)
				continue
			}
			credits--
			log.Printf("event %+v", event)

			requestID++
			complete, err := zbproto.CompleteTask(requestID, pushed, event)
			if err != nil {
				return fmt.Errorf("build complete-task request: %w", err)
			}
			if _, err := conn.Write(complete); err != nil {
				return fmt.Errorf("send complete-task request: %w", err)
			}

			if credits == 0 {
				credits = initialCredits
				sub.Credits = credits
				requestID++
				refill, err := zbproto.IncreaseTaskSubscriptionCredits(requestID, sub)
				if err != nil {
					return fmt.Errorf("build credit refill: %w", err)
				}
				if _, err := conn.Write(refill); err != nil {
					return fmt.Errorf("send credit refill: %w", err)
				}
			}

		case transport.ProtocolRequestResponse:
			if h, err := sbe.PeekHeader(env.Body); err == nil && h.TemplateID == 21 {
				resp, err := sbe.DecodeExecuteCommandResponse(env.Body)
				if err != nil {
					log.Printf("decode execute command response: %v", err)
					continue
				}
				event, err := payload.DecodeTaskEvent(resp.Event)
				if err != nil {
					log.Printf("decode task event: %v", err)
					continue
				}
				log.Printf("event %+v", event)
				continue
			}
			ctrl, err := sbe.DecodeControlMessageResponse(env.Body)
			if err != nil {
				log.Printf("decode control message response: %v", err)
				continue
			}
			resp, err := payload.DecodeTaskSubscription(ctrl.Data)
			if err != nil {
				log.Printf("decode task subscription: %v", err)
				continue
			}
			log.Printf("subscription %+v", resp)
			sub.SubscriberKey = resp.SubscriberKey

		default:
			log.Printf("unsupported protocol %s", env.Protocol)
		}
	}
}
