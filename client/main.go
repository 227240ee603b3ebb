package main

import (
	"bufio"
	"encoding/json"
	"net/url"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"github.com/wfunc/roomserver/logger"
)

// A small interactive client for poking at the room server:
//   join <name>      join the room
//   hug              hug the other player
//   sit / stand      use the bench
//   reset            teleport back to spawn
//   <dir>            hold a direction for one second (up/down/left/right)

func send(c *websocket.Conn, msg map[string]interface{}) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	return c.WriteMessage(websocket.TextMessage, data)
}

func main() {
	logger.InitDevelopment()
	defer logger.Sync()

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)
	u := url.URL{Scheme: "ws", Host: "localhost:8080", Path: "/ws"}
	logger.Log.Infof("Connecting to %s", u.String())

	c, _, err := websocket.DefaultDialer.Dial(u.String(), nil)
	if err != nil {
		logger.Log.Fatalf("Dial failed: %v", err)
	}
	defer c.Close()

	done := make(chan struct{})

	// Read loop
	go func() {
		defer close(done)
		for {
			_, message, err := c.ReadMessage()
			if err != nil {
				logger.Log.Infof("Read error: %v", err)
				return
			}
			var env struct {
				Type string `json:"type"`
			}
			if err := json.Unmarshal(message, &env); err != nil {
				logger.Log.Infof("Bad frame: %s", message)
				continue
			}
			// State updates arrive 20 times a second; keep the output readable.
			if env.Type == "state_update" {
				continue
			}
			logger.Log.Infof("<- %s", message)
		}
	}()

	var seq uint64

	go func() {
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			fields := strings.Fields(scanner.Text())
			if len(fields) == 0 {
				continue
			}

			switch fields[0] {
			case "join":
				name := "guest"
				if len(fields) > 1 {
					name = fields[1]
				}
				send(c, map[string]interface{}{"type": "join", "name": name, "character": "blue"})
			case "hug":
				send(c, map[string]interface{}{"type": "hug"})
			case "sit":
				send(c, map[string]interface{}{"type": "bench_sit"})
			case "stand":
				send(c, map[string]interface{}{"type": "bench_stand"})
			case "reset":
				send(c, map[string]interface{}{"type": "reset_position"})
			case "up", "down", "left", "right":
				// Hold the key for a second, then release.
				for i := 0; i < 20; i++ {
					seq++
					send(c, map[string]interface{}{
						"type":      "input",
						"keys":      map[string]bool{fields[0]: true},
						"seq":       seq,
						"timestamp": time.Now().UnixMilli(),
					})
					time.Sleep(50 * time.Millisecond)
				}
				seq++
				send(c, map[string]interface{}{
					"type":      "input",
					"keys":      map[string]bool{},
					"seq":       seq,
					"timestamp": time.Now().UnixMilli(),
				})
			default:
				logger.Log.Infof("Unknown command %q", fields[0])
			}
		}
	}()

	select {
	case <-done:
	case <-interrupt:
		logger.Log.Info("Interrupted, closing connection")
		c.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
		select {
		case <-done:
		case <-time.After(time.Second):
		}
	}
}
