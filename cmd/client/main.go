// Command client is a terminal test client for the reservation server. It
// speaks the framed, encrypted wire protocol and exercises the account and
// reservation actions interactively.
package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"

	"parkscout/internal/config"
	"parkscout/internal/wire"
)

// client owns a single connection to the server. The handle is explicit:
// callers see the dial, the reuse, and the reconnect, instead of a hidden
// process-wide socket.
type client struct {
	addr  string
	codec *wire.Codec
	conn  net.Conn
}

func (c *client) connect() error {
	if c.conn != nil {
		return nil
	}
	conn, err := net.Dial("tcp", c.addr)
	if err != nil {
		return err
	}
	c.conn = conn
	return nil
}

// Reconnect drops the current connection so the next request dials fresh.
func (c *client) Reconnect() {
	if c.conn != nil {
		_ = c.conn.Close()
		c.conn = nil
	}
}

func (c *client) Close() {
	c.Reconnect()
}

// do sends one request envelope and waits for the response. A transport
// failure resets the connection so the next call redials.
func (c *client) do(req map[string]any) (map[string]any, error) {
	if err := c.connect(); err != nil {
		return nil, err
	}
	payload, err := c.codec.Encode(req)
	if err != nil {
		return nil, err
	}
	if err := wire.WriteFrame(c.conn, payload); err != nil {
		c.Reconnect()
		return nil, err
	}
	frame, err := wire.ReadFrame(c.conn)
	if err != nil {
		c.Reconnect()
		return nil, err
	}
	plain, err := c.codec.Decode(frame)
	if err != nil {
		c.Reconnect()
		return nil, err
	}
	var resp map[string]any
	if err := json.Unmarshal(plain, &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

func main() {
	addr := flag.String("addr", "127.0.0.1:65432", "server address")
	flag.Parse()

	cfg, err := config.LoadWithDefaults("")
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}
	cipher, err := wire.NewCipher([]byte(cfg.Wire.Key), []byte(cfg.Wire.Nonce))
	if err != nil {
		fmt.Fprintln(os.Stderr, "cipher:", err)
		os.Exit(1)
	}

	c := &client{addr: *addr, codec: wire.NewCodec(cipher)}
	defer c.Close()

	in := bufio.NewScanner(os.Stdin)
	var userID int64

	for {
		fmt.Println("\n1) register  2) login  3) spots  4) reserve  5) history  6) quit")
		fmt.Print("> ")
		if !in.Scan() {
			return
		}
		switch strings.TrimSpace(in.Text()) {
		case "1":
			u, p := prompt(in, "username"), prompt(in, "password")
			show(c.do(map[string]any{"action": "register", "username": u, "password": p}))
		case "2":
			u, p := prompt(in, "username"), prompt(in, "password")
			resp, err := c.do(map[string]any{"action": "login", "username": u, "password": p})
			show(resp, err)
			if err == nil && resp["status"] == "success" {
				if id, ok := resp["user_id"].(float64); ok {
					userID = int64(id)
				}
			}
		case "3":
			resp, err := c.do(map[string]any{"action": "get_parking_spots"})
			if err != nil || resp["status"] != "success" {
				show(resp, err)
				continue
			}
			spots, _ := resp["spots"].([]any)
			for _, s := range spots {
				m, _ := s.(map[string]any)
				fmt.Printf("  spot %v: %v\n", m["id"], m["status"])
			}
		case "4":
			if userID == 0 {
				fmt.Println("login first")
				continue
			}
			id, err := strconv.ParseInt(prompt(in, "spot id"), 10, 64)
			if err != nil {
				fmt.Println("bad spot id")
				continue
			}
			show(c.do(map[string]any{"action": "reserve_spot", "user_id": userID, "spot_id": id}))
		case "5":
			if userID == 0 {
				fmt.Println("login first")
				continue
			}
			resp, err := c.do(map[string]any{"action": "get_parking_history", "user_id": userID})
			if err != nil || resp["status"] != "success" {
				show(resp, err)
				continue
			}
			entries, _ := resp["history"].([]any)
			for _, e := range entries {
				m, _ := e.(map[string]any)
				fmt.Printf("  %v %v (spot %v)\n", m["parking_date"], m["parking_time"], m["spot_id"])
			}
		case "6", "q", "quit":
			return
		default:
			fmt.Println("unknown choice")
		}
	}
}

func prompt(in *bufio.Scanner, label string) string {
	fmt.Printf("%s: ", label)
	if !in.Scan() {
		return ""
	}
	return strings.TrimSpace(in.Text())
}

func show(resp map[string]any, err error) {
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	if msg, ok := resp["message"].(string); ok {
		fmt.Println(msg)
		return
	}
	fmt.Printf("%v\n", resp)
}
