package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net"
	"os"
	"time"

	"bazarbot/internal/feed"
)

func main() {
	addr := flag.String("addr", "127.0.0.1:7071", "TCP feed server address")
	raw := flag.Bool("raw", false, "print raw JSON lines instead of summaries")
	flag.Parse()

	for {
		if err := run(*addr, *raw); err != nil {
			log.Printf("[feed-client] disconnected: %v", err)
		}
		time.Sleep(1 * time.Second) // auto reconnect
	}
}

func run(addr string, raw bool) error {
	conn, err := net.Dial("tcp", addr)
	if err != nil {
		return fmt.Errorf("dial %s: %w", addr, err)
	}
	defer conn.Close()

	log.Printf("[feed-client] connected to %s", addr)

	sc := bufio.NewScanner(conn)
	for sc.Scan() {
		line := sc.Bytes()
		if raw {
			fmt.Println(string(line))
			continue
		}
		fmt.Println(summarize(line))
	}
	if err := sc.Err(); err != nil {
		return err
	}
	return os.ErrClosed
}

// summarize renders listing.created events as one readable line; anything
// else (welcome messages, future event types) passes through raw.
func summarize(line []byte) string {
	var ev feed.ListingEvent
	if err := json.Unmarshal(line, &ev); err != nil || ev.Type != feed.ListingCreatedType {
		return string(line)
	}

	l := ev.Listing
	withPhoto := ""
	if l.Image != nil {
		withPhoto = " [photo]"
	}
	return fmt.Sprintf("%s  %s — %s, %.0f som%s",
		ev.At.Format("15:04:05"), l.Title, l.Category, l.Price, withPhoto)
}
