package server

import (
	"fmt"
	"sync"
	"time"
)

// maxConsoleMessages bounds the per-render message log
const maxConsoleMessages = 200

// ConsoleMessage represents a console message with timestamp
type ConsoleMessage struct {
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	Level     string    `json:"level"` // "info", "warning", "error"
}

// Console keeps the most recent messages of one render, oldest first
type Console struct {
	mu       sync.Mutex
	messages []ConsoleMessage
}

// Printf records an info message and mirrors it to the server log
func (c *Console) Printf(format string, args ...interface{}) {
	c.add("info", fmt.Sprintf(format, args...))
}

// Errorf records an error message and mirrors it to the server log
func (c *Console) Errorf(format string, args ...interface{}) {
	c.add("error", fmt.Sprintf(format, args...))
}

func (c *Console) add(level, message string) {
	if level == "error" {
		logger.Error(message)
	} else {
		logger.Info(message)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.messages = append(c.messages, ConsoleMessage{Message: message, Timestamp: time.Now(), Level: level})
	if n := len(c.messages); n > maxConsoleMessages {
		c.messages = append(c.messages[:0], c.messages[n-maxConsoleMessages:]...)
	}
}

// Messages returns a copy of the recorded messages
func (c *Console) Messages() []ConsoleMessage {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]ConsoleMessage(nil), c.messages...)
}
