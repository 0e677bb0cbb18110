package daemontest

import (
	"fmt"
	"time"

	"github.com/orgb-protocol/orgb-go/pkg/transport"
	"github.com/orgb-protocol/orgb-go/pkg/wire"
)

// Command records one state-changing request received by the daemon.
type Command struct {
	// ConnID identifies the connection the command arrived on.
	ConnID string

	// Type is the wire tag of the command.
	Type wire.MessageType

	// Message is the decoded request. Assert on concrete fields by
	// type-asserting to the matching pkg/wire struct.
	Message wire.Message
}

func (d *Daemon) record(conn *transport.ServerConn, msg wire.Message) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.commands = append(d.commands, Command{
		ConnID:  conn.ConnID(),
		Type:    msg.Type(),
		Message: msg,
	})
}

// Commands returns all recorded commands in arrival order.
func (d *Daemon) Commands() []Command {
	d.mu.RLock()
	defer d.mu.RUnlock()
	result := make([]Command, len(d.commands))
	copy(result, d.commands)
	return result
}

// CommandsOfType returns recorded commands with the given tag.
func (d *Daemon) CommandsOfType(t wire.MessageType) []Command {
	d.mu.RLock()
	defer d.mu.RUnlock()
	var result []Command
	for _, c := range d.commands {
		if c.Type == t {
			result = append(result, c)
		}
	}
	return result
}

// ClearCommands discards all recorded commands.
func (d *Daemon) ClearCommands() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.commands = d.commands[:0]
}

// WaitForCommands blocks until at least count commands have been
// recorded, then returns them. Commands carry no reply on the wire, so
// tests must wait for the daemon to observe them before asserting.
func (d *Daemon) WaitForCommands(count int, timeout time.Duration) ([]Command, error) {
	deadline := time.Now().Add(timeout)
	for {
		commands := d.Commands()
		if len(commands) >= count {
			return commands, nil
		}
		if time.Now().After(deadline) {
			return commands, fmt.Errorf("got %d of %d commands after %v", len(commands), count, timeout)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

// WaitForClientName blocks until some connection has announced the
// given name. SetClientName carries no reply, so tests must wait for
// the daemon to observe it.
func (d *Daemon) WaitForClientName(name string, timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	for {
		for _, announced := range d.ClientNames() {
			if announced == name {
				return nil
			}
		}
		if time.Now().After(deadline) {
			return fmt.Errorf("no client announced %q after %v", name, timeout)
		}
		time.Sleep(5 * time.Millisecond)
	}
}
