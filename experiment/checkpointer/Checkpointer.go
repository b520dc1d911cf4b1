// Package checkpointer implements Checkpointers, which periodically
// save objects such as the weights of a value function during an
// experiment
package checkpointer

import (
	"fmt"
	"os"
)

// Checkpointer checkpoints objects at the end of episodes
type Checkpointer interface {
	// Checkpoint is called with the number of episodes finished so
	// far
	Checkpoint(episode int) error
}

// save writes the binary encoding of object to filename
func save(object BinaryMarshaler, filename string) error {
	data, err := object.MarshalBinary()
	if err != nil {
		return fmt.Errorf("save: could not encode object: %v", err)
	}
	if err := os.WriteFile(filename, data, 0o644); err != nil {
		return fmt.Errorf("save: could not write file: %v", err)
	}
	return nil
}
