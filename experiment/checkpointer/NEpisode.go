package checkpointer

import "fmt"

// nEpisode implements checkpointing every N episodes
type nEpisode struct {
	interval int
	object   BinaryMarshaler

	// filename returns the name of the file to save the object in.
	// To save each checkpoint in a separate, numbered file use
	// FilenameEnumerator:
	//
	// n := NewNEpisode(10, weights, FilenameEnumerator(0, "w", ".bin"))
	filename func() string
}

// BinaryMarshaler is an object which can be checkpointed, such as the
// *mat.Dense weights of a value function
type BinaryMarshaler interface {
	MarshalBinary() ([]byte, error)
}

// NewNEpisode returns a checkpointer that checkpoints object every n
// episodes
func NewNEpisode(n int, object BinaryMarshaler,
	filename func() string) Checkpointer {
	if n <= 0 {
		panic(fmt.Sprintf("newNEpisode: interval must be positive, got %d",
			n))
	}
	return &nEpisode{
		interval: n,
		object:   object,
		filename: filename,
	}
}

// Checkpoint implements the Checkpointer interface
func (n *nEpisode) Checkpoint(episode int) error {
	if episode%n.interval == 0 {
		return save(n.object, n.filename())
	}
	return nil
}
