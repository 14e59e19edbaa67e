package queue

// Queue is a FIFO shared between producer goroutines (network handlers,
// AI agents, the HTTP API) and the single consumer that drains it once per tick.
type Queue interface {
	Enqueue(item interface{}) error
	Dequeue() (interface{}, error)
	Size() int
	ReadAllMessages() ([]interface{}, error)
	ClearQueue() error
}
