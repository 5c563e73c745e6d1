package progress

// Reporter observes the fetch pipeline. Tick is called once per
// admitted entry, SetMessage with a short label of the entry being fetched.
// Implementations must be safe for concurrent use.
type Reporter interface {
	Tick()
	SetMessage(msg string)
}

// Nop discards every event.
type Nop struct{}

func (Nop) Tick() {}

func (Nop) SetMessage(string) {}
