package phrase

import "fmt"

// Rand is the random source used for every draw the bot makes.
// *math/rand/v2.Rand satisfies it.
type Rand interface {
	IntN(n int) int
}

// Counter tracks messages seen since the last injection and the threshold
// at which the next one fires.
type Counter struct {
	min, max    int
	count, next int
	rnd         Rand
}

// NewCounter returns a counter with a freshly drawn threshold.
func NewCounter(minMessages, maxMessages int, rnd Rand) (*Counter, error) {
	if minMessages < 0 || maxMessages < minMessages {
		return nil, fmt.Errorf("invalid trigger bounds [%d, %d]", minMessages, maxMessages)
	}
	if rnd == nil {
		return nil, fmt.Errorf("random source cannot be nil")
	}
	c := &Counter{min: minMessages, max: maxMessages, rnd: rnd}
	c.next = c.draw()
	return c, nil
}

// Observe counts one message. It reports true when the threshold has been
// reached; the counter is then reset and a new threshold drawn.
func (c *Counter) Observe() bool {
	c.count++
	if c.count < c.next {
		return false
	}
	c.count = 0
	c.next = c.draw()
	return true
}

// Count returns the messages seen since the last injection.
func (c *Counter) Count() int { return c.count }

// Next returns the current threshold.
func (c *Counter) Next() int { return c.next }

// Remaining returns how many more messages until the threshold.
func (c *Counter) Remaining() int { return c.next - c.count }

// draw picks uniformly from [min, max] inclusive.
func (c *Counter) draw() int {
	return c.min + c.rnd.IntN(c.max-c.min+1)
}
