package extract

// Stage proposes one candidate value for an attribute.
type Stage func(text string) (string, bool)

// Chain runs stages in order and keeps the first candidate Reject allows.
type Chain struct {
	Stages []Stage
	Reject func(candidate string) bool
}

// Run returns the first accepted candidate, or nil when every stage fails.
func (c Chain) Run(text string) *string {
	for _, stage := range c.Stages {
		v, ok := stage(text)
		if !ok || v == "" {
			continue
		}
		if c.Reject != nil && c.Reject(v) {
			continue
		}
		return &v
	}
	return nil
}
