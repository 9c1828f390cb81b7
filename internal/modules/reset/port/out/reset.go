package out

import "context"

type Clearer interface {
	Clear(ctx context.Context) error
}

// Target names a Clearer so failures can say what was left behind.
type Target struct {
	Name    string
	Clearer Clearer
}
