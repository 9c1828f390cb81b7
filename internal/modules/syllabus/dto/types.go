package dto

type ItemOutput struct {
	ID   string
	Text string
	Done bool
}

type AddOutput struct {
	Created bool
	Item    ItemOutput
}

type ChangeOutput struct {
	Found bool
	Item  ItemOutput
}

type ListOutput struct {
	Items     []ItemOutput
	Completed int
	Total     int
	Percent   int
}
