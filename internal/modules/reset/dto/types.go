package dto

type ClearOutput struct {
	Cleared bool
	Targets []string
}
