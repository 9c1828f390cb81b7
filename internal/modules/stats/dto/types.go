package dto

// EmptyPlaceholder replaces the subject bars when nothing has been logged.
const EmptyPlaceholder = "No data to display."

type SubjectOutput struct {
	Subject     string
	Seconds     int
	Hours       string
	Percent     float64
	PercentText string
}

type SummaryOutput struct {
	SelfSeconds  int
	CoachSeconds int
	TotalSeconds int
	SelfHours    string
	CoachHours   string
	TotalHours   string
	GoalHours    int
	GoalPercent  float64
	Subjects     []SubjectOutput
	Empty        bool
}
