package mcp

import "github.com/mark3labs/mcp-go/mcp"

func timerStartTool() mcp.Tool {
	return mcp.NewTool("studypro_timer_start",
		mcp.WithDescription("Start the study timer. It keeps running until studypro_timer_stop; starting while one runs does nothing."),
		mcp.WithString("mode",
			mcp.Required(),
			mcp.Description("self-study or coaching"),
		),
	)
}

func timerStopTool() mcp.Tool {
	return mcp.NewTool("studypro_timer_stop",
		mcp.WithDescription("Stop the running timer. Sessions longer than one second are logged."),
		mcp.WithString("subject",
			mcp.Description("Subject to log the session under (defaults to the first configured subject)"),
		),
	)
}

func timerStatusTool() mcp.Tool {
	return mcp.NewTool("studypro_timer_status",
		mcp.WithDescription("Report whether a timer is running and how long it has run."),
	)
}

func recentLogsTool() mcp.Tool {
	return mcp.NewTool("studypro_recent_logs",
		mcp.WithDescription("List the most recent study sessions, newest first."),
		mcp.WithNumber("limit",
			mcp.Description("Number of sessions (default: configured recent_limit, max: 100)"),
		),
	)
}

func statsTool() mcp.Tool {
	return mcp.NewTool("studypro_stats",
		mcp.WithDescription("Total hours per session type, progress toward the 6 hour goal and the subject breakdown."),
	)
}

func syllabusListTool() mcp.Tool {
	return mcp.NewTool("studypro_syllabus_list",
		mcp.WithDescription("List syllabus topics with their completion state and overall progress."),
	)
}

func syllabusAddTool() mcp.Tool {
	return mcp.NewTool("studypro_syllabus_add",
		mcp.WithDescription("Add a syllabus topic."),
		mcp.WithString("text",
			mcp.Required(),
			mcp.Description("Topic text"),
		),
	)
}

func syllabusToggleTool() mcp.Tool {
	return mcp.NewTool("studypro_syllabus_toggle",
		mcp.WithDescription("Flip a syllabus topic between done and pending."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Topic id from studypro_syllabus_list"),
		),
	)
}

func syllabusRemoveTool() mcp.Tool {
	return mcp.NewTool("studypro_syllabus_remove",
		mcp.WithDescription("Delete a syllabus topic."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Topic id from studypro_syllabus_list"),
		),
	)
}
