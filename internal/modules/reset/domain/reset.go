package domain

// ConfirmPrompt is asked before any history is destroyed.
const ConfirmPrompt = "Are you sure? This will delete all your tracking history."
