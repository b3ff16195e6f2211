package application

import "expvar"

// Counters published under /api/debug/vars.
var (
	emailsDispatched = expvar.NewInt("emails_dispatched")
	emailsFailed     = expvar.NewInt("emails_failed")
	remindersSent    = expvar.NewInt("reminders_sent")
	remindersFailed  = expvar.NewInt("reminders_failed")
	candidatesParsed = expvar.NewInt("resumes_parsed")
)
