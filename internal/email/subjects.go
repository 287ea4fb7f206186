package email

const (
	subjectVerification    = "Verify Your Email"
	subjectPasswordReset   = "Reset Your Password"
	subjectTaskAssigned    = "NEW LEAD ADDED - follow-up task assigned to you"
	subjectTaskReminderFmt = "Reminder: %s is due soon"
)
