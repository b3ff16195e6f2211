package helpers

import (
	"fmt"
	"strings"

	"github.com/nexcruit/ats-backend/pkg/mailer"
)

// EnsureRecipientAndEmail normalizes the recipient and mirrors it into the template data.
func EnsureRecipientAndEmail(job *mailer.EmailJob) {
	job.To = strings.TrimSpace(job.To)
	if job.Template == "" {
		return
	}
	if job.Data == nil {
		job.Data = map[string]any{}
	}
	if v, ok := job.Data["Email"]; !ok || fmt.Sprintf("%v", v) == "" {
		job.Data["Email"] = job.To
	}
	if v, ok := job.Data["RecipientEmail"]; !ok || fmt.Sprintf("%v", v) == "" {
		job.Data["RecipientEmail"] = job.To
	}
}
