package notify

import (
	"fmt"
	"strings"
)

var templates = map[string]string{
	OTPIssued:          "##otp## is your docdesk verification code for ##action_type##. It is valid for 10 minutes.",
	EmployeeRegistered: "Welcome to ##company_name##, ##first_name##! Sign in with ##user_name## and the default password, then change it.",
	CustomerRegistered: "Hello ##first_name##, your docdesk account is ready. Sign in with ##user_name##.",
	MessageSent:        "New message: ##message##",
}

// Render replaces every ##key## in tmpl with data[key]. Unknown keys are
// left as they are.
func Render(tmpl string, data map[string]string) string {
	if len(data) == 0 {
		return tmpl
	}
	pairs := make([]string, 0, len(data)*2)
	for k, v := range data {
		pairs = append(pairs, "##"+k+"##", v)
	}
	return strings.NewReplacer(pairs...).Replace(tmpl)
}

// Text renders the message delivered for ev.
func Text(ev Event) (string, error) {
	tmpl, ok := templates[ev.Type]
	if !ok {
		return "", fmt.Errorf("no template for event %q", ev.Type)
	}
	return Render(tmpl, ev.Data), nil
}
