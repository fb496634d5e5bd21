package lighthouse

import "strings"

// Crisis resources shown by the emergency overlay.
const (
	EmergencyTitle = "You are not alone."
	EmergencyIntro = "Help is available right now. These services are free, confidential, and available 24/7."
	CallLine       = "Call 988"
	TextLine       = "Text \"HOME\" to 741741"
	HelplinesURL   = "https://findahelpline.com"
)

func emergencyView(width int) string {
	lines := []string{
		alertStyle.Render("⚠ " + EmergencyTitle),
		"",
		EmergencyIntro,
		"",
		alertStyle.Render("📞 " + CallLine),
		TextLine,
		"Find International Helplines: " + HelplinesURL,
		"",
		statusStyle.Render("esc to close"),
	}
	return overlayStyle.Width(max(30, min(width-4, 76))).Render(strings.Join(lines, "\n"))
}
