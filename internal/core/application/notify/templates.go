package notify

import (
	"fmt"
	"strings"
	"time"

	"parcelflow/internal/core/domain/model/parcel"
)

// Template keys understood by the renderer. An unknown key renders empty
// content on every channel and is silently skipped by the dispatcher.
const (
	// TemplateParcelBooked confirms a fresh booking, with schedule-or-unassigned copy.
	TemplateParcelBooked = "PARCEL_BOOKED"
	// TemplateParcelStatusUpdated announces a lifecycle transition.
	TemplateParcelStatusUpdated = "PARCEL_STATUS_UPDATED"
)

// Language selects the customer-facing copy. Unset or unrecognized values
// fall back to English.
type Language string

const (
	// LangEN is English.
	LangEN Language = "EN"
	// LangBN is Bengali.
	LangBN Language = "BN"
)

// NormalizeLanguage maps arbitrary stored language values onto a supported
// Language, defaulting to English.
func NormalizeLanguage(s string) Language {
	if strings.EqualFold(s, string(LangBN)) {
		return LangBN
	}
	return LangEN
}

// statusLabels maps each lifecycle status onto its per-language display label.
func statusLabels() map[parcel.Status]map[Language]string {
	return map[parcel.Status]map[Language]string{
		parcel.StatusBooked:    {LangEN: "Booked", LangBN: "বুকড"},
		parcel.StatusAssigned:  {LangEN: "Agent Assigned", LangBN: "এজেন্ট নিয়োগ"},
		parcel.StatusPickedUp:  {LangEN: "Picked Up", LangBN: "পিকআপ সম্পন্ন"},
		parcel.StatusInTransit: {LangEN: "In Transit", LangBN: "চলমান"},
		parcel.StatusDelivered: {LangEN: "Delivered", LangBN: "ডেলিভারড"},
		parcel.StatusFailed:    {LangEN: "Delivery Failed", LangBN: "ডেলিভারি ব্যর্থ"},
		parcel.StatusCancelled: {LangEN: "Cancelled", LangBN: "বাতিল"},
	}
}

// StatusLabel returns the display label for a status in the given language,
// falling back to the raw status value for unknown statuses.
func StatusLabel(status parcel.Status, language Language) string {
	if labels, ok := statusLabels()[status]; ok {
		if label, ok := labels[language]; ok {
			return label
		}
	}
	return status.String()
}

// Context carries the merge fields available to templates.
type Context struct {
	Status            parcel.Status
	Note              string
	TrackingCode      string
	CustomerName      string
	PickupAddress     string
	DeliveryAddress   string
	ScheduledPickupAt *time.Time
}

// RenderedContent is the channel-specific output of a render. A channel whose
// fields are empty is skipped by the dispatcher.
type RenderedContent struct {
	EmailSubject string
	EmailHTML    string
	SMSText      string
}

// Render maps (template key, language, context) onto channel-specific content.
// It is a pure function with no side effects. Unknown template keys yield the
// zero RenderedContent.
func Render(templateKey string, language Language, ctx Context) RenderedContent {
	switch templateKey {
	case TemplateParcelBooked:
		return renderParcelBooked(language, ctx)
	case TemplateParcelStatusUpdated:
		return renderParcelStatusUpdated(language, ctx)
	default:
		return RenderedContent{}
	}
}

func formatDateTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("Jan 2, 2006 15:04")
}

func wrapEmailBody(body string) string {
	return fmt.Sprintf(`
  <div style="font-family: 'Segoe UI', Tahoma, sans-serif; line-height: 1.5; color: #111827;">
    %s
    <p style="margin-top: 24px; font-size: 12px; color: #6b7280;">
      Thank you for choosing our delivery service.
    </p>
  </div>
`, body)
}

func renderParcelBooked(language Language, ctx Context) RenderedContent {
	if language == LangBN {
		pickup := ""
		if ctx.PickupAddress != "" {
			pickup = "পিকআপ ঠিকানা: " + ctx.PickupAddress
		}
		drop := ""
		if ctx.DeliveryAddress != "" {
			drop = "ডেলিভারি ঠিকানা: " + ctx.DeliveryAddress
		}
		schedule := "এজেন্ট নিয়োগ হলেই জানানো হবে।"
		if ctx.ScheduledPickupAt != nil {
			schedule = "নির্ধারিত পিকআপ: " + formatDateTime(ctx.ScheduledPickupAt)
		}
		return RenderedContent{
			EmailSubject: fmt.Sprintf("চালান নিশ্চিত (%s)", ctx.TrackingCode),
			EmailHTML: wrapEmailBody(fmt.Sprintf(`
          <p>হ্যালো %s,</p>
          <p>আপনার পার্সেল বুকিং নিশ্চিত হয়েছে। %s</p>
          <p>%s<br/>%s</p>
          <p>ট্র্যাকিং কোড: <strong>%s</strong></p>
        `, ctx.CustomerName, schedule, pickup, drop, ctx.TrackingCode)),
			SMSText: fmt.Sprintf("আপনার %s পার্সেল বুক হয়েছে। %s", ctx.TrackingCode, schedule),
		}
	}

	pickup := ""
	if ctx.PickupAddress != "" {
		pickup = "Pickup: " + ctx.PickupAddress
	}
	drop := ""
	if ctx.DeliveryAddress != "" {
		drop = "Delivery: " + ctx.DeliveryAddress
	}
	schedule := "We'll notify you when a delivery agent is assigned."
	if ctx.ScheduledPickupAt != nil {
		schedule = "Scheduled pickup: " + formatDateTime(ctx.ScheduledPickupAt)
	}
	return RenderedContent{
		EmailSubject: fmt.Sprintf("Shipment booked (%s)", ctx.TrackingCode),
		EmailHTML: wrapEmailBody(fmt.Sprintf(`
          <p>Hi %s,</p>
          <p>Your parcel booking is confirmed. %s</p>
          <p>%s<br/>%s</p>
          <p>Tracking code: <strong>%s</strong></p>
        `, ctx.CustomerName, schedule, pickup, drop, ctx.TrackingCode)),
		SMSText: fmt.Sprintf("Booking confirmed for parcel %s. %s", ctx.TrackingCode, schedule),
	}
}

func renderParcelStatusUpdated(language Language, ctx Context) RenderedContent {
	statusLabel := StatusLabel(ctx.Status, language)

	if language == LangBN {
		note := ""
		if ctx.Note != "" {
			note = "নোট: " + ctx.Note
		}
		noteHTML := ""
		if note != "" {
			noteHTML = fmt.Sprintf("<p>%s</p>", note)
		}
		return RenderedContent{
			EmailSubject: fmt.Sprintf("অবস্থা: %s (%s)", statusLabel, ctx.TrackingCode),
			EmailHTML: wrapEmailBody(fmt.Sprintf(`
          <p>হ্যালো %s,</p>
          <p>আপনার %s পার্সেল এখন <strong>%s</strong>.</p>
          %s
        `, ctx.CustomerName, ctx.TrackingCode, statusLabel, noteHTML)),
			SMSText: strings.TrimSpace(fmt.Sprintf("%s এখন %s. %s", ctx.TrackingCode, statusLabel, note)),
		}
	}

	note := ""
	if ctx.Note != "" {
		note = "Note: " + ctx.Note
	}
	noteHTML := ""
	if note != "" {
		noteHTML = fmt.Sprintf("<p>%s</p>", note)
	}
	return RenderedContent{
		EmailSubject: fmt.Sprintf("Update: %s (%s)", statusLabel, ctx.TrackingCode),
		EmailHTML: wrapEmailBody(fmt.Sprintf(`
          <p>Hi %s,</p>
          <p>Your parcel %s is now <strong>%s</strong>.</p>
          %s
        `, ctx.CustomerName, ctx.TrackingCode, statusLabel, noteHTML)),
		SMSText: strings.TrimSpace(fmt.Sprintf("Parcel %s is %s. %s", ctx.TrackingCode, statusLabel, note)),
	}
}
