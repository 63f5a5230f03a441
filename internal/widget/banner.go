package widget

import (
	"errors"
	"time"

	"chatwidget/internal/service"
)

type BannerPhase int

const (
	BannerHidden BannerPhase = iota
	BannerVisible
	BannerFading
)

func (p BannerPhase) String() string {
	switch p {
	case BannerVisible:
		return "visible"
	case BannerFading:
		return "fading"
	default:
		return "hidden"
	}
}

// Banner is the single error notice. Generation increases every time a new
// error replaces the previous one, so timers scheduled for an older banner
// can tell they are stale.
type Banner struct {
	Message      string
	ShownAt      time.Time
	VisibleUntil time.Time
	HiddenAt     time.Time
	Generation   uint64
}

func (b Banner) PhaseAt(now time.Time) BannerPhase {
	switch {
	case b.Message == "":
		return BannerHidden
	case now.Before(b.VisibleUntil):
		return BannerVisible
	case now.Before(b.HiddenAt):
		return BannerFading
	default:
		return BannerHidden
	}
}

// BannerText renders err the way the widget shows failures. Only messages
// meant for the user reach the banner: the error field of a failed response
// or the empty-reply notice. Anything else shows the generic message.
func BannerText(err error) string {
	return "Error: " + failureMessage(err) + ". Please try again."
}

func failureMessage(err error) string {
	var svcErr *service.ServiceError
	switch {
	case errors.As(err, &svcErr) && svcErr.Message != "":
		return svcErr.Message
	case errors.Is(err, service.ErrEmptyReply):
		return service.ErrEmptyReply.Error()
	default:
		return service.DefaultFailureMessage
	}
}
