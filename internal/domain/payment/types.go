package payment

import "errors"

var (
	ErrInvalidDisplayMode = errors.New("invalid display mode")
	ErrInvalidPageType    = errors.New("invalid page type")
)

// DisplayMode selects how the caller presents a hosted page.
type DisplayMode string

const (
	DisplayRedirect DisplayMode = "redirect"
	DisplayLightbox DisplayMode = "lightbox"
	DisplayIframe   DisplayMode = "iframe"
)

func (d DisplayMode) String() string {
	return string(d)
}

func (d DisplayMode) IsValid() bool {
	switch d {
	case DisplayRedirect, DisplayLightbox, DisplayIframe:
		return true
	default:
		return false
	}
}

// Embedded is true for modes that talk back through an iframe communicator page.
func (d DisplayMode) Embedded() bool {
	return d == DisplayLightbox || d == DisplayIframe
}

// NewDisplayMode defaults an empty value to redirect.
func NewDisplayMode(s string) (DisplayMode, error) {
	if s == "" {
		return DisplayRedirect, nil
	}
	mode := DisplayMode(s)
	if !mode.IsValid() {
		return "", ErrInvalidDisplayMode
	}
	return mode, nil
}

// PageType is the hosted customer profile page being requested.
type PageType string

const (
	PageManage       PageType = "manage"
	PageAddPayment   PageType = "addPayment"
	PageAddShipping  PageType = "addShipping"
	PageEditPayment  PageType = "editPayment"
	PageEditShipping PageType = "editShipping"
)

func (p PageType) String() string {
	return string(p)
}

func (p PageType) IsValid() bool {
	switch p {
	case PageManage, PageAddPayment, PageAddShipping, PageEditPayment, PageEditShipping:
		return true
	default:
		return false
	}
}

func (p PageType) RequiresPaymentProfile() bool {
	return p == PageEditPayment
}

func (p PageType) RequiresShippingAddress() bool {
	return p == PageEditShipping
}

func NewPageType(s string) (PageType, error) {
	if s == "" {
		return PageManage, nil
	}
	pt := PageType(s)
	if !pt.IsValid() {
		return "", ErrInvalidPageType
	}
	return pt, nil
}
