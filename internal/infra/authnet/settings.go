package authnet

import (
	"encoding/json"
	"net/url"
	"strconv"
	"strings"
)

const referenceIDParam = "refId"

type returnOptions struct {
	ShowReceipt   bool   `json:"showReceipt"`
	URL           string `json:"url,omitempty"`
	URLText       string `json:"urlText,omitempty"`
	CancelURL     string `json:"cancelUrl,omitempty"`
	CancelURLText string `json:"cancelUrlText,omitempty"`
}

type buttonOptions struct {
	Text string `json:"text"`
}

type paymentOptions struct {
	CardCodeRequired bool `json:"cardCodeRequired"`
	ShowCreditCard   bool `json:"showCreditCard"`
	ShowBankAccount  bool `json:"showBankAccount"`
}

type securityOptions struct {
	Captcha bool `json:"captcha"`
}

type billingAddressOptions struct {
	Show     bool `json:"show"`
	Required bool `json:"required"`
}

type customerOptions struct {
	ShowEmail         bool `json:"showEmail"`
	RequiredEmail     bool `json:"requiredEmail"`
	AddPaymentProfile bool `json:"addPaymentProfile"`
}

type communicatorOptions struct {
	URL string `json:"url"`
}

// settingsBuilder accumulates settings in insertion order.
type settingsBuilder struct {
	settings []Setting
}

func (b *settingsBuilder) addJSON(name string, v any) {
	raw, err := json.Marshal(v)
	if err != nil {
		return
	}
	b.settings = append(b.settings, Setting{SettingName: name, SettingValue: string(raw)})
}

func (b *settingsBuilder) add(name, v string) {
	b.settings = append(b.settings, Setting{SettingName: name, SettingValue: v})
}

func (b *settingsBuilder) addBool(name string, v bool) {
	b.add(name, strconv.FormatBool(v))
}

func (b *settingsBuilder) build() Settings {
	return Settings{Setting: b.settings}
}

// absoluteURL accepts only http(s) URLs with a host.
func absoluteURL(raw string) (*url.URL, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, false
	}
	u, err := url.Parse(raw)
	if err != nil {
		return nil, false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, false
	}
	if u.Host == "" || u.Opaque != "" {
		return nil, false
	}
	return u, true
}

// returnURLWithReference appends refId to a valid return URL. It is the only
// URL that may carry the reference.
func returnURLWithReference(raw, referenceID string) (string, bool) {
	u, ok := absoluteURL(raw)
	if !ok {
		return "", false
	}
	if referenceID != "" {
		q := u.Query()
		q.Set(referenceIDParam, referenceID)
		u.RawQuery = q.Encode()
	}
	return u.String(), true
}

// cancelURL returns the URL only when it is absolute and carries no query or
// fragment; the gateway fails the whole token request otherwise.
func cancelURL(raw string) (string, bool) {
	u, ok := absoluteURL(raw)
	if !ok {
		return "", false
	}
	if u.RawQuery != "" || u.ForceQuery || u.Fragment != "" {
		return "", false
	}
	return u.String(), true
}

func communicatorURL(raw string) (string, bool) {
	u, ok := absoluteURL(raw)
	if !ok {
		return "", false
	}
	return u.String(), true
}
