// Package phone normalises South African style phone numbers and builds
// WhatsApp click-to-chat links from them.
package phone

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/ttacon/libphonenumber"
)

// ErrInvalid is returned for numbers that parse but cannot be dialled.
var ErrInvalid = errors.New("phone number is not valid")

// E164 parses raw relative to region and returns it as +<country><number>.
func E164(raw, region string) (string, error) {
	num, err := libphonenumber.Parse(strings.TrimSpace(raw), region)
	if err != nil {
		return "", fmt.Errorf("parse phone %q: %w", raw, err)
	}
	if !libphonenumber.IsValidNumber(num) {
		return "", ErrInvalid
	}
	return libphonenumber.Format(num, libphonenumber.E164), nil
}

// WhatsAppLink returns a wa.me link that opens a chat with raw, prefilled
// with text when it is not empty.
func WhatsAppLink(raw, region, text string) (string, error) {
	e164, err := E164(raw, region)
	if err != nil {
		return "", err
	}
	link := "https://wa.me/" + strings.TrimPrefix(e164, "+")
	if text != "" {
		link += "?text=" + url.QueryEscape(text)
	}
	return link, nil
}
