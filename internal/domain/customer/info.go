package customer

import (
	"errors"
	"regexp"
	"strings"
)

var (
	ErrInvalidEmail     = errors.New("invalid email format")
	ErrFieldTooLong     = errors.New("customer field exceeds gateway length limit")
	ErrMissingGatewayID = errors.New("customer profile id is required")
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

type Email struct {
	value string
}

// NewEmail lowercases the address; profiles are keyed by it.
func NewEmail(s string) (Email, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if !emailRegex.MatchString(s) {
		return Email{}, ErrInvalidEmail
	}
	return Email{value: s}, nil
}

func (e Email) Value() string {
	return e.value
}

func (e Email) IsZero() bool {
	return e.value == ""
}

// Address mirrors the gateway billTo/shipTo element.
type Address struct {
	FirstName string
	LastName  string
	Company   string
	Address   string
	City      string
	State     string
	Zip       string
	Country   string
	Phone     string
}

// gateway limits for customerAddressType
var addressLimits = map[string]int{
	"firstName": 50,
	"lastName":  50,
	"company":   50,
	"address":   60,
	"city":      40,
	"state":     40,
	"zip":       20,
	"country":   60,
	"phone":     25,
}

func (a Address) validate() error {
	fields := map[string]string{
		"firstName": a.FirstName,
		"lastName":  a.LastName,
		"company":   a.Company,
		"address":   a.Address,
		"city":      a.City,
		"state":     a.State,
		"zip":       a.Zip,
		"country":   a.Country,
		"phone":     a.Phone,
	}
	for name, v := range fields {
		if len(v) > addressLimits[name] {
			return ErrFieldTooLong
		}
	}
	return nil
}

func (a Address) IsEmpty() bool {
	return a == Address{}
}

// Info is the customer snapshot captured at token-issuance time.
type Info struct {
	email   Email
	address Address
}

func NewInfo(email string, address Address) (Info, error) {
	e, err := NewEmail(email)
	if err != nil {
		return Info{}, err
	}
	address = trimAddress(address)
	if err := address.validate(); err != nil {
		return Info{}, err
	}
	return Info{email: e, address: address}, nil
}

func (i Info) Email() Email     { return i.email }
func (i Info) Address() Address { return i.address }
func (i Info) IsZero() bool     { return i.email.IsZero() && i.address.IsEmpty() }

func trimAddress(a Address) Address {
	return Address{
		FirstName: strings.TrimSpace(a.FirstName),
		LastName:  strings.TrimSpace(a.LastName),
		Company:   strings.TrimSpace(a.Company),
		Address:   strings.TrimSpace(a.Address),
		City:      strings.TrimSpace(a.City),
		State:     strings.TrimSpace(a.State),
		Zip:       strings.TrimSpace(a.Zip),
		Country:   strings.TrimSpace(a.Country),
		Phone:     strings.TrimSpace(a.Phone),
	}
}
