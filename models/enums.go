package models

import "fmt"

// UnknownCodeError is returned when a stored code or name does not map to
// any known enum value
type UnknownCodeError struct {
	Kind  string
	Value string
}

func (e *UnknownCodeError) Error() string {
	return fmt.Sprintf("unknown %s %q", e.Kind, e.Value)
}

// PrintType is one of the seven primary kinds of printing
type PrintType int

const (
	ScreenCups PrintType = iota
	ScreenNapkins
	Pad
	Hotstamp
	OffsetCups
	OffsetNapkins
	Digital
)

var printTypeNames = map[PrintType]string{
	ScreenCups:    "Screen Cups",
	ScreenNapkins: "Screen Napkins",
	Pad:           "Pad",
	Hotstamp:      "Hotstamp",
	OffsetCups:    "Offset Cups",
	OffsetNapkins: "Offset Napkins",
	Digital:       "Digital",
}

// Database codes. These do not follow declaration order; Screen Napkins
// was added after the table was already in use.
var printTypeCodes = map[PrintType]int{
	ScreenCups:    0,
	Pad:           1,
	Hotstamp:      2,
	OffsetCups:    3,
	OffsetNapkins: 4,
	Digital:       5,
	ScreenNapkins: 6,
}

// PrintTypes lists every print type in display order
var PrintTypes = []PrintType{ScreenCups, ScreenNapkins, Pad, Hotstamp, OffsetCups, OffsetNapkins, Digital}

func (p PrintType) String() string {
	if name, ok := printTypeNames[p]; ok {
		return name
	}
	return fmt.Sprintf("PrintType(%d)", int(p))
}

// Code returns the integer stored in the database for this print type
func (p PrintType) Code() int {
	return printTypeCodes[p]
}

// PrintTypeFromCode decodes a stored print type code
func PrintTypeFromCode(code int) (PrintType, error) {
	for p, c := range printTypeCodes {
		if c == code {
			return p, nil
		}
	}
	return 0, &UnknownCodeError{Kind: "print type code", Value: fmt.Sprint(code)}
}

// PrintTypeFromName decodes a display name such as "Offset Cups"
func PrintTypeFromName(name string) (PrintType, error) {
	for p, n := range printTypeNames {
		if n == name {
			return p, nil
		}
	}
	return 0, &UnknownCodeError{Kind: "print type", Value: name}
}

// PrintingCompany is the brand a job is printed under
type PrintingCompany int

const (
	AmericanAccents     PrintingCompany = 0
	AmericanCabinSupply PrintingCompany = 1
	AmericanYachtSupply PrintingCompany = 2
)

var printingCompanyNames = map[PrintingCompany]string{
	AmericanAccents:     "American Accents",
	AmericanCabinSupply: "American Cabin Supply",
	AmericanYachtSupply: "American Yacht Supply",
}

func (c PrintingCompany) String() string {
	if name, ok := printingCompanyNames[c]; ok {
		return name
	}
	return fmt.Sprintf("PrintingCompany(%d)", int(c))
}

// Code returns the integer stored in the database for this company
func (c PrintingCompany) Code() int {
	return int(c)
}

// PrintingCompanyFromCode decodes a stored printing company code
func PrintingCompanyFromCode(code int) (PrintingCompany, error) {
	c := PrintingCompany(code)
	if _, ok := printingCompanyNames[c]; !ok {
		return 0, &UnknownCodeError{Kind: "printing company code", Value: fmt.Sprint(code)}
	}
	return c, nil
}

// PrintingCompanyFromName decodes a display name such as "American Accents"
func PrintingCompanyFromName(name string) (PrintingCompany, error) {
	for c, n := range printingCompanyNames {
		if n == name {
			return c, nil
		}
	}
	return 0, &UnknownCodeError{Kind: "printing company", Value: name}
}
