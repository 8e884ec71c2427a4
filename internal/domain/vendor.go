package domain

import "time"

// Vendor is a durable vendor record. Discovery only ever creates vendors
// (via import); updates and deletion belong to the surrounding application.
type Vendor struct {
	ID                string          `json:"id"`
	Name              string          `json:"name"`
	Country           string          `json:"country"`
	Website           string          `json:"website,omitempty"`
	Email             string          `json:"email,omitempty"`
	Phone             string          `json:"phone,omitempty"`
	Description       string          `json:"description,omitempty"`
	ProductCategories []string        `json:"productCategories"`
	Certifications    []string        `json:"certifications"`
	CompanySize       string          `json:"companySize,omitempty"`
	YearsInBusiness   int             `json:"yearsInBusiness,omitempty"`
	Source            string          `json:"source"` // e.g. "discovery"
	Contacts          []VendorContact `json:"contacts,omitempty"`
	CreatedAt         time.Time       `json:"createdAt"`
}

// VendorContact is a contact channel attached to a vendor
type VendorContact struct {
	Type  string `json:"type"` // "email" or "phone"
	Value string `json:"value"`
}

// ContactInfo holds contact details scraped from a vendor website
type ContactInfo struct {
	Emails []string `json:"emails"`
	Phones []string `json:"phones"`
}
