package entity

import "time"

// LeadSource tells which public form produced a lead.
type LeadSource string

const (
	LeadSourcePurchase LeadSource = "purchase"
	LeadSourceContact  LeadSource = "contact"
	LeadSourceSignup   LeadSource = "signup"
)

// Lead is a prospective customer's request. Leads are write-only from the API.
type Lead struct {
	ID        string
	Source    LeadSource
	Name      string
	Contact   string
	Format    string
	Course    string
	Date      time.Time
	CreatedAt time.Time
}
