package model

import (
	"errors"
	"time"
)

type Gender string

const (
	Male   Gender = "Male"
	Female Gender = "Female"
	Other  Gender = "Other"
)

type CareStatus string

const (
	Active      CareStatus = "Active"
	Inactive    CareStatus = "Inactive"
	UnderReview CareStatus = "Under Review"
)

var (
	ErrNameRequired  = errors.New("first and last name are required")
	ErrBirthInFuture = errors.New("date of birth cannot be in the future")
	ErrInvalidGender = errors.New("gender must be Male, Female or Other")
	ErrInvalidStatus = errors.New("care status must be Active, Inactive or Under Review")
)

// Client is a person receiving care. Notes reference it by ID.
type Client struct {
	ID                     string     `json:"id" yaml:"id"`
	FirstName              string     `json:"first_name" yaml:"first_name"`
	LastName               string     `json:"last_name" yaml:"last_name"`
	DateOfBirth            time.Time  `json:"date_of_birth" yaml:"date_of_birth"`
	Gender                 Gender     `json:"gender" yaml:"gender"`
	Address                string     `json:"address,omitempty" yaml:"address"`
	ContactNumber          string     `json:"contact_number,omitempty" yaml:"contact_number"`
	CareNotes              string     `json:"care_notes,omitempty" yaml:"care_notes"`
	EmergencyContactName   string     `json:"emergency_contact_name,omitempty" yaml:"emergency_contact_name"`
	EmergencyContactNumber string     `json:"emergency_contact_number,omitempty" yaml:"emergency_contact_number"`
	CareStatus             CareStatus `json:"care_status" yaml:"care_status"`
	AssignedCaregiver      string     `json:"assigned_caregiver,omitempty" yaml:"assigned_caregiver"`
	CreatedAt              time.Time  `json:"created_at" yaml:"-"`
	UpdatedAt              time.Time  `json:"updated_at" yaml:"-"`
}

// Age in whole years at now, or -1 when the birth date is unknown.
func (c Client) Age(now time.Time) int {
	if c.DateOfBirth.IsZero() {
		return -1
	}
	age := now.Year() - c.DateOfBirth.Year()
	if now.Month() < c.DateOfBirth.Month() ||
		(now.Month() == c.DateOfBirth.Month() && now.Day() < c.DateOfBirth.Day()) {
		age--
	}
	return age
}

// Validate checks the plain fields and fills the default care status.
func (c *Client) Validate(now time.Time) error {
	if c.FirstName == "" || c.LastName == "" {
		return ErrNameRequired
	}
	if c.DateOfBirth.After(now) {
		return ErrBirthInFuture
	}
	switch c.Gender {
	case Male, Female, Other:
	default:
		return ErrInvalidGender
	}
	if c.CareStatus == "" {
		c.CareStatus = Active
	}
	switch c.CareStatus {
	case Active, Inactive, UnderReview:
	default:
		return ErrInvalidStatus
	}
	return nil
}
