// Package models holds the read-mostly domain snapshots the rule engine
// evaluates. Records are owned by the store; within a single request these
// values are treated as immutable inputs.
package models

import "time"

type Role string

const (
	RoleTraveler  Role = "traveler"
	RoleAssistant Role = "assistant"
	RoleAdmin     Role = "admin"
)

// Confidence is the closed set of answer confidence levels. Every level has a
// guardrail prefix defined in the copilot package.
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

type TravelType string

const (
	TravelFlight TravelType = "flight"
	TravelHotel  TravelType = "hotel"
	TravelCar    TravelType = "car"
	TravelOther  TravelType = "other"
)

type NudgeStatus string

const (
	NudgeStatusPending  NudgeStatus = "pending"
	NudgeStatusApproved NudgeStatus = "approved"
	NudgeStatusSnoozed  NudgeStatus = "snoozed"
	NudgeStatusDisabled NudgeStatus = "disabled"
	NudgeStatusSent     NudgeStatus = "sent"
)

type BriefStatus string

const (
	BriefStatusDraft    BriefStatus = "draft"
	BriefStatusApproved BriefStatus = "approved"
)

type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

type Event struct {
	ID       string    `json:"id"`
	Title    string    `json:"title"`
	City     string    `json:"city"`
	Venue    string    `json:"venue"`
	Timezone string    `json:"timezone"`
	StartAt  time.Time `json:"startAt"`
	EndAt    time.Time `json:"endAt"`
}

type Attendee struct {
	ID            string `json:"id"`
	EventID       string `json:"eventId"`
	UserID        string `json:"userId"`
	ExecutiveFlag bool   `json:"executiveFlag"`
	ReceiveNudges bool   `json:"receiveNudges"`
}

type TravelLinks struct {
	Provider string `json:"provider,omitempty"`
	Map      string `json:"map,omitempty"`
	Uber     string `json:"uber,omitempty"`
}

type TravelItem struct {
	ID               string      `json:"id"`
	AttendeeID       string      `json:"attendeeId"`
	EventID          string      `json:"eventId"`
	Type             TravelType  `json:"type"`
	Provider         string      `json:"provider"`
	StartAt          time.Time   `json:"startAt"`
	EndAt            *time.Time  `json:"endAt,omitempty"`
	ConfirmationCode string      `json:"confirmationCode,omitempty"`
	Location         string      `json:"location,omitempty"`
	Notes            string      `json:"notes,omitempty"`
	Links            TravelLinks `json:"links"`
}

type AgendaItem struct {
	ID          string    `json:"id"`
	EventID     string    `json:"eventId"`
	Title       string    `json:"title"`
	Location    string    `json:"location"`
	StartAt     time.Time `json:"startAt"`
	EndAt       time.Time `json:"endAt"`
	Description string    `json:"description"`
	SpeakerIDs  []string  `json:"speakerIds"`
}

type Speaker struct {
	ID          string `json:"id"`
	EventID     string `json:"eventId"`
	Name        string `json:"name"`
	Title       string `json:"title"`
	Org         string `json:"org"`
	Bio         string `json:"bio"`
	HeadshotURL string `json:"headshotUrl,omitempty"`
	LinkedinURL string `json:"linkedinUrl,omitempty"`
}

type ExecutiveBrief struct {
	EventID            string      `json:"eventId"`
	Version            int         `json:"version"`
	Summary            string      `json:"summary"`
	SpeakerSynopsis    []string    `json:"speakerSynopsis"`
	MeetingFocus       string      `json:"meetingFocus"`
	Watchouts          []string    `json:"watchouts"`
	SuggestedQuestions []string    `json:"suggestedQuestions"`
	GeneratedAt        time.Time   `json:"generatedAt"`
	ApprovedAt         *time.Time  `json:"approvedAt,omitempty"`
	ApprovedBy         string      `json:"approvedBy,omitempty"`
	Status             BriefStatus `json:"status"`
}

type CopilotNudge struct {
	ID                    string      `json:"id"`
	EventID               string      `json:"eventId"`
	AttendeeID            string      `json:"attendeeId"`
	Title                 string      `json:"title"`
	Body                  string      `json:"body"`
	ScheduledAt           time.Time   `json:"scheduledAt"`
	SourceRule            string      `json:"sourceRule"`
	Status                NudgeStatus `json:"status"`
	Confidence            Confidence  `json:"confidence"`
	RequiresAdminApproval bool        `json:"requiresAdminApproval"`
}

type PersonType string

const (
	PersonSpeaker PersonType = "speaker"
	PersonInvitee PersonType = "invitee"
)

type PersonProfile struct {
	ID             string     `json:"id"`
	EventID        string     `json:"eventId"`
	PersonType     PersonType `json:"personType"`
	Name           string     `json:"name"`
	Email          string     `json:"email,omitempty"`
	Organization   string     `json:"organization,omitempty"`
	RoleTitle      string     `json:"roleTitle,omitempty"`
	Highlights     []string   `json:"highlights"`
	SourceApproved bool       `json:"sourceApproved"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}

// ProvenanceField records where an enriched profile value came from.
type ProvenanceField struct {
	FieldName   string    `json:"fieldName"`
	Value       string    `json:"value"`
	Source      string    `json:"source"`
	SourceURL   string    `json:"sourceUrl,omitempty"`
	RetrievedAt time.Time `json:"retrievedAt"`
}

type DraftStatus string

const (
	DraftStatusDraft    DraftStatus = "draft"
	DraftStatusApproved DraftStatus = "approved"
	DraftStatusRejected DraftStatus = "rejected"
)

type EnrichmentDraft struct {
	ID              string            `json:"id"`
	EventID         string            `json:"eventId"`
	PersonID        string            `json:"personId"`
	Provider        string            `json:"provider"`
	MatchConfidence float64           `json:"matchConfidence"`
	Status          DraftStatus       `json:"status"`
	ConflictFlags   []string          `json:"conflictFlags"`
	Fields          []ProvenanceField `json:"fields"`
	GeneratedAt     time.Time         `json:"generatedAt"`
	ApprovedAt      *time.Time        `json:"approvedAt,omitempty"`
	ApprovedBy      string            `json:"approvedBy,omitempty"`
}
