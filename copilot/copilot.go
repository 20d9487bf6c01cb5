// Package copilot implements the rule-driven concierge assistant: a keyword
// intent classifier that produces source-cited answers, and the proactive
// nudge evaluator. Everything here is deterministic over the snapshot passed
// in; the caller supplies "now" so evaluation stays reproducible.
package copilot

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/samber/lo"

	"backend/models"
)

type Scope string

const (
	ScopeTravel   Scope = "travel"
	ScopeAgenda   Scope = "agenda"
	ScopeSpeakers Scope = "speakers"
	ScopeBriefing Scope = "briefing"
	ScopeAll      Scope = "all"
)

const (
	SourceTravel   = "travel"
	SourceAgenda   = "agenda"
	SourceSpeaker  = "speaker"
	SourceBriefing = "briefing"
)

// Source is a cited record backing an answer, kept for traceability.
type Source struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Kind  string `json:"kind"`
}

type Action struct {
	ID     string `json:"id"`
	Text   string `json:"text"`
	Action string `json:"action"`
}

type Response struct {
	Answer           string            `json:"answer"`
	Confidence       models.Confidence `json:"confidence"`
	Sources          []Source          `json:"sources"`
	SuggestedActions []Action          `json:"suggestedActions"`
}

type Request struct {
	Message  string
	Scope    Scope
	Travel   []models.TravelItem
	Agenda   []models.AgendaItem
	Speakers []models.Speaker
	Brief    *models.ExecutiveBrief
	Now      time.Time
}

// GuardrailPrefix is total over the confidence enum; anything outside the
// known levels gets the low-confidence warning so an answer is never served
// without a guardrail.
func GuardrailPrefix(confidence models.Confidence) string {
	switch confidence {
	case models.ConfidenceHigh:
		return "Confirmed from approved event data: "
	case models.ConfidenceMedium:
		return "Based on available event records: "
	default:
		return "I may be missing complete context. Please verify with your assistant before committing. "
	}
}

// intentRule pairs a message predicate with its handler. Rules are evaluated
// in order and the first match wins, so broader keywords belong later.
type intentRule struct {
	name    string
	matches func(message string) bool
	respond func(req Request) Response
}

var intentRules = []intentRule{
	{name: "next_item", matches: containsAny("next"), respond: respondNextItem},
	{name: "venue_routing", matches: containsAny("venue", "get to", "uber"), respond: respondVenueRouting},
	{name: "speaker_prep", matches: containsAny("speaker", "ask"), respond: respondSpeakerPrep},
}

func containsAny(keywords ...string) func(string) bool {
	return func(message string) bool {
		for _, keyword := range keywords {
			if strings.Contains(message, keyword) {
				return true
			}
		}
		return false
	}
}

// Respond classifies the message against the ordered intent rules and returns
// a guardrail-prefixed, source-cited answer. Missing context never errors; it
// lowers confidence instead.
func Respond(req Request) Response {
	message := strings.ToLower(req.Message)

	var resp Response
	if rule, ok := lo.Find(intentRules, func(r intentRule) bool { return r.matches(message) }); ok {
		resp = rule.respond(req)
	} else {
		resp = respondGeneral(req)
	}

	resp.Answer = GuardrailPrefix(resp.Confidence) + resp.Answer
	if resp.Sources == nil {
		resp.Sources = []Source{}
	}
	if resp.SuggestedActions == nil {
		resp.SuggestedActions = []Action{}
	}
	return resp
}

func respondNextItem(req Request) Response {
	if session, ok := lo.Find(req.Agenda, func(item models.AgendaItem) bool { return item.StartAt.After(req.Now) }); ok {
		return Response{
			Confidence: models.ConfidenceHigh,
			Sources:    []Source{{ID: session.ID, Label: session.Title, Kind: SourceAgenda}},
			SuggestedActions: []Action{
				{ID: "open-map", Text: "Open venue map", Action: "open_map"},
			},
			Answer: fmt.Sprintf("Your next scheduled item is %s at %s. It starts %s.",
				session.Title, session.Location, relativeTime(session.StartAt, req.Now)),
		}
	}

	if segment, ok := lo.Find(req.Travel, func(item models.TravelItem) bool { return item.StartAt.After(req.Now) }); ok {
		return Response{
			Confidence: models.ConfidenceHigh,
			Sources:    []Source{{ID: segment.ID, Label: segment.Provider, Kind: SourceTravel}},
			Answer: fmt.Sprintf("Your next travel segment is %s with %s %s.",
				segment.Type, segment.Provider, relativeTime(segment.StartAt, req.Now)),
		}
	}

	return Response{
		Confidence: models.ConfidenceMedium,
		Answer:     "There are no upcoming items on your itinerary right now.",
	}
}

func respondVenueRouting(req Request) Response {
	session, ok := lo.Find(req.Agenda, func(item models.AgendaItem) bool { return item.StartAt.After(req.Now) })
	if !ok && len(req.Agenda) > 0 {
		session, ok = req.Agenda[0], true
	}
	hotel, hasHotel := lo.Find(req.Travel, func(item models.TravelItem) bool { return item.Type == models.TravelHotel })

	if !ok || !hasHotel || hotel.Links.Uber == "" {
		return Response{
			Confidence: models.ConfidenceLow,
			Answer:     "Insufficient route context: routing data unavailable for a reliable ride recommendation.",
		}
	}

	minutesToStart := int(session.StartAt.Sub(req.Now).Minutes())
	return Response{
		Confidence: models.ConfidenceHigh,
		Sources: []Source{
			{ID: hotel.ID, Label: hotel.Provider, Kind: SourceTravel},
			{ID: session.ID, Label: session.Title, Kind: SourceAgenda},
		},
		SuggestedActions: []Action{
			{ID: "open-uber", Text: "Open Uber with venue preset", Action: hotel.Links.Uber},
		},
		Answer: fmt.Sprintf("From %s, request your ride in about %d minutes to arrive 10 minutes before %s.",
			hotel.Provider, max(minutesToStart-30, 0), session.Title),
	}
}

func respondSpeakerPrep(req Request) Response {
	if len(req.Speakers) == 0 || req.Brief == nil || len(req.Brief.SuggestedQuestions) == 0 {
		return Response{
			Confidence: models.ConfidenceLow,
			Answer:     "Speaker intelligence is incomplete. Ask your assistant to refresh profile enrichment and briefing approval.",
		}
	}

	lead := req.Speakers[0]
	return Response{
		Confidence: models.ConfidenceHigh,
		Sources: []Source{
			{ID: lead.ID, Label: lead.Name, Kind: SourceSpeaker},
			{ID: fmt.Sprintf("brief-%d", req.Brief.Version), Label: "Approved executive brief", Kind: SourceBriefing},
		},
		SuggestedActions: []Action{
			{ID: "view-brief", Text: "Open executive prep brief", Action: "open_briefing"},
			{ID: "session-questions", Text: "Pin suggested questions", Action: "pin_questions"},
		},
		Answer: fmt.Sprintf("%s is likely to prioritize execution timeline and accountability. Ask: %s",
			lead.Name, req.Brief.SuggestedQuestions[0]),
	}
}

func respondGeneral(req Request) Response {
	resp := Response{
		Confidence: models.ConfidenceMedium,
		SuggestedActions: []Action{
			{ID: "ask-next", Text: "Ask: what's next for me?", Action: "query_next"},
		},
		Answer: "I can help with travel timing, venue routing, speaker prep, and executive meeting strategy. Try asking for your next action.",
	}

	if source, ok := scopeSource(req); ok {
		resp.Sources = []Source{source}
	}
	return resp
}

// scopeSource picks a representative record for the requested context scope.
func scopeSource(req Request) (Source, bool) {
	switch req.Scope {
	case ScopeTravel:
		if len(req.Travel) > 0 {
			return Source{ID: req.Travel[0].ID, Label: req.Travel[0].Provider, Kind: SourceTravel}, true
		}
	case ScopeAgenda:
		if len(req.Agenda) > 0 {
			return Source{ID: req.Agenda[0].ID, Label: req.Agenda[0].Title, Kind: SourceAgenda}, true
		}
	case ScopeSpeakers:
		if len(req.Speakers) > 0 {
			return Source{ID: req.Speakers[0].ID, Label: req.Speakers[0].Name, Kind: SourceSpeaker}, true
		}
	default:
		if req.Brief != nil {
			return Source{ID: fmt.Sprintf("brief-%d", req.Brief.Version), Label: "Executive brief", Kind: SourceBriefing}, true
		}
	}
	return Source{}, false
}

func relativeTime(at, now time.Time) string {
	return humanize.RelTime(at, now, "ago", "from now")
}
